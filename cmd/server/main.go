package main

import (
	"context"
	"log"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/router"
	"github.com/tastebook/backend/pkg/config"
	"github.com/tastebook/backend/pkg/firebase"
	"github.com/tastebook/backend/validators"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Firebase login is optional; without credentials only local accounts work.
	firebaseAuthClient, err := firebase.NewAuthClient(context.Background(), cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Warn("firebase auth disabled", zap.Error(err))
		firebaseAuthClient = nil
	}

	notifyBuffer, err := strconv.Atoi(cfg.NotifyBuffer)
	if err != nil || notifyBuffer < 1 {
		notifyBuffer = 256
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = apperr.HTTPErrorHandler(logger, cfg.Env == "development")

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	fanout, err := router.SetupRoutes(e, db, firebaseAuthClient, cfg, logger, notifyBuffer)
	if err != nil {
		logger.Fatal("failed to set up routes", zap.Error(err))
	}
	defer fanout.Close()

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/tastebook/backend/internal/handlers"
	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/notify"
	"github.com/tastebook/backend/internal/repositories"
	"github.com/tastebook/backend/internal/stats"
	"github.com/tastebook/backend/pkg/config"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestID())
}

// SetupRoutes configures all application routes and injects dependencies.
// The returned Fanout must be closed on shutdown to drain queued
// notifications. firebaseAuthClient may be nil.
func SetupRoutes(e *echo.Echo, db *config.DB, firebaseAuthClient *auth.Client, cfg *config.Config, log *zap.Logger, notifyBuffer int) (*notify.Fanout, error) {
	// AutoMigrate PostgreSQL models
	if err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Relation{},
		&models.Notification{},
	); err != nil {
		return nil, err
	}
	log.Info("postgres auto-migrations completed")

	mongoDB := db.Mongo.Database(cfg.MongoDBName)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	relationRepo := repositories.NewPostgresRelationRepository(db.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)
	recipeRepo := repositories.NewMongoRecipeRepository(mongoDB)
	reviewRepo := repositories.NewMongoReviewRepository(mongoDB)
	blogRepo := repositories.NewMongoBlogRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)

	fanout := notify.NewFanout(notificationRepo, log, notifyBuffer)
	aggregator := stats.NewAggregator(mongoDB, reviewRepo, recipeRepo, userRepo, relationRepo, db.Redis, log)

	// --- Identity providers ---
	provider := middleware.Chain{middleware.NewJWTProvider(cfg.JWTSecret)}
	if firebaseAuthClient != nil {
		provider = append(provider, middleware.NewFirebaseProvider(firebaseAuthClient, userRepo))
	}

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Public routes (auth optional, used for view counting and viewer
	// enrichment when a valid token is present) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalAuth(provider))

	// --- Protected routes ---
	api := e.Group("/api/v1")
	api.Use(middleware.RequireAuth(provider))

	// User routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(public)
	userHandler.RegisterProfileRoutes(api)

	// Recipe routes
	recipeHandler := handlers.NewRecipeHandler(recipeRepo, reviewRepo, relationRepo, userRepo, aggregator, log)
	recipeHandler.RegisterRecipeRoutes(api)
	recipeHandler.RegisterPublicRecipeRoutes(public)

	// Relation routes (likes, bookmarks, follows)
	relationHandler := handlers.NewRelationHandler(relationRepo, recipeRepo, userRepo, fanout)
	relationHandler.RegisterRelationRoutes(api)
	relationHandler.RegisterPublicRelationRoutes(public)

	// Review routes
	reviewHandler := handlers.NewReviewHandler(reviewRepo, recipeRepo, userRepo, aggregator, fanout, log)
	reviewHandler.RegisterReviewRoutes(api)
	reviewHandler.RegisterPublicReviewRoutes(public)

	// Blog routes
	blogHandler := handlers.NewBlogHandler(blogRepo, commentRepo, log)
	blogHandler.RegisterBlogRoutes(api)
	blogHandler.RegisterPublicBlogRoutes(public)

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, blogRepo, userRepo, fanout)
	commentHandler.RegisterCommentRoutes(api)
	commentHandler.RegisterPublicCommentRoutes(public)

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	// Statistics routes
	statsHandler := handlers.NewStatsHandler(aggregator)
	statsHandler.RegisterStatsRoutes(public)

	log.Info("all routes configured")
	return fanout, nil
}

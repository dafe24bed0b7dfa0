package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/models"
)

// ActorKey is the Echo context key holding the authenticated actor's claims.
const ActorKey = "actor"

// Provider resolves the acting user from a request. Implementations are
// constructed once at startup and passed by reference to the router; request
// code never reaches for a global registry.
type Provider interface {
	Resolve(c echo.Context) (*models.JwtCustomClaims, error)
}

// Chain tries each provider in order and returns the first successful
// resolution. Lets deployments accept local JWTs and Firebase ID tokens on
// the same endpoints.
type Chain []Provider

func (ch Chain) Resolve(c echo.Context) (*models.JwtCustomClaims, error) {
	var lastErr error
	for _, p := range ch {
		claims, err := p.Resolve(c)
		if err == nil {
			return claims, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no identity providers configured")
	}
	return nil, lastErr
}

// RequireAuth rejects requests the provider cannot resolve.
func RequireAuth(p Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := p.Resolve(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(ActorKey, claims)
			return next(c)
		}
	}
}

// OptionalAuth resolves the actor when credentials are present and valid,
// and lets the request through anonymously otherwise.
func OptionalAuth(p Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := p.Resolve(c); err == nil {
				c.Set(ActorKey, claims)
			}
			return next(c)
		}
	}
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/middleware"
	"github.com/tastebook/backend/internal/models"
)

// actorID returns the authenticated actor's user ID, or 0 for anonymous
// requests.
func actorID(c echo.Context) uint {
	if claims, ok := c.Get(middleware.ActorKey).(*models.JwtCustomClaims); ok {
		return claims.UserID
	}
	return 0
}

// requireActor returns the authenticated actor's user ID or a 401 error.
func requireActor(c echo.Context) (uint, error) {
	id := actorID(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

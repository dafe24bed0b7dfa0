package middleware

import (
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
)

// FirebaseProvider resolves actors by verifying Firebase ID tokens and
// mapping the Firebase UID onto a local user record.
type FirebaseProvider struct {
	client *auth.Client
	users  repositories.UserRepository
}

// NewFirebaseProvider creates a FirebaseProvider.
func NewFirebaseProvider(client *auth.Client, users repositories.UserRepository) *FirebaseProvider {
	return &FirebaseProvider{client: client, users: users}
}

func (p *FirebaseProvider) Resolve(c echo.Context) (*models.JwtCustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("missing Authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errors.New("invalid Authorization header format")
	}

	token, err := p.client.VerifyIDToken(c.Request().Context(), parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid or expired ID token: %w", err)
	}

	user, err := p.users.GetUserByFirebaseUID(token.UID)
	if err != nil {
		return nil, errors.New("authenticated user not registered")
	}

	return &models.JwtCustomClaims{UserID: user.ID, Email: user.Email}, nil
}

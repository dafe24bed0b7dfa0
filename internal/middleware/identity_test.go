package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastebook/backend/internal/models"
)

func signToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  "cook@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func testContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestJWTProviderResolvesValidToken(t *testing.T) {
	p := NewJWTProvider("secret")
	c := testContext("Bearer " + signToken(t, "secret", 7))

	claims, err := p.Resolve(c)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestJWTProviderRejectsBadSignature(t *testing.T) {
	p := NewJWTProvider("secret")
	c := testContext("Bearer " + signToken(t, "other-secret", 7))

	_, err := p.Resolve(c)
	assert.Error(t, err)
}

func TestJWTProviderRejectsMissingHeader(t *testing.T) {
	p := NewJWTProvider("secret")

	_, err := p.Resolve(testContext(""))
	assert.Error(t, err)

	_, err = p.Resolve(testContext("Token abc"))
	assert.Error(t, err)
}

func TestRequireAuthSetsActor(t *testing.T) {
	p := NewJWTProvider("secret")
	c := testContext("Bearer " + signToken(t, "secret", 7))

	handler := RequireAuth(p)(func(c echo.Context) error {
		claims := c.Get(ActorKey).(*models.JwtCustomClaims)
		assert.Equal(t, uint(7), claims.UserID)
		return nil
	})
	require.NoError(t, handler(c))
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	p := NewJWTProvider("secret")

	handler := RequireAuth(p)(func(c echo.Context) error { return nil })
	err := handler(testContext(""))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	p := NewJWTProvider("secret")

	handler := OptionalAuth(p)(func(c echo.Context) error {
		assert.Nil(t, c.Get(ActorKey))
		return nil
	})
	require.NoError(t, handler(testContext("")))
}

type staticProvider struct {
	claims *models.JwtCustomClaims
	err    error
}

func (s staticProvider) Resolve(echo.Context) (*models.JwtCustomClaims, error) {
	return s.claims, s.err
}

func TestChainFallsThrough(t *testing.T) {
	want := &models.JwtCustomClaims{UserID: 3}
	ch := Chain{
		staticProvider{err: assert.AnError},
		staticProvider{claims: want},
	}

	claims, err := ch.Resolve(testContext(""))
	require.NoError(t, err)
	assert.Equal(t, want, claims)
}

func TestChainEmptyFails(t *testing.T) {
	_, err := Chain{}.Resolve(testContext(""))
	assert.Error(t, err)
}

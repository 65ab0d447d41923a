package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "middleware_test_access_secret"
	cfg.SecretKey.Refresh = "middleware_test_refresh_secret"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return tokenService
}

// invokeProtected sends a request through the Authenticate middleware into a
// recording handler that reports what the middleware set on the context.
func invokeProtected(t *testing.T, tokenService service.TokenService, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var (
		gotUserID uuid.UUID
		reached   bool
	)

	e := echo.New()
	mw := NewAuthMiddleware(tokenService)
	handler := mw.Authenticate(func(c echo.Context) error {
		reached = true
		gotUserID, _ = c.Get("userID").(uuid.UUID)

		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	err := handler(e.NewContext(req, rec))
	require.NoError(t, err)

	return rec, gotUserID, reached
}

func TestAuthMiddleware_ValidAccessToken(t *testing.T) {
	tokenService := newTestTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "a@b.com", FirstName: "A", LastName: "B"}

	accessToken, err := tokenService.CreateAccessToken(user)
	require.NoError(t, err)

	rec, gotUserID, reached := invokeProtected(t, tokenService, "Bearer "+accessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, user.ID, gotUserID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec, _, reached := invokeProtected(t, newTestTokenService(t), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	rec, _, reached := invokeProtected(t, newTestTokenService(t), "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	tokenService := newTestTokenService(t)

	refreshToken, err := tokenService.CreateRefreshToken("a@b.com")
	require.NoError(t, err)

	rec, _, reached := invokeProtected(t, tokenService, "Bearer "+refreshToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	rec, _, reached := invokeProtected(t, newTestTokenService(t), "Bearer not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

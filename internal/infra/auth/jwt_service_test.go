package auth

import (
	"strings"
	"testing"
	"time"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func newTestUser() *entity.User {
	return &entity.User{
		ID:        uuid.New(),
		Email:     "a@b.com",
		FirstName: "A",
		LastName:  "B",
	}
}

func TestJWTService_CreateAndValidateAccessToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	user := newTestUser()

	accessToken, err := svc.CreateAccessToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	claims, err := svc.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.FirstName, claims.FirstName)
	assert.Equal(t, user.LastName, claims.LastName)
	assert.Equal(t, service.TokenTypeAccess, claims.TokenType)
}

func TestJWTService_CreateAndValidateRefreshToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	refreshToken, err := svc.CreateRefreshToken("a@b.com")
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken)

	claims, err := svc.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, service.TokenTypeRefresh, claims.TokenType)

	// Refresh tokens carry no identity claims beyond the subject email.
	assert.Equal(t, uuid.Nil, claims.UserID)
	assert.Empty(t, claims.FirstName)
}

func TestJWTService_RefreshTokenRejectedAsAccessToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	refreshToken, err := svc.CreateRefreshToken("a@b.com")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshToken)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidSignature))
}

func TestJWTService_TypeClaimDiscriminatesUnderSharedSecret(t *testing.T) {
	// Even with identical secrets the type claim keeps the two token kinds
	// apart.
	svc := &jwtService{
		accessSecret:  []byte("shared_secret"),
		refreshSecret: []byte("shared_secret"),
		accessTTL:     time.Minute,
		refreshTTL:    time.Hour,
	}

	refreshToken, err := svc.CreateRefreshToken("a@b.com")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshToken)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_TamperedSignature(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	accessToken, err := svc.CreateAccessToken(newTestUser())
	require.NoError(t, err)

	parts := strings.Split(accessToken, ".")
	require.Len(t, parts, 3)

	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	claims, err := svc.ValidateAccessToken(tampered)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidSignature))
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		accessSecret:  []byte("test_access_secret"),
		refreshSecret: []byte("test_refresh_secret"),
		accessTTL:     -time.Minute, // already expired at mint time
		refreshTTL:    time.Hour,
	}

	accessToken, err := svc.CreateAccessToken(newTestUser())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(accessToken)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrExpiredToken))
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken("clearly-not-a-jwt-token")
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_ConfiguredDurations(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: 48 * time.Hour,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, svc.AccessTokenDuration())
	assert.Equal(t, 48*time.Hour, svc.RefreshTokenDuration())
}

func TestJWTService_DefaultDurations(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, svc.AccessTokenDuration())
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenDuration())
}

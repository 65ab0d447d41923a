package service

import (
	"time"

	"gatekeeper/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type discriminator values carried in the "type" claim. An access
// token can never be presented where a refresh token is expected and vice
// versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID    uuid.UUID `json:"uid,omitempty"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for minting and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// CreateAccessToken mints a short-lived, signed token carrying the
	// principal's identity claims.
	CreateAccessToken(user *entity.User) (string, error)

	// CreateRefreshToken mints a longer-lived, signed token bound only to the
	// subject email, used solely to obtain new access tokens.
	CreateRefreshToken(email string) (string, error)

	// ValidateAccessToken checks signature, expiry and the access type claim.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks signature, expiry and the refresh type claim.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}

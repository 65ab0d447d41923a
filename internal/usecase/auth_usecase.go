// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshInput carries a refresh token to exchange for a new access token.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

// --- Output DTOs ---

// Profile is the public view of an account. It never carries the password
// hash; nothing secret leaves the service boundary through it.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterOutput returns the newly created account's public profile.
type RegisterOutput struct {
	Profile *Profile `json:"profile"`
}

// LoginOutput returns the authenticated session after a successful login.
type LoginOutput struct {
	ID           uuid.UUID `json:"id"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
}

// RefreshOutput returns the replacement access token. The refresh token
// itself is not rotated.
type RefreshOutput struct {
	AccessToken string `json:"accessToken"`
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	Profile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	RecentActivity(ctx context.Context, userID uuid.UUID) ([]*entity.Activity, error)
}

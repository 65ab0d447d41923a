// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when a create collides with the unique email
// index. The storage constraint backstops the service-level uniqueness check
// under concurrent registrations.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines the standard operations for credential persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their case-folded email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new credential record. Returns ErrDuplicateEmail when
	// the email is already taken.
	Create(ctx context.Context, user *entity.User) error
}

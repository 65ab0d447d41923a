package repository

import (
	"context"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// ActivityRepository defines the append-only audit trail store.
type ActivityRepository interface {
	// Create appends one audit entry. Entries are immutable once written.
	Create(ctx context.Context, activity *entity.Activity) error

	// FindByUserID returns the most recent audit entries for a user,
	// newest first, capped at limit.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Activity, error)
}

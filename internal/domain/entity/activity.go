package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType discriminates the kinds of authentication events recorded in
// the audit trail.
type ActivityType string

const (
	// ActivitySignup is recorded once per successful registration.
	ActivitySignup ActivityType = "signup"
	// ActivityLogin is recorded once per successful login.
	ActivityLogin ActivityType = "login"
)

// Activity is one append-only audit entry. A user accumulates many of these;
// they are never updated or deleted.
type Activity struct {
	ID           uuid.UUID    // The unique identifier for this audit entry.
	UserID       uuid.UUID    // The account this event belongs to.
	ActivityType ActivityType // What happened: signup or login.
	CreatedAt    time.Time    // When the event happened.
}

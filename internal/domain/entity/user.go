// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted credential record for a single account. The email is
// the login identifier and is stored case-folded; PasswordHash carries the
// bcrypt-encoded digest with its salt and cost embedded. The plaintext
// password never appears on this entity.
type User struct {
	ID           uuid.UUID // The unique identifier for the account.
	Email        string    // Login identifier, unique and stored in lower case.
	FirstName    string    // The user's given name.
	LastName     string    // The user's family name.
	PasswordHash string    // Self-describing bcrypt hash (algorithm, cost, salt, digest).
	CreatedAt    time.Time // Timestamp of when this account was registered.
	UpdatedAt    time.Time // Timestamp of the last modification to this record.
}

// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
// Hashing is CPU-bound, so both operations take a context: implementations may
// queue behind a bounded worker budget and must honor cancellation while waiting.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. An empty
	// plaintext is rejected.
	Hash(ctx context.Context, password string) (string, error)

	// Check compares a plaintext password with a stored hash. A well-formed
	// hash that simply doesn't match yields (false, nil); an undecodable
	// stored hash yields an error.
	Check(ctx context.Context, password, hash string) (bool, error)
}

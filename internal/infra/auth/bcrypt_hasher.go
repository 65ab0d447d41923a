// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"gatekeeper/config"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
)

const defaultMaxConcurrentHashes = 4

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// bcrypt generates its own random salt and encodes algorithm, cost and salt
// into the hash string, so stored hashes are self-describing.
//
// Hashing is deliberately slow and CPU-bound, so a weighted semaphore caps how
// many derivations run at once; a burst of logins queues here instead of
// starving the rest of the process.
type bcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	maxConcurrent := defaultMaxConcurrentHashes
	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
			cost = cfg.Auth.BcryptCost
		}
		if cfg.Auth.MaxConcurrentHashes > 0 {
			maxConcurrent = cfg.Auth.MaxConcurrentHashes
		}
	}

	return &bcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost factor,
// useful for tests that want a cheap work factor.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(defaultMaxConcurrentHashes),
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", errors.Wrap(domainerrors.ErrInvalidInput, "refusing to hash empty password")
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "waiting for hashing slot")
	}
	defer h.sem.Release(1)

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt hash generation failed")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a stored bcrypt hash.
// bcrypt re-derives the digest from the salt and cost embedded in the hash
// and compares in constant time. A plain mismatch is (false, nil); a stored
// hash that cannot be decoded is an error, since that means the credential
// record itself is corrupt.
func (h *bcryptHasher) Check(ctx context.Context, password, hash string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, errors.Wrap(err, "waiting for hashing slot")
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, errors.Wrap(domainerrors.ErrMalformedHash, err.Error())
}

package passwords

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultCost is the bcrypt work factor. Raising it makes offline
	// brute-force proportionally more expensive.
	DefaultCost = 10

	// DefaultMaxConcurrent bounds how many bcrypt computations may run at
	// once. Hashing is CPU-bound and blocks an OS thread; without a bound a
	// burst of registrations can starve unrelated requests.
	DefaultMaxConcurrent = 8
)

// BcryptHasher implements Hasher on top of golang.org/x/crypto/bcrypt with a
// weighted semaphore limiting concurrent hash computations.
type BcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher returns a BcryptHasher with the given work factor and
// concurrency bound. Non-positive arguments fall back to the defaults.
func NewBcryptHasher(cost int, maxConcurrent int64) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &BcryptHasher{cost: cost, sem: semaphore.NewWeighted(maxConcurrent)}
}

// Hash returns a salted bcrypt digest of plaintext. It blocks until a hashing
// slot is free or ctx is cancelled.
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compares plaintext against a stored digest. The comparison inside
// bcrypt is constant-time with respect to the digest.
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

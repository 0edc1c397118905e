package password

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/authgate/authgate-server/internal/model"
)

// Ensure Pool implements the model.PasswordHasher interface.
var _ model.PasswordHasher = (*Pool)(nil)

// Pool bounds concurrent argon2 work. Callers queue on a weighted semaphore
// with their request context, so an abandoned request stops waiting for a
// slot instead of piling up behind in-flight hashes.
type Pool struct {
	hasher *Argon2
	sem    *semaphore.Weighted
}

// NewPool creates a Pool allowing up to workers concurrent hash operations.
// A non-positive workers defaults to GOMAXPROCS.
func NewPool(hasher *Argon2, workers int64) *Pool {
	if workers <= 0 {
		workers = int64(runtime.GOMAXPROCS(0))
	}
	return &Pool{
		hasher: hasher,
		sem:    semaphore.NewWeighted(workers),
	}
}

// Hash derives a PHC-encoded hash of password, waiting for a hashing slot
// first.
func (p *Pool) Hash(ctx context.Context, password model.Password) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer p.sem.Release(1)

	return p.hasher.Hash(string(password))
}

// Verify checks password against encodedHash, waiting for a hashing slot
// first.
func (p *Pool) Verify(ctx context.Context, password model.Password, encodedHash string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer p.sem.Release(1)

	return p.hasher.Verify(string(password), encodedHash)
}

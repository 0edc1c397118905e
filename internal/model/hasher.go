package model

import "context"

// PasswordHasher hashes and verifies passwords. Implementations run the
// CPU-intensive work off the request-serving path; the context bounds the
// wait for a hashing slot.
type PasswordHasher interface {
	Hash(ctx context.Context, password Password) (string, error)
	Verify(ctx context.Context, password Password, encodedHash string) (bool, error)
}

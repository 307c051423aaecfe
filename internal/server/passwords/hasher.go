// Package passwords provides the one-way credential hashing primitive used by
// the registration and authentication workflows. The digest embeds its own
// salt, so identical plaintexts never produce identical digests and callers
// never manage salts themselves.
package passwords

import "context"

// Hasher hashes plaintext passwords and verifies candidates against stored
// digests.
//
// Verify returns (false, nil) for a non-matching password; an error is
// returned only for a malformed digest, which indicates a caller bug rather
// than a user-facing condition.
type Hasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}

package ports

import "context"

// PasswordHasher wraps an adaptive, salted, slow hash for password storage.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A malformed or empty
	// digest verifies as false; it never errors out to the caller.
	Verify(plaintext, digest string) bool
}

// RateLimiter throttles attempts per key (typically a client address).
type RateLimiter interface {
	// Allow reports whether another attempt is permitted for key within the
	// current window. A non-nil error means the limiter backend itself failed,
	// not that the key is throttled.
	Allow(ctx context.Context, key string) (bool, error)
}

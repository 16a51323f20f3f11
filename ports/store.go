package ports

import (
	"context"
	"time"
)

// DenyList records revoked-but-not-yet-expired token identifiers. Entries
// only need to outlive the token's natural expiry, so implementations may
// drop them after the given TTL.
type DenyList interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

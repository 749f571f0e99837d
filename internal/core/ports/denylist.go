package ports

import (
	"context"
	"time"
)

// TokenDenylist records logged-out tokens until their natural expiry.
// Implementations hash the raw token before storing it.
type TokenDenylist interface {
	Deny(ctx context.Context, token string, ttl time.Duration) error
	IsDenied(ctx context.Context, token string) (bool, error)
}

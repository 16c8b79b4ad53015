// Package revocation tracks revoked token ids (jti) until their natural
// expiry. Logout writes here; the auth middleware reads.
package revocation

import (
	"context"
	"time"
)

// TokenRevocationList records revoked tokens. Entries only need to live for
// the token's remaining lifetime, so every write carries a TTL.
type TokenRevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

//go:build integration

package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leavedesk/pkg/testutil/containers"
)

func TestRedisTRL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	trl := NewRedisTRL(rc.Client)

	t.Run("revoked token is reported revoked", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Minute))

		revoked, err := trl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unknown token is not revoked", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))

		revoked, err := trl.IsRevoked(ctx, "jti-unknown")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entry expires with its token", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		require.NoError(t, trl.RevokeToken(ctx, "jti-short", time.Second))

		revoked, err := trl.IsRevoked(ctx, "jti-short")
		require.NoError(t, err)
		require.True(t, revoked)

		time.Sleep(1500 * time.Millisecond)

		revoked, err = trl.IsRevoked(ctx, "jti-short")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

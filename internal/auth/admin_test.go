package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandesk/internal/common/config"
	"loandesk/internal/common/database"
	"loandesk/internal/common/logger"
)

func newTestAdmin(t *testing.T, passphrase string, ttl int) (*Admin, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.AdminConfig{Passphrase: passphrase, TokenTTL: ttl}
	return NewAdmin(cfg, &database.RedisClient{Client: client}, logger.NewNoOpLogger()), mr
}

func TestUnlock(t *testing.T) {
	t.Run("correct passphrase yields live token", func(t *testing.T) {
		admin, _ := newTestAdmin(t, "secret-phrase", 60)
		ctx := context.Background()

		token, err := admin.Unlock(ctx, "secret-phrase")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		assert.NoError(t, admin.Verify(ctx, token))
	})

	t.Run("wrong passphrase is rejected", func(t *testing.T) {
		admin, _ := newTestAdmin(t, "secret-phrase", 60)

		_, err := admin.Unlock(context.Background(), "guess")
		assert.Error(t, err)
	})

	t.Run("unconfigured passphrase always rejects", func(t *testing.T) {
		admin, _ := newTestAdmin(t, "", 60)

		_, err := admin.Unlock(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	t.Run("unknown token is rejected", func(t *testing.T) {
		admin, _ := newTestAdmin(t, "secret-phrase", 60)
		assert.Error(t, admin.Verify(context.Background(), "nope"))
		assert.Error(t, admin.Verify(context.Background(), ""))
	})

	t.Run("token expires with TTL", func(t *testing.T) {
		admin, mr := newTestAdmin(t, "secret-phrase", 1)
		ctx := context.Background()

		token, err := admin.Unlock(ctx, "secret-phrase")
		require.NoError(t, err)

		mr.FastForward(2 * time.Second)
		assert.Error(t, admin.Verify(ctx, token))
	})
}

func TestGuidelineContext(t *testing.T) {
	admin, _ := newTestAdmin(t, "secret-phrase", 60)
	ctx := context.Background()

	assert.Equal(t, "", admin.Context(ctx))

	require.NoError(t, admin.SaveContext(ctx, "2026년 내부 지침"))
	assert.Equal(t, "2026년 내부 지침", admin.Context(ctx))
}

func TestRevoke(t *testing.T) {
	admin, _ := newTestAdmin(t, "secret-phrase", 60)
	ctx := context.Background()

	token, err := admin.Unlock(ctx, "secret-phrase")
	require.NoError(t, err)

	require.NoError(t, admin.Revoke(ctx, token))
	assert.Error(t, admin.Verify(ctx, token))
}

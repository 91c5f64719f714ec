// Package auth implements the admin unlock flow: a shared passphrase trades
// for an opaque token held in Redis with a TTL. The token gates the guideline
// context upload.
package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"loandesk/internal/common/config"
	"loandesk/internal/common/database"
	stderrors "loandesk/internal/common/errors"
	"loandesk/internal/common/logger"
)

const tokenKeyPrefix = "admin:token:"

type Admin struct {
	cfg   config.AdminConfig
	redis *database.RedisClient
	log   logger.Logger
}

func NewAdmin(cfg config.AdminConfig, redis *database.RedisClient, log logger.Logger) *Admin {
	return &Admin{cfg: cfg, redis: redis, log: log}
}

// Unlock verifies the passphrase and issues a fresh token. The compare is
// constant-time.
func (a *Admin) Unlock(ctx context.Context, passphrase string) (string, error) {
	if a.cfg.Passphrase == "" {
		return "", stderrors.NewUnauthorizedError("admin mode is not configured")
	}

	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(a.cfg.Passphrase)) != 1 {
		a.log.Warn("admin unlock rejected", nil)
		return "", stderrors.NewUnauthorizedError("invalid passphrase")
	}

	token := uuid.NewString()
	ttl := time.Duration(a.cfg.TokenTTL) * time.Second

	if err := a.redis.Set(ctx, tokenKeyPrefix+token, "1", ttl); err != nil {
		return "", stderrors.NewStoreUnavailableError(err)
	}

	return token, nil
}

// Verify checks that a token is still live.
func (a *Admin) Verify(ctx context.Context, token string) error {
	if token == "" {
		return stderrors.NewUnauthorizedError("missing admin token")
	}

	_, err := a.redis.Get(ctx, tokenKeyPrefix+token)
	if err != nil {
		return stderrors.NewUnauthorizedError("invalid or expired admin token")
	}
	return nil
}

// Revoke drops a token before its TTL expires.
func (a *Admin) Revoke(ctx context.Context, token string) error {
	return a.redis.Del(ctx, tokenKeyPrefix+token)
}

const contextKey = "admin:context"

// SaveContext stores the uploaded guideline context consulted by the AI
// system instruction. Admin-gated at the API layer.
func (a *Admin) SaveContext(ctx context.Context, text string) error {
	if err := a.redis.Set(ctx, contextKey, text, 0); err != nil {
		return stderrors.NewStoreUnavailableError(err)
	}
	return nil
}

// Context returns the stored guideline context, or empty when none is set.
func (a *Admin) Context(ctx context.Context) string {
	text, err := a.redis.Get(ctx, contextKey)
	if err != nil {
		return ""
	}
	return text
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrSessionNotFound signals an unknown or expired refresh token.
var ErrSessionNotFound = fmt.Errorf("session not found")

// SessionRepository stores refresh-token sessions in Redis. Tokens expire
// with their TTL; logout deletes them eagerly.
type SessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(client *redis.Client, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{client: client, logger: logger}
}

func sessionKey(token string) string {
	return "session:refresh:" + token
}

// Store records a refresh token for the user with the given TTL.
func (r *SessionRepository) Store(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Resolve returns the user ID owning the refresh token.
func (r *SessionRepository) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("resolve session: %w", err)
	}
	return userID, nil
}

// Revoke deletes the refresh token session.
func (r *SessionRepository) Revoke(ctx context.Context, token string) error {
	deleted, err := r.client.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if deleted == 0 {
		r.logger.Debug("revoke of unknown session", zap.String("key", sessionKey(token)))
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/domain/models"
	"portfolio/internal/storage"
	redisapp "portfolio/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

type RedisSessionRepo struct {
	Client *redisapp.Client
}

func NewRedisSessionRepo(client *redisapp.Client) *RedisSessionRepo {
	return &RedisSessionRepo{Client: client}
}

func (r *RedisSessionRepo) SaveSession(ctx context.Context, sessionID string, sess models.AuthSession, ttl time.Duration) error {
	const op = "repository.session_repository.SaveSession"

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Client.Set(ctx, sessionKey(sessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisSessionRepo) GetSession(ctx context.Context, sessionID string) (*models.AuthSession, error) {
	const op = "repository.session_repository.GetSession"

	val, err := r.Client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var sess models.AuthSession
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &sess, nil
}

func (r *RedisSessionRepo) DeleteSession(ctx context.Context, sessionID string) error {
	return r.Client.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

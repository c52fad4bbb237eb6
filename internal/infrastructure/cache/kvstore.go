package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"userbot/internal/domain/plugin"
)

const kvKeyPrefix = "userbot:kv:"

// RedisKVStore keeps plugin settings in redis without expiry.
type RedisKVStore struct {
	client *redis.Client
	prefix string
}

var _ plugin.Store = (*RedisKVStore)(nil)

func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{client: client, prefix: kvKeyPrefix}
}

func (s *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", plugin.ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisKVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *RedisKVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

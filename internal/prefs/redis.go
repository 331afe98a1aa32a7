package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each user's preferences in one hash.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) key(userID string) string { return "prefs:" + userID }

func (s *RedisStore) Get(ctx context.Context, userID, key string) (string, bool, error) {
	value, err := s.rdb.HGet(ctx, s.key(userID), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, userID, key, value string) error {
	if err := s.rdb.HSet(ctx, s.key(userID), key, value).Err(); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID, key string) error {
	if err := s.rdb.HDel(ctx, s.key(userID), key).Err(); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}

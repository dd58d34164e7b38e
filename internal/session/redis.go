package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"qrmenu/internal/model"
)

// session:{sid}:{field}
const keyFormat = "session:%s:%s"

type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a store keeping one Redis key per field. A positive
// ttl makes abandoned sessions expire together with their cookie.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKeys(sid string) []string {
	keys := make([]string, len(entryKeys))
	for i, k := range entryKeys {
		keys[i] = fmt.Sprintf(keyFormat, sid, k)
	}
	return keys
}

func (s *RedisStore) Get(ctx context.Context, sid string) (Entry, error) {
	vals, err := s.rdb.MGet(ctx, redisKeys(sid)...).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("mget session: %w", err)
	}

	fields := make(map[string]string, len(entryKeys))
	for i, v := range vals {
		if str, ok := v.(string); ok {
			fields[entryKeys[i]] = str
		}
	}
	return fromFields(fields), nil
}

func (s *RedisStore) Set(ctx context.Context, sid, credential string, profile model.Profile) error {
	fields := toFields(credential, profile)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range entryKeys {
			key := fmt.Sprintf(keyFormat, sid, k)
			if v := fields[k]; v != "" {
				pipe.Set(ctx, key, v, s.ttl)
			} else {
				pipe.Del(ctx, key)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	if err := s.rdb.Del(ctx, redisKeys(sid)...).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

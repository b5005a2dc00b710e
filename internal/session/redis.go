package session

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

// RedisStorage persists session slots in Redis with a TTL, so identities
// survive application restarts and expire with the browser session.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStorage) Get(key string) ([]byte, error) {
	value, err := s.client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	return value, nil
}

func (s *RedisStorage) Set(key string, value []byte) error {
	if err := s.client.Set(key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(key string) error {
	if err := s.client.Del(key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

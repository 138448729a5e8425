package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the snapshot as one JSON document under a single
// key. The read-modify-write semantics are identical to the file
// backend; Redis only replaces the durable medium.
type RedisStore struct {
	client *redis.Client
	key    string

	mu      sync.RWMutex
	current *Snapshot
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

func NewRedisStore(ctx context.Context, config *RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	s := &RedisStore{client: rdb, key: config.Key}

	data, err := rdb.Get(ctx, s.key).Bytes()
	switch {
	case err == redis.Nil:
		s.current = Seed()
		if err := s.write(ctx, s.current); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	default:
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot from redis: %w", err)
		}
		s.current = &snap
	}

	return s, nil
}

func (s *RedisStore) View(ctx context.Context, fn func(*Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.current)
}

func (s *RedisStore) Update(ctx context.Context, fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := clone(s.current)
	if err != nil {
		return err
	}

	if err := fn(next); err != nil {
		return err
	}

	if err := s.write(ctx, next); err != nil {
		return err
	}

	s.current = next
	return nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	return s.client.Close()
}

func (s *RedisStore) write(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot to redis: %w", err)
	}
	return nil
}

package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "penstock:project:"
	redisIndexKey  = "penstock:projects"
)

// RedisStore is a Redis-backed project store for hosted deployments.
// Project documents are stored as JSON strings; an index set tracks ids
// for listing.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Save stores the project document and registers its id in the index set.
func (s *RedisStore) Save(ctx context.Context, p *Project) error {
	p.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+p.ID, data, 0)
	pipe.SAdd(ctx, redisIndexKey, p.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Load retrieves the project document by id.
func (s *RedisStore) Load(ctx context.Context, id string) (*Project, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return &p, nil
}

// List reads the index set and fetches each document. Ids whose document
// has disappeared are skipped.
func (s *RedisStore) List(ctx context.Context) ([]Summary, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var out []Summary
	for _, id := range ids {
		p, err := s.Load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{ID: p.ID, Name: p.Name, UpdatedAt: p.UpdatedAt})
	}
	return out, nil
}

// Delete removes the document and unregisters the id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisKeyPrefix+id)
	pipe.SRem(ctx, redisIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

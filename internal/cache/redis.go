package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection parameters for the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// RedisStore backs the snapshot cache with Redis. Values are JSON snapshots
// stored under "betcache:{key}" with the freshness TTL applied on write, so
// staleness is enforced server-side.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis and verifies connectivity.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

func snapshotKey(key string) string {
	return "betcache:" + key
}

// Get fetches and decodes the cached snapshot. Corrupt payloads read as a
// miss, never as an error.
func (r *RedisStore) Get(ctx context.Context, key string) (Snapshot, bool, error) {
	raw, err := r.rdb.Get(ctx, snapshotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("redis: get snapshot %s: %w", key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, false, nil
	}
	if !snap.Fresh(time.Now()) {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Put stores the snapshot with the freshness TTL.
func (r *RedisStore) Put(ctx context.Context, key string, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", key, err)
	}
	if err := r.rdb.Set(ctx, snapshotKey(key), raw, TTL).Err(); err != nil {
		return fmt.Errorf("redis: set snapshot %s: %w", key, err)
	}
	return nil
}

var _ SnapshotStore = (*RedisStore)(nil)

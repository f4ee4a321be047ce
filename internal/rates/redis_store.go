package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	latestKey    = "rates:latest"
	datedPrefix  = "rates:"
	datedKeepFor = 7 * 24 * time.Hour
)

// Store persists snapshots so new processes start from the last known table.
type Store interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	Latest(ctx context.Context) (*Snapshot, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save writes the dated copy first so latest never points at a missing date.
func (s *RedisStore) Save(ctx context.Context, snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, datedPrefix+snapshot.SnapshotDate, data, datedKeepFor).Err(); err != nil {
		return fmt.Errorf("store rate snapshot: %w", err)
	}
	if err := s.client.Set(ctx, latestKey, data, 0).Err(); err != nil {
		return fmt.Errorf("store latest rate snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Latest(ctx context.Context) (*Snapshot, error) {
	return s.load(ctx, latestKey)
}

func (s *RedisStore) ByDate(ctx context.Context, date string) (*Snapshot, error) {
	return s.load(ctx, datedPrefix+date)
}

func (s *RedisStore) load(ctx context.Context, key string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load rate snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return &snapshot, nil
}

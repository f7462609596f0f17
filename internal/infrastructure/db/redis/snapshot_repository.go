package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
	"github.com/healthlog/health-backend/internal/infrastructure/persistence"
)

// DefaultSnapshotKey is the key holding the snapshot document.
const DefaultSnapshotKey = "healthlog:snapshot"

// SnapshotRepository keeps the whole snapshot as one JSON string value.
// The key never expires.
type SnapshotRepository struct {
	client *redis.Client
	key    string
}

var (
	_ ports.SnapshotRepository = (*SnapshotRepository)(nil)
	_ ports.Pinger             = (*SnapshotRepository)(nil)
)

func NewSnapshotRepository(client *redis.Client, key string) *SnapshotRepository {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &SnapshotRepository{client: client, key: key}
}

func (r *SnapshotRepository) Backend() string { return "redis" }

func (r *SnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return persistence.Decode(data)
}

func (r *SnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := persistence.Encode(snap)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SnapshotRepository) Close() error {
	return r.client.Close()
}

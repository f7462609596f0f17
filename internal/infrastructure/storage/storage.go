// Package storage opens the configured snapshot backends.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/healthlog/health-backend/internal/core/ports"
	"github.com/healthlog/health-backend/internal/infrastructure/db/mongo"
	"github.com/healthlog/health-backend/internal/infrastructure/db/redis"
	"github.com/healthlog/health-backend/internal/infrastructure/db/sqlite"
	"github.com/healthlog/health-backend/internal/infrastructure/persistence"
	"github.com/healthlog/health-backend/internal/pkg/config"
)

// Backends is the primary snapshot repository plus any mirrors.
type Backends struct {
	Primary ports.SnapshotRepository
	Mirrors []ports.SnapshotRepository

	closers []func(context.Context) error
}

// Open connects the primary backend and every mirror named in cfg. On error
// everything opened so far is closed again.
func Open(ctx context.Context, cfg *config.Config) (*Backends, error) {
	b := &Backends{}

	primary, err := b.open(ctx, cfg, cfg.Storage.Backend)
	if err != nil {
		return nil, err
	}
	b.Primary = primary

	for _, name := range cfg.Storage.Mirrors {
		repo, err := b.open(ctx, cfg, name)
		if err != nil {
			_ = b.Close(ctx)
			return nil, fmt.Errorf("mirror: %w", err)
		}
		b.Mirrors = append(b.Mirrors, repo)
	}
	return b, nil
}

// Pingers returns the backends that can be probed for readiness, keyed by
// role and backend name ("primary/redis", "mirror1/redis"), so two backends
// of the same kind both get checked.
func (b *Backends) Pingers() map[string]ports.Pinger {
	out := make(map[string]ports.Pinger)
	if p, ok := b.Primary.(ports.Pinger); ok {
		out["primary/"+b.Primary.Backend()] = p
	}
	for i, repo := range b.Mirrors {
		if p, ok := repo.(ports.Pinger); ok {
			out[fmt.Sprintf("mirror%d/%s", i+1, repo.Backend())] = p
		}
	}
	return out
}

// Close releases every connection in reverse opening order.
func (b *Backends) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

func (b *Backends) open(ctx context.Context, cfg *config.Config, name string) (ports.SnapshotRepository, error) {
	switch name {
	case config.BackendFile:
		return persistence.NewFileRepository(cfg.Storage.Path), nil

	case config.BackendSQLite:
		repo, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return repo.Close() })
		return repo, nil

	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		repo := redis.NewSnapshotRepository(client, cfg.Redis.SnapshotKey)
		b.closers = append(b.closers, func(context.Context) error { return repo.Close() })
		return repo, nil

	case config.BackendMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		repo := mongo.NewSnapshotRepository(client, db)
		b.closers = append(b.closers, repo.Close)
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", name)
	}
}

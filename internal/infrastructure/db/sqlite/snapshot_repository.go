// Package sqlite keeps the snapshot in a SQLite database as a single JSON
// payload row.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
	"github.com/healthlog/health-backend/internal/infrastructure/persistence"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "data/storage.db"

const snapshotBucket = "snapshot"

type SnapshotRepository struct {
	db   *sql.DB
	path string
}

var (
	_ ports.SnapshotRepository = (*SnapshotRepository)(nil)
	_ ports.Pinger             = (*SnapshotRepository)(nil)
)

// Open creates the database file (and its directory) if needed and ensures
// the state table exists.
func Open(ctx context.Context, path string) (*SnapshotRepository, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; the store already serialises saves.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SnapshotRepository{db: db, path: path}, nil
}

func (r *SnapshotRepository) Backend() string { return "sqlite" }

func (r *SnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, snapshotBucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	return persistence.Decode(payload)
}

func (r *SnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) (retErr error) {
	data, err := persistence.Encode(snap)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO state(bucket, payload) VALUES(?, ?)
		 ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
		snapshotBucket, data); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

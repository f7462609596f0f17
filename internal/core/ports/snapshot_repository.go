package ports

import (
	"context"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// SnapshotRepository persists the whole store as one document.
type SnapshotRepository interface {
	// Load returns the stored snapshot. A missing document is not an error:
	// implementations return an empty snapshot. An unreadable document is
	// reported with an error wrapping domain.ErrCorruptSnapshot.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Save overwrites the stored document with snap.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Backend names the storage kind for logs and status ("file", "redis", …).
	Backend() string
}

// Pinger is implemented by repositories backed by a network service so the
// readiness probe can check them.
type Pinger interface {
	Ping(ctx context.Context) error
}

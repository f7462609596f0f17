package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
)

// DefaultPath is where the snapshot lives when no path is configured.
const DefaultPath = "data/storage.json"

// FileRepository stores the snapshot as a single JSON file. Writes go to a
// temporary file in the same directory which is then renamed over the
// target, so a crash never leaves a half-written document behind.
type FileRepository struct {
	path string
}

var _ ports.SnapshotRepository = (*FileRepository)(nil)

func NewFileRepository(path string) *FileRepository {
	if path == "" {
		path = DefaultPath
	}
	return &FileRepository{path: path}
}

func (r *FileRepository) Backend() string { return "file" }

// Path returns the snapshot file location.
func (r *FileRepository) Path() string { return r.path }

func (r *FileRepository) Load(_ context.Context) (*domain.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", r.path, err)
	}
	return Decode(data)
}

func (r *FileRepository) Save(ctx context.Context, snap *domain.Snapshot) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dirs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

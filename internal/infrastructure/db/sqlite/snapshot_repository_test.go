package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/healthlog/health-backend/internal/core/domain"
)

func openTemp(t *testing.T) (*SnapshotRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "storage.db")
	repo, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func TestSnapshotRepository_EmptyDatabase(t *testing.T) {
	repo, _ := openTemp(t)

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap.Users)
	require.NoError(t, repo.Ping(context.Background()))
	require.Equal(t, "sqlite", repo.Backend())
}

func TestSnapshotRepository_SaveOverwrites(t *testing.T) {
	repo, path := openTemp(t)
	ctx := context.Background()

	first := &domain.Snapshot{Users: []domain.UserSnapshot{{
		UserProfile: domain.UserProfile{Name: "amy", Age: 28, WeightKg: 50, HeightM: 1.6},
		Password:    "pass1",
		Waters:      []domain.WaterRecord{{Datetime: "2024-03-01", AmountMl: 250}},
		Categories:  domain.Categories{{Name: "Mood", Items: []domain.CategoryItem{}}},
	}}}
	require.NoError(t, repo.Save(ctx, first))

	second := &domain.Snapshot{Users: append(first.Users, domain.UserSnapshot{
		UserProfile: domain.UserProfile{Name: "bob", Age: 40, WeightKg: 80, HeightM: 1.8},
		Password:    "pass2",
	})}
	require.NoError(t, repo.Save(ctx, second))

	var rows int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM state`).Scan(&rows))
	require.Equal(t, 1, rows)

	require.NoError(t, repo.Close())
	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Users, 2)
	require.Equal(t, "bob", got.Users[1].Name)
	require.Equal(t, []domain.WaterRecord{{Datetime: "2024-03-01", AmountMl: 250}}, got.Users[0].Waters)
	require.Equal(t, "Mood", got.Users[0].Categories[0].Name)
}

func TestSnapshotRepository_CorruptPayload(t *testing.T) {
	repo, _ := openTemp(t)
	_, err := repo.db.Exec(`INSERT INTO state(bucket, payload) VALUES(?, ?)`, snapshotBucket, []byte("not json"))
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCorruptSnapshot)
}

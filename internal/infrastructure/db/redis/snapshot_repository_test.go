package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// These tests talk to a real server and run only when REDIS_TEST_ADDR is set.
func connectForTest(t *testing.T) *SnapshotRepository {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)

	repo := NewSnapshotRepository(client, "healthlog:test:"+uuid.NewString())
	t.Cleanup(func() {
		_ = client.Del(context.Background(), repo.key).Err()
		_ = repo.Close()
	})
	return repo
}

func TestSnapshotRepository_RoundTrip(t *testing.T) {
	repo := connectForTest(t)
	ctx := context.Background()

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, empty.Users)

	snap := &domain.Snapshot{Users: []domain.UserSnapshot{{
		UserProfile: domain.UserProfile{Name: "amy", Age: 28, WeightKg: 50, HeightM: 1.6},
		Password:    "pass1",
		Sleeps:      []domain.SleepRecord{{Datetime: "2024-03-01", Hours: 7}},
	}}}
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "amy", got.Users[0].Name)
	require.Equal(t, snap.Users[0].Sleeps, got.Users[0].Sleeps)
}

func TestSnapshotRepository_CorruptValue(t *testing.T) {
	repo := connectForTest(t)
	ctx := context.Background()
	require.NoError(t, repo.client.Set(ctx, repo.key, "{", 0).Err())

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, domain.ErrCorruptSnapshot)
}

func TestNewSnapshotRepository_DefaultKey(t *testing.T) {
	repo := NewSnapshotRepository(nil, "")
	require.Equal(t, DefaultSnapshotKey, repo.key)
	require.Equal(t, "redis", repo.Backend())
}

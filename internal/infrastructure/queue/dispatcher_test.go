package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type recordingRepo struct {
	name    string
	started chan struct{}
	release chan struct{}
	err     error

	mu    sync.Mutex
	saved []*domain.Snapshot
}

func newRecordingRepo(name string) *recordingRepo {
	return &recordingRepo{name: name, started: make(chan struct{}, 32)}
}

func (r *recordingRepo) Load(context.Context) (*domain.Snapshot, error) { return &domain.Snapshot{}, nil }
func (r *recordingRepo) Backend() string { return r.name }

func (r *recordingRepo) Save(_ context.Context, snap *domain.Snapshot) error {
	r.started <- struct{}{}
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	r.saved = append(r.saved, snap)
	r.mu.Unlock()
	return nil
}

func (r *recordingRepo) savedSnapshots() []*domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Snapshot(nil), r.saved...)
}

type countingObserver struct {
	mu      sync.Mutex
	results map[string]int
}

func (o *countingObserver) MirrorWrite(_ string, result string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.results == nil {
		o.results = make(map[string]int)
	}
	o.results[result]++
}

func (o *countingObserver) MirrorDepth(string, int) {}

func (o *countingObserver) count(result string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.results[result]
}

func snapshotNamed(name string) *domain.Snapshot {
	return &domain.Snapshot{Users: []domain.UserSnapshot{{UserProfile: domain.UserProfile{Name: name}}}}
}

func closeWithin(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestDispatcher_WritesInPublishOrder(t *testing.T) {
	a, b := newRecordingRepo("a"), newRecordingRepo("b")
	d := NewDispatcher([]ports.SnapshotRepository{a, b}, nil, zerolog.Nop())
	d.Start()

	snaps := []*domain.Snapshot{snapshotNamed("s0"), snapshotNamed("s1"), snapshotNamed("s2")}
	for _, s := range snaps {
		d.Publish(s)
		<-a.started
		<-b.started
	}
	closeWithin(t, d)

	for _, repo := range []*recordingRepo{a, b} {
		got := repo.savedSnapshots()
		if len(got) != len(snaps) {
			t.Fatalf("%s: expected %d writes, got %d", repo.name, len(snaps), len(got))
		}
		for i := range snaps {
			if got[i] != snaps[i] {
				t.Errorf("%s: write %d out of order", repo.name, i)
			}
		}
	}
}

func TestDispatcher_NewestSnapshotWinsWhenFull(t *testing.T) {
	repo := newRecordingRepo("slow")
	repo.release = make(chan struct{})
	obs := &countingObserver{}
	d := NewDispatcher([]ports.SnapshotRepository{repo}, obs, zerolog.Nop())
	d.Start()

	first := snapshotNamed("s0")
	d.Publish(first)
	<-repo.started // worker is now blocked inside Save

	var later []*domain.Snapshot
	for i := 0; i < channelBuffer+2; i++ {
		s := snapshotNamed("later")
		later = append(later, s)
		d.Publish(s)
	}
	close(repo.release)
	closeWithin(t, d)

	got := repo.savedSnapshots()
	want := append([]*domain.Snapshot{first}, later[2:]...)
	if len(got) != len(want) {
		t.Fatalf("expected %d writes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("write %d: unexpected snapshot", i)
		}
	}
	if n := obs.count("dropped"); n != 2 {
		t.Errorf("expected 2 dropped, got %d", n)
	}
}

func TestDispatcher_FailuresAreCountedNotFatal(t *testing.T) {
	repo := newRecordingRepo("broken")
	repo.err = errors.New("unreachable")
	obs := &countingObserver{}
	d := NewDispatcher([]ports.SnapshotRepository{repo}, obs, zerolog.Nop())
	d.Start()

	d.Publish(snapshotNamed("s0"))
	<-repo.started
	d.Publish(snapshotNamed("s1"))
	<-repo.started
	closeWithin(t, d)

	if n := obs.count("error"); n != 2 {
		t.Fatalf("expected 2 errors, got %d", n)
	}
}

func TestDispatcher_PublishAfterCloseIsIgnored(t *testing.T) {
	repo := newRecordingRepo("a")
	d := NewDispatcher([]ports.SnapshotRepository{repo}, nil, zerolog.Nop())
	d.Start()
	closeWithin(t, d)

	d.Publish(snapshotNamed("late"))
	closeWithin(t, d)

	if got := repo.savedSnapshots(); len(got) != 0 {
		t.Fatalf("expected no writes, got %d", len(got))
	}
}

func TestDispatcher_CloseHonoursContext(t *testing.T) {
	repo := newRecordingRepo("stuck")
	repo.release = make(chan struct{})
	d := NewDispatcher([]ports.SnapshotRepository{repo}, nil, zerolog.Nop())
	d.Start()
	d.Publish(snapshotNamed("s0"))
	<-repo.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	close(repo.release)
}

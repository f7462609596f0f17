// Package queue fans snapshots out to mirror backends on background workers.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
)

const (
	channelBuffer       = 4
	defaultWriteTimeout = 10 * time.Second
)

// Observer receives mirror outcomes. The Prometheus collector implements it.
type Observer interface {
	MirrorWrite(mirror, result string)
	MirrorDepth(mirror string, depth int)
}

// Dispatcher owns one worker per mirror repository. Each worker writes
// snapshots in publish order; when its channel is full the oldest pending
// snapshot is dropped, since a newer one supersedes it anyway.
type Dispatcher struct {
	workers      []*worker
	observer     Observer
	writeTimeout time.Duration
	log          zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

type worker struct {
	repo ports.SnapshotRepository
	ch   chan *domain.Snapshot
}

// NewDispatcher creates a Dispatcher for mirrors. A nil observer discards
// measurements.
func NewDispatcher(mirrors []ports.SnapshotRepository, observer Observer, log zerolog.Logger) *Dispatcher {
	if observer == nil {
		observer = nopObserver{}
	}
	d := &Dispatcher{
		workers:      make([]*worker, len(mirrors)),
		observer:     observer,
		writeTimeout: defaultWriteTimeout,
		log:          log,
	}
	for i, repo := range mirrors {
		d.workers[i] = &worker{repo: repo, ch: make(chan *domain.Snapshot, channelBuffer)}
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Close has drained
// their channels.
func (d *Dispatcher) Start() {
	for _, w := range d.workers {
		d.wg.Add(1)
		go d.runWorker(w)
	}
}

// Publish hands snap to every mirror without blocking. Calls after Close are
// ignored.
func (d *Dispatcher) Publish(snap *domain.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	for _, w := range d.workers {
		d.enqueue(w, snap)
	}
}

func (d *Dispatcher) enqueue(w *worker, snap *domain.Snapshot) {
	name := w.repo.Backend()
	for {
		select {
		case w.ch <- snap:
			d.observer.MirrorDepth(name, len(w.ch))
			return
		default:
		}
		select {
		case <-w.ch:
			d.observer.MirrorWrite(name, "dropped")
		default:
		}
	}
}

// Close stops accepting snapshots and waits until every queued one has been
// written or ctx expires.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, w := range d.workers {
			close(w.ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) runWorker(w *worker) {
	defer d.wg.Done()
	name := w.repo.Backend()
	for snap := range w.ch {
		d.observer.MirrorDepth(name, len(w.ch))

		ctx, cancel := context.WithTimeout(context.Background(), d.writeTimeout)
		err := w.repo.Save(ctx, snap)
		cancel()

		if err != nil {
			d.observer.MirrorWrite(name, "error")
			d.log.Error().Err(err).
				Str("mirror", name).
				Msg("mirror write failed")
			continue
		}
		d.observer.MirrorWrite(name, "ok")
	}
}

type nopObserver struct{}

func (nopObserver) MirrorWrite(string, string) {}
func (nopObserver) MirrorDepth(string, int) {}

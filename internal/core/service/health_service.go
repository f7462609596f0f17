package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
	"github.com/healthlog/health-backend/internal/core/store"
)

const defaultSaveTimeout = 5 * time.Second

// Recorder receives operational measurements. The Prometheus collector in
// internal/api/metrics implements it.
type Recorder interface {
	RecordOperation(op string, err error)
	RecordLogin(success bool)
	RecordSnapshotSave(backend string, took time.Duration, err error)
	SetSaveFailureStreak(backend string, n int)
	SetRegisteredUsers(n int)
}

// SnapshotPublisher receives every snapshot that reached the primary
// repository, for asynchronous mirroring.
type SnapshotPublisher interface {
	Publish(snap *domain.Snapshot)
}

// Options tunes a HealthService. Zero values select defaults.
type Options struct {
	Passwords   PasswordScheme
	TokenLength int
	SaveTimeout time.Duration
	Mirror      SnapshotPublisher
	Recorder    Recorder
}

// HealthService is the facade over the store: it resolves session tokens,
// validates input, delegates to the store and persists every successful
// mutation.
type HealthService struct {
	store       *store.Store
	repo        ports.SnapshotRepository
	passwords   PasswordScheme
	mirror      SnapshotPublisher
	recorder    Recorder
	saveTimeout time.Duration
	log         zerolog.Logger

	statusMu sync.Mutex
	status   ports.PersistenceStatus
}

var _ ports.HealthService = (*HealthService)(nil)

// NewHealthService loads the snapshot from repo and builds the store on top
// of it. A corrupt snapshot is logged and replaced by an empty store; any
// other load error is returned.
func NewHealthService(ctx context.Context, repo ports.SnapshotRepository, log zerolog.Logger, opts Options) (*HealthService, error) {
	s := &HealthService{
		repo:        repo,
		passwords:   opts.Passwords,
		mirror:      opts.Mirror,
		recorder:    opts.Recorder,
		saveTimeout: opts.SaveTimeout,
		log:         log,
		status:      ports.PersistenceStatus{Backend: repo.Backend()},
	}
	if s.passwords == nil {
		s.passwords = plaintextScheme{}
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	if s.saveTimeout <= 0 {
		s.saveTimeout = defaultSaveTimeout
	}

	snap, err := repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrCorruptSnapshot):
		log.Warn().Err(err).Str("backend", repo.Backend()).Msg("persisted snapshot unreadable, starting with an empty store")
		snap = nil
	case err != nil:
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	s.store = store.New(snap,
		store.WithCommitHook(s.persist),
		store.WithTokenSource(store.NewTokenSource(opts.TokenLength)),
	)
	s.recorder.SetRegisteredUsers(s.store.UserCount())

	log.Info().
		Str("backend", repo.Backend()).
		Int("users", s.store.UserCount()).
		Msg("store loaded")
	return s, nil
}

// Status reports the outcome of recent snapshot writes.
func (s *HealthService) Status() ports.PersistenceStatus {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}

// Flush writes the current state regardless of pending mutations. Used at
// shutdown.
func (s *HealthService) Flush(ctx context.Context) error {
	snap := s.store.Snapshot()
	if err := s.repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// persist is the store's commit hook. It runs inside the store's write lock,
// so a failed save leaves memory ahead of disk until the next success but
// never lets two writers interleave.
func (s *HealthService) persist(snap *domain.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	start := time.Now()
	err := s.repo.Save(ctx, snap)
	took := time.Since(start)

	s.recorder.RecordSnapshotSave(s.repo.Backend(), took, err)
	s.recorder.SetRegisteredUsers(len(snap.Users))

	s.statusMu.Lock()
	if err != nil {
		s.status.ConsecutiveFailures++
		s.status.LastError = err.Error()
	} else {
		s.status.ConsecutiveFailures = 0
		s.status.LastError = ""
		s.status.LastSaveAt = time.Now().UTC()
	}
	streak := s.status.ConsecutiveFailures
	s.statusMu.Unlock()
	s.recorder.SetSaveFailureStreak(s.repo.Backend(), streak)

	if err != nil {
		s.log.Error().
			Err(err).
			Str("backend", s.repo.Backend()).
			Int("consecutive_failures", streak).
			Msg("snapshot save failed, change kept in memory only")
		return
	}

	s.log.Debug().Dur("took", took).Int("users", len(snap.Users)).Msg("snapshot saved")
	if s.mirror != nil {
		s.mirror.Publish(snap)
	}
}

// resolve maps a session token to its identity. Every failure is reported
// as ErrUnauthorized.
func (s *HealthService) resolve(token string) (string, error) {
	name, ok := s.store.Resolve(token)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return name, nil
}

// observe records the outcome of op and returns err unchanged.
func (s *HealthService) observe(op string, err error) error {
	s.recorder.RecordOperation(op, err)
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// tokenPrefix keeps session tokens out of logs.
func tokenPrefix(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "…"
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, error) {}
func (nopRecorder) RecordLogin(bool) {}
func (nopRecorder) RecordSnapshotSave(string, time.Duration, error) {}
func (nopRecorder) SetSaveFailureStreak(string, int) {}
func (nopRecorder) SetRegisteredUsers(int) {}

// Package store is the in-memory, multi-user record store. A single
// read/write lock guards every map, and the commit hook runs inside the write
// lock so a snapshot always matches the state that produced it.
package store

import (
	"sync"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// CommitHook receives a full snapshot after every successful mutation. It is
// called with the store's write lock held and must not call back into the
// store.
type CommitHook func(snap *domain.Snapshot)

// Option configures a Store built by New.
type Option func(*Store)

// WithCommitHook installs the hook run after each mutation.
func WithCommitHook(h CommitHook) Option {
	return func(s *Store) { s.onCommit = h }
}

// WithTokenSource replaces the default 32-character token source.
func WithTokenSource(src TokenSource) Option {
	return func(s *Store) {
		if src != nil {
			s.newToken = src
		}
	}
}

type identity struct {
	profile    domain.UserProfile
	credential string
	token      string
}

// Store owns identities, session tokens and the four record collections.
type Store struct {
	mu sync.RWMutex

	users  map[string]*identity
	order  []string          // registration order, used for snapshots
	tokens map[string]string // token -> user name

	waters     collection[domain.WaterRecord]
	sleeps     collection[domain.SleepRecord]
	activities collection[domain.ActivityRecord]
	categories map[string]*categoryBook

	onCommit CommitHook
	newToken TokenSource
}

// New builds a store seeded from snap, which may be nil.
func New(snap *domain.Snapshot, opts ...Option) *Store {
	s := &Store{
		users:      make(map[string]*identity),
		tokens:     make(map[string]string),
		waters:     newCollection[domain.WaterRecord](),
		sleeps:     newCollection[domain.SleepRecord](),
		activities: newCollection[domain.ActivityRecord](),
		categories: make(map[string]*categoryBook),
		newToken:   NewTokenSource(DefaultTokenLength),
	}
	for _, opt := range opts {
		opt(s)
	}
	if snap != nil {
		s.importLocked(snap)
	}
	return s
}

// UserCount returns the number of registered identities.
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Snapshot exports the current state.
func (s *Store) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exportLocked()
}

// mutate runs fn under the write lock and commits when it succeeds.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	s.commitLocked()
	return nil
}

func (s *Store) commitLocked() {
	if s.onCommit != nil {
		s.onCommit(s.exportLocked())
	}
}

// read runs fn under the read lock after checking that user exists.
func (s *Store) read(user string, fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[user]; !ok {
		return domain.ErrUserNotFound
	}
	return fn()
}

// write is mutate with the same existence check as read.
func (s *Store) write(user string, fn func() error) error {
	return s.mutate(func() error {
		if _, ok := s.users[user]; !ok {
			return domain.ErrUserNotFound
		}
		return fn()
	})
}

func (s *Store) exportLocked() *domain.Snapshot {
	snap := &domain.Snapshot{Users: make([]domain.UserSnapshot, 0, len(s.order))}
	for _, name := range s.order {
		u := s.users[name]
		snap.Users = append(snap.Users, domain.UserSnapshot{
			UserProfile: u.profile,
			Password:    u.credential,
			Token:       u.token,
			Waters:      s.waters.list(name),
			Sleeps:      s.sleeps.list(name),
			Activities:  s.activities.list(name),
			Categories:  s.book(name).export(),
		})
	}
	return snap
}

// importLocked loads the identities of snap. Entries without a name, and
// later duplicates of an already imported name or token, are skipped.
func (s *Store) importLocked(snap *domain.Snapshot) {
	for _, u := range snap.Users {
		if u.Name == "" {
			continue
		}
		if _, dup := s.users[u.Name]; dup {
			continue
		}
		id := &identity{profile: u.UserProfile, credential: u.Password}
		if u.Token != "" {
			if _, taken := s.tokens[u.Token]; !taken {
				id.token = u.Token
				s.tokens[u.Token] = u.Name
			}
		}
		s.users[u.Name] = id
		s.order = append(s.order, u.Name)

		s.waters.set(u.Name, u.Waters)
		s.sleeps.set(u.Name, u.Sleeps)
		s.activities.set(u.Name, u.Activities)
		if len(u.Categories) > 0 {
			s.categories[u.Name] = importBook(u.Categories)
		}
	}
}

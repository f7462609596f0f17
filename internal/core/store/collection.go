package store

import (
	"slices"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// collection keeps one insertion-ordered sequence of records per user. The
// position in the sequence is the only record identifier: removing an entry
// shifts every later entry down by one.
type collection[T any] struct {
	byUser map[string][]T
}

func newCollection[T any]() collection[T] {
	return collection[T]{byUser: make(map[string][]T)}
}

func (c collection[T]) add(user string, rec T) {
	c.byUser[user] = append(c.byUser[user], rec)
}

func (c collection[T]) replace(user string, index int, rec T) error {
	recs := c.byUser[user]
	if index < 0 || index >= len(recs) {
		return domain.ErrIndexOutOfRange
	}
	recs[index] = rec
	return nil
}

func (c collection[T]) remove(user string, index int) error {
	recs := c.byUser[user]
	if index < 0 || index >= len(recs) {
		return domain.ErrIndexOutOfRange
	}
	c.byUser[user] = slices.Delete(recs, index, index+1)
	return nil
}

// list returns a copy that callers may keep; never nil.
func (c collection[T]) list(user string) []T {
	recs := c.byUser[user]
	out := make([]T, len(recs))
	copy(out, recs)
	return out
}

func (c collection[T]) view(user string) []T {
	return c.byUser[user]
}

func (c collection[T]) sortStable(user string, cmp func(a, b T) int) {
	slices.SortStableFunc(c.byUser[user], cmp)
}

func (c collection[T]) set(user string, recs []T) {
	if len(recs) == 0 {
		delete(c.byUser, user)
		return
	}
	c.byUser[user] = slices.Clone(recs)
}

func (c collection[T]) drop(user string) {
	delete(c.byUser, user)
}

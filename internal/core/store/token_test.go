package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/healthlog/health-backend/internal/core/domain"
)

func TestNewTokenSource_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{24, 28, 32} {
		tok, err := NewTokenSource(length)()
		require.NoError(t, err)
		require.Len(t, tok, length)
		for _, r := range tok {
			require.True(t, strings.ContainsRune(tokenAlphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestNewTokenSource_OutOfRangeFallsBack(t *testing.T) {
	for _, length := range []int{0, 10, 64} {
		tok, err := NewTokenSource(length)()
		require.NoError(t, err)
		require.Len(t, tok, DefaultTokenLength)
	}
}

func TestNewTokenSource_Distinct(t *testing.T) {
	src := NewTokenSource(DefaultTokenLength)
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		tok, err := src()
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup)
		seen[tok] = struct{}{}
	}
}

func TestRegister_RetriesOnTokenCollision(t *testing.T) {
	tokens := []string{"AAAA", "AAAA", "BBBB"}
	src := func() (string, error) {
		tok := tokens[0]
		tokens = tokens[1:]
		return tok, nil
	}
	s := New(nil, WithTokenSource(src))

	first, err := s.Register(domain.UserProfile{Name: "amy"}, "pass")
	require.NoError(t, err)
	require.Equal(t, "AAAA", first)

	second, err := s.Register(domain.UserProfile{Name: "bob"}, "pass")
	require.NoError(t, err)
	require.Equal(t, "BBBB", second)
}

func TestRegister_TokenSourceFailure(t *testing.T) {
	boom := errors.New("no entropy")
	s := New(nil, WithTokenSource(func() (string, error) { return "", boom }))

	_, err := s.Register(domain.UserProfile{Name: "amy"}, "pass")
	require.ErrorIs(t, err, boom)
	require.Zero(t, s.UserCount())
}

package store

import (
	"crypto/rand"
	"fmt"
)

const (
	tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	MinTokenLength     = 24
	MaxTokenLength     = 32
	DefaultTokenLength = MaxTokenLength

	// rejectAbove is the largest multiple of len(tokenAlphabet) that fits in
	// a byte; bytes at or above it are discarded so every symbol is equally
	// likely.
	rejectAbove = 256 - 256%len(tokenAlphabet)
)

// TokenSource mints session tokens.
type TokenSource func() (string, error)

// NewTokenSource returns a TokenSource producing alphanumeric tokens of the
// given length drawn from crypto/rand. Lengths outside [24, 32] fall back to
// 32.
func NewTokenSource(length int) TokenSource {
	if length < MinTokenLength || length > MaxTokenLength {
		length = DefaultTokenLength
	}
	return func() (string, error) {
		out := make([]byte, 0, length)
		buf := make([]byte, length*2)
		for len(out) < length {
			if _, err := rand.Read(buf); err != nil {
				return "", fmt.Errorf("token entropy: %w", err)
			}
			for _, b := range buf {
				if int(b) >= rejectAbove {
					continue
				}
				out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
				if len(out) == length {
					break
				}
			}
		}
		return string(out), nil
	}
}

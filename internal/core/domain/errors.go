package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrCategoryExists     = errors.New("category already exists")

	// ErrNotFound is the parent of every lookup failure below.
	ErrNotFound         = errors.New("not found")
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrIndexOutOfRange  = fmt.Errorf("record index %w", ErrNotFound)

	ErrPersistence     = errors.New("snapshot could not be written")
	ErrCorruptSnapshot = errors.New("persisted snapshot is corrupt")
)

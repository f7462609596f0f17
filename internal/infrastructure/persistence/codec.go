// Package persistence holds the JSON snapshot codec shared by every backend
// and the file-backed snapshot repository.
package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// Encode renders snap as indented JSON. A nil snapshot encodes as an empty
// user list.
func Encode(snap *domain.Snapshot) ([]byte, error) {
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	out := *snap
	if out.Users == nil {
		out.Users = []domain.UserSnapshot{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot document. Blank input is an empty snapshot;
// anything unparsable wraps domain.ErrCorruptSnapshot.
func Decode(data []byte) (*domain.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &domain.Snapshot{}, nil
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

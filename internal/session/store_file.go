package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"kaziid/internal/identity"
	"kaziid/pkg/platform/sentinel"
)

const snapshotFile = "session.json"

// FileSnapshot persists the slot as one JSON file, matching the
// single-installation deployment where the session lives on the device.
// Writes go through a temp file then rename so a crash mid-write leaves
// the previous snapshot intact.
type FileSnapshot struct {
	dir string
	mu  sync.Mutex
}

// NewFileSnapshot returns a FileSnapshot rooted at dir.
func NewFileSnapshot(dir string) *FileSnapshot {
	return &FileSnapshot{dir: dir}
}

func (s *FileSnapshot) Save(_ context.Context, ident identity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(ident, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path := s.path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshot) Load(_ context.Context) (identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return identity.Identity{}, sentinel.ErrNotFound
	}
	if err != nil {
		return identity.Identity{}, fmt.Errorf("read snapshot: %w", err)
	}

	var ident identity.Identity
	if err := json.Unmarshal(b, &ident); err != nil {
		return identity.Identity{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return ident, nil
}

func (s *FileSnapshot) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshot) path() string {
	return filepath.Join(s.dir, snapshotFile)
}

// Compile-time assertion that FileSnapshot implements SnapshotStore.
var _ SnapshotStore = (*FileSnapshot)(nil)

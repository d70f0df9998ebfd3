package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	observeout "passby/internal/modules/observe/port/out"
	apperrors "passby/internal/platform/errors"
)

// FileStateStore keeps one JSON file per key under the state directory.
// Writes are whole-value overwrites from a single thread, so no locking is
// needed.
type FileStateStore struct {
	dir string
}

func NewFileStateStore(statePath string) observeout.StateStore {
	return &FileStateStore{dir: statePath}
}

func (s *FileStateStore) path(key string) string {
	// Keys are internal constants, but keep path traversal out anyway.
	name := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStateStore) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrKeyNotFound
		}
		return nil, fmt.Errorf("read state %s: %w", key, err)
	}
	return raw, nil
}

func (s *FileStateStore) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), value, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	return nil
}

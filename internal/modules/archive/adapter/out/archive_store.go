package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"passby/internal/modules/archive/domain"
	archiveout "passby/internal/modules/archive/port/out"
)

// FileArchiveStore persists the full archive list as one JSON document,
// rewritten on every mutation. Missing or corrupt data loads as an empty
// list so startup never fails on storage problems.
type FileArchiveStore struct {
	path string
}

func NewFileArchiveStore(statePath string) archiveout.Store {
	return &FileArchiveStore{path: filepath.Join(statePath, "archives.json")}
}

func (s *FileArchiveStore) Load(_ context.Context) ([]domain.Archived, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Archived{}, nil
		}
		return nil, fmt.Errorf("read archive store: %w", err)
	}
	var archives []domain.Archived
	if err := json.Unmarshal(raw, &archives); err != nil {
		return []domain.Archived{}, nil
	}
	return archives, nil
}

func (s *FileArchiveStore) Save(_ context.Context, archives []domain.Archived) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	if archives == nil {
		archives = []domain.Archived{}
	}
	payload, err := json.MarshalIndent(archives, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal archives: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write archive store: %w", err)
	}
	return nil
}

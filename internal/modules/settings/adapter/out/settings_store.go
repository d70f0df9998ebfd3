package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"passby/internal/modules/settings/domain"
	settingsout "passby/internal/modules/settings/port/out"
)

const settingsFile = "settings.json"

// FileSettingsStore keeps settings as a single JSON document in the data
// directory.
type FileSettingsStore struct {
	dir string
}

var _ settingsout.Store = (*FileSettingsStore)(nil)

func NewFileSettingsStore(dir string) *FileSettingsStore {
	return &FileSettingsStore{dir: dir}
}

// Path is the watched settings file location.
func (s *FileSettingsStore) Path() string {
	return filepath.Join(s.dir, settingsFile)
}

func (s *FileSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (s *FileSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

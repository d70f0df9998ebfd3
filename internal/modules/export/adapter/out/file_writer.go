package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	exportout "passby/internal/modules/export/port/out"
)

// FileWriter lands exports in a directory, creating it on demand.
type FileWriter struct {
	dir string
}

var _ exportout.Writer = (*FileWriter)(nil)

func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

func (w *FileWriter) Write(_ context.Context, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

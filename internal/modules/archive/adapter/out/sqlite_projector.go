package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"passby/internal/modules/archive/domain"
	archiveout "passby/internal/modules/archive/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteArchiveProjector struct {
	db *sql.DB
}

func NewSQLiteArchiveProjector(dbPath string) (archiveout.IndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteArchiveProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteArchiveProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS archives (
  id TEXT PRIMARY KEY,
  created_at TEXT NOT NULL,
  started_at TEXT,
  ended_at TEXT,
  location TEXT NOT NULL,
  entry_count INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create archives table: %w", err)
	}
	return nil
}

func (s *SQLiteArchiveProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM archives`); err != nil {
		return fmt.Errorf("reset archives: %w", err)
	}
	return nil
}

func (s *SQLiteArchiveProjector) Upsert(ctx context.Context, summary domain.Summary) error {
	const stmt = `
INSERT INTO archives (id, created_at, started_at, ended_at, location, entry_count)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  created_at=excluded.created_at,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  location=excluded.location,
  entry_count=excluded.entry_count;
`
	_, err := s.db.ExecContext(ctx, stmt,
		summary.ID,
		summary.CreatedAt.Format(timeLayout),
		optionalTime(summary.StartedAt),
		optionalTime(summary.EndedAt),
		summary.Location,
		summary.EntryCount,
	)
	if err != nil {
		return fmt.Errorf("upsert archive: %w", err)
	}
	return nil
}

func (s *SQLiteArchiveProjector) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM archives WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove archive: %w", err)
	}
	return nil
}

func optionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

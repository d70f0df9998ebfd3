package out

import (
	"context"

	"passby/internal/modules/export/domain"
)

// SessionSource supplies the live session as an export report.
type SessionSource interface {
	Snapshot(ctx context.Context) (domain.Report, error)
}

// ArchiveSource supplies an archived session as an export report.
type ArchiveSource interface {
	Snapshot(ctx context.Context, id string) (domain.Report, error)
}

// Writer persists a rendered export and returns its full path.
type Writer interface {
	Write(ctx context.Context, filename string, data []byte) (string, error)
}

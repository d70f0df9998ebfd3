package in

import (
	"context"

	"passby/internal/modules/export/dto"
)

// Usecase is the inbound port for CSV exports.
type Usecase interface {
	// ExportSession exports the live session's logs and info.
	ExportSession(ctx context.Context) (dto.ExportOutput, error)
	// ExportArchive exports an archived session by id.
	ExportArchive(ctx context.Context, id string) (dto.ExportOutput, error)
}

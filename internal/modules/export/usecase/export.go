package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"passby/internal/modules/export/domain"
	"passby/internal/modules/export/dto"
	exportin "passby/internal/modules/export/port/in"
	exportout "passby/internal/modules/export/port/out"
	"passby/internal/modules/export/service"
)

type Interactor struct {
	sessions  exportout.SessionSource
	archives  exportout.ArchiveSource
	formatter *service.Formatter
	writer    exportout.Writer
	logger    *slog.Logger
}

var _ exportin.Usecase = (*Interactor)(nil)

func NewInteractor(
	sessions exportout.SessionSource,
	archives exportout.ArchiveSource,
	formatter *service.Formatter,
	writer exportout.Writer,
	logger *slog.Logger,
) *Interactor {
	return &Interactor{
		sessions:  sessions,
		archives:  archives,
		formatter: formatter,
		writer:    writer,
		logger:    logger,
	}
}

func (i *Interactor) ExportSession(ctx context.Context) (dto.ExportOutput, error) {
	report, err := i.sessions.Snapshot(ctx)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("snapshot session: %w", err)
	}
	return i.export(ctx, report)
}

func (i *Interactor) ExportArchive(ctx context.Context, id string) (dto.ExportOutput, error) {
	report, err := i.archives.Snapshot(ctx, id)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("snapshot archive %s: %w", id, err)
	}
	return i.export(ctx, report)
}

func (i *Interactor) export(ctx context.Context, report domain.Report) (dto.ExportOutput, error) {
	filename := i.formatter.Filename(report)
	data := i.formatter.Render(report)

	path, err := i.writer.Write(ctx, filename, data)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("write export: %w", err)
	}
	i.logger.Info("export written", "path", path, "entries", len(report.Rows))
	return dto.ExportOutput{Filename: filename, Path: path, EntryCount: len(report.Rows)}, nil
}

package in

import (
	"context"

	"passby/internal/modules/observe/dto"
)

type Usecase interface {
	Status(ctx context.Context) (dto.StatusOutput, error)
	BeginSetup(ctx context.Context) (dto.StatusOutput, error)
	CancelSetup(ctx context.Context) (dto.StatusOutput, error)
	Start(ctx context.Context) (dto.StatusOutput, error)
	Stop(ctx context.Context) (dto.StatusOutput, error)
	Resume(ctx context.Context) (dto.StatusOutput, error)
	Archive(ctx context.Context) (dto.ArchiveOutput, error)
	Discard(ctx context.Context) error
	UpdateInfo(ctx context.Context, input dto.InfoPatchInput) (dto.StatusOutput, error)

	AddLog(ctx context.Context, input dto.AddLogInput) (dto.EntryOutput, error)
	UndoLog(ctx context.Context) (dto.UndoOutput, error)
	UpdateLog(ctx context.Context, input dto.UpdateLogInput) (dto.EntryOutput, error)
	DeleteLog(ctx context.Context, id string) error
	ListLogs(ctx context.Context) ([]dto.EntryOutput, error)
}

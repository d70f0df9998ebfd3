package in

import (
	"context"

	observedto "passby/internal/modules/observe/dto"
	observein "passby/internal/modules/observe/port/in"
)

type CLIHandler struct {
	usecase observein.Usecase
}

func NewCLIHandler(usecase observein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (observedto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) BeginSetup(ctx context.Context) (observedto.StatusOutput, error) {
	return h.usecase.BeginSetup(ctx)
}

func (h CLIHandler) CancelSetup(ctx context.Context) (observedto.StatusOutput, error) {
	return h.usecase.CancelSetup(ctx)
}

func (h CLIHandler) Start(ctx context.Context) (observedto.StatusOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (observedto.StatusOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (observedto.StatusOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Archive(ctx context.Context) (observedto.ArchiveOutput, error) {
	return h.usecase.Archive(ctx)
}

func (h CLIHandler) Discard(ctx context.Context) error {
	return h.usecase.Discard(ctx)
}

func (h CLIHandler) UpdateInfo(ctx context.Context, location, note *string) (observedto.StatusOutput, error) {
	return h.usecase.UpdateInfo(ctx, observedto.InfoPatchInput{Location: location, Note: note})
}

func (h CLIHandler) AddLog(ctx context.Context, side string, group bool, category string) (observedto.EntryOutput, error) {
	return h.usecase.AddLog(ctx, observedto.AddLogInput{Side: side, Group: group, Category: category})
}

func (h CLIHandler) UndoLog(ctx context.Context) (observedto.UndoOutput, error) {
	return h.usecase.UndoLog(ctx)
}

func (h CLIHandler) UpdateLog(ctx context.Context, input observedto.UpdateLogInput) (observedto.EntryOutput, error) {
	return h.usecase.UpdateLog(ctx, input)
}

func (h CLIHandler) DeleteLog(ctx context.Context, id string) error {
	return h.usecase.DeleteLog(ctx, id)
}

func (h CLIHandler) ListLogs(ctx context.Context) ([]observedto.EntryOutput, error) {
	return h.usecase.ListLogs(ctx)
}

package in

import (
	"context"

	exportdto "passby/internal/modules/export/dto"
	exportin "passby/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ExportSession(ctx context.Context) (exportdto.ExportOutput, error) {
	return h.usecase.ExportSession(ctx)
}

func (h CLIHandler) ExportArchive(ctx context.Context, id string) (exportdto.ExportOutput, error) {
	return h.usecase.ExportArchive(ctx, id)
}

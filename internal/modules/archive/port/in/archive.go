package in

import (
	"context"

	"passby/internal/modules/archive/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.SummaryOutput, error)
	List(ctx context.Context) ([]dto.SummaryOutput, error)
	Get(ctx context.Context, id string) (dto.ArchivedOutput, error)
	Delete(ctx context.Context, id string) error
	Reindex(ctx context.Context) error
}

package in

import (
	"context"

	"passby/internal/modules/feedback/dto"
)

// Usecase is the inbound port for operator feedback.
type Usecase interface {
	Emit(ctx context.Context, input dto.EmitInput) error
	Configure(ctx context.Context, input dto.ConfigureInput) error
}

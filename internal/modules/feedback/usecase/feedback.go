package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"passby/internal/modules/feedback/domain"
	"passby/internal/modules/feedback/dto"
	feedbackin "passby/internal/modules/feedback/port/in"
	feedbackout "passby/internal/modules/feedback/port/out"
	"passby/internal/modules/feedback/service"
	apperrors "passby/internal/platform/errors"
)

// Interactor emits operator feedback through the configured sink. Sink
// failures are logged and swallowed: feedback is advisory and must never
// disturb recording.
type Interactor struct {
	service *service.FeedbackService
	sink    feedbackout.Sink
	logger  *slog.Logger
}

var _ feedbackin.Usecase = (*Interactor)(nil)

func NewInteractor(svc *service.FeedbackService, sink feedbackout.Sink, logger *slog.Logger) *Interactor {
	return &Interactor{service: svc, sink: sink, logger: logger}
}

func (i *Interactor) Emit(ctx context.Context, input dto.EmitInput) error {
	kind := domain.Kind(input.Kind)
	if err := kind.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	override := domain.Pattern(input.Pattern)
	if err := override.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	pattern, ok := i.service.Resolve(kind, override)
	if !ok {
		return nil
	}
	if err := i.sink.Emit(ctx, kind, pattern); err != nil {
		i.logger.Warn("feedback sink failed", "kind", string(kind), "error", err)
	}
	return nil
}

func (i *Interactor) Configure(_ context.Context, input dto.ConfigureInput) error {
	i.service.Configure(input.Enabled, input.Patterns)
	return nil
}

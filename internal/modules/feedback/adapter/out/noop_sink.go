package out

import (
	"context"

	"passby/internal/modules/feedback/domain"
	feedbackout "passby/internal/modules/feedback/port/out"
)

// NoopSink discards all feedback. Used when feedback is disabled or no
// surface is available.
type NoopSink struct{}

func NewNoopSink() feedbackout.Sink {
	return &NoopSink{}
}

func (NoopSink) Emit(context.Context, domain.Kind, domain.Pattern) error {
	return nil
}

func (NoopSink) Close() error {
	return nil
}

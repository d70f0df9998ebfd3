package out

import (
	"context"

	"passby/internal/modules/feedback/domain"
)

// Sink plays a feedback pattern on whatever hardware or surface is
// available. Implementations must tolerate patterns they cannot render
// faithfully (e.g. a terminal bell collapsing durations to pulses).
type Sink interface {
	Emit(ctx context.Context, kind domain.Kind, pattern domain.Pattern) error
	Close() error
}

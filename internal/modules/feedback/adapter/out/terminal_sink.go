package out

import (
	"context"
	"io"

	"passby/internal/modules/feedback/domain"
	feedbackout "passby/internal/modules/feedback/port/out"
)

// TerminalSink renders feedback as terminal bells. Durations collapse to
// pulse counts since the bell has no amplitude or length.
type TerminalSink struct {
	w io.Writer
}

func NewTerminalSink(w io.Writer) feedbackout.Sink {
	return &TerminalSink{w: w}
}

func (s *TerminalSink) Emit(_ context.Context, _ domain.Kind, pattern domain.Pattern) error {
	pulses := pattern.Pulses()
	if pulses == 0 {
		return nil
	}
	if pulses > 3 {
		pulses = 3
	}
	for i := 0; i < pulses; i++ {
		if _, err := s.w.Write([]byte{'\a'}); err != nil {
			return err
		}
	}
	return nil
}

func (s *TerminalSink) Close() error {
	return nil
}

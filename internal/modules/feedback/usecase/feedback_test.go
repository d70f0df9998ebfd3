package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"passby/internal/modules/feedback/domain"
	"passby/internal/modules/feedback/dto"
	"passby/internal/modules/feedback/service"
	apperrors "passby/internal/platform/errors"
)

type recordingSink struct {
	kinds    []domain.Kind
	patterns []domain.Pattern
	fail     bool
}

func (s *recordingSink) Emit(_ context.Context, kind domain.Kind, pattern domain.Pattern) error {
	if s.fail {
		return errors.New("sink unavailable")
	}
	s.kinds = append(s.kinds, kind)
	s.patterns = append(s.patterns, pattern)
	return nil
}

func (s *recordingSink) Close() error { return nil }

func newInteractor(sink *recordingSink) *Interactor {
	return NewInteractor(service.NewFeedbackService(), sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEmitUsesDefaultPattern(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	interactor := newInteractor(sink)

	if err := interactor.Emit(context.Background(), dto.EmitInput{Kind: "record"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(sink.kinds) != 1 || sink.kinds[0] != domain.KindRecord {
		t.Fatalf("expected one record emit, got %v", sink.kinds)
	}
	if len(sink.patterns[0]) == 0 {
		t.Fatal("expected a non-empty default pattern")
	}
}

func TestEmitOverridePattern(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	interactor := newInteractor(sink)

	if err := interactor.Emit(context.Background(), dto.EmitInput{Kind: "undo", Pattern: []int{5, 5, 5}}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	got := sink.patterns[0]
	if len(got) != 3 || got[0] != 5 {
		t.Fatalf("override pattern not passed through, got %v", got)
	}
}

func TestEmitRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	interactor := newInteractor(&recordingSink{})
	err := interactor.Emit(context.Background(), dto.EmitInput{Kind: "buzz"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEmitSinkFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	interactor := newInteractor(&recordingSink{fail: true})
	if err := interactor.Emit(context.Background(), dto.EmitInput{Kind: "success"}); err != nil {
		t.Fatalf("sink failure must not surface, got %v", err)
	}
}

func TestConfigureDisablesFeedback(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	interactor := newInteractor(sink)

	if err := interactor.Configure(context.Background(), dto.ConfigureInput{Enabled: false}); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := interactor.Emit(context.Background(), dto.EmitInput{Kind: "record"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(sink.kinds) != 0 {
		t.Fatalf("disabled feedback must not reach the sink, got %v", sink.kinds)
	}
}

func TestConfigureOverridesPattern(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	interactor := newInteractor(sink)

	input := dto.ConfigureInput{
		Enabled: true,
		Patterns: map[string][]int{
			"record": {99},
			"bogus":  {1},       // unknown kind, skipped
			"undo":   {10, -10}, // invalid pattern, skipped
		},
	}
	if err := interactor.Configure(context.Background(), input); err != nil {
		t.Fatalf("configure: %v", err)
	}

	if err := interactor.Emit(context.Background(), dto.EmitInput{Kind: "record"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := sink.patterns[0]; len(got) != 1 || got[0] != 99 {
		t.Fatalf("expected configured pattern [99], got %v", got)
	}

	if err := interactor.Emit(context.Background(), dto.EmitInput{Kind: "undo"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	defaults := domain.DefaultPatterns()[domain.KindUndo]
	if got := sink.patterns[1]; len(got) != len(defaults) {
		t.Fatalf("invalid override must keep the default, got %v", got)
	}
}

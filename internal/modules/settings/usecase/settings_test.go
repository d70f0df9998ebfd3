package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"passby/internal/modules/settings/domain"
	"passby/internal/modules/settings/dto"
)

type memStore struct {
	settings *domain.Settings
	saveErr  error
}

func (s *memStore) Load(context.Context) (domain.Settings, error) {
	if s.settings == nil {
		return domain.Settings{}, errors.New("no settings file")
	}
	return *s.settings, nil
}

func (s *memStore) Save(_ context.Context, settings domain.Settings) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.settings = &settings
	return nil
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func discard() *slog.Logger   { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestGetFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	interactor := NewInteractor(&memStore{}, discard())
	out, err := interactor.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !out.FeedbackEnabled || out.ExportPrefix != "passby" || out.NoteSuffixRunes != 20 {
		t.Fatalf("expected defaults, got %+v", out)
	}
}

func TestGetKeepsFeedbackOnWhenFlagMissing(t *testing.T) {
	t.Parallel()

	store := &memStore{settings: &domain.Settings{ExportPrefix: "fieldwork", NoteSuffixRunes: 8}}
	interactor := NewInteractor(store, discard())
	out, err := interactor.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !out.FeedbackEnabled {
		t.Fatal("a missing feedback flag must stay enabled")
	}
	if out.ExportPrefix != "fieldwork" || out.NoteSuffixRunes != 8 {
		t.Fatalf("present values lost: %+v", out)
	}
}

func TestUpdateIsPartial(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	interactor := NewInteractor(store, discard())

	if _, err := interactor.Update(context.Background(), dto.UpdateInput{ExportPrefix: strPtr("fieldwork")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	out, err := interactor.Update(context.Background(), dto.UpdateInput{FeedbackEnabled: boolPtr(false)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.ExportPrefix != "fieldwork" {
		t.Fatalf("prefix lost on partial update: %+v", out)
	}
	if out.FeedbackEnabled {
		t.Fatal("feedback flag not updated")
	}
}

func TestUpdateNormalizesValues(t *testing.T) {
	t.Parallel()

	interactor := NewInteractor(&memStore{}, discard())
	out, err := interactor.Update(context.Background(), dto.UpdateInput{
		ExportPrefix:    strPtr(""),
		NoteSuffixRunes: intPtr(-3),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.ExportPrefix != "passby" || out.NoteSuffixRunes != 20 {
		t.Fatalf("expected normalized defaults, got %+v", out)
	}
}

func TestUpdateNotifiesAppliers(t *testing.T) {
	t.Parallel()

	var applied []domain.Settings
	interactor := NewInteractor(&memStore{}, discard(), func(s domain.Settings) {
		applied = append(applied, s)
	})

	if _, err := interactor.Update(context.Background(), dto.UpdateInput{FeedbackEnabled: boolPtr(false)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(applied) != 1 || applied[0].Enabled() {
		t.Fatalf("applier not invoked with new settings: %+v", applied)
	}
}

func TestUpdateSaveFailureSurfaces(t *testing.T) {
	t.Parallel()

	interactor := NewInteractor(&memStore{saveErr: errors.New("disk full")}, discard())
	if _, err := interactor.Update(context.Background(), dto.UpdateInput{FeedbackEnabled: boolPtr(false)}); err == nil {
		t.Fatal("expected save error to surface")
	}
}

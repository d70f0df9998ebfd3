package out

import (
	"context"
	"os"
	"testing"

	"passby/internal/modules/settings/domain"
)

func TestFileSettingsStoreRoundTrip(t *testing.T) {
	t.Parallel()

	disabled := false
	store := NewFileSettingsStore(t.TempDir())
	in := domain.Settings{
		FeedbackEnabled: &disabled,
		Patterns:        map[string][]int{"record": {25}},
		ExportPrefix:    "fieldwork",
		NoteSuffixRunes: 12,
	}
	if err := store.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.ExportPrefix != "fieldwork" || out.NoteSuffixRunes != 12 || out.Enabled() {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if len(out.Patterns["record"]) != 1 || out.Patterns["record"][0] != 25 {
		t.Fatalf("patterns lost: %+v", out.Patterns)
	}
}

func TestFileSettingsStorePartialFileKeepsFeedbackDefault(t *testing.T) {
	t.Parallel()

	store := NewFileSettingsStore(t.TempDir())
	raw := []byte(`{"exportPrefix":"fieldwork","noteSuffixRunes":8}`)
	if err := os.WriteFile(store.Path(), raw, 0o644); err != nil {
		t.Fatalf("seed partial file: %v", err)
	}

	out, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out = out.Normalize()
	if !out.Enabled() {
		t.Fatal("missing feedbackEnabled key must keep feedback on")
	}
	if out.ExportPrefix != "fieldwork" || out.NoteSuffixRunes != 8 {
		t.Fatalf("present keys lost: %+v", out)
	}
}

func TestFileSettingsStoreMissingFile(t *testing.T) {
	t.Parallel()

	store := NewFileSettingsStore(t.TempDir())
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected an error for a missing settings file")
	}
}

func TestFileSettingsStoreCorruptFile(t *testing.T) {
	t.Parallel()

	store := NewFileSettingsStore(t.TempDir())
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected an error for a corrupt settings file")
	}
}

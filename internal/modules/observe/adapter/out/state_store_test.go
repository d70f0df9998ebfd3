package out_test

import (
	"context"
	"errors"
	"testing"

	out "passby/internal/modules/observe/adapter/out"
	apperrors "passby/internal/platform/errors"
)

func TestFileStateStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := out.NewFileStateStore(t.TempDir())

	if _, err := store.Get(context.Background(), "logs"); !errors.Is(err, apperrors.ErrKeyNotFound) {
		t.Fatalf("missing key: err = %v, want ErrKeyNotFound", err)
	}

	payload := []byte(`[{"id":"a"}]`)
	if err := store.Set(context.Background(), "logs", payload); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.Get(context.Background(), "logs")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("get = %s, want %s", got, payload)
	}

	// Full-value overwrite.
	if err := store.Set(context.Background(), "logs", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = store.Get(context.Background(), "logs")
	if string(got) != `[]` {
		t.Fatalf("overwrite kept stale value: %s", got)
	}
}

func TestFileStateStoreCreatesDirOnDemand(t *testing.T) {
	t.Parallel()
	dir := t.TempDir() + "/nested/state"
	store := out.NewFileStateStore(dir)
	if err := store.Set(context.Background(), "session", []byte(`{}`)); err != nil {
		t.Fatalf("set into missing dir: %v", err)
	}
}

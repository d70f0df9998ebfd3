package service_test

import (
	"errors"
	"testing"
	"time"

	"passby/internal/modules/observe/domain"
	"passby/internal/modules/observe/service"
	apperrors "passby/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return string(rune('a' + s.n - 1))
}

func newRecorder(times ...time.Time) *service.Recorder {
	if len(times) == 0 {
		times = []time.Time{time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)}
	}
	return service.NewRecorder(&fakeClock{values: times}, &seqID{})
}

func TestLifecycleSetupStartStopResumeArchive(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	entryAt := start.Add(5 * time.Minute)
	end := start.Add(30 * time.Minute)
	r := newRecorder(start, entryAt, end)

	if r.Phase() != domain.PhaseIdle {
		t.Fatalf("initial phase = %s, want idle", r.Phase())
	}
	if err := r.BeginSetup(); err != nil {
		t.Fatalf("begin setup: %v", err)
	}
	loc := "north plaza"
	if err := r.UpdateInfo(&loc, nil); err != nil {
		t.Fatalf("update info: %v", err)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := r.Info().StartedAt; got == nil || !got.Equal(start) {
		t.Fatalf("started at = %v, want %v", got, start)
	}

	entry, err := r.AddEntry(domain.SideRight, false, domain.CategoryUse)
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if !entry.Flags.Use || !entry.Flags.Stop || !entry.Flags.Look || !entry.Flags.Pass {
		t.Fatalf("use entry must carry the full flag chain, got %+v", entry.Flags)
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if got := r.Info().EndedAt; got == nil || !got.Equal(end) {
		t.Fatalf("ended at = %v, want %v", got, end)
	}

	info, entries, err := r.ArchiveSnapshot()
	if err != nil {
		t.Fatalf("archive snapshot: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Fatalf("snapshot entries = %v", entries)
	}
	if info.Location != "north plaza" {
		t.Fatalf("snapshot location = %q", info.Location)
	}
	r.FinishArchive()

	if r.Phase() != domain.PhaseIdle {
		t.Fatalf("phase after archive = %s, want idle", r.Phase())
	}
	if r.LogLen() != 0 {
		t.Fatalf("log not emptied after archive")
	}
	if !r.Info().Empty() {
		t.Fatalf("session info not reset after archive: %+v", r.Info())
	}
}

func TestStartKeepsExistingStartInstantAcrossResumeCycles(t *testing.T) {
	t.Parallel()
	first := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	stop := first.Add(10 * time.Minute)
	r := newRecorder(first, stop)

	mustNoErr(t, r.BeginSetup())
	mustNoErr(t, r.Start())
	mustNoErr(t, r.Stop())
	mustNoErr(t, r.Resume())

	if got := r.Info().StartedAt; got == nil || !got.Equal(first) {
		t.Fatalf("resume changed logical start: %v", got)
	}
	if r.Info().EndedAt != nil {
		t.Fatalf("resume must clear the end instant")
	}
}

func TestCancelSetupKeepsInfoEdits(t *testing.T) {
	t.Parallel()
	r := newRecorder()
	mustNoErr(t, r.BeginSetup())
	loc, note := "riverside", "windy day"
	mustNoErr(t, r.UpdateInfo(&loc, &note))
	mustNoErr(t, r.CancelSetup())

	if r.Phase() != domain.PhaseIdle {
		t.Fatalf("phase = %s, want idle", r.Phase())
	}
	if r.Info().Location != "riverside" || r.Info().Note != "windy day" {
		t.Fatalf("cancel setup discarded info edits: %+v", r.Info())
	}

	// A restarted setup reuses the metadata.
	mustNoErr(t, r.BeginSetup())
	if r.Info().Location != "riverside" {
		t.Fatalf("restarted setup lost location")
	}
}

func TestAddEntryOutsideRecording(t *testing.T) {
	t.Parallel()
	r := newRecorder()
	if _, err := r.AddEntry(domain.SideLeft, false, domain.CategoryPass); !errors.Is(err, apperrors.ErrNotRecording) {
		t.Fatalf("add in idle: err = %v, want ErrNotRecording", err)
	}
	mustNoErr(t, r.BeginSetup())
	if _, err := r.AddEntry(domain.SideLeft, false, domain.CategoryPass); !errors.Is(err, apperrors.ErrNotRecording) {
		t.Fatalf("add in setup: err = %v, want ErrNotRecording", err)
	}
}

func TestEditsLegalWhileFinishing(t *testing.T) {
	t.Parallel()
	r := newRecorder()
	mustNoErr(t, r.BeginSetup())
	mustNoErr(t, r.Start())
	entry, err := r.AddEntry(domain.SideLeft, true, domain.CategoryLook)
	mustNoErr(t, err)
	mustNoErr(t, r.Stop())

	stop := domain.CategoryStop
	updated, err := r.UpdateEntry(entry.ID, domain.Patch{Category: &stop})
	mustNoErr(t, err)
	if updated.Category != domain.CategoryStop || !updated.Flags.Stop {
		t.Fatalf("finishing-phase edit failed: %+v", updated)
	}
	if _, ok := r.UndoEntry(); !ok {
		t.Fatalf("undo must be legal while finishing")
	}
}

func TestArchiveEmptySessionFailsWithoutMutation(t *testing.T) {
	t.Parallel()
	r := newRecorder()
	mustNoErr(t, r.BeginSetup())
	mustNoErr(t, r.Start())
	mustNoErr(t, r.Stop())

	_, _, err := r.ArchiveSnapshot()
	if !errors.Is(err, apperrors.ErrEmptySession) {
		t.Fatalf("err = %v, want ErrEmptySession", err)
	}
	if r.Phase() != domain.PhaseFinishing {
		t.Fatalf("failed archive changed phase to %s", r.Phase())
	}
	if r.Info().StartedAt == nil {
		t.Fatalf("failed archive reset session info")
	}
}

func TestIllegalTransitions(t *testing.T) {
	t.Parallel()
	r := newRecorder()
	if err := r.Start(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("start from idle: %v", err)
	}
	if err := r.Stop(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("stop from idle: %v", err)
	}
	if err := r.Resume(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("resume from idle: %v", err)
	}
	if err := r.Discard(); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("discard from idle: %v", err)
	}
}

func TestRestoreNeverResumesRecording(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	entries := []domain.Entry{domain.NewEntry("a", start, domain.SideLeft, false, domain.CategoryPass)}

	r := newRecorder()
	r.Restore(entries, domain.SessionInfo{StartedAt: &start}, true)
	if r.Phase() != domain.PhaseFinishing {
		t.Fatalf("restore with recording flag: phase = %s, want finishing", r.Phase())
	}
	if r.LogLen() != 1 {
		t.Fatalf("restore dropped entries")
	}

	empty := newRecorder()
	empty.Restore(nil, domain.SessionInfo{}, false)
	if empty.Phase() != domain.PhaseIdle {
		t.Fatalf("restore with no prior state: phase = %s, want idle", empty.Phase())
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"passby/internal/modules/observe/domain"
	"passby/internal/modules/observe/dto"
	observein "passby/internal/modules/observe/port/in"
	observeout "passby/internal/modules/observe/port/out"
	"passby/internal/modules/observe/service"
	apperrors "passby/internal/platform/errors"
)

// Storage keys, each independently read at startup and rewritten in full on
// every relevant mutation.
const (
	keyLogs      = "logs"
	keySession   = "session"
	keyRecording = "recording"
)

var _ observein.Usecase = (*Interactor)(nil)

type Interactor struct {
	recorder *service.Recorder
	store    observeout.StateStore
	feedback observeout.FeedbackPort
	archive  observeout.ArchiveSink
	logger   *slog.Logger
}

// NewInteractor returns the concrete type so bootstrap can call Restore
// before handing it out as the in-port.
func NewInteractor(recorder *service.Recorder, store observeout.StateStore, feedback observeout.FeedbackPort, archive observeout.ArchiveSink, logger *slog.Logger) *Interactor {
	return &Interactor{
		recorder: recorder,
		store:    store,
		feedback: feedback,
		archive:  archive,
		logger:   logger,
	}
}

// Restore loads persisted state. Corrupt or missing values fall back to
// defaults; startup never fails on storage problems.
func (i *Interactor) Restore(ctx context.Context) {
	entries := []domain.Entry{}
	if raw, err := i.store.Get(ctx, keyLogs); err == nil {
		if err := json.Unmarshal(raw, &entries); err != nil {
			i.logger.Warn("discarding corrupt log state", "err", err)
			entries = nil
		}
	} else if !errors.Is(err, apperrors.ErrKeyNotFound) {
		i.logger.Warn("reading log state", "err", err)
	}

	info := domain.SessionInfo{}
	if raw, err := i.store.Get(ctx, keySession); err == nil {
		if err := json.Unmarshal(raw, &info); err != nil {
			i.logger.Warn("discarding corrupt session state", "err", err)
			info = domain.SessionInfo{}
		}
	} else if !errors.Is(err, apperrors.ErrKeyNotFound) {
		i.logger.Warn("reading session state", "err", err)
	}

	wasRecording := false
	if raw, err := i.store.Get(ctx, keyRecording); err == nil {
		if err := json.Unmarshal(raw, &wasRecording); err != nil {
			wasRecording = false
		}
	}

	i.recorder.Restore(entries, info, wasRecording)
	if wasRecording {
		// The coerced phase must be visible to the next startup too.
		i.persist(ctx)
	}
}

// persist rewrites the full state synchronously. Writes are best-effort:
// failures are logged and never surface to the operator.
func (i *Interactor) persist(ctx context.Context) {
	i.set(ctx, keyLogs, i.recorder.Entries())
	i.set(ctx, keySession, i.recorder.Info())
	i.set(ctx, keyRecording, i.recorder.Phase() == domain.PhaseRecording)
}

func (i *Interactor) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		i.logger.Warn("encoding state", "key", key, "err", err)
		return
	}
	if err := i.store.Set(ctx, key, raw); err != nil {
		i.logger.Warn("writing state", "key", key, "err", err)
	}
}

func (i *Interactor) status() dto.StatusOutput {
	info := i.recorder.Info()
	return dto.StatusOutput{
		Phase:     string(i.recorder.Phase()),
		StartedAt: info.StartedAt,
		EndedAt:   info.EndedAt,
		Location:  info.Location,
		Note:      info.Note,
		LogCount:  i.recorder.LogLen(),
	}
}

func (i *Interactor) Status(_ context.Context) (dto.StatusOutput, error) {
	return i.status(), nil
}

func (i *Interactor) BeginSetup(ctx context.Context) (dto.StatusOutput, error) {
	if err := i.recorder.BeginSetup(); err != nil {
		return dto.StatusOutput{}, err
	}
	i.persist(ctx)
	return i.status(), nil
}

func (i *Interactor) CancelSetup(ctx context.Context) (dto.StatusOutput, error) {
	if err := i.recorder.CancelSetup(); err != nil {
		return dto.StatusOutput{}, err
	}
	i.persist(ctx)
	return i.status(), nil
}

func (i *Interactor) Start(ctx context.Context) (dto.StatusOutput, error) {
	if err := i.recorder.Start(); err != nil {
		return dto.StatusOutput{}, err
	}
	i.persist(ctx)
	return i.status(), nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.StatusOutput, error) {
	if err := i.recorder.Stop(); err != nil {
		return dto.StatusOutput{}, err
	}
	i.persist(ctx)
	return i.status(), nil
}

func (i *Interactor) Resume(ctx context.Context) (dto.StatusOutput, error) {
	if err := i.recorder.Resume(); err != nil {
		return dto.StatusOutput{}, err
	}
	i.persist(ctx)
	return i.status(), nil
}

// Archive snapshots the finished session into the archive, then resets the
// live state. A failing snapshot store leaves everything untouched so the
// operator can retry.
func (i *Interactor) Archive(ctx context.Context) (dto.ArchiveOutput, error) {
	info, entries, err := i.recorder.ArchiveSnapshot()
	if err != nil {
		return dto.ArchiveOutput{}, err
	}
	archiveID, err := i.archive.Add(ctx, info, entries)
	if err != nil {
		return dto.ArchiveOutput{}, err
	}
	i.recorder.FinishArchive()
	i.persist(ctx)
	i.feedback.Emit(ctx, observeout.CueSuccess)
	return dto.ArchiveOutput{ArchiveID: archiveID, EntryCount: len(entries)}, nil
}

func (i *Interactor) Discard(ctx context.Context) error {
	if err := i.recorder.Discard(); err != nil {
		return err
	}
	i.persist(ctx)
	i.feedback.Emit(ctx, observeout.CueDestructive)
	return nil
}

func (i *Interactor) UpdateInfo(ctx context.Context, input dto.InfoPatchInput) (dto.StatusOutput, error) {
	if err := i.recorder.UpdateInfo(input.Location, input.Note); err != nil {
		return dto.StatusOutput{}, err
	}
	i.persist(ctx)
	return i.status(), nil
}

// AddLog records one classified observation. Outside the Recording phase it
// reports ErrNotRecording; input surfaces treat that as a no-op.
func (i *Interactor) AddLog(ctx context.Context, input dto.AddLogInput) (dto.EntryOutput, error) {
	side, err := domain.ParseSide(input.Side)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	entry, err := i.recorder.AddEntry(side, input.Group, category)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	i.persist(ctx)
	i.feedback.Emit(ctx, observeout.CueRecord)
	return entryOutput(entry), nil
}

func (i *Interactor) UndoLog(ctx context.Context) (dto.UndoOutput, error) {
	entry, ok := i.recorder.UndoEntry()
	if !ok {
		return dto.UndoOutput{}, nil
	}
	i.persist(ctx)
	i.feedback.Emit(ctx, observeout.CueUndo)
	return dto.UndoOutput{Removed: true, Entry: entryOutput(entry)}, nil
}

func (i *Interactor) UpdateLog(ctx context.Context, input dto.UpdateLogInput) (dto.EntryOutput, error) {
	patch := domain.Patch{Group: input.Group, Note: input.Note}
	if input.Category != nil {
		category, err := domain.ParseCategory(*input.Category)
		if err != nil {
			return dto.EntryOutput{}, err
		}
		patch.Category = &category
	}
	if input.Side != nil {
		side, err := domain.ParseSide(*input.Side)
		if err != nil {
			return dto.EntryOutput{}, err
		}
		patch.Side = &side
	}
	entry, err := i.recorder.UpdateEntry(input.ID, patch)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	i.persist(ctx)
	return entryOutput(entry), nil
}

func (i *Interactor) DeleteLog(ctx context.Context, id string) error {
	if err := i.recorder.DeleteEntry(id); err != nil {
		return err
	}
	i.persist(ctx)
	i.feedback.Emit(ctx, observeout.CueDestructive)
	return nil
}

func (i *Interactor) ListLogs(_ context.Context) ([]dto.EntryOutput, error) {
	entries := i.recorder.Entries()
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryOutput(e))
	}
	return out, nil
}

func entryOutput(e domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		EpochMS:   e.EpochMS,
		Side:      string(e.Side),
		Group:     e.Group,
		Category:  string(e.Category),
		Pass:      e.Flags.Pass,
		Look:      e.Flags.Look,
		Stop:      e.Flags.Stop,
		Use:       e.Flags.Use,
		Note:      e.Note,
	}
}

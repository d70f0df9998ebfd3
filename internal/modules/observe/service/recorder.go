package service

import (
	"fmt"

	"passby/internal/modules/observe/domain"
	"passby/internal/platform/clock"
	apperrors "passby/internal/platform/errors"
	"passby/internal/platform/id"
)

// Recorder is the recording-session state machine. It owns the phase, the
// session metadata, and the log; its transition methods are the only place
// any of them mutate.
type Recorder struct {
	clock clock.Clock
	ids   id.Generator

	phase domain.Phase
	info  domain.SessionInfo
	log   *domain.Log
}

func NewRecorder(clk clock.Clock, ids id.Generator) *Recorder {
	return &Recorder{
		clock: clk,
		ids:   ids,
		phase: domain.PhaseIdle,
		log:   domain.NewLog(),
	}
}

// Restore loads persisted state from a prior run. A true wasRecording
// indicator is never resumed silently: any in-progress session comes back in
// Finishing so the operator explicitly resumes or archives.
func (r *Recorder) Restore(entries []domain.Entry, info domain.SessionInfo, wasRecording bool) {
	r.log.Replace(entries)
	r.info = info
	if wasRecording || len(entries) > 0 || info.StartedAt != nil {
		r.phase = domain.PhaseFinishing
	} else {
		r.phase = domain.PhaseIdle
	}
}

func (r *Recorder) Phase() domain.Phase { return r.phase }

func (r *Recorder) Info() domain.SessionInfo { return r.info }

func (r *Recorder) Entries() []domain.Entry { return r.log.Entries() }

func (r *Recorder) LogLen() int { return r.log.Len() }

func (r *Recorder) transitionErr(op string) error {
	return fmt.Errorf("%w: %s is not legal in phase %s", apperrors.ErrInvalidTransition, op, r.phase)
}

// BeginSetup opens the session setup, where location and note can be edited
// before recording starts.
func (r *Recorder) BeginSetup() error {
	if r.phase != domain.PhaseIdle {
		return r.transitionErr("begin setup")
	}
	r.phase = domain.PhaseSetup
	return nil
}

// CancelSetup reverts the phase only; location and note edits persist so a
// cancelled-then-restarted setup can reuse them.
func (r *Recorder) CancelSetup() error {
	if r.phase != domain.PhaseSetup {
		return r.transitionErr("cancel setup")
	}
	r.phase = domain.PhaseIdle
	return nil
}

// Start begins recording. The start instant is set only when unset, so
// multiple start/stop/resume cycles share one logical session start; the end
// instant is always cleared.
func (r *Recorder) Start() error {
	if r.phase != domain.PhaseSetup {
		return r.transitionErr("start")
	}
	if r.info.StartedAt == nil {
		now := r.clock.Now()
		r.info.StartedAt = &now
	}
	r.info.EndedAt = nil
	r.phase = domain.PhaseRecording
	return nil
}

// Stop moves to Finishing and stamps the end instant. The log is untouched
// and stays editable.
func (r *Recorder) Stop() error {
	if r.phase != domain.PhaseRecording {
		return r.transitionErr("stop")
	}
	now := r.clock.Now()
	r.info.EndedAt = &now
	r.phase = domain.PhaseFinishing
	return nil
}

// Resume returns from Finishing to Recording, clearing the end instant. No
// logs are lost.
func (r *Recorder) Resume() error {
	if r.phase != domain.PhaseFinishing {
		return r.transitionErr("resume")
	}
	r.info.EndedAt = nil
	r.phase = domain.PhaseRecording
	return nil
}

// ArchiveSnapshot validates the archive precondition and returns the
// snapshot without mutating anything. FinishArchive completes the transition
// once the snapshot has been stored.
func (r *Recorder) ArchiveSnapshot() (domain.SessionInfo, []domain.Entry, error) {
	if r.phase != domain.PhaseFinishing {
		return domain.SessionInfo{}, nil, r.transitionErr("archive")
	}
	if r.log.Len() == 0 {
		return domain.SessionInfo{}, nil, apperrors.ErrEmptySession
	}
	return r.info, r.log.Entries(), nil
}

// FinishArchive empties the log, resets the session metadata, and returns to
// Idle. Callers invoke it only after the snapshot was stored successfully.
func (r *Recorder) FinishArchive() {
	r.log = domain.NewLog()
	r.info = domain.SessionInfo{}
	r.phase = domain.PhaseIdle
}

// Discard abandons the in-progress session entirely.
func (r *Recorder) Discard() error {
	if r.phase == domain.PhaseIdle {
		return r.transitionErr("discard")
	}
	r.log = domain.NewLog()
	r.info = domain.SessionInfo{}
	r.phase = domain.PhaseIdle
	return nil
}

// UpdateInfo edits location and note. Legal in every phase that has a
// session to describe.
func (r *Recorder) UpdateInfo(location, note *string) error {
	if r.phase == domain.PhaseIdle {
		return r.transitionErr("update info")
	}
	if location != nil {
		r.info.Location = *location
	}
	if note != nil {
		r.info.Note = *note
	}
	return nil
}

// AddEntry records a classified observation. Only legal while Recording.
func (r *Recorder) AddEntry(side domain.Side, group bool, category domain.Category) (domain.Entry, error) {
	if r.phase != domain.PhaseRecording {
		return domain.Entry{}, apperrors.ErrNotRecording
	}
	if err := side.Validate(); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := category.Validate(); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	entry := domain.NewEntry(r.ids.New(), r.clock.Now(), side, group, category)
	if err := r.log.Append(entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// UndoEntry removes the most recent entry. Legal in any phase with a
// non-empty log; a false result means there was nothing to undo.
func (r *Recorder) UndoEntry() (domain.Entry, bool) {
	return r.log.Undo()
}

// UpdateEntry applies a partial edit. Legal in any phase with a non-empty
// log, notably Finishing for last-minute corrections.
func (r *Recorder) UpdateEntry(id string, patch domain.Patch) (domain.Entry, error) {
	return r.log.Update(id, patch)
}

// DeleteEntry removes the entry with the given id wherever it sits.
func (r *Recorder) DeleteEntry(id string) error {
	return r.log.Delete(id)
}

package out

import (
	"context"

	"passby/internal/modules/observe/domain"
)

// StateStore is the opaque key/value storage port: string keys, JSON values,
// synchronous full-value writes. Missing keys report
// apperrors.ErrKeyNotFound.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Cue names the feedback kinds this module emits on state changes.
type Cue string

const (
	CueRecord      Cue = "record"
	CueUndo        Cue = "undo"
	CueDestructive Cue = "destructive"
	CueSuccess     Cue = "success"
)

// FeedbackPort delivers operator feedback cues. Implementations swallow
// their own failures; emitting never blocks the triggering action.
type FeedbackPort interface {
	Emit(ctx context.Context, cue Cue)
}

// ArchiveSink receives the immutable snapshot produced by archiving and
// returns the new archive's id.
type ArchiveSink interface {
	Add(ctx context.Context, info domain.SessionInfo, entries []domain.Entry) (string, error)
}

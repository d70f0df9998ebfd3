package domain

import (
	"fmt"

	apperrors "passby/internal/platform/errors"
)

// Log is the ordered collection of recorded entries. The sequence is kept in
// strict append order; undo always removes the tail regardless of id, and
// arbitrary-position delete preserves the relative order of the remainder.
type Log struct {
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the sequence in append order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Replace swaps in a previously persisted sequence.
func (l *Log) Replace(entries []Entry) {
	l.entries = make([]Entry, len(entries))
	copy(l.entries, entries)
}

// Append inserts the entry at the tail. The id must be fresh within the log.
func (l *Log) Append(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: entry id is required", apperrors.ErrInvalidInput)
	}
	if _, ok := l.Get(e.ID); ok {
		return fmt.Errorf("%w: duplicate entry id %s", apperrors.ErrInvalidInput, e.ID)
	}
	l.entries = append(l.entries, e)
	return nil
}

// Undo removes and returns the tail entry. No-op on an empty log.
func (l *Log) Undo() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	last := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return last, true
}

// Update applies a partial update to the entry with the given id. When the
// patch carries a category the flag set is recomputed; edits to any other
// field leave the flags untouched.
func (l *Log) Update(id string, p Patch) (Entry, error) {
	idx := l.index(id)
	if idx < 0 {
		return Entry{}, apperrors.ErrEntryNotFound
	}
	e := l.entries[idx]
	if p.Category != nil {
		if err := p.Category.Validate(); err != nil {
			return Entry{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		e.Category = *p.Category
		e.Flags = DeriveFlags(*p.Category)
	}
	if p.Side != nil {
		if err := p.Side.Validate(); err != nil {
			return Entry{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		e.Side = *p.Side
	}
	if p.Group != nil {
		e.Group = *p.Group
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	l.entries[idx] = e
	return e, nil
}

// Delete removes the entry with the given id wherever it sits.
func (l *Log) Delete(id string) error {
	idx := l.index(id)
	if idx < 0 {
		return apperrors.ErrEntryNotFound
	}
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	return nil
}

func (l *Log) Get(id string) (Entry, bool) {
	idx := l.index(id)
	if idx < 0 {
		return Entry{}, false
	}
	return l.entries[idx], true
}

func (l *Log) index(id string) int {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}

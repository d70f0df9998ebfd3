package domain

import "time"

const SchemaVersion = 1

// Info is the snapshotted session metadata.
type Info struct {
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Location  string     `json:"location"`
	Note      string     `json:"note"`
}

type Flags struct {
	Pass bool `json:"pass"`
	Look bool `json:"look"`
	Stop bool `json:"stop"`
	Use  bool `json:"use"`
}

// Entry is a snapshotted log entry, frozen at archive time.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	EpochMS   int64  `json:"epoch_ms"`
	Side      string `json:"side"`
	Group     bool   `json:"group"`
	Category  string `json:"category"`
	Flags     Flags  `json:"flags"`
	Note      string `json:"note"`
}

// Archived is an immutable snapshot of a finished session. It is created
// exactly once and never mutated afterwards.
type Archived struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Info      Info      `json:"info"`
	Entries   []Entry   `json:"entries"`
}

// Summary is the list/projection shape of an archived session.
type Summary struct {
	ID         string
	CreatedAt  time.Time
	StartedAt  *time.Time
	EndedAt    *time.Time
	Location   string
	EntryCount int
}

func (a Archived) Summary() Summary {
	return Summary{
		ID:         a.ID,
		CreatedAt:  a.CreatedAt,
		StartedAt:  a.Info.StartedAt,
		EndedAt:    a.Info.EndedAt,
		Location:   a.Info.Location,
		EntryCount: len(a.Entries),
	}
}

package dto

import "time"

type EntryInput struct {
	ID        string
	Timestamp string
	EpochMS   int64
	Side      string
	Group     bool
	Category  string
	Pass      bool
	Look      bool
	Stop      bool
	Use       bool
	Note      string
}

type AddInput struct {
	StartedAt *time.Time
	EndedAt   *time.Time
	Location  string
	Note      string
	Entries   []EntryInput
}

type SummaryOutput struct {
	ID         string
	CreatedAt  time.Time
	StartedAt  *time.Time
	EndedAt    *time.Time
	Location   string
	EntryCount int
}

type ArchivedOutput struct {
	ID        string
	CreatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
	Location  string
	Note      string
	Entries   []EntryInput
}

package dto

import "time"

type StatusOutput struct {
	Phase     string
	StartedAt *time.Time
	EndedAt   *time.Time
	Location  string
	Note      string
	LogCount  int
}

type InfoPatchInput struct {
	Location *string
	Note     *string
}

type AddLogInput struct {
	Side     string
	Group    bool
	Category string
}

type EntryOutput struct {
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

type UndoOutput struct {
	Removed bool
	Entry   EntryOutput
}

type UpdateLogInput struct {
	ID       string
	Category *string
	Side     *string
	Group    *bool
	Note     *string
}

type ArchiveOutput struct {
	ArchiveID  string
	EntryCount int
}

package domain

import (
	"strings"
	"time"
)

// Row is one log entry flattened for export. Side and category carry their
// raw string forms so the module stays decoupled from the recording domain.
type Row struct {
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

// Report is the (session info, ordered entries) pair an export renders.
type Report struct {
	StartedAt *time.Time
	EndedAt   *time.Time
	Location  string
	Note      string
	Rows      []Row
}

var commentStripper = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", ",", " ")

// CommentText flattens free text for a `#` header line: newlines and commas
// become spaces so the line stays a single comment and never leaks into the
// CSV column structure.
func CommentText(s string) string {
	return strings.TrimSpace(commentStripper.Replace(s))
}

// NoteEscape quotes a note for a CSV cell, doubling internal quotes.
func NoteEscape(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

package service

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
	"time"

	"passby/internal/modules/export/domain"
	"passby/internal/platform/clock"
	"passby/internal/platform/slug"
)

const (
	localLayout    = "2006-01-02 15:04:05"
	filenameLayout = "2006-01-02_15-04-05"

	DefaultPrefix    = "passby"
	DefaultNoteRunes = 20
)

var csvHeader = []string{
	"id", "timestamp_iso", "timestamp_local", "epoch_ms",
	"side", "category", "grouping",
	"left", "right", "group",
	"pass", "look", "stop", "use",
	"note",
}

// Formatter renders a report into the portable CSV export. The clock and
// location are injected so output is byte-reproducible in tests.
type Formatter struct {
	clock clock.Clock
	loc   *time.Location

	mu        sync.RWMutex
	prefix    string
	noteRunes int
}

func NewFormatter(c clock.Clock, loc *time.Location) *Formatter {
	return &Formatter{
		clock:     c,
		loc:       loc,
		prefix:    DefaultPrefix,
		noteRunes: DefaultNoteRunes,
	}
}

// Configure re-applies filename settings. Zero or negative values keep the
// defaults.
func (f *Formatter) Configure(prefix string, noteRunes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if prefix != "" {
		f.prefix = prefix
	} else {
		f.prefix = DefaultPrefix
	}
	if noteRunes > 0 {
		f.noteRunes = noteRunes
	} else {
		f.noteRunes = DefaultNoteRunes
	}
}

// Render produces the full export document: UTF-8 with a byte-order mark,
// `#` header comments, one CSV header line and one row per entry.
func (f *Formatter) Render(report domain.Report) []byte {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	writeComment(&buf, "Exported", f.localize(f.clock.Now()))
	writeComment(&buf, "Session start", f.localizeOptional(report.StartedAt))
	writeComment(&buf, "Session end", f.localizeOptional(report.EndedAt))
	writeComment(&buf, "Location", domain.CommentText(report.Location))
	writeComment(&buf, "Note", domain.CommentText(report.Note))
	writeComment(&buf, "Records", strconv.Itoa(len(report.Rows)))

	for i, column := range csvHeader {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(column)
	}
	buf.WriteByte('\n')

	for _, row := range report.Rows {
		local := time.UnixMilli(row.EpochMS).In(f.loc).Format(localLayout)
		fields := []string{
			row.ID,
			row.Timestamp,
			local,
			strconv.FormatInt(row.EpochMS, 10),
			row.Side,
			row.Category,
			groupingLabel(row.Group),
			boolIndicator(row.Side == "left"),
			boolIndicator(row.Side == "right"),
			boolIndicator(row.Group),
			boolIndicator(row.Pass),
			boolIndicator(row.Look),
			boolIndicator(row.Stop),
			boolIndicator(row.Use),
			domain.NoteEscape(row.Note),
		}
		for i, field := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(field)
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// Filename derives the deterministic export filename from the configured
// prefix, the session start instant (falling back to now) and a sanitized
// suffix built from location and the leading note runes.
func (f *Formatter) Filename(report domain.Report) string {
	f.mu.RLock()
	prefix, noteRunes := f.prefix, f.noteRunes
	f.mu.RUnlock()

	instant := f.clock.Now()
	if report.StartedAt != nil {
		instant = *report.StartedAt
	}
	name := prefix + "_" + instant.In(f.loc).Format(filenameLayout)

	if part := slug.Filename(report.Location); part != "" {
		name += "_" + part
	}
	if part := slug.Filename(truncateRunes(report.Note, noteRunes)); part != "" {
		name += "_" + part
	}
	return name + ".csv"
}

func (f *Formatter) localize(t time.Time) string {
	return t.In(f.loc).Format(localLayout)
}

func (f *Formatter) localizeOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return f.localize(*t)
}

func writeComment(buf *bytes.Buffer, label, value string) {
	if value == "" {
		fmt.Fprintf(buf, "# %s:\n", label)
		return
	}
	fmt.Fprintf(buf, "# %s: %s\n", label, value)
}

func groupingLabel(group bool) string {
	if group {
		return "group"
	}
	return "individual"
}

func boolIndicator(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package domain

import "time"

const SchemaVersion = 1

// isoMillis matches the portable timestamp representation: UTC with
// millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Entry is one recorded observation. The ISO and epoch timestamps are both
// derived from the same creation instant and agree by construction.
type Entry struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"timestamp"`
	EpochMS   int64    `json:"epoch_ms"`
	Side      Side     `json:"side"`
	Group     bool     `json:"group"`
	Category  Category `json:"category"`
	Flags     FlagSet  `json:"flags"`
	Note      string   `json:"note"`
}

func NewEntry(id string, at time.Time, side Side, group bool, category Category) Entry {
	return Entry{
		ID:        id,
		Timestamp: at.UTC().Format(isoMillis),
		EpochMS:   at.UnixMilli(),
		Side:      side,
		Group:     group,
		Category:  category,
		Flags:     DeriveFlags(category),
	}
}

// Time reconstructs the creation instant from the epoch representation.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.EpochMS).UTC()
}

// GroupLabel is the export/display form of the group attribute.
func (e Entry) GroupLabel() string {
	if e.Group {
		return "group"
	}
	return "individual"
}

// Patch is a partial entry update. Nil fields are left untouched; the flag
// set is recomputed only when Category is part of the patch.
type Patch struct {
	Category *Category
	Side     *Side
	Group    *bool
	Note     *string
}

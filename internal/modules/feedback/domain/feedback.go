package domain

import "fmt"

// Kind names an operator feedback event.
type Kind string

const (
	KindRecord      Kind = "record"
	KindUndo        Kind = "undo"
	KindDestructive Kind = "destructive"
	KindSuccess     Kind = "success"
	KindPanelOpen   Kind = "panel-open"
	// KindChange fires when an in-flight gesture crosses into a different
	// category sector.
	KindChange Kind = "change"
)

func (k Kind) Validate() error {
	switch k {
	case KindRecord, KindUndo, KindDestructive, KindSuccess, KindPanelOpen, KindChange:
		return nil
	default:
		return fmt.Errorf("unknown feedback kind %q", string(k))
	}
}

// Pattern is a vibration pattern: alternating on/off durations in
// milliseconds. A single element is one plain pulse.
type Pattern []int

func (p Pattern) Validate() error {
	for _, d := range p {
		if d < 0 {
			return fmt.Errorf("pattern durations must be non-negative, got %d", d)
		}
	}
	return nil
}

// Pulses counts the "on" segments, for sinks without duration control.
func (p Pattern) Pulses() int {
	if len(p) == 0 {
		return 0
	}
	return (len(p) + 1) / 2
}

// DefaultPatterns are the built-in per-kind patterns, overridable through
// settings.
func DefaultPatterns() map[Kind]Pattern {
	return map[Kind]Pattern{
		KindRecord:      {40},
		KindChange:      {15},
		KindUndo:        {20, 40, 20},
		KindDestructive: {60, 40, 60},
		KindSuccess:     {30, 30, 30, 30, 80},
		KindPanelOpen:   {10},
	}
}

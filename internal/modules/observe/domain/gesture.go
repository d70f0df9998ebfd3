package domain

import (
	"fmt"
	"math"
)

// Side is the operator axis of an input zone: which screen edge the zone
// faces. The Stop sector always points toward the zone's outer edge, so the
// two sides map opposite angular ranges to Stop.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

func (s Side) Validate() error {
	switch s {
	case SideLeft, SideRight:
		return nil
	default:
		return fmt.Errorf("unknown side %q", string(s))
	}
}

func ParseSide(s string) (Side, error) {
	side := Side(s)
	if err := side.Validate(); err != nil {
		return "", err
	}
	return side, nil
}

// MinGestureDistance is the drag length (device-independent pixels) below
// which a gesture never registers a directional action.
const MinGestureDistance = 50.0

// Classify maps a drag vector to a category. Pure and total: equal inputs
// always yield equal output. Distances strictly below MinGestureDistance are
// Pass; otherwise the angle (y grows downward) selects the sector:
//
//	[225, 315) -> Look (upward drag)
//	[45, 135)  -> Use  (downward drag)
//	right side: [315, 360) u [0, 45) -> Stop
//	left side:  [135, 225)           -> Stop
//
// The intervals are half-open; boundary angles belong to the sector whose
// range is closed on that side.
func Classify(dx, dy float64, side Side) Category {
	if math.Hypot(dx, dy) < MinGestureDistance {
		return CategoryPass
	}
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	switch {
	case angle >= 225 && angle < 315:
		return CategoryLook
	case angle >= 45 && angle < 135:
		return CategoryUse
	case side == SideRight && (angle >= 315 || angle < 45):
		return CategoryStop
	case side == SideLeft && angle >= 135 && angle < 225:
		return CategoryStop
	default:
		return CategoryPass
	}
}

// Episode is one gesture's lifetime from press to release.
type Episode struct {
	PointerID int
	Side      Side
	Group     bool
	StartX    float64
	StartY    float64
	Category  Category
}

// Tracker follows in-flight gestures keyed by pointer identifier, so
// simultaneous gestures on different zones stay independent.
type Tracker struct {
	episodes map[int]*Episode
}

func NewTracker() *Tracker {
	return &Tracker{episodes: map[int]*Episode{}}
}

// Begin opens an episode for the pointer. An already-open episode for the
// same pointer is replaced.
func (t *Tracker) Begin(pointerID int, side Side, group bool, x, y float64) {
	t.episodes[pointerID] = &Episode{
		PointerID: pointerID,
		Side:      side,
		Group:     group,
		StartX:    x,
		StartY:    y,
		Category:  CategoryPass,
	}
}

// Move re-evaluates the episode's category at the new position. The second
// result reports whether the category changed, which drives an in-flight
// feedback cue. Moves for unknown pointers are ignored.
func (t *Tracker) Move(pointerID int, x, y float64) (Category, bool) {
	ep, ok := t.episodes[pointerID]
	if !ok {
		return "", false
	}
	next := Classify(x-ep.StartX, y-ep.StartY, ep.Side)
	changed := next != ep.Category
	ep.Category = next
	return next, changed
}

// End closes the episode at the release position and returns it. Exactly one
// classification is committed per episode.
func (t *Tracker) End(pointerID int, x, y float64) (Episode, bool) {
	ep, ok := t.episodes[pointerID]
	if !ok {
		return Episode{}, false
	}
	ep.Category = Classify(x-ep.StartX, y-ep.StartY, ep.Side)
	delete(t.episodes, pointerID)
	return *ep, true
}

// Cancel discards the episode without committing anything.
func (t *Tracker) Cancel(pointerID int) {
	delete(t.episodes, pointerID)
}

// Active reports the episode currently bound to the pointer, if any.
func (t *Tracker) Active(pointerID int) (Episode, bool) {
	ep, ok := t.episodes[pointerID]
	if !ok {
		return Episode{}, false
	}
	return *ep, true
}

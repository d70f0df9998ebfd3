package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"passby/internal/modules/observe/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		dx   float64
		dy   float64
		side domain.Side
		want domain.Category
	}{
		{"zero vector is a tap", 0, 0, domain.SideRight, domain.CategoryPass},
		{"short drag never registers", 49.9, 0, domain.SideRight, domain.CategoryPass},
		{"upward drag is look", 0, -80, domain.SideRight, domain.CategoryLook},
		{"upward drag is look on the left too", 0, -80, domain.SideLeft, domain.CategoryLook},
		{"downward drag is use", 0, 80, domain.SideRight, domain.CategoryUse},
		{"downward drag is use on the left too", 0, 80, domain.SideLeft, domain.CategoryUse},
		{"outward drag right side is stop", 80, 0, domain.SideRight, domain.CategoryStop},
		{"outward drag left side is stop", -80, 0, domain.SideLeft, domain.CategoryStop},
		{"inward drag right side is pass", -80, 0, domain.SideRight, domain.CategoryPass},
		{"inward drag left side is pass", 80, 0, domain.SideLeft, domain.CategoryPass},
		{"distance exactly at threshold registers", 50, 0, domain.SideRight, domain.CategoryStop},
		{"45 degrees belongs to use", 60, 60, domain.SideRight, domain.CategoryUse},
		{"135 degrees belongs to the left stop sector", -60, 60, domain.SideLeft, domain.CategoryStop},
		{"135 degrees is pass on the right", -60, 60, domain.SideRight, domain.CategoryPass},
		{"225 degrees belongs to look", -60, -60, domain.SideLeft, domain.CategoryLook},
		{"315 degrees belongs to the right stop sector", 60, -60, domain.SideRight, domain.CategoryStop},
		{"315 degrees is pass on the left", 60, -60, domain.SideLeft, domain.CategoryPass},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, domain.Classify(tc.dx, tc.dy, tc.side))
			// Pure: a second evaluation of the same vector agrees.
			assert.Equal(t, tc.want, domain.Classify(tc.dx, tc.dy, tc.side))
		})
	}
}

func TestTrackerEpisodeLifecycle(t *testing.T) {
	t.Parallel()
	tr := domain.NewTracker()
	tr.Begin(1, domain.SideRight, false, 100, 100)

	cat, changed := tr.Move(1, 110, 100)
	assert.Equal(t, domain.CategoryPass, cat)
	assert.False(t, changed, "short move must not change the category")

	cat, changed = tr.Move(1, 100, 20)
	assert.Equal(t, domain.CategoryLook, cat)
	assert.True(t, changed)

	cat, changed = tr.Move(1, 100, 10)
	assert.Equal(t, domain.CategoryLook, cat)
	assert.False(t, changed, "same sector must not re-trigger")

	ep, ok := tr.End(1, 200, 100)
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryStop, ep.Category)
	assert.Equal(t, domain.SideRight, ep.Side)

	_, ok = tr.End(1, 200, 100)
	assert.False(t, ok, "an episode commits exactly once")
}

func TestTrackerSimultaneousPointers(t *testing.T) {
	t.Parallel()
	tr := domain.NewTracker()
	tr.Begin(1, domain.SideRight, false, 0, 0)
	tr.Begin(2, domain.SideLeft, true, 500, 0)

	left, ok := tr.End(2, 400, 0)
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryStop, left.Category)
	assert.True(t, left.Group)

	right, ok := tr.End(1, 0, 80)
	assert.True(t, ok)
	assert.Equal(t, domain.CategoryUse, right.Category)
	assert.False(t, right.Group)
}

func TestTrackerIgnoresUnknownPointerAndCancel(t *testing.T) {
	t.Parallel()
	tr := domain.NewTracker()
	_, changed := tr.Move(7, 10, 10)
	assert.False(t, changed)

	tr.Begin(3, domain.SideLeft, false, 0, 0)
	tr.Cancel(3)
	_, ok := tr.End(3, -80, 0)
	assert.False(t, ok, "a cancelled episode commits nothing")
}

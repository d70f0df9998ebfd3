package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passby/internal/modules/observe/domain"
)

func TestDeriveFlags(t *testing.T) {
	t.Parallel()
	cases := []struct {
		category domain.Category
		want     domain.FlagSet
	}{
		{domain.CategoryPass, domain.FlagSet{Pass: true}},
		{domain.CategoryLook, domain.FlagSet{Pass: true, Look: true}},
		{domain.CategoryStop, domain.FlagSet{Pass: true, Look: true, Stop: true}},
		{domain.CategoryUse, domain.FlagSet{Pass: true, Look: true, Stop: true, Use: true}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.category), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, domain.DeriveFlags(tc.category))
		})
	}
}

func TestDeriveFlagsMonotoneChain(t *testing.T) {
	t.Parallel()
	for _, c := range []domain.Category{domain.CategoryPass, domain.CategoryLook, domain.CategoryStop, domain.CategoryUse} {
		f := domain.DeriveFlags(c)
		assert.True(t, f.Pass, "pass must always hold for %s", c)
		if f.Use {
			assert.True(t, f.Stop, "use implies stop for %s", c)
		}
		if f.Stop {
			assert.True(t, f.Look, "stop implies look for %s", c)
		}
		if f.Look {
			assert.True(t, f.Pass, "look implies pass for %s", c)
		}
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()
	c, err := domain.ParseCategory("stop")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryStop, c)

	_, err = domain.ParseCategory("sprint")
	assert.Error(t, err)
}

func TestCategoryDepthOrder(t *testing.T) {
	t.Parallel()
	assert.Less(t, domain.CategoryPass.Depth(), domain.CategoryLook.Depth())
	assert.Less(t, domain.CategoryLook.Depth(), domain.CategoryStop.Depth())
	assert.Less(t, domain.CategoryStop.Depth(), domain.CategoryUse.Depth())
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindValidate(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{KindRecord, KindUndo, KindDestructive, KindSuccess, KindPanelOpen, KindChange} {
		assert.NoError(t, kind.Validate(), string(kind))
	}
	assert.Error(t, Kind("buzz").Validate())
	assert.Error(t, Kind("").Validate())
}

func TestPatternValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Pattern{}.Validate())
	assert.NoError(t, Pattern{40}.Validate())
	assert.NoError(t, Pattern{0, 0, 0}.Validate())
	assert.Error(t, Pattern{40, -1}.Validate())
}

func TestPatternPulses(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Pattern{}.Pulses())
	assert.Equal(t, 1, Pattern{40}.Pulses())
	assert.Equal(t, 2, Pattern{20, 40, 20}.Pulses())
	assert.Equal(t, 3, Pattern{30, 30, 30, 30, 80}.Pulses())
}

func TestDefaultPatternsCoverEveryKind(t *testing.T) {
	t.Parallel()

	defaults := DefaultPatterns()
	for _, kind := range []Kind{KindRecord, KindUndo, KindDestructive, KindSuccess, KindPanelOpen, KindChange} {
		pattern, ok := defaults[kind]
		assert.True(t, ok, string(kind))
		assert.NoError(t, pattern.Validate())
		assert.NotEmpty(t, pattern)
	}
}

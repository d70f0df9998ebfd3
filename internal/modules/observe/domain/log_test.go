package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passby/internal/modules/observe/domain"
	apperrors "passby/internal/platform/errors"
)

func entryAt(id string, category domain.Category) domain.Entry {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return domain.NewEntry(id, at, domain.SideRight, false, category)
}

func TestLogAppendAndUndoIsLIFO(t *testing.T) {
	t.Parallel()
	l := domain.NewLog()
	require.NoError(t, l.Append(entryAt("a", domain.CategoryPass)))
	require.NoError(t, l.Append(entryAt("b", domain.CategoryLook)))

	removed, ok := l.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", removed.ID)
	require.Equal(t, 1, l.Len())
	assert.Equal(t, "a", l.Entries()[0].ID)

	_, ok = l.Undo()
	assert.True(t, ok)
	_, ok = l.Undo()
	assert.False(t, ok, "undo on empty log is a no-op")
}

func TestLogAppendRejectsDuplicateID(t *testing.T) {
	t.Parallel()
	l := domain.NewLog()
	require.NoError(t, l.Append(entryAt("a", domain.CategoryPass)))
	err := l.Append(entryAt("a", domain.CategoryUse))
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, 1, l.Len())
}

func TestLogUpdateCategoryRecomputesFlagsOnly(t *testing.T) {
	t.Parallel()
	l := domain.NewLog()
	original := entryAt("a", domain.CategoryLook)
	require.NoError(t, l.Append(original))

	use := domain.CategoryUse
	updated, err := l.Update("a", domain.Patch{Category: &use})
	require.NoError(t, err)
	assert.Equal(t, domain.DeriveFlags(domain.CategoryUse), updated.Flags)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.Timestamp, updated.Timestamp)
	assert.Equal(t, original.EpochMS, updated.EpochMS)
	assert.Equal(t, original.Side, updated.Side)
	assert.Equal(t, original.Group, updated.Group)
	assert.Equal(t, original.Note, updated.Note)
}

func TestLogUpdateNoteLeavesFlagsUntouched(t *testing.T) {
	t.Parallel()
	l := domain.NewLog()
	require.NoError(t, l.Append(entryAt("a", domain.CategoryStop)))

	note := "wheelchair user"
	updated, err := l.Update("a", domain.Patch{Note: &note})
	require.NoError(t, err)
	assert.Equal(t, "wheelchair user", updated.Note)
	assert.Equal(t, domain.DeriveFlags(domain.CategoryStop), updated.Flags)
}

func TestLogUpdateUnknownID(t *testing.T) {
	t.Parallel()
	l := domain.NewLog()
	_, err := l.Update("missing", domain.Patch{})
	assert.True(t, errors.Is(err, apperrors.ErrEntryNotFound))
}

func TestLogDeletePreservesOrder(t *testing.T) {
	t.Parallel()
	l := domain.NewLog()
	require.NoError(t, l.Append(entryAt("a", domain.CategoryPass)))
	require.NoError(t, l.Append(entryAt("b", domain.CategoryLook)))
	require.NoError(t, l.Append(entryAt("c", domain.CategoryStop)))

	require.NoError(t, l.Delete("b"))
	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "c", entries[1].ID)

	assert.True(t, errors.Is(l.Delete("b"), apperrors.ErrEntryNotFound))
}

func TestEntryTimestampsAgree(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 14, 9, 30, 15, 250_000_000, time.UTC)
	e := domain.NewEntry("a", at, domain.SideLeft, true, domain.CategoryUse)
	assert.Equal(t, "2026-03-14T09:30:15.250Z", e.Timestamp)
	assert.Equal(t, at.UnixMilli(), e.EpochMS)
	assert.Equal(t, at, e.Time())
	assert.Equal(t, "group", e.GroupLabel())
}

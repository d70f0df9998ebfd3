package record

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	observedto "passby/internal/modules/observe/dto"
)

type stubPort struct{}

func (stubPort) Status(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubPort) BeginSetup(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubPort) CancelSetup(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubPort) Start(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubPort) Stop(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubPort) Resume(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubPort) Archive(context.Context) (observedto.ArchiveOutput, error) {
	return observedto.ArchiveOutput{}, nil
}

func (stubPort) Discard(context.Context) error { return nil }

func (stubPort) UpdateInfo(context.Context, observedto.InfoPatchInput) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubPort) AddLog(context.Context, observedto.AddLogInput) (observedto.EntryOutput, error) {
	return observedto.EntryOutput{}, nil
}

func (stubPort) UndoLog(context.Context) (observedto.UndoOutput, error) {
	return observedto.UndoOutput{}, nil
}

type stubFeedback struct{}

func (stubFeedback) Emit(context.Context, string) {}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func openInfoForm(t *testing.T) Model {
	t.Helper()
	m := New(stubPort{}, stubFeedback{})
	m, _ = m.Update(StatusMsg{Status: observedto.StatusOutput{Phase: "setup"}})
	m, _ = m.Update(keyRunes('e'))
	if !m.Editing() {
		t.Fatal("expected the session-info form to open")
	}
	return m
}

func TestInfoFormStaysOpenOnCommandRunes(t *testing.T) {
	t.Parallel()

	m := openInfoForm(t)
	for _, r := range []rune{'q', '?', ':', 'a', 'D'} {
		next, _ := m.Update(keyRunes(r))
		if !next.Editing() {
			t.Fatalf("form closed on %q", r)
		}
	}
}

func TestInfoFormCollectsTypedText(t *testing.T) {
	t.Parallel()

	m := openInfoForm(t)
	for _, r := range "quay?" {
		m, _ = m.Update(keyRunes(r))
	}
	if got := m.locInput.Value(); got != "quay?" {
		t.Fatalf("location input = %q, want %q", got, "quay?")
	}
}

func TestInfoFormTabSwitchesFields(t *testing.T) {
	t.Parallel()

	m := openInfoForm(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.editFocus != 1 {
		t.Fatal("tab must move focus to the note field")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.editFocus != 0 {
		t.Fatal("tab must cycle back to the location field")
	}
}

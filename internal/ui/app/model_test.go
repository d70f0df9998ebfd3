package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	archivedto "passby/internal/modules/archive/dto"
	exportdto "passby/internal/modules/export/dto"
	feedbackdto "passby/internal/modules/feedback/dto"
	observedto "passby/internal/modules/observe/dto"
	recordview "passby/internal/ui/views/record"
)

type stubObserve struct{}

func (stubObserve) Status(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubObserve) BeginSetup(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubObserve) CancelSetup(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubObserve) Start(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubObserve) Stop(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubObserve) Resume(context.Context) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubObserve) Archive(context.Context) (observedto.ArchiveOutput, error) {
	return observedto.ArchiveOutput{}, nil
}

func (stubObserve) Discard(context.Context) error { return nil }

func (stubObserve) UpdateInfo(context.Context, observedto.InfoPatchInput) (observedto.StatusOutput, error) {
	return observedto.StatusOutput{}, nil
}

func (stubObserve) AddLog(context.Context, observedto.AddLogInput) (observedto.EntryOutput, error) {
	return observedto.EntryOutput{}, nil
}

func (stubObserve) UndoLog(context.Context) (observedto.UndoOutput, error) {
	return observedto.UndoOutput{}, nil
}

func (stubObserve) UpdateLog(context.Context, observedto.UpdateLogInput) (observedto.EntryOutput, error) {
	return observedto.EntryOutput{}, nil
}

func (stubObserve) DeleteLog(context.Context, string) error { return nil }

func (stubObserve) ListLogs(context.Context) ([]observedto.EntryOutput, error) {
	return nil, nil
}

type stubArchive struct{}

func (stubArchive) List(context.Context) ([]archivedto.SummaryOutput, error) { return nil, nil }

func (stubArchive) Get(context.Context, string) (archivedto.ArchivedOutput, error) {
	return archivedto.ArchivedOutput{}, nil
}

func (stubArchive) Delete(context.Context, string) error { return nil }

type stubExport struct{}

func (stubExport) ExportSession(context.Context) (exportdto.ExportOutput, error) {
	return exportdto.ExportOutput{}, nil
}

func (stubExport) ExportArchive(context.Context, string) (exportdto.ExportOutput, error) {
	return exportdto.ExportOutput{}, nil
}

type stubFeedback struct{}

func (stubFeedback) Emit(context.Context, feedbackdto.EmitInput) error { return nil }

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("update returned %T", next)
	}
	return model, cmd
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGlobalKeysYieldToSessionInfoForm(t *testing.T) {
	t.Parallel()

	m := NewModel(stubObserve{}, stubArchive{}, stubExport{}, stubFeedback{})
	m, _ = step(t, m, recordview.StatusMsg{Status: observedto.StatusOutput{Phase: "setup"}})
	m, _ = step(t, m, keyRunes('e'))
	if !m.subViewCaptures() {
		t.Fatal("record view must own the keyboard while its form is open")
	}

	var cmd tea.Cmd
	m, cmd = step(t, m, keyRunes('q'))
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("'q' quit the program while the form was open")
		}
	}
	if !m.recordView.Editing() {
		t.Fatal("'q' closed the form")
	}

	m, _ = step(t, m, keyRunes('?'))
	if m.showHelp {
		t.Fatal("'?' opened help while the form was open")
	}

	m, _ = step(t, m, keyRunes(':'))
	if m.palette.Visible() {
		t.Fatal("':' opened the palette while the form was open")
	}

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabRecord {
		t.Fatal("tab switched tabs while the form was open")
	}
}

package logs

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	observedto "passby/internal/modules/observe/dto"
	"passby/internal/ui/components"
	"passby/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LogsPort interface {
	ListLogs(ctx context.Context) ([]observedto.EntryOutput, error)
	UndoLog(ctx context.Context) (observedto.UndoOutput, error)
	UpdateLog(ctx context.Context, input observedto.UpdateLogInput) (observedto.EntryOutput, error)
	DeleteLog(ctx context.Context, id string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Entries []observedto.EntryOutput
	Err     error
}

type mutatedMsg struct {
	note string
	err  error
}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry observedto.EntryOutput
}

func (i entryItem) Title() string {
	label := "individual"
	if i.entry.Group {
		label = "group"
	}
	return fmt.Sprintf("%s  %s · %s", strings.ToUpper(i.entry.Category), i.entry.Side, label)
}

func (i entryItem) Description() string {
	desc := i.entry.Timestamp
	if i.entry.Note != "" {
		desc += "  " + i.entry.Note
	}
	return desc
}

func (i entryItem) FilterValue() string {
	return i.entry.Category + " " + i.entry.Note
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      LogsPort
	list      list.Model
	noteInput textinput.Model
	editingID string
	confirm   components.Confirm
	width     int
	height    int
}

func New(port LogsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Logs"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "note"
	ti.CharLimit = 240

	return Model{port: port, list: l, noteInput: ti}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload refetches the log sequence, used on tab activation so edits made
// on the record surface show up.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.ListLogs(context.Background())
		return LoadedMsg{Entries: entries, Err: err}
	}
}

// Filtering reports whether the list's search filter is open.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Editing reports whether the note editor is open; global keys must yield.
func (m Model) Editing() bool {
	return m.editingID != ""
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirm.Visible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-1)

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Logs — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Logs (%d)", len(msg.Entries))
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		return m, m.list.SetItems(items)

	case mutatedMsg:
		if msg.err != nil {
			m.list.Title = "Logs — " + msg.err.Error()
			return m, nil
		}
		return m, m.Reload()

	case components.ConfirmResultMsg:
		if msg.Tag == "delete-log" && msg.Accepted {
			return m, m.deleteCmd(msg.ID)
		}

	case tea.KeyMsg:
		if m.editingID != "" {
			return m.updateNoteEditor(msg)
		}
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "u":
			return m, m.undoCmd()
		case "d":
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				m.confirm.Open("Delete this log entry?", "delete-log", item.entry.ID)
			}
			return m, nil
		case "e":
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				m.editingID = item.entry.ID
				m.noteInput.SetValue(item.entry.Note)
				return m, m.noteInput.Focus()
			}
			return m, nil
		case "1", "2", "3", "4":
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				category := [...]string{"pass", "look", "stop", "use"}[msg.String()[0]-'1']
				return m, m.setCategoryCmd(item.entry.ID, category)
			}
			return m, nil
		case "g":
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				group := !item.entry.Group
				return m, m.setGroupCmd(item.entry.ID, group)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateNoteEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingID = ""
		m.noteInput.Blur()
		return m, nil
	case "enter":
		id := m.editingID
		note := m.noteInput.Value()
		m.editingID = ""
		m.noteInput.Blur()
		return m, m.setNoteCmd(id, note)
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.confirm.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}
	if m.editingID != "" {
		body := theme.Title.Render("Edit note") + "\n\n" +
			m.noteInput.View() + "\n\n" +
			theme.Muted.Render("enter: save  esc: cancel")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	footer := theme.Muted.Render("u:undo  d:delete  e:note  1-4:category  g:group/individual")
	return m.list.View() + "\n" + footer
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) undoCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.UndoLog(context.Background())
		return mutatedMsg{note: "undo", err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.port.DeleteLog(context.Background(), id)
		return mutatedMsg{note: "delete", err: err}
	}
}

func (m Model) setNoteCmd(id, note string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.UpdateLog(context.Background(), observedto.UpdateLogInput{ID: id, Note: &note})
		return mutatedMsg{note: "note", err: err}
	}
}

func (m Model) setCategoryCmd(id, category string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.UpdateLog(context.Background(), observedto.UpdateLogInput{ID: id, Category: &category})
		return mutatedMsg{note: "category", err: err}
	}
}

func (m Model) setGroupCmd(id string, group bool) tea.Cmd {
	return func() tea.Msg {
		_, err := m.port.UpdateLog(context.Background(), observedto.UpdateLogInput{ID: id, Group: &group})
		return mutatedMsg{note: "group", err: err}
	}
}

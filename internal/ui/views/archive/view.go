package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	archivedto "passby/internal/modules/archive/dto"
	exportdto "passby/internal/modules/export/dto"
	"passby/internal/ui/components"
	"passby/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type ArchivePort interface {
	List(ctx context.Context) ([]archivedto.SummaryOutput, error)
	Get(ctx context.Context, id string) (archivedto.ArchivedOutput, error)
	Delete(ctx context.Context, id string) error
}

type ExportPort interface {
	ExportArchive(ctx context.Context, id string) (exportdto.ExportOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Summaries []archivedto.SummaryOutput
	Err       error
}

type detailMsg struct {
	archived archivedto.ArchivedOutput
	err      error
}

type deletedMsg struct{ err error }

type ExportedMsg struct {
	Out exportdto.ExportOutput
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type summaryItem struct {
	summary archivedto.SummaryOutput
}

func (i summaryItem) Title() string {
	title := i.summary.CreatedAt.Local().Format("2006-01-02 15:04")
	if i.summary.Location != "" {
		title += "  " + i.summary.Location
	}
	return title
}

func (i summaryItem) Description() string {
	return fmt.Sprintf("%d entries", i.summary.EntryCount)
}

func (i summaryItem) FilterValue() string { return i.summary.Location }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     ArchivePort
	exporter ExportPort
	list     list.Model
	detail   viewport.Model
	current  archivedto.ArchivedOutput
	confirm  components.Confirm
	status   string
	width    int
	height   int
}

func New(port ArchivePort, exporter ExportPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Archive"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	return Model{port: port, exporter: exporter, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload refetches the archive list, most recent first.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		summaries, err := m.port.List(context.Background())
		return LoadedMsg{Summaries: summaries, Err: err}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirm.Visible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Archive — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Archive (%d)", len(msg.Summaries))
		items := make([]list.Item, len(msg.Summaries))
		for i, s := range msg.Summaries {
			items[i] = summaryItem{summary: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Summaries) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Summaries[0].ID))
		} else {
			m.current = archivedto.ArchivedOutput{}
			m.detail.SetContent(theme.Muted.Render("No archived sessions yet"))
		}

	case detailMsg:
		if msg.err == nil {
			m.current = msg.archived
			m.detail.SetContent(m.renderDetail())
		}

	case deletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "archive deleted"
		return m, m.Reload()

	case ExportedMsg:
		if msg.Err != nil {
			m.status = "export failed: " + msg.Err.Error()
		} else {
			m.status = "exported " + msg.Out.Path
		}

	case components.ConfirmResultMsg:
		if msg.Tag == "delete-archive" && msg.Accepted {
			return m, m.deleteCmd(msg.ID)
		}

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "d":
			if item, ok := m.list.SelectedItem().(summaryItem); ok {
				m.confirm.Open("Delete this archived session?", "delete-archive", item.summary.ID)
			}
			return m, nil
		case "x":
			if item, ok := m.list.SelectedItem().(summaryItem); ok {
				return m, m.exportCmd(item.summary.ID)
			}
			return m, nil
		}
	}

	prevIdx := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		if item, ok := m.list.SelectedItem().(summaryItem); ok {
			cmds = append(cmds, m.loadDetailCmd(item.summary.ID))
		}
	}

	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.confirm.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height - 1).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 3).
		Render(m.detail.View())

	footer := theme.Muted.Render("x:export  d:delete")
	if m.status != "" {
		footer += "  " + m.status
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane) + "\n" + footer
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height-1)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 5
}

func (m Model) renderDetail() string {
	a := m.current
	if a.ID == "" {
		return theme.Muted.Render("Select an archive to see its entries")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Archived "+a.CreatedAt.Local().Format("2006-01-02 15:04:05")) + "\n\n")
	if a.Location != "" {
		sb.WriteString(theme.Muted.Render("loc:   ") + a.Location + "\n")
	}
	if a.Note != "" {
		sb.WriteString(theme.Muted.Render("note:  ") + a.Note + "\n")
	}
	if a.StartedAt != nil {
		sb.WriteString(theme.Muted.Render("start: ") + a.StartedAt.Local().Format("15:04:05") + "\n")
	}
	if a.EndedAt != nil {
		sb.WriteString(theme.Muted.Render("end:   ") + a.EndedAt.Local().Format("15:04:05") + "\n")
	}
	sb.WriteString("\n")
	for _, e := range a.Entries {
		label := "individual"
		if e.Group {
			label = "group"
		}
		sb.WriteString(fmt.Sprintf("%s  %-4s %-5s %s", e.Timestamp, strings.ToUpper(e.Category), e.Side, label))
		if e.Note != "" {
			sb.WriteString("  " + theme.Muted.Render(e.Note))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		archived, err := m.port.Get(context.Background(), id)
		return detailMsg{archived: archived, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: m.port.Delete(context.Background(), id)}
	}
}

func (m Model) exportCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.exporter.ExportArchive(context.Background(), id)
		return ExportedMsg{Out: out, Err: err}
	}
}

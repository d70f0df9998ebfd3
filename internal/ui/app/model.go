package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	archivedto "passby/internal/modules/archive/dto"
	exportdto "passby/internal/modules/export/dto"
	feedbackdto "passby/internal/modules/feedback/dto"
	observedto "passby/internal/modules/observe/dto"
	"passby/internal/ui/components"
	"passby/internal/ui/theme"
	archiveview "passby/internal/ui/views/archive"
	logsview "passby/internal/ui/views/logs"
	recordview "passby/internal/ui/views/record"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type observePort interface {
	Status(ctx context.Context) (observedto.StatusOutput, error)
	BeginSetup(ctx context.Context) (observedto.StatusOutput, error)
	CancelSetup(ctx context.Context) (observedto.StatusOutput, error)
	Start(ctx context.Context) (observedto.StatusOutput, error)
	Stop(ctx context.Context) (observedto.StatusOutput, error)
	Resume(ctx context.Context) (observedto.StatusOutput, error)
	Archive(ctx context.Context) (observedto.ArchiveOutput, error)
	Discard(ctx context.Context) error
	UpdateInfo(ctx context.Context, input observedto.InfoPatchInput) (observedto.StatusOutput, error)
	AddLog(ctx context.Context, input observedto.AddLogInput) (observedto.EntryOutput, error)
	UndoLog(ctx context.Context) (observedto.UndoOutput, error)
	UpdateLog(ctx context.Context, input observedto.UpdateLogInput) (observedto.EntryOutput, error)
	DeleteLog(ctx context.Context, id string) error
	ListLogs(ctx context.Context) ([]observedto.EntryOutput, error)
}

type archivePort interface {
	List(ctx context.Context) ([]archivedto.SummaryOutput, error)
	Get(ctx context.Context, id string) (archivedto.ArchivedOutput, error)
	Delete(ctx context.Context, id string) error
}

type exportPort interface {
	ExportSession(ctx context.Context) (exportdto.ExportOutput, error)
	ExportArchive(ctx context.Context, id string) (exportdto.ExportOutput, error)
}

type feedbackPort interface {
	Emit(ctx context.Context, input feedbackdto.EmitInput) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabRecord tabID = iota
	tabLogs
	tabArchive
	tabCount
)

var tabLabels = [tabCount]string{"Record", "Logs", "Archive"}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionExportedMsg struct {
	out exportdto.ExportOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Undo    key.Binding
	Export  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo last log")),
		Export:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Undo, k.Export},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	observe  observePort
	exporter exportPort
	feedback feedbackPort

	recordView  recordview.Model
	logsView    logsview.Model
	archiveView archiveview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(observe observePort, archive archivePort, exporter exportPort, feedback feedbackPort) Model {
	return Model{
		observe:     observe,
		exporter:    exporter,
		feedback:    feedback,
		recordView:  recordview.New(observe, recordFeedbackBridge{p: feedback}),
		logsView:    logsview.New(observe),
		archiveView: archiveview.New(archive, exporter),
		activeTab:   tabRecord,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseAllMotion,
		m.recordView.Init(),
		m.logsView.Init(),
		m.archiveView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case recordview.ArchivedMsg:
		// Archive list and log list both changed; refresh them alongside the
		// record view's own handling.
		if msg.Err == nil {
			cmds = append(cmds, m.archiveView.Reload(), m.logsView.Reload())
		}

	case archiveview.ExportedMsg:
		if msg.Err == nil {
			m.status = "exported " + msg.Out.Filename
		}

	case sessionExportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "exported " + msg.out.Path
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view while it owns the keyboard.
		if m.subViewCaptures() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			return m.switchTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			return m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "x":
			if m.activeTab == tabRecord {
				return m, m.exportSessionCmd()
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabRecord:
		m.recordView, tabCmd = m.recordView.Update(msg)
	case tabLogs:
		m.logsView, tabCmd = m.logsView.Update(msg)
	case tabArchive:
		m.archiveView, tabCmd = m.archiveView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// switchTab changes tabs, cancels any in-flight gesture, refreshes the tab
// being revealed and emits the panel-open cue.
func (m Model) switchTab(next tabID) (tea.Model, tea.Cmd) {
	if next == m.activeTab {
		return m, nil
	}
	m.recordView.CancelGesture()
	m.activeTab = next

	cmds := []tea.Cmd{m.panelCueCmd()}
	switch next {
	case tabRecord:
		cmds = append(cmds, m.recordView.Init())
	case tabLogs:
		cmds = append(cmds, m.logsView.Reload())
	case tabArchive:
		cmds = append(cmds, m.archiveView.Reload())
	}
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabRecord:
		return m.recordView.View()
	case tabLogs:
		return m.logsView.View()
	case tabArchive:
		return m.archiveView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "passby  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "session:setup":
		return m.recordOp("BeginSetup")
	case "session:cancel":
		return m.recordOp("CancelSetup")
	case "session:start":
		return m.recordOp("Start")
	case "session:stop":
		return m.recordOp("Stop")
	case "session:resume":
		return m.recordOp("Resume")
	case "session:archive":
		return m.recordOp("Archive")
	case "session:discard":
		// Still confirmation-gated: route to the record view's overlay.
		m.activeTab = tabRecord
		var cmd tea.Cmd
		m.recordView, cmd = m.recordView.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}})
		return m, cmd

	case "session:location", "session:note":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <text>"
			return m, nil
		}
		text := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.updateInfoCmd(parts[0] == "session:location", text)

	case "log:add":
		if len(parts) < 4 {
			m.status = "usage: log:add <left|right> <individual|group> <category>"
			return m, nil
		}
		return m, m.addLogCmd(parts[1], parts[2] == "group", parts[3])

	case "log:undo":
		return m, m.undoCmd()

	case "export:session":
		return m, m.exportSessionCmd()

	case "export:archive":
		if len(parts) < 2 {
			m.status = "usage: export:archive <id>"
			return m, nil
		}
		return m, m.exportArchiveCmd(parts[1])

	case "feedback:test":
		if len(parts) < 2 {
			m.status = "usage: feedback:test <kind>"
			return m, nil
		}
		return m, m.feedbackTestCmd(parts[1])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// recordOp routes a lifecycle palette command through the record view so
// its status header stays in sync.
func (m Model) recordOp(op string) (tea.Model, tea.Cmd) {
	m.activeTab = tabRecord
	keyFor := map[string]rune{
		"BeginSetup":  'b',
		"CancelSetup": 'c',
		"Start":       's',
		"Stop":        't',
		"Resume":      'r',
		"Archive":     'a',
	}
	r, ok := keyFor[op]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.recordView, cmd = m.recordView.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return m, cmd
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCaptures reports whether the active tab owns the keyboard (list
// filter or a text editor is open), in which case global keys must yield.
func (m Model) subViewCaptures() bool {
	switch m.activeTab {
	case tabRecord:
		return m.recordView.Editing()
	case tabLogs:
		return m.logsView.Filtering() || m.logsView.Editing()
	case tabArchive:
		return m.archiveView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.recordView, _ = m.recordView.Update(sz)
	m.logsView, _ = m.logsView.Update(sz)
	m.archiveView, _ = m.archiveView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) exportSessionCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.exporter.ExportSession(context.Background())
		return sessionExportedMsg{out: out, err: err}
	}
}

func (m Model) exportArchiveCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.exporter.ExportArchive(context.Background(), id)
		return sessionExportedMsg{out: out, err: err}
	}
}

func (m Model) undoCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.observe.UndoLog(context.Background()); err != nil {
			return recordview.StatusMsg{Err: err}
		}
		status, err := m.observe.Status(context.Background())
		return recordview.StatusMsg{Status: status, Err: err}
	}
}

func (m Model) addLogCmd(side string, group bool, category string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.observe.AddLog(context.Background(), observedto.AddLogInput{
			Side:     side,
			Group:    group,
			Category: category,
		})
		if err != nil {
			return recordview.StatusMsg{Err: err}
		}
		status, err := m.observe.Status(context.Background())
		return recordview.StatusMsg{Status: status, Err: err}
	}
}

func (m Model) updateInfoCmd(isLocation bool, text string) tea.Cmd {
	return func() tea.Msg {
		patch := observedto.InfoPatchInput{}
		if isLocation {
			patch.Location = &text
		} else {
			patch.Note = &text
		}
		status, err := m.observe.UpdateInfo(context.Background(), patch)
		return recordview.StatusMsg{Status: status, Err: err}
	}
}

func (m Model) panelCueCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.feedback.Emit(context.Background(), feedbackdto.EmitInput{Kind: "panel-open"})
		return nil
	}
}

func (m Model) feedbackTestCmd(kind string) tea.Cmd {
	return func() tea.Msg {
		_ = m.feedback.Emit(context.Background(), feedbackdto.EmitInput{Kind: kind})
		return nil
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

// recordFeedbackBridge narrows the feedback port to the single in-flight cue
// the record view emits.
type recordFeedbackBridge struct{ p feedbackPort }

func (b recordFeedbackBridge) Emit(ctx context.Context, kind string) {
	_ = b.p.Emit(ctx, feedbackdto.EmitInput{Kind: kind})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"passby/internal/modules/observe/domain"
	observedto "passby/internal/modules/observe/dto"
	apperrors "passby/internal/platform/errors"
	"passby/internal/ui/components"
	"passby/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type ObservePort interface {
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
}

// FeedbackPort carries the in-flight gesture cue; committed-entry cues are
// emitted by the recording usecase itself.
type FeedbackPort interface {
	Emit(ctx context.Context, kind string)
}

// ─── messages ────────────────────────────────────────────────────────────────

type StatusMsg struct {
	Status observedto.StatusOutput
	Err    error
}

type ArchivedMsg struct {
	Out observedto.ArchiveOutput
	Err error
}

type entryAddedMsg struct {
	entry observedto.EntryOutput
	err   error
}

type undoneMsg struct {
	out observedto.UndoOutput
	err error
}

// ─── geometry ────────────────────────────────────────────────────────────────

// Terminal cells are far coarser than the device-independent pixels the
// classifier expects, so cell deltas are scaled up. A cell is roughly twice
// as tall as wide; the Y scale doubles the X scale to keep drag angles true.
const (
	cellScaleX = 16.0
	cellScaleY = 32.0
)

// The terminal reports one pointer, so every mouse episode shares this id.
// The tracker itself supports any number of concurrent pointers.
const mousePointer = 0

type zone struct {
	side  domain.Side
	group bool
}

var zones = [4]zone{
	{side: domain.SideLeft, group: false},
	{side: domain.SideRight, group: false},
	{side: domain.SideLeft, group: true},
	{side: domain.SideRight, group: true},
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     ObservePort
	feedback FeedbackPort

	status  observedto.StatusOutput
	tracker *domain.Tracker

	// active episode bookkeeping for rendering
	activeZone int
	inFlight   domain.Category
	dragging   bool

	// setup form
	editing   bool
	locInput  textinput.Model
	noteInput textinput.Model
	editFocus int

	confirm components.Confirm
	message string
	width   int
	height  int
}

func New(port ObservePort, feedback FeedbackPort) Model {
	loc := textinput.New()
	loc.Placeholder = "location"
	loc.CharLimit = 120
	note := textinput.New()
	note.Placeholder = "note"
	note.CharLimit = 240

	return Model{
		port:       port,
		feedback:   feedback,
		tracker:    domain.NewTracker(),
		activeZone: -1,
		locInput:   loc,
		noteInput:  note,
		message:    "b: set up a session to begin",
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadStatusCmd()
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

	case StatusMsg:
		if msg.Err != nil {
			m.message = msg.Err.Error()
			return m, nil
		}
		m.status = msg.Status
		m.message = phaseHint(msg.Status.Phase)

	case ArchivedMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, apperrors.ErrEmptySession) {
				m.message = "nothing recorded yet: add logs or discard"
			} else {
				m.message = "archive failed: " + msg.Err.Error()
			}
			return m, nil
		}
		m.message = fmt.Sprintf("archived %d entries (%s)", msg.Out.EntryCount, msg.Out.ArchiveID)
		return m, m.loadStatusCmd()

	case entryAddedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, apperrors.ErrNotRecording) {
				m.message = "not recording: gesture ignored"
				return m, nil
			}
			m.message = "log failed: " + msg.err.Error()
			return m, nil
		}
		m.message = fmt.Sprintf("logged %s (%s, %s)", msg.entry.Category, msg.entry.Side, groupLabel(msg.entry.Group))
		return m, m.loadStatusCmd()

	case undoneMsg:
		if msg.err != nil {
			m.message = "undo failed: " + msg.err.Error()
			return m, nil
		}
		if !msg.out.Removed {
			m.message = "nothing to undo"
			return m, nil
		}
		m.message = "removed last entry (" + msg.out.Entry.Category + ")"
		return m, m.loadStatusCmd()

	case components.ConfirmResultMsg:
		if msg.Tag == "discard" && msg.Accepted {
			return m, m.discardCmd()
		}
		m.message = phaseHint(m.status.Phase)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// Editing reports whether the session-info form is open; global keys must
// yield while the operator types.
func (m Model) Editing() bool {
	return m.editing
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "b":
		return m, m.lifecycleCmd(m.port.BeginSetup)
	case "c":
		return m, m.lifecycleCmd(m.port.CancelSetup)
	case "s":
		return m, m.lifecycleCmd(m.port.Start)
	case "t":
		return m, m.lifecycleCmd(m.port.Stop)
	case "r":
		return m, m.lifecycleCmd(m.port.Resume)
	case "a":
		return m, m.archiveCmd()
	case "u":
		return m, m.undoCmd()
	case "D":
		m.confirm.Open("Discard the in-progress session and all its logs?", "discard", "")
	case "e":
		if m.status.Phase == "setup" || m.status.Phase == "finishing" {
			m.editing = true
			m.editFocus = 0
			m.locInput.SetValue(m.status.Location)
			m.noteInput.SetValue(m.status.Note)
			m.noteInput.Blur()
			return m, m.locInput.Focus()
		}
		m.message = "info is editable during setup or finishing"
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.locInput.Blur()
		m.noteInput.Blur()
		return m, nil
	case "tab", "shift+tab":
		m.editFocus = 1 - m.editFocus
		if m.editFocus == 0 {
			m.noteInput.Blur()
			return m, m.locInput.Focus()
		}
		m.locInput.Blur()
		return m, m.noteInput.Focus()
	case "enter":
		m.editing = false
		loc := m.locInput.Value()
		note := m.noteInput.Value()
		m.locInput.Blur()
		m.noteInput.Blur()
		return m, m.saveInfoCmd(loc, note)
	}

	var cmd tea.Cmd
	if m.editFocus == 0 {
		m.locInput, cmd = m.locInput.Update(msg)
	} else {
		m.noteInput, cmd = m.noteInput.Update(msg)
	}
	return m, cmd
}

// ─── mouse / gesture handling ─────────────────────────────────────────────────

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		idx := m.zoneAt(msg.X, msg.Y)
		if idx < 0 {
			return m, nil
		}
		z := zones[idx]
		m.tracker.Begin(mousePointer, z.side, z.group, float64(msg.X)*cellScaleX, float64(msg.Y)*cellScaleY)
		m.activeZone = idx
		m.inFlight = domain.CategoryPass
		m.dragging = true

	case tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		category, changed := m.tracker.Move(mousePointer, float64(msg.X)*cellScaleX, float64(msg.Y)*cellScaleY)
		if changed {
			m.inFlight = category
			return m, m.cueCmd("change")
		}

	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		m.activeZone = -1
		episode, ok := m.tracker.End(mousePointer, float64(msg.X)*cellScaleX, float64(msg.Y)*cellScaleY)
		if !ok {
			return m, nil
		}
		return m, m.addLogCmd(episode)
	}
	return m, nil
}

// CancelGesture discards any in-flight episode, e.g. when the operator
// switches tabs mid-drag. Nothing is committed.
func (m *Model) CancelGesture() {
	if m.dragging {
		m.tracker.Cancel(mousePointer)
		m.dragging = false
		m.activeZone = -1
	}
}

// zoneAt maps a terminal coordinate to a zone index, or -1 outside the grid.
func (m Model) zoneAt(x, y int) int {
	top := m.headerHeight()
	gridH := m.height - top
	if gridH < 2 || y < top || x < 0 || x >= m.width {
		return -1
	}
	col := 0
	if x >= m.width/2 {
		col = 1
	}
	row := 0
	if y-top >= gridH/2 {
		row = 1
	}
	return row*2 + col
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()

	if m.confirm.Visible() {
		return header + "\n" + lipgloss.Place(m.width, m.height-m.headerHeight(),
			lipgloss.Center, lipgloss.Center, m.confirm.View())
	}
	if m.editing {
		return header + "\n" + m.renderForm()
	}

	return header + m.renderGrid()
}

func (m Model) renderHeader() string {
	var sb strings.Builder
	sb.WriteString(phaseBadge(m.status.Phase) + "  " + theme.Muted.Render(fmt.Sprintf("%d logged", m.status.LogCount)) + "\n")

	line := theme.Muted.Render("loc: ")
	if m.status.Location != "" {
		line += m.status.Location
	} else {
		line += theme.Muted.Render("—")
	}
	if m.status.Note != "" {
		line += theme.Muted.Render("  note: ") + m.status.Note
	}
	sb.WriteString(line + "\n")

	span := theme.Muted.Render("start: ") + optionalTime(m.status.StartedAt) +
		theme.Muted.Render("  end: ") + optionalTime(m.status.EndedAt)
	sb.WriteString(span + "\n")
	sb.WriteString(theme.Muted.Render("b:setup c:cancel s:start t:stop r:resume a:archive u:undo e:info D:discard") + "\n")
	sb.WriteString(m.message + "\n")
	return sb.String()
}

// headerHeight must agree with renderHeader's line count; the mouse hit test
// depends on it.
func (m Model) headerHeight() int {
	return 5
}

func (m Model) renderForm() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Session info") + "\n\n")
	sb.WriteString("location: " + m.locInput.View() + "\n")
	sb.WriteString("note:     " + m.noteInput.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("tab: switch field  enter: save  esc: cancel"))
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func (m Model) renderGrid() string {
	top := m.headerHeight()
	gridH := m.height - top
	if gridH < 4 || m.width < 8 {
		return ""
	}
	zoneW := m.width / 2
	zoneH := gridH / 2

	cells := make([]string, 4)
	for i := range zones {
		cells[i] = m.renderZone(i, zoneW, zoneH)
	}
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, cells[0], cells[1])
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, cells[2], cells[3])
	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow)
}

func (m Model) renderZone(idx, w, h int) string {
	z := zones[idx]
	label := strings.ToUpper(string(z.side)) + " · " + groupLabel(z.group)

	style := theme.Pane.Width(w - 2).Height(h - 2)
	body := theme.Muted.Render(label)
	if idx == m.activeZone {
		style = theme.PaneActive.Width(w - 2).Height(h - 2)
		body = theme.Title.Render(label) + "\n\n" + theme.Hot.Render("→ "+string(m.inFlight))
	} else if m.status.Phase != "recording" {
		body = theme.Muted.Render(label)
	}

	content := lipgloss.Place(w-4, h-4, lipgloss.Center, lipgloss.Center, body)
	return style.Render(content)
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) lifecycleCmd(op func(context.Context) (observedto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := op(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) archiveCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Archive(context.Background())
		return ArchivedMsg{Out: out, Err: err}
	}
}

func (m Model) discardCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.port.Discard(context.Background()); err != nil {
			return StatusMsg{Err: err}
		}
		status, err := m.port.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) undoCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.UndoLog(context.Background())
		return undoneMsg{out: out, err: err}
	}
}

func (m Model) saveInfoCmd(location, note string) tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.UpdateInfo(context.Background(), observedto.InfoPatchInput{
			Location: &location,
			Note:     &note,
		})
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) addLogCmd(episode domain.Episode) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.port.AddLog(context.Background(), observedto.AddLogInput{
			Side:     string(episode.Side),
			Group:    episode.Group,
			Category: string(episode.Category),
		})
		return entryAddedMsg{entry: entry, err: err}
	}
}

func (m Model) cueCmd(kind string) tea.Cmd {
	return func() tea.Msg {
		m.feedback.Emit(context.Background(), kind)
		return nil
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func phaseBadge(phase string) string {
	switch phase {
	case "recording":
		return theme.Live.Render("● RECORDING")
	case "setup":
		return theme.Hot.Render("○ SETUP")
	case "finishing":
		return theme.Hot.Render("◌ FINISHING")
	default:
		return theme.Muted.Render("· idle")
	}
}

func phaseHint(phase string) string {
	switch phase {
	case "idle":
		return "b: set up a session to begin"
	case "setup":
		return "e: edit info  s: start recording  c: back to idle"
	case "recording":
		return "drag inside a zone to log  t: stop"
	case "finishing":
		return "a: archive  r: resume  e: edit info  D: discard"
	default:
		return ""
	}
}

func groupLabel(group bool) string {
	if group {
		return "group"
	}
	return "individual"
}

func optionalTime(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Local().Format("15:04:05")
}

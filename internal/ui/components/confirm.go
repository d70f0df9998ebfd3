package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"passby/internal/ui/theme"
)

// ConfirmResultMsg reports the operator's decision. Tag and ID identify the
// pending action so the owning view can route the result.
type ConfirmResultMsg struct {
	Tag      string
	ID       string
	Accepted bool
}

var confirmStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

// Confirm is a modal yes/no prompt gating destructive actions. Declining
// leaves all state unchanged.
type Confirm struct {
	prompt  string
	tag     string
	id      string
	visible bool
}

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) Open(prompt, tag, id string) {
	c.prompt = prompt
	c.tag = tag
	c.id = id
	c.visible = true
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		c.visible = false
		result := ConfirmResultMsg{Tag: c.tag, ID: c.id, Accepted: true}
		return c, func() tea.Msg { return result }
	case "n", "N", "esc":
		c.visible = false
		result := ConfirmResultMsg{Tag: c.tag, ID: c.id, Accepted: false}
		return c, func() tea.Msg { return result }
	}
	return c, nil
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	body := theme.Danger.Render(c.prompt) + "\n" +
		theme.Muted.Render("y: confirm   n/esc: cancel")
	return confirmStyle.Render(body)
}

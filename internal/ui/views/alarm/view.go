package alarm

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	alarmdto "vclock/internal/modules/alarm/dto"
	"vclock/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AlarmPort interface {
	Status(ctx context.Context) alarmdto.AlarmOutput
	Next(ctx context.Context) string
	CurrentTime(ctx context.Context) string
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   AlarmPort
	status alarmdto.AlarmOutput
	next   string
	now    string
	width  int
	height int
}

func New(port AlarmPort) Model {
	return Model{port: port}
}

// Refresh reads a fresh snapshot. The app model calls it on every redraw
// tick.
func (m Model) Refresh(ctx context.Context) Model {
	if m.port == nil {
		return m
	}
	m.status = m.port.Status(ctx)
	m.next = m.port.Next(ctx)
	m.now = m.port.CurrentTime(ctx)
	return m
}

// Ringing reports whether the last snapshot saw the alarm going off.
func (m Model) Ringing() bool { return m.status.Triggered }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Big.Render(m.now) + "\n\n")

	title := m.status.Title
	if title == "" {
		title = "Alarm"
	}
	sb.WriteString(theme.Title.Render(title) + "  " + m.status.Display + "\n")
	switch {
	case m.status.Triggered:
		sb.WriteString(theme.Alert.Render("⏰ ringing") + "\n")
	case m.status.IsActive:
		sb.WriteString(theme.Hot.Render("● armed") + theme.Muted.Render("  rings in "+m.next) + "\n")
	default:
		sb.WriteString(theme.Muted.Render("○ off") + "\n")
	}
	sb.WriteString(theme.Muted.Render("sound:  ") + m.status.Sound + "\n")
	repeat := "no"
	if m.status.Repeat {
		repeat = "yes"
	}
	sb.WriteString(theme.Muted.Render("repeat: ") + repeat + "\n")
	sb.WriteString("\n" + theme.Muted.Render("space: start/stop  d: dismiss  t: test sound  :alarm:set 7 30 am"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.Pane.Width(min(m.width-4, 60)).Render(sb.String()))
}

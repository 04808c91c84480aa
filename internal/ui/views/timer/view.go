package timer

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "vclock/internal/modules/timer/dto"
	"vclock/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimerPort interface {
	Status(ctx context.Context) timerdto.TimerOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   TimerPort
	status timerdto.TimerOutput
	width  int
	height int
}

func New(port TimerPort) Model {
	return Model{port: port}
}

func (m Model) Refresh(ctx context.Context) Model {
	if m.port != nil {
		m.status = m.port.Status(ctx)
	}
	return m
}

// Running reports whether the last snapshot saw a running countdown.
func (m Model) Running() bool { return m.status.State == "running" }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) View() string {
	w := min(m.width-4, 60)
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.status.Title) + theme.Muted.Render("  "+m.status.Mode) + "\n")

	display := theme.Big.Render(m.status.Display)
	if m.status.State == "finished" {
		display = theme.Alert.Padding(1, 0).Render(m.status.Display)
	}
	sb.WriteString(display + "\n")
	sb.WriteString(ProgressBar(m.status.Progress, max(w-12, 10)) + fmt.Sprintf(" %3.0f%%", m.status.Progress) + "\n\n")
	sb.WriteString(theme.Muted.Render("state: ") + stateLabel(m.status.State) + "\n")
	if m.status.TargetDate != nil {
		sb.WriteString(theme.Muted.Render("until: ") + m.status.TargetDate.Format("2006-01-02 15:04") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: start/pause  r: reset  +: add 1 min  :timer:set 5:00"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.Pane.Width(w).Render(sb.String()))
}

// ProgressBar draws percent (0-100) as a bar of the given width.
func ProgressBar(percent float64, width int) string {
	percent = max(0, min(percent, 100))
	filled := int(percent / 100 * float64(width))
	return lipgloss.NewStyle().Foreground(theme.Green).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Surface1).Render(strings.Repeat("░", width-filled))
}

func stateLabel(state string) string {
	switch state {
	case "running":
		return theme.Hot.Render("running")
	case "finished":
		return theme.Alert.Render("finished")
	}
	return state
}

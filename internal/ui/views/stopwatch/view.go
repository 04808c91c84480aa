package stopwatch

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	stopwatchdto "vclock/internal/modules/stopwatch/dto"
	"vclock/internal/platform/timefmt"
	"vclock/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type StopwatchPort interface {
	Status(ctx context.Context) stopwatchdto.StopwatchOutput
	Stats(ctx context.Context) stopwatchdto.StatsOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   StopwatchPort
	status stopwatchdto.StopwatchOutput
	stats  stopwatchdto.StatsOutput
	laps   table.Model
	width  int
	height int
}

func New(port StopwatchPort) Model {
	t := table.New(
		table.WithColumns(columns(60)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Sapphire).Bold(true)
	styles.Selected = styles.Selected.Foreground(theme.Lavender).Bold(false)
	t.SetStyles(styles)
	return Model{port: port, laps: t}
}

func columns(width int) []table.Column {
	w := max((width-8)/4, 8)
	return []table.Column{
		{Title: "Lap", Width: 6},
		{Title: "Lap Time", Width: w},
		{Title: "Total", Width: w},
		{Title: "vs Avg", Width: w},
	}
}

func (m Model) Refresh(ctx context.Context) Model {
	if m.port == nil {
		return m
	}
	m.status = m.port.Status(ctx)
	m.stats = m.port.Stats(ctx)
	m.laps.SetRows(m.rows())
	return m
}

// Running reports whether the last snapshot saw the stopwatch running.
func (m Model) Running() bool { return m.status.Running }

// SelectedLap is the lap number under the cursor, newest first.
func (m Model) SelectedLap() (int, bool) {
	row := m.laps.SelectedRow()
	if row == nil {
		return 0, false
	}
	n, err := strconv.Atoi(row[0])
	return n, err == nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.laps.SetColumns(columns(min(m.width-4, 72)))
		m.laps.SetHeight(max(m.height-14, 3))
		return m, nil
	}
	var cmd tea.Cmd
	m.laps, cmd = m.laps.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	state := theme.Muted.Render("paused")
	if m.status.Running {
		state = theme.Hot.Render("running")
	}
	sb.WriteString(theme.Big.Render(m.status.Display) + "  " + state + "\n")
	if m.stats.Count > 0 {
		sb.WriteString(theme.Muted.Render("fastest ") + lipgloss.NewStyle().Foreground(theme.Green).Render(m.stats.Fastest.LapDisplay) +
			theme.Muted.Render("  slowest ") + lipgloss.NewStyle().Foreground(theme.Red).Render(m.stats.Slowest.LapDisplay) +
			theme.Muted.Render("  average ") + m.stats.AverageDisplay + "\n\n")
	}
	sb.WriteString(m.laps.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("space: start/pause  l: lap  r: reset  x: delete lap  p: precision"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, sb.String())
}

func (m Model) rows() []table.Row {
	laps := m.status.Laps
	rows := make([]table.Row, 0, len(laps))
	for i := len(laps) - 1; i >= 0; i-- {
		lap := laps[i]
		vsAvg := ""
		if m.stats.Count > 1 {
			vsAvg = timefmt.FormatLapDifference(lap.LapTime, int64(m.stats.AverageMs))
		}
		rows = append(rows, table.Row{strconv.Itoa(lap.Number), lap.LapDisplay, lap.TotalDisplay, vsAvg})
	}
	return rows
}

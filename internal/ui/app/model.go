package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	alarmdto "vclock/internal/modules/alarm/dto"
	stopwatchdto "vclock/internal/modules/stopwatch/dto"
	storagedto "vclock/internal/modules/storage/dto"
	timerdto "vclock/internal/modules/timer/dto"
	worldclockdto "vclock/internal/modules/worldclock/dto"
	"vclock/internal/ui/components"
	"vclock/internal/ui/theme"
	alarmview "vclock/internal/ui/views/alarm"
	stopwatchview "vclock/internal/ui/views/stopwatch"
	timerview "vclock/internal/ui/views/timer"
	clockview "vclock/internal/ui/views/worldclock"
)

const refreshInterval = 100 * time.Millisecond

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type AlarmHandler interface {
	alarmview.AlarmPort
	Set(ctx context.Context, hour, minute, meridian, sound, title string, repeat *bool) (alarmdto.AlarmOutput, error)
	Start(ctx context.Context) alarmdto.AlarmOutput
	Stop(ctx context.Context)
	Dismiss(ctx context.Context)
	TestSound(ctx context.Context, sound string)
}

type TimerHandler interface {
	timerview.TimerPort
	Set(ctx context.Context, input string) (timerdto.TimerOutput, error)
	Start(ctx context.Context) (timerdto.TimerOutput, error)
	Pause(ctx context.Context) timerdto.TimerOutput
	Resume(ctx context.Context) (timerdto.TimerOutput, error)
	Reset(ctx context.Context) timerdto.TimerOutput
	Add(ctx context.Context, seconds string) (timerdto.TimerOutput, error)
}

type StopwatchHandler interface {
	stopwatchview.StopwatchPort
	Start(ctx context.Context) stopwatchdto.StopwatchOutput
	Pause(ctx context.Context) stopwatchdto.StopwatchOutput
	Toggle(ctx context.Context) stopwatchdto.StopwatchOutput
	Reset(ctx context.Context) stopwatchdto.StopwatchOutput
	Lap(ctx context.Context) (stopwatchdto.LapOutput, error)
	DeleteLap(ctx context.Context, number string) error
	SetPrecision(ctx context.Context, precision string) (stopwatchdto.StopwatchOutput, error)
}

type ClockHandler interface {
	clockview.ClockPort
	List(ctx context.Context) []worldclockdto.UserCityOutput
	Add(ctx context.Context, city string) (worldclockdto.UserCityOutput, error)
	Remove(ctx context.Context, ref string) error
	Move(ctx context.Context, ref, position string) error
}

type StoreHandler interface {
	Theme(ctx context.Context) (string, bool)
	ToggleTheme(ctx context.Context, fallback string) (string, error)
	SetTimeFormat(ctx context.Context, format int) (storagedto.VisualSettings, error)
}

type SoundsHandler interface {
	Interact(ctx context.Context)
	Stop(ctx context.Context)
}

// Handlers groups the feature entry points the UI drives.
type Handlers struct {
	Alarm     AlarmHandler
	Timer     TimerHandler
	Stopwatch StopwatchHandler
	Clock     ClockHandler
	Store     StoreHandler
	Sounds    SoundsHandler
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabAlarm tabID = iota
	tabTimer
	tabStopwatch
	tabClock
	tabCount
)

var tabLabels = [tabCount]string{
	"Alarm", "Timer", "Stopwatch", "World Clock",
}

// ─── async messages ───────────────────────────────────────────────────────────

type refreshMsg time.Time

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Reset   key.Binding
	Lap     key.Binding
	Dismiss key.Binding
	Delete  key.Binding
	Move    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Lap:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lap")),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss alarm")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete lap/city")),
		Move:    key.NewBinding(key.WithKeys("K", "J"), key.WithHelp("K/J", "move city")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Reset},
		{k.Lap, k.Dismiss, k.Delete, k.Move},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the redraw tick,
// the global help overlay, and the command palette. Feature logic runs
// behind the handlers; rendering is delegated to sub-views.
type Model struct {
	ctx context.Context
	h   Handlers

	alarmView     alarmview.Model
	timerView     timerview.Model
	stopwatchView stopwatchview.Model
	clockView     clockview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	themeName string
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(ctx context.Context, h Handlers) Model {
	name := theme.Resolve(h.Store.Theme(ctx))
	theme.Apply(name)
	return Model{
		ctx:           ctx,
		h:             h,
		alarmView:     alarmview.New(h.Alarm),
		timerView:     timerview.New(h.Timer),
		stopwatchView: stopwatchview.New(h.Stopwatch),
		clockView:     clockview.New(h.Clock),
		activeTab:     tabAlarm,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		themeName:     name,
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg(time.Now()) }
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if r, ok := msg.(refreshMsg); ok {
		return m.refresh(time.Time(r))
	}

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

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		// A key press counts as the user interaction blocked playback waits for.
		m.h.Sounds.Interact(m.ctx)

		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.activeTab == tabClock && m.clockView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "d":
			m.h.Alarm.Dismiss(m.ctx)
			m.status = "alarm dismissed"
			return m, nil
		}
		if handled := m.handleTabKey(msg.String()); handled {
			return m, nil
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabAlarm:
		m.alarmView, tabCmd = m.alarmView.Update(msg)
	case tabTimer:
		m.timerView, tabCmd = m.timerView.Update(msg)
	case tabStopwatch:
		m.stopwatchView, tabCmd = m.stopwatchView.Update(msg)
	case tabClock:
		m.clockView, tabCmd = m.clockView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// handleTabKey runs the single-key actions of the active tab.
func (m *Model) handleTabKey(k string) bool {
	switch m.activeTab {
	case tabAlarm:
		switch k {
		case " ":
			if m.h.Alarm.Status(m.ctx).IsActive {
				m.h.Alarm.Stop(m.ctx)
				m.status = "alarm off"
			} else {
				out := m.h.Alarm.Start(m.ctx)
				m.status = "alarm set for " + out.Display
			}
		case "t":
			m.h.Alarm.TestSound(m.ctx, "")
			m.status = "testing sound"
		default:
			return false
		}

	case tabTimer:
		switch k {
		case " ":
			m.status = m.toggleTimer()
		case "r":
			m.h.Timer.Reset(m.ctx)
			m.status = "timer reset"
		case "+":
			if _, err := m.h.Timer.Add(m.ctx, "60"); err != nil {
				m.status = "timer: " + err.Error()
			} else {
				m.status = "added 1 min"
			}
		default:
			return false
		}

	case tabStopwatch:
		switch k {
		case " ":
			m.h.Stopwatch.Toggle(m.ctx)
		case "l":
			if lap, err := m.h.Stopwatch.Lap(m.ctx); err != nil {
				m.status = "lap: " + err.Error()
			} else {
				m.status = fmt.Sprintf("lap %d  %s", lap.Number, lap.LapDisplay)
			}
		case "r":
			m.h.Stopwatch.Reset(m.ctx)
			m.status = "stopwatch reset"
		case "x":
			if n, ok := m.stopwatchView.SelectedLap(); ok {
				if err := m.h.Stopwatch.DeleteLap(m.ctx, strconv.Itoa(n)); err != nil {
					m.status = "delete lap: " + err.Error()
				} else {
					m.status = fmt.Sprintf("lap %d deleted", n)
				}
			}
		case "p":
			next := (m.h.Stopwatch.Status(m.ctx).Precision + 1) % 4
			if _, err := m.h.Stopwatch.SetPrecision(m.ctx, strconv.Itoa(next)); err == nil {
				m.status = fmt.Sprintf("precision %d", next)
			}
		default:
			return false
		}

	case tabClock:
		switch k {
		case "x":
			if city, ok := m.clockView.SelectedCity(); ok {
				m.status = m.result("removed "+city, m.h.Clock.Remove(m.ctx, city))
			}
		case "K", "J":
			m.status = m.moveSelectedCity(k == "K")
		default:
			return false
		}

	default:
		return false
	}
	return true
}

func (m *Model) toggleTimer() string {
	var err error
	switch m.h.Timer.Status(m.ctx).State {
	case "running":
		m.h.Timer.Pause(m.ctx)
		return "timer paused"
	case "paused":
		_, err = m.h.Timer.Resume(m.ctx)
	case "finished":
		m.h.Timer.Reset(m.ctx)
		return "timer reset"
	default:
		_, err = m.h.Timer.Start(m.ctx)
	}
	return m.result("timer running", err)
}

func (m *Model) moveSelectedCity(up bool) string {
	city, ok := m.clockView.SelectedCity()
	if !ok {
		return m.status
	}
	for _, uc := range m.h.Clock.List(m.ctx) {
		if uc.City.ID != city {
			continue
		}
		order := uc.Order + 1
		if up {
			order = uc.Order - 1
		}
		return m.result("moved "+uc.City.Name, m.h.Clock.Move(m.ctx, city, strconv.Itoa(order)))
	}
	return m.status
}

func (m Model) refresh(at time.Time) (tea.Model, tea.Cmd) {
	m.alarmView = m.alarmView.Refresh(m.ctx)
	m.timerView = m.timerView.Refresh(m.ctx)
	m.stopwatchView = m.stopwatchView.Refresh(m.ctx)
	var clockCmd tea.Cmd
	if at.Sub(at.Truncate(time.Second)) < refreshInterval || m.activeTab == tabClock {
		m.clockView, clockCmd = m.clockView.Refresh(m.ctx)
	}
	next := tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
	return m, tea.Batch(clockCmd, next)
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
	case tabAlarm:
		return m.alarmView.View()
	case tabTimer:
		return m.timerView.View()
	case tabStopwatch:
		return m.stopwatchView.View()
	case tabClock:
		return m.clockView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		switch {
		case i == m.activeTab:
			parts[i] = theme.Hot.Render(" " + label + " ")
		case i == tabTimer && m.timerView.Running(), i == tabStopwatch && m.stopwatchView.Running():
			parts[i] = theme.Muted.Render(" " + label + " ●")
		default:
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "vclock  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.alarmView.Ringing() {
		left = theme.Alert.Render("⏰ alarm! press d to dismiss") + "  " + left
	}
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
	args := parts[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "alarm:set":
		if len(args) < 3 {
			m.status = "usage: alarm:set <hour> <minute> <am|pm>"
			return m, nil
		}
		out, err := m.h.Alarm.Set(m.ctx, args[0], args[1], args[2], "", "", nil)
		m.activeTab = tabAlarm
		m.status = m.result("alarm set to "+out.Display, err)

	case "alarm:start":
		out := m.h.Alarm.Start(m.ctx)
		m.activeTab = tabAlarm
		m.status = "alarm armed for " + out.Display

	case "alarm:stop":
		m.h.Alarm.Stop(m.ctx)
		m.status = "alarm off"

	case "alarm:dismiss":
		m.h.Alarm.Dismiss(m.ctx)
		m.status = "alarm dismissed"

	case "alarm:test":
		m.h.Alarm.TestSound(m.ctx, rest)
		m.status = "testing sound"

	case "timer:set":
		if rest == "" {
			m.status = "usage: timer:set <5:00|90|10 min>"
			return m, nil
		}
		out, err := m.h.Timer.Set(m.ctx, rest)
		m.activeTab = tabTimer
		m.status = m.result("timer set to "+out.Display, err)

	case "timer:start":
		_, err := m.h.Timer.Start(m.ctx)
		m.activeTab = tabTimer
		m.status = m.result("timer running", err)

	case "timer:pause":
		m.h.Timer.Pause(m.ctx)
		m.status = "timer paused"

	case "timer:resume":
		_, err := m.h.Timer.Resume(m.ctx)
		m.status = m.result("timer running", err)

	case "timer:reset":
		m.h.Timer.Reset(m.ctx)
		m.status = "timer reset"

	case "timer:add":
		if len(args) < 1 {
			m.status = "usage: timer:add <seconds>"
			return m, nil
		}
		_, err := m.h.Timer.Add(m.ctx, args[0])
		m.status = m.result("added "+args[0]+"s", err)

	case "stopwatch:start":
		m.h.Stopwatch.Start(m.ctx)
		m.activeTab = tabStopwatch

	case "stopwatch:pause":
		m.h.Stopwatch.Pause(m.ctx)

	case "stopwatch:lap":
		lap, err := m.h.Stopwatch.Lap(m.ctx)
		m.status = m.result(fmt.Sprintf("lap %d  %s", lap.Number, lap.LapDisplay), err)

	case "stopwatch:reset":
		m.h.Stopwatch.Reset(m.ctx)
		m.status = "stopwatch reset"

	case "stopwatch:precision":
		if len(args) < 1 {
			m.status = "usage: stopwatch:precision <0-3>"
			return m, nil
		}
		_, err := m.h.Stopwatch.SetPrecision(m.ctx, args[0])
		m.status = m.result("precision "+args[0], err)

	case "clock:add":
		out, err := m.h.Clock.Add(m.ctx, rest)
		m.activeTab = tabClock
		m.status = m.result("added "+out.City.Name, err)

	case "clock:remove":
		m.status = m.result("removed "+rest, m.h.Clock.Remove(m.ctx, rest))

	case "clock:move":
		if len(args) < 2 {
			m.status = "usage: clock:move <city> <position>"
			return m, nil
		}
		m.status = m.result("moved "+args[0], m.h.Clock.Move(m.ctx, args[0], args[1]))

	case "theme:toggle":
		name, err := m.h.Store.ToggleTheme(m.ctx, m.themeName)
		if err == nil {
			m.themeName = name
			theme.Apply(name)
		}
		m.status = m.result("theme "+name, err)

	case "format:12", "format:24":
		format, _ := strconv.Atoi(strings.TrimPrefix(parts[0], "format:"))
		_, err := m.h.Store.SetTimeFormat(m.ctx, format)
		m.status = m.result(parts[0], err)

	default:
		m.status = "unknown command: " + parts[0]
		return m, nil
	}
	return m.refresh(time.Now())
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) result(ok string, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return ok
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.alarmView, _ = m.alarmView.Update(sz)
	m.timerView, _ = m.timerView.Update(sz)
	m.stopwatchView, _ = m.stopwatchView.Update(sz)
	m.clockView, _ = m.clockView.Update(sz)
}

package worldclock

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	worldclockdto "vclock/internal/modules/worldclock/dto"
	"vclock/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ClockPort interface {
	Times(ctx context.Context) []worldclockdto.CityTimeOutput
}

// ─── list item ───────────────────────────────────────────────────────────────

type cardItem struct {
	card worldclockdto.CityTimeOutput
}

func (i cardItem) Title() string {
	icon := "☾"
	if i.card.Daytime {
		icon = "☀"
	}
	return fmt.Sprintf("%s %-16s %s", icon, i.card.City.Name, i.card.Display)
}

func (i cardItem) Description() string {
	return fmt.Sprintf("%s · %s · %s (%s) · %s", i.card.City.Country, i.card.Date, i.card.UTCOffset, i.card.Relative, i.card.Label)
}

func (i cardItem) FilterValue() string { return i.card.City.Name + " " + i.card.City.Country }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   ClockPort
	list   list.Model
	width  int
	height int
}

func New(port ClockPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "World Clock"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

// Refresh replaces the cards and keeps the cursor where it was.
func (m Model) Refresh(ctx context.Context) (Model, tea.Cmd) {
	if m.port == nil {
		return m, nil
	}
	cards := m.port.Times(ctx)
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = cardItem{card: c}
	}
	return m, m.list.SetItems(items)
}

// SelectedCity returns the dataset id of the card under the cursor.
func (m Model) SelectedCity() (string, bool) {
	if item, ok := m.list.SelectedItem().(cardItem); ok {
		return item.card.City.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(min(m.width, 90), m.height)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No cities. Add one with :clock:add tokyo"))
	}
	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(m.list.View()) +
		"\n" + theme.Muted.Render("x: remove  K/J: move up/down  /: filter")
}

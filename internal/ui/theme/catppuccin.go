package theme

import "github.com/charmbracelet/lipgloss"

const (
	Dark  = "dark"
	Light = "light"
)

// Palette holds the Catppuccin colors the views draw with.
type Palette struct {
	Base, Mantle, Surface0, Surface1 lipgloss.Color
	Text, Subtext0                   lipgloss.Color
	Lavender, Sapphire, Green, Peach lipgloss.Color
	Red, Yellow                      lipgloss.Color
}

var (
	Mocha = Palette{
		Base: "#1e1e2e", Mantle: "#181825", Surface0: "#313244", Surface1: "#45475a",
		Text: "#cdd6f4", Subtext0: "#a6adc8",
		Lavender: "#b4befe", Sapphire: "#74c7ec", Green: "#a6e3a1", Peach: "#fab387",
		Red: "#f38ba8", Yellow: "#f9e2af",
	}
	Latte = Palette{
		Base: "#eff1f5", Mantle: "#e6e9ef", Surface0: "#ccd0da", Surface1: "#bcc0cc",
		Text: "#4c4f69", Subtext0: "#6c6f85",
		Lavender: "#7287fd", Sapphire: "#209fb5", Green: "#40a02b", Peach: "#fe640b",
		Red: "#d20f39", Yellow: "#df8e1d",
	}
)

var (
	Base, Mantle, Surface0, Surface1 lipgloss.Color
	Text, Subtext0                   lipgloss.Color
	Lavender, Sapphire, Green, Peach lipgloss.Color
	Red, Yellow                      lipgloss.Color

	App, Pane, PaneActive, Title, Muted, Hot, Alert, Big lipgloss.Style
)

func init() { Apply(Dark) }

// Resolve picks the stored theme, or follows the terminal background when
// none was stored.
func Resolve(stored string, ok bool) string {
	if ok && (stored == Dark || stored == Light) {
		return stored
	}
	if lipgloss.HasDarkBackground() {
		return Dark
	}
	return Light
}

// Apply switches every color and style to the named theme. Unknown names
// select the dark theme.
func Apply(name string) {
	p := Mocha
	if name == Light {
		p = Latte
	}
	Base, Mantle, Surface0, Surface1 = p.Base, p.Mantle, p.Surface0, p.Surface1
	Text, Subtext0 = p.Text, p.Subtext0
	Lavender, Sapphire, Green, Peach = p.Lavender, p.Sapphire, p.Green, p.Peach
	Red, Yellow = p.Red, p.Yellow

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Alert = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Big = lipgloss.NewStyle().Foreground(Lavender).Bold(true).Padding(1, 0)
}

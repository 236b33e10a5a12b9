package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 100

// Theme defines the colour palette for command output.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Border    lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Border:    lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles for result output.
type Styles struct {
	theme *Theme

	// Heading style for the subject line and source groups.
	Heading lipgloss.Style

	// Title style for resource titles.
	Title lipgloss.Style

	// Link style for URLs.
	Link lipgloss.Style

	// Muted style for metadata and descriptions.
	Muted lipgloss.Style

	// Key style for setting names.
	Key lipgloss.Style

	// Warning style for hints.
	Warning lipgloss.Style

	// Card style wrapping each resource.
	Card lipgloss.Style

	labels map[string]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Title: lipgloss.NewStyle().
			Bold(true),

		Link: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Underline(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Key: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1),

		labels: map[string]lipgloss.Style{
			domain.LabelHighlyRecommended: lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
			domain.LabelRecommended:       lipgloss.NewStyle().Foreground(theme.Secondary),
			domain.LabelGoodResource:      lipgloss.NewStyle().Foreground(theme.Muted),
		},
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Label renders a quality label in its colour.
func (s *Styles) Label(label string) string {
	if style, ok := s.labels[label]; ok {
		return style.Render(label)
	}
	return s.Muted.Render(label)
}

// terminalWidth returns the stdout width, or defaultWidth when unknown.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

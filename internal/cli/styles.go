package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TheTechnobear/Percussa.Rnbo/internal/doctor"
	"github.com/TheTechnobear/Percussa.Rnbo/internal/ui"
)

var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorSuccess))
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorWarn))
	cliFail    = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorError))
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorMuted))
	cliTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorPrimary)).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ui.ColorSuccess)).
			Padding(0, 2)
)

// kvPair is one key/value line in a detail block.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines aligns key/value pairs into a block.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = fmt.Sprintf("%s  %s", cliMuted.Render(fmt.Sprintf("%-*s", width, p.key)), p.value)
	}
	return strings.Join(lines, "\n")
}

// renderSuccessCard renders a bordered success card with optional detail
// blocks below the title.
func renderSuccessCard(title string, details ...string) string {
	content := cliSuccess.Render("✓ ") + cliTitle.Render(title)
	for _, d := range details {
		if d != "" {
			content += "\n" + d
		}
	}
	return cardStyle.Render(content)
}

// statusIcon renders the colored outcome marker of one check.
func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return cliSuccess.Render("✓")
	case doctor.StatusWarn:
		return cliWarn.Render("!")
	default:
		return cliFail.Render("✗")
	}
}

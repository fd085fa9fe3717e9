package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/talentquiz/internal/ui/theme"
)

const bannerArt = `
▀█▀ ▄▀█ █   █▀▀ █▄ █ ▀█▀   █▀█ █ █ █ ▀█
 █  █▀█ █▄▄ ██▄ █ ▀█  █    ▀▀█ █▄█ █ █▄`

const bannerCompact = "T A L E N T Q U I Z"

// renderBanner returns the title banner, falling back to spaced letters on
// short or narrow terminals.
func renderBanner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(width).
		Align(lipgloss.Center)

	if compact || width < lipgloss.Width(bannerArt) {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

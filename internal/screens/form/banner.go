package form

import (
	"charm.land/lipgloss/v2"

	"github.com/pomelo-edu/pomelo/internal/ui/theme"
)

const bannerArt = `
 ██████╗  ██████╗ ███╗   ███╗███████╗██╗      ██████╗
 ██╔══██╗██╔═══██╗████╗ ████║██╔════╝██║     ██╔═══██╗
 ██████╔╝██║   ██║██╔████╔██║█████╗  ██║     ██║   ██║
 ██╔═══╝ ██║   ██║██║╚██╔╝██║██╔══╝  ██║     ██║   ██║
 ██║     ╚██████╔╝██║ ╚═╝ ██║███████╗███████╗╚██████╔╝
 ╚═╝      ╚═════╝ ╚═╝     ╚═╝╚══════╝╚══════╝ ╚═════╝`

const bannerCompact = "P O M E L O  🍊"

// renderBanner returns the banner followed by the session quote. The compact
// banner is used on short or narrow terminals.
func renderBanner(width, height int, quote string) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := bannerArt
	if width < 60 || height < 40 {
		art = bannerCompact
	}

	q := theme.Hint.Render("« " + quote + " »")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(art)) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, q)
}

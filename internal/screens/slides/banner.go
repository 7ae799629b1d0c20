package slides

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

const bannerArt = `╦  ╔═╗╔═╗╦═╗╔╗╔╔═╗╔═╗╔╦╗╦ ╦
║  ║╣ ╠═╣╠╦╝║║║╠═╝╠═╣ ║ ╠═╣
╩═╝╚═╝╩ ╩╩╚═╝╚╝╩  ╩ ╩ ╩ ╩ ╩`

const bannerCompact = "L E A R N P A T H"

// RenderBanner returns the LEARNPATH banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 32 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 32 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

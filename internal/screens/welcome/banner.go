package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wonder/internal/ui/theme"
)

const bannerArt = `
 ██╗    ██╗ ██████╗ ███╗   ██╗██████╗ ███████╗██████╗
 ██║    ██║██╔═══██╗████╗  ██║██╔══██╗██╔════╝██╔══██╗
 ██║ █╗ ██║██║   ██║██╔██╗ ██║██║  ██║█████╗  ██████╔╝
 ██║███╗██║██║   ██║██║╚██╗██║██║  ██║██╔══╝  ██╔══██╗
 ╚███╔███╔╝╚██████╔╝██║ ╚████║██████╔╝███████╗██║  ██║
  ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═══╝╚═════╝ ╚══════╝╚═╝  ╚═╝`

const bannerCompact = "W O N D E R"

// RenderBanner returns the banner in the primary color, or a compact
// fallback below 58 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 58 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

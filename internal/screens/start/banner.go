package start

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/signalquiz/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗ ██████╗ ███╗   ██╗ █████╗ ██╗
 ██╔════╝██║██╔════╝ ████╗  ██║██╔══██╗██║
 ███████╗██║██║  ███╗██╔██╗ ██║███████║██║
 ╚════██║██║██║   ██║██║╚██╗██║██╔══██║██║
 ███████║██║╚██████╔╝██║ ╚████║██║  ██║███████╗
 ╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═══╝╚═╝  ╚═╝╚══════╝`

const bannerCompact = "S I G N A L"

// renderBanner falls back to spaced letters below 50 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

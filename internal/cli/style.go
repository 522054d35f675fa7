package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	successColor = lipgloss.Color("#10B981") // Green
	errorColor   = lipgloss.Color("#EF4444") // Red
)

// banners renders the VALID/INVALID headers for one output stream.
// Color is only emitted when the stream is a terminal.
type banners struct {
	r     *lipgloss.Renderer
	plain bool
}

func newBanners(w io.Writer, noColor bool) *banners {
	return &banners{r: lipgloss.NewRenderer(w), plain: noColor}
}

func (b *banners) valid() string {
	return b.render("✅ VALID", successColor)
}

func (b *banners) invalid() string {
	return b.render("❌ INVALID", errorColor)
}

func (b *banners) render(s string, c lipgloss.Color) string {
	if b.plain {
		return s
	}
	return b.r.NewStyle().Bold(true).Foreground(c).Render(s)
}

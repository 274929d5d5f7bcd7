package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art centred for the current terminal.
// The art is a fixed-width block: it is padded as a whole, never
// rescaled or rewrapped, so narrow terminals simply show it flush left.
// To change the banner just replace banner.txt.
func RenderBanner() string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")

	artWidth := 0
	for _, l := range lines {
		if len(l) > artWidth {
			artWidth = len(l)
		}
	}
	if artWidth == 0 {
		return ""
	}

	indent := ""
	if w := termWidth(); w > artWidth {
		indent = strings.Repeat(" ", (w-artWidth)/2)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(indent)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// termWidth returns the terminal column count, or 80 when stdout is not
// a terminal.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}

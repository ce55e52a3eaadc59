package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  _____                       _ _____      ",
	" |  ___|   _ _ __  _ __   ___| |  ___|   _ ",
	" | |_ | | | | '_ \\| '_ \\ / _ \\ | |_ | | | |",
	" |  _|| |_| | | | | | | |  __/ |  _|| |_| |",
	" |_|   \\__,_|_| |_|_| |_|\\___|_|_|   \\__, |",
	"                                     |___/ ",
}

// Warm gradient, one stop per line.
var bannerColors = []string{"#fbbf24", "#f59e0b", "#f97316", "#ef4444", "#ec4899", "#d946ef"}

// PrintBanner writes the FunnelFy ASCII banner and version to w.
// Colors degrade to whatever profile the output supports.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(p.Color(bannerColors[i])))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  funnel editor core v"+v).Faint())
	}
	fmt.Fprintln(w)
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the goap banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _  ___   __ _ _ __ ", "#818cf8"},
		{"  / _` |/ _ \\ / _` | '_ \\", "#a78bfa"},
		{" | (_| | (_) | (_| | |_) |", "#c084fc"},
		{"  \\__, |\\___/ \\__,_| .__/", "#e879f9"},
		{"  |___/            |_|   ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}

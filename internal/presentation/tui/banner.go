package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner of the server commands.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"                         _        _               _   ", "#818cf8"},
		{"  _ __ ___   __ _ _ __ | | _____| |__   ___  ___| | __", "#a78bfa"},
		{" | '_ ` _ \\ / _` | '__|| |/ / __| '_ \\ / _ \\/ __| |/ /", "#c084fc"},
		{" | | | | | | (_| | |   |   < (__| | | |  __/ (__|   < ", "#e879f9"},
		{" |_| |_| |_|\\__,_|_|   |_|\\_\\___|_| |_|\\___|\\___|_|\\_\\", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

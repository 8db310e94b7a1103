package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the flowdesk ASCII art banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   __ _                 _           _    ", "#818cf8"},
		{"  / _| | _____      __ | | ___  ___| | __", "#a78bfa"},
		{" | |_| |/ _ \\ \\ /\\ / / | |/ _ \\/ __| |/ /", "#c084fc"},
		{" |  _| | (_) \\ V  V / _| |  __/\\__ \\   < ", "#e879f9"},
		{" |_| |_|\\___/ \\_/\\_/ \\__,_\\___||___/_|\\_\\", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}

// Success styles msg as a passed check.
func Success(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✔ " + msg).Foreground(p.Color("#22c55e")).String()
}

// Failure styles msg as a failed check.
func Failure(msg string) string {
	p := termenv.ColorProfile()
	return termenv.String("✘ " + msg).Foreground(p.Color("#ef4444")).Bold().String()
}

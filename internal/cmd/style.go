package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// colorEnabled mirrors common CLI convention: color only when stdout is
// a real terminal and the user hasn't opted out via NO_COLOR
// (https://no-color.org), checked once at startup.
var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("NO_COLOR") == ""

var (
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// severityStyle renders s in a color keyed to its meaning, or returns
// it unstyled when output isn't going to an interactive terminal.
func severityStyle(s string) lipgloss.Style {
	switch s {
	case "CRITICAL", "high", "HIGH", "error":
		return styleError
	case "MEDIUM", "medium", "warning":
		return styleWarn
	case "low", "ok", "connected":
		return styleOK
	default:
		return styleMuted
	}
}

// render applies style to text only when colorEnabled; callers always
// call this rather than style.Render directly so --format text piped
// to a file or CI log never carries ANSI escapes.
func render(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}

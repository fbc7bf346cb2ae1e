package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorMuted   = lipgloss.Color("#9CA3AF") // Gray
	colorDim     = lipgloss.Color("#6B7280") // Darker gray
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// styled reports whether stdout is a terminal worth colouring.
func styled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, s string) string {
	if !styled() {
		return s
	}
	return style.Render(s)
}

func title(s string) string   { return render(titleStyle, s) }
func success(s string) string { return render(successStyle, s) }
func muted(s string) string   { return render(mutedStyle, s) }
func dim(s string) string     { return render(dimStyle, s) }

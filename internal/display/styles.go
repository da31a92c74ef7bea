// Package display provides terminal styling for vizmo's human-facing output.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors
var (
	Success = lipgloss.Color("#8BC34A") // Lime Green
	Warning = lipgloss.Color("#FFC107") // Yellow
	Danger  = lipgloss.Color("#e53935") // Red
	Info    = lipgloss.Color("#2196F3") // Blue
	Muted   = lipgloss.Color("#808080")
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	KeyStyle     = lipgloss.NewStyle().Foreground(Muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	WarnStyle    = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Danger)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
)

// KV renders an aligned key/value block, keys muted, in insertion order.
func KV(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		key := fmt.Sprintf("%-*s", width, p[0])
		b.WriteString("  " + KeyStyle.Render(key) + "  " + p[1] + "\n")
	}
	return b.String()
}

// Bullets renders an indented bullet list with the given style.
func Bullets(style lipgloss.Style, items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("  " + style.Render("• "+item) + "\n")
	}
	return b.String()
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	usage := []string{
		"  1. Choose an expert from the list",
		"  2. Type your question in the box below it",
		"  3. Press Ctrl+S to get the expert's answer",
		"",
		"  Each expert only answers questions in their field.",
	}

	usageBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(usage, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, usageBox))
	b.WriteString("\n\n")

	// Keyboard shortcuts
	shortcuts := []string{
		"  Tab            Switch between experts and question",
		"  j/k, Up/Down   Choose expert / scroll answer",
		"  Ctrl+S         Ask",
		"  n              New question (from answer)",
		"  F1             Help",
		"  F2             Settings",
		"  Esc            Go back / Quit",
	}

	shortcutsTitle := styleSubtitle.Render("Keyboard Shortcuts")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsTitle))
	b.WriteString("\n\n")

	shortcutsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(shortcuts, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

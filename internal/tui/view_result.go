package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/advisor/internal/persona"
)

func (a *App) renderResult() string {
	var b strings.Builder
	res := a.state.result
	boxWidth := min(70, a.width-4)

	// Show what was asked
	asked := styleSubtitle.Render("> " + truncate(strings.Join(strings.Fields(a.state.question), " "), 60))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, asked))
	b.WriteString("\n")

	if res != nil {
		who := persona.DisplayName(res.Persona)
		if res.Model != "" {
			who = fmt.Sprintf("%s via %s", who, res.Model)
		}
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render(who)))
		b.WriteString("\n\n")
	}

	border := colorPrimary
	if res != nil && !res.OK() {
		border = colorError
	}
	resultBox := styleBox.Copy().
		Width(boxWidth).
		BorderForeground(border).
		Render(a.state.viewport.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n\n")

	// Status bar
	var parts []string
	if res != nil && res.OK() && res.Usage.TotalTokens > 0 {
		parts = append(parts, fmt.Sprintf("%d tokens", res.Usage.TotalTokens))
	}
	parts = append(parts, fmt.Sprintf("%.1fs", a.state.elapsed.Seconds()))
	if pct := a.state.viewport.ScrollPercent(); a.state.viewport.TotalLineCount() > a.state.viewport.Height {
		parts = append(parts, fmt.Sprintf("%.0f%%", pct*100))
	}
	parts = append(parts, "[j/k] Scroll  [n] New question  [Esc] Back")
	status := styleStatusBar.Render(strings.Join(parts, "  "))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

// resultContent is what the viewport shows: the rendered reply, or the failure.
func (a *App) resultContent() string {
	res := a.state.result
	if res == nil {
		return ""
	}
	if !res.OK() {
		return a.renderFailure()
	}

	out, err := a.render(res.Text, a.state.viewport.Width)
	if err != nil || strings.TrimSpace(out) == "" {
		return wrapText(res.Text, a.state.viewport.Width)
	}
	return strings.TrimRight(out, "\n")
}

// wrapText wraps text to fit within maxWidth, preserving words and line breaks
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 60
	}

	var result strings.Builder
	for n, line := range strings.Split(text, "\n") {
		if n > 0 {
			result.WriteString("\n")
		}
		lineLen := 0
		for i, word := range strings.Fields(line) {
			if i > 0 {
				if lineLen+1+len(word) > maxWidth {
					result.WriteString("\n")
					lineLen = 0
				} else {
					result.WriteString(" ")
					lineLen++
				}
			}
			result.WriteString(word)
			lineLen += len(word)
		}
	}

	return result.String()
}

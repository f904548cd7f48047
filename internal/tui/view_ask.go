package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
  ▄▀█ █▀▄ █░█ █ █▀ █▀█ █▀█
  █▀█ █▄▀ ▀▄▀ █ ▄█ █▄█ █▀▄
`

// Loading messages shown while waiting for the model
var loadingMessages = []string{
	"Thinking...",
	"Consulting notes...",
	"Pondering...",
	"Gathering wisdom...",
	"Choosing words...",
}

func (a *App) renderAsk() string {
	var b strings.Builder
	boxWidth := min(70, a.width-4)

	// Header
	header := styleLogo.Render(logo)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header))
	b.WriteString("\n")
	subtitle := styleSubtitle.Render("Ask an expert")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, subtitle))
	b.WriteString("\n\n")

	// Persona selector
	title := styleTitle.Render("Choose an expert:")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")

	var personaLines []string
	for i, p := range a.state.personas {
		cursor := "  "
		if i == a.state.selected && a.state.focus == focusPersona {
			cursor = "> "
		}
		if i == a.state.selected {
			personaLines = append(personaLines, lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				Render(fmt.Sprintf("%s(x) %-22s %s", cursor, p.Name, p.Description)))
		} else {
			personaLines = append(personaLines, lipgloss.NewStyle().
				Foreground(colorMuted).
				Render(fmt.Sprintf("%s( ) %-22s %s", cursor, p.Name, p.Description)))
		}
	}

	personaBorder := colorMuted
	if a.state.focus == focusPersona {
		personaBorder = colorSecondary
	}
	personaBox := styleBox.Copy().
		Width(boxWidth).
		BorderForeground(personaBorder).
		Render(strings.Join(personaLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, personaBox))
	b.WriteString("\n\n")

	// Question
	inputBorder := colorMuted
	if a.state.focus == focusInput {
		inputBorder = colorSecondary
	}
	inputBox := styleBox.Copy().
		Width(boxWidth).
		BorderForeground(inputBorder).
		Render(a.state.input.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	// Spinner or notices
	switch {
	case a.state.asking:
		elapsed := time.Since(a.state.askStart).Seconds()
		msgIdx := int(elapsed/2) % len(loadingMessages)
		line := styleSpinner.Render(fmt.Sprintf("%s %s %s",
			a.state.spinner.View(), a.state.selectedPersona().Name, loadingMessages[msgIdx]))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n\n")
	case a.state.errorMsg != "":
		errBox := styleBox.Copy().
			Width(boxWidth).
			BorderForeground(colorError).
			Render(styleError.Render(a.state.errorMsg))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
		b.WriteString("\n\n")
	case a.state.warning != "":
		warn := styleWarning.Render("! " + a.state.warning)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, warn))
		b.WriteString("\n\n")
	}

	// Status bar
	status := "[Tab] Switch  [Ctrl+S] Ask  [F1] Help  [F2] Settings  [Esc] Quit"
	if a.state.focus == focusPersona {
		status = "[j/k] Choose  [Enter/Tab] Write question  [Ctrl+S] Ask  [Esc] Quit"
	}
	if a.state.asking {
		status = fmt.Sprintf("%.1fs  [Ctrl+C] Quit", time.Since(a.state.askStart).Seconds())
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status)))

	return a.centerVertically(b.String())
}

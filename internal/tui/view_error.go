package tui

import (
	"strings"
)

// renderFailure shows why the request failed, with hints based on the error text.
func (a *App) renderFailure() string {
	var b strings.Builder

	errMsg := "Unknown error"
	if a.state.result != nil && a.state.result.Err != nil {
		errMsg = a.state.result.Display()
	}

	b.WriteString(styleError.Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(wrapText(errMsg, a.state.viewport.Width))

	if suggestions := suggestionsFor(errMsg); len(suggestions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styleSubtitle.Render("Suggestions:\n" + strings.Join(suggestions, "\n")))
	}

	b.WriteString("\n\n")
	b.WriteString(styleSubtitle.Render("Press [n] to edit your question and ask again."))

	return b.String()
}

func suggestionsFor(errMsg string) []string {
	var suggestions []string
	errLower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		suggestions = append(suggestions, "Check your API key in ~/.config/advisor/secrets.yaml")
		suggestions = append(suggestions, "Or press [F2] to update it in settings")
	case strings.Contains(errLower, "connection") || strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout"):
		suggestions = append(suggestions, "Check your internet connection")
		suggestions = append(suggestions, "Or check base_url in ~/.config/advisor/config.yaml")
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429"):
		suggestions = append(suggestions, "You've hit the API rate limit")
		suggestions = append(suggestions, "Wait a moment and try again")
	case strings.Contains(errLower, "model"):
		suggestions = append(suggestions, "Check the model name in settings")
	}

	return suggestions
}

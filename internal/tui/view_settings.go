package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/advisor/internal/config"
	"github.com/sant0-9/advisor/internal/persona"
)

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

// maskKey keeps the first and last four characters of long keys.
func maskKey(k string) string {
	if k == "" {
		return "Not set"
	}
	if len(k) > 8 {
		return k[:4] + "****" + k[len(k)-4:]
	}
	return "****"
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder
	cfg := a.state.config

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(cfg.Provider)
	providerName := cfg.Provider
	if provider != nil {
		providerName = provider.Name
	}

	keySource := "none"
	if src, ok := a.creds.(interface {
		Source(ctx context.Context) string
	}); ok {
		if s := src.Source(context.Background()); s != "" {
			keySource = s
		}
	}

	configLines := []string{
		fmt.Sprintf("  Provider:     %s", providerName),
		fmt.Sprintf("  Model:        %s", cfg.EffectiveModel()),
		fmt.Sprintf("  Temperature:  %.1f", cfg.EffectiveTemperature()),
		fmt.Sprintf("  Default:      %s", persona.DisplayName(cfg.Persona)),
		fmt.Sprintf("  Saved key:    %s", maskKey(cfg.APIKey)),
		fmt.Sprintf("  Key source:   %s", keySource),
	}

	configBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	// Actions
	actions := []string{
		"  [k] Update API key",
		fmt.Sprintf("  [d] Make %s the default expert", a.state.selectedPersona().Name),
		"  [t] Test connection",
	}
	actionsBox := styleBox.Copy().
		Width(56).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	if a.state.settingsNotice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(a.state.settingsNotice)))
		b.WriteString("\n\n")
	}

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render(fmt.Sprintf("Used when %s is not set", a.state.config.APIKeyEnv()))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	if p := config.GetProvider(a.state.config.Provider); p != nil && p.SignupURL != "" {
		link := styleSubtitle.Render(fmt.Sprintf("Get one at: %s", p.SignupURL))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, link))
		b.WriteString("\n\n")
	}

	inputBox := styleBox.Copy().
		Width(56).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

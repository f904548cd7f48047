package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/advisor/internal/advisor"
	"github.com/sant0-9/advisor/internal/config"
	"github.com/sant0-9/advisor/internal/llm"
)

type view int

const (
	viewAsk view = iota
	viewResult
	viewSettings
	viewHelp
)

// Asker sends a question to the model under a persona.
type Asker interface {
	Ask(ctx context.Context, text, personaID, credential string) advisor.Result
}

// CredentialSource resolves the API key before every request.
type CredentialSource interface {
	Resolve(ctx context.Context) (string, bool)
}

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool

	asker  Asker
	creds  CredentialSource
	render func(markdown string, width int) (string, error)
	ping   func(ctx context.Context, cfg *config.Config, apiKey string) error
}

func NewApp(cfg *config.Config, asker Asker, creds CredentialSource) *App {
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	return &App{
		view:  viewAsk,
		state: newState(cfg),
		asker: asker,
		creds: creds,
		render: func(markdown string, width int) (string, error) {
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return "", err
			}
			return r.Render(markdown)
		},
		ping: func(ctx context.Context, cfg *config.Config, apiKey string) error {
			p, err := llm.NewProvider(cfg, apiKey)
			if err != nil {
				return err
			}
			return p.Ping(ctx)
		},
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
		a.state.input.Focus(),
		textarea.Blink,
	)
}

type answerMsg struct{ result advisor.Result }
type configSavedMsg struct{}
type configSaveErrorMsg struct{ error }
type pingResultMsg struct{ err error }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case answerMsg:
		a.handleAnswer(msg.result)
		return a, nil

	case spinner.TickMsg:
		if !a.state.asking {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd

	case configSavedMsg:
		a.state.settingsNotice = "Saved to config.yaml"
		return a, nil

	case configSaveErrorMsg:
		a.state.settingsNotice = "Could not save config: " + msg.Error()
		slog.Error("save config", "error", msg.error)
		return a, nil

	case pingResultMsg:
		if msg.err != nil {
			a.state.settingsNotice = "Connection failed: " + msg.err.Error()
		} else {
			a.state.settingsNotice = "Connection OK"
		}
		return a, nil
	}

	// Forward to the focused widget
	var cmd tea.Cmd
	switch {
	case a.view == viewAsk && a.state.focus == focusInput && !a.state.asking:
		a.state.input, cmd = a.state.input.Update(msg)
	case a.view == viewResult:
		a.state.viewport, cmd = a.state.viewport.Update(msg)
	case a.view == viewSettings && a.state.settingsMode == "apikey":
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
	}

	return a, cmd
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	boxWidth := min(70, width-4)
	if boxWidth < 24 {
		boxWidth = 24
	}
	a.state.input.SetWidth(boxWidth - 4)
	a.state.viewport.Width = boxWidth - 4
	a.state.viewport.Height = max(5, height-12)
	if a.state.result != nil {
		a.state.viewport.SetContent(a.resultContent())
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		if msg.String() == "ctrl+c" {
			a.quitting = true
			return tea.Quit, true
		}
		switch a.view {
		case viewSettings:
			if a.state.settingsMode != "" {
				a.state.settingsMode = ""
				a.state.apiKeyInput.Reset()
				a.state.apiKeyInput.Blur()
				return nil, true
			}
			return a.backToAsk(), true
		case viewHelp, viewResult:
			return a.backToAsk(), true
		}
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewAsk:
		return a.handleAskKey(msg)
	case viewResult:
		return a.handleResultKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	}

	return nil, false
}

func (a *App) handleAskKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if a.state.asking {
		return nil, true
	}

	switch {
	case key.Matches(msg, keys.Submit):
		return a.submit(), true
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil, true
	case key.Matches(msg, keys.Settings):
		a.view = viewSettings
		return nil, true
	case key.Matches(msg, keys.Tab):
		if a.state.focus == focusInput {
			a.state.focus = focusPersona
			a.state.input.Blur()
			return nil, true
		}
		a.state.focus = focusInput
		return a.state.input.Focus(), true
	}

	if a.state.focus != focusPersona {
		return nil, false
	}

	switch {
	case key.Matches(msg, keys.Up):
		if a.state.selected > 0 {
			a.state.selected--
		}
	case key.Matches(msg, keys.Down):
		if a.state.selected < len(a.state.personas)-1 {
			a.state.selected++
		}
	case key.Matches(msg, keys.Enter):
		a.state.focus = focusInput
		return a.state.input.Focus(), true
	case msg.String() == "?":
		a.view = viewHelp
	case msg.String() == "s":
		a.view = viewSettings
	}
	return nil, true
}

func (a *App) handleResultKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.New):
		a.state.input.Reset()
		return a.backToAsk(), true
	case key.Matches(msg, keys.Help):
		a.view = viewHelp
		return nil, true
	case key.Matches(msg, keys.Settings):
		a.view = viewSettings
		return nil, true
	}
	return nil, false
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if a.state.settingsMode == "apikey" {
		if key.Matches(msg, keys.Enter) {
			a.state.config.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
			a.state.apiKeyInput.Reset()
			a.state.apiKeyInput.Blur()
			a.state.settingsMode = ""
			a.state.errorMsg = ""
			return a.saveConfig(), true
		}
		return nil, false
	}

	switch msg.String() {
	case "k":
		a.state.settingsMode = "apikey"
		a.state.settingsNotice = ""
		return a.state.apiKeyInput.Focus(), true
	case "d":
		a.state.config.Persona = a.state.selectedPersona().ID
		return a.saveConfig(), true
	case "t":
		return a.testConnection(), true
	}
	return nil, true
}

func (a *App) backToAsk() tea.Cmd {
	a.view = viewAsk
	a.state.focus = focusInput
	return a.state.input.Focus()
}

// submit validates the form locally and only then dispatches the question.
func (a *App) submit() tea.Cmd {
	a.state.warning = ""
	a.state.errorMsg = ""

	text := a.state.input.Value()
	if strings.TrimSpace(text) == "" {
		a.state.warning = advisor.EmptyInputWarning
		return nil
	}

	credential, ok := a.creds.Resolve(context.Background())
	if !ok {
		a.state.errorMsg = advisor.MissingCredentialHelp(a.state.config)
		return nil
	}

	p := a.state.selectedPersona()
	a.state.asking = true
	a.state.askStart = time.Now()
	a.state.question = text
	slog.Debug("asking", "persona", p.ID, "chars", len(text))

	return tea.Batch(a.state.spinner.Tick, a.ask(text, p.ID, credential))
}

func (a *App) ask(text, personaID, credential string) tea.Cmd {
	return func() tea.Msg {
		return answerMsg{result: a.asker.Ask(context.Background(), text, personaID, credential)}
	}
}

func (a *App) handleAnswer(res advisor.Result) {
	a.state.asking = false
	a.state.elapsed = time.Since(a.state.askStart)
	a.state.result = &res
	if !res.OK() {
		slog.Warn("ask failed", "persona", res.Persona, "error", res.Err)
	}

	a.state.input.Blur()
	a.view = viewResult
	a.state.viewport.SetContent(a.resultContent())
	a.state.viewport.GotoTop()
}

func (a *App) saveConfig() tea.Cmd {
	cfg := *a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return configSaveErrorMsg{err}
		}
		return configSavedMsg{}
	}
}

func (a *App) testConnection() tea.Cmd {
	apiKey, ok := a.creds.Resolve(context.Background())
	if !ok {
		a.state.settingsNotice = advisor.ErrMissingCredential.Error()
		return nil
	}
	a.state.settingsNotice = "Testing connection..."
	cfg := *a.state.config
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return pingResultMsg{err: a.ping(ctx, &cfg, apiKey)}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewResult:
		return a.renderResult()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderAsk()
	}
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}

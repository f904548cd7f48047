package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sant0-9/advisor/internal/advisor"
	"github.com/sant0-9/advisor/internal/config"
	"github.com/sant0-9/advisor/internal/persona"
)

type focus int

const (
	focusPersona focus = iota
	focusInput
)

type state struct {
	// Config
	config *config.Config

	// Persona selector
	personas []persona.Persona
	selected int
	focus    focus

	// Input
	input textarea.Model

	// Inline notices on the ask view
	warning  string
	errorMsg string

	// Asking
	asking   bool
	askStart time.Time
	spinner  spinner.Model

	// Result
	question string
	result   *advisor.Result
	elapsed  time.Duration
	viewport viewport.Model

	// Settings
	settingsMode   string
	settingsNotice string
	apiKeyInput    textinput.Model
}

func newState(cfg *config.Config) *state {
	input := textarea.New()
	input.Placeholder = "Type your question or what you need advice on..."
	input.CharLimit = 4000
	input.ShowLineNumbers = false
	input.SetWidth(66)
	input.SetHeight(5)

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner

	personas := persona.All()

	return &state{
		config:      cfg,
		personas:    personas,
		selected:    persona.Index(cfg.Persona),
		focus:       focusInput,
		input:       input,
		apiKeyInput: apiKey,
		spinner:     sp,
		viewport:    viewport.New(66, 12),
	}
}

func (s *state) selectedPersona() persona.Persona {
	return s.personas[s.selected]
}

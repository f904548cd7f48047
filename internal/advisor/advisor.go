// Package advisor sends a user's question to the model under the selected persona.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sant0-9/advisor/internal/config"
	"github.com/sant0-9/advisor/internal/llm"
	"github.com/sant0-9/advisor/internal/persona"
)

var (
	ErrEmptyInput        = errors.New("input is empty")
	ErrMissingCredential = errors.New("API key is not configured")
)

// ProviderFactory creates a provider authenticated with apiKey.
type ProviderFactory func(apiKey string) (llm.Provider, error)

// Result is either the model's reply or the reason the request failed.
type Result struct {
	Text    string
	Persona string
	Model   string
	Usage   llm.Usage
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Display returns the reply, or an error line for the user.
func (r Result) Display() string {
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Text
}

func failure(personaID string, err error) Result {
	return Result{Persona: personaID, Err: err}
}

// Dispatcher is safe for concurrent use: it holds no per-request state.
type Dispatcher struct {
	model       string
	temperature float64
	newProvider ProviderFactory
}

func New(model string, temperature float64, factory ProviderFactory) *Dispatcher {
	if temperature <= 0 {
		temperature = config.DefaultTemperature
	}
	return &Dispatcher{
		model:       model,
		temperature: temperature,
		newProvider: factory,
	}
}

// FromConfig creates a dispatcher calling the provider described by cfg.
func FromConfig(cfg *config.Config) *Dispatcher {
	return New(cfg.EffectiveModel(), cfg.EffectiveTemperature(), func(apiKey string) (llm.Provider, error) {
		return llm.NewProvider(cfg, apiKey)
	})
}

func (d *Dispatcher) Model() string {
	return d.model
}

func (d *Dispatcher) Temperature() float64 {
	return d.temperature
}

// Ask sends [system prompt for personaID, text] to the model exactly once.
// Failures are returned inside the Result, never as a panic.
func (d *Dispatcher) Ask(ctx context.Context, text, personaID, credential string) (res Result) {
	if strings.TrimSpace(text) == "" {
		return failure(personaID, ErrEmptyInput)
	}
	if credential == "" {
		return failure(personaID, ErrMissingCredential)
	}

	defer func() {
		if r := recover(); r != nil {
			res = failure(personaID, fmt.Errorf("provider panicked: %v", r))
		}
	}()

	provider, err := d.newProvider(credential)
	if err != nil {
		return failure(personaID, err)
	}

	req := llm.NewRequest(d.model, d.temperature, persona.Select(personaID), text)
	resp, err := provider.Complete(ctx, req)
	if err != nil {
		return failure(personaID, err)
	}
	if resp == nil {
		return failure(personaID, fmt.Errorf("no response from %s", provider.Name()))
	}

	return Result{
		Text:    resp.Content,
		Persona: personaID,
		Model:   resp.Model,
		Usage:   resp.Usage,
	}
}

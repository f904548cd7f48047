package main

import (
	"fmt"
	"strings"

	"github.com/sant0-9/advisor/internal/config"
)

// Options is the root command. Global flags override the config file.
type Options struct {
	Config      string  `short:"f" long:"config" description:"config YAML path (default ~/.config/advisor/config.yaml)"`
	Provider    string  `long:"provider" description:"LLM provider: openai|groq|openrouter|custom"`
	Model       string  `long:"model" description:"model name"`
	Temperature float64 `long:"temperature" description:"sampling temperature (default 0.6)"`
	Debug       bool    `long:"debug" description:"enable debug logging"`
	Version     bool    `short:"v" long:"version" description:"print version and exit"`

	TUI   *TUICmd   `command:"tui"   description:"Interactive terminal UI (default)"`
	Ask   *AskCmd   `command:"ask"   description:"Ask one question and print the answer"`
	Serve *ServeCmd `command:"serve" description:"Start the web UI and JSON API"`
}

// Init allocates the sub-commands so flags.Parse can populate them.
func (o *Options) Init() {
	o.TUI = &TUICmd{root: o}
	o.Ask = &AskCmd{root: o}
	o.Serve = &ServeCmd{root: o}
}

// load reads the config file and applies flag overrides.
func (o *Options) load() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(o.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if o.Provider != "" {
		p := strings.ToLower(o.Provider)
		if config.GetProvider(p) == nil {
			return nil, fmt.Errorf("unknown provider: %s", o.Provider)
		}
		if p != cfg.Provider {
			cfg.Model = ""
		}
		cfg.Provider = p
	}
	if o.Model != "" {
		cfg.Model = o.Model
	}
	if o.Temperature != 0 {
		if o.Temperature < 0 || o.Temperature > 2 {
			return nil, fmt.Errorf("temperature must be between 0 and 2, got %g", o.Temperature)
		}
		cfg.Temperature = o.Temperature
	}
	return cfg, nil
}

package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/advisor/internal/advisor"
	"github.com/sant0-9/advisor/internal/config"
	"github.com/sant0-9/advisor/internal/credential"
	"github.com/sant0-9/advisor/internal/logging"
	"github.com/sant0-9/advisor/internal/tui"
)

// TUICmd runs the interactive terminal UI.
type TUICmd struct {
	root *Options
}

func (c *TUICmd) Execute(_ []string) error {
	cfg, err := c.root.load()
	if err != nil {
		return err
	}

	var logFile string
	if dir, err := config.ConfigDir(); err == nil {
		logFile = filepath.Join(dir, "advisor.log")
	}
	closer, err := logging.Setup(logging.ModeTUI, c.root.Debug, logFile)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closer.Close()

	app := tui.NewApp(cfg, advisor.FromConfig(cfg), credential.FromConfig(cfg))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

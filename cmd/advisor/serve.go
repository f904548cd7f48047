package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sant0-9/advisor/internal/advisor"
	"github.com/sant0-9/advisor/internal/credential"
	"github.com/sant0-9/advisor/internal/logging"
	"github.com/sant0-9/advisor/internal/web"
)

// ServeCmd starts the HTTP server.
// Usage: advisor serve --addr :8080
type ServeCmd struct {
	Addr string `short:"a" long:"addr" description:"listen address" default:":8080"`

	root *Options
}

func (s *ServeCmd) Execute(_ []string) error {
	if _, err := logging.Setup(logging.ModeServe, s.root.Debug, ""); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	cfg, err := s.root.load()
	if err != nil {
		return err
	}

	creds := credential.FromConfig(cfg)
	if _, ok := creds.Resolve(context.Background()); !ok {
		slog.Warn("no API key configured; requests will be refused until one is set", "env", cfg.APIKeyEnv())
	}

	srv, err := web.New(cfg, advisor.FromConfig(cfg), creds)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("advisor", "version", version, "provider", cfg.Provider, "model", cfg.EffectiveModel())
	return srv.ListenAndServe(ctx, s.Addr)
}

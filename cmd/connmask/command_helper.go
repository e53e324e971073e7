package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/connmask/internal/infrastructure/container"
	"github.com/reglet-dev/connmask/internal/infrastructure/system"
	"github.com/spf13/cobra"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// SettingsOverride adjusts loaded settings from command flags.
type SettingsOverride func(*system.Settings)

// withContainer wraps a command handler with container initialization:
// settings loading, flag overrides and dependency injection. Configuration
// lines go to the command's stderr.
func withContainer(override SettingsOverride, handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newContainer(settingsPath(), override, cmd)
		if err != nil {
			return err
		}

		ctx := &CommandContext{
			Container: c,
			Logger:    c.Logger(),
			Context:   cmd.Context(),
		}

		return handler(ctx, cmd, args)
	}
}

func newContainer(path string, override SettingsOverride, cmd *cobra.Command) (*container.Container, error) {
	settings, err := loadSettings(path)
	if err != nil {
		return nil, err
	}
	if verbose {
		settings.Logging.Level = "debug"
	}
	if override != nil {
		override(settings)
	}

	c, err := container.New(container.Options{
		Settings: settings,
		Output:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return c, nil
}

// loadSettings reads and validates the settings file. An empty path means
// defaults.
func loadSettings(path string) (*system.Settings, error) {
	if path == "" {
		return system.DefaultSettings(), nil
	}

	loader, err := system.NewSettingsLoader()
	if err != nil {
		return nil, err
	}

	settings, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	slog.Debug("settings loaded", "file", path)
	return settings, nil
}

// Package container provides dependency injection for the application.
package container

import (
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/reglet-dev/connmask/internal/application/ports"
	"github.com/reglet-dev/connmask/internal/application/services"
	"github.com/reglet-dev/connmask/internal/infrastructure/config"
	"github.com/reglet-dev/connmask/internal/infrastructure/redaction"
	"github.com/reglet-dev/connmask/internal/infrastructure/secrets"
	"github.com/reglet-dev/connmask/internal/infrastructure/sensitivedata"
	"github.com/reglet-dev/connmask/internal/infrastructure/system"
)

// Container holds all application dependencies.
type Container struct {
	settings       *system.Settings
	pattern        *regexp.Regexp
	provider       *sensitivedata.Provider
	printer        *services.ConfigPrinter
	printUseCase   *services.PrintConfigUseCase
	propertyLoader *config.PropertiesLoader
	logger         *slog.Logger
}

// Options configure the container.
type Options struct {
	// Settings defaults to system.DefaultSettings().
	Settings *system.Settings
	// Output receives log lines. Defaults to os.Stderr.
	Output io.Writer
	// Logger replaces the logger the container would build.
	Logger *slog.Logger
}

// New creates a new dependency injection container.
func New(opts Options) (*Container, error) {
	settings := opts.Settings
	if settings == nil {
		settings = system.DefaultSettings()
	}

	pattern, err := settings.MaskPattern()
	if err != nil {
		return nil, err
	}

	provider := sensitivedata.NewProvider()

	var scrubber ports.Scrubber
	if settings.Redaction.ScrubValues {
		redactor, err := redaction.New(redaction.Config{
			Patterns:        settings.Redaction.Patterns,
			HashMode:        settings.Redaction.HashMode.Enabled,
			Salt:            settings.Redaction.HashMode.Salt,
			DisableGitleaks: settings.Redaction.DisableGitleaks,
		})
		if err != nil {
			return nil, err
		}
		scrubber = redactor
	}

	logger := opts.Logger
	if logger == nil {
		logger = newLogger(settings, opts.Output, provider, scrubber != nil)
	}

	resolver := secrets.NewResolver(&settings.Secrets, provider)
	substitutor := config.NewVariableSubstitutor(resolver)
	loader := config.NewPropertiesLoader()

	printerOpts := []services.PrinterOption{services.WithPattern(pattern)}
	if scrubber != nil {
		printerOpts = append(printerOpts, services.WithScrubber(scrubber))
	}
	printer := services.NewConfigPrinter(logger, printerOpts...)

	printUseCase := services.NewPrintConfigUseCase(
		loader,
		substitutor,
		provider,
		pattern,
		printer,
		logger,
	)

	return &Container{
		settings:       settings,
		pattern:        pattern,
		provider:       provider,
		printer:        printer,
		printUseCase:   printUseCase,
		propertyLoader: loader,
		logger:         logger,
	}, nil
}

// newLogger builds the slog logger described by settings. When value
// scrubbing is on, every tracked secret is also stripped from the raw log
// stream.
func newLogger(settings *system.Settings, out io.Writer, provider *sensitivedata.Provider, scrubStream bool) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}
	if scrubStream {
		out = sensitivedata.NewWriter(out, provider)
	}

	handlerOpts := &slog.HandlerOptions{Level: settings.LogLevel()}
	if settings.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(out, handlerOpts))
}

// PrintConfigUseCase returns the print use case.
func (c *Container) PrintConfigUseCase() *services.PrintConfigUseCase {
	return c.printUseCase
}

// ConfigPrinter returns the configured printer.
func (c *Container) ConfigPrinter() *services.ConfigPrinter {
	return c.printer
}

// MaskPattern returns the effective key pattern, nil when masking is off.
func (c *Container) MaskPattern() *regexp.Regexp {
	return c.pattern
}

// PropertiesLoader returns the connector config loader.
func (c *Container) PropertiesLoader() *config.PropertiesLoader {
	return c.propertyLoader
}

// SensitiveValues returns the secret tracker shared by the use case.
func (c *Container) SensitiveValues() *sensitivedata.Provider {
	return c.provider
}

// Settings returns the effective settings.
func (c *Container) Settings() *system.Settings {
	return c.settings
}

// Logger returns the configured logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

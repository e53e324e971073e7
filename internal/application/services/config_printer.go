package services

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/reglet-dev/connmask/internal/application/ports"
	"github.com/reglet-dev/connmask/internal/domain/configuration"
	"github.com/reglet-dev/connmask/internal/domain/values"
	"github.com/reglet-dev/connmask/internal/infrastructure/sensitivedata"
)

// ConfigPrinter logs connector configuration with credentials masked.
type ConfigPrinter struct {
	logger   *slog.Logger
	pattern  *regexp.Regexp
	scrubber ports.Scrubber
}

// PrinterOption customizes a ConfigPrinter.
type PrinterOption func(*ConfigPrinter)

// WithPattern replaces the default sensitive-key pattern.
// A nil pattern turns masking off.
func WithPattern(pattern *regexp.Regexp) PrinterOption {
	return func(p *ConfigPrinter) {
		p.pattern = pattern
	}
}

// WithScrubber runs every printed value through s after key masking.
func WithScrubber(s ports.Scrubber) PrinterOption {
	return func(p *ConfigPrinter) {
		p.scrubber = s
	}
}

// NewConfigPrinter creates a printer that masks sensitivedata.PasswordPattern
// keys unless told otherwise. A nil logger uses slog.Default().
func NewConfigPrinter(logger *slog.Logger, opts ...PrinterOption) *ConfigPrinter {
	if logger == nil {
		logger = slog.Default()
	}
	p := &ConfigPrinter{
		logger:  logger,
		pattern: sensitivedata.PasswordPattern,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// View returns the configuration exactly as Print would render it.
func (p *ConfigPrinter) View(raw *values.Properties) configuration.Configuration {
	view := sensitivedata.MaskWithPattern(p.pattern, raw)
	if p.scrubber != nil {
		view = &scrubbedConfig{Configuration: view, scrubber: p.scrubber}
	}
	return view
}

// Print logs a start-up header naming component, then one line per key in
// iteration order.
func (p *ConfigPrinter) Print(component string, raw *values.Properties) {
	p.logger.Info(fmt.Sprintf("Starting %s with configuration:", component),
		"component", component)

	configuration.Range(p.View(raw), func(key, value string) bool {
		p.logger.Info(fmt.Sprintf("   %s = %s", key, value))
		return true
	})
}

// PrintMaskedConfig logs raw for component using the default pattern.
func PrintMaskedConfig(logger *slog.Logger, component string, raw *values.Properties) {
	NewConfigPrinter(logger).Print(component, raw)
}

// scrubbedConfig applies a value scrubber on top of another view.
type scrubbedConfig struct {
	configuration.Configuration
	scrubber ports.Scrubber
}

func (s *scrubbedConfig) GetString(key string) (string, bool) {
	v, ok := s.Configuration.GetString(key)
	if !ok {
		return "", false
	}
	return s.scrubber.ScrubString(v), true
}

func (s *scrubbedConfig) String() string {
	return configuration.AsProperties(s).String()
}

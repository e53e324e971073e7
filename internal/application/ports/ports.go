// Package ports defines interfaces for infrastructure dependencies.
// The application layer depends on these abstractions, never on the
// concrete redaction or secret-tracking implementations.
package ports

import (
	"context"
	"io"

	"github.com/reglet-dev/connmask/internal/application/dto"
	"github.com/reglet-dev/connmask/internal/domain/values"
)

// SensitiveValueProvider keeps track of secret values that must never be
// written out.
type SensitiveValueProvider interface {
	// Track registers a secret value.
	Track(value string)
	// AllValues returns every tracked secret value.
	AllValues() []string
}

// SecretResolver resolves named secrets referenced from connector
// configuration.
type SecretResolver interface {
	Resolve(name string) (string, error)
}

// Scrubber removes secret material from free-form text.
type Scrubber interface {
	ScrubString(input string) string
}

// ConfigLoader loads connector configuration files.
type ConfigLoader interface {
	// LoadAll loads every path and returns the results in argument order.
	LoadAll(ctx context.Context, paths []string) ([]*values.Properties, error)
}

// PlaceholderExpander resolves placeholders inside property values.
type PlaceholderExpander interface {
	// Substitute returns an expanded copy of props.
	Substitute(props *values.Properties) (*values.Properties, error)
}

// FormatterOptions tunes report formatting.
type FormatterOptions struct {
	Indent bool
}

// OutputFormatter writes a print summary in one report format.
type OutputFormatter interface {
	Format(resp *dto.PrintConfigResponse) error
}

// OutputFormatterFactory creates formatters by name.
type OutputFormatterFactory interface {
	Create(format string, writer io.Writer, options FormatterOptions) (OutputFormatter, error)
	SupportedFormats() []string
}

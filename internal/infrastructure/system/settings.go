// Package system loads the tool's own settings file (~/.connmask.yaml),
// which is separate from the connector configuration being printed.
package system

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/reglet-dev/connmask/internal/application/errors"
	"github.com/reglet-dev/connmask/internal/infrastructure/sensitivedata"
)

//go:embed schema/settings.schema.json
var settingsSchema []byte

// Settings represents the settings file.
type Settings struct {
	Masking   MaskingConfig   `yaml:"masking"`
	Redaction RedactionConfig `yaml:"redaction"`
	Secrets   SecretsConfig   `yaml:"secrets"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MaskingConfig controls which keys are masked.
type MaskingConfig struct {
	// Pattern overrides the built-in sensitive-key pattern. Matched against
	// the whole key, case-insensitively.
	Pattern string `yaml:"pattern"`
	// Disabled prints values unmasked.
	Disabled bool `yaml:"disabled"`
}

// RedactionConfig configures scrubbing of secrets embedded in values.
type RedactionConfig struct {
	HashMode        HashModeConfig `yaml:"hash_mode"`
	Patterns        []string       `yaml:"patterns"`
	ScrubValues     bool           `yaml:"scrub_values"`
	DisableGitleaks bool           `yaml:"disable_gitleaks"`
}

// HashModeConfig controls hash-based redaction.
type HashModeConfig struct {
	Salt    string `yaml:"salt"`
	Enabled bool   `yaml:"enabled"`
}

// SecretsConfig configures sources for {{ secret "name" }} placeholders.
type SecretsConfig struct {
	// Local defines static secrets for development (name -> value)
	Local map[string]string `yaml:"local"`

	// Env defines environment variable mappings (secret_name -> env_var_name)
	Env map[string]string `yaml:"env"`

	// Files defines file path mappings (secret_name -> file_path)
	Files map[string]string `yaml:"files"`
}

// LoggingConfig selects log level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultSettings returns Settings with safe defaults for all fields.
func DefaultSettings() *Settings {
	return &Settings{
		Redaction: RedactionConfig{
			Patterns: []string{},
		},
		Secrets: SecretsConfig{
			Local: make(map[string]string),
			Env:   make(map[string]string),
			Files: make(map[string]string),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// MaskPattern returns the key pattern to mask with: nil when masking is
// disabled, the built-in pattern when none is configured.
func (s *Settings) MaskPattern() (*regexp.Regexp, error) {
	if s.Masking.Disabled {
		return nil, nil
	}
	if s.Masking.Pattern == "" {
		return sensitivedata.PasswordPattern, nil
	}
	return sensitivedata.CompilePattern(s.Masking.Pattern)
}

// LogLevel maps the configured level name to a slog.Level.
func (s *Settings) LogLevel() slog.Level {
	switch s.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SettingsLoader loads settings from disk.
type SettingsLoader struct {
	schema *jsonschema.Schema
}

// NewSettingsLoader creates a settings loader with the embedded schema.
func NewSettingsLoader() (*SettingsLoader, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("settings.schema.json", bytes.NewReader(settingsSchema)); err != nil {
		return nil, fmt.Errorf("failed to add settings schema: %w", err)
	}
	schema, err := compiler.Compile("settings.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile settings schema: %w", err)
	}
	return &SettingsLoader{schema: schema}, nil
}

// Load reads settings from path. A missing file yields DefaultSettings.
func (l *SettingsLoader) Load(path string) (*Settings, error) {
	//nolint:gosec // G304: path is the user's own settings file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, apperrors.NewConfigurationError("settings", "failed to read "+path, err)
	}
	return l.Parse(data)
}

// Parse validates data against the settings schema and decodes it on top
// of DefaultSettings.
func (l *SettingsLoader) Parse(data []byte) (*Settings, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewConfigurationError("settings", "failed to parse", err)
	}
	if doc == nil {
		return DefaultSettings(), nil
	}

	if err := l.schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, formatSchemaValidationError(verr)
		}
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, apperrors.NewConfigurationError("settings", "failed to decode", err)
	}

	if _, err := settings.MaskPattern(); err != nil {
		return nil, apperrors.NewValidationError("masking.pattern", err.Error())
	}
	return settings, nil
}

// formatSchemaValidationError flattens nested schema causes into one error.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	return apperrors.NewValidationError("settings", "schema violations", messages...)
}

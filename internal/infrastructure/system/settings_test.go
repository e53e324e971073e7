package system

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/reglet-dev/connmask/internal/application/errors"
	"github.com/reglet-dev/connmask/internal/infrastructure/sensitivedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader(t *testing.T) *SettingsLoader {
	t.Helper()
	loader, err := NewSettingsLoader()
	require.NoError(t, err)
	return loader
}

func TestSettingsLoader_Load_FileNotExists(t *testing.T) {
	cfg, err := newLoader(t).Load("/nonexistent/connmask.yaml")

	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), cfg)
}

func TestSettingsLoader_Load_ValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "connmask.yaml")
	yaml := `
masking:
  pattern: ".*(password|token)$"
redaction:
  scrub_values: true
  disable_gitleaks: true
  patterns:
    - "INT-[A-Z0-9]{8}"
  hash_mode:
    enabled: true
    salt: "test-salt"
secrets:
  local:
    db_pass: dbz
  env:
    kafka_pass: KAFKA_PASSWORD
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, ".*(password|token)$", cfg.Masking.Pattern)
	assert.True(t, cfg.Redaction.ScrubValues)
	assert.True(t, cfg.Redaction.DisableGitleaks)
	assert.Equal(t, []string{"INT-[A-Z0-9]{8}"}, cfg.Redaction.Patterns)
	assert.True(t, cfg.Redaction.HashMode.Enabled)
	assert.Equal(t, "test-salt", cfg.Redaction.HashMode.Salt)
	assert.Equal(t, "dbz", cfg.Secrets.Local["db_pass"])
	assert.Equal(t, "KAFKA_PASSWORD", cfg.Secrets.Env["kafka_pass"])
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "json", cfg.Logging.Format)

	re, err := cfg.MaskPattern()
	require.NoError(t, err)
	assert.True(t, sensitivedata.MatchesKey(re, "api.TOKEN"))
}

func TestSettingsLoader_Parse_KeepsDefaults(t *testing.T) {
	cfg, err := newLoader(t).Parse([]byte("masking:\n  disabled: true\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Masking.Disabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestSettingsLoader_Parse_Empty(t *testing.T) {
	cfg, err := newLoader(t).Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), cfg)
}

func TestSettingsLoader_Parse_UnknownKey(t *testing.T) {
	_, err := newLoader(t).Parse([]byte("masking:\n  patern: x\n"))

	require.Error(t, err)
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, strings.Contains(strings.Join(verr.Details, "\n"), "patern"))
}

func TestSettingsLoader_Parse_BadLevel(t *testing.T) {
	_, err := newLoader(t).Parse([]byte("logging:\n  level: verbose\n"))

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, strings.Join(verr.Details, "\n"), "/logging/level")
}

func TestSettingsLoader_Parse_BadPattern(t *testing.T) {
	_, err := newLoader(t).Parse([]byte("masking:\n  pattern: \"(\"\n"))

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "masking.pattern", verr.Field)
}

func TestSettingsLoader_Parse_InvalidYAML(t *testing.T) {
	_, err := newLoader(t).Parse([]byte("masking: [[["))

	var cfgErr *apperrors.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestSettings_MaskPattern(t *testing.T) {
	s := DefaultSettings()
	re, err := s.MaskPattern()
	require.NoError(t, err)
	assert.Same(t, sensitivedata.PasswordPattern, re)

	s.Masking.Disabled = true
	re, err = s.MaskPattern()
	require.NoError(t, err)
	assert.Nil(t, re)
}

func TestSettings_LogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for name, want := range tests {
		s := DefaultSettings()
		s.Logging.Level = name
		assert.Equal(t, want, s.LogLevel(), name)
	}
}

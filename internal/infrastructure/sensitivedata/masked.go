package sensitivedata

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/reglet-dev/connmask/internal/domain/configuration"
	"github.com/reglet-dev/connmask/internal/domain/values"
)

// RedactionToken replaces the value of every key matched by a mask pattern.
const RedactionToken = "********"

// PasswordPattern matches keys that hold connector credentials: keys ending
// in "password" or "sasl.jaas.config", and keys containing
// "basic.auth.user.info" or "registry.auth.client-secret".
// Matching is case-insensitive and covers the whole key.
var PasswordPattern = regexp.MustCompile(
	`(?i)^(?:.*password|.*sasl\.jaas\.config|.*basic\.auth\.user\.info.*|.*registry\.auth\.client-secret.*)$`,
)

// MaskedConfig is a Configuration that reads through to a backing
// configuration and answers RedactionToken for keys matching its pattern.
// It holds no copy of the data; every lookup consults the backing source.
type MaskedConfig struct {
	backing configuration.Configuration
	pattern *regexp.Regexp
}

var _ configuration.Configuration = (*MaskedConfig)(nil)

// MaskPasswords returns a view of raw that hides credentials matched by
// PasswordPattern.
func MaskPasswords(raw *values.Properties) configuration.Configuration {
	return MaskWithPattern(PasswordPattern, raw)
}

// MaskPasswordsMap is MaskPasswords for a plain map.
func MaskPasswordsMap(raw map[string]string) configuration.Configuration {
	return MaskPasswords(values.FromMap(raw))
}

// MaskWithPattern returns a view of raw whose values are replaced by
// RedactionToken for every key that pattern matches in full.
// A nil pattern disables masking and returns the plain configuration.
func MaskWithPattern(pattern *regexp.Regexp, raw *values.Properties) configuration.Configuration {
	return Mask(pattern, configuration.From(raw))
}

// Mask wraps an existing configuration. A nil pattern returns cfg unchanged.
func Mask(pattern *regexp.Regexp, cfg configuration.Configuration) configuration.Configuration {
	if pattern == nil {
		return cfg
	}
	return &MaskedConfig{
		backing: cfg,
		pattern: anchor(pattern),
	}
}

// Keys returns the backing configuration's keys unchanged.
func (m *MaskedConfig) Keys() []string {
	return m.backing.Keys()
}

// GetString returns RedactionToken for matching keys present in the backing
// configuration and the backing value otherwise. Absent keys report false
// whether or not they match.
func (m *MaskedConfig) GetString(key string) (string, bool) {
	v, ok := m.backing.GetString(key)
	if !ok {
		return "", false
	}
	if m.pattern.MatchString(key) {
		return RedactionToken, true
	}
	return v, true
}

// String renders the masked values, never the backing store.
func (m *MaskedConfig) String() string {
	return configuration.AsProperties(m).String()
}

// Matches reports whether key is considered sensitive by this view.
func (m *MaskedConfig) Matches(key string) bool {
	return m.pattern.MatchString(key)
}

// MatchesKey reports whether pattern matches the whole of key.
// A nil pattern matches nothing.
func MatchesKey(pattern *regexp.Regexp, key string) bool {
	if pattern == nil {
		return false
	}
	return anchor(pattern).MatchString(key)
}

// CompilePattern compiles a caller-supplied key pattern case-insensitively.
// An empty expression yields a nil pattern, meaning no masking.
func CompilePattern(expr string) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile mask pattern %q: %w", expr, err)
	}
	return re, nil
}

// anchored caches whole-key forms by expression so repeated lookups with
// the same pattern compile once.
var anchored sync.Map // string -> *regexp.Regexp

// anchor forces whole-string matching on re. Checking match positions is
// not enough: leftmost-first search may stop at a shorter match.
func anchor(re *regexp.Regexp) *regexp.Regexp {
	if re == PasswordPattern {
		return re
	}
	expr := re.String()
	if cached, ok := anchored.Load(expr); ok {
		return cached.(*regexp.Regexp)
	}
	cached, _ := anchored.LoadOrStore(expr, regexp.MustCompile(`^(?:`+expr+`)$`))
	return cached.(*regexp.Regexp)
}

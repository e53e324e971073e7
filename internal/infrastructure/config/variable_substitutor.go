package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/reglet-dev/connmask/internal/application/ports"
	"github.com/reglet-dev/connmask/internal/domain/values"
)

// Secret pattern: {{ secret "key" }}
var secretPattern = regexp.MustCompile(`\{\{\s*secret\s+"([a-zA-Z0-9_.-]+)"\s*\}\}`)

// Env pattern: ${NAME}
var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// VariableSubstitutor expands placeholders in connector property values.
type VariableSubstitutor struct {
	resolver ports.SecretResolver
	lookup   func(string) (string, bool)
}

// NewVariableSubstitutor creates a substitutor. A nil resolver leaves
// {{ secret }} placeholders untouched.
func NewVariableSubstitutor(resolver ports.SecretResolver) *VariableSubstitutor {
	return &VariableSubstitutor{
		resolver: resolver,
		lookup:   os.LookupEnv,
	}
}

// Substitute returns a copy of props with ${ENV} and {{ secret "name" }}
// placeholders replaced. props itself is left unchanged.
func (s *VariableSubstitutor) Substitute(props *values.Properties) (*values.Properties, error) {
	out := values.NewProperties(props.Len())

	var err error
	props.Range(func(k, v string) bool {
		var expanded string
		expanded, err = s.substituteInString(v)
		if err != nil {
			err = fmt.Errorf("key %s: %w", k, err)
			return false
		}
		out.Set(k, expanded)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// substituteInString replaces patterns with values.
func (s *VariableSubstitutor) substituteInString(str string) (string, error) {
	var lastErr error

	// 1. Environment variables: ${NAME}
	result := envPattern.ReplaceAllStringFunc(str, func(match string) string {
		name := envPattern.FindStringSubmatch(match)[1]
		value, ok := s.lookup(name)
		if !ok {
			lastErr = fmt.Errorf("environment variable %s is not set", name)
			return match
		}
		return value
	})

	if lastErr != nil {
		return "", lastErr
	}

	// 2. Secrets: {{ secret "key" }}
	if s.resolver != nil {
		result = secretPattern.ReplaceAllStringFunc(result, func(match string) string {
			name := secretPattern.FindStringSubmatch(match)[1]
			value, err := s.resolver.Resolve(name)
			if err != nil {
				lastErr = fmt.Errorf("resolving secret %s: %w", name, err)
				return match
			}
			return value
		})
	}

	if lastErr != nil {
		return "", lastErr
	}

	return result, nil
}

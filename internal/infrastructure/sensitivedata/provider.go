// Package sensitivedata provides tools for keeping connector secrets out of
// rendered configuration, log output and error messages.
package sensitivedata

import (
	"sort"
	"strings"
	"sync"
)

// MinTrackedLength is the shortest value Track accepts. Shorter values such
// as "true" or "dbz" occur in ordinary output, and scrubbing them would
// rewrite keys and headers. Their keys are still masked.
const MinTrackedLength = 6

// Provider implements ports.SensitiveValueProvider.
// It maintains a thread-safe registry of secret values seen while loading
// configuration.
type Provider struct {
	values map[string]struct{}
	mu     sync.RWMutex
}

// NewProvider creates a new sensitive data provider.
func NewProvider() *Provider {
	return &Provider{
		values: make(map[string]struct{}, 32),
	}
}

// Track registers a sensitive value to be protected. Values shorter than
// MinTrackedLength are ignored.
func (p *Provider) Track(value string) {
	if len(value) < MinTrackedLength || value == RedactionToken {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[value] = struct{}{}
}

// AllValues returns all tracked sensitive values, longest first so that
// replacements never leave a suffix of a longer secret behind.
func (p *Provider) AllValues() []string {
	p.mu.RLock()
	result := make([]string, 0, len(p.values))
	for v := range p.values {
		result = append(result, v)
	}
	p.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if len(result[i]) != len(result[j]) {
			return len(result[i]) > len(result[j])
		}
		return result[i] < result[j]
	})
	return result
}

// ScrubString replaces every tracked value in input with RedactionToken.
func (p *Provider) ScrubString(input string) string {
	if input == "" {
		return input
	}
	for _, secret := range p.AllValues() {
		input = strings.ReplaceAll(input, secret, RedactionToken)
	}
	return input
}

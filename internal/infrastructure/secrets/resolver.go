// Package secrets resolves {{ secret "name" }} placeholders in connector
// configuration from environment variables, files or local settings.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/reglet-dev/connmask/internal/application/ports"
	"github.com/reglet-dev/connmask/internal/infrastructure/system"
)

// Resolver implements ports.SecretResolver.
// Every resolved value is tracked so it can be scrubbed from output even
// when it lands under a key the mask pattern does not cover.
type Resolver struct {
	config   *system.SecretsConfig
	provider ports.SensitiveValueProvider
	cache    map[string]string
	mu       sync.RWMutex
}

// NewResolver creates a new secret resolver.
func NewResolver(
	config *system.SecretsConfig,
	provider ports.SensitiveValueProvider,
) *Resolver {
	return &Resolver{
		config:   config,
		provider: provider,
		cache:    make(map[string]string),
	}
}

// Resolve returns the secret value by name.
// It checks sources in order: Local -> Env -> Files.
func (r *Resolver) Resolve(name string) (string, error) {
	r.mu.RLock()
	if value, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return value, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if value, ok := r.cache[name]; ok {
		return value, nil
	}

	value, err := r.resolveFromSources(name)
	if err != nil {
		return "", err
	}

	r.cache[name] = value
	if r.provider != nil {
		r.provider.Track(value)
	}
	return value, nil
}

func (r *Resolver) resolveFromSources(name string) (string, error) {
	if r.config == nil {
		return "", fmt.Errorf("secret %q: secrets config not present", name)
	}

	if value, ok := r.config.Local[name]; ok {
		return value, nil
	}

	if envVar, ok := r.config.Env[name]; ok {
		value := os.Getenv(envVar)
		if value == "" {
			return "", fmt.Errorf("secret %q: env var %q is not set", name, envVar)
		}
		return value, nil
	}

	if filePath, ok := r.config.Files[name]; ok {
		return readSecretFile(name, filePath)
	}

	return "", fmt.Errorf("secret %q not found in local, env, or files", name)
}

// readSecretFile reads a secret file, confined to its directory.
func readSecretFile(name, filePath string) (string, error) {
	dir := filepath.Dir(filePath)
	base := filepath.Base(filePath)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return "", fmt.Errorf("secret %q: failed to open directory %q: %w", name, dir, err)
	}
	defer func() { _ = root.Close() }()

	f, err := root.Open(base)
	if err != nil {
		return "", fmt.Errorf("secret %q: failed to open file %q: %w", name, base, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("secret %q: reading file %q: %w", name, filePath, err)
	}
	return strings.TrimSpace(string(data)), nil
}

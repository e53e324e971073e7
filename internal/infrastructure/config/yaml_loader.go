// Package config loads connector configuration files into ordered
// properties and resolves secret placeholders inside them.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/reglet-dev/connmask/internal/application/errors"
	"github.com/reglet-dev/connmask/internal/domain/values"
)

// PropertiesLoader reads connector configuration from YAML files.
// Nested mappings are flattened into dotted keys in document order.
type PropertiesLoader struct{}

// NewPropertiesLoader creates a new properties loader.
func NewPropertiesLoader() *PropertiesLoader {
	return &PropertiesLoader{}
}

// Load reads and flattens the YAML file at path.
func (l *PropertiesLoader) Load(path string) (*values.Properties, error) {
	// os.OpenRoot keeps the open confined to the file's directory
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, apperrors.NewConfigurationError("connector config", "failed to open directory "+dir, err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, apperrors.NewConfigurationError("connector config", "failed to open "+path, err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	props, err := l.LoadFromReader(file)
	if err != nil {
		return nil, apperrors.NewConfigurationError("connector config", "failed to load "+path, err)
	}
	return props, nil
}

// LoadFromReader reads a YAML mapping from r. An empty document yields
// empty properties.
func (l *PropertiesLoader) LoadFromReader(r io.Reader) (*values.Properties, error) {
	var doc yaml.MapSlice

	decoder := yaml.NewDecoder(r, yaml.UseOrderedMap())
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return values.NewProperties(0), nil
		}
		return nil, fmt.Errorf("failed to decode connector YAML: %s", decodeErrorSummary(err))
	}

	props := values.NewProperties(len(doc))
	flatten(props, "", doc)
	return props, nil
}

// decodeErrorSummary keeps the position and message of a YAML decode error.
// The decoder appends an excerpt of the source, which may hold credentials,
// so everything after the first line is dropped and the cause is not wrapped.
func decodeErrorSummary(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return strings.TrimSpace(msg)
}

// LoadAll loads every path concurrently and returns the results in the
// order the paths were given.
func (l *PropertiesLoader) LoadAll(ctx context.Context, paths []string) ([]*values.Properties, error) {
	results := make([]*values.Properties, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			props, err := l.Load(path)
			if err != nil {
				return err
			}
			results[i] = props
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func flatten(props *values.Properties, prefix string, m yaml.MapSlice) {
	for _, item := range m {
		key := fmt.Sprint(item.Key)
		if prefix != "" {
			key = prefix + "." + key
		}

		if nested, ok := item.Value.(yaml.MapSlice); ok && len(nested) > 0 {
			flatten(props, key, nested)
			continue
		}
		props.Set(key, render(item.Value))
	}
}

// render turns a YAML scalar or sequence into its property string form.
func render(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, e := range val {
			parts = append(parts, render(e))
		}
		return strings.Join(parts, ",")
	case yaml.MapSlice:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprintf("%v=%s", item.Key, render(item.Value)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprint(val)
	}
}

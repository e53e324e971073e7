// Package configuration defines the read-only key/value configuration
// abstraction that connector settings are exposed through.
package configuration

import "github.com/reglet-dev/connmask/internal/domain/values"

// Configuration is a read-only view over string-keyed settings.
type Configuration interface {
	// Keys returns every key in iteration order.
	Keys() []string
	// GetString returns the value for key and whether the key exists.
	GetString(key string) (string, bool)
	// String renders the whole configuration as text.
	String() string
}

// propertiesConfig exposes Properties as a Configuration without copying.
type propertiesConfig struct {
	props *values.Properties
}

// From returns the canonical Configuration backed by props.
// A nil props behaves as an empty configuration.
func From(props *values.Properties) Configuration {
	if props == nil {
		props = values.NewProperties(0)
	}
	return propertiesConfig{props: props}
}

func (c propertiesConfig) Keys() []string {
	return c.props.Keys()
}

func (c propertiesConfig) GetString(key string) (string, bool) {
	return c.props.Get(key)
}

func (c propertiesConfig) String() string {
	return c.props.String()
}

// AsProperties materializes cfg by looking up every key through GetString,
// so any per-key transformation cfg applies is reflected in the result.
func AsProperties(cfg Configuration) *values.Properties {
	keys := cfg.Keys()
	p := values.NewProperties(len(keys))
	for _, k := range keys {
		if v, ok := cfg.GetString(k); ok {
			p.Set(k, v)
		}
	}
	return p
}

// Range calls fn for each key of cfg in iteration order with the value
// returned by GetString. Keys that vanish between enumeration and lookup
// are skipped.
func Range(cfg Configuration, fn func(key, value string) bool) {
	for _, k := range cfg.Keys() {
		v, ok := cfg.GetString(k)
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

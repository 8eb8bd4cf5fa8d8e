// Package config provides configuration loading for dispatchers.
//
// Configuration is a loosely typed map with type-safe accessors, loaded
// from YAML or JSON files. The Settings type resolves the well-known
// dispatcher keys into a concrete struct.
package config

import (
	"time"
)

// Config wraps a map[string]any for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (c Config) Bool(key string, defaultVal bool) bool {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - int: used directly
//   - int64: converted to int
//   - float64: converted to int (only if no fractional part)
func (c Config) Int(key string, defaultVal int) int {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Duration returns the duration value for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - string: parsed with time.ParseDuration
//   - int, int64: interpreted as seconds
//   - float64: interpreted as seconds
//   - time.Duration: used directly
func (c Config) Duration(key string, defaultVal time.Duration) time.Duration {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case float64:
		return time.Duration(val * float64(time.Second))
	case int:
		return time.Duration(val) * time.Second
	case int64:
		return time.Duration(val) * time.Second
	case time.Duration:
		return val
	}
	return defaultVal
}

// StringSlice returns the string slice for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - []string: used directly
//   - []any: each element converted to string if possible
func (c Config) StringSlice(key string, defaultVal []string) []string {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			result = append(result, s)
		}
		return result
	}
	return defaultVal
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}

// Settings holds the resolved dispatcher configuration.
type Settings struct {
	// LogLevel is the minimum slog level name: debug, info, warn, error.
	LogLevel string

	// MetricsEnabled turns OpenTelemetry metric recording on.
	MetricsEnabled bool

	// TracingEnabled turns OpenTelemetry span creation on.
	TracingEnabled bool

	// DeadLetterEnabled records undeliverable events.
	DeadLetterEnabled bool

	// DeadLetterPath is the SQLite database path for dead letters.
	// Empty selects the in-memory store.
	DeadLetterPath string

	// DeliveryTimeout bounds a single listener invocation.
	// Zero means no per-delivery timeout.
	DeliveryTimeout time.Duration
}

// DefaultSettings returns the settings used when no configuration is given.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:          "info",
		MetricsEnabled:    true,
		TracingEnabled:    true,
		DeadLetterEnabled: false,
	}
}

// ResolveSettings extracts the well-known dispatcher keys from c,
// falling back to DefaultSettings for anything missing.
func ResolveSettings(c Config) Settings {
	def := DefaultSettings()
	return Settings{
		LogLevel:          c.String("log_level", def.LogLevel),
		MetricsEnabled:    c.Bool("metrics_enabled", def.MetricsEnabled),
		TracingEnabled:    c.Bool("tracing_enabled", def.TracingEnabled),
		DeadLetterEnabled: c.Bool("dead_letter_enabled", def.DeadLetterEnabled),
		DeadLetterPath:    c.String("dead_letter_path", def.DeadLetterPath),
		DeliveryTimeout:   c.Duration("delivery_timeout", def.DeliveryTimeout),
	}
}

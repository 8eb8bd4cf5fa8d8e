package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile reads a dispatcher configuration file, picking the decoder
// from the file extension. YAML (.yaml, .yml) and JSON (.json) are
// recognized; anything else is an error.
func FromFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(raw)
	case ".json":
		return FromJSON(raw)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
}

// LoadSettings reads path with FromFile and resolves the well-known
// dispatcher keys. This is the one-call form most dispatcher setups want:
//
//	settings, err := config.LoadSettings("dispatcher.yaml")
func LoadSettings(path string) (Settings, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	return ResolveSettings(cfg), nil
}

// FromYAML decodes YAML dispatcher configuration.
func FromYAML(raw []byte) (Config, error) {
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return Config{}, fmt.Errorf("parse yaml config: %w", err)
	}
	return New(values), nil
}

// FromJSON decodes JSON dispatcher configuration.
func FromJSON(raw []byte) (Config, error) {
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return Config{}, fmt.Errorf("parse json config: %w", err)
	}
	return New(values), nil
}

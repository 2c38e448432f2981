package config

import (
	"encoding/json"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Manager holds the application configuration. The configuration is loaded
// once at startup and never written afterwards, so reads need no locking.
type Manager struct {
	config *Config
	path   string
}

// NewManager creates a new ConfigManager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	return m.config
}

// Path returns the file the configuration was loaded from, empty when it was built in memory.
func (m *Manager) Path() string {
	return m.path
}

// redactedCfg gets a redacted copy of the Config
func (m *Manager) redactedCfg() Config {
	var cfgCpy = *m.Get()
	if cfgCpy.Interpret.APIKey != "" {
		cfgCpy.Interpret.APIKey = "<redacted>"
	}
	return cfgCpy
}

// GetJSON returns the current configuration as a JSON string.
func (m *Manager) GetJSON() string {
	jsonBytes, err := json.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to JSON", "error", err)
		return err.Error()
	}
	return string(jsonBytes)
}

func (m *Manager) GetYAML() string {
	yamlBytes, err := yaml.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to YAML", "error", err)
		return err.Error()
	}
	return string(yamlBytes)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"imagine-cli/internal/interfaces"
	"imagine-cli/internal/template"
)

// Manager implements the ConfigManager interface
type Manager struct {
	v     *viper.Viper
	flags map[string]interface{} // Store flag values for precedence
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("IMAGINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	return &Manager{
		v:     v,
		flags: make(map[string]interface{}),
	}
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("state_file", "")
	v.SetDefault("target", "clipboard")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("copied_format", template.DefaultCopiedFormat)
	v.SetDefault("error_format", template.DefaultErrorFormat)
}

// DefaultPath returns ~/.config/imagine/config.toml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "imagine", "config.toml"), nil
}

// Load loads configuration from the specified path
func (m *Manager) Load(path string) (*interfaces.Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	path = expandPath(path)

	// Missing config file means defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return m.getConfigFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getConfigFromViper(), nil
}

// SetFlag sets a flag value for precedence resolution
func (m *Manager) SetFlag(key string, value interface{}) {
	m.flags[key] = value
}

// Resolve applies precedence rules (flags > env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Config, error) {
	config := m.getConfigFromViper()

	m.applyFlagOverrides(config)

	return config, nil
}

// applyFlagOverrides applies non-empty string flag values over the configuration
func (m *Manager) applyFlagOverrides(config *interfaces.Config) {
	targets := map[string]*string{
		"state_file": &config.StateFile,
		"target":     &config.Target,
		"log_level":  &config.LogLevel,
		"log_file":   &config.LogFile,
	}

	for key, field := range targets {
		val, exists := m.flags[key]
		if !exists || val == nil {
			continue
		}
		if str, ok := val.(string); ok && str != "" {
			if key == "state_file" || key == "log_file" {
				str = expandPath(str)
			}
			*field = str
		}
	}
}

// Validate validates the configuration values
func (m *Manager) Validate(config *interfaces.Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	validTargets := map[string]bool{
		"clipboard": true,
		"stdout":    true,
	}
	if !validTargets[config.Target] && !strings.HasPrefix(config.Target, "file:") {
		return fmt.Errorf("invalid target: %s (must be 'clipboard', 'stdout', or 'file:/path')", config.Target)
	}
	if config.Target == "file:" {
		return fmt.Errorf("invalid target: file: requires a path")
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(config.LogLevel))); err != nil {
		return fmt.Errorf("invalid log_level: %s", config.LogLevel)
	}

	if _, err := template.NewStatus(template.NewProcessor(), config.CopiedFormat, config.ErrorFormat); err != nil {
		return fmt.Errorf("invalid status format: %w", err)
	}

	return nil
}

// getConfigFromViper converts viper configuration to Config struct
// This handles env > config > defaults precedence (flags are applied separately)
func (m *Manager) getConfigFromViper() *interfaces.Config {
	return &interfaces.Config{
		StateFile:    expandPath(m.v.GetString("state_file")),
		Target:       m.v.GetString("target"),
		LogLevel:     m.v.GetString("log_level"),
		LogFile:      expandPath(m.v.GetString("log_file")),
		CopiedFormat: m.v.GetString("copied_format"),
		ErrorFormat:  m.v.GetString("error_format"),
	}
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, path[2:])
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"imagine-cli/internal/interfaces"
	"imagine-cli/internal/template"
)

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager() returned nil")
	}
	if manager.v == nil {
		t.Fatal("NewManager() created manager with nil viper instance")
	}
}

func TestManager_Load_DefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	manager := NewManager()

	config, err := manager.Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if config.Target != "clipboard" {
		t.Errorf("Expected Target to be 'clipboard', got %s", config.Target)
	}
	if config.LogLevel != "warn" {
		t.Errorf("Expected LogLevel to be 'warn', got %s", config.LogLevel)
	}
	if config.StateFile != "" {
		t.Errorf("Expected StateFile to be empty, got %s", config.StateFile)
	}
	if config.CopiedFormat != template.DefaultCopiedFormat {
		t.Errorf("Expected default CopiedFormat, got %q", config.CopiedFormat)
	}
}

func TestManager_Load_CustomFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
state_file = "/custom/prompt.yaml"
target = "stdout"
log_level = "debug"
copied_format = "ok {{ .Command }}"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	manager := NewManager()
	config, err := manager.Load(configPath)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", configPath, err)
	}

	if config.StateFile != "/custom/prompt.yaml" {
		t.Errorf("Expected StateFile to be '/custom/prompt.yaml', got %s", config.StateFile)
	}
	if config.Target != "stdout" {
		t.Errorf("Expected Target to be 'stdout', got %s", config.Target)
	}
	if config.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug', got %s", config.LogLevel)
	}
	if config.CopiedFormat != "ok {{ .Command }}" {
		t.Errorf("Expected custom CopiedFormat, got %q", config.CopiedFormat)
	}
	if config.ErrorFormat != template.DefaultErrorFormat {
		t.Errorf("Expected default ErrorFormat, got %q", config.ErrorFormat)
	}
}

func TestManager_Load_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("target = = broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewManager().Load(configPath); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestManager_Validate(t *testing.T) {
	manager := NewManager()

	tests := []struct {
		name    string
		config  *interfaces.Config
		wantErr bool
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: true,
		},
		{
			name: "valid config",
			config: &interfaces.Config{
				Target:   "clipboard",
				LogLevel: "warn",
			},
			wantErr: false,
		},
		{
			name: "invalid target",
			config: &interfaces.Config{
				Target:   "invalid",
				LogLevel: "warn",
			},
			wantErr: true,
		},
		{
			name: "file target without path",
			config: &interfaces.Config{
				Target:   "file:",
				LogLevel: "warn",
			},
			wantErr: true,
		},
		{
			name: "valid file target",
			config: &interfaces.Config{
				Target:   "file:/tmp/output.txt",
				LogLevel: "info",
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			config: &interfaces.Config{
				Target:   "stdout",
				LogLevel: "loud",
			},
			wantErr: true,
		},
		{
			name: "invalid copied format",
			config: &interfaces.Config{
				Target:       "stdout",
				LogLevel:     "warn",
				CopiedFormat: "{{ .Command",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.Validate(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManager_SetFlag(t *testing.T) {
	manager := NewManager()

	manager.SetFlag("state_file", "/tmp/a.yaml")
	manager.SetFlag("target", "stdout")

	if manager.flags["state_file"] != "/tmp/a.yaml" {
		t.Errorf("Expected flag 'state_file' to be '/tmp/a.yaml', got %v", manager.flags["state_file"])
	}
	if manager.flags["target"] != "stdout" {
		t.Errorf("Expected flag 'target' to be 'stdout', got %v", manager.flags["target"])
	}
}

func TestManager_Resolve_FlagPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
state_file = "/from/config.yaml"
target = "stdout"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	manager := NewManager()

	if _, err := manager.Load(configPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	manager.SetFlag("state_file", "/from/flag.yaml")
	// Empty flag values do not override
	manager.SetFlag("target", "")

	config, err := manager.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if config.StateFile != "/from/flag.yaml" {
		t.Errorf("Expected StateFile to be '/from/flag.yaml' (from flag), got %s", config.StateFile)
	}
	if config.Target != "stdout" {
		t.Errorf("Expected Target to be 'stdout' (from config), got %s", config.Target)
	}
}

func TestManager_Resolve_EnvironmentVariables(t *testing.T) {
	t.Setenv("IMAGINE_TARGET", "stdout")
	t.Setenv("IMAGINE_LOG_LEVEL", "debug")

	manager := NewManager()

	config, err := manager.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if config.Target != "stdout" {
		t.Errorf("Expected Target to be 'stdout' (from env), got %s", config.Target)
	}
	if config.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be 'debug' (from env), got %s", config.LogLevel)
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "absolute path",
			path:     "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "relative path",
			path:     "relative/path",
			expected: "relative/path",
		},
		{
			name:     "empty path",
			path:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.path)
			if result != tt.expected {
				t.Errorf("expandPath(%s) = %s, expected %s", tt.path, result, tt.expected)
			}
		})
	}

	// Tilde expansion depends on the user home
	homeDir, err := os.UserHomeDir()
	if err == nil {
		result := expandPath("~/test/path")
		expected := filepath.Join(homeDir, "test/path")
		if result != expected {
			t.Errorf("expandPath(~/test/path) = %s, expected %s", result, expected)
		}
	}
}

package interfaces

// Config represents the application configuration
type Config struct {
	StateFile    string `toml:"state_file"`
	Target       string `toml:"target"`
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
	CopiedFormat string `toml:"copied_format"`
	ErrorFormat  string `toml:"error_format"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}

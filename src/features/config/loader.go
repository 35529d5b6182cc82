package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const portEnv = "FSBRIDGE_PORT"

// ErrNoWatchPaths is returned when the watch feed is enabled without paths.
var ErrNoWatchPaths = errors.New("watch enabled without paths")

// Load reads a YAML file from the given path and returns a new ConfigManager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	cfg, err := readOrCreate(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if set
	if port := os.Getenv(portEnv); port != "" {
		p, err := strconv.ParseUint(port, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", portEnv, port, err)
		}
		cfg.Server.Port = uint32(p)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	manager := NewManager(cfg)
	manager.path = path
	return manager, nil
}

// readOrCreate decodes path over the defaults, writing the defaults first
// when the file is missing.
func readOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		defaultCfg := createDefaultConfig()

		if err := saveDefaultConfig(path, defaultCfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		slog.Info("Default configuration created successfully", "path", path)
		return defaultCfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := createDefaultConfig()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Watch.Enabled && len(cfg.Watch.Paths) == 0 {
		return fmt.Errorf("config validation failed: %w", ErrNoWatchPaths)
	}
	return nil
}

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Server: Server{
			PrintRoutes: false,
			Port:        3636,
		},
		Metrics: Metrics{
			Enabled:   true,
			Namespace: "fsbridge",
		},
		Watch: Watch{
			Enabled: false,
			Paths:   []string{},
			Buffer:  64,
		},
	}
}

// saveDefaultConfig saves the default configuration to the specified file path
func saveDefaultConfig(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	slog.Info("Default configuration saved", "path", path)
	return nil
}

package config

// Config holds the application configuration.
type Config struct {
	Logger  Logger  `yaml:"logger"`
	Server  Server  `yaml:"server"`
	Metrics Metrics `yaml:"metrics"`
	Watch   Watch   `yaml:"watch"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port" validate:"required,max=65535"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json text logfmt"`
}

// Metrics holds the configuration for the prometheus endpoint
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Watch holds the directories fed into the classifier for diagnostics.
type Watch struct {
	Enabled bool     `yaml:"enabled"`
	Paths   []string `yaml:"paths" validate:"dive,required"`
	Buffer  int      `yaml:"buffer" validate:"gte=0"`
}

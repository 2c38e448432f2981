package config

import "time"

// Config holds the application configuration.
type Config struct {
	Server     Server     `yaml:"server"`
	Logger     Logger     `yaml:"logger"`
	Search     Search     `yaml:"search"`
	Interpret  Interpret  `yaml:"interpret"`
	LiveReload LiveReload `yaml:"livereload"`
	Metrics    Metrics    `yaml:"metrics"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port" validate:"required"`
	StaticDir   string `yaml:"static_dir" validate:"required"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json text logfmt"`
}

// Search holds the configuration of the video search proxy.
// Families are tried in the order they are listed, and so are the
// instances inside each family.
type Search struct {
	Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent  string        `yaml:"user_agent" validate:"required"`
	MaxResults int           `yaml:"max_results" validate:"gt=0"`
	Families   []Family      `yaml:"families" validate:"required,min=1,dive"`
}

// Family is an ordered list of instances that share an API schema.
type Family struct {
	Name      string   `yaml:"name" validate:"required,oneof=piped invidious"`
	Instances []string `yaml:"instances" validate:"required,min=1,dive,url"`
}

// Interpret holds the configuration of the LLM backed song interpretation.
type Interpret struct {
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	Model     string        `yaml:"model" validate:"required"`
	MaxTokens int           `yaml:"max_tokens" validate:"gt=0"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
}

// LiveReload holds the configuration of the browser reload notifications.
type LiveReload struct {
	Enabled    bool          `yaml:"enabled"`
	WatchDir   string        `yaml:"watch_dir" validate:"required"`
	Interval   time.Duration `yaml:"interval" validate:"gt=0"`
	Extensions []string      `yaml:"extensions" validate:"required,min=1"`
	Recursive  bool          `yaml:"recursive"`
	FSNotify   bool          `yaml:"fsnotify"` // Scan as soon as the filesystem reports an event
}

// Metrics holds the configuration of the Prometheus endpoint.
type Metrics struct {
	Enabled bool `yaml:"enabled"`
}

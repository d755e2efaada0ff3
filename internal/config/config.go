// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings. Command line flags override these.
type Config struct {
	Web     WebConfig
	Backend BackendConfig
	Log     LogConfig
}

// WebConfig configures the HTML front end.
type WebConfig struct {
	Addr   string `env:"TASKTIME_ADDR" env-default:":8080"`
	APIURL string `env:"TASKTIME_API_URL" env-default:"http://localhost:3000"`
	// RequestTimeout bounds each backend call. Zero means no deadline.
	RequestTimeout  time.Duration `env:"TASKTIME_REQUEST_TIMEOUT" env-default:"0s"`
	ShutdownTimeout time.Duration `env:"TASKTIME_SHUTDOWN_TIMEOUT" env-default:"5s"`
	// CascadeDelete deletes a task's operations before the task itself.
	CascadeDelete bool `env:"TASKTIME_CASCADE_DELETE" env-default:"false"`
}

// BackendConfig configures the reference REST backend.
type BackendConfig struct {
	Addr   string `env:"TASKTIME_API_ADDR" env-default:":3000"`
	DBPath string `env:"TASKTIME_DB_PATH" env-default:"data/tasktime.db"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level string `env:"TASKTIME_LOG_LEVEL" env-default:"info"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing file is fine; variables may come from the environment alone
		_ = godotenv.Load(f)
	}

	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}

// Validate checks values that cleanenv cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Web.Addr) == "" {
		return &Error{Field: "web.addr", Message: "listen address cannot be empty"}
	}
	u, err := url.Parse(c.Web.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &Error{Field: "web.api_url", Message: "must be an absolute http(s) URL"}
	}
	if c.Web.RequestTimeout < 0 {
		return &Error{Field: "web.request_timeout", Message: "cannot be negative"}
	}
	if c.Web.ShutdownTimeout <= 0 {
		return &Error{Field: "web.shutdown_timeout", Message: "must be positive"}
	}
	if strings.TrimSpace(c.Backend.Addr) == "" {
		return &Error{Field: "backend.addr", Message: "listen address cannot be empty"}
	}
	if strings.TrimSpace(c.Backend.DBPath) == "" {
		return &Error{Field: "backend.db_path", Message: "database path cannot be empty"}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return &Error{Field: "log.level", Message: err.Error()}
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Error is a configuration validation error.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Workout   WorkoutConfig   `yaml:"workout"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// WorkoutConfig holds defaults for the live-session view.
// DefaultRestSeconds must be one of the rest presets (30/45/60/90/120).
type WorkoutConfig struct {
	DefaultRestSeconds int `yaml:"default_rest_seconds"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// RestPresets are the selectable global rest durations, in seconds.
var RestPresets = []int{30, 45, 60, 90, 120}

// ValidRestPreset reports whether seconds is one of RestPresets.
func ValidRestPreset(seconds int) bool {
	for _, p := range RestPresets {
		if seconds == p {
			return true
		}
	}
	return false
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix FITRECORD_ and underscore-separated paths:
//
//	FITRECORD_SERVER_HOST, FITRECORD_SERVER_PORT,
//	FITRECORD_DB_HOST, FITRECORD_DB_PORT, FITRECORD_DB_NAME,
//	FITRECORD_DB_USER, FITRECORD_DB_PASSWORD, FITRECORD_DB_SSLMODE,
//	FITRECORD_REST_SECONDS, FITRECORD_TS_HOSTNAME
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Workout.DefaultRestSeconds == 0 {
		cfg.Workout.DefaultRestSeconds = 60
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITRECORD_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FITRECORD_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FITRECORD_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FITRECORD_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FITRECORD_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("FITRECORD_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FITRECORD_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FITRECORD_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("FITRECORD_REST_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Workout.DefaultRestSeconds = secs
		}
	}
	if v := os.Getenv("FITRECORD_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if !ValidRestPreset(c.Workout.DefaultRestSeconds) {
		return fmt.Errorf("workout.default_rest_seconds must be one of %v", RestPresets)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}

// Package config loads bptrack settings from a YAML file, an optional .env
// file and environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverValkey = "valkey"
)

// Config aggregates runtime configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Pixoo   PixooConfig   `yaml:"pixoo"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	Driver     string `yaml:"driver"`
	Path       string `yaml:"path"`
	ValkeyAddr string `yaml:"valkeyAddr"`
	KeyPrefix  string `yaml:"keyPrefix"`
}

// LogConfig controls the logger. An empty File logs text to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
}

// PixooConfig holds the LED display settings.
type PixooConfig struct {
	IP         string `yaml:"ip"`
	Brightness int    `yaml:"brightness"`
}

// Dir returns the per-user data directory, ~/.bptrack.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bptrack"
	}
	return filepath.Join(home, ".bptrack")
}

// Load reads .env, the YAML config file and environment overrides, then
// validates the result. A missing config file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}

	cfg := Default()

	path := os.Getenv("BPTRACK_CONFIG")
	if path == "" {
		path = filepath.Join(Dir(), "config.yaml")
	}
	if err := hydrateFromFile(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BPTRACK_STORAGE"); v != "" {
		cfg.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("BPTRACK_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("BPTRACK_VALKEY_ADDR"); v != "" {
		cfg.Storage.ValkeyAddr = v
	}
	if v := os.Getenv("BPTRACK_KEY_PREFIX"); v != "" {
		cfg.Storage.KeyPrefix = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BPTRACK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("PIXOO_IP"); v != "" {
		cfg.Pixoo.IP = v
	}
	if v := os.Getenv("PIXOO_BRIGHTNESS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Pixoo.Brightness = parsed
		}
	}
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:    DriverSQLite,
			Path:      filepath.Join(Dir(), "bptrack.db"),
			KeyPrefix: "bptrack",
		},
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Pixoo: PixooConfig{
			Brightness: 80,
		},
	}
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Storage.Path == "" {
			return errors.New("storage.path is required for the sqlite driver")
		}
	case DriverValkey:
		if c.Storage.ValkeyAddr == "" {
			return errors.New("storage.valkeyAddr is required for the valkey driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	if c.Pixoo.Brightness < 0 || c.Pixoo.Brightness > 100 {
		return fmt.Errorf("pixoo.brightness must be between 0 and 100, got %d", c.Pixoo.Brightness)
	}
	return nil
}

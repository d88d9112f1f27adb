package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultDir      = ".usagewidget"
	defaultFileName = "config.yaml"
)

type WindowConfig struct {
	AlwaysOnTop bool `yaml:"always_on_top"`
	Width       int  `yaml:"width" validate:"gt=0"`
	Height      int  `yaml:"height" validate:"gt=0"`
}

type Config struct {
	PollIntervalSeconds int          `yaml:"poll_interval_seconds" validate:"min=10,max=600"`
	CredentialsPath     string       `yaml:"credentials_path" validate:"required"`
	DataDir             string       `yaml:"data_dir" validate:"required"`
	LogLevel            string       `yaml:"log_level"`
	HTTPTimeoutSeconds  int          `yaml:"http_timeout_seconds" validate:"gt=0"`
	WatchDebounceMs     int          `yaml:"watch_debounce_ms" validate:"gt=0"`
	Window              WindowConfig `yaml:"window"`
}

var validate = validator.New()

func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		PollIntervalSeconds: 60,
		CredentialsPath:     filepath.Join(homeDir, ".claude", ".credentials.json"),
		DataDir:             filepath.Join(homeDir, defaultDir),
		LogLevel:            "info",
		HTTPTimeoutSeconds:  30,
		WatchDebounceMs:     1000,
		Window: WindowConfig{
			Width:  360,
			Height: 420,
		},
	}
}

func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, defaultDir, defaultFileName)
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

func (c *Config) StoragePath() string {
	return filepath.Join(c.DataDir, "usagewidget.db")
}

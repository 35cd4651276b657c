package config

import (
	"fmt"
	"os"
	"sync"

	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "/config/pakasir.yaml"
)

type Config struct {
	Server struct {
		Host string `yaml:"host" env:"SERVER_HOST"`
		Port string `yaml:"port" env:"SERVER_PORT"`
	} `yaml:"server"`
	Pakasir struct {
		Slug   string `yaml:"slug" env:"PAKASIR_SLUG"`
		APIKey string `yaml:"api_key" env:"PAKASIR_API_KEY"`
		// empty means the production host
		BaseURL string `yaml:"base_url" env:"PAKASIR_BASE_URL"`
	} `yaml:"pakasir"`
	Logging struct {
		Level       string `yaml:"level" env:"LOG_LEVEL"`
		Development bool   `yaml:"development" env:"LOG_DEVELOPMENT"`
	} `yaml:"logging"`
	// serve canned responses without calling Pakasir
	Mocked bool `yaml:"mocked" env:"MOCKED"`
}

type pathConfig struct {
	ConfigPath string `env:"PAKASIR_CONFIG_PATH"`
}

var (
	mu     sync.RWMutex
	loaded *Config
)

// GetConfigPath returns PAKASIR_CONFIG_PATH or the default path.
func GetConfigPath() (string, error) {
	p, err := env.ParseAs[pathConfig]()
	if err != nil {
		return "", fmt.Errorf("failed to parse env: %w", err)
	}
	if p.ConfigPath == "" {
		return defaultConfigPath, nil
	}
	return p.ConfigPath, nil
}

// LoadConfig reads the YAML file at path, applies environment overrides and
// stores the result for GetConfig.
func LoadConfig(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(b)
	if err != nil {
		return err
	}

	mu.Lock()
	loaded = cfg
	mu.Unlock()
	return nil
}

// Parse decodes YAML, then lets environment variables override it.
func Parse(b []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfig returns the configuration stored by LoadConfig.
func GetConfig() (*Config, error) {
	mu.RLock()
	defer mu.RUnlock()
	if loaded == nil {
		return nil, fmt.Errorf("config has not been loaded")
	}
	return loaded, nil
}

func (c *Config) Validate() error {
	if c.Mocked {
		return nil
	}
	if c.Pakasir.Slug == "" {
		return fmt.Errorf("pakasir.slug is required")
	}
	if c.Pakasir.APIKey == "" {
		return fmt.Errorf("pakasir.api_key is required")
	}
	return nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = "8080"
	cfg.Logging.Level = "info"
	return cfg
}

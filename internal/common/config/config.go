// Package config loads and persists iconkit configuration.
//
// Configuration is read from a YAML file (XDG config path first, legacy
// ~/.iconkit fallback) and can be overridden per-run through ICONKIT_*
// environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var (
	ErrAppfilterPathNotSet   = errors.New("appfilter path is not configured")
	ErrAppfilterPathNotFound = errors.New("appfilter file does not exist")
)

// Config represents the application configuration
type Config struct {
	Appfilter AppfilterConfig `yaml:"appfilter"`
	HTTP      HTTPConfig      `yaml:"http"`
}

// AppfilterConfig holds appfilter-specific settings
type AppfilterConfig struct {
	// Path is the default local appfilter.xml
	Path string `yaml:"path" env:"ICONKIT_APPFILTER"`
	// Remote is the default upstream appfilter URL
	Remote string `yaml:"remote" env:"ICONKIT_REMOTE"`
	// Matcher is the default matching policy ("drawable" or "name")
	Matcher string `yaml:"matcher" env:"ICONKIT_MATCHER"`
}

// HTTPConfig holds fetch settings
type HTTPConfig struct {
	// TimeoutSeconds is the per-request timeout
	TimeoutSeconds int `yaml:"timeout_seconds" env:"ICONKIT_HTTP_TIMEOUT"`
	// Retries is the number of retry attempts on transient failures
	Retries int `yaml:"retries" env:"ICONKIT_HTTP_RETRIES"`
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/iconkit/config.yaml (XDG standard - priority)
// 2. ~/.iconkit/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Check XDG_CONFIG_HOME first, fallback to ~/.config
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "iconkit", "config.yaml"),
		filepath.Join(home, ".iconkit", "config.yaml"),
	}, nil
}

// DefaultConfigPath returns the default config file path (XDG standard)
func DefaultConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// FindConfigPath returns the first existing config file path, or the
// default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// Load reads configuration from the first available config file and applies
// environment variable overrides on top.
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path
func LoadFrom(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				return nil, saveErr
			}
		} else {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Environment variables win over the file
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Appfilter: AppfilterConfig{
			Path:    "",
			Remote:  "",
			Matcher: "drawable",
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
			Retries:        3,
		},
	}
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetAppfilterPath returns the configured appfilter path with the home
// directory expanded, and verifies the file exists.
func (c *Config) GetAppfilterPath() (string, error) {
	if c.Appfilter.Path == "" {
		return "", ErrAppfilterPathNotSet
	}

	path := c.Appfilter.Path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrAppfilterPathNotFound
		}
		return "", err
	}
	if info.IsDir() {
		return "", ErrAppfilterPathNotFound
	}

	return path, nil
}

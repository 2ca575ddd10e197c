// Package config loads timelog settings: defaults, then an optional YAML
// file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigFile  = "TIMELOG_CONFIG"
	EnvDB          = "TIMELOG_DB"
	EnvAddr        = "TIMELOG_ADDR"
	EnvLogUseCases = "TIMELOG_LOG_USE_CASES"
	EnvLogRequests = "TIMELOG_LOG_REQUESTS"
	EnvTimeoutMs   = "TIMELOG_HTTP_TIMEOUT_MS"
)

type Config struct {
	DBPath      string `yaml:"db"`
	Addr        string `yaml:"addr"`
	LogUseCases bool   `yaml:"log_use_cases"`
	LogRequests bool   `yaml:"log_requests"`
	// TimeoutMs bounds HTTP reads and writes.
	TimeoutMs int `yaml:"http_timeout_ms"`
}

// Default returns the built-in settings rooted at home.
func Default(home string) Config {
	return Config{
		DBPath:      filepath.Join(home, ".timelog", "timelog.db"),
		Addr:        ":8080",
		LogUseCases: false,
		LogRequests: true,
		TimeoutMs:   10000,
	}
}

// DefaultFile is where Load looks when TIMELOG_CONFIG is unset.
func DefaultFile(home string) string {
	return filepath.Join(home, ".timelog", "config.yaml")
}

// Load resolves the configuration. A missing default file is not an error;
// a missing file named by TIMELOG_CONFIG is.
func Load(fsys afero.Fs) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := Default(home)

	path := os.Getenv(EnvConfigFile)
	explicit := path != ""
	if !explicit {
		path = DefaultFile(home)
	}
	if err := mergeFile(fsys, path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// mergeFile overlays the keys present in the YAML file onto cfg.
func mergeFile(fsys afero.Fs, path string, cfg *Config) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvLogUseCases); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv(EnvLogRequests); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogRequests = b
		}
	}
	if v := os.Getenv(EnvTimeoutMs); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
}

// Save writes cfg as YAML, creating the directory if needed.
func Save(fsys afero.Fs, path string, cfg Config) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return afero.WriteFile(fsys, path, data, 0o644)
}

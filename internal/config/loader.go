package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/sortviz/internal/logging"
)

const FileName = "sortviz.yaml"

// LoadFrom discovers a config file for dir, applies environment overrides
// and validates the result. Without a file the defaults are used.
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := discoverConfigPath(dir)
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		cfg = loaded
		logging.Debug("loaded config", "path", path)
	}

	ApplyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// discoverConfigPath checks ./sortviz.yaml then ~/.config/sortviz/config.yaml.
func discoverConfigPath(dir string) string {
	local := filepath.Join(dir, FileName)
	if _, err := os.Stat(local); err == nil {
		return local
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	user := filepath.Join(home, ".config", "sortviz", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user
	}
	return ""
}

func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SORTVIZ_ALGORITHM"); v != "" {
		cfg.Algorithm = v
	}
	if v := os.Getenv("SORTVIZ_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("SORTVIZ_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	envInt("SORTVIZ_LENGTH", &cfg.Length)
	envInt("SORTVIZ_MIN", &cfg.MinValue)
	envInt("SORTVIZ_MAX", &cfg.MaxValue)
	envInt("SORTVIZ_DELAY_MS", &cfg.StepDelayMs)
	if v := os.Getenv("SORTVIZ_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		} else {
			logging.Warn("ignoring invalid environment override", "name", "SORTVIZ_SEED", "value", v)
		}
	}
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.Warn("ignoring invalid environment override", "name", name, "value", v)
		return
	}
	*dst = n
}

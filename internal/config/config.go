package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/recorder"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm   = recorder.Selection
	DefaultLength      = 150
	DefaultMinValue    = 10
	DefaultMaxValue    = 100
	DefaultStepDelayMs = 5
	DefaultTheme       = "classic"
	DefaultFrameRate   = 30
	DefaultLogLevel    = "warn"
	MaxLength          = 5000

	// ValueLimit bounds min_value and max_value to integers a float64 holds exactly.
	ValueLimit = 1 << 53
)

type Config struct {
	Algorithm   string      `yaml:"algorithm"`
	Length      int         `yaml:"length"`
	MinValue    int         `yaml:"min_value"`
	MaxValue    int         `yaml:"max_value"`
	StepDelayMs int         `yaml:"step_delay_ms"`
	Seed        int64       `yaml:"seed"`
	Theme       string      `yaml:"theme"`
	Colors      ColorConfig `yaml:"colors"`
	FrameRate   int         `yaml:"frame_rate"`
	LogLevel    string      `yaml:"log_level"`
}

// ColorConfig overrides the theme's marker colours. Empty fields keep the
// theme colour. Values are "#rrggbb" or an ANSI 256 index.
type ColorConfig struct {
	Default   string `yaml:"default,omitempty"`
	Comparing string `yaml:"comparing,omitempty"`
	Settled   string `yaml:"settled,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:   DefaultAlgorithm,
		Length:      DefaultLength,
		MinValue:    DefaultMinValue,
		MaxValue:    DefaultMaxValue,
		StepDelayMs: DefaultStepDelayMs,
		Theme:       DefaultTheme,
		FrameRate:   DefaultFrameRate,
		LogLevel:    DefaultLogLevel,
	}
}

func (c *Config) StepDelay() time.Duration {
	return time.Duration(c.StepDelayMs) * time.Millisecond
}

// EffectiveSeed returns Seed, or a time based seed when Seed is zero.
func (c *Config) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Load reads a yaml file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ValidationError collects every failed check.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validColor(s string) bool {
	if s == "" || hexColor.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

func (c *Config) Validate() error {
	var errs []string

	if !recorder.Supports(c.Algorithm) {
		errs = append(errs, fmt.Sprintf("algorithm %q must be one of %s", c.Algorithm, strings.Join(recorder.Algorithms(), ", ")))
	}
	if c.Length < 0 || c.Length > MaxLength {
		errs = append(errs, fmt.Sprintf("length %d must be between 0 and %d", c.Length, MaxLength))
	}
	if int64(c.MinValue) < -ValueLimit || int64(c.MaxValue) > ValueLimit {
		errs = append(errs, fmt.Sprintf("min_value and max_value must be within [-%d, %d]", ValueLimit, ValueLimit))
	}
	if c.MinValue > c.MaxValue {
		errs = append(errs, fmt.Sprintf("min_value %d must not exceed max_value %d", c.MinValue, c.MaxValue))
	}
	if c.StepDelayMs < 0 {
		errs = append(errs, "step_delay_ms must be non-negative")
	}
	if c.FrameRate <= 0 {
		errs = append(errs, "frame_rate must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	for name, color := range map[string]string{
		"colors.default":   c.Colors.Default,
		"colors.comparing": c.Colors.Comparing,
		"colors.settled":   c.Colors.Settled,
	} {
		if !validColor(color) {
			errs = append(errs, fmt.Sprintf("%s %q must be #rrggbb or 0-255", name, color))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

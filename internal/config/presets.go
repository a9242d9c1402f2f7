package config

import (
	"sort"

	"github.com/san-kum/sortviz/internal/recorder"
)

func preset(length, delayMs int, algorithm string) *Config {
	cfg := DefaultConfig()
	cfg.Length = length
	cfg.StepDelayMs = delayMs
	cfg.Algorithm = algorithm
	return cfg
}

var Presets = map[string]*Config{
	"tiny":    preset(8, 250, recorder.Selection),
	"small":   preset(30, 40, recorder.Insertion),
	"default": DefaultConfig(),
	"large":   preset(300, 1, recorder.Merge),
	"turbo":   preset(150, 0, recorder.Quick),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

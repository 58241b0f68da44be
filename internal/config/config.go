// Package config loads the shell's optional on-disk preferences.
//
// None of this is shell state: the working directory and command history
// are the only state carried from one command line to the next, and
// neither is persisted here. This package only holds user preferences that shape how
// the shell behaves (how many history lines to keep around, whether to
// color transient chrome), loaded once at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PromptStyle gates whether internal/ui is allowed to colorize anything.
// The mandatory "$ " prompt byte string is never affected by this setting.
type PromptStyle string

const (
	StylePlain PromptStyle = "plain"
	StyleColor PromptStyle = "color"
)

type Config struct {
	HistorySize int         `yaml:"history_size"`
	Prompt      PromptStyle `yaml:"prompt"`
}

const DefaultHistorySize = 1000

func Default() *Config {
	return &Config{
		HistorySize: DefaultHistorySize,
		Prompt:      StylePlain,
	}
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".posh"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func HistoryPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// Load reads ~/.posh/config.yaml, falling back to defaults for any field
// it doesn't set and for the file not existing at all.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	if cfg.Prompt != StyleColor {
		cfg.Prompt = StylePlain
	}
	return cfg, nil
}

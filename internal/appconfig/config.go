// Package appconfig manages application configuration and runtime file paths.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SelectorConfig controls how the external fuzzy picker is launched.
type SelectorConfig struct {
	Command          string   `yaml:"command"`
	ExtraArgs        []string `yaml:"extra_args"`
	PrimaryAcceptKey string   `yaml:"primary_accept_key"`
	AcceptKeys       []string `yaml:"accept_keys"`
}

// UIConfig contains settings for the built-in browse picker.
type UIConfig struct {
	PageSize int `yaml:"page_size"`
}

// Config holds application-level configuration.
type Config struct {
	SSHConfigPath string         `yaml:"ssh_config_path"`
	Selector      SelectorConfig `yaml:"selector"`
	UI            UIConfig       `yaml:"ui"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Selector: SelectorConfig{
			Command:          "fzf",
			PrimaryAcceptKey: "enter",
			AcceptKeys:       []string{"enter", "alt-enter"},
		},
		UI: UIConfig{PageSize: 15},
	}
}

// ConfigDir returns the application config directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/sshsel.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sshsel"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "sshsel"), nil
}

// Load reads config.yaml from the config directory. A missing file simply
// yields the defaults; sshsel never writes state on its own.
func Load() (Config, error) {
	d, err := ConfigDir()
	if err != nil {
		return Default(), err
	}
	path := filepath.Join(d, "config.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	return normalize(cfg), nil
}

func normalize(cfg Config) Config {
	if cfg.Selector.Command == "" {
		cfg.Selector.Command = "fzf"
	}
	if cfg.Selector.PrimaryAcceptKey == "" {
		cfg.Selector.PrimaryAcceptKey = "enter"
	}
	if len(cfg.Selector.AcceptKeys) == 0 {
		cfg.Selector.AcceptKeys = []string{cfg.Selector.PrimaryAcceptKey, "alt-enter"}
	}
	if cfg.UI.PageSize <= 0 {
		cfg.UI.PageSize = 15
	}
	return cfg
}

// Save writes config to config.yaml. Used by tests and by users who want a
// starting point via `sshsel doctor --write-config`.
func Save(cfg Config) error {
	d, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d, "config.yaml"), b, 0o644)
}

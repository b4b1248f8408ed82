package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"tscolor/internal/visible"
)

// settings is what the config file and the persistent flags configure.
type settings struct {
	Theme         string `yaml:"theme"`
	VisibleMargin int    `yaml:"visible_margin"`
	EditorCmd     string `yaml:"editor_cmd"`
	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
	MetricsAddr   string `yaml:"metrics_addr"`
}

func defaultSettings() settings {
	return settings{
		Theme:         "nord",
		VisibleMargin: visible.DefaultMargin,
		LogLevel:      "info",
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tscolor", "config.yaml")
}

// loadSettings reads path over the defaults. A missing file is only an error
// when the user named it explicitly.
func loadSettings(path string, explicit bool) (settings, error) {
	cfg := defaultSettings()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.VisibleMargin < 0 {
		return cfg, errors.Errorf("parsing config %s: visible_margin must not be negative", path)
	}
	return cfg, nil
}

// overrideFromFlags copies every flag the user set onto cfg.
func overrideFromFlags(cfg *settings, flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "theme":
			cfg.Theme = f.Value.String()
		case "visible-margin":
			cfg.VisibleMargin, err = flags.GetInt("visible-margin")
		case "editor-cmd":
			cfg.EditorCmd = f.Value.String()
		case "log-file":
			cfg.LogFile = f.Value.String()
		case "log-level":
			cfg.LogLevel = f.Value.String()
		case "metrics-addr":
			cfg.MetricsAddr = f.Value.String()
		}
	})
	if err != nil {
		return errors.Errorf("reading flags: %w", err)
	}
	if cfg.VisibleMargin < 0 {
		return errors.New("--visible-margin must not be negative")
	}
	return nil
}

// Package config loads project-level ftml settings (catalogue location,
// layout, watch patterns) from ftml.yml via viper, the same load-from-file
// pattern the original CLI used for its own project config.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents a project's ftml configuration.
type Config struct {
	ProjectName string          `mapstructure:"project_name"`
	Catalogue   CatalogueConfig `mapstructure:"catalogue"`
	Parser      ParserConfig    `mapstructure:"parser"`
	Watch       WatchConfig     `mapstructure:"watch"`
}

// CatalogueConfig points at a project's block catalogue, if it overrides
// the bundled default.
type CatalogueConfig struct {
	Path string `mapstructure:"path"`
}

// ParserConfig mirrors parser.Settings in a config-file-friendly shape.
type ParserConfig struct {
	Layout              string `mapstructure:"layout"`
	AllowHTMLAttributes bool   `mapstructure:"allow_html_attributes"`
	RecursionLimit      int    `mapstructure:"recursion_limit"`
	EnableInclude       bool   `mapstructure:"enable_include"`
}

// WatchConfig configures the watch subcommand's file matching.
type WatchConfig struct {
	Patterns []string `mapstructure:"patterns"`
	Ignored  []string `mapstructure:"ignored"`
}

// Load loads configuration from ftml.yml or ftml.yaml in the current
// directory, falling back to defaults when no file is present.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("catalogue.path", "")
	v.SetDefault("parser.layout", "wikidot")
	v.SetDefault("parser.allow_html_attributes", true)
	v.SetDefault("parser.recursion_limit", 100)
	v.SetDefault("parser.enable_include", false)
	v.SetDefault("watch.patterns", []string{"*.ftml", "*.wiki"})
	v.SetDefault("watch.ignored", []string{"*.swp", "*.swo", "*~", ".DS_Store"})

	v.SetConfigName("ftml")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// InProject reports whether the current directory looks like an ftml
// project: it contains ftml.yml/ftml.yaml, or a catalogue.yaml.
func InProject() bool {
	for _, name := range []string{"ftml.yml", "ftml.yaml", "catalogue.yaml"} {
		if _, err := os.Stat(name); err == nil {
			return true
		}
	}
	return false
}

// GetProjectRoot walks up from the working directory looking for ftml.yml
// or ftml.yaml, the same upward-search pattern the original CLI used to
// find its own project root.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{"ftml.yml", "ftml.yaml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in an ftml project (no ftml.yml found)")
		}
		dir = parent
	}
}

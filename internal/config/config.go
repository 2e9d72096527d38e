// Package config provides configuration management for airules using Viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/airules/internal/agent"
	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/paths"
)

// EnvPrefix is the prefix for environment variable overrides (AIRULES_*).
const EnvPrefix = "AIRULES"

// Development skills detection modes.
const (
	DevSkillsAuto  = "auto"
	DevSkillsTrue  = "true"
	DevSkillsFalse = "false"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version           int                      `mapstructure:"version" yaml:"version"`
	DefaultAgent      string                   `mapstructure:"default_agent" yaml:"default_agent"`
	RulesDir          string                   `mapstructure:"rules_dir" yaml:"rules_dir,omitempty"`
	DevelopmentSkills string                   `mapstructure:"development_skills" yaml:"development_skills"`
	Agents            map[string]AgentOverride `mapstructure:"agents" yaml:"agents,omitempty"`
}

// AgentOverride contains configuration overrides for a specific agent.
type AgentOverride struct {
	RulesPath string `mapstructure:"rules_path" yaml:"rules_path"`
}

// RulesPath returns the configured rules path override for a, or "".
func (c *Config) RulesPath(a agent.Agent) string {
	if c == nil {
		return ""
	}
	return c.Agents[a.String()].RulesPath
}

// Default returns a configuration holding the default values.
func Default() *Config {
	return &Config{
		Version:           1,
		DefaultAgent:      agent.Default.String(),
		DevelopmentSkills: DevSkillsAuto,
	}
}

// SearchDirs returns the directories searched for config.yaml, in order of
// precedence: the current directory, $AIRULES_CONFIG_DIR when set, then the
// XDG config directory.
func SearchDirs() []string {
	dirs := []string{"."}
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		dirs = append(dirs, dir)
	}
	return append(dirs, paths.ConfigDir())
}

// Init initializes Viper with default configuration.
// It resets any previous state so a config file chosen by an earlier Load
// does not leak into the next one.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	for _, dir := range SearchDirs() {
		viper.AddConfigPath(dir)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("default_agent", def.DefaultAgent)
	viper.SetDefault("rules_dir", "")
	viper.SetDefault("development_skills", def.DevelopmentSkills)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file, choosing the
// format from its extension.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found. The result is validated.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
		// An explicit file may be YAML, TOML or JSON.
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			viper.SetConfigType(ext)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load without a file uses defaults.
		case errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(errs[0], errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cyp0633/librecur/display"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfigPath = "RRULEFMT_CONFIG"
	EnvLanguage   = "RRULEFMT_LANG"
	EnvLogLevel   = "LOG_LEVEL"
)

// Config holds the rrulefmt settings.
type Config struct {
	// Language selects a built-in phrase table, e.g. "en" or "fr-CA".
	Language string `yaml:"language"`

	// PhrasesFile, if set, is a YAML phrase table that overrides Language.
	PhrasesFile string `yaml:"phrases_file"`

	// Short renders abbreviated month and weekday names.
	Short bool `yaml:"short"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Timezone is the IANA zone used for date-times without a Z suffix.
	// "Local" means the system zone.
	Timezone string `yaml:"timezone"`
}

func DefaultConfig() *Config {
	return &Config{
		Language: "en",
		LogLevel: "info",
		Timezone: "Local",
	}
}

// Normalize fills empty values with defaults and lower-cases the log level.
func (c *Config) Normalize() {
	if c.Language == "" {
		c.Language = "en"
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// ApplyEnv overrides the language and log level from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	c.Normalize()
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Phrases returns the phrase table from PhrasesFile, or the built-in table
// closest to Language.
func (c *Config) Phrases() (*display.Phrases, error) {
	if c.PhrasesFile != "" {
		return display.LoadPhrases(c.PhrasesFile)
	}
	return display.Lookup(c.Language), nil
}

// Package config holds the settings of the pdftitle command.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// environment variables (a .env file is read first when present), then
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PDFTITLE_"

// Config is the command configuration.
type Config struct {
	Pages     int    `yaml:"pages"`
	Format    string `yaml:"format"`
	Filename  bool   `yaml:"filename"`
	Workers   int    `yaml:"workers"`
	Strict    bool   `yaml:"strict"`
	ResetFont bool   `yaml:"reset_font"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pages:    2,
		Format:   FormatText,
		Workers:  1,
		LogLevel: "warn",
	}
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays PDFTITLE_* environment variables onto c. The dotenv file
// at envFile, when it exists, is loaded into the environment first without
// overriding variables that are already set.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var errs []error
	c.Pages = getEnvInt("PAGES", c.Pages, &errs)
	c.Format = getEnv("FORMAT", c.Format)
	c.Filename = getEnvBool("FILENAME", c.Filename, &errs)
	c.Workers = getEnvInt("WORKERS", c.Workers, &errs)
	c.Strict = getEnvBool("STRICT", c.Strict, &errs)
	c.ResetFont = getEnvBool("RESET_FONT", c.ResetFont, &errs)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	return errors.Join(errs...)
}

// Validate reports settings the command cannot use.
func (c *Config) Validate() error {
	var errs []error
	switch c.Format {
	case FormatText, FormatJSON, FormatHTML:
	default:
		errs = append(errs, fmt.Errorf("format %q: must be one of text, json, html", c.Format))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d: must be at least 1", c.Workers))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// getEnv reads an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, def int, errs *[]error) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s%s=%q: not an integer", EnvPrefix, key, v))
		return def
	}
	return n
}

func getEnvBool(key string, def bool, errs *[]error) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s%s=%q: not a boolean", EnvPrefix, key, v))
		return def
	}
	return b
}

package app

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/specialistvlad/protocatalog/internal/value"
)

// Log formats and levels accepted by NewConfig.
var (
	LogFormats = []string{"text", "json"}
	LogLevels  = []string{"debug", "info", "warn", "error"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModsPath   string // directory holding one directory per mod
	PolicyPath string // optional HCL override policy
	LocalePath string // optional YAML base locale
	// Language selects <mod>/locale/<language>.yaml. Empty skips mod locales.
	Language string

	LogFormat   string
	LogLevel    string
	WorkerCount int

	// Settings are startup setting values as given on the command line.
	Settings map[string]string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	var merr *multierror.Error
	if cfg.ModsPath == "" {
		merr = multierror.Append(merr, errors.New("ModsPath is a required configuration field and cannot be empty"))
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(LogFormats, cfg.LogFormat) {
		merr = multierror.Append(merr, fmt.Errorf("invalid log format %q: must be one of %s", cfg.LogFormat, strings.Join(LogFormats, ", ")))
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !slices.Contains(LogLevels, cfg.LogLevel) {
		merr = multierror.Append(merr, fmt.Errorf("invalid log level %q: must be one of %s", cfg.LogLevel, strings.Join(LogLevels, ", ")))
	}

	if cfg.WorkerCount < 0 {
		merr = multierror.Append(merr, fmt.Errorf("invalid worker count %d: must not be negative", cfg.WorkerCount))
	}

	for name := range cfg.Settings {
		if name == "" {
			merr = multierror.Append(merr, errors.New("setting names cannot be empty"))
			break
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SettingValues converts the textual settings into script values.
func (c *Config) SettingValues() map[string]value.Value {
	out := make(map[string]value.Value, len(c.Settings))
	for name, raw := range c.Settings {
		out[name] = ParseSetting(raw)
	}
	return out
}

// ParseSetting reads a boolean, an integer or a float, falling back to a string.
func ParseSetting(raw string) value.Value {
	switch raw {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return value.Int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return value.Float(f)
	}
	return value.String(raw)
}

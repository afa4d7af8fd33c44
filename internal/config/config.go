// Package config holds runtime configuration: defaults, the optional YAML
// config file, TITLEPARSE_* environment overrides, flag binding and
// validation. Precedence is flag > env > file > default.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// --- Enum types for validated string fields ---

// Format selects how parse results are printed.
type Format string

const (
	FormatText Format = "text" // Aligned key/value blocks (default).
	FormatJSON Format = "json" // One JSON document per run.
	FormatYAML Format = "yaml" // One YAML sequence per run.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when the stream is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Keys shared by the config file, environment and flags.
const (
	KeyDir       = "dir"
	KeyOutputDir = "output_dir"
	KeyContainer = "container"
	KeyFormat    = "format"
	KeyWorkers   = "workers"
	KeyNoCatalog = "no_catalog"
	KeyColor     = "color"
	KeyLogFile   = "log"
	KeyVerbose   = "verbose"
	KeyBanner    = "banner"
)

// EnvPrefix is prepended to every key to form its environment variable.
const EnvPrefix = "TITLEPARSE"

// Config holds all runtime settings. It is produced by [Load] and passed by
// pointer to the packages that need it.
type Config struct {
	// Input.
	Dir string `mapstructure:"dir"` // Walk this directory instead of reading names.

	// Output paths. Empty OutputDir disables path planning.
	OutputDir string `mapstructure:"output_dir"`
	Container string `mapstructure:"container"` // Extension for planned paths; empty keeps the source's.

	// Parsing.
	Workers   int  `mapstructure:"workers"`    // Default: GOMAXPROCS.
	NoCatalog bool `mapstructure:"no_catalog"` // Title cleanup only, no field handlers.

	// Display and logging.
	Format     Format    `mapstructure:"format"` // Default: "text".
	ColorMode  ColorMode `mapstructure:"color"`  // Default: "auto".
	LogFile    string    `mapstructure:"log"`    // Optional log file path.
	Verbose    bool      `mapstructure:"verbose"`
	ShowBanner bool      `mapstructure:"banner"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		Workers:   runtime.GOMAXPROCS(0),
		Format:    FormatText,
		ColorMode: ColorAuto,
	}
}

// Load resolves the configuration from v. cfgFile names an explicit config
// file; when empty, titleparse.yaml is looked up in the working directory and
// in $HOME/.config/titleparse, and a missing file is not an error. Flags
// bound to v with [BindFlags] beforehand take precedence over everything.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	d := DefaultConfig()
	v.SetDefault(KeyDir, d.Dir)
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyContainer, d.Container)
	v.SetDefault(KeyFormat, string(d.Format))
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyNoCatalog, d.NoCatalog)
	v.SetDefault(KeyColor, string(d.ColorMode))
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyVerbose, d.Verbose)
	v.SetDefault(KeyBanner, d.ShowBanner)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("titleparse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/titleparse")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Dir = NormalizeDirArg(cfg.Dir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	cfg.Container = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(cfg.Container)), ".")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

var reContainer = regexp.MustCompile(`^[a-z0-9]{2,5}$`)

// Validate checks that enum fields hold valid values and that the worker
// count and container are usable.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
		// valid
	default:
		return fmt.Errorf("invalid format %q (use 'text', 'json' or 'yaml')", c.Format)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Container != "" && !reContainer.MatchString(c.Container) {
		return fmt.Errorf("invalid container %q (use an extension such as 'mkv')", c.Container)
	}
	return nil
}

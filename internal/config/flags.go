package config

// This file registers CLI flags and binds them into viper.
// Flags are grouped into input, output, parsing and display.
// Flag names use dashes; their viper keys use underscores.

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps each flag name to the config key it overrides.
var flagKeys = map[string]string{
	"dir":        KeyDir,
	"output-dir": KeyOutputDir,
	"container":  KeyContainer,
	"workers":    KeyWorkers,
	"no-catalog": KeyNoCatalog,
	"format":     KeyFormat,
	"color":      KeyColor,
	"log":        KeyLogFile,
	"verbose":    KeyVerbose,
	"banner":     KeyBanner,
}

// RegisterFlags defines every configuration flag on fs. Defaults shown in
// help come from [DefaultConfig]; they only apply when no env or file value
// is set, since viper owns precedence.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	defineInputFlags(fs, d)
	defineOutputFlags(fs, d)
	defineParsingFlags(fs, d)
	defineDisplayFlags(fs, d)
}

// defineInputFlags registers -d/--dir.
func defineInputFlags(fs *pflag.FlagSet, d Config) {
	fs.StringP("dir", "d", d.Dir, "Walk a directory for media files instead of reading names")
}

// defineOutputFlags registers -o/--output-dir and --container.
func defineOutputFlags(fs *pflag.FlagSet, d Config) {
	fs.StringP("output-dir", "o", d.OutputDir, "Plan library paths under this directory")
	fs.String("container", d.Container, "Extension for planned paths (default: keep the source's)")
}

// defineParsingFlags registers -j/--workers and --no-catalog.
func defineParsingFlags(fs *pflag.FlagSet, d Config) {
	fs.IntP("workers", "j", d.Workers, "Parse this many names concurrently")
	fs.Bool("no-catalog", d.NoCatalog, "Only clean titles; register no field handlers")
}

// defineDisplayFlags registers -f/--format, --color, --log, -v/--verbose, --banner.
func defineDisplayFlags(fs *pflag.FlagSet, d Config) {
	fs.StringP("format", "f", string(d.Format), "Output format: text | json | yaml")
	fs.String("color", string(d.ColorMode), "Color output: auto | always | never")
	fs.String("log", d.LogFile, "Also append log records to this file")
	fs.BoolP("verbose", "v", d.Verbose, "Log per-handler debug traces")
	fs.Bool("banner", d.ShowBanner, "Print the banner before results")
}

// BindFlags binds the flags registered by [RegisterFlags] to their keys in v.
// A flag only overrides env and file values when it was set explicitly.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			return fmt.Errorf("flag --%s not registered", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/backmassage/titleparse/internal/config"
	"github.com/backmassage/titleparse/internal/display"
	"github.com/backmassage/titleparse/internal/logging"
	"github.com/backmassage/titleparse/internal/naming"
	"github.com/backmassage/titleparse/internal/parser"
	"github.com/backmassage/titleparse/internal/pipeline"
	"github.com/backmassage/titleparse/internal/term"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "titleparse [flags] [name...]",
	Short: "Extract titles and release metadata from media file names",
	Long: `titleparse reads release names such as
"The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv" and prints the clean title
together with every tag it recognised (year, resolution, source, codec,
seasons, episodes, group, ...).

Names come from the arguments, from a directory walk (--dir), or one per
line on stdin. With --output-dir each name is also mapped to a library path:
  Movie:  <dir>/Title (Year)/Title (Year).mkv
  TV:     <dir>/Title/Season 01/Title - S01E02.mkv`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runParse,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./titleparse.yaml or ~/.config/titleparse/titleparse.yaml)",
	)
	config.RegisterFlags(rootCmd.Flags())
	rootCmd.AddCommand(versionCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	// Bootstrap: the logger doesn't exist yet, so errors are returned to
	// main and printed there.
	v := viper.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	term.Configure(cfg.ColorMode)
	log, closer, err := logging.NewLogger(&cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	if cfg.ShowBanner {
		display.PrintBanner(cmd.ErrOrStderr(), version)
	}

	names, err := collectNames(cmd, &cfg, log, args)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no names to parse: pass them as arguments, use --dir, or pipe them on stdin")
	}

	stats, records := pipeline.Run(cmd.Context(), &cfg, log, newParser(&cfg, log), names)
	if err := display.Render(cmd.OutOrStdout(), cfg.Format, pipeline.Rows(records)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if stats.Interrupted {
		return fmt.Errorf("interrupted after %d of %d names", stats.Parsed, stats.Total)
	}
	return nil
}

// newParser returns the full release catalog, or a bare parser that only
// cleans titles when --no-catalog is set.
func newParser(cfg *config.Config, log *slog.Logger) *parser.Parser {
	if cfg.NoCatalog {
		return parser.New(parser.WithLogger(log))
	}
	return naming.NewParser(parser.WithLogger(log))
}

// collectNames picks the input source: arguments, a directory walk, or
// stdin when it is not a terminal.
func collectNames(cmd *cobra.Command, cfg *config.Config, log *slog.Logger, args []string) ([]string, error) {
	if len(args) > 0 {
		if cfg.Dir != "" {
			return nil, errors.New("name arguments cannot be combined with --dir")
		}
		return args, nil
	}
	if cfg.Dir != "" {
		files, err := pipeline.Discover(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("discover %s: %w", cfg.Dir, err)
		}
		log.Info("discovered media files", "dir", cfg.Dir, "count", len(files))
		return files, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(f) {
		return nil, nil
	}
	return readLines(in)
}

// readLines returns the non-blank lines of r, trimmed.
func readLines(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return names, nil
}

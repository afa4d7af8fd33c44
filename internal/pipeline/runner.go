package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/backmassage/titleparse/internal/config"
	"github.com/backmassage/titleparse/internal/display"
	"github.com/backmassage/titleparse/internal/naming"
	"github.com/backmassage/titleparse/internal/parser"
)

// Record is the outcome for one input name.
type Record struct {
	Input   string
	Result  parser.Result
	Release naming.Release
	Output  string // Planned library path; empty unless cfg.OutputDir is set.
}

// Row converts r for [display.Render].
func (r Record) Row() display.Row {
	return display.Row{Input: r.Input, Fields: r.Result, Output: r.Output}
}

// Rows converts every record for [display.Render].
func Rows(records []Record) []display.Row {
	rows := make([]display.Row, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return rows
}

// Run is the top-level batch entry point. It parses names with p on up to
// cfg.Workers goroutines, harmonizes show years across the batch, then
// plans output paths sequentially in input order so collision suffixes are
// deterministic. When cfg.Dir is set, names
// are paths and their directories feed title and season fallbacks.
//
// Cancelling ctx stops scheduling; names already parsed are still reported.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger, p *parser.Parser, names []string) (RunStats, []Record) {
	start := time.Now()
	stats := RunStats{Total: len(names)}
	logBatchHeader(cfg, log, &stats)

	parsed := make([]Record, len(names))
	done := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
schedule:
	for i, name := range names {
		select {
		case <-gctx.Done():
			break schedule
		default:
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parsed[i] = parseOne(cfg, log, p, name)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var releases []naming.Release
	for i, rec := range parsed {
		if done[i] {
			releases = append(releases, rec.Release)
		}
	}
	years := naming.BuildYearIndex(releases)

	resolver := naming.NewCollisionResolver()
	records := make([]Record, 0, len(releases))
	for i, rec := range parsed {
		if !done[i] {
			continue
		}
		stats.Parsed++
		rec.Release = years.Harmonize(rec.Release)
		if rec.Release.Title == "" {
			stats.Untitled++
			log.Warn("no title found", "input", rec.Input)
		}
		if cfg.OutputDir != "" {
			requested := naming.GetOutputPath(rec.Release, cfg.OutputDir, cfg.Container)
			rec.Output = resolver.Resolve(rec.Input, requested)
			if rec.Output != requested {
				log.Debug("output collision", "input", rec.Input, "output", rec.Output)
			}
			if filepath.Base(rec.Output) != filepath.Base(rec.Input) {
				stats.Renamed++
			}
		}
		records = append(records, rec)
	}

	stats.Interrupted = stats.Parsed < stats.Total
	stats.Elapsed = time.Since(start)
	logSummary(log, &stats, records)
	return stats, records
}

// parseOne normalizes name to NFC, parses it and applies folder context.
func parseOne(cfg *config.Config, log *slog.Logger, p *parser.Parser, name string) Record {
	name = norm.NFC.String(name)
	base, parent := name, ""
	if cfg.Dir != "" {
		base, parent = filepath.Base(name), filepath.Dir(name)
	}

	res, rel := naming.ParseWith(p, base, parent)
	if rel.Title != res.Title() {
		res[parser.TitleKey] = rel.Title
	}
	log.Debug("parsed", "input", name, "title", rel.Title, "type", rel.MediaType)
	return Record{Input: name, Result: res, Release: rel}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *slog.Logger, stats *RunStats) {
	log.Info("parsing names", "total", stats.Total, "workers", cfg.Workers, "catalog", !cfg.NoCatalog)
	if cfg.OutputDir != "" {
		container := cfg.Container
		if container == "" {
			container = "source"
		}
		log.Info("planning library paths", "dir", cfg.OutputDir, "container", container)
	}
}

func logSummary(log *slog.Logger, stats *RunStats, records []Record) {
	if stats.Interrupted {
		log.Warn("interrupted", "parsed", stats.Parsed, "skipped", stats.Skipped())
	}
	log.Info("done",
		"parsed", stats.Parsed,
		"untitled", stats.Untitled,
		"renamed", stats.Renamed,
		"elapsed", stats.Elapsed.Round(time.Millisecond))
	for _, fc := range Coverage(records) {
		log.Debug("field coverage", "field", fc.Field, "records", fc.Count)
	}
}

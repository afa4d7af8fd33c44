// Package logging builds the run's structured logger: colored tint output on
// an interactive stderr, JSON otherwise, with an optional plain-text file
// sink alongside.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	"github.com/backmassage/titleparse/internal/config"
	"github.com/backmassage/titleparse/internal/term"
)

// Level is the shared log level. --verbose lowers it to debug, which turns
// on the parser's per-handler traces.
var Level = new(slog.LevelVar) // default: INFO

// NewLogger builds the logger described by cfg, writing to stderr and, when
// cfg.LogFile is set, appending to that file. Close the returned closer when
// done; it is a no-op without a log file.
func NewLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg.Verbose {
		Level.Set(slog.LevelDebug)
	} else {
		Level.Set(slog.LevelInfo)
	}

	h := newHandler(os.Stderr, term.IsTerminal(os.Stderr), term.Resolve(cfg.ColorMode, os.Stderr))
	if cfg.LogFile == "" {
		return slog.New(h), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	file := slog.NewTextHandler(f, &slog.HandlerOptions{Level: Level})
	return slog.New(tee{h, file}), f, nil
}

// newHandler picks tint for interactive streams and JSON for everything
// else (pipes, CI, log collectors).
func newHandler(w io.Writer, interactive, color bool) slog.Handler {
	if interactive {
		return tint.NewHandler(w, &tint.Options{
			Level:      Level,
			TimeFormat: time.TimeOnly,
			NoColor:    !color,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// tee sends every record to each handler that accepts its level.
type tee []slog.Handler

func (t tee) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t tee) WithGroup(name string) slog.Handler {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

package parser

import (
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

var reUnderscores = regexp.MustCompile(`_+`)

// Parser is an ordered handler registry. Build it once, then call
// [Parser.Parse] any number of times, from any number of goroutines.
type Parser struct {
	handlers []Handler
	log      *slog.Logger
}

// ParserOption configures a [Parser] at construction.
type ParserOption func(*Parser)

// WithLogger sends per-handler debug traces to log.
func WithLogger(log *slog.Logger) ParserOption {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// New returns an empty parser.
func New(opts ...ParserOption) *Parser {
	p := &Parser{log: slog.New(slog.DiscardHandler)}
	for _, fn := range opts {
		fn(p)
	}
	return p
}

// AddHandler appends a handler named name. matcher may be:
//
//   - a *regexp2.Regexp, a *regexp.Regexp, or a string pattern (compiled
//     with regexp2): wrapped with transform (nil means identity) and opts;
//   - a HandlerFunc or func(*Context) *Outcome: used as-is;
//   - a Handler: used as-is, registered under name unless name is empty.
//
// Any other matcher yields a *ConfigError wrapping [ErrInvalidHandler].
func (p *Parser) AddHandler(name string, matcher any, transform Transform, opts ...Option) error {
	var h Handler
	switch m := matcher.(type) {
	case *regexp2.Regexp:
		if m == nil {
			return newConfigError(name, matcher, nil)
		}
		h = newRegexHandler(name, re2Pattern{m}, transform, resolveOptions(opts))
	case *regexp.Regexp:
		if m == nil {
			return newConfigError(name, matcher, nil)
		}
		h = newRegexHandler(name, stdPattern{m}, transform, resolveOptions(opts))
	case string:
		re, err := regexp2.Compile(m, regexp2.None)
		if err != nil {
			return newConfigError(name, matcher, err)
		}
		h = newRegexHandler(name, re2Pattern{re}, transform, resolveOptions(opts))
	case HandlerFunc:
		if m == nil {
			return newConfigError(name, matcher, nil)
		}
		h = &funcHandler{name: name, fn: m}
	case func(*Context) *Outcome:
		if m == nil {
			return newConfigError(name, matcher, nil)
		}
		h = &funcHandler{name: name, fn: m}
	case Handler:
		h = m
		if name != "" && name != m.Name() {
			h = &funcHandler{name: name, fn: m.Handle}
		}
	default:
		return newConfigError(name, matcher, nil)
	}
	p.handlers = append(p.handlers, h)
	return nil
}

// MustAddHandler is like AddHandler but panics on a configuration error.
func (p *Parser) MustAddHandler(name string, matcher any, transform Transform, opts ...Option) {
	if err := p.AddHandler(name, matcher, transform, opts...); err != nil {
		panic(err)
	}
}

// Handlers returns the registered handler names in registration order.
func (p *Parser) Handlers() []string {
	names := make([]string, len(p.handlers))
	for i, h := range p.handlers {
		names[i] = h.Name()
	}
	return names
}

// Parse runs every handler in registration order over rawTitle and returns
// the extracted fields plus the cleaned title under [TitleKey]. It never
// fails: handlers that find nothing simply contribute nothing.
func (p *Parser) Parse(rawTitle string) Result {
	ctx := &Context{
		Title:   reUnderscores.ReplaceAllString(rawTitle, " "),
		Result:  Result{},
		Matched: map[string]Match{},
	}
	endOfTitle := utf8.RuneCountInString(ctx.Title)

	for _, h := range p.handlers {
		out := h.Handle(ctx)
		if out == nil {
			continue
		}
		span := utf8.RuneCountInString(out.RawMatch)
		if out.Remove {
			ctx.Title = splice(ctx.Title, out.MatchIndex, span)
		}
		// A match at offset 0 never moves the boundary through this rule.
		if !out.SkipFromTitle && out.MatchIndex != 0 && out.MatchIndex < endOfTitle {
			endOfTitle = out.MatchIndex
		}
		// Removed text before the boundary shifts it left.
		if out.Remove && out.SkipFromTitle && out.MatchIndex < endOfTitle {
			endOfTitle = max(endOfTitle-span, 0)
		}
		p.log.Debug("handler matched",
			"handler", h.Name(),
			"raw", out.RawMatch,
			"index", out.MatchIndex,
			"remove", out.Remove,
			"skipFromTitle", out.SkipFromTitle,
			"endOfTitle", endOfTitle)
	}

	ctx.Result[TitleKey] = CleanTitle(prefix(ctx.Title, endOfTitle))
	return ctx.Result
}

// splice deletes n runes starting at rune offset i, clamping to s.
func splice(s string, i, n int) string {
	r := []rune(s)
	start := min(max(i, 0), len(r))
	end := min(max(start+n, start), len(r))
	return string(r[:start]) + string(r[end:])
}

// prefix returns the first n runes of s, clamping n to [0, len].
func prefix(s string, n int) string {
	r := []rune(s)
	return string(r[:min(max(n, 0), len(r))])
}

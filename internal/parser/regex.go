package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// reBeforeTitle captures the content of a leading [bracketed] prefix.
var reBeforeTitle = regexp.MustCompile(`^\[([^\[\]]+)\]`)

// pattern hides the difference between regexp2 (rune offsets, lookaround)
// and the standard library (byte offsets).
type pattern interface {
	// find returns the full match, the text of capture group n, and the
	// rune offset of the match.
	find(s string, n int) (raw, group string, index int, ok bool)
}

type re2Pattern struct{ re *regexp2.Regexp }

func (p re2Pattern) find(s string, n int) (string, string, int, bool) {
	m, err := p.re.FindStringMatch(s)
	if err != nil || m == nil {
		return "", "", 0, false
	}
	var group string
	if g := m.GroupByNumber(n); g != nil && n > 0 {
		group = g.String()
	}
	return m.String(), group, m.Index, true
}

type stdPattern struct{ re *regexp.Regexp }

func (p stdPattern) find(s string, n int) (string, string, int, bool) {
	loc := p.re.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", "", 0, false
	}
	var group string
	if n > 0 && 2*n+1 < len(loc) && loc[2*n] >= 0 {
		group = s[loc[2*n]:loc[2*n+1]]
	}
	return s[loc[0]:loc[1]], group, utf8.RuneCountInString(s[:loc[0]]), true
}

// regexHandler is the pattern-backed handler variant.
type regexHandler struct {
	name      string
	pattern   pattern
	transform Transform
	opts      Options
}

func newRegexHandler(name string, p pattern, transform Transform, opts Options) *regexHandler {
	if transform == nil {
		transform = none
	}
	return &regexHandler{name: name, pattern: p, transform: transform, opts: opts}
}

func (h *regexHandler) Name() string { return h.name }

func (h *regexHandler) Handle(ctx *Context) *Outcome {
	if h.opts.SkipIfAlreadyFound && truthy(ctx.Result[h.name]) {
		return nil
	}

	raw, group, index, ok := h.pattern.find(ctx.Title, h.opts.Group)
	if !ok || raw == "" {
		return nil
	}

	text := raw
	if group != "" {
		text = group
	}
	transformed := h.transform(text, ctx.Result[h.name])
	if !truthy(transformed) {
		return nil
	}
	if h.skipIfFirst(ctx, index) {
		return nil
	}

	if _, seen := ctx.Matched[h.name]; !seen {
		ctx.Matched[h.name] = Match{Raw: raw, Index: index}
	}
	if truthy(h.opts.Value) {
		ctx.Result[h.name] = h.opts.Value
	} else {
		ctx.Result[h.name] = transformed
	}
	return &Outcome{
		RawMatch:      raw,
		MatchIndex:    index,
		Remove:        h.opts.Remove,
		SkipFromTitle: h.opts.SkipFromTitle || isBeforeTitle(ctx.Title, raw),
	}
}

// skipIfFirst reports whether this match would be the earliest recognized
// token among the other fields matched so far.
func (h *regexHandler) skipIfFirst(ctx *Context, index int) bool {
	if !h.opts.SkipIfFirst {
		return false
	}
	others := 0
	for name, m := range ctx.Matched {
		if name == h.name {
			continue
		}
		others++
		if index >= m.Index {
			return false
		}
	}
	return others > 0
}

// isBeforeTitle reports whether raw lies inside a leading [bracketed] prefix
// of title. Such content is release metadata, never title text.
func isBeforeTitle(title, raw string) bool {
	m := reBeforeTitle.FindStringSubmatch(title)
	return m != nil && strings.Contains(m[1], raw)
}

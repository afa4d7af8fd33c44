package parser

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NoHandlers(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"dot delimited", "Movie.Title.2020.1080p", "Movie Title 2020 1080p"},
		{"cyrillic cast credit", "Title (Актёры)", "Title"},
		{"alternate language title", "Title / タイトル", "Title"},
		{"empty", "", ""},
		{"underscore runs", "Some__Show___Name", "Some Show Name"},
		{"only separators", "___", ""},
	}
	p := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Parse(tc.input)
			assert.Equal(t, tc.want, got.Title())
			assert.Len(t, got, 1, "only the title key is expected")
		})
	}
}

func TestParse_LeadingBracketIsBeforeTitle(t *testing.T) {
	p := New()
	p.MustAddHandler("group", `ReleaseGroup`, nil, Remove())

	got := p.Parse("[ReleaseGroup] Anime Title (2021)")
	assert.Equal(t, "ReleaseGroup", got.String("group"))
	assert.Equal(t, "Anime Title (2021)", got.Title())
}

func TestParse_BeforeTitleWithoutRemove(t *testing.T) {
	p := New()
	p.MustAddHandler("group", `HorribleSubs`, nil)
	p.MustAddHandler("episode", `\b(\d{2})$`, nil)

	got := p.Parse("[HorribleSubs] Show 01")
	assert.Equal(t, "HorribleSubs", got.String("group"))
	assert.Equal(t, "01", got.String("episode"))
	assert.Equal(t, "Show", got.Title())
}

func TestParse_OffsetZeroDoesNotMoveBoundary(t *testing.T) {
	at := func(raw string, index int) HandlerFunc {
		return func(*Context) *Outcome { return &Outcome{RawMatch: raw, MatchIndex: index} }
	}

	p := New()
	p.MustAddHandler("zero", at("Title", 0), nil)
	assert.Equal(t, "Title Here", p.Parse("Title Here").Title())

	p = New()
	p.MustAddHandler("word", `^Title`, nil)
	got := p.Parse("Title Here")
	assert.Equal(t, "Title", got.String("word"))
	assert.Equal(t, "Title Here", got.Title())

	p = New()
	p.MustAddHandler("later", at("Here", 6), nil)
	assert.Equal(t, "Title", p.Parse("Title Here").Title())
}

func TestParse_SkipIfAlreadyFoundDefault(t *testing.T) {
	p := New()
	p.MustAddHandler("year", `\b(19\d{2})\b`, nil)
	p.MustAddHandler("year", `\b(20\d{2})\b`, nil)

	got := p.Parse("Film 1999 2020")
	assert.Equal(t, "1999", got.String("year"))
	assert.Equal(t, "Film", got.Title())
}

func TestParse_AllowOverwritePassesPrevious(t *testing.T) {
	join := func(m string, prev any) any {
		if s, ok := prev.(string); ok {
			return s + "," + m
		}
		return m
	}
	p := New()
	p.MustAddHandler("tag", `\bA\b`, join)
	p.MustAddHandler("tag", `\bB\b`, join, AllowOverwrite())

	got := p.Parse("Name A B")
	assert.Equal(t, "A,B", got.String("tag"))
	assert.Equal(t, "Name", got.Title())
}

func TestParse_TransformVeto(t *testing.T) {
	integer := func(m string, _ any) any {
		if m == "0" {
			return 0
		}
		return m
	}
	p := New()
	p.MustAddHandler("num", `\d+`, integer)

	got := p.Parse("Show 0")
	assert.NotContains(t, got, "num")
	assert.Equal(t, "Show 0", got.Title())
}

func TestParse_SkipIfFirst(t *testing.T) {
	build := func() *Parser {
		p := New()
		p.MustAddHandler("year", `\b(19\d{2})\b`, nil)
		p.MustAddHandler("lang", `\bEnglish\b`, nil, SkipIfFirst())
		return p
	}

	got := build().Parse("English Patient 1996")
	assert.NotContains(t, got, "lang", "earliest token is title text")
	assert.Equal(t, "English Patient", got.Title())

	got = build().Parse("Patient 1996 English")
	assert.Equal(t, "English", got.String("lang"))
	assert.Equal(t, "Patient", got.Title())

	p := New()
	p.MustAddHandler("lang", `\bEnglish\b`, nil, SkipIfFirst())
	got = p.Parse("English Patient")
	assert.Equal(t, "English", got.String("lang"), "no other field matched yet")
	assert.Equal(t, "English Patient", got.Title())
}

func TestParse_RemoveAndSkipShiftsBoundary(t *testing.T) {
	p := New()
	p.MustAddHandler("year", `\b(20\d{2})\b`, nil)
	p.MustAddHandler("tag", `\[TAG\] `, nil, Remove(), SkipFromTitle())

	got := p.Parse("[TAG] Title 2020")
	assert.Equal(t, "[TAG] ", got.String("tag"))
	assert.Equal(t, "Title", got.Title())
}

func TestParse_WithValue(t *testing.T) {
	p := New()
	p.MustAddHandler("hdr", `\bHDR\b`, nil, WithValue(true))

	got := p.Parse("Film HDR")
	assert.Equal(t, true, got.Bool("hdr"))
	assert.Equal(t, "Film", got.Title())
}

func TestParse_CaptureGroup(t *testing.T) {
	p := New()
	p.MustAddHandler("group1", `E(\d+)`, nil)
	p.MustAddHandler("full", `E(\d+)`, nil, CaptureGroup(0))
	p.MustAddHandler("nogroup", `E\d+`, nil)

	got := p.Parse("Show E05")
	assert.Equal(t, "05", got.String("group1"))
	assert.Equal(t, "E05", got.String("full"))
	assert.Equal(t, "E05", got.String("nogroup"))
}

func TestParse_StdlibPatternRuneOffsets(t *testing.T) {
	p := New()
	p.MustAddHandler("year", regexp.MustCompile(`\b(2016)\b`), nil)

	got := p.Parse("Café Society 2016")
	assert.Equal(t, "2016", got.String("year"))
	assert.Equal(t, "Café Society", got.Title())
}

func TestParse_Regexp2Pattern(t *testing.T) {
	p := New()
	p.MustAddHandler("year", regexp2.MustCompile(`(?!^)\b(19\d{2})\b`, regexp2.None), nil)

	got := p.Parse("1917 Remake 1999")
	assert.Equal(t, "1999", got.String("year"))
	assert.Equal(t, "1917 Remake", got.Title())
}

type fixedHandler struct{}

func (fixedHandler) Name() string { return "fixed" }
func (fixedHandler) Handle(ctx *Context) *Outcome {
	ctx.Result["fixed"] = "yes"
	return nil
}

func TestAddHandler(t *testing.T) {
	p := New()
	require.NoError(t, p.AddHandler("a", `a`, nil))
	require.NoError(t, p.AddHandler("b", regexp.MustCompile(`b`), nil))
	require.NoError(t, p.AddHandler("c", regexp2.MustCompile(`c`, regexp2.None), nil))
	require.NoError(t, p.AddHandler("d", func(*Context) *Outcome { return nil }, nil))
	require.NoError(t, p.AddHandler("e", HandlerFunc(func(*Context) *Outcome { return nil }), nil))
	require.NoError(t, p.AddHandler("", fixedHandler{}, nil))
	require.NoError(t, p.AddHandler("renamed", fixedHandler{}, nil))

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "fixed", "renamed"}, p.Handlers())
	assert.Equal(t, "yes", p.Parse("x").String("fixed"))
}

func TestAddHandler_ConfigErrors(t *testing.T) {
	p := New()

	err := p.AddHandler("bad", 42, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidHandler))
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "bad", cfgErr.Name)
	assert.Equal(t, "int", cfgErr.Got)

	err = p.AddHandler("nil", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidHandler)

	err = p.AddHandler("broken", `(`, nil)
	assert.ErrorIs(t, err, ErrInvalidHandler)

	var nilRe *regexp.Regexp
	assert.ErrorIs(t, p.AddHandler("nilre", nilRe, nil), ErrInvalidHandler)

	assert.Empty(t, p.Handlers())
	assert.Panics(t, func() { p.MustAddHandler("bad", 3.14, nil) })
}

func TestParse_TitleAlwaysTrimmed(t *testing.T) {
	p := New()
	p.MustAddHandler("year", `\b(19|20)\d{2}\b`, nil)
	p.MustAddHandler("bracket", `\[[^\]]*\]`, nil, Remove())

	inputs := []string{
		"", "   ", "___", "[", "((", "]]]", "/", "★", "タ", "- -",
		"[Group] Show - 01 [1080p]", "Title (", "Title {x", ".hidden.file",
		"A / B | C", "Title 2020 ", " 2020 ",
	}
	for _, in := range inputs {
		got := p.Parse(in)
		title, ok := got[TitleKey].(string)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, strings.TrimSpace(title), title, "input %q", in)
	}
}

// boundarySink records the endOfTitle attribute of every debug trace.
type boundarySink struct {
	mu   sync.Mutex
	ends []int64
}

func (s *boundarySink) Enabled(context.Context, slog.Level) bool { return true }
func (s *boundarySink) Handle(_ context.Context, r slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "endOfTitle" {
			s.ends = append(s.ends, a.Value.Int64())
		}
		return true
	})
	return nil
}
func (s *boundarySink) WithAttrs([]slog.Attr) slog.Handler { return s }
func (s *boundarySink) WithGroup(string) slog.Handler      { return s }

func TestParse_BoundaryMonotonic(t *testing.T) {
	sink := &boundarySink{}
	p := New(WithLogger(slog.New(sink)))
	p.MustAddHandler("resolution", `\b(\d{3,4}p)\b`, nil)
	p.MustAddHandler("year", `\b(20\d{2})\b`, nil)
	p.MustAddHandler("group", `^\[([^\]]+)\]`, nil, Remove(), SkipFromTitle())
	p.MustAddHandler("codec", `\bx26[45]\b`, nil, Remove())
	p.MustAddHandler("episode", `- (\d{2})\b`, nil)

	got := p.Parse("[Group] Show Name - 05 2021 x265 1080p")
	assert.Equal(t, "Show Name", got.Title())

	require.NotEmpty(t, sink.ends)
	for i := 1; i < len(sink.ends); i++ {
		assert.LessOrEqual(t, sink.ends[i], sink.ends[i-1], "boundary grew at step %d: %v", i, sink.ends)
	}
}

func TestParse_ConcurrentUse(t *testing.T) {
	p := New()
	p.MustAddHandler("year", `\b(20\d{2})\b`, nil)
	p.MustAddHandler("resolution", `\b(\d{3,4}p)\b`, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got := p.Parse("Movie.Title.2020.1080p")
				assert.Equal(t, "Movie Title", got.Title())
				assert.Equal(t, "2020", got.String("year"))
				assert.Equal(t, "1080p", got.String("resolution"))
			}
		}()
	}
	wg.Wait()
}

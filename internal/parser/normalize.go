package parser

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Normalizer is the ordered title cleanup cascade applied to the resolved
// title prefix. Its script-sensitive rules are compiled from a
// [ScriptRange] table; [CleanTitle] uses [NonEnglishRanges].
type Normalizer struct {
	disallowedStart  *regexp.Regexp
	disallowedEnd    *regexp.Regexp
	castCredit       *regexp2.Regexp
	leadingSegment   *regexp.Regexp
	trailingSegment  *regexp.Regexp
	altTitles        *regexp.Regexp
	embeddedScript   *regexp2.Regexp
	remainingLeading *regexp.Regexp
}

var (
	reMovieMarker     = regexp.MustCompile(`(?i)\[\(movie\)\]`)
	reTrailingBracket = regexp.MustCompile(`\]$`)
	reEmptyBrackets   = regexp.MustCompile(`\([\s\p{Zs}]*\)|\[[\s\p{Zs}]*\]|\{[\s\p{Zs}]*\}`)
	reRedundantEnd    = regexp.MustCompile(`[ \-:./\\]+$`)
)

// brackets are checked for balance in this order.
var brackets = [][2]string{{"{", "}"}, {"[", "]"}, {"(", ")"}}

var defaultNormalizer = NewNormalizer(NonEnglishRanges)

// NewNormalizer compiles the cascade for the given non-English ranges.
// It panics if a range produces an invalid pattern.
func NewNormalizer(ranges []ScriptRange) *Normalizer {
	ne := classOf(ranges)
	cyr := cyrillic.class()

	return &Normalizer{
		disallowedStart: regexp.MustCompile(`^[^A-Za-z0-9_` + ne + `#\[【★]+`),
		disallowedEnd:   regexp.MustCompile(`[ \-:/\\\[|{(#$&^]+$`),
		castCredit: regexp2.MustCompile(
			`\([^)]*[`+cyr+`][^)]*\)$|(?<=/.*)\(.*\)$`, regexp2.RE2),
		// One decoration only: the body may not cross a closing bracket.
		leadingSegment:  regexp.MustCompile(`^[\[【★][^\]】★]*[\]】★][ .]?(.+)`),
		trailingSegment: regexp.MustCompile(`(.+)[ .]?[\[【★].*[\]】★]$`),
		altTitles: regexp.MustCompile(
			`[^/|(]*[` + ne + `][^/|]*[/|]|[/|][^/|(]*[` + ne + `][^/|]*`),
		embeddedScript: regexp2.MustCompile(
			`(?<=[a-zA-Z][^`+ne+`]+)[`+ne+`].*[`+ne+`]|[`+ne+`].*[`+ne+`](?=[^`+ne+`]+[a-zA-Z])`,
			regexp2.RE2),
		remainingLeading: regexp.MustCompile(`^[^A-Za-z0-9_` + ne + `#]+`),
	}
}

// CleanTitle turns a raw title prefix into a presentable title using the
// default script table.
func CleanTitle(raw string) string { return defaultNormalizer.Clean(raw) }

// Clean applies the cascade. Order matters: later rules rely on what earlier
// ones exposed (e.g. a bracket left unbalanced by a removal).
func (n *Normalizer) Clean(raw string) string {
	s := dotsToSpaces(raw)
	s = strings.ReplaceAll(s, "_", " ")
	s = reMovieMarker.ReplaceAllString(s, "")
	s = n.disallowedStart.ReplaceAllString(s, "")
	s = n.disallowedEnd.ReplaceAllString(s, "")
	s = replace2(n.castCredit, s, "")

	// [Group] Title / Title [Tag] / 【...】 / ★...★ decorations.
	s = n.leadingSegment.ReplaceAllString(s, "${1}")
	s = n.trailingSegment.ReplaceAllString(s, "${1}")

	s = n.altTitles.ReplaceAllString(s, "")
	s = replace2(n.embeddedScript, s, "")

	s = n.remainingLeading.ReplaceAllString(s, "")
	s = reTrailingBracket.ReplaceAllString(s, "")
	s = reEmptyBrackets.ReplaceAllString(s, "")
	s = dropUnbalanced(s)

	s = dotsToSpaces(s)
	s = reRedundantEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// dotsToSpaces handles dot-delimited names: only when there is no space.
func dotsToSpaces(s string) string {
	if !strings.Contains(s, " ") && strings.Contains(s, ".") {
		return strings.ReplaceAll(s, ".", " ")
	}
	return s
}

// dropUnbalanced strips every character of a bracket kind whose open and
// close counts differ.
func dropUnbalanced(s string) string {
	for _, b := range brackets {
		if strings.Count(s, b[0]) != strings.Count(s, b[1]) {
			s = strings.NewReplacer(b[0], "", b[1], "").Replace(s)
		}
	}
	return s
}

// replace2 runs a regexp2 replacement, leaving s untouched on a match error.
func replace2(re *regexp2.Regexp, s, repl string) string {
	out, err := re.Replace(s, repl, -1, -1)
	if err != nil {
		return s
	}
	return out
}

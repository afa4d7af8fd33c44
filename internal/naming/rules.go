package naming

import (
	"github.com/dlclark/regexp2"

	"github.com/backmassage/titleparse/internal/parser"
	"github.com/backmassage/titleparse/internal/transform"
)

// Rule is one entry of the release catalog: a field name, its pattern and
// how the match is turned into a value. Several rules may share a field;
// by default only the first to match sets it.
type Rule struct {
	Field     string
	Pattern   *regexp2.Regexp
	Transform parser.Transform
	Options   []parser.Option
}

func rx(expr string) *regexp2.Regexp {
	return regexp2.MustCompile(expr, regexp2.IgnoreCase)
}

func rule(field, expr string, fn parser.Transform, opts ...parser.Option) Rule {
	return Rule{Field: field, Pattern: rx(expr), Transform: fn, Options: opts}
}

// flag is a rule whose field is true when the pattern matches.
func flag(field, expr string, opts ...parser.Option) Rule {
	return rule(field, expr, transform.Boolean, opts...)
}

// tagged records a fixed value in a list field that may collect several.
func tagged(field, expr string, v any, opts ...parser.Option) Rule {
	return rule(field, expr, transform.UniqConcat(transform.Value(v)), append(opts, parser.AllowOverwrite())...)
}

func codec(match string, _ any) any { return "x26" + match }

func channels(match string, _ any) any {
	return string(match[0]) + "." + string(match[len(match)-1])
}

func bitDepth(match string, _ any) any { return match + "bit" }

// Field names written by the catalog.
const (
	FieldGroup       = "group"
	FieldContainer   = "container"
	FieldEpisodeCode = "episodeCode"
	FieldResolution  = "resolution"
	FieldDate        = "date"
	FieldYearRange   = "yearRange"
	FieldYear        = "year"
	FieldRegion      = "region"
	FieldSource      = "source"
	FieldBitDepth    = "bitDepth"
	FieldHDR         = "hdr"
	FieldCodec       = "codec"
	FieldAudio       = "audio"
	FieldChannels    = "channels"
	FieldSeasons     = "seasons"
	FieldEpisodes    = "episodes"
	FieldVolumes     = "volumes"
	FieldLanguages   = "languages"
)

// flagFields lists the boolean fields in display order.
var flagFields = []string{
	"extended", "hardcoded", "proper", "repack", "retail", "remastered",
	"unrated", "complete", "dualAudio", "dubbed", "subbed",
}

// Rules is the ordered release catalog. Order matters: earlier rules see the
// title before later rules remove text from it, and SkipIfFirst rules only
// fire once some other field has anchored the end of the title.
var Rules = []Rule{
	rule(FieldGroup, `^\[([^\[\]]+)\]`, transform.None),
	rule(FieldContainer, `\.(mkv|mk3d|avi|mp4|m4v|mov|wmv|mpe?g|webm|ogm|ts|m2ts)$`, transform.Lowercase, parser.Remove()),
	rule(FieldEpisodeCode, `[\[(]((?=[A-Z]*\d)[A-Z0-9]{8})[\])](?=\.[a-z0-9]{1,5}$|$)`, transform.Uppercase, parser.Remove()),

	rule(FieldResolution, `\b(?:\d{3,4}[x×])?(\d{3,4}[pi]|4k|uhd)\b`, transform.Resolution),
	rule(FieldResolution, `\b\d{3,4}[x×](\d{3,4})\b`, transform.Resolution),

	rule(FieldDate, `\b((?:19|20)\d{2}[.\-_ ]\d{2}[.\-_ ]\d{2})\b`, transform.Date("2006-01-02"), parser.Remove()),
	rule(FieldDate, `\b(\d{2}[.\-_ ]\d{2}[.\-_ ](?:19|20)\d{2})\b`, transform.Date("02-01-2006"), parser.Remove()),
	rule(FieldYearRange, `\b((?:19\d|20[012])\d(?: ?[-–] ?(?:19\d|20[012])\d|[-–]\d{2}))\b`, transform.YearRange),
	rule(FieldYear, `(?!^)[(\[]?\b((?:19\d|20[012])\d)\b[)\]]?`, transform.Integer),

	flag("extended", `\bEXTENDED(?:[ .]CUT)?\b`),
	flag("hardcoded", `\b(?:HC|HARDCODED)\b`),
	flag("proper", `\b(?:REAL[ .])?PROPER\b`),
	flag("repack", `\b(?:REPACK|RERIP)\b`),
	flag("retail", `\bRetail\b`),
	flag("remastered", `\bRemaster(?:ed)?\b`),
	flag("unrated", `\b(?:UNRATED|UNCENSORED)\b`),
	rule(FieldRegion, `\bR\d\b`, transform.Uppercase, parser.SkipIfFirst()),

	rule(FieldSource, `\bW[EV]B[ .\-]?DL(?:Rip)?\b`, transform.Value("WEB-DL")),
	rule(FieldSource, `\bWEB[ .\-]?Rip\b`, transform.Value("WEBRip")),
	rule(FieldSource, `\b(?:BD|BR|Blu[ .\-]?Ray)[ .\-]?Rip\b`, transform.Value("BRRip")),
	rule(FieldSource, `\bBlu[ .\-]?Ray\b|\bBD(?:25|50)?\b`, transform.Value("BluRay")),
	rule(FieldSource, `\bHDTV\b`, transform.Value("HDTV")),
	rule(FieldSource, `\bDVD[ .\-]?Rip\b`, transform.Value("DVDRip")),
	rule(FieldSource, `\bDVD(?:R|5|9)?\b`, transform.Value("DVD")),
	rule(FieldSource, `\b(?:HD)?CAM(?:Rip)?\b`, transform.Value("CAM"), parser.SkipIfFirst()),
	rule(FieldSource, `\bWEB\b`, transform.Value("WEB"), parser.SkipIfFirst()),

	rule(FieldBitDepth, `\b(8|10|12)[ \-]?bits?\b`, bitDepth),
	tagged(FieldHDR, `\bHDR10(?:\+|Plus)`, "HDR10+"),
	tagged(FieldHDR, `\bHDR(?:10)?\b(?!\+)`, "HDR"),
	tagged(FieldHDR, `\b(?:DV|DoVi|Dolby[ .]?Vision)\b`, "DV"),

	rule(FieldCodec, `\b[xh][ .]?26([45])\b`, codec),
	rule(FieldCodec, `\bHEVC\b`, transform.Value("x265")),
	rule(FieldCodec, `\bAVC\b`, transform.Value("x264")),
	rule(FieldCodec, `\b(?:XviD|DivX)\b`, transform.Lowercase),
	rule(FieldCodec, `\bAV1\b`, transform.Value("av1")),

	rule(FieldAudio, `\bDTS[ .\-]?HD(?:[ .\-]?MA)?\b`, transform.Value("DTS-HD")),
	rule(FieldAudio, `\bTrueHD\b`, transform.Value("TrueHD")),
	rule(FieldAudio, `\b(?:E-?AC-?3|DDP|DD\+)`, transform.Value("EAC3")),
	rule(FieldAudio, `\bAC-?3\b`, transform.Value("AC3")),
	rule(FieldAudio, `\bDTS\b`, transform.Value("DTS")),
	rule(FieldAudio, `\bAAC`, transform.Value("AAC")),
	rule(FieldAudio, `\bFLAC\b`, transform.Value("FLAC")),
	rule(FieldAudio, `\bOpus\b`, transform.Value("Opus")),
	rule(FieldAudio, `\bMP3\b`, transform.Value("MP3")),
	rule(FieldAudio, `\bAtmos\b`, transform.Value("Atmos")),
	rule(FieldChannels, `(?<=\b(?:AAC|DDP|DD\+?|E-?AC-?3|AC-?3|DTS(?:-HD)?(?:[ .\-]?MA)?|TrueHD|FLAC|Opus|Atmos)[ .\-]?)([1-9][ .][01])\b`, channels),

	rule(FieldSeasons, `\bS(\d{1,2}(?:-S?\d{1,2})?)(?=E\d|\b)`, transform.Range),
	rule(FieldSeasons, `\bSeasons?[ .]?(\d{1,2}(?: ?[-~&] ?\d{1,2})?)\b`, transform.Range),
	rule(FieldSeasons, `\b(\d{1,2})x\d{2,3}\b`, transform.Range),
	rule(FieldEpisodes, `\bS\d{1,2}[ .]?E(\d{1,3}(?:-?E\d{1,3}|-\d{1,3})?)\b`, transform.Range),
	rule(FieldEpisodes, `\b\d{1,2}x(\d{2,3})\b`, transform.Range),
	rule(FieldEpisodes, `\bEp(?:isode)?[ .]?(\d{1,4})\b`, transform.Range),
	rule(FieldEpisodes, `(?<=\s-\s?)(?!(?:19|20)\d{2}\b)(\d{1,4})(?:v\d)?(?=[\s.\[(]|$)`, transform.Range),
	rule(FieldVolumes, `\bvol(?:s|umes?)?[ .]*(\d{1,3}(?: ?[-~] ?\d{1,3})?)\b`, transform.Range),
	flag("complete", `\bComplete(?:[ .](?:Series|Season|Collection))?\b`, parser.SkipIfFirst()),

	tagged(FieldLanguages, `\bMULTI(?:[ .\-]?(?:Lang|Audio|Sub)s?)?\b`, "multi", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:ENG|English)\b`, "en", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:FRENCH|TRUEFRENCH|VFF|VOSTFR)\b`, "fr", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:GER|GERMAN)\b`, "de", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:ITA|ITALIAN)\b`, "it", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:SPA|SPANISH|ESP|CASTELLANO)\b`, "es", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:JAP|JPN|JAPANESE)\b`, "ja", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:RUS|RUSSIAN)\b`, "ru", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:KOR|KOREAN)\b`, "ko", parser.SkipIfFirst()),
	tagged(FieldLanguages, `\b(?:CHI|CHINESE|CHS|CHT)\b`, "zh", parser.SkipIfFirst()),
	flag("dualAudio", `\bDual[ .\-]?Audio\b`),
	flag("dubbed", `\b(?:DUBBED|DUB)\b`),
	flag("subbed", `\bSUBBED\b`),
}

// reTrailingGroup matches a scene-style "-GROUP" suffix.
var reTrailingGroup = rx(`(?<=\S)-([A-Z0-9]{2,})$`)

// trailingGroup claims a "-GROUP" suffix as the release group. It only
// fires once some other release tag was recognized, so hyphenated titles
// like "Spider-Man" keep their last word.
func trailingGroup(ctx *parser.Context) *parser.Outcome {
	if ctx.Result.Has(FieldGroup) {
		return nil
	}
	anchored := false
	for field := range ctx.Matched {
		if field != FieldContainer {
			anchored = true
			break
		}
	}
	if !anchored {
		return nil
	}
	m, err := reTrailingGroup.FindStringMatch(ctx.Title)
	if err != nil || m == nil {
		return nil
	}
	ctx.Result[FieldGroup] = m.GroupByNumber(1).String()
	ctx.Matched[FieldGroup] = parser.Match{Raw: m.String(), Index: m.Index}
	return &parser.Outcome{RawMatch: m.String(), MatchIndex: m.Index}
}

// Register appends the release catalog to p.
func Register(p *parser.Parser) {
	for _, r := range Rules {
		p.MustAddHandler(r.Field, r.Pattern, r.Transform, r.Options...)
	}
	p.MustAddHandler(FieldGroup, parser.HandlerFunc(trailingGroup), nil)
}

// NewParser returns a parser with the release catalog registered.
func NewParser(opts ...parser.ParserOption) *parser.Parser {
	p := parser.New(opts...)
	Register(p)
	return p
}

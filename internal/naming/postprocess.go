package naming

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/backmassage/titleparse/internal/parser"
)

// Decode builds the typed view of a catalog result. Fields the catalog did
// not set stay zero. A release with seasons, episodes or an air date is TV;
// anything else is a movie.
func Decode(res parser.Result) Release {
	r := Release{
		Title:       res.Title(),
		Year:        res.Int(FieldYear),
		YearRange:   res.String(FieldYearRange),
		Date:        res.String(FieldDate),
		Seasons:     ints(res[FieldSeasons]),
		Episodes:    ints(res[FieldEpisodes]),
		Volumes:     ints(res[FieldVolumes]),
		Resolution:  res.String(FieldResolution),
		Source:      res.String(FieldSource),
		Codec:       res.String(FieldCodec),
		Audio:       res.String(FieldAudio),
		Channels:    res.String(FieldChannels),
		BitDepth:    res.String(FieldBitDepth),
		HDR:         strs(res[FieldHDR]),
		Languages:   strs(res[FieldLanguages]),
		Group:       res.String(FieldGroup),
		EpisodeCode: res.String(FieldEpisodeCode),
		Region:      res.String(FieldRegion),
		Container:   res.String(FieldContainer),
	}
	for _, f := range flagFields {
		if res.Bool(f) {
			r.Flags = append(r.Flags, f)
		}
	}

	r.MediaType = MediaMovie
	if len(r.Seasons) > 0 || len(r.Episodes) > 0 || r.Date != "" {
		r.MediaType = MediaTV
	}
	return r
}

func ints(v any) []int {
	xs, _ := v.([]int)
	return xs
}

func strs(v any) []string {
	xs, _ := v.([]any)
	if len(xs) == 0 {
		return nil
	}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if s, ok := x.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

var reStripParentSeason = regexp.MustCompile(
	`(?i)[\s_.\-]*(season[\s_.\-]*[0-9]{1,2}|s[0-9]{1,2}(e[0-9]{1,3})?)([\s].*)?$`)

// reSeasonHintFull matches "Season 02" or "Season_03" in a directory name.
var reSeasonHintFull = regexp.MustCompile(
	`(?i)(^|[^[:alnum:]])season[\s_.\-]*([0-9]{1,2})([^[:alnum:]]|$)`)

// reSeasonHintShort matches "S02" in a directory name.
var reSeasonHintShort = regexp.MustCompile(
	`(?i)(^|[^[:alnum:]])s([0-9]{1,2})([^[:alnum:]]|$)`)

// extractParentSeasonHint extracts a season number from a parent directory
// name like "Season 02" or "S2". Returns 0 if no season hint is found.
func extractParentSeasonHint(parent string) int {
	if m := reSeasonHintFull.FindStringSubmatch(parent); m != nil {
		return atoi(m[2])
	}
	if m := reSeasonHintShort.FindStringSubmatch(parent); m != nil {
		return atoi(m[2])
	}
	return 0
}

// titleFromParent derives a title from a directory name, dropping any
// season suffix.
func titleFromParent(parent string) string {
	return parser.CleanTitle(reStripParentSeason.ReplaceAllString(parent, ""))
}

// applyParentContext fills what the filename alone could not provide: an
// empty title falls back to the directory name, and a TV release without a
// season (or with the implicit season 1) takes the directory's season hint.
func applyParentContext(r Release, parent string) Release {
	if parent == "" || parent == "." {
		return r
	}
	if r.Title == "" {
		r.Title = titleFromParent(parent)
	}
	if r.MediaType != MediaTV {
		return r
	}
	hint := extractParentSeasonHint(parent)
	switch {
	case hint == 0:
	case len(r.Seasons) == 0:
		r.Seasons = []int{hint}
	case len(r.Seasons) == 1 && r.Seasons[0] == 1 && hint > 1:
		r.Seasons = []int{hint}
	}
	return r
}

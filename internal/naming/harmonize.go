package naming

import (
	"slices"
	"strings"
)

// YearIndex maps a folded TV title to the distinct years its releases
// carried within one batch. Some episodes of "Doctor.Who.2005.S01E01" style
// series omit the year; the index lets them join the year-tagged folder.
type YearIndex map[string][]int

// BuildYearIndex registers the year of every TV release that has one.
func BuildYearIndex(releases []Release) YearIndex {
	idx := make(YearIndex)
	for _, r := range releases {
		if r.MediaType != MediaTV || r.Title == "" || r.Year == 0 {
			continue
		}
		key := foldTitle(r.Title)
		if !slices.Contains(idx[key], r.Year) {
			idx[key] = append(idx[key], r.Year)
		}
	}
	return idx
}

// Harmonize fills in the year of a bare TV release when exactly one year
// was seen for its title. Ambiguous titles (a reboot next to the original)
// and releases that already have a year are returned unchanged.
func (idx YearIndex) Harmonize(r Release) Release {
	if r.MediaType != MediaTV || r.Year != 0 {
		return r
	}
	if years := idx[foldTitle(r.Title)]; len(years) == 1 {
		r.Year = years[0]
	}
	return r
}

func foldTitle(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// unsafePath matches characters that cannot appear in a path component on
// common filesystems.
var unsafePath = strings.NewReplacer(
	"/", "-", `\`, "-", ":", " -", "*", "", "?", "", `"`, "", "<", "", ">", "", "|", "-",
)

func safeName(s string) string {
	s = strings.TrimSpace(unsafePath.Replace(s))
	if s == "" {
		return "Unknown"
	}
	return s
}

// GetOutputPath builds the canonical library path for a release.
// container is the file extension without dot (e.g. "mkv", "mp4"); when
// empty the release's own container is used, then "mkv".
//
//	TV:    <outputDir>/<Show>/Season XX/<Show> - SXXEXX.<ext>
//	Daily: <outputDir>/<Show>/<Show> - YYYY-MM-DD.<ext>
//	Movie: <outputDir>/<Title (Year)>/<Title (Year)>.<ext>    (or <Title>/<Title>.<ext> if no year)
//
// Show is "<Title> (Year)" when the release carries a year (see
// [YearIndex.Harmonize]), else the bare title. Multi-episode releases are
// written as SXXEXX-EYY.
func GetOutputPath(r Release, outputDir, container string) string {
	if container == "" {
		container = r.Container
	}
	if container == "" {
		container = "mkv"
	}
	title := safeName(r.Title)

	if r.MediaType == MediaTV {
		show := title
		if r.Year != 0 {
			show = fmt.Sprintf("%s (%d)", title, r.Year)
		}
		if len(r.Seasons) == 0 && len(r.Episodes) == 0 && r.Date != "" {
			file := fmt.Sprintf("%s - %s.%s", show, r.Date, container)
			return filepath.Join(outputDir, show, file)
		}
		season := r.Season()
		if season == 0 && len(r.Episodes) > 0 {
			season = 1
		}
		s := fmt.Sprintf("%02d", season)
		e := episodeTag(r.Episodes)
		dir := filepath.Join(outputDir, show, "Season "+s)
		file := fmt.Sprintf("%s - S%s%s.%s", show, s, e, container)
		return filepath.Join(dir, file)
	}

	name := title
	if r.Year != 0 {
		name = fmt.Sprintf("%s (%d)", title, r.Year)
	}
	return filepath.Join(outputDir, name, name+"."+container)
}

func episodeTag(eps []int) string {
	switch len(eps) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("E%02d", eps[0])
	}
	return fmt.Sprintf("E%02d-E%02d", eps[0], eps[len(eps)-1])
}

package naming

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/backmassage/titleparse/internal/parser"
)

// MediaType distinguishes TV series from movies.
type MediaType string

const (
	MediaTV    MediaType = "tv"
	MediaMovie MediaType = "movie"
)

// Release is the typed view of a catalog parse result.
type Release struct {
	MediaType   MediaType `json:"mediaType" yaml:"mediaType"`
	Title       string    `json:"title" yaml:"title"`
	Year        int       `json:"year,omitempty" yaml:"year,omitempty"`
	YearRange   string    `json:"yearRange,omitempty" yaml:"yearRange,omitempty"`
	Date        string    `json:"date,omitempty" yaml:"date,omitempty"`
	Seasons     []int     `json:"seasons,omitempty" yaml:"seasons,omitempty"`
	Episodes    []int     `json:"episodes,omitempty" yaml:"episodes,omitempty"`
	Volumes     []int     `json:"volumes,omitempty" yaml:"volumes,omitempty"`
	Resolution  string    `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	Codec       string    `json:"codec,omitempty" yaml:"codec,omitempty"`
	Audio       string    `json:"audio,omitempty" yaml:"audio,omitempty"`
	Channels    string    `json:"channels,omitempty" yaml:"channels,omitempty"`
	BitDepth    string    `json:"bitDepth,omitempty" yaml:"bitDepth,omitempty"`
	HDR         []string  `json:"hdr,omitempty" yaml:"hdr,omitempty"`
	Languages   []string  `json:"languages,omitempty" yaml:"languages,omitempty"`
	Group       string    `json:"group,omitempty" yaml:"group,omitempty"`
	EpisodeCode string    `json:"episodeCode,omitempty" yaml:"episodeCode,omitempty"`
	Region      string    `json:"region,omitempty" yaml:"region,omitempty"`
	Container   string    `json:"container,omitempty" yaml:"container,omitempty"`
	Flags       []string  `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Season returns the first season, or 0 when none was found.
func (r Release) Season() int { return first(r.Seasons) }

// Episode returns the first episode, or 0 when none was found.
func (r Release) Episode() int { return first(r.Episodes) }

func first(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	return xs[0]
}

var defaultParser = sync.OnceValue(func() *parser.Parser { return NewParser() })

// ParseFilename parses a media filename with the release catalog.
// basename is the filename (with extension). parentPath is the directory
// path (used for title fallback and season hints); it may be empty.
func ParseFilename(basename, parentPath string) Release {
	_, rel := ParseWith(defaultParser(), basename, parentPath)
	return rel
}

// ParseWith is ParseFilename with a caller-supplied parser. It returns the
// raw result alongside the decoded release.
func ParseWith(p *parser.Parser, basename, parentPath string) (parser.Result, Release) {
	base, ext := SplitExt(basename)
	res := p.Parse(base)
	rel := Decode(res)
	if rel.Container == "" {
		rel.Container = ext
	}
	if parentPath != "" {
		rel = applyParentContext(rel, resolveParentContext(parentPath))
	}
	return res, rel
}

var mediaExts = map[string]bool{
	"mkv": true, "mk3d": true, "mp4": true, "m4v": true, "avi": true,
	"mov": true, "wmv": true, "mpg": true, "mpeg": true, "webm": true,
	"ts": true, "m2ts": true, "ogm": true, "ogv": true, "flv": true,
	"vob": true,
}

// IsMediaExt reports whether ext (without dot, any case) is a media container.
func IsMediaExt(ext string) bool { return mediaExts[strings.ToLower(ext)] }

// SplitExt splits a known media extension off name. The extension is
// returned lowercased and without its dot; unknown extensions are left on
// the name.
func SplitExt(name string) (base, ext string) {
	dot := filepath.Ext(name)
	if dot == "" || !IsMediaExt(dot[1:]) {
		return name, ""
	}
	return strings.TrimSuffix(name, dot), strings.ToLower(dot[1:])
}

// resolveParentContext determines the directory name used as naming context.
// If the immediate parent is a specials-like folder (Extras, NCOP, etc.),
// the grandparent is returned instead.
func resolveParentContext(parentPath string) string {
	if !strings.ContainsAny(parentPath, `/\`) {
		return parentPath
	}

	parent := filepath.Base(parentPath)
	if isSpecialsFolder(strings.ToLower(parent)) {
		grandparent := filepath.Base(filepath.Dir(parentPath))
		if grandparent != "" && grandparent != "." && grandparent != string(filepath.Separator) {
			return grandparent
		}
	}
	return parent
}

func isSpecialsFolder(name string) bool {
	switch name {
	case "extras", "extra", "specials", "bonus", "featurettes", "nc":
		return true
	}
	return strings.HasPrefix(name, "ncop") || strings.HasPrefix(name, "nced")
}

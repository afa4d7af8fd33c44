package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/titleparse/internal/parser"
)

func TestParseFilename(t *testing.T) {
	cases := []struct {
		name      string
		basename  string
		parentDir string
		want      Release
	}{
		{
			name: "scene movie", basename: "The.Matrix.1999.1080p.BluRay.x264-GROUP.mkv",
			parentDir: "/media/Movies",
			want: Release{
				MediaType: MediaMovie, Title: "The Matrix", Year: 1999,
				Resolution: "1080p", Source: "BluRay", Codec: "x264",
				Group: "GROUP", Container: "mkv",
			},
		},
		{
			name: "scene episode", basename: "Game.of.Thrones.S08E06.1080p.WEB.H264-MEMENTO.mkv",
			parentDir: "/tv/Game of Thrones/Season 08",
			want: Release{
				MediaType: MediaTV, Title: "Game of Thrones",
				Seasons: []int{8}, Episodes: []int{6},
				Resolution: "1080p", Source: "WEB", Codec: "x264",
				Group: "MEMENTO", Container: "mkv",
			},
		},
		{
			name: "fansub episode", basename: "[SubsPlease] Jujutsu Kaisen - 24 (1080p) [ABCD1234].mkv",
			want: Release{
				MediaType: MediaTV, Title: "Jujutsu Kaisen", Episodes: []int{24},
				Resolution: "1080p", Group: "SubsPlease", EpisodeCode: "ABCD1234",
				Container: "mkv",
			},
		},
		{
			name: "fansub title with inner bracket", basename: "[SubsPlease] Shingeki no Kyojin [Final] Part 2 - 05 (1080p) [ABCD1234].mkv",
			want: Release{
				MediaType: MediaTV, Title: "Shingeki no Kyojin [Final] Part 2", Episodes: []int{5},
				Resolution: "1080p", Group: "SubsPlease", EpisodeCode: "ABCD1234",
				Container: "mkv",
			},
		},
		{
			name: "remux tags", basename: "Dune Part Two 2024 2160p WEB-DL DDP5.1 Atmos DV HDR10+ H265-FLUX.mkv",
			want: Release{
				MediaType: MediaMovie, Title: "Dune Part Two", Year: 2024,
				Resolution: "2160p", Source: "WEB-DL", Codec: "x265",
				Audio: "EAC3", Channels: "5.1", HDR: []string{"HDR10+", "DV"},
				Group: "FLUX", Container: "mkv",
			},
		},
		{
			name: "language word leading the title", basename: "English.Patient.1996.720p.mkv",
			want: Release{
				MediaType: MediaMovie, Title: "English Patient", Year: 1996,
				Resolution: "720p", Container: "mkv",
			},
		},
		{
			name: "hyphenated title is not a group", basename: "Spider-Man.2002.mkv",
			want: Release{MediaType: MediaMovie, Title: "Spider-Man", Year: 2002, Container: "mkv"},
		},
		{
			name: "season pack", basename: "Show.Name.S01-S03.COMPLETE.720p.mkv",
			want: Release{
				MediaType: MediaTV, Title: "Show Name", Seasons: []int{1, 2, 3},
				Resolution: "720p", Container: "mkv", Flags: []string{"complete"},
			},
		},
		{
			name: "daily show", basename: "The.Daily.Show.2019.05.12.HDTV.x264.mkv",
			want: Release{
				MediaType: MediaTV, Title: "The Daily Show", Date: "2019-05-12",
				Source: "HDTV", Codec: "x264", Container: "mkv",
			},
		},
		{
			name: "multi episode", basename: "Show.S01E01E02.720p.mkv",
			want: Release{
				MediaType: MediaTV, Title: "Show", Seasons: []int{1}, Episodes: []int{1, 2},
				Resolution: "720p", Container: "mkv",
			},
		},
		{
			name: "title from parent", basename: "(2021).mkv",
			parentDir: "/media/Movies/Some Film",
			want:      Release{MediaType: MediaMovie, Title: "Some Film", Year: 2021, Container: "mkv"},
		},
		{
			name: "season from parent", basename: "Show - 05.mkv",
			parentDir: "/tv/Show/Season 2",
			want: Release{
				MediaType: MediaTV, Title: "Show", Seasons: []int{2}, Episodes: []int{5},
				Container: "mkv",
			},
		},
		{
			name: "unknown extension kept", basename: "Notes.txt",
			want: Release{MediaType: MediaMovie, Title: "Notes txt"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseFilename(tc.basename, tc.parentDir))
		})
	}
}

func TestRegister(t *testing.T) {
	p := parser.New()
	Register(p)

	names := p.Handlers()
	require.Len(t, names, len(Rules)+1)
	assert.Equal(t, FieldGroup, names[0])
	assert.Equal(t, FieldGroup, names[len(names)-1], "trailing group runs last")
}

func TestDecode(t *testing.T) {
	r := Decode(parser.Result{
		parser.TitleKey: "Show",
		FieldSeasons:    []int{2},
		FieldLanguages:  []any{"en", "fr"},
		"proper":        true,
		"repack":        false,
	})
	assert.Equal(t, MediaTV, r.MediaType)
	assert.Equal(t, 2, r.Season())
	assert.Equal(t, 0, r.Episode())
	assert.Equal(t, []string{"en", "fr"}, r.Languages)
	assert.Equal(t, []string{"proper"}, r.Flags)

	assert.Equal(t, MediaMovie, Decode(parser.Result{parser.TitleKey: "Film"}).MediaType)
}

func TestSplitExt(t *testing.T) {
	cases := []struct{ in, base, ext string }{
		{"Movie.2020.MKV", "Movie.2020", "mkv"},
		{"Show - 01.mp4", "Show - 01", "mp4"},
		{"Mr. Robot", "Mr. Robot", ""},
		{"noext", "noext", ""},
	}
	for _, tc := range cases {
		base, ext := SplitExt(tc.in)
		assert.Equal(t, tc.base, base, "SplitExt(%q)", tc.in)
		assert.Equal(t, tc.ext, ext, "SplitExt(%q)", tc.in)
	}
}

func TestResolveParentContext(t *testing.T) {
	assert.Equal(t, "Show", resolveParentContext("/tv/Show"))
	assert.Equal(t, "Show", resolveParentContext("/tv/Show/Extras"))
	assert.Equal(t, "Show", resolveParentContext("/tv/Show/NCOP"))
	assert.Equal(t, "Show", resolveParentContext("Show"))
}

func TestSeasonHint(t *testing.T) {
	cases := map[string]int{
		"Season 02":     2,
		"Season_3":      3,
		"Show S04":      4,
		"Show":          0,
		"Show Seasonal": 0,
	}
	for dir, want := range cases {
		assert.Equal(t, want, extractParentSeasonHint(dir), dir)
	}
	assert.Equal(t, "Show Name", titleFromParent("Show.Name.S02"))
	assert.Equal(t, "Show Name", titleFromParent("Show Name - Season 1"))
}

func TestGetOutputPath(t *testing.T) {
	cases := []struct {
		name string
		r    Release
		want string
	}{
		{
			name: "TV show",
			r:    Release{MediaType: MediaTV, Title: "My Show", Seasons: []int{1}, Episodes: []int{5}},
			want: "/output/My Show/Season 01/My Show - S01E05.mkv",
		},
		{
			name: "multi episode",
			r:    Release{MediaType: MediaTV, Title: "My Show", Seasons: []int{2}, Episodes: []int{1, 2, 3}},
			want: "/output/My Show/Season 02/My Show - S02E01-E03.mkv",
		},
		{
			name: "episodes without season",
			r:    Release{MediaType: MediaTV, Title: "Anime", Episodes: []int{24}},
			want: "/output/Anime/Season 01/Anime - S01E24.mkv",
		},
		{
			name: "TV show with year",
			r:    Release{MediaType: MediaTV, Title: "Doctor Who", Year: 2005, Seasons: []int{1}, Episodes: []int{1}},
			want: "/output/Doctor Who (2005)/Season 01/Doctor Who (2005) - S01E01.mkv",
		},
		{
			name: "daily",
			r:    Release{MediaType: MediaTV, Title: "The Daily Show", Date: "2019-05-12"},
			want: "/output/The Daily Show/The Daily Show - 2019-05-12.mkv",
		},
		{
			name: "Movie with year",
			r:    Release{MediaType: MediaMovie, Title: "The Matrix", Year: 1999},
			want: "/output/The Matrix (1999)/The Matrix (1999).mkv",
		},
		{
			name: "Movie without year",
			r:    Release{MediaType: MediaMovie, Title: "Cool Film", Container: "mp4"},
			want: "/output/Cool Film/Cool Film.mp4",
		},
		{
			name: "unsafe characters",
			r:    Release{MediaType: MediaMovie, Title: "Face/Off", Year: 1997},
			want: "/output/Face-Off (1997)/Face-Off (1997).mkv",
		},
		{
			name: "empty title",
			r:    Release{MediaType: MediaMovie},
			want: "/output/Unknown/Unknown.mkv",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetOutputPath(tc.r, "/output", ""))
		})
	}
	assert.Equal(t, "/o/X/X.mp4", GetOutputPath(Release{Title: "X", Container: "avi"}, "/o", "mp4"),
		"explicit container wins")
}

func TestCollisionResolver(t *testing.T) {
	cr := NewCollisionResolver()
	const path = "/output/Show/Season 01/Show - S01E01.mkv"

	assert.Equal(t, path, cr.Resolve("/input/a.mkv", path))
	assert.Equal(t, "/output/Show/Season 01/Show - S01E01 - dup1.mkv", cr.Resolve("/input/b.mkv", path))
	assert.Equal(t, "/output/Show/Season 01/Show - S01E01 - dup2.mkv", cr.Resolve("/input/c.mkv", path))

	// Same input claiming same output is idempotent.
	assert.Equal(t, path, cr.Resolve("/input/a.mkv", path))

	assert.Equal(t, "/output/Show/Season 01/show - s01e01 - dup3.mkv",
		cr.Resolve("/input/d.mkv", "/output/Show/Season 01/show - s01e01.mkv"),
		"paths differing only in case collide")
	assert.Equal(t, 4, cr.Claimed())
}

func TestYearIndex(t *testing.T) {
	tv := func(title string, year int) Release {
		return Release{MediaType: MediaTV, Title: title, Year: year, Seasons: []int{1}, Episodes: []int{1}}
	}
	idx := BuildYearIndex([]Release{
		tv("Doctor Who", 2005),
		tv("doctor  who", 2005),
		tv("Battlestar Galactica", 1978),
		tv("Battlestar Galactica", 2004),
		{MediaType: MediaMovie, Title: "Dune", Year: 2021},
	})

	assert.Equal(t, []int{2005}, idx["doctor who"])
	assert.Equal(t, 2005, idx.Harmonize(tv("Doctor Who", 0)).Year)
	assert.Equal(t, 0, idx.Harmonize(tv("Battlestar Galactica", 0)).Year, "ambiguous years")
	assert.Equal(t, 1963, idx.Harmonize(tv("Doctor Who", 1963)).Year, "own year wins")
	assert.Equal(t, 0, idx.Harmonize(Release{MediaType: MediaMovie, Title: "Dune"}).Year, "movies untouched")
	assert.NotContains(t, idx, "dune")
}

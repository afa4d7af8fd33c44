package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/titleparse/internal/config"
	"github.com/backmassage/titleparse/internal/parser"
)

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(parser.Result{"year": 1999, "title": "A", "codec": "x264"})
	assert.Equal(t, []string{"title", "codec", "year"}, keys)

	assert.Equal(t, []string{"a", "b"}, SortedKeys(parser.Result{"b": 1, "a": 2}))
	assert.Empty(t, SortedKeys(nil))
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"range", []int{1, 2, 3}, "1-3"},
		{"pair", []int{5, 6}, "5, 6"},
		{"gaps", []int{1, 3, 4}, "1, 3, 4"},
		{"single", []int{5}, "5"},
		{"list", []any{"HDR10+", "DV"}, "HDR10+, DV"},
		{"int", 1999, "1999"},
		{"bool", true, "true"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

var sampleRows = []Row{
	{
		Input:  "A.1999.x264.mkv",
		Fields: parser.Result{"year": 1999, "title": "A", "codec": "x264"},
		Output: "/out/A (1999)/A (1999).mkv",
	},
	{
		Input:  "[(",
		Fields: parser.Result{"title": ""},
	},
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatText, sampleRows))

	want := strings.Join([]string{
		"A.1999.x264.mkv",
		"  title   A",
		"  codec   x264",
		"  year    1999",
		"  output  /out/A (1999)/A (1999).mkv",
		"",
		"[(",
		"  title   (untitled)",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestRender_JSONKeepsTitleFirst(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatJSON, sampleRows))
	out := buf.String()

	assert.Less(t, strings.Index(out, `"title"`), strings.Index(out, `"codec"`))
	assert.Less(t, strings.Index(out, `"codec"`), strings.Index(out, `"year"`))

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "A.1999.x264.mkv", docs[0]["input"])
	assert.Equal(t, "/out/A (1999)/A (1999).mkv", docs[0]["output"])
	assert.NotContains(t, docs[1], "output")
	assert.Equal(t, map[string]any{"title": "A", "codec": "x264", "year": float64(1999)}, docs[0]["fields"])
}

func TestRender_YAMLKeepsTitleFirst(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatYAML, sampleRows))
	out := buf.String()

	assert.Less(t, strings.Index(out, "title:"), strings.Index(out, "codec:"))

	var docs []struct {
		Input  string         `yaml:"input"`
		Fields map[string]any `yaml:"fields"`
		Output string         `yaml:"output"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, 1999, docs[0].Fields["year"])
	assert.Equal(t, "", docs[1].Fields["title"])
}

func TestRender_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, config.FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRender_UnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, "xml", sampleRows))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Contains(t, buf.String(), `|_|`)
}

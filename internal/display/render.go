package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/titleparse/internal/config"
	"github.com/backmassage/titleparse/internal/parser"
	"github.com/backmassage/titleparse/internal/term"
)

// Row is one printed parse: the input name, its fields and, when path
// planning is on, the library path it maps to.
type Row struct {
	Input  string
	Fields parser.Result
	Output string
}

// Render writes rows to w in the given format.
func Render(w io.Writer, format config.Format, rows []Row) error {
	switch format {
	case config.FormatText:
		return renderText(w, rows)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(documents(rows))
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(documents(rows)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

func renderText(w io.Writer, rows []Row) error {
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(term.Cyan + r.Input + term.NC + "\n")

		keys := SortedKeys(r.Fields)
		width := len("output")
		for _, k := range keys {
			width = max(width, len(k))
		}
		for _, k := range keys {
			v := FormatValue(r.Fields[k])
			if k == parser.TitleKey {
				if v == "" {
					v = term.Yellow + "(untitled)" + term.NC
				} else {
					v = term.Green + v + term.NC
				}
			}
			fmt.Fprintf(&b, "  %-*s  %s\n", width, k, v)
		}
		if r.Output != "" {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, "output", term.Dim+r.Output+term.NC)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// document is the structured form of a Row.
type document struct {
	Input  string `json:"input" yaml:"input"`
	Fields fields `json:"fields" yaml:"fields"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

func documents(rows []Row) []document {
	out := make([]document, len(rows))
	for i, r := range rows {
		out[i] = document{Input: r.Input, Fields: fields(r.Fields), Output: r.Output}
	}
	return out
}

// fields marshals with the key order of [SortedKeys] rather than the
// encoders' default lexical order.
type fields parser.Result

func (f fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range SortedKeys(parser.Result(f)) {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f[k])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f fields) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range SortedKeys(parser.Result(f)) {
		val := new(yaml.Node)
		if err := val.Encode(f[k]); err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, val)
	}
	return n, nil
}

package parser

import "math"

// TitleKey is the reserved result key holding the cleaned title.
const TitleKey = "title"

// Result maps field names to transformed values. [Parser.Parse] always sets
// [TitleKey].
type Result map[string]any

// Title returns the cleaned title, or "" if none was set.
func (r Result) Title() string { return r.String(TitleKey) }

// String returns the value for key when it is a string.
func (r Result) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the value for key when it is an integer.
func (r Result) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// Bool returns the value for key when it is a bool.
func (r Result) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Has reports whether key holds a truthy value.
func (r Result) Has(key string) bool { return truthy(r[key]) }

// truthy mirrors the loose truth test handlers rely on: nil, "", false,
// numeric zero and NaN are false; everything else (including empty slices)
// is true.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	return true
}

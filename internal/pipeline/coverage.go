package pipeline

import (
	"cmp"
	"slices"

	"github.com/backmassage/titleparse/internal/parser"
)

// FieldCount is how many records of a run carried a field.
type FieldCount struct {
	Field string
	Count int
}

// Coverage counts, per field, the records whose result holds a truthy
// value for it. The title is excluded. Most common fields come first; ties
// sort by name.
func Coverage(records []Record) []FieldCount {
	counts := map[string]int{}
	for _, r := range records {
		for k := range r.Result {
			if k != parser.TitleKey && r.Result.Has(k) {
				counts[k]++
			}
		}
	}
	out := make([]FieldCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, FieldCount{Field: k, Count: n})
	}
	slices.SortFunc(out, func(a, b FieldCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Field, b.Field)
	})
	return out
}

package display

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/backmassage/titleparse/internal/parser"
)

// SortedKeys returns the keys of fields with the title first and the rest
// in lexical order.
func SortedKeys(fields parser.Result) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != parser.TitleKey {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	if _, ok := fields[parser.TitleKey]; ok {
		keys = slices.Insert(keys, 0, parser.TitleKey)
	}
	return keys
}

// FormatValue renders a field value for text output. Runs of three or more
// consecutive integers collapse to "first-last"; other lists join with ", ".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []int:
		if len(x) > 2 && consecutive(x) {
			return fmt.Sprintf("%d-%d", x[0], x[len(x)-1])
		}
		parts := make([]string, len(x))
		for i, n := range x {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ", ")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}

func consecutive(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] != xs[i-1]+1 {
			return false
		}
	}
	return true
}

// Package transform provides the value transformers used by field handlers.
//
// Every transformer has the shape func(match string, prev any) any, where
// prev is the field's current value (nil on first match). Returning nil, "",
// false or 0 vetoes the match even though the pattern matched.
package transform

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Func is the transformer signature; it is assignable to parser.Transform.
type Func = func(match string, prev any) any

// None returns the match unchanged.
func None(match string, _ any) any { return match }

// Value ignores the match and returns v.
func Value(v any) Func {
	return func(string, any) any { return v }
}

// Integer parses the match as a base-10 integer. Unparseable input vetoes.
func Integer(match string, _ any) any {
	n, err := strconv.Atoi(strings.TrimSpace(match))
	if err != nil {
		return nil
	}
	return n
}

// Boolean marks the field as present.
func Boolean(string, any) any { return true }

// Lowercase lowercases the match.
func Lowercase(match string, _ any) any { return strings.ToLower(match) }

// Uppercase uppercases the match.
func Uppercase(match string, _ any) any { return strings.ToUpper(match) }

// Array wraps the output of fn in a single-element slice.
func Array(fn Func) Func {
	return func(match string, prev any) any {
		v := fn(match, prev)
		if v == nil {
			return nil
		}
		return []any{v}
	}
}

// UniqConcat appends the output of fn to the previous slice value, skipping
// duplicates. The previous slice is copied, never mutated.
func UniqConcat(fn Func) Func {
	return func(match string, prev any) any {
		v := fn(match, prev)
		if v == nil {
			return nil
		}
		old, _ := prev.([]any)
		out := slices.Clone(old)
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
		return out
	}
}

var reNonDigits = regexp.MustCompile(`\D+`)

// Range reads every number in the match. Two ascending numbers expand to the
// inclusive range between them ("01-03" → [1 2 3]); otherwise the numbers
// must already be consecutive. Anything else vetoes.
func Range(match string, _ any) any {
	fields := strings.Fields(reNonDigits.ReplaceAllString(match, " "))
	if len(fields) == 0 {
		return nil
	}
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		nums = append(nums, n)
	}
	if len(nums) == 2 && nums[0] < nums[1] {
		out := make([]int, 0, nums[1]-nums[0]+1)
		for n := nums[0]; n <= nums[1]; n++ {
			out = append(out, n)
		}
		return out
	}
	for i := 1; i < len(nums); i++ {
		if nums[i] != nums[i-1]+1 {
			return nil
		}
	}
	return nums
}

// YearRange normalizes "2001-05" or "2001-2005" to "2001-2005". A two-digit
// end year takes the start's century, rolling over when needed ("1998-03" →
// "1998-2003"). A range that does not ascend vetoes.
func YearRange(match string, _ any) any {
	parts := strings.Fields(reNonDigits.ReplaceAllString(match, " "))
	if len(parts) != 2 || len(parts[0]) != 4 {
		return nil
	}
	start, end := parts[0], parts[1]
	s, err1 := strconv.Atoi(start)
	e, err2 := strconv.Atoi(end)
	if err1 != nil || err2 != nil {
		return nil
	}
	if len(end) == 2 {
		e += s / 100 * 100
		if e <= s {
			e += 100
		}
	}
	if s >= e {
		return nil
	}
	return fmt.Sprintf("%d-%d", s, e)
}

// Date parses the match with each layout in turn (after folding the
// separators ". _ /" to "-") and returns it as YYYY-MM-DD.
func Date(layouts ...string) Func {
	fold := strings.NewReplacer(".", "-", "_", "-", "/", "-", " ", "-")
	return func(match string, _ any) any {
		s := fold.Replace(strings.TrimSpace(match))
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(time.DateOnly)
			}
		}
		return nil
	}
}

var reResolutionDigits = regexp.MustCompile(`^\d{3,4}$`)

// Resolution normalizes resolution tokens: "4K"/"UHD" → "2160p",
// "1080P" → "1080p", bare "1080" → "1080p".
func Resolution(match string, _ any) any {
	s := strings.ToLower(strings.TrimSpace(match))
	switch {
	case s == "":
		return nil
	case s == "4k" || s == "uhd":
		return "2160p"
	case reResolutionDigits.MatchString(s):
		return s + "p"
	}
	return s
}

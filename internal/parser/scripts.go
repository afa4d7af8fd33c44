package parser

import (
	"fmt"
	"strings"
)

// ScriptRange is one contiguous block of code points treated as
// "non-English" by the title cleanup rules.
type ScriptRange struct {
	Script string
	Lo, Hi rune
}

// NonEnglishRanges lists the scripts whose text is treated as an alternate
// rendering of the title. The set is not exhaustive; extend it here.
var NonEnglishRanges = []ScriptRange{
	{"Japanese", 0x3040, 0x30ff},
	{"CJK Extension A", 0x3400, 0x4dbf},
	{"CJK Unified", 0x4e00, 0x9fff},
	{"CJK Compatibility", 0xf900, 0xfaff},
	{"Halfwidth Katakana", 0xff66, 0xff9f},
	{"Cyrillic", 0x0400, 0x04ff},
	{"Arabic", 0x0600, 0x06ff},
	{"Arabic Supplement", 0x0750, 0x077f},
	{"Kannada", 0x0c80, 0x0cff},
	{"Malayalam", 0x0d00, 0x0d7f},
	{"Thai", 0x0e00, 0x0e7f},
}

// cyrillic is the range used by the cast-credit rule.
var cyrillic = ScriptRange{"Cyrillic", 0x0400, 0x04ff}

// class renders r as a regex character-class fragment ("lo-hi"). The
// literal runes are valid in both RE2 and regexp2 syntax.
func (r ScriptRange) class() string { return fmt.Sprintf("%c-%c", r.Lo, r.Hi) }

// Contains reports whether c lies in r.
func (r ScriptRange) Contains(c rune) bool { return c >= r.Lo && c <= r.Hi }

// NonEnglishClass returns the body of a character class (without brackets)
// covering every range in [NonEnglishRanges].
func NonEnglishClass() string { return classOf(NonEnglishRanges) }

func classOf(ranges []ScriptRange) string {
	var b strings.Builder
	for _, r := range ranges {
		b.WriteString(r.class())
	}
	return b.String()
}

// IsNonEnglish reports whether c falls in any of [NonEnglishRanges].
func IsNonEnglish(c rune) bool {
	for _, r := range NonEnglishRanges {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

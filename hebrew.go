package hebvis

import (
	"strings"
	"unicode"
)

// Boundaries of the Unicode Hebrew block.
const (
	HebrewFirst rune = 0x0590
	HebrewLast  rune = 0x05FF
)

// Hebrew is the range table for the Unicode Hebrew block, including unassigned
// code-points and punctuation (maqaf, sof pasuq, geresh, gershayim).
// Hebrew presentation forms (U+FB1D … U+FB4F) are not part of it.
var Hebrew = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: uint16(HebrewFirst), Hi: uint16(HebrewLast), Stride: 1},
	},
}

// IsHebrew reports whether code-point r is part of the Hebrew block.
func IsHebrew(r rune) bool {
	return unicode.Is(Hebrew, r)
}

// ContainsHebrew reports whether s contains at least one Hebrew code-point.
func ContainsHebrew(s string) bool {
	return strings.IndexFunc(s, IsHebrew) >= 0
}

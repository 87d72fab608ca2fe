package reorder

import (
	"strings"
	"unicode/utf8"

	"github.com/scalecode-solutions/runeseg"
)

// reverseCodePoints reverses s code-point by code-point. Bytes which are not
// valid UTF-8 are moved as single units and are not altered.
func reverseCodePoints(s string) string {
	if len(s) < 2 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := len(s); i > 0; {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		b.WriteString(s[i-size : i])
		i -= size
	}
	return b.String()
}

// reverseGraphemes reverses s by grapheme clusters, i.e. user perceived
// characters. Combining marks stay behind their base letter.
func reverseGraphemes(s string) string {
	if len(s) < 2 {
		return s
	}
	clusters := make([]string, 0, len(s)/2)
	state := -1
	for rest := s; len(rest) > 0; {
		var cluster string
		cluster, rest, _, state = runeseg.FirstGraphemeClusterInString(rest, state)
		clusters = append(clusters, cluster)
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := len(clusters) - 1; i >= 0; i-- {
		b.WriteString(clusters[i])
	}
	return b.String()
}

package segment

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/hebvis"
	"github.com/npillmayer/schuko/tracing"
)

// A Token is a maximal run of either whitespace or non-whitespace code-points
// of a single line of text.
//
// Tokens are read-only. Concatenating the texts of all tokens of a line, in
// order of their position, yields the line.
type Token struct {
	Pos    int    // position among the tokens of the line, starting at 0
	Text   string // the run itself, never empty
	Hebrew bool   // does the run contain a Hebrew code-point?
	Space  bool   // is this a run of whitespace?
}

// Simple stringer for debugging purposes.
func (tok Token) String() string {
	switch {
	case tok.Space:
		return fmt.Sprintf("[%d ws %q]", tok.Pos, tok.Text)
	case tok.Hebrew:
		return fmt.Sprintf("[%d heb %q]", tok.Pos, tok.Text)
	}
	return fmt.Sprintf("[%d %q]", tok.Pos, tok.Text)
}

// A Tokenizer splits a line of text into tokens, i.e. alternating runs of
// whitespace and non-whitespace.
//
// The interface is similar to bufio.Scanner: successive calls to Next() step
// through the tokens of the line, which are available through Token() or Text().
//
//   tokenizer := segment.NewTokenizer("Hello World")
//   for tokenizer.Next() {
//       // do something with tokenizer.Token()
//   }
//
// Tokenizers operate on Go strings and never copy runes. Byte sequences which
// are not valid UTF-8 end up in non-whitespace runs, unchanged.
type Tokenizer struct {
	line       string
	start, end int  // byte boundaries of the current token
	pos        int  // position of the current token
	hebrew     bool // current token contains Hebrew
	space      bool // current token is whitespace
}

// NewTokenizer creates a tokenizer for a line of text.
// The line should not contain line terminators; if it does, they are
// treated as whitespace.
func NewTokenizer(line string) *Tokenizer {
	t := &Tokenizer{}
	t.Init(line)
	return t
}

// Init (re-)initializes a Tokenizer for a line of text.
func (t *Tokenizer) Init(line string) {
	t.line = line
	t.start, t.end = 0, 0
	t.pos = -1
	t.hebrew, t.space = false, false
}

// Next advances the Tokenizer to the next token, which will then be available
// through Token() or Text(). It returns false at the end of the line.
func (t *Tokenizer) Next() bool {
	if t.end >= len(t.line) {
		return false
	}
	t.start = t.end
	r, size := utf8.DecodeRuneInString(t.line[t.start:])
	t.space = unicode.IsSpace(r)
	t.hebrew = hebvis.IsHebrew(r)
	i := t.start + size
	for i < len(t.line) {
		r, size = utf8.DecodeRuneInString(t.line[i:])
		if unicode.IsSpace(r) != t.space {
			break
		}
		t.hebrew = t.hebrew || hebvis.IsHebrew(r)
		i += size
	}
	t.end = i
	t.pos++
	return true
}

// Token returns the most recent token found by a call to Next().
func (t *Tokenizer) Token() Token {
	if t.pos < 0 {
		return Token{}
	}
	return Token{
		Pos:    t.pos,
		Text:   t.line[t.start:t.end],
		Hebrew: t.hebrew,
		Space:  t.space,
	}
}

// Text returns the text of the most recent token found by a call to Next().
func (t *Tokenizer) Text() string {
	return t.line[t.start:t.end]
}

// Tokenize splits a line into tokens.
func Tokenize(line string) []Token {
	return AppendTokens(nil, line)
}

// AppendTokens splits a line into tokens and appends them to dst.
// Token positions start at 0, independent of the length of dst.
func AppendTokens(dst []Token, line string) []Token {
	t := Tokenizer{}
	t.Init(line)
	for t.Next() {
		dst = append(dst, t.Token())
	}
	if CT().GetTraceLevel() >= tracing.LevelDebug {
		CT().Debugf("tokenized line of length %d into %d tokens", len(line), t.pos+1)
	}
	return dst
}

// Join concatenates the texts of tokens, in order.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

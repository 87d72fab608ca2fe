/*
Package reorder converts lines of text from visual to logical order.

Within every Hebrew segment of a line (see package segment) the characters of
each Hebrew word are reversed, and then the order of the Hebrew words is
reversed. Whitespace tokens keep their positions, and so do all tokens
outside of Hebrew segments:

   visual   בוט רקוב Good morning
   logical  בוקר טוב Good morning

Lines without Hebrew code-points are returned unchanged.

Word reversal works on code-points by default. Hebrew text carrying points
(niqqud) or cantillation marks has combining marks following their base
letters; reversing by code-point moves these marks in front of the letter.
Option Graphemes(true) reverses by user-perceived characters instead, keeping
marks attached to their base letter.

Reorderers hold no mutable state and may be shared between goroutines.

BSD License

Copyright (c) 2021, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package reorder

import (
	"strings"

	"github.com/npillmayer/hebvis"
	"github.com/npillmayer/hebvis/segment"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global core tracer
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Reorderer converts lines from visual to logical order.
// The zero value reverses words by code-point.
type Reorderer struct {
	reverse func(string) string // reversal of a single word
}

// Option configures a Reorderer.
type Option func(*Reorderer)

// Graphemes selects reversal of Hebrew words by grapheme cluster (true) or by
// code-point (false, default).
func Graphemes(b bool) Option {
	return func(r *Reorderer) {
		if b {
			r.reverse = reverseGraphemes
		} else {
			r.reverse = reverseCodePoints
		}
	}
}

// New creates a Reorderer.
func New(opts ...Option) *Reorderer {
	r := &Reorderer{reverse: reverseCodePoints}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var std = New()

// TransformLine converts a single line from visual to logical order,
// reversing Hebrew words by code-point. Lines without Hebrew are returned
// unchanged.
//
// line should not contain line terminators.
func TransformLine(line string) string {
	return std.Line(line)
}

// Line converts a single line from visual to logical order.
func (r *Reorderer) Line(line string) string {
	if strings.TrimSpace(line) == "" || !hebvis.ContainsHebrew(line) {
		return line
	}
	ws := borrowWorkspace()
	defer ws.release()
	ws.tokens = segment.AppendTokens(ws.tokens, line)
	ws.segments = segment.AppendSegments(ws.segments, ws.tokens)
	ws.texts = ws.originalTexts()
	for _, seg := range ws.segments {
		r.reorderSegment(seg, ws.texts)
	}
	out := Reassemble(ws.texts, len(line))
	if T().GetTraceLevel() >= tracing.LevelDebug {
		T().Debugf("reordered %d segments of %d tokens", len(ws.segments), len(ws.tokens))
	}
	return out
}

// ReorderSegment writes the logical-order texts of the tokens of seg into
// texts, indexed by token position. Words are reversed by code-point.
// Entries of texts for whitespace tokens and for tokens of other segments
// are left as they are.
//
// texts must have an entry for every token position of seg.
func ReorderSegment(seg segment.Segment, texts []string) {
	std.reorderSegment(seg, texts)
}

func (r *Reorderer) reorderSegment(seg segment.Segment, texts []string) {
	if seg.Kind != segment.HebrewSegment {
		return
	}
	rev := r.reverse
	if rev == nil {
		rev = reverseCodePoints
	}
	// The i-th Hebrew token receives the reversed text of the i-th Hebrew token
	// from the end. We walk inwards from both ends, skipping whitespace.
	lo, hi := 0, len(seg.Tokens)-1
	for lo <= hi {
		if !seg.Tokens[lo].Hebrew {
			lo++
			continue
		}
		if !seg.Tokens[hi].Hebrew {
			hi--
			continue
		}
		left, right := seg.Tokens[lo], seg.Tokens[hi]
		texts[left.Pos], texts[right.Pos] = rev(right.Text), rev(left.Text)
		lo++
		hi--
	}
}

// Reassemble concatenates token texts in order of position.
// sizeHint pre-allocates the result and may be 0.
func Reassemble(texts []string, sizeHint int) string {
	var b strings.Builder
	b.Grow(sizeHint)
	for _, s := range texts {
		b.WriteString(s)
	}
	return b.String()
}

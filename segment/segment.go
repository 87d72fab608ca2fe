/*
Package segment splits a line of text into tokens and groups tokens into segments.

Tokens

A token is a maximal run of whitespace or of non-whitespace code-points. Every
line is split losslessly: concatenating the tokens yields the line, no token
is empty, and whitespace and non-whitespace runs never mix. A token is flagged
as Hebrew if any of its code-points is in the Hebrew block.

Segments

Segments are the units of reordering. A Hebrew segment starts with a Hebrew
token and extends over all following whitespace and Hebrew tokens, up to
the first non-whitespace token without Hebrew. Every token not absorbed by
a Hebrew segment forms a segment of its own (kind OtherSegment).

   token   םולש ␣ Hello ␣ םלוע ␣ World
   segment └─H──┘ └─O─┘ O └─H──┘ └─O─┘

Whitespace is absorbed only by a Hebrew segment which has already been
started. Leading whitespace is therefore never part of a Hebrew segment,
whereas whitespace trailing a Hebrew word is.

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
package segment

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// Kind tells Hebrew segments from other segments.
type Kind int8

// Segment kinds.
const (
	OtherSegment  Kind = iota // a single token, left untouched
	HebrewSegment             // Hebrew words and the whitespace in between
)

func (k Kind) String() string {
	if k == HebrewSegment {
		return "Hebrew"
	}
	return "Other"
}

// A Segment is a contiguous run of tokens of a line.
// Segments of a line partition its tokens: every token belongs to exactly one
// segment, and segments are ordered by token position.
type Segment struct {
	Kind   Kind
	Tokens []Token // shares the backing array of the token slice given to Build
}

// Simple stringer for debugging purposes.
func (seg Segment) String() string {
	var b strings.Builder
	b.WriteString(seg.Kind.String())
	b.WriteByte('{')
	for i, tok := range seg.Tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	b.WriteByte('}')
	return b.String()
}

// Text returns the original text of the segment.
func (seg Segment) Text() string {
	return Join(seg.Tokens)
}

// Build groups tokens into segments, in a single left-to-right scan.
func Build(tokens []Token) []Segment {
	return AppendSegments(nil, tokens)
}

// AppendSegments groups tokens into segments and appends them to dst.
// The segments share the backing array of tokens.
func AppendSegments(dst []Segment, tokens []Token) []Segment {
	open := -1 // start of the Hebrew segment under construction, if any
	for i, tok := range tokens {
		if tok.Hebrew || (open >= 0 && tok.Space) {
			if open < 0 {
				open = i
			}
			continue
		}
		if open >= 0 {
			dst = append(dst, Segment{Kind: HebrewSegment, Tokens: tokens[open:i:i]})
			open = -1
		}
		dst = append(dst, Segment{Kind: OtherSegment, Tokens: tokens[i : i+1 : i+1]})
	}
	if open >= 0 {
		dst = append(dst, Segment{Kind: HebrewSegment, Tokens: tokens[open:len(tokens):len(tokens)]})
	}
	if CT().GetTraceLevel() >= tracing.LevelDebug {
		CT().Debugf("segments: %s", dumpSegments(dst))
	}
	return dst
}

func dumpSegments(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(fmt.Sprintf("%v ", seg))
	}
	return b.String()
}

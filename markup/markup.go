/*
Package markup applies the visual-to-logical conversion to HTML documents.

A document is split lexically into markup spans and text spans. A markup span
is a single construct from '<' up to the next '>'; text spans are everything
in between. Markup is copied verbatim and never inspected. Text spans
containing Hebrew are converted line by line with package reorder.

The split is lexical, not a HTML parse: an unmatched '<' simply leaves the
rest of the document as text. Comments or scripts containing '>' are split
at the first '>', which may expose part of them to conversion if they contain
Hebrew.

Package markup also provides the rewriting of metadata which goes along with
a conversion to logical order and UTF-8: charset declarations, the direction
attribute and the language attribute of the <html> tag.

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
package markup

import (
	"regexp"
	"strings"

	"github.com/npillmayer/hebvis"
	"github.com/npillmayer/hebvis/reorder"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global core tracer
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Config holds the settings for converting a document.
type Config struct {
	SourceEncoding    string // hint for decoding the source document, see package charset
	ConvertVisualText bool   // convert text from visual to logical order; false passes text through
	Graphemes         bool   // reverse Hebrew words by grapheme cluster instead of code-point
	Language          string // value of the lang attribute to insert; empty means DefaultLanguage
}

// DefaultSourceEncoding is the encoding assumed for legacy Hebrew documents.
const DefaultSourceEncoding = "iso-8859-8"

// DefaultConfig returns the default settings: ISO-8859-8 sources, visual text
// conversion enabled, code-point reversal.
func DefaultConfig() Config {
	return Config{
		SourceEncoding:    DefaultSourceEncoding,
		ConvertVisualText: true,
		Language:          DefaultLanguage,
	}
}

// A Span is either a single markup construct or a run of text between markup.
type Span struct {
	Markup bool
	Text   string
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Spans splits a document into alternating text and markup spans.
// Concatenating the texts of all spans yields the document. There are no
// empty text spans.
func Spans(doc string) []Span {
	tags := tagPattern.FindAllStringIndex(doc, -1)
	spans := make([]Span, 0, 2*len(tags)+1)
	last := 0
	for _, loc := range tags {
		if loc[0] > last {
			spans = append(spans, Span{Text: doc[last:loc[0]]})
		}
		spans = append(spans, Span{Markup: true, Text: doc[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(doc) {
		spans = append(spans, Span{Text: doc[last:]})
	}
	return spans
}

// TransformDocument converts the text of a document from visual to logical
// order, leaving markup untouched. If cfg.ConvertVisualText is false, doc is
// returned unchanged.
func TransformDocument(doc string, cfg Config) string {
	if !cfg.ConvertVisualText {
		return doc
	}
	r := reorder.New(reorder.Graphemes(cfg.Graphemes))
	var b strings.Builder
	b.Grow(len(doc))
	converted := 0
	for _, span := range Spans(doc) {
		if span.Markup || !hebvis.ContainsHebrew(span.Text) {
			b.WriteString(span.Text)
			continue
		}
		b.WriteString(transformText(span.Text, r))
		converted++
	}
	T().Debugf("converted %d text spans to logical order", converted)
	return b.String()
}

// transformText converts a text span line by line. Lines end at '\n'; a
// preceding '\r' is trailing whitespace of its line and stays in place.
func transformText(text string, r *reorder.Reorderer) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = r.Line(line)
	}
	return strings.Join(lines, "\n")
}

/*
Package hebvis is about converting Hebrew text from visual order to logical order.

Description

Legacy systems without support for bidirectional text stored Hebrew the way it
appeared on screen: left to right, the last letter of a word first, the last
word of a phrase first. This is called "visual order". Modern renderers expect
text in "logical order", i.e. in the order in which it is read, and apply the
Unicode bidirectional algorithm themselves. Feeding visual Hebrew to a modern
renderer therefore displays every Hebrew word mirrored.

Converting visual text back to logical order is not a full bidi algorithm.
There are no embedding levels and no numeric shaping, just a binary
classification of code-points: Hebrew (U+0590 … U+05FF) or not.
Latin words, numbers, punctuation and markup keep their position.

Contents

Base package hebvis provides the code-point classifier. The algorithm is
split up into sub-packages:

   segment   – splits a line into whitespace and non-whitespace tokens and
               groups tokens into Hebrew and other segments
   reorder   – mirrors Hebrew segments and reassembles lines
   markup    – applies the line transformation to the text spans of a
               HTML document, plus rewriting of charset and direction metadata
   charset   – detection and decoding of legacy Hebrew 8-bit encodings
   convert   – conversion of files and directory trees

Command hebvis in cmd/hebvis is the command-line front end.

Every function of the core (segment, reorder, markup) is a pure function of its
input. Lines and documents may be converted concurrently.

Example

The line

   םולש Hello םלוע World

is stored in visual order. After conversion it reads

   שלום Hello עולם World

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
package hebvis

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

/*
Package charset detects and decodes the byte encoding of legacy Hebrew
documents.

Hebrew web pages of the visual era have mostly been encoded in ISO-8859-8 or
in Windows-1255. Detection is deliberately shallow: the first kilobyte of a
document is searched for a charset declaration, and everything which is not
clearly UTF-8 or a Hebrew code page is taken to be ISO-8859-8.

Encoding labels are resolved with the WHATWG label table of
golang.org/x/net/html/charset, so every label a browser would accept
("hebrew", "iso-8859-8-i", "cp1255", ...) may be given by the user.

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
package charset

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// T traces to the global core tracer
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Encoding labels produced by Detect.
const (
	Default     = "iso-8859-8" // assumed whenever nothing better is known
	Windows1255 = "windows-1255"
	UTF8        = "utf-8"
)

// ErrUnknownEncoding is returned for encoding labels which cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

// DetectLimit is the number of leading bytes Detect inspects.
const DetectLimit = 1024

var declaration = regexp.MustCompile(`(?i)charset\s*=\s*["']?([^"'>\s]+)`)

// Detect guesses the encoding of a document from a charset declaration in its
// first DetectLimit bytes. It returns one of Default, Windows1255 and UTF8.
func Detect(head []byte) string {
	if len(head) > DetectLimit {
		head = head[:DetectLimit]
	}
	m := declaration.FindSubmatch(head)
	if m == nil {
		T().Debugf("no charset declaration found, assuming %s", Default)
		return Default
	}
	label := strings.ToLower(string(m[1]))
	T().Debugf("found charset declaration %q", label)
	switch {
	case strings.Contains(label, "iso-8859-8"), label == "hebrew":
		return Default
	case strings.Contains(label, "windows-1255"):
		return Windows1255
	case strings.Contains(label, "utf-8"):
		return UTF8
	}
	return Default
}

// Resolve chooses the encoding to decode a document with. An explicitly
// requested encoding other than Default wins over the detected one.
func Resolve(requested, detected string) string {
	if requested != "" && !strings.EqualFold(requested, Default) {
		return requested
	}
	if detected == "" {
		return Default
	}
	return detected
}

// Lookup returns the encoding for a label. The empty label denotes Default.
func Lookup(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	switch strings.ToLower(label) {
	case "":
		return charmap.ISO8859_8, nil
	case UTF8, "utf8":
		return unicode.UTF8, nil
	}
	enc, name := htmlcharset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	T().Debugf("encoding label %q resolves to %s", label, name)
	return enc, nil
}

// Decode reads r completely and decodes it from the encoding named by label.
// Byte sequences which are invalid in the source encoding are replaced by
// U+FFFD.
func Decode(r io.Reader, label string) (string, error) {
	enc, err := Lookup(label)
	if err != nil {
		return "", err
	}
	b, err := io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", label, err)
	}
	return string(b), nil
}

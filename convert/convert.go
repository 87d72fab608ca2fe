/*
Package convert converts legacy Hebrew HTML files to UTF-8 and logical order.

A single file is read, its encoding is detected (or taken from the options),
the document is decoded, converted with package markup and written as UTF-8.
Directories are searched recursively for HTML documents, which are converted
concurrently; the relative layout of the input directory is mirrored in the
output directory.

Progress messages for the user are written to Options.Out; diagnostics go to
the core tracer.

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
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/npillmayer/hebvis/charset"
	"github.com/npillmayer/hebvis/markup"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global core tracer
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Errors for input paths which cannot be converted.
var (
	ErrNotFound     = errors.New("input path does not exist")
	ErrNotADocument = errors.New("input is neither a file nor a directory")
	ErrNoOutput     = errors.New("output is not a directory")
)

// Options control the conversion of files.
type Options struct {
	markup.Config
	Backup  bool      // keep a copy with suffix BackupSuffix when converting in place
	DryRun  bool      // report what would be converted, but write nothing
	Verbose bool      // report every step
	Workers int       // concurrent conversions for directories; < 1 means runtime.NumCPU()
	Out     io.Writer // progress messages; nil discards them
}

// BackupSuffix is appended to the name of backup files.
const BackupSuffix = ".bak"

// DefaultOptions returns options with markup.DefaultConfig and one worker per
// CPU.
func DefaultOptions() Options {
	return Options{
		Config:  markup.DefaultConfig(),
		Workers: runtime.NumCPU(),
	}
}

func (opts Options) printf(format string, args ...interface{}) {
	if opts.Out != nil {
		fmt.Fprintf(opts.Out, format, args...)
	}
}

func (opts Options) workers() int {
	if opts.Workers < 1 {
		return runtime.NumCPU()
	}
	return opts.Workers
}

// Document converts the raw bytes of a HTML document. The source encoding is
// resolved from opts.SourceEncoding and the charset declaration of the
// document. It returns the converted document and the encoding it has been
// decoded from.
func Document(raw []byte, opts Options) (string, string, error) {
	enc := charset.Resolve(opts.SourceEncoding, charset.Detect(raw))
	doc, err := charset.Decode(bytes.NewReader(raw), enc)
	if err != nil {
		return "", enc, err
	}
	cfg := opts.Config
	cfg.Language = resolveLanguage(cfg.Language)
	return markup.Convert(doc, cfg), enc, nil
}

var resolveLanguage = markup.ResolveLanguage

// Run converts the file or directory in. If out is empty, conversion happens
// in place. For a single file the returned report counts one file.
func Run(ctx context.Context, in, out string, opts Options) (Report, error) {
	opts.Language = resolveLanguage(opts.Language)
	info, err := os.Stat(in)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %s", ErrNotFound, in)
		}
		return Report{}, err
	}
	switch {
	case info.Mode().IsRegular():
		if out == "" {
			out = in
		}
		if err := ConvertFile(in, out, opts); err != nil {
			return Report{Failed: 1, Failures: []Failure{{Path: in, Err: err}}}, err
		}
		if opts.DryRun {
			return Report{}, nil
		}
		opts.printf("Successfully converted: %s\n", in)
		return Report{Converted: 1}, nil
	case info.IsDir():
		return ConvertTree(ctx, in, out, opts)
	}
	return Report{}, fmt.Errorf("%w: %s", ErrNotADocument, in)
}

// ConvertFile converts the document in to UTF-8 and logical order and writes
// it to out, which may equal in. Parent directories of out are created as
// needed.
func ConvertFile(in, out string, opts Options) error {
	if opts.DryRun {
		opts.printf("Would convert: %s -> %s\n", in, out)
		return nil
	}
	raw, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", in, err)
	}
	inPlace := samePath(in, out)
	if opts.Backup && inPlace {
		backup := in + BackupSuffix
		if err := writeFileLike(backup, raw, in); err != nil {
			return fmt.Errorf("creating backup of %s: %w", in, err)
		}
		if opts.Verbose {
			opts.printf("Created backup: %s\n", backup)
		}
	}
	doc, enc, err := Document(raw, opts)
	if err != nil {
		return fmt.Errorf("converting %s: %w", in, err)
	}
	if opts.Verbose {
		action := "Converting"
		if !opts.ConvertVisualText {
			action = "Converting encoding only for"
		}
		opts.printf("%s %s (encoding: %s) -> %s\n", action, in, enc, out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", out, err)
	}
	if err := writeFileLike(out, []byte(doc), in); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	T().Infof("converted %s (encoding: %s) -> %s", in, enc, out)
	return nil
}

// writeFileLike writes data to path, using the permissions of file model.
func writeFileLike(path string, data []byte, model string) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(model); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, data, perm)
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ia, erra := os.Stat(a)
	ib, errb := os.Stat(b)
	return erra == nil && errb == nil && os.SameFile(ia, ib)
}

// --- Directories -----------------------------------------------------------

// Failure records a file which could not be converted.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes the conversion of a directory.
type Report struct {
	Converted int
	Failed    int
	Failures  []Failure
}

func (r Report) String() string {
	return fmt.Sprintf("%d files converted, %d failed", r.Converted, r.Failed)
}

type job struct {
	in, out string
}

type result struct {
	job
	err error
}

// ConvertTree converts every HTML document below the directory in. Output
// files are written to the same relative paths below out; an empty out
// converts in place. Failing files do not stop the conversion; they are listed
// in the report. ConvertTree stops handing out files when ctx is done and
// returns ctx.Err().
func ConvertTree(ctx context.Context, in, out string, opts Options) (Report, error) {
	var report Report
	docs, err := FindDocuments(in)
	if err != nil {
		return report, err
	}
	if len(docs) == 0 {
		opts.printf("No HTML files found in %s\n", in)
		return report, nil
	}
	if out == "" {
		out = in
	} else if info, err := os.Stat(out); err == nil && !info.IsDir() {
		return report, fmt.Errorf("%w: %s", ErrNoOutput, out)
	}
	opts.Language = resolveLanguage(opts.Language) // once, not per document
	T().Infof("converting %d documents below %s with %d workers", len(docs), in, opts.workers())
	var mx sync.Mutex // serializes progress messages
	locked := opts
	locked.Out = &syncWriter{w: opts.Out, mx: &mx}
	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup
	for w := 0; w < opts.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- result{job: j, err: ConvertFile(j.in, j.out, locked)}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, doc := range docs {
			rel, err := filepath.Rel(in, doc)
			if err != nil {
				rel = filepath.Base(doc)
			}
			select {
			case jobs <- job{in: doc, out: filepath.Join(out, rel)}:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()
	for r := range results {
		if r.err != nil {
			T().Errorf("%v", r.err)
			report.Failed++
			report.Failures = append(report.Failures, Failure{Path: r.in, Err: r.err})
			continue
		}
		if opts.DryRun {
			continue
		}
		report.Converted++
		if !opts.Verbose {
			locked.printf("Converted: %s\n", r.in)
		}
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if !opts.DryRun {
		opts.printf("\nConversion complete: %s\n", report)
	}
	return report, nil
}

type syncWriter struct {
	w  io.Writer
	mx *sync.Mutex
}

func (sw *syncWriter) Write(p []byte) (int, error) {
	if sw.w == nil {
		return len(p), nil
	}
	sw.mx.Lock()
	defer sw.mx.Unlock()
	return sw.w.Write(p)
}

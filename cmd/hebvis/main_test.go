package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/npillmayer/hebvis/convert"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// run parses args and runs the selected command, capturing its output.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var cli CLI
	var stdout, stderr bytes.Buffer
	parser, err := newParser(context.Background(), &cli,
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("cannot parse %v: %v", args, err)
	}
	err = kctx.Run()
	return stdout.String(), stderr.String(), err
}

func TestDemo(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	out, _, err := run(t, "demo")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"Input (visual):  םולש Hello םלוע World",
		"Output (logical): שלום Hello עולם World",
		"Output (logical): בוקר טוב Good morning",
		"Output (logical): <p>שלום</p>",
	} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("expected line %q in demo output:\n%s", line, out)
		}
	}
}

func TestLine(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	out, _, err := run(t, "line", "םולש", "Hello", "םלוע", "World")
	if err != nil {
		t.Fatal(err)
	}
	if out != "שלום Hello עולם World\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLineFromStdin(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	saved := stdin
	defer func() { stdin = saved }()
	stdin = strings.NewReader("בוט רקוב Good morning\nHello\n")
	out, _, err := run(t, "line")
	if err != nil {
		t.Fatal(err)
	}
	if out != "בוקר טוב Good morning\nHello\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestVersion(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "hebvis version "+version+"\n" {
		t.Errorf("unexpected output %q", out)
	}
}

// "<p>םולש</p>" in ISO-8859-8
var legacy = []byte{'<', 'p', '>', 0xED, 0xE5, 0xEC, 0xF9, '<', '/', 'p', '>'}

func TestConvertIsDefaultCommand(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	dir := t.TempDir()
	in := filepath.Join(dir, "page.html")
	if err := os.WriteFile(in, legacy, 0o644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "out.html")
	out, _, err := run(t, in, "-o", target)
	if err != nil {
		t.Fatal(err)
	}
	if out != "Successfully converted: "+in+"\n" {
		t.Errorf("unexpected output %q", out)
	}
	b, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "<p>שלום</p>" {
		t.Errorf("unexpected conversion %q", string(b))
	}
}

func TestConvertOptions(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	var cli CLI
	parser, err := newParser(context.Background(), &cli)
	if err != nil {
		t.Fatal(err)
	}
	_, err = parser.Parse([]string{"-v", "convert", "site", "--encoding", "windows-1255",
		"--no-visual-convert", "--backup", "--dry-run", "--lang", "yi", "--graphemes", "--workers", "3"})
	if err != nil {
		t.Fatal(err)
	}
	opts := cli.Convert.options(&cli.Globals, nil)
	if opts.SourceEncoding != "windows-1255" || opts.ConvertVisualText || !opts.Backup ||
		!opts.DryRun || opts.Language != "yi" || !opts.Graphemes || opts.Workers != 3 || !opts.Verbose {
		t.Errorf("flags not carried over to options: %+v", opts)
	}
	if cli.Convert.Input != "site" {
		t.Errorf("unexpected input %q", cli.Convert.Input)
	}
}

func TestConvertDryRun(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	dir := t.TempDir()
	in := filepath.Join(dir, "page.htm")
	if err := os.WriteFile(in, legacy, 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "convert", "--dry-run", dir)
	if err != nil {
		t.Fatal(err)
	}
	if out != "Would convert: "+in+" -> "+in+"\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestConvertMissingInput(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	_, _, err := run(t, filepath.Join(t.TempDir(), "missing.html"))
	if !errors.Is(err, convert.ErrNotFound) {
		t.Errorf("expected ErrNotFound, have %v", err)
	}
}

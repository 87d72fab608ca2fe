/*
Command hebvis converts legacy Hebrew HTML documents, stored in visual order
and a legacy 8-bit encoding, to logical order and UTF-8.

	hebvis page.html                          # convert in place
	hebvis page.html -o converted.html        # convert to a new file
	hebvis site/ -o out/                      # convert a directory tree
	hebvis page.html --encoding windows-1255  # explicit source encoding
	hebvis page.html --no-visual-convert      # convert the encoding only
	hebvis line "םולש Hello םלוע World"       # convert a single line
	hebvis demo                               # show sample conversions
*/
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/npillmayer/hebvis/convert"
	"github.com/npillmayer/hebvis/markup"
	"github.com/npillmayer/hebvis/reorder"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

const version = "0.1.0"

// Globals are flags shared by all commands.
type Globals struct {
	Verbose    bool   `short:"v" help:"Verbose output."`
	TraceLevel string `name:"trace" enum:"error,info,debug" default:"error" env:"HEBVIS_TRACE" help:"Level of diagnostic tracing (${enum})."`
}

// CLI is the command line of hebvis.
type CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert an HTML file or a directory of HTML files (default command)."`
	Line    LineCmd    `cmd:"" help:"Convert lines of text given as arguments or on standard input."`
	Demo    DemoCmd    `cmd:"" help:"Show the conversion of sample text."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

// ConvertCmd converts files.
type ConvertCmd struct {
	Input           string `arg:"" help:"Input HTML file or directory."`
	Output          string `short:"o" help:"Output file or directory (default: overwrite input)."`
	Encoding        string `default:"iso-8859-8" env:"HEBVIS_ENCODING" help:"Source encoding; the default lets a charset declaration of the document win."`
	NoVisualConvert bool   `help:"Skip visual-to-logical text conversion (only convert the encoding)."`
	Backup          bool   `help:"Create backup files with .bak extension when converting in place."`
	DryRun          bool   `help:"Show what would be converted without making changes."`
	Lang            string `default:"he" help:"Value of the lang attribute to insert; 'auto' derives it from the locale."`
	Graphemes       bool   `help:"Reverse Hebrew words by grapheme cluster, keeping points with their letters."`
	Workers         int    `default:"0" env:"HEBVIS_WORKERS" help:"Number of files converted concurrently (0: one per CPU)."`
}

var errFailures = errors.New("some files could not be converted")

func (c *ConvertCmd) options(g *Globals, out io.Writer) convert.Options {
	opts := convert.DefaultOptions()
	opts.SourceEncoding = c.Encoding
	opts.ConvertVisualText = !c.NoVisualConvert
	opts.Graphemes = c.Graphemes
	opts.Language = c.Lang
	opts.Backup = c.Backup
	opts.DryRun = c.DryRun
	opts.Verbose = g.Verbose
	if c.Workers > 0 {
		opts.Workers = c.Workers
	}
	opts.Out = out
	return opts
}

func (c *ConvertCmd) Run(ctx context.Context, kctx *kong.Context, g *Globals) error {
	report, err := convert.Run(ctx, c.Input, c.Output, c.options(g, kctx.Stdout))
	if err != nil {
		return err
	}
	if report.Failed > 0 {
		for _, f := range report.Failures {
			fmt.Fprintf(kctx.Stderr, "Error converting %s: %v\n", f.Path, f.Err)
		}
		return fmt.Errorf("%w: %s", errFailures, report)
	}
	return nil
}

// LineCmd converts single lines of text.
type LineCmd struct {
	Text      []string `arg:"" optional:"" help:"Text of the line; read lines from standard input if missing."`
	Graphemes bool     `help:"Reverse Hebrew words by grapheme cluster."`
}

var stdin io.Reader = os.Stdin

func (c *LineCmd) Run(kctx *kong.Context) error {
	r := reorder.New(reorder.Graphemes(c.Graphemes))
	if len(c.Text) > 0 {
		fmt.Fprintln(kctx.Stdout, r.Line(strings.Join(c.Text, " ")))
		return nil
	}
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		fmt.Fprintln(kctx.Stdout, r.Line(scanner.Text()))
	}
	return scanner.Err()
}

// DemoCmd shows sample conversions.
type DemoCmd struct{}

var samples = []string{
	"םולש Hello םלוע World",
	"בוט רקוב Good morning",
	"<p>םולש</p>",
}

func (c *DemoCmd) Run(kctx *kong.Context) error {
	fmt.Fprintln(kctx.Stdout, "Testing Hebrew visual-to-logical conversion:")
	for i, sample := range samples {
		if i > 0 {
			fmt.Fprintln(kctx.Stdout)
		}
		fmt.Fprintf(kctx.Stdout, "Input (visual):  %s\n", sample)
		fmt.Fprintf(kctx.Stdout, "Output (logical): %s\n", markup.TransformDocument(sample, markup.DefaultConfig()))
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(kctx *kong.Context) error {
	fmt.Fprintf(kctx.Stdout, "hebvis version %s\n", version)
	return nil
}

func setTraceLevel(level string) {
	switch level {
	case "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	case "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	default:
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}
}

func newParser(ctx context.Context, cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("hebvis"),
		kong.Description("Convert Hebrew HTML files from visual to logical order and from ISO-8859-8 to UTF-8."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&cli.Globals),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	gtrace.CoreTracer = gologadapter.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	var cli CLI
	parser, err := newParser(ctx, &cli)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	setTraceLevel(cli.TraceLevel)
	err = kctx.Run()
	kctx.FatalIfErrorf(err)
}

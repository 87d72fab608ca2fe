package markup

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
)

func TestTransformDocument(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	docs := []struct {
		visual, logical string
	}{
		{"", ""},
		{"<p>םולש</p>", "<p>שלום</p>"},
		{"<p>Hello World</p>", "<p>Hello World</p>"},
		{`<img alt="םולש">םולש`, `<img alt="םולש">שלום`},
		{"<div>\nםולש\nבוט רקוב Good\n</div>", "<div>\nשלום\nבוקר טוב Good\n</div>"},
		{"<p>אב\nגד</p>", "<p>בא\nדג</p>"},
		{"<p>\r\nםולש\r\n</p>", "<p>\r\nשלום\r\n</p>"},
		{"<p>םולש <b", "<p>שלום <b"},
		{"םולש > םלוע", "שלום > עולם"},
		{"<b>בוט</b> <i>רקוב</i>", "<b>טוב</b> <i>בוקר</i>"},
	}
	for i, d := range docs {
		out := TransformDocument(d.visual, DefaultConfig())
		if out != d.logical {
			t.Errorf("#%d: expected %q to convert to %q, is %q", i, d.visual, d.logical, out)
		}
	}
}

func TestTransformDocumentDisabled(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := DefaultConfig()
	cfg.ConvertVisualText = false
	doc := "<p>םולש</p>"
	if out := TransformDocument(doc, cfg); out != doc {
		t.Errorf("expected document to pass through unchanged, is %q", out)
	}
}

func TestSpansReconstructDocument(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	docs := []string{
		"",
		"plain",
		"<p>",
		"<p>x</p>",
		"a<b>c<d>",
		"<<>>",
		"1 < 2 and 3 > 2",
		"<p>unbalanced <b",
		"<!-- <x> -->",
	}
	for _, doc := range docs {
		spans := Spans(doc)
		var b strings.Builder
		for i, span := range spans {
			b.WriteString(span.Text)
			if span.Markup {
				if !strings.HasPrefix(span.Text, "<") || !strings.HasSuffix(span.Text, ">") {
					t.Errorf("%q: markup span %q is not delimited by <>", doc, span.Text)
				}
				if strings.Contains(span.Text[1:len(span.Text)-1], ">") {
					t.Errorf("%q: markup span %q is not minimal", doc, span.Text)
				}
			} else {
				if span.Text == "" {
					t.Errorf("%q: empty text span", doc)
				}
				if i > 0 && !spans[i-1].Markup {
					t.Errorf("%q: adjacent text spans", doc)
				}
			}
		}
		if b.String() != doc {
			t.Errorf("spans of %q reconstruct to %q", doc, b.String())
		}
	}
}

func TestMarkupPreserved(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	doc := `<html><body class="םולש"><p title='בוט'>םולש Hello</p><br/>` +
		`<a href="x">רקוב בוט</a></body></html>`
	in, out := Spans(doc), Spans(TransformDocument(doc, DefaultConfig()))
	if len(in) != len(out) {
		t.Fatalf("span count changed from %d to %d", len(in), len(out))
	}
	for i := range in {
		if in[i].Markup != out[i].Markup {
			t.Fatalf("span kind changed at #%d", i)
		}
		if in[i].Markup && in[i].Text != out[i].Text {
			t.Errorf("markup span #%d changed from %q to %q", i, in[i].Text, out[i].Text)
		}
	}
}

func TestGraphemeConfig(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	cfg := DefaultConfig()
	cfg.Graphemes = true
	doc := "<p>\u05d0\u05d1\u05bc\u05b8</p>" // ALEF, BET + DAGESH + QAMATS
	if out := TransformDocument(doc, cfg); out != "<p>\u05d1\u05bc\u05b8\u05d0</p>" {
		t.Errorf("expected points to stay with their letter, have %+q", out)
	}
}

func TestRewriteCharset(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	inputs := []struct {
		in, out string
	}{
		{`<meta charset="iso-8859-8">`, `<meta charset="utf-8">`},
		{`<meta charset=ISO-8859-8>`, `<meta charset=utf-8>`},
		{`<meta charset='windows-1255'>`, `<meta charset='utf-8'>`},
		{`content="text/html; charset=hebrew"`, `content="text/html; charset=utf-8"`},
		{`content="text/html; charset=iso-8859-8-i"`, `content="text/html; charset=utf-8"`},
		{`<meta charset="utf-8">`, `<meta charset="utf-8">`},
		{`<meta charset="iso-8859-1">`, `<meta charset="iso-8859-1">`},
		{`<meta charset="hebrew2">`, `<meta charset="hebrew2">`},
	}
	for _, in := range inputs {
		if out := RewriteCharset(in.in); out != in.out {
			t.Errorf("expected %q to be rewritten to %q, is %q", in.in, in.out, out)
		}
	}
}

func TestEnsureMetaCharset(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	doc := "<html><header>x</header><head><title>t</title></head></html>"
	expected := "<html><header>x</header><head>\n    <meta charset=\"utf-8\"><title>t</title></head></html>"
	if out := EnsureMetaCharset(doc); out != expected {
		t.Errorf("expected meta charset after <head>, have %q", out)
	}
	declared := `<head><meta charset="utf-8"></head>`
	if out := EnsureMetaCharset(declared); out != declared {
		t.Errorf("expected document with charset declaration unchanged, is %q", out)
	}
	if out := EnsureMetaCharset("<p>no head</p>"); out != "<p>no head</p>" {
		t.Errorf("expected document without head unchanged, is %q", out)
	}
}

func TestEnsureDirectionAndLanguage(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	if out := EnsureDirection(`<HTML class="x">`); out != `<html class="x" dir="rtl">` {
		t.Errorf("unexpected direction insertion: %q", out)
	}
	if out := EnsureDirection(`<html dir="ltr">`); out != `<html dir="ltr">` {
		t.Errorf("existing dir attribute must be kept, have %q", out)
	}
	if out := EnsureLanguage(`<html>`, ""); out != `<html lang="he">` {
		t.Errorf("unexpected language insertion: %q", out)
	}
	if out := EnsureLanguage(`<html>`, "yi"); out != `<html lang="yi">` {
		t.Errorf("unexpected language insertion: %q", out)
	}
	if out := EnsureLanguage(`<html lang="en">`, "he"); out != `<html lang="en">` {
		t.Errorf("existing lang attribute must be kept, have %q", out)
	}
}

func TestConvert(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	doc := `<html><head><meta http-equiv="Content-Type" content="text/html; charset=iso-8859-8">` +
		`</head><body><p>םולש Hello םלוע World</p></body></html>`
	expected := `<html dir="rtl" lang="he"><head><meta http-equiv="Content-Type" content="text/html; charset=utf-8">` +
		`</head><body><p>שלום Hello עולם World</p></body></html>`
	if out := Convert(doc, DefaultConfig()); out != expected {
		t.Errorf("unexpected conversion:\n%s\nexpected:\n%s", out, expected)
	}
	cfg := DefaultConfig()
	cfg.ConvertVisualText = false
	expected = `<html><head><meta http-equiv="Content-Type" content="text/html; charset=utf-8">` +
		`</head><body><p>םולש Hello םלוע World</p></body></html>`
	if out := Convert(doc, cfg); out != expected {
		t.Errorf("encoding-only conversion must not touch text or <html>, have\n%s", out)
	}
}

func TestLanguageForLocale(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	locales := map[string]string{
		"he-IL":   "he",
		"iw-IL":   "he",
		"yi":      "yi",
		"en-US":   "he",
		"de-DE":   "he",
		"garbage": "he",
	}
	for locale, lang := range locales {
		if l := languageForLocale(locale); l != lang {
			t.Errorf("expected locale %q to map to %q, is %q", locale, lang, l)
		}
	}
	if ResolveLanguage("he") != "he" || ResolveLanguage("yi") != "yi" {
		t.Errorf("explicit languages must be kept")
	}
	t.Logf("language from environment = %q", ResolveLanguage(AutoLanguage))
}

func ExampleTransformDocument() {
	fmt.Println(TransformDocument("<p>םולש</p>", DefaultConfig()))
	// Output: <p>שלום</p>
}

package markup

import (
	"regexp"
	"strings"
)

var (
	legacyCharset = regexp.MustCompile(
		`(?i)(charset\s*=\s*["']?)(iso-8859-8(?:-[ie])?|windows-1255|hebrew)([^\w-]|$)`)
	anyCharset   = regexp.MustCompile(`(?i)charset\s*=`)
	headTag      = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)
	htmlTag      = regexp.MustCompile(`(?i)<html([^>]*)>`)
	htmlWithDir  = regexp.MustCompile(`(?i)<html[^>]*dir\s*=`)
	htmlWithLang = regexp.MustCompile(`(?i)<html[^>]*lang\s*=`)
)

// RewriteCharset replaces the encoding label of charset declarations of
// ISO-8859-8 (including -i and -e), Windows-1255 and "hebrew" by utf-8.
// Quoting is left as found.
func RewriteCharset(doc string) string {
	return legacyCharset.ReplaceAllString(doc, "${1}utf-8${3}")
}

// EnsureMetaCharset inserts a <meta charset="utf-8"> element right after the
// first <head> tag, if the document does not declare a charset anywhere.
// Documents without a <head> tag are returned unchanged.
func EnsureMetaCharset(doc string) string {
	if anyCharset.MatchString(doc) {
		return doc
	}
	loc := headTag.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	T().Debugf("inserting charset declaration after %q", doc[loc[0]:loc[1]])
	return doc[:loc[1]] + "\n    <meta charset=\"utf-8\">" + doc[loc[1]:]
}

// EnsureDirection adds dir="rtl" to <html> tags, if there is no <html> tag
// with a dir attribute yet.
func EnsureDirection(doc string) string {
	if htmlWithDir.MatchString(doc) {
		return doc
	}
	return htmlTag.ReplaceAllString(doc, `<html${1} dir="rtl">`)
}

// EnsureLanguage adds a lang attribute to <html> tags, if there is no <html>
// tag with a lang attribute yet. An empty lang inserts DefaultLanguage.
func EnsureLanguage(doc string, lang string) string {
	if htmlWithLang.MatchString(doc) {
		return doc
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	return htmlTag.ReplaceAllString(doc, `<html${1} lang="`+escapeReplacement(lang)+`">`)
}

// Finish applies the metadata rewriting which follows a conversion to UTF-8:
// charset declarations are rewritten or inserted; if visual text has been
// converted, direction and language attributes are added.
func Finish(doc string, cfg Config) string {
	doc = RewriteCharset(doc)
	doc = EnsureMetaCharset(doc)
	if cfg.ConvertVisualText {
		doc = EnsureDirection(doc)
		doc = EnsureLanguage(doc, cfg.Language)
	}
	return doc
}

// Convert runs TransformDocument and Finish on a decoded document.
func Convert(doc string, cfg Config) string {
	return Finish(TransformDocument(doc, cfg), cfg)
}

// '$' introduces group references in regexp replacement templates.
func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// Package postprocess removes punctuation artifacts from a raw model
// completion before it is shown to the user.
//
// The model tends to wrap its answer in dashes or use them as list markers;
// Normalize strips them aggressively. Hyphenated compounds ("e-mail") lose
// their hyphen too, which is accepted.
package postprocess

import (
	"regexp"
	"strings"
)

// space mirrors the whitespace set of ECMAScript's \s so completions
// containing NBSP or ideographic spaces collapse the same way.
const space = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	emDashRe   = regexp.MustCompile(`[` + space + `]*—[` + space + `]*`)
	enDashRe   = regexp.MustCompile(`[` + space + `]*–[` + space + `]*`)
	hyphenRe   = regexp.MustCompile(`[` + space + `]*-[` + space + `]*`)
	spaceRunRe = regexp.MustCompile(`[` + space + `]+`)
	edgeRe     = regexp.MustCompile(`^[` + space + `\-—–]+|[` + space + `\-—–]+$`)
)

// Normalize applies, in order:
//  1. em and en dashes with surrounding whitespace → one space
//  2. hyphens with surrounding whitespace → one space
//  3. whitespace runs → one space
//  4. leading/trailing whitespace and dashes trimmed
//  5. leading/trailing whitespace trimmed
//
// The order matters: the trim in step 4 only sees dashes that survived
// steps 1-2. Normalize is idempotent.
func Normalize(raw string) string {
	text := trimSpace(raw)
	text = emDashRe.ReplaceAllString(text, " ")
	text = enDashRe.ReplaceAllString(text, " ")
	text = hyphenRe.ReplaceAllString(text, " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = edgeRe.ReplaceAllString(text, "")
	return trimSpace(text)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00A0', '\u1680', '\u2028', '\u2029', '\u202F', '\u205F', '\u3000', '\uFEFF':
		return true
	}
	return r >= '\u2000' && r <= '\u200A'
}

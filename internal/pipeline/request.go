package pipeline

import (
	"errors"
	"strings"
	"unicode/utf16"

	"github.com/valpere/perevod/internal/lang"
)

// MaxChars is the longest accepted input, in UTF-16 code units.
const MaxChars = 5000

var (
	ErrEmptyText   = errors.New("Please enter some text to translate")
	ErrTextTooLong = errors.New("Text is too long. Please keep it under 5000 characters.")
)

// Request is a validated translation request. Build it with NewRequest; the
// pipeline does not validate again.
type Request struct {
	Text string
	Pair lang.Pair
}

// NewRequest trims text and enforces the caller-side preconditions.
func NewRequest(text string, pair lang.Pair) (Request, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Request{}, ErrEmptyText
	}
	if TextLength(trimmed) > MaxChars {
		return Request{}, ErrTextTooLong
	}
	return Request{Text: trimmed, Pair: pair}, nil
}

// TextLength counts UTF-16 code units, so characters outside the BMP count twice.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

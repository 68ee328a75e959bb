// Package lang defines the two languages the translator works with and the
// direction variant that selects the system instructions.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the two supported language codes.
type Language string

const (
	English Language = "en"
	Russian Language = "ru"
)

// Parse accepts any BCP 47 tag whose base language is English or Russian
// ("en", "en-GB", "ru-RU", ...).
func Parse(s string) (Language, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", s, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "ru":
		return Russian, nil
	}
	return "", fmt.Errorf("unsupported language %q: only en and ru are available", s)
}

// Label is the human-readable name shown to users.
func (l Language) Label() string {
	if l == Russian {
		return "Русский"
	}
	return "English"
}

func (l Language) String() string { return string(l) }

// Direction selects which block of system instructions is sent to the model.
type Direction int

const (
	// ToGenderedTarget produces Russian output in the feminine first person,
	// informal register, biased by the term glossary.
	ToGenderedTarget Direction = iota
	// ToNeutralTarget produces natural English with a context-appropriate register.
	ToNeutralTarget
)

func (d Direction) String() string {
	if d == ToGenderedTarget {
		return "gendered"
	}
	return "neutral"
}

// Pair is a source/target combination. Same-to-same pairs are allowed.
type Pair struct {
	Source Language `json:"source"`
	Target Language `json:"target"`
}

// ParsePair parses both ends of a translation pair.
func ParsePair(source, target string) (Pair, error) {
	src, err := Parse(source)
	if err != nil {
		return Pair{}, fmt.Errorf("source: %w", err)
	}
	tgt, err := Parse(target)
	if err != nil {
		return Pair{}, fmt.Errorf("target: %w", err)
	}
	return Pair{Source: src, Target: tgt}, nil
}

// Direction is decided by the source language alone.
func (p Pair) Direction() Direction {
	if p.Source == English {
		return ToGenderedTarget
	}
	return ToNeutralTarget
}

// GenderedTarget reports whether the output language carries the glossary
// corrections.
func (p Pair) GenderedTarget() bool {
	return p.Target == Russian
}

// Swap exchanges source and target.
func (p Pair) Swap() Pair {
	return Pair{Source: p.Target, Target: p.Source}
}

func (p Pair) String() string {
	return fmt.Sprintf("%s→%s", p.Source, p.Target)
}

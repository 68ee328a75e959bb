// Package detector guesses whether a text is English or Russian.
package detector

import (
	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/perevod/internal/lang"
)

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector limited to the supported languages. Building is
// slow; reuse the instance.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Russian).
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lang.Language, bool) {
	if text == "" {
		return "", false
	}
	detected, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	switch detected {
	case lingua.English:
		return lang.English, true
	case lingua.Russian:
		return lang.Russian, true
	}
	return "", false
}

// Pair picks a source language for text and targets the other one.
// Undetectable text falls back to English → Russian.
func (d *Detector) Pair(text string) lang.Pair {
	src, ok := d.Detect(text)
	if !ok {
		src = lang.English
	}
	p := lang.Pair{Source: src, Target: lang.Russian}
	if src == lang.Russian {
		p.Target = lang.English
	}
	return p
}

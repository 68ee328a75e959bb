// Package validator flags translations that do not look like the requested
// output language.
package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/valpere/perevod/internal/detector"
	"github.com/valpere/perevod/internal/lang"
)

// minValidationLength is the minimum rune count required to attempt language detection.
const minValidationLength = 20

type Validator struct {
	det *detector.Detector
}

// New wraps det; a nil det builds a fresh detector.
func New(det *detector.Detector) *Validator {
	if det == nil {
		det = detector.New()
	}
	return &Validator{det: det}
}

// Check returns nil when translated appears to be written in target.
// Short or undetectable texts pass.
func (v *Validator) Check(translated string, target lang.Language) error {
	text := strings.TrimSpace(translated)
	if text == "" {
		return fmt.Errorf("translation is empty")
	}

	if utf8.RuneCountInString(text) < minValidationLength {
		return nil
	}

	detected, ok := v.det.Detect(text)
	if !ok {
		return nil
	}

	if detected != target {
		return fmt.Errorf("expected %s but detected %s", target.Label(), detected.Label())
	}
	return nil
}

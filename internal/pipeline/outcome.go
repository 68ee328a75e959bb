package pipeline

import (
	"github.com/valpere/perevod/internal/translator"
)

// Outcome is the result of one invocation: either a translation or a
// classified error, never both.
type Outcome struct {
	Translation string
	Err         error
}

// Kind is the ErrorKind of a failed outcome; empty on success or for
// failures that were not classified (caller cancellation).
func (o Outcome) Kind() translator.ErrorKind {
	kind, _ := translator.KindOf(o.Err)
	return kind
}

// Message is the user-facing text: the translation or the error message.
func (o Outcome) Message() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return o.Translation
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

package internal

import (
	"time"

	"github.com/google/uuid"
)

// TranslationRecord is one pipeline invocation as kept in the history.
type TranslationRecord struct {
	ID           string    `json:"id"`
	SourceText   string    `json:"source_text"`
	SourceLang   string    `json:"source_lang"`
	TargetLang   string    `json:"target_lang"`
	Translation  string    `json:"translation,omitempty"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	Cached       bool      `json:"cached"`
	LatencyMs    int       `json:"latency_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

// Succeeded reports whether the invocation produced a translation.
func (r TranslationRecord) Succeeded() bool {
	return r.ErrorMessage == ""
}

// NewID returns a random request ID.
func NewID() string {
	return uuid.New().String()
}

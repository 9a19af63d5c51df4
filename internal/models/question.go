package models

import "strings"

// Question is an immutable per-call input: the raw text as the user typed it
// and a lower-cased normalized form that all pattern rules run against.
type Question struct {
	Raw        string
	Normalized string
}

// NewQuestion builds a Question from raw user text.
func NewQuestion(raw string) *Question {
	trimmed := strings.TrimSpace(raw)
	return &Question{
		Raw:        trimmed,
		Normalized: strings.ToLower(trimmed),
	}
}

// IsEmpty reports whether the question contains any text.
func (q *Question) IsEmpty() bool {
	return q.Normalized == ""
}

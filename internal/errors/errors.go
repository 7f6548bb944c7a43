package errors

import (
	"encoding/json"
	"fmt"
)

// AnalysisError is the input-error taxonomy of spec §7: a request is
// rejected at the boundary of the interpretation service before any
// analyzer runs. It is never returned for a weak or ambiguous analysis —
// that case is represented by a low-confidence interpretation, not an error.
type AnalysisError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Symbol is the offending chord or note token, when the error names one.
	Symbol string `json:"symbol,omitempty"`
	// Position is the zero-based index of Symbol within the input sequence.
	Position int `json:"position,omitempty"`
	Details  string `json:"details,omitempty"`
}

func (e *AnalysisError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s: %s %q at position %d", e.Code, e.Message, e.Symbol, e.Position)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MarshalJSON customizes JSON encoding.
func (e *AnalysisError) MarshalJSON() ([]byte, error) {
	type Alias AnalysisError
	return json.Marshal(&struct{ *Alias }{Alias: (*Alias)(e)})
}

// EmptyProgression reports that the input chord or note sequence was empty
// after trimming. Message is fixed by spec §7 ("progression is empty").
func EmptyProgression() *AnalysisError {
	return &AnalysisError{
		Code:    ErrEmptyProgression,
		Message: "progression is empty",
	}
}

// UnparsableChord reports that symbol at position could not be parsed by
// the chord grammar (spec §4.B).
func UnparsableChord(symbol string, position int) *AnalysisError {
	return &AnalysisError{
		Code:     ErrUnparsableChord,
		Message:  "unrecognized chord symbol",
		Symbol:   symbol,
		Position: position,
	}
}

// UnparsableNote reports that token could not be parsed as a note name.
func UnparsableNote(token string, position int) *AnalysisError {
	return &AnalysisError{
		Code:     ErrUnparsableNote,
		Message:  "unrecognized note name",
		Symbol:   token,
		Position: position,
	}
}

// InvalidKey reports that text could not be parsed as a parent-key option
// (e.g. "C major", "A minor").
func InvalidKey(text string) *AnalysisError {
	return &AnalysisError{
		Code:    ErrInvalidKey,
		Message: "unrecognized key",
		Symbol:  text,
	}
}

// InternalInconsistency reports that an invariant documented in spec §3 was
// violated mid-pipeline. This should only ever fire in the presence of a
// bug; component names the part of the pipeline that detected it.
func InternalInconsistency(component, detail string) *AnalysisError {
	return &AnalysisError{
		Code:    ErrInternalInconsistency,
		Message: detail,
		Symbol:  component,
	}
}

// WithDetails attaches additional diagnostic context to an error.
func (e *AnalysisError) WithDetails(details string) *AnalysisError {
	e.Details = details
	return e
}

package diagnostics

import (
	"encoding/json"
	"errors"

	"github.com/typeforge/checker/internal/ast"
)

// Fix is an optional suggested correction attached to a Report, e.g. the
// output of Suggest.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is a structured diagnostic: a Code from the §7 taxonomy, a
// message, the source span it concerns, and optional fix/data payloads.
// The checker builds Reports and folds them into an Accumulator, which
// renders them to the plain-text form described in §6.5; the JSON tags
// let a caller serialize Reports directly.
type Report struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// ReportError wraps a Report as an error so AsReport can recover it
// through errors.As.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return string(e.Rep.Code) + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps r as an error; nil in, nil out.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// WithFix attaches a suggested fix and returns the receiver for chaining.
func (r *Report) WithFix(suggestion string, confidence float64) *Report {
	r.Fix = &Fix{Suggestion: suggestion, Confidence: confidence}
	return r
}

// ToJSON renders the report as JSON, indented unless compact is set.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

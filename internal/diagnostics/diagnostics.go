// Package diagnostics implements the error accumulator: an append-only
// list of formatted diagnostics with a source-location prefix, plus the
// structured Report form, its error codes, and the "did you mean"
// suggestion helper. The Error type sentinel itself is types.TError.
package diagnostics

import "fmt"

// Loc is the (filename?, line, column) triple attached to every
// expression for diagnostics (§3.2, §6.2).
type Loc struct {
	Filename string
	Line     int
	Column   int
}

// HasFile reports whether Filename is set.
func (l Loc) HasFile() bool { return l.Filename != "" }

// prefix formats loc per §6.5: "filename:line:column: " when filename is
// set, "line:column: " when only line/column are set, "" otherwise.
// AddAt and AddReport append the message after it.
func (l Loc) prefix() string {
	switch {
	case l.HasFile():
		return fmt.Sprintf("%s:%d:%d: ", l.Filename, l.Line, l.Column)
	case l.Line != 0 || l.Column != 0:
		return fmt.Sprintf("%d:%d: ", l.Line, l.Column)
	default:
		return ""
	}
}

// Accumulator is the append-only diagnostic list described in §3.4/§4.9.
// It is per-checker-instance state and must not be shared across
// concurrent checks (§5).
type Accumulator struct {
	messages []string
	reports  []*Report
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// AddReport records a structured Report, both as its rendered plain-text
// form (for All/FirstError) and in Reports() for JSON-mode consumers.
func (a *Accumulator) AddReport(r *Report) {
	if r == nil {
		return
	}
	a.reports = append(a.reports, r)
	loc := Loc{}
	if r.Span != nil {
		loc = Loc{Filename: r.Span.Start.File, Line: r.Span.Start.Line, Column: r.Span.Start.Column}
	}
	a.messages = append(a.messages, loc.prefix()+r.Message)
}

// Reports returns every structured Report recorded via AddReport, in
// production order. Diagnostics added via Add/AddAt have no structured
// form and are absent here.
func (a *Accumulator) Reports() []*Report {
	return a.reports
}

// Add formats with printf-style interpolation and appends the result with
// no location prefix.
func (a *Accumulator) Add(format string, args ...interface{}) {
	a.messages = append(a.messages, fmt.Sprintf(format, args...))
}

// AddAt formats with printf-style interpolation, prepending loc's
// "file:line:col: " prefix when available.
func (a *Accumulator) AddAt(loc Loc, format string, args ...interface{}) {
	a.messages = append(a.messages, loc.prefix()+fmt.Sprintf(format, args...))
}

// HasErrors reports whether any diagnostic has been recorded.
func (a *Accumulator) HasErrors() bool {
	return len(a.messages) > 0
}

// FirstError returns the first recorded diagnostic, or "" if none.
func (a *Accumulator) FirstError() string {
	if len(a.messages) == 0 {
		return ""
	}
	return a.messages[0]
}

// All returns every recorded diagnostic in production order.
func (a *Accumulator) All() []string {
	return a.messages
}

// Clear empties the accumulator for REPL-style reuse (§4.9, §6.1).
func (a *Accumulator) Clear() {
	a.messages = a.messages[:0]
	a.reports = a.reports[:0]
}

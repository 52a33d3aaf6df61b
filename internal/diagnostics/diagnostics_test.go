package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/checker/internal/ast"
)

func TestAddAtFormatsWithFileLineCol(t *testing.T) {
	a := NewAccumulator()
	a.AddAt(Loc{Filename: "main.lang", Line: 3, Column: 5}, "undefined variable %q", "x")
	require.True(t, a.HasErrors())
	assert.Equal(t, `main.lang:3:5: undefined variable "x"`, a.FirstError())
}

func TestAddAtFormatsWithoutFile(t *testing.T) {
	a := NewAccumulator()
	a.AddAt(Loc{Line: 1, Column: 1}, "boom")
	assert.Equal(t, "1:1: boom", a.FirstError())
}

func TestAddHasNoPrefix(t *testing.T) {
	a := NewAccumulator()
	a.Add("plain message")
	assert.Equal(t, "plain message", a.FirstError())
}

func TestFirstErrorEmptyWhenNoDiagnostics(t *testing.T) {
	a := NewAccumulator()
	assert.False(t, a.HasErrors())
	assert.Equal(t, "", a.FirstError())
}

func TestClearResetsMessagesAndReports(t *testing.T) {
	a := NewAccumulator()
	a.Add("one")
	a.AddReport(&Report{Code: CodeReference, Message: "two"})
	require.True(t, a.HasErrors())
	a.Clear()
	assert.False(t, a.HasErrors())
	assert.Empty(t, a.All())
	assert.Empty(t, a.Reports())
}

func TestAddReportRendersSpanAsPrefix(t *testing.T) {
	a := NewAccumulator()
	a.AddReport(&Report{
		Code:    CodeUnification,
		Message: "cannot unify Int with String",
		Span: &ast.Span{
			Start: ast.Pos{File: "f.lang", Line: 2, Column: 8},
		},
	})
	assert.Equal(t, "f.lang:2:8: cannot unify Int with String", a.FirstError())
	require.Len(t, a.Reports(), 1)
	assert.Equal(t, CodeUnification, a.Reports()[0].Code)
}

func TestAddReportNilIsNoop(t *testing.T) {
	a := NewAccumulator()
	a.AddReport(nil)
	assert.False(t, a.HasErrors())
}

func TestReportErrorRoundTripsThroughWrapAndAs(t *testing.T) {
	rep := &Report{Code: CodeArity, Message: "expected 2 arguments, got 3"}
	err := WrapReport(rep)
	require.Error(t, err)
	assert.Equal(t, "ARITY: expected 2 arguments, got 3", err.Error())

	got, ok := AsReport(err)
	require.True(t, ok)
	assert.Same(t, rep, got)
}

func TestWrapReportNilIsNil(t *testing.T) {
	assert.Nil(t, WrapReport(nil))
}

func TestReportToJSONIncludesCodeAndMessage(t *testing.T) {
	rep := &Report{Code: CodeShape, Message: "wrong field count"}
	out, err := rep.ToJSON(true)
	require.NoError(t, err)
	assert.Contains(t, out, `"code":"SHAPE"`)
	assert.Contains(t, out, "wrong field count")
}

func TestReportWithFixAttachesSuggestion(t *testing.T) {
	rep := (&Report{Code: CodeReference, Message: "undefined variable"}).WithFix("strlen", 0.8)
	require.NotNil(t, rep.Fix)
	assert.Equal(t, "strlen", rep.Fix.Suggestion)
}

func TestSuggestFindsCloseMatch(t *testing.T) {
	got := Suggest("strlen", []string{"str_len", "str_concat", "list_len"})
	assert.Equal(t, "str_len", got)
}

func TestSuggestNoMatchWithinThreshold(t *testing.T) {
	got := Suggest("completely_unrelated", []string{"str_len", "list_len"})
	assert.Equal(t, "", got)
}

func TestSuggestEmptyCandidates(t *testing.T) {
	assert.Equal(t, "", Suggest("x", nil))
}

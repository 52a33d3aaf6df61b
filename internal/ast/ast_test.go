package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProgramSimpleLet(t *testing.T) {
	src := `{
		"statements": [
			{
				"kind": "Let",
				"pattern": {"kind": "Identifier", "name": "x"},
				"value": {"kind": "Literal", "Kind": "Int", "Value": 3}
			}
		]
	}`
	// The outer "kind" dispatches the node type; the inner "Kind" (exact
	// case) fills the Literal's own Kind field.
	prog, err := DecodeProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	let, ok := prog.Statements[0].(*Let)
	require.True(t, ok)
	ident, ok := let.Pattern.(*Identifier)
	require.True(t, ok)
	assert.Equal(t, "x", ident.Name)

	lit, ok := let.Value.(*Literal)
	require.True(t, ok)
	assert.Equal(t, IntLit, lit.Kind)
}

func TestDecodeExprBinaryOp(t *testing.T) {
	data := json.RawMessage(`{
		"kind": "BinaryOp",
		"op": "+",
		"left": {"kind": "Literal", "Kind": "Int", "Value": 1},
		"right": {"kind": "Literal", "Kind": "Int", "Value": 2}
	}`)
	e, err := DecodeExpr(data)
	require.NoError(t, err)
	bin, ok := e.(*BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestDecodeExprMatchWithCases(t *testing.T) {
	data := json.RawMessage(`{
		"kind": "Match",
		"scrutinee": {"kind": "Identifier", "name": "opt"},
		"cases": [
			{
				"pattern": {"kind": "Constructor", "name": "Some", "subPatterns": [{"kind": "Identifier", "name": "v"}]},
				"body": {"kind": "Identifier", "name": "v"}
			},
			{
				"pattern": {"kind": "Constructor", "name": "None"},
				"body": {"kind": "Literal", "Kind": "Int", "Value": 0}
			}
		]
	}`)
	e, err := DecodeExpr(data)
	require.NoError(t, err)
	m, ok := e.(*Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)

	ctor, ok := m.Cases[0].Pattern.(*ConstructorPattern)
	require.True(t, ok)
	assert.Equal(t, "Some", ctor.Name)
	assert.Len(t, ctor.SubPatterns, 1)
}

func TestDecodeWithAndBind(t *testing.T) {
	data := json.RawMessage(`{
		"kind": "With",
		"binds": [
			{"kind": "Bind", "name": "a", "value": {"kind": "Identifier", "name": "f"}}
		],
		"body": {"kind": "Identifier", "name": "a"}
	}`)
	e, err := DecodeExpr(data)
	require.NoError(t, err)
	with, ok := e.(*With)
	require.True(t, ok)
	require.Len(t, with.Binds, 1)
	assert.Equal(t, "a", with.Binds[0].Name)
}

func TestDecodeTypeDeclVariant(t *testing.T) {
	data := json.RawMessage(`{
		"kind": "TypeDecl",
		"name": "Shape",
		"typeParams": [],
		"variant": {
			"cases": [
				{"name": "Circle", "fields": [{"kind": "Named", "name": "Float"}]},
				{"name": "Square", "fields": [{"kind": "Named", "name": "Float"}]}
			]
		}
	}`)
	stmt, err := DecodeStmt(data)
	require.NoError(t, err)
	decl, ok := stmt.(*TypeDecl)
	require.True(t, ok)
	variant, ok := decl.Definition.(*VariantType)
	require.True(t, ok)
	assert.Len(t, variant.Cases, 2)
	assert.Equal(t, "Circle", variant.Cases[0].Name)
}

func TestDecodeRestPattern(t *testing.T) {
	data := json.RawMessage(`{"kind": "Rest", "name": "rest"}`)
	p, err := DecodePattern(data)
	require.NoError(t, err)
	rest, ok := p.(*RestPattern)
	require.True(t, ok)
	assert.Equal(t, "rest", rest.Name)
}

func TestDecodeReservedStmt(t *testing.T) {
	data := json.RawMessage(`{"kind": "Reserved", "Kind": "import"}`)
	stmt, err := DecodeStmt(data)
	require.NoError(t, err)
	r, ok := stmt.(*ReservedStmt)
	require.True(t, ok)
	assert.Equal(t, "import", r.Kind)
}

func TestDecodeUnknownKindFails(t *testing.T) {
	_, err := DecodeExpr(json.RawMessage(`{"kind": "Bogus"}`))
	assert.Error(t, err)
}

func TestPrintLiteralIncludesKindAndValue(t *testing.T) {
	lit := &Literal{Kind: IntLit, Value: float64(42)}
	out := Compact(lit)
	assert.Contains(t, out, `"kind":"Int"`)
	assert.Contains(t, out, "42")
}

func TestPrintProgramIncludesKindAndBindingName(t *testing.T) {
	prog := &Program{
		Statements: []Stmt{
			&Let{
				Pattern: &Identifier{Name: "x"},
				Value:   &Literal{Kind: IntLit, Value: float64(1)},
			},
		},
	}
	out := PrintProgram(prog)
	assert.Contains(t, out, `"kind": "Program"`)
	assert.Contains(t, out, `"x"`)
}

func TestPosString(t *testing.T) {
	assert.Equal(t, "3:4", Pos{Line: 3, Column: 4}.String())
	assert.Equal(t, "f.lang:3:4", Pos{File: "f.lang", Line: 3, Column: 4}.String())
}

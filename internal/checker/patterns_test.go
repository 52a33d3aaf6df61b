package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/types"
)

func TestBindPatternIdentifierDefinesName(t *testing.T) {
	c := New()
	ok := c.BindPattern(&ast.Identifier{Name: "x", Pos: pos()}, types.TInt{})
	assert.True(t, ok)
	bound, found := c.Env().Lookup("x")
	require.True(t, found)
	assert.Equal(t, types.TInt{}, bound)
}

func TestBindPatternWildcardIsNoOp(t *testing.T) {
	c := New()
	assert.True(t, c.BindPattern(&ast.WildcardPattern{Pos: pos()}, types.TInt{}))
}

func TestBindPatternLiteralRequiresMatchingType(t *testing.T) {
	c := New()
	assert.True(t, c.BindPattern(lit(ast.IntLit, "1"), types.TInt{}))
	assert.False(t, c.BindPattern(lit(ast.IntLit, "1"), types.TString{}))
}

func TestBindPatternTupleRecursesPairwise(t *testing.T) {
	c := New()
	p := &ast.TuplePattern{
		Elements: []ast.Pattern{
			&ast.Identifier{Name: "a", Pos: pos()},
			&ast.Identifier{Name: "b", Pos: pos()},
		},
		Pos: pos(),
	}
	ok := c.BindPattern(p, types.TupleType(types.TInt{}, types.TString{}))
	assert.True(t, ok)
	a, _ := c.Env().Lookup("a")
	b, _ := c.Env().Lookup("b")
	assert.Equal(t, types.TInt{}, a)
	assert.Equal(t, types.TString{}, b)
}

func TestBindPatternTupleArityMismatch(t *testing.T) {
	c := New()
	p := &ast.TuplePattern{Elements: []ast.Pattern{&ast.Identifier{Name: "a", Pos: pos()}}, Pos: pos()}
	ok := c.BindPattern(p, types.TupleType(types.TInt{}, types.TString{}))
	assert.False(t, ok)
}

func TestBindPatternTupleRestBindsRemainder(t *testing.T) {
	c := New()
	p := &ast.TuplePattern{
		Elements: []ast.Pattern{
			&ast.Identifier{Name: "first", Pos: pos()},
			&ast.RestPattern{Name: "rest", Pos: pos()},
		},
		Pos: pos(),
	}
	ok := c.BindPattern(p, types.TupleType(types.TInt{}, types.TString{}, types.TBool{}))
	assert.True(t, ok)
	rest, found := c.Env().Lookup("rest")
	require.True(t, found)
	assert.Equal(t, types.TupleType(types.TString{}, types.TBool{}), rest)
}

func TestBindConstructorPatternSome(t *testing.T) {
	c := New()
	p := &ast.ConstructorPattern{Name: "Some", SubPatterns: []ast.Pattern{&ast.Identifier{Name: "x", Pos: pos()}}, Pos: pos()}
	ok := c.BindPattern(p, types.OptionType(types.TInt{}))
	assert.True(t, ok)
	x, _ := c.Env().Lookup("x")
	assert.Equal(t, types.TInt{}, x)
}

func TestBindConstructorPatternNone(t *testing.T) {
	c := New()
	p := &ast.ConstructorPattern{Name: "None", Pos: pos()}
	assert.True(t, c.BindPattern(p, types.OptionType(types.TInt{})))
}

func TestBindConstructorPatternResultOkErr(t *testing.T) {
	c := New()
	okPat := &ast.ConstructorPattern{Name: "Ok", SubPatterns: []ast.Pattern{&ast.Identifier{Name: "v", Pos: pos()}}, Pos: pos()}
	assert.True(t, c.BindPattern(okPat, types.ResultType(types.TInt{}, types.TString{})))
	v, _ := c.Env().Lookup("v")
	assert.Equal(t, types.TInt{}, v)

	errPat := &ast.ConstructorPattern{Name: "Err", SubPatterns: []ast.Pattern{&ast.Identifier{Name: "e", Pos: pos()}}, Pos: pos()}
	assert.True(t, c.BindPattern(errPat, types.ResultType(types.TInt{}, types.TString{})))
	e, _ := c.Env().Lookup("e")
	assert.Equal(t, types.TString{}, e)
}

func TestBindConstructorPatternUserDefinedVariant(t *testing.T) {
	c := New()
	variant := &ast.VariantType{
		Cases: []*ast.VariantCase{
			{Name: "Circle", Fields: []ast.TypeExpr{&ast.NamedType{Name: "Float", Pos: pos()}}, Pos: pos()},
		},
		Pos: pos(),
	}
	c.registerVariantConstructors("Shape", variant)

	p := &ast.ConstructorPattern{Name: "Circle", SubPatterns: []ast.Pattern{&ast.Identifier{Name: "r", Pos: pos()}}, Pos: pos()}
	ok := c.BindPattern(p, types.Con("Shape"))
	assert.True(t, ok)
	r, found := c.Env().Lookup("r")
	require.True(t, found)
	assert.Equal(t, types.TFloat{}, r)
}

func TestBindConstructorPatternArityMismatchForUserDefinedVariant(t *testing.T) {
	c := New()
	variant := &ast.VariantType{
		Cases: []*ast.VariantCase{
			{Name: "Circle", Fields: []ast.TypeExpr{&ast.NamedType{Name: "Float", Pos: pos()}}, Pos: pos()},
		},
		Pos: pos(),
	}
	c.registerVariantConstructors("Shape", variant)

	p := &ast.ConstructorPattern{Name: "Circle", Pos: pos()}
	ok := c.BindPattern(p, types.Con("Shape"))
	assert.False(t, ok)
}

package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/types"
)

// Each test below is grounded on one end-to-end program outcome and
// exercises the full pipeline through the public Checker API rather than
// a single inference call, the way cmd/typecheck's runCheck does.

func TestScenarioSimpleArithmeticLet(t *testing.T) {
	c := New()
	stmts := []ast.Stmt{
		&ast.Let{
			Pattern: ident("x"),
			Value:   &ast.BinaryOp{Op: "+", Left: lit(ast.IntLit, "1"), Right: lit(ast.IntLit, "2"), Pos: pos()},
			Pos:     pos(),
		},
	}
	c.CheckStmts(stmts)
	require.False(t, c.HasErrors(), c.FirstError())
	got, ok := c.env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.TInt{}, types.Walk(got))
}

func TestScenarioEmptyListAnnotationUnifiesElementType(t *testing.T) {
	c := New()
	stmts := []ast.Stmt{
		&ast.Let{Pattern: ident("xs"), Value: &ast.List{Pos: pos()}, Pos: pos()},
		&ast.Let{
			Pattern:    ident("ys"),
			Annotation: &ast.NamedType{Name: "List", Args: []ast.TypeExpr{&ast.NamedType{Name: "Int", Pos: pos()}}, Pos: pos()},
			Value:      ident("xs"),
			Pos:        pos(),
		},
	}
	c.CheckStmts(stmts)
	require.False(t, c.HasErrors(), c.FirstError())
	ys, ok := c.env.Lookup("ys")
	require.True(t, ok)
	assert.Equal(t, types.ListType(types.TInt{}), types.Walk(ys))
}

func TestScenarioIdentityFunctionInstantiatesFreshPerCallSite(t *testing.T) {
	c := New()
	idFn := &ast.FuncDecl{
		Name:   "id",
		Params: []*ast.Param{{Name: "x", Pos: pos()}},
		Body:   ident("x"),
		Pos:    pos(),
	}
	c.CheckStmts([]ast.Stmt{idFn})
	require.False(t, c.HasErrors(), c.FirstError())

	intCall := c.Infer(&ast.Call{Func: ident("id"), Args: []ast.Expr{lit(ast.IntLit, "1")}, Pos: pos()})
	strCall := c.Infer(&ast.Call{Func: ident("id"), Args: []ast.Expr{lit(ast.StringLit, "a")}, Pos: pos()})
	assert.False(t, c.HasErrors(), c.FirstError())
	assert.Equal(t, types.TInt{}, types.Walk(intCall))
	assert.Equal(t, types.TString{}, types.Walk(strCall))
}

func TestScenarioOkAnnotatedAsResult(t *testing.T) {
	c := New()
	stmts := []ast.Stmt{
		&ast.Let{
			Pattern: ident("r"),
			Annotation: &ast.NamedType{Name: "Result", Args: []ast.TypeExpr{
				&ast.NamedType{Name: "Int", Pos: pos()},
				&ast.NamedType{Name: "String", Pos: pos()},
			}, Pos: pos()},
			Value: &ast.Call{Func: ident("Ok"), Args: []ast.Expr{lit(ast.IntLit, "1")}, Pos: pos()},
			Pos:   pos(),
		},
	}
	c.CheckStmts(stmts)
	require.False(t, c.HasErrors(), c.FirstError())
	r, ok := c.env.Lookup("r")
	require.True(t, ok)
	assert.Equal(t, types.ResultType(types.TInt{}, types.TString{}), types.Walk(r))
}

func TestScenarioIntPlusStringReportsSingleErrorAndErrorType(t *testing.T) {
	c := New()
	b := &ast.BinaryOp{Op: "+", Left: lit(ast.IntLit, "1"), Right: lit(ast.StringLit, "x"), Pos: pos()}
	result := c.Infer(b)
	assert.True(t, types.IsError(result))
	require.Len(t, c.Errors(), 1)
	assert.Contains(t, c.Errors()[0], "Cannot apply '+' to Int and String")
}

func TestScenarioRecursiveFunctionParamUnifiesViaPlus(t *testing.T) {
	c := New()
	loopFn := &ast.FuncDecl{
		Name:   "loop",
		Params: []*ast.Param{{Name: "x", Pos: pos()}},
		Body: &ast.Call{
			Func: ident("loop"),
			Args: []ast.Expr{&ast.BinaryOp{Op: "+", Left: ident("x"), Right: lit(ast.IntLit, "1"), Pos: pos()}},
			Pos:  pos(),
		},
		Pos: pos(),
	}
	c.CheckStmts([]ast.Stmt{loopFn})
	require.False(t, c.HasErrors(), c.FirstError())

	fnType, ok := c.env.Lookup("loop")
	require.True(t, ok)
	fn, ok := types.Walk(fnType).(types.TFn)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, types.TInt{}, types.Walk(fn.Params[0]))
}

func TestScenarioMatchOverOptionReturnsInt(t *testing.T) {
	c := New()
	m := &ast.Match{
		Scrutinee: &ast.Call{Func: ident("Some"), Args: []ast.Expr{lit(ast.IntLit, "1")}, Pos: pos()},
		Cases: []*ast.Case{
			{Pattern: &ast.ConstructorPattern{Name: "Some", SubPatterns: []ast.Pattern{ident("n")}, Pos: pos()}, Body: ident("n"), Pos: pos()},
			{Pattern: &ast.ConstructorPattern{Name: "None", Pos: pos()}, Body: lit(ast.IntLit, "0"), Pos: pos()},
		},
		Pos: pos(),
	}
	result := c.Infer(m)
	assert.False(t, c.HasErrors(), c.FirstError())
	assert.Equal(t, types.TInt{}, types.Walk(result))
}

// TestScenarioLetBoundLambdaIsMonomorphicAcrossCalls grounds the repo's
// chosen Open-Question resolution: a let-bound lambda's parameter
// variable is shared, not refreshed, across its call sites, so the first
// call's resolved type constrains every later call.
func TestScenarioLetBoundLambdaIsMonomorphicAcrossCalls(t *testing.T) {
	c := New()
	c.env.PushScope()
	defer c.env.PopScope()

	letStmt := &ast.Let{
		Pattern: ident("f"),
		Value: &ast.Lambda{
			Params: []*ast.Param{{Name: "a", Pos: pos()}},
			Body:   ident("a"),
			Pos:    pos(),
		},
		Pos: pos(),
	}
	c.CheckStmt(letStmt)
	require.False(t, c.HasErrors(), c.FirstError())

	first := c.Infer(&ast.Call{Func: ident("f"), Args: []ast.Expr{lit(ast.IntLit, "1")}, Pos: pos()})
	assert.False(t, c.HasErrors(), c.FirstError())
	assert.Equal(t, types.TInt{}, types.Walk(first))

	second := c.Infer(&ast.Call{Func: ident("f"), Args: []ast.Expr{lit(ast.IntLit, "2")}, Pos: pos()})
	assert.False(t, c.HasErrors(), c.FirstError())
	assert.Equal(t, types.TInt{}, types.Walk(second))

	c.ClearErrors()
	mismatched := c.Infer(&ast.Call{Func: ident("f"), Args: []ast.Expr{lit(ast.StringLit, "x")}, Pos: pos()})
	assert.True(t, types.IsError(mismatched))
	assert.True(t, c.HasErrors())
}

func TestScenarioEnvironmentStackBalanceAfterCheckStmts(t *testing.T) {
	c := New()
	depthBefore := c.env.Depth()
	stmts := []ast.Stmt{
		&ast.Let{Pattern: ident("x"), Value: lit(ast.IntLit, "1"), Pos: pos()},
		&ast.FuncDecl{Name: "f", Params: []*ast.Param{{Name: "n", Pos: pos()}}, Body: ident("n"), Pos: pos()},
	}
	c.CheckStmts(stmts)
	assert.False(t, c.HasErrors(), c.FirstError())
	assert.Equal(t, depthBefore, c.env.Depth())
}

func TestScenarioTwoPassForwardReferenceOrderIsImmaterial(t *testing.T) {
	forward := New()
	forward.CheckStmts([]ast.Stmt{
		&ast.FuncDecl{Name: "a", Params: nil, Body: &ast.Call{Func: ident("b"), Pos: pos()}, Pos: pos()},
		&ast.FuncDecl{Name: "b", Params: nil, Body: lit(ast.IntLit, "1"), Pos: pos()},
	})
	assert.False(t, forward.HasErrors(), forward.FirstError())

	backward := New()
	backward.CheckStmts([]ast.Stmt{
		&ast.FuncDecl{Name: "b", Params: nil, Body: lit(ast.IntLit, "1"), Pos: pos()},
		&ast.FuncDecl{Name: "a", Params: nil, Body: &ast.Call{Func: ident("b"), Pos: pos()}, Pos: pos()},
	})
	assert.False(t, backward.HasErrors(), backward.FirstError())
}

// TestScenarioErrorAbsorptionSuppressesCascades grounds invariant 5: once
// an operand is already Error, the enclosing operator reports nothing
// further about that same sub-expression.
func TestScenarioErrorAbsorptionSuppressesCascades(t *testing.T) {
	c := New()
	undefined := ident("undefined_name")
	outer := &ast.BinaryOp{Op: "+", Left: undefined, Right: lit(ast.IntLit, "1"), Pos: pos()}
	result := c.Infer(outer)
	assert.True(t, types.IsError(result))
	assert.Len(t, c.Errors(), 1)
}

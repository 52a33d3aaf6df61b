package checker

import (
	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/diagnostics"
	"github.com/typeforge/checker/internal/types"
)

// CheckProgram runs the two-pass statement checker (§4.7) over an entire
// program in the checker's current (global) scope.
func (c *Checker) CheckProgram(prog *ast.Program) {
	c.CheckStmts(prog.Statements)
}

// CheckStmts hoists every function and type signature in stmts before
// checking each statement's body, so mutual and forward recursion need
// no explicit forward declaration.
func (c *Checker) CheckStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		c.hoist(stmt)
	}
	for _, stmt := range stmts {
		c.CheckStmt(stmt)
	}
}

func (c *Checker) hoist(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.FuncDecl:
		c.Define(s.Name, c.hoistedFuncType(s))
		c.schemeNames[s.Name] = true
	case *ast.TypeDecl:
		c.hoistTypeDecl(s)
	}
}

// hoistedFuncType builds a function's declared type from its parameter
// and return annotations, using a fresh Var wherever an annotation is
// absent (§4.7 signature hoisting), except that `main` without a return
// annotation defaults to Unit rather than a fresh Var.
func (c *Checker) hoistedFuncType(f *ast.FuncDecl) types.Type {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		if p.Type != nil {
			params[i] = c.Resolve(p.Type)
		} else {
			params[i] = types.NewVar(p.Name)
		}
	}

	var result types.Type
	switch {
	case f.ReturnType != nil:
		result = c.Resolve(f.ReturnType)
	case f.Name == "main":
		result = types.TUnit{}
	default:
		result = types.NewVar(f.Name + ".result")
	}
	return types.Fn(result, params...)
}

func (c *Checker) hoistTypeDecl(t *ast.TypeDecl) {
	c.env.DefineType(t.Name, types.Con(t.Name))
	if variant, ok := t.Definition.(*ast.VariantType); ok {
		c.registerVariantConstructors(t.Name, variant)
	}
}

// CheckStmt runs the per-kind body-checking rule for one statement
// (§4.7), recording diagnostics on the checker's accumulator.
func (c *Checker) CheckStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Let:
		c.checkLet(s)
	case *ast.ExprStmt:
		c.Infer(s.Expr)
	case *ast.FuncDecl:
		c.checkFuncDecl(s)
	case *ast.TypeDecl:
		c.checkTypeDecl(s)
	case *ast.ReservedStmt:
		// no-op: return/import/defer/break/continue/trait/impl/newtype/module
	default:
		c.errorAt(stmt.Position(), "unsupported statement kind %T", stmt)
	}
}

func (c *Checker) checkLet(l *ast.Let) {
	value := c.Infer(l.Value)
	if l.Annotation != nil {
		annotated := c.Resolve(l.Annotation)
		if !types.IsError(value) {
			if err := types.Unify(annotated, value); err != nil {
				c.reportAt(l.Pos, diagnostics.CodeUnification,
					"let %s: cannot unify declared type %s with inferred type %s",
					l.Pattern, types.ToPrintableString(annotated), types.ToPrintableString(value))
				return
			}
		}
		c.BindPattern(l.Pattern, types.Substitute(annotated))
		return
	}
	c.BindPattern(l.Pattern, value)
}

// checkFuncDecl checks a function's body against the exact param/result
// variables hoistedFuncType registered for it (§4.7), not a second,
// disconnected set — otherwise a recursive self-call inside the body can
// never refine the signature callers actually look up (§8 S6).
func (c *Checker) checkFuncDecl(f *ast.FuncDecl) {
	c.env.PushScope()
	defer c.env.PopScope()

	hoisted, ok := c.env.Lookup(f.Name)
	fn, isFn := types.Walk(hoisted).(types.TFn)
	if !ok || !isFn {
		fn, _ = c.hoistedFuncType(f).(types.TFn)
	}

	for i, p := range f.Params {
		c.env.Define(p.Name, fn.Params[i])
	}

	body := c.Infer(f.Body)
	if types.IsError(body) {
		return
	}
	if err := types.Unify(fn.Result, body); err != nil {
		c.reportAt(f.Pos, diagnostics.CodeUnification,
			"function %s: body type %s does not unify with declared return type %s",
			f.Name, types.ToPrintableString(body), types.ToPrintableString(types.Substitute(fn.Result)))
	}
}

func (c *Checker) checkTypeDecl(t *ast.TypeDecl) {
	switch def := t.Definition.(type) {
	case *ast.VariantType:
		for _, vc := range def.Cases {
			for _, field := range vc.Fields {
				c.ResolveStrict(field)
			}
		}
	case *ast.RecordTypeDef:
		for _, field := range def.Fields {
			c.ResolveStrict(field.Type)
		}
	}
}

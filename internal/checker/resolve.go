package checker

import (
	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/diagnostics"
	"github.com/typeforge/checker/internal/types"
)

var wellKnownArity = map[string]int{
	"List":   1,
	"Option": 1,
	"Result": 2,
	"Map":    2,
}

// Resolve converts a syntactic type annotation into an internal type in
// forgiving mode (§4.10): an unknown bare name becomes Con(name, nil)
// rather than an error, since it may name a type declared elsewhere in
// the program.
func (c *Checker) Resolve(expr ast.TypeExpr) types.Type {
	return c.resolve(expr, false)
}

// ResolveStrict is like Resolve but rejects unknown bare names (used for
// variant/record field annotations, §4.7/§4.10).
func (c *Checker) ResolveStrict(expr ast.TypeExpr) types.Type {
	return c.resolve(expr, true)
}

func (c *Checker) resolve(expr ast.TypeExpr, strict bool) types.Type {
	switch t := expr.(type) {
	case *ast.NamedType:
		return c.resolveNamed(t, strict)
	case *ast.FuncTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolve(p, strict)
		}
		result := c.resolve(t.Result, strict)
		return types.Fn(result, params...)
	case *ast.TupleTypeExpr:
		if len(t.Elements) == 0 {
			return types.TUnit{}
		}
		elems := make([]types.Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = c.resolve(e, strict)
		}
		return types.TupleType(elems...)
	default:
		c.errors.AddAt(posToLoc(expr.Position()), "unknown type-expression kind %T", expr)
		return types.NewError("unknown type expression")
	}
}

func (c *Checker) resolveNamed(t *ast.NamedType, strict bool) types.Type {
	switch t.Name {
	case "Int":
		return types.TInt{}
	case "Float":
		return types.TFloat{}
	case "String":
		return types.TString{}
	case "Bool":
		return types.TBool{}
	case "()":
		return types.TUnit{}
	}

	if arity, ok := wellKnownArity[t.Name]; ok && len(t.Args) == arity {
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.resolve(a, strict)
		}
		return types.Con(t.Name, args...)
	}

	if len(t.Args) > 0 {
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.resolve(a, strict)
		}
		return types.Con(t.Name, args...)
	}

	if _, ok := c.env.LookupType(t.Name); ok {
		return types.Con(t.Name)
	}

	if strict {
		suggestion := diagnostics.Suggest(t.Name, c.env.TypeNames())
		rep := &diagnostics.Report{
			Code:    diagnostics.CodeReference,
			Message: formatUnknownType(t.Name, suggestion),
			Span:    &ast.Span{Start: t.Pos},
		}
		c.errors.AddReport(rep)
		return types.NewError(rep.Message)
	}

	return types.Con(t.Name)
}

func formatUnknownType(name, suggestion string) string {
	if suggestion == "" {
		return "unknown type " + quote(name)
	}
	return "unknown type " + quote(name) + " (did you mean " + quote(suggestion) + "?)"
}

func quote(s string) string { return "\"" + s + "\"" }

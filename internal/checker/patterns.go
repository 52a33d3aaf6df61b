package checker

import (
	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/diagnostics"
	"github.com/typeforge/checker/internal/types"
)

// seedWellKnownConstructors is a hook for registering constructor
// metadata ahead of any user type declarations. Some/None/Ok/Err are
// special-cased directly in bindConstructorPattern (§4.8) rather than
// routed through the constructors table, since their shape comes from
// types.IsOption/types.IsResult, not from a user TypeDecl.
func seedWellKnownConstructors(c *Checker) {}

// registerVariantConstructors records each case of a variant type
// declaration so later constructor patterns naming it can resolve their
// sub-pattern types (§9: "constructor patterns for user-defined sum
// types").
func (c *Checker) registerVariantConstructors(typeName string, variant *ast.VariantType) {
	for _, vc := range variant.Cases {
		c.constructors[vc.Name] = constructorInfo{typeName: typeName, fields: vc.Fields}
	}
}

// BindPattern binds pattern against t in the current scope (§4.8).
// Returns false (and records a diagnostic) on a shape mismatch; callers
// abort the enclosing check on false.
func (c *Checker) BindPattern(pattern ast.Pattern, t types.Type) bool {
	if types.IsError(t) {
		return true
	}

	switch p := pattern.(type) {
	case *ast.Identifier:
		c.env.Define(p.Name, t)
		return true

	case *ast.WildcardPattern:
		return true

	case *ast.Literal:
		return c.bindLiteralPattern(p, t)

	case *ast.TuplePattern:
		return c.bindTuplePattern(p, t)

	case *ast.ConstructorPattern:
		return c.bindConstructorPattern(p, t)

	case *ast.RestPattern:
		if p.Name != "" {
			c.env.Define(p.Name, t)
		}
		return true

	default:
		c.errorAt(pattern.Position(), "unsupported pattern kind %T", pattern)
		return false
	}
}

// bindLiteralPattern enforces that the literal's own ground type matches
// the scrutinee type (§9: "literal patterns in match" is resolved to
// enforce this, rather than the teacher's no-op).
func (c *Checker) bindLiteralPattern(p *ast.Literal, t types.Type) bool {
	var litType types.Type
	switch p.Kind {
	case ast.IntLit:
		litType = types.TInt{}
	case ast.FloatLit:
		litType = types.TFloat{}
	case ast.StringLit:
		litType = types.TString{}
	case ast.BoolLit:
		litType = types.TBool{}
	}
	if err := types.Unify(litType, t); err != nil {
		c.reportAt(p.Pos, diagnostics.CodeShape,
			"pattern literal has type %s, expected %s", types.ToPrintableString(litType), types.ToPrintableString(t))
		return false
	}
	return true
}

func (c *Checker) bindTuplePattern(p *ast.TuplePattern, t types.Type) bool {
	tup, ok := types.Walk(t).(types.TTuple)
	if !ok {
		c.reportAt(p.Pos, diagnostics.CodeShape, "cannot destructure %s as a tuple pattern", types.ToPrintableString(t))
		return false
	}

	// A trailing RestPattern makes this a variable-arity match: bind the
	// remainder as a tuple of the leftover element types.
	elements := p.Elements
	var rest *ast.RestPattern
	if n := len(elements); n > 0 {
		if r, ok := elements[n-1].(*ast.RestPattern); ok {
			rest = r
			elements = elements[:n-1]
		}
	}

	if rest == nil && len(elements) != len(tup.Elements) {
		c.reportAt(p.Pos, diagnostics.CodeArity,
			"tuple pattern expects %d elements, got %d", len(tup.Elements), len(elements))
		return false
	}
	if rest != nil && len(elements) > len(tup.Elements) {
		c.reportAt(p.Pos, diagnostics.CodeArity,
			"tuple pattern expects at least %d elements, got %d", len(elements), len(tup.Elements))
		return false
	}

	ok = true
	for i, sub := range elements {
		if !c.BindPattern(sub, tup.Elements[i]) {
			ok = false
		}
	}
	if rest != nil && rest.Name != "" {
		remainder := types.TupleType(tup.Elements[len(elements):]...)
		c.env.Define(rest.Name, remainder)
	}
	return ok
}

func (c *Checker) bindConstructorPattern(p *ast.ConstructorPattern, t types.Type) bool {
	walked := types.Walk(t)

	if types.IsOption(walked) {
		con := walked.(types.TCon)
		elem := con.Args[0]
		switch p.Name {
		case "Some":
			if len(p.SubPatterns) != 1 {
				c.reportAt(p.Pos, diagnostics.CodeArity, "Some expects 1 sub-pattern, got %d", len(p.SubPatterns))
				return false
			}
			return c.BindPattern(p.SubPatterns[0], elem)
		case "None":
			if len(p.SubPatterns) != 0 {
				c.reportAt(p.Pos, diagnostics.CodeArity, "None expects 0 sub-patterns, got %d", len(p.SubPatterns))
				return false
			}
			return true
		}
	}

	if types.IsResult(walked) {
		con := walked.(types.TCon)
		ok, errT := con.Args[0], con.Args[1]
		switch p.Name {
		case "Ok":
			if len(p.SubPatterns) != 1 {
				c.reportAt(p.Pos, diagnostics.CodeArity, "Ok expects 1 sub-pattern, got %d", len(p.SubPatterns))
				return false
			}
			return c.BindPattern(p.SubPatterns[0], ok)
		case "Err":
			if len(p.SubPatterns) != 1 {
				c.reportAt(p.Pos, diagnostics.CodeArity, "Err expects 1 sub-pattern, got %d", len(p.SubPatterns))
				return false
			}
			return c.BindPattern(p.SubPatterns[0], errT)
		}
	}

	if info, ok := c.constructors[p.Name]; ok {
		if len(p.SubPatterns) != len(info.fields) {
			c.reportAt(p.Pos, diagnostics.CodeArity,
				"%s expects %d sub-patterns, got %d", p.Name, len(info.fields), len(p.SubPatterns))
			return false
		}
		okAll := true
		for i, sub := range p.SubPatterns {
			fieldType := c.ResolveStrict(info.fields[i])
			if !c.BindPattern(sub, fieldType) {
				okAll = false
			}
		}
		return okAll
	}

	// Unknown/user-defined constructor with no registered type: no-op
	// per §4.8 (a declared open question for constructors this checker
	// has no metadata for).
	return true
}

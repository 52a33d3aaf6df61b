package checker

import (
	"strconv"

	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/diagnostics"
	"github.com/typeforge/checker/internal/types"
)

func (c *Checker) inferIndex(ix *ast.Index) types.Type {
	obj := c.Infer(ix.Object)
	idx := c.Infer(ix.Index)
	if types.IsError(obj) || types.IsError(idx) {
		return types.NewError("")
	}

	walked := types.Walk(obj)
	con, ok := walked.(types.TCon)
	if !ok {
		return c.reportAt(ix.Pos, diagnostics.CodeShape, "cannot index into %s", types.ToPrintableString(obj))
	}

	switch {
	case con.Name == "List" && len(con.Args) == 1:
		if err := types.Unify(idx, types.TInt{}); err != nil {
			return c.reportAt(ix.Index.Position(), diagnostics.CodeShape, "list index must be Int, got %s", types.ToPrintableString(idx))
		}
		return types.Substitute(con.Args[0])
	case con.Name == "Map" && len(con.Args) == 2:
		if err := types.Unify(idx, con.Args[0]); err != nil {
			return c.reportAt(ix.Index.Position(), diagnostics.CodeShape,
				"map key must be %s, got %s", types.ToPrintableString(con.Args[0]), types.ToPrintableString(idx))
		}
		return types.Substitute(con.Args[1])
	default:
		return c.reportAt(ix.Pos, diagnostics.CodeShape, "cannot index into %s", types.ToPrintableString(obj))
	}
}

// dotSegments walks a left-associative Dot/Identifier chain into its
// name segments, used to try a static module-path lookup before falling
// back to ordinary object inference (§4.5, §4.6).
func dotSegments(e ast.Expr) ([]string, bool) {
	switch v := e.(type) {
	case *ast.Identifier:
		return []string{v.Name}, true
	case *ast.Dot:
		base, ok := dotSegments(v.Object)
		if !ok {
			return nil, false
		}
		return append(base, v.Field), true
	default:
		return nil, false
	}
}

func (c *Checker) inferDot(d *ast.Dot) types.Type {
	if segments, ok := dotSegments(d.Object); ok {
		full := append(append([]string{}, segments...), d.Field)
		if module, name, ok := types.BuildModulePath(full); ok {
			if sig, found := types.LookupModuleFunc(module, name); found {
				return types.Instantiate(sig)
			}
			return c.reportAt(d.Pos, diagnostics.CodeReference, "unknown function %q in module %q", d.Field, module)
		}
	}

	obj := c.Infer(d.Object)
	if types.IsError(obj) {
		return types.NewError("")
	}

	if tup, ok := types.Walk(obj).(types.TTuple); ok {
		idx, err := strconv.Atoi(d.Field)
		if err != nil || idx < 0 || idx >= len(tup.Elements) {
			return c.reportAt(d.Pos, diagnostics.CodeShape, "tuple has no field %q", d.Field)
		}
		return types.Substitute(tup.Elements[idx])
	}

	// §9: record field access is a declared open question, kept as an
	// explicit error rather than introducing a record type.
	return c.reportAt(d.Pos, diagnostics.CodeShape, "cannot access field %q", d.Field)
}

func (c *Checker) inferRange(r *ast.Range) types.Type {
	start := c.Infer(r.Start)
	end := c.Infer(r.End)
	if types.IsError(start) || types.IsError(end) {
		return types.NewError("")
	}
	if err := types.Unify(start, end); err != nil {
		return c.reportAt(r.Pos, diagnostics.CodeShape,
			"range bounds have different types: %s and %s", types.ToPrintableString(start), types.ToPrintableString(end))
	}
	return types.RangeType(types.Substitute(start))
}

func (c *Checker) inferMapLiteral(m *ast.MapLiteral) types.Type {
	if len(m.Entries) == 0 {
		return types.MapType(types.NewVar("k"), types.NewVar("v"))
	}
	keyType := c.Infer(m.Entries[0].Key)
	valType := c.Infer(m.Entries[0].Value)
	if types.IsError(keyType) || types.IsError(valType) {
		return types.NewError("")
	}
	for _, entry := range m.Entries[1:] {
		k := c.Infer(entry.Key)
		v := c.Infer(entry.Value)
		if types.IsError(k) || types.IsError(v) {
			return types.NewError("")
		}
		if err := types.Unify(keyType, k); err != nil {
			return c.reportAt(entry.Key.Position(), diagnostics.CodeShape,
				"map key has type %s, expected %s", types.ToPrintableString(k), types.ToPrintableString(keyType))
		}
		if err := types.Unify(valType, v); err != nil {
			return c.reportAt(entry.Value.Position(), diagnostics.CodeShape,
				"map value has type %s, expected %s", types.ToPrintableString(v), types.ToPrintableString(valType))
		}
	}
	return types.MapType(types.Substitute(keyType), types.Substitute(valType))
}

func (c *Checker) inferListComprehension(l *ast.ListComprehension) types.Type {
	iterable := c.Infer(l.Iterable)
	elem := c.comprehensionElementType(iterable, l.Iterable.Position())

	c.env.PushScope()
	defer c.env.PopScope()
	c.env.Define(l.Name, elem)

	if l.Cond != nil {
		cond := c.Infer(l.Cond)
		if !types.IsError(cond) {
			if err := types.Unify(cond, types.TBool{}); err != nil {
				c.reportAt(l.Cond.Position(), diagnostics.CodeShape, "comprehension filter must be Bool, got %s", types.ToPrintableString(cond))
			}
		}
	}

	body := c.Infer(l.Body)
	if types.IsError(body) {
		return types.NewError("")
	}
	return types.ListType(types.Substitute(body))
}

// comprehensionElementType is like elementType but a Range's element is
// always Int (§4.6 "whose element type is Int"), independent of the
// bound type the Range was built from.
func (c *Checker) comprehensionElementType(t types.Type, pos ast.Pos) types.Type {
	if types.IsError(t) {
		return t
	}
	walked := types.Walk(t)
	con, ok := walked.(types.TCon)
	if !ok {
		return c.reportAt(pos, diagnostics.CodeShape, "expected a List or Range, got %s", types.ToPrintableString(t))
	}
	switch con.Name {
	case "List":
		return con.Args[0]
	case "Range":
		return types.TInt{}
	default:
		return c.reportAt(pos, diagnostics.CodeShape, "expected a List or Range, got %s", types.ToPrintableString(t))
	}
}

func (c *Checker) inferInterpolatedString(s *ast.InterpolatedString) types.Type {
	anyErr := false
	for _, part := range s.Parts {
		if types.IsError(c.Infer(part)) {
			anyErr = true
		}
	}
	if anyErr {
		return types.NewError("")
	}
	return types.TString{}
}

func (c *Checker) inferTry(t *ast.Try) types.Type {
	operand := c.Infer(t.Expr)
	if types.IsError(operand) {
		return types.NewError("")
	}
	walked := types.Walk(operand)
	if !types.IsResult(walked) {
		return c.reportAt(t.Pos, diagnostics.CodeShape, "? requires a Result, got %s", types.ToPrintableString(operand))
	}
	con := walked.(types.TCon)
	return types.Substitute(con.Args[0])
}

// inferRecord has no representable result: the core carries no record
// type (§9, record field access kept as a declared error), so a record
// literal is rejected the same way field access on one would be.
func (c *Checker) inferRecord(r *ast.Record) types.Type {
	for _, f := range r.Fields {
		c.Infer(f.Value)
	}
	return c.reportAt(r.Pos, diagnostics.CodeNotImplemented, "record literals are not implemented")
}

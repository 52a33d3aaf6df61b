package checker

import (
	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/diagnostics"
	"github.com/typeforge/checker/internal/types"
)

func (c *Checker) inferIf(i *ast.If) types.Type {
	cond := c.Infer(i.Condition)
	if !types.IsError(cond) {
		if err := types.Unify(cond, types.TBool{}); err != nil {
			c.reportAt(i.Condition.Position(), diagnostics.CodeShape, "if condition must be Bool, got %s", types.ToPrintableString(cond))
		}
	}

	then := c.Infer(i.Then)
	if i.Else == nil {
		return types.TUnit{}
	}

	els := c.Infer(i.Else)
	if types.IsError(then) || types.IsError(els) {
		return types.NewError("")
	}
	if err := types.Unify(then, els); err != nil {
		return c.reportAt(i.Pos, diagnostics.CodeShape,
			"if branches have different types: %s and %s", types.ToPrintableString(then), types.ToPrintableString(els))
	}
	return types.Substitute(then)
}

func (c *Checker) inferBlock(b *ast.Block) types.Type {
	c.env.PushScope()
	defer c.env.PopScope()

	for _, stmt := range b.Statements {
		c.CheckStmt(stmt)
	}
	if b.Result == nil {
		return types.TUnit{}
	}
	return c.Infer(b.Result)
}

func (c *Checker) inferMatch(m *ast.Match) types.Type {
	scrutinee := c.Infer(m.Scrutinee)
	if len(m.Cases) == 0 {
		return c.errorAt(m.Pos, "match requires at least one case")
	}

	var resultType types.Type
	for idx, arm := range m.Cases {
		c.env.PushScope()
		c.BindPattern(arm.Pattern, scrutinee)
		if arm.Guard != nil {
			guard := c.Infer(arm.Guard)
			if !types.IsError(guard) {
				if err := types.Unify(guard, types.TBool{}); err != nil {
					c.reportAt(arm.Guard.Position(), diagnostics.CodeShape, "match guard must be Bool, got %s", types.ToPrintableString(guard))
				}
			}
		}
		body := c.Infer(arm.Body)
		c.env.PopScope()

		if types.IsError(body) {
			resultType = types.NewError("")
			continue
		}
		if idx == 0 {
			resultType = body
			continue
		}
		if types.IsError(resultType) {
			continue
		}
		if err := types.Unify(resultType, body); err != nil {
			c.reportAt(arm.Pos, diagnostics.CodeShape,
				"match arm has type %s, expected %s", types.ToPrintableString(body), types.ToPrintableString(resultType))
			resultType = types.NewError("")
		}
	}
	return types.Substitute(resultType)
}

func (c *Checker) inferBind(b *ast.Bind) types.Type {
	value := c.Infer(b.Value)
	if types.IsError(value) {
		c.env.Define(b.Name, value)
		return value
	}
	walked := types.Walk(value)
	if !types.IsResult(walked) {
		return c.reportAt(b.Pos, diagnostics.CodeShape, "bind requires a Result, got %s", types.ToPrintableString(value))
	}
	con := walked.(types.TCon)
	okType := con.Args[0]
	c.env.Define(b.Name, okType)
	return okType
}

func (c *Checker) inferWith(w *ast.With) types.Type {
	c.env.PushScope()
	defer c.env.PopScope()

	var errType types.Type
	for _, bind := range w.Binds {
		value := c.Infer(bind.Value)
		if types.IsError(value) {
			c.env.Define(bind.Name, value)
			continue
		}
		walked := types.Walk(value)
		if !types.IsResult(walked) {
			c.reportAt(bind.Pos, diagnostics.CodeShape, "with binding requires a Result, got %s", types.ToPrintableString(value))
			continue
		}
		con := walked.(types.TCon)
		c.env.Define(bind.Name, con.Args[0])
		if errType == nil {
			errType = con.Args[1]
		} else if err := types.Unify(errType, con.Args[1]); err != nil {
			c.reportAt(bind.Pos, diagnostics.CodeShape,
				"with binding error type %s does not match earlier binding's %s",
				types.ToPrintableString(con.Args[1]), types.ToPrintableString(errType))
		}
	}
	bodyType := c.Infer(w.Body)

	// §9: with-else arms are type-checked like a match over the
	// accumulated error type, sharing the body's result type.
	if errType == nil {
		errType = types.NewVar("with.err")
	}
	for _, arm := range w.Else {
		c.env.PushScope()
		c.BindPattern(arm.Pattern, errType)
		if arm.Guard != nil {
			guard := c.Infer(arm.Guard)
			if !types.IsError(guard) {
				if err := types.Unify(guard, types.TBool{}); err != nil {
					c.reportAt(arm.Guard.Position(), diagnostics.CodeShape, "with-else guard must be Bool, got %s", types.ToPrintableString(guard))
				}
			}
		}
		armType := c.Infer(arm.Body)
		c.env.PopScope()
		if types.IsError(bodyType) || types.IsError(armType) {
			continue
		}
		if err := types.Unify(bodyType, armType); err != nil {
			c.reportAt(arm.Pos, diagnostics.CodeShape,
				"with-else arm has type %s, expected %s", types.ToPrintableString(armType), types.ToPrintableString(bodyType))
		}
	}
	return types.Substitute(bodyType)
}

func (c *Checker) inferLambda(l *ast.Lambda) types.Type {
	c.env.PushScope()
	defer c.env.PopScope()

	params := make([]types.Type, len(l.Params))
	for i, p := range l.Params {
		var pt types.Type
		if p.Type != nil {
			pt = c.Resolve(p.Type)
		} else {
			pt = types.NewVar(p.Name)
		}
		params[i] = pt
		c.env.Define(p.Name, pt)
	}
	body := c.Infer(l.Body)
	return types.Fn(body, params...)
}

func (c *Checker) inferForLoop(f *ast.ForLoop) types.Type {
	iterable := c.Infer(f.Iterable)
	elem := c.elementType(iterable, f.Iterable.Position())

	c.env.PushScope()
	c.env.Define(f.Name, elem)
	c.Infer(f.Body)
	c.env.PopScope()
	return types.TUnit{}
}

// elementType extracts the element type of a List or Range, reporting a
// shape error otherwise.
func (c *Checker) elementType(t types.Type, pos ast.Pos) types.Type {
	if types.IsError(t) {
		return t
	}
	walked := types.Walk(t)
	if con, ok := walked.(types.TCon); ok && len(con.Args) == 1 && (con.Name == "List" || con.Name == "Range") {
		return con.Args[0]
	}
	return c.reportAt(pos, diagnostics.CodeShape, "expected a List or Range, got %s", types.ToPrintableString(t))
}

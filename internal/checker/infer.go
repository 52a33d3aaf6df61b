package checker

import (
	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/diagnostics"
	"github.com/typeforge/checker/internal/types"
)

// Infer is the single recursive procedure of §4.6: it always returns a
// Type and never panics. Failures append a diagnostic and return
// types.TError so the enclosing form can propagate without cascading
// further errors (§7).
func (c *Checker) Infer(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.inferLiteral(e)
	case *ast.Identifier:
		return c.inferIdentifier(e)
	case *ast.BinaryOp:
		return c.inferBinaryOp(e)
	case *ast.UnaryOp:
		return c.inferUnaryOp(e)
	case *ast.List:
		return c.inferList(e)
	case *ast.Tuple:
		return c.inferTuple(e)
	case *ast.Call:
		return c.inferCall(e)
	case *ast.If:
		return c.inferIf(e)
	case *ast.Block:
		return c.inferBlock(e)
	case *ast.Match:
		return c.inferMatch(e)
	case *ast.Bind:
		return c.inferBind(e)
	case *ast.With:
		return c.inferWith(e)
	case *ast.Lambda:
		return c.inferLambda(e)
	case *ast.ForLoop:
		return c.inferForLoop(e)
	case *ast.Index:
		return c.inferIndex(e)
	case *ast.Dot:
		return c.inferDot(e)
	case *ast.Range:
		return c.inferRange(e)
	case *ast.MapLiteral:
		return c.inferMapLiteral(e)
	case *ast.ListComprehension:
		return c.inferListComprehension(e)
	case *ast.InterpolatedString:
		return c.inferInterpolatedString(e)
	case *ast.Try:
		return c.inferTry(e)
	case *ast.Spawn, *ast.Send, *ast.Receive, *ast.RecordUpdate:
		return c.reportAt(expr.Position(), diagnostics.CodeNotImplemented, "%s is not implemented", exprKindName(expr))
	case *ast.Record:
		return c.inferRecord(e)
	default:
		return c.errorAt(expr.Position(), "unsupported expression kind %T", expr)
	}
}

func exprKindName(e ast.Expr) string {
	switch e.(type) {
	case *ast.Spawn:
		return "spawn"
	case *ast.Send:
		return "send"
	case *ast.Receive:
		return "receive"
	case *ast.RecordUpdate:
		return "record update"
	default:
		return "expression"
	}
}

func (c *Checker) inferLiteral(lit *ast.Literal) types.Type {
	switch lit.Kind {
	case ast.IntLit:
		return types.TInt{}
	case ast.FloatLit:
		return types.TFloat{}
	case ast.StringLit:
		return types.TString{}
	case ast.BoolLit:
		return types.TBool{}
	default:
		return c.errorAt(lit.Pos, "unknown literal kind")
	}
}

// inferIdentifier is a plain environment lookup (§4.6 "Identifier"); it
// never instantiates. Instantiation happens only where §4.6 names it
// explicitly: the Call/Pipe call-site step, conditioned on the callee
// being a scheme name (see isSchemeCallee), and the built-in catalog's
// own signature factories.
func (c *Checker) inferIdentifier(id *ast.Identifier) types.Type {
	t, ok := c.env.Lookup(id.Name)
	if !ok {
		suggestion := diagnostics.Suggest(id.Name, c.env.ValueNames())
		msg := "undefined variable: " + id.Name
		if suggestion != "" {
			msg += " (did you mean " + suggestion + "?)"
		}
		return c.reportAt(id.Pos, diagnostics.CodeReference, "%s", msg)
	}
	return t
}

var numericOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true, "**": true}
var compareOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true}
var equalityOps = map[string]bool{"==": true, "!=": true}
var logicalOps = map[string]bool{"and": true, "or": true}

func (c *Checker) inferBinaryOp(b *ast.BinaryOp) types.Type {
	if b.Op == "|>" {
		return c.inferPipe(b)
	}

	left := c.Infer(b.Left)
	right := c.Infer(b.Right)
	if types.IsError(left) || types.IsError(right) {
		return types.NewError("")
	}

	switch {
	case numericOps[b.Op]:
		return c.inferNumericBinary(b, left, right)
	case compareOps[b.Op]:
		lw := types.Walk(left)
		if err := types.Unify(left, right); err != nil || !types.IsComparable(lw) {
			return c.reportAt(b.Pos, diagnostics.CodeShape,
				"cannot compare %s and %s with %q", types.ToPrintableString(left), types.ToPrintableString(right), b.Op)
		}
		return types.TBool{}
	case equalityOps[b.Op]:
		if err := types.Unify(left, right); err != nil {
			return c.reportAt(b.Pos, diagnostics.CodeShape,
				"cannot compare %s and %s with %q", types.ToPrintableString(left), types.ToPrintableString(right), b.Op)
		}
		return types.TBool{}
	case logicalOps[b.Op]:
		if err := types.Unify(left, types.TBool{}); err != nil {
			return c.reportAt(b.Left.Position(), diagnostics.CodeShape, "expected Bool, got %s", types.ToPrintableString(left))
		}
		if err := types.Unify(right, types.TBool{}); err != nil {
			return c.reportAt(b.Right.Position(), diagnostics.CodeShape, "expected Bool, got %s", types.ToPrintableString(right))
		}
		return types.TBool{}
	default:
		return c.errorAt(b.Pos, "unknown binary operator %q", b.Op)
	}
}

func (c *Checker) inferNumericBinary(b *ast.BinaryOp, left, right types.Type) types.Type {
	if b.Op == "+" {
		if _, lok := types.Walk(left).(types.TString); lok {
			if err := types.Unify(right, types.TString{}); err == nil {
				return types.TString{}
			}
		}
	}

	if err := types.Unify(left, right); err != nil {
		return c.reportAt(b.Pos, diagnostics.CodeShape,
			"Cannot apply '%s' to %s and %s", b.Op, types.ToPrintableString(left), types.ToPrintableString(right))
	}
	unified := types.Walk(left)
	switch unified.(type) {
	case types.TInt, types.TFloat:
		return unified
	case *types.TVar:
		// Left unbound after unifying with right (both still variables):
		// bind to Int, the numeric default.
		if err := types.Unify(unified, types.TInt{}); err != nil {
			return c.reportAt(b.Pos, diagnostics.CodeShape, "cannot apply %q to non-numeric operands", b.Op)
		}
		return types.TInt{}
	default:
		return c.reportAt(b.Pos, diagnostics.CodeShape,
			"Cannot apply '%s' to %s and %s", b.Op, types.ToPrintableString(left), types.ToPrintableString(right))
	}
}

func (c *Checker) inferPipe(b *ast.BinaryOp) types.Type {
	call, ok := b.Right.(*ast.Call)
	if !ok {
		return c.errorAt(b.Pos, "right side of |> must be a call")
	}

	leftType := c.Infer(b.Left)
	calleeType := c.Infer(call.Func)
	if types.IsError(leftType) || types.IsError(calleeType) {
		return types.NewError("")
	}

	resolved := types.Walk(calleeType)
	if c.isSchemeCallee(call.Func) {
		resolved = types.Instantiate(resolved)
	}
	fn, ok := resolved.(types.TFn)
	if !ok {
		return c.reportAt(call.Pos, diagnostics.CodeShape, "%s is not callable", types.ToPrintableString(calleeType))
	}

	wantArity := 1 + len(call.Args)
	if len(fn.Params) != wantArity {
		return c.reportAt(call.Pos, diagnostics.CodeArity,
			"expected %d arguments, got %d", len(fn.Params), wantArity)
	}

	if err := types.Unify(fn.Params[0], leftType); err != nil {
		return c.reportAt(b.Left.Position(), diagnostics.CodeUnification,
			"argument 1: cannot unify %s with %s", types.ToPrintableString(leftType), types.ToPrintableString(fn.Params[0]))
	}
	for i, arg := range call.Args {
		argType := c.Infer(arg)
		if types.IsError(argType) {
			return types.NewError("")
		}
		if err := types.Unify(fn.Params[i+1], argType); err != nil {
			return c.reportAt(arg.Position(), diagnostics.CodeUnification,
				"argument %d: cannot unify %s with %s", i+2, types.ToPrintableString(argType), types.ToPrintableString(fn.Params[i+1]))
		}
	}
	return types.Substitute(fn.Result)
}

func (c *Checker) inferUnaryOp(u *ast.UnaryOp) types.Type {
	operand := c.Infer(u.Expr)
	if types.IsError(operand) {
		return operand
	}
	switch u.Op {
	case "-":
		switch types.Walk(operand).(type) {
		case types.TInt:
			return types.TInt{}
		case types.TFloat:
			return types.TFloat{}
		default:
			return c.reportAt(u.Pos, diagnostics.CodeShape, "cannot negate %s", types.ToPrintableString(operand))
		}
	case "not":
		if err := types.Unify(operand, types.TBool{}); err != nil {
			return c.reportAt(u.Pos, diagnostics.CodeShape, "cannot apply not to %s", types.ToPrintableString(operand))
		}
		return types.TBool{}
	default:
		return c.errorAt(u.Pos, "unknown unary operator %q", u.Op)
	}
}

func (c *Checker) inferList(l *ast.List) types.Type {
	if len(l.Elements) == 0 {
		return types.ListType(types.NewVar("a"))
	}
	first := c.Infer(l.Elements[0])
	if types.IsError(first) {
		return types.NewError("")
	}
	for _, elem := range l.Elements[1:] {
		t := c.Infer(elem)
		if types.IsError(t) {
			return types.NewError("")
		}
		if err := types.Unify(first, t); err != nil {
			return c.reportAt(elem.Position(), diagnostics.CodeShape,
				"list element has type %s, expected %s", types.ToPrintableString(t), types.ToPrintableString(first))
		}
	}
	return types.ListType(types.Substitute(first))
}

func (c *Checker) inferTuple(tup *ast.Tuple) types.Type {
	if len(tup.Elements) == 0 {
		return types.TUnit{}
	}
	elems := make([]types.Type, len(tup.Elements))
	for i, e := range tup.Elements {
		elems[i] = c.Infer(e)
	}
	return types.TupleType(elems...)
}

func (c *Checker) inferCall(call *ast.Call) types.Type {
	calleeType := c.Infer(call.Func)
	if types.IsError(calleeType) {
		return types.NewError("")
	}

	resolved := types.Walk(calleeType)
	if c.isSchemeCallee(call.Func) {
		resolved = types.Instantiate(resolved)
	}
	fn, ok := resolved.(types.TFn)
	if !ok {
		return c.reportAt(call.Pos, diagnostics.CodeShape, "%s is not callable", types.ToPrintableString(calleeType))
	}

	if len(fn.Params) != len(call.Args) {
		return c.reportAt(call.Pos, diagnostics.CodeArity,
			"expected %d arguments, got %d", len(fn.Params), len(call.Args))
	}

	anyErr := false
	for i, arg := range call.Args {
		argType := c.Infer(arg)
		if types.IsError(argType) {
			anyErr = true
			continue
		}
		if err := types.Unify(fn.Params[i], argType); err != nil {
			c.reportAt(arg.Position(), diagnostics.CodeUnification,
				"argument %d: cannot unify %s with %s", i+1, types.ToPrintableString(argType), types.ToPrintableString(fn.Params[i]))
			anyErr = true
		}
	}
	if anyErr {
		return types.NewError("")
	}
	return types.Substitute(fn.Result)
}

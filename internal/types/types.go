// Package types implements the internal type representation, the scoped
// type environment, structural unification, instantiation/substitution,
// and the built-in signature catalog used by the type checker.
package types

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Type is the tagged-sum interface implemented by every type variant:
// TInt, TFloat, TString, TBool, TUnit, TError, *TVar, TCon, TFn, TTuple.
type Type interface {
	String() string
	typeNode()
}

// Primitive ground types.
type (
	TInt    struct{}
	TFloat  struct{}
	TString struct{}
	TBool   struct{}
	TUnit   struct{}
)

func (TInt) String() string    { return "Int" }
func (TFloat) String() string  { return "Float" }
func (TString) String() string { return "String" }
func (TBool) String() string   { return "Bool" }
func (TUnit) String() string   { return "Unit" }

func (TInt) typeNode()    {}
func (TFloat) typeNode()  {}
func (TString) typeNode() {}
func (TBool) typeNode()   {}
func (TUnit) typeNode()   {}

// TError is the sentinel carrying a diagnostic message. It propagates
// through inference, compares equal only to itself, and never unifies
// with anything else.
type TError struct {
	Message string
}

func (e TError) String() string { return "<error: " + e.Message + ">" }
func (TError) typeNode()        {}

// NewError builds an Error-type sentinel carrying message.
func NewError(message string) Type { return TError{Message: message} }

// IsError reports whether t is the Error sentinel.
func IsError(t Type) bool {
	_, ok := t.(TError)
	return ok
}

// varCounter is the process-wide monotonically increasing source of fresh
// type-variable ids (§5: must be atomic to support concurrent checking).
var varCounter atomic.Uint64

// FreshVarID returns the next integer from the process-wide counter; ids
// are never reused.
func FreshVarID() uint64 {
	return varCounter.Add(1) - 1
}

// TVar is a type variable. Binding is nil while unbound; once set by the
// unifier the variable is observationally equal to Binding, and the
// unifier follows the chain transparently (Walk). Binding is set at most
// once per logical bind.
type TVar struct {
	ID      uint64
	Hint    string
	Binding Type
}

// NewVar allocates a fresh, unbound type variable with an optional display
// hint used only for pretty-printing; identity is carried by ID.
func NewVar(hint string) *TVar {
	return &TVar{ID: FreshVarID(), Hint: hint}
}

func (v *TVar) String() string {
	if v.Binding != nil {
		return Walk(v).String()
	}
	if v.Hint != "" {
		return v.Hint
	}
	return fmt.Sprintf("t%d", v.ID)
}

func (*TVar) typeNode() {}

// Walk follows a Var's binding chain to its representative type. A
// non-Var type, or an unbound Var, is returned unchanged.
func Walk(t Type) Type {
	for {
		v, ok := t.(*TVar)
		if !ok || v.Binding == nil {
			return t
		}
		t = v.Binding
	}
}

// TCon is a named type constructor applied to an ordered, possibly empty
// sequence of argument types, e.g. List(a), Result(a,e), Option(a),
// Map(k,v), Range(a), or a user-defined nullary type.
type TCon struct {
	Name string
	Args []Type
}

func (c TCon) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

func (TCon) typeNode() {}

// Con constructs a named type constructor application.
func Con(name string, args ...Type) TCon { return TCon{Name: name, Args: args} }

// Named helpers for the well-known parametric type constructors (§4.1).
func ListType(elem Type) TCon      { return Con("List", elem) }
func OptionType(elem Type) TCon    { return Con("Option", elem) }
func ResultType(ok, err Type) TCon { return Con("Result", ok, err) }
func MapType(key, val Type) TCon   { return Con("Map", key, val) }
func RangeType(elem Type) TCon     { return Con("Range", elem) }

// TFn is a function type.
type TFn struct {
	Params []Type
	Result Type
}

func (f TFn) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Result.String())
}

func (TFn) typeNode() {}

// Fn constructs a function type.
func Fn(result Type, params ...Type) TFn { return TFn{Params: params, Result: result} }

// TTuple is a structural tuple of one or more elements. Arity 0 collapses
// to Unit; see TupleType.
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (TTuple) typeNode() {}

// TupleType constructs a tuple type, collapsing to Unit for zero elements
// (§3.1).
func TupleType(elements ...Type) Type {
	if len(elements) == 0 {
		return TUnit{}
	}
	return TTuple{Elements: elements}
}

// IsComparable reports whether t supports ordering comparisons (<, <=, >,
// >=): true for Int, Float, String, Bool (§3.1).
func IsComparable(t Type) bool {
	switch Walk(t).(type) {
	case TInt, TFloat, TString, TBool:
		return true
	default:
		return false
	}
}

// IsResult reports whether t walks (through bindings) to
// Con("Result", [ok, err]).
func IsResult(t Type) bool {
	c, ok := Walk(t).(TCon)
	return ok && c.Name == "Result" && len(c.Args) == 2
}

// IsOption reports whether t walks (through bindings) to
// Con("Option", [elem]).
func IsOption(t Type) bool {
	c, ok := Walk(t).(TCon)
	return ok && c.Name == "Option" && len(c.Args) == 1
}

// ToPrintableString is the pretty-printer used in diagnostics.
func ToPrintableString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// StructurallyEqual compares a and b, walking binding chains first; two
// distinct unbound variables with different ids compare unequal even if
// they could unify (§4.1).
func StructurallyEqual(a, b Type) bool {
	a, b = Walk(a), Walk(b)

	switch at := a.(type) {
	case TInt:
		_, ok := b.(TInt)
		return ok
	case TFloat:
		_, ok := b.(TFloat)
		return ok
	case TString:
		_, ok := b.(TString)
		return ok
	case TBool:
		_, ok := b.(TBool)
		return ok
	case TUnit:
		_, ok := b.(TUnit)
		return ok
	case TError:
		bt, ok := b.(TError)
		return ok && at.Message == bt.Message
	case *TVar:
		bt, ok := b.(*TVar)
		return ok && at.ID == bt.ID
	case TCon:
		bt, ok := b.(TCon)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !StructurallyEqual(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case TFn:
		bt, ok := b.(TFn)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !StructurallyEqual(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return StructurallyEqual(at.Result, bt.Result)
	case TTuple:
		bt, ok := b.(TTuple)
		if !ok || len(at.Elements) != len(bt.Elements) {
			return false
		}
		for i := range at.Elements {
			if !StructurallyEqual(at.Elements[i], bt.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ContainsVar walks through Con.Args, Fn.Params/Result, Tuple.Elements,
// and bound Vars to determine whether t reaches an unbound Var with the
// given id. Used by the unifier's occurs check (§4.3).
func ContainsVar(t Type, id uint64) bool {
	switch tt := t.(type) {
	case *TVar:
		if tt.Binding != nil {
			return ContainsVar(tt.Binding, id)
		}
		return tt.ID == id
	case TCon:
		for _, a := range tt.Args {
			if ContainsVar(a, id) {
				return true
			}
		}
		return false
	case TFn:
		for _, p := range tt.Params {
			if ContainsVar(p, id) {
				return true
			}
		}
		return ContainsVar(tt.Result, id)
	case TTuple:
		for _, e := range tt.Elements {
			if ContainsVar(e, id) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

package types

// Instantiate replaces every unbound Var in t with a fresh Var, mapping
// each distinct source variable to the same fresh variable throughout t
// (§4.4). The returned type shares no unbound variables with any
// previously produced type, which is what gives let-polymorphism at use
// sites: every lookup of a polymorphic signature instantiates afresh.
func Instantiate(t Type) Type {
	return instantiate(t, make(map[uint64]*TVar))
}

func instantiate(t Type, seen map[uint64]*TVar) Type {
	switch tt := t.(type) {
	case *TVar:
		if tt.Binding != nil {
			return instantiate(tt.Binding, seen)
		}
		if fresh, ok := seen[tt.ID]; ok {
			return fresh
		}
		fresh := NewVar(tt.Hint)
		seen[tt.ID] = fresh
		return fresh
	case TCon:
		if len(tt.Args) == 0 {
			return tt
		}
		args := make([]Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = instantiate(a, seen)
		}
		return TCon{Name: tt.Name, Args: args}
	case TFn:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = instantiate(p, seen)
		}
		return TFn{Params: params, Result: instantiate(tt.Result, seen)}
	case TTuple:
		elems := make([]Type, len(tt.Elements))
		for i, e := range tt.Elements {
			elems[i] = instantiate(e, seen)
		}
		return TTuple{Elements: elems}
	default:
		return t
	}
}

// Substitute rebuilds a copy of t where every Var is replaced by the tail
// of its binding chain; unbound variables are preserved unchanged (§4.4).
// Used on function results after unifying arguments so callers see the
// most specific type the unifier learned. Idempotent: Substitute applied
// twice returns an equivalent result to applying it once (§8, law 1).
func Substitute(t Type) Type {
	switch tt := t.(type) {
	case *TVar:
		if tt.Binding != nil {
			return Substitute(tt.Binding)
		}
		return tt
	case TCon:
		if len(tt.Args) == 0 {
			return tt
		}
		args := make([]Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = Substitute(a)
		}
		return TCon{Name: tt.Name, Args: args}
	case TFn:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = Substitute(p)
		}
		return TFn{Params: params, Result: Substitute(tt.Result)}
	case TTuple:
		elems := make([]Type, len(tt.Elements))
		for i, e := range tt.Elements {
			elems[i] = Substitute(e)
		}
		return TTuple{Elements: elems}
	default:
		return t
	}
}

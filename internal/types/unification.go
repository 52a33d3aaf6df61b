package types

import "fmt"

// Unify attempts to make a and b structurally identical by binding
// unbound variables in place, following §4.3's algorithm. It is the only
// mechanism that binds type variables; the expression inferencer never
// binds one directly. On failure it may leave partial bindings in place —
// the caller treats this as benign because the error path produces an
// Error type immediately.
func Unify(a, b Type) error {
	if IsError(a) || IsError(b) {
		return fmt.Errorf("cannot unify with error type")
	}

	a, b = Walk(a), Walk(b)

	av, aIsVar := a.(*TVar)
	bv, bIsVar := b.(*TVar)

	if aIsVar && bIsVar && av.ID == bv.ID {
		return nil
	}

	if aIsVar {
		return bindVar(av, b)
	}
	if bIsVar {
		return bindVar(bv, a)
	}

	switch at := a.(type) {
	case TInt:
		if _, ok := b.(TInt); ok {
			return nil
		}
	case TFloat:
		if _, ok := b.(TFloat); ok {
			return nil
		}
	case TString:
		if _, ok := b.(TString); ok {
			return nil
		}
	case TBool:
		if _, ok := b.(TBool); ok {
			return nil
		}
	case TUnit:
		if _, ok := b.(TUnit); ok {
			return nil
		}
	case TCon:
		bt, ok := b.(TCon)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			break
		}
		for i := range at.Args {
			if err := Unify(at.Args[i], bt.Args[i]); err != nil {
				return err
			}
		}
		return nil
	case TFn:
		bt, ok := b.(TFn)
		if !ok || len(at.Params) != len(bt.Params) {
			break
		}
		for i := range at.Params {
			if err := Unify(at.Params[i], bt.Params[i]); err != nil {
				return err
			}
		}
		return Unify(at.Result, bt.Result)
	case TTuple:
		bt, ok := b.(TTuple)
		if !ok || len(at.Elements) != len(bt.Elements) {
			break
		}
		for i := range at.Elements {
			if err := Unify(at.Elements[i], bt.Elements[i]); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("cannot unify %s with %s", ToPrintableString(a), ToPrintableString(b))
}

// bindVar binds v to t in place after the occurs check, unless v already
// walks to t (nothing to do).
func bindVar(v *TVar, t Type) error {
	if tv, ok := Walk(t).(*TVar); ok && tv.ID == v.ID {
		return nil
	}
	if ContainsVar(t, v.ID) {
		return fmt.Errorf("infinite type: %s occurs in %s", v.String(), ToPrintableString(t))
	}
	v.Binding = t
	return nil
}

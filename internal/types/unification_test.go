package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyPrimitives(t *testing.T) {
	require.NoError(t, Unify(TInt{}, TInt{}))
	assert.Error(t, Unify(TInt{}, TString{}))
}

func TestUnifyBindsUnboundVar(t *testing.T) {
	v := NewVar("a")
	require.NoError(t, Unify(v, TInt{}))
	assert.Equal(t, TInt{}, Walk(v))
}

func TestUnifySameVarSucceedsWithoutBinding(t *testing.T) {
	v := NewVar("a")
	require.NoError(t, Unify(v, v))
	assert.Nil(t, v.Binding)
}

func TestUnifyOccursCheckFails(t *testing.T) {
	v := NewVar("a")
	err := Unify(v, ListType(v))
	assert.Error(t, err)
	assert.Nil(t, v.Binding)
}

func TestUnifyConArgsPairwise(t *testing.T) {
	v := NewVar("elem")
	require.NoError(t, Unify(ListType(v), ListType(TInt{})))
	assert.Equal(t, TInt{}, Walk(v))
}

func TestUnifyConNameMismatchFails(t *testing.T) {
	err := Unify(ListType(TInt{}), OptionType(TInt{}))
	assert.Error(t, err)
}

func TestUnifyFnParamsAndResult(t *testing.T) {
	p := NewVar("p")
	r := NewVar("r")
	fnWithVars := Fn(r, p)
	fnConcrete := Fn(TBool{}, TInt{})

	require.NoError(t, Unify(fnWithVars, fnConcrete))
	assert.Equal(t, TInt{}, Walk(p))
	assert.Equal(t, TBool{}, Walk(r))
}

func TestUnifyFnArityMismatchFails(t *testing.T) {
	err := Unify(Fn(TInt{}, TInt{}), Fn(TInt{}, TInt{}, TInt{}))
	assert.Error(t, err)
}

func TestUnifyTuplePairwise(t *testing.T) {
	v := NewVar("a")
	require.NoError(t, Unify(TupleType(v, TBool{}), TupleType(TInt{}, TBool{})))
	assert.Equal(t, TInt{}, Walk(v))
}

func TestUnifyErrorNeverUnifies(t *testing.T) {
	assert.Error(t, Unify(NewError("x"), TInt{}))
	assert.Error(t, Unify(TInt{}, NewError("x")))
}

func TestUnifyWalksThroughAlreadyBoundVars(t *testing.T) {
	v1 := NewVar("a")
	v2 := NewVar("b")
	require.NoError(t, Unify(v1, v2))
	require.NoError(t, Unify(v2, TInt{}))
	assert.Equal(t, TInt{}, Walk(v1))
}

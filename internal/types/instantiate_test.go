package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantiatePreservesIdentityWithinType(t *testing.T) {
	a := NewVar("a")
	poly := Fn(a, a) // identity function: (a) -> a

	inst := Instantiate(poly).(TFn)
	p0 := inst.Params[0].(*TVar)
	result := inst.Result.(*TVar)
	assert.Equal(t, p0.ID, result.ID)
	assert.NotEqual(t, a.ID, p0.ID)
}

func TestInstantiateTwiceProducesDisjointVars(t *testing.T) {
	a := NewVar("a")
	poly := Fn(a, a)

	i1 := Instantiate(poly).(TFn)
	i2 := Instantiate(poly).(TFn)

	v1 := i1.Params[0].(*TVar)
	v2 := i2.Params[0].(*TVar)
	assert.NotEqual(t, v1.ID, v2.ID)
}

func TestInstantiateFollowsBindings(t *testing.T) {
	a := NewVar("a")
	a.Binding = TInt{}
	inst := Instantiate(a)
	assert.Equal(t, TInt{}, inst)
}

func TestSubstituteReplacesBoundVars(t *testing.T) {
	a := NewVar("a")
	a.Binding = TInt{}
	listOfA := ListType(a)

	sub := Substitute(listOfA).(TCon)
	assert.Equal(t, TInt{}, sub.Args[0])
}

func TestSubstituteIsIdempotent(t *testing.T) {
	a := NewVar("a")
	a.Binding = TInt{}
	t1 := Substitute(ListType(a))
	t2 := Substitute(t1)
	require.True(t, StructurallyEqual(t1, t2))
}

func TestSubstitutePreservesUnboundVars(t *testing.T) {
	a := NewVar("a")
	sub := Substitute(a)
	assert.Same(t, a, sub)
}

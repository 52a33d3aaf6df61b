package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvDefineAndLookup(t *testing.T) {
	env := NewEnv()
	env.Define("x", TInt{})

	typ, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, TInt{}, typ)

	_, ok = env.Lookup("y")
	assert.False(t, ok)
}

func TestEnvShadowingWithinScopePicksMostRecent(t *testing.T) {
	env := NewEnv()
	env.Define("x", TInt{})
	env.Define("x", TString{})

	typ, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, TString{}, typ)
}

func TestEnvInnermostScopeShadowsOuter(t *testing.T) {
	env := NewEnv()
	env.Define("x", TInt{})
	env.PushScope()
	env.Define("x", TString{})

	typ, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, TString{}, typ)

	env.PopScope()
	typ, ok = env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, TInt{}, typ)
}

func TestEnvPoppingGlobalScopeIsNoOp(t *testing.T) {
	env := NewEnv()
	env.Define("x", TInt{})
	env.PopScope()
	env.PopScope()
	env.PopScope()

	assert.Equal(t, 0, env.Depth())
	_, ok := env.Lookup("x")
	assert.True(t, ok)
}

func TestEnvDepth(t *testing.T) {
	env := NewEnv()
	assert.Equal(t, 0, env.Depth())
	env.PushScope()
	env.PushScope()
	assert.Equal(t, 2, env.Depth())
	env.PopScope()
	assert.Equal(t, 1, env.Depth())
}

func TestEnvTypeNamespaceIsSeparate(t *testing.T) {
	env := NewEnv()
	env.Define("Point", TInt{})
	env.DefineType("Point", TCon{Name: "Point"})

	v, ok := env.Lookup("Point")
	require.True(t, ok)
	assert.Equal(t, TInt{}, v)

	tv, ok := env.LookupType("Point")
	require.True(t, ok)
	assert.Equal(t, TCon{Name: "Point"}, tv)
}

func TestEnvIsDefined(t *testing.T) {
	env := NewEnv()
	assert.False(t, env.IsDefined("x"))
	env.Define("x", TInt{})
	assert.True(t, env.IsDefined("x"))
}

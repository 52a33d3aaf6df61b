package types

import (
	"golang.org/x/text/unicode/norm"
)

// normalizeIdent folds an identifier to Unicode NFC so lookups compare
// stably across encoding variants of the same name.
func normalizeIdent(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}

// scope is one layer of the environment stack: a value-binding map and a
// separate type-definition map, each insertion-ordered so shadowing
// within a scope picks the most recent definition (§3.3).
type scope struct {
	values []binding
	types  []binding
}

type binding struct {
	name string
	typ  Type
}

func (s *scope) define(name string, t Type) {
	s.values = append(s.values, binding{name: name, typ: t})
}

func (s *scope) lookup(name string) (Type, bool) {
	for i := len(s.values) - 1; i >= 0; i-- {
		if s.values[i].name == name {
			return s.values[i].typ, true
		}
	}
	return nil, false
}

func (s *scope) defineType(name string, t Type) {
	s.types = append(s.types, binding{name: name, typ: t})
}

func (s *scope) lookupType(name string) (Type, bool) {
	for i := len(s.types) - 1; i >= 0; i-- {
		if s.types[i].name == name {
			return s.types[i].typ, true
		}
	}
	return nil, false
}

// Env is the type environment: a non-empty stack of scopes, the bottom of
// which is the global scope (§3.3). It is created by the driver, mutated
// by the checker as it traverses the program, and never destroyed
// mid-check.
type Env struct {
	scopes []*scope
}

// NewEnv creates a fresh environment with a single global scope.
func NewEnv() *Env {
	return &Env{scopes: []*scope{{}}}
}

// PushScope pushes a new innermost scope.
func (e *Env) PushScope() {
	e.scopes = append(e.scopes, &scope{})
}

// PopScope pops the innermost scope. Popping below the global scope is a
// no-op (defensive, §4.2).
func (e *Env) PopScope() {
	if len(e.scopes) <= 1 {
		return
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth reports the current scope-stack depth, for diagnostics.
func (e *Env) Depth() int {
	return len(e.scopes) - 1
}

// Define inserts name into the innermost scope. A later Define of the
// same name in the same scope shadows the earlier one on lookup.
func (e *Env) Define(name string, t Type) {
	e.scopes[len(e.scopes)-1].define(normalizeIdent(name), t)
}

// Lookup searches innermost-first and returns the first hit.
func (e *Env) Lookup(name string) (Type, bool) {
	name = normalizeIdent(name)
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if t, ok := e.scopes[i].lookup(name); ok {
			return t, true
		}
	}
	return nil, false
}

// IsDefined reports whether name is visible from the current scope.
func (e *Env) IsDefined(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// DefineType inserts a type-definition binding into the innermost scope,
// the parallel namespace used by type names.
func (e *Env) DefineType(name string, t Type) {
	e.scopes[len(e.scopes)-1].defineType(normalizeIdent(name), t)
}

// LookupType searches the type-definition namespace innermost-first.
func (e *Env) LookupType(name string) (Type, bool) {
	name = normalizeIdent(name)
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if t, ok := e.scopes[i].lookupType(name); ok {
			return t, true
		}
	}
	return nil, false
}

// ValueNames returns every visible value-binding name across all scopes,
// outermost first. Used to build "did you mean" suggestions for
// reference-miss diagnostics, not for lookup itself.
func (e *Env) ValueNames() []string {
	var names []string
	for _, s := range e.scopes {
		for _, b := range s.values {
			names = append(names, b.name)
		}
	}
	return names
}

// TypeNames returns every visible type-definition name across all scopes,
// outermost first.
func (e *Env) TypeNames() []string {
	var names []string
	for _, s := range e.scopes {
		for _, b := range s.types {
			names = append(names, b.name)
		}
	}
	return names
}

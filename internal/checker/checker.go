// Package checker implements the expression inferencer, statement
// checker, pattern binder, and type-expression resolver (spec.md
// §4.6–§4.8, §4.10): the public Checker type drives Hindley-Milner
// inference over the read-only internal/ast contract, using
// internal/types for representation, unification, and instantiation, and
// internal/diagnostics to accumulate errors.
package checker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/typeforge/checker/internal/ast"
	"github.com/typeforge/checker/internal/diagnostics"
	"github.com/typeforge/checker/internal/types"
)

// Checker is the public entry point described in §6.1. A Checker owns an
// environment and an accumulator; neither is shared across concurrent
// checks (§5). The Go garbage collector plays the role of §6.3's arena:
// there is no explicit free, and every type node a Checker produces lives
// as long as something still references it.
type Checker struct {
	env         *types.Env
	errors      *diagnostics.Accumulator
	sessionID   string
	tagSessions bool

	// constructors maps a variant constructor name to the type it belongs
	// to and the syntactic field types declared for that case, built
	// during type-declaration hoisting (§4.7, §9 "constructor patterns
	// for user-defined sum types").
	constructors map[string]constructorInfo

	// schemeNames marks every identifier whose binding is meant to be
	// instantiated afresh at each call site: built-in catalog entries and
	// hoisted top-level function names (§4.5, §9 "lambdas bound with
	// let"). A plain `let`-bound name (including one holding a lambda) is
	// never added here, so its call sites reuse the same variables across
	// calls instead of copying them — the distinction the teacher's own
	// Scheme-vs-monotype split (internal/types/typechecker_core.go's
	// inferVar) draws between a generalized scheme and an ordinary
	// monotype, carried here as a name set since this core has no
	// separate Scheme type.
	schemeNames map[string]bool
}

type constructorInfo struct {
	typeName string
	fields   []ast.TypeExpr
}

// Option configures a new Checker.
type Option func(*Checker)

// WithSessionIDs tags the checker with an opaque uuid when enabled,
// grounded on §4.12's domain-stack wiring — a driver that batches many
// independent checks can read it back through SessionID to correlate a
// run without repurposing the type-variable counter for that. The tag is
// not added to diagnostic messages or Reports.
func WithSessionIDs(enabled bool) Option {
	return func(c *Checker) { c.tagSessions = enabled }
}

// New creates a Checker with a fresh environment seeded with every
// built-in binding (checker-new(allocator) in §6.1; the allocator is Go's
// GC, see §6.3).
func New(opts ...Option) *Checker {
	c := &Checker{
		env:          types.NewEnv(),
		errors:       diagnostics.NewAccumulator(),
		constructors: make(map[string]constructorInfo),
		schemeNames:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tagSessions {
		c.sessionID = uuid.NewString()
	}
	seedBuiltins(c.env)
	for _, name := range types.TopLevelNames() {
		c.schemeNames[name] = true
	}
	seedWellKnownConstructors(c)
	return c
}

// SessionID returns the checker's session tag, or "" if session tagging
// was not requested.
func (c *Checker) SessionID() string { return c.sessionID }

// Env exposes the checker's environment (§6.1 env(checker)).
func (c *Checker) Env() *types.Env { return c.env }

// Define binds name to t in the current scope (§6.1).
func (c *Checker) Define(name string, t types.Type) { c.env.Define(name, t) }

// PushScope pushes a new scope (§6.1).
func (c *Checker) PushScope() { c.env.PushScope() }

// PopScope pops the innermost scope (§6.1).
func (c *Checker) PopScope() { c.env.PopScope() }

// HasErrors reports whether any diagnostic has been recorded (§6.1).
func (c *Checker) HasErrors() bool { return c.errors.HasErrors() }

// FirstError returns the first recorded diagnostic, or "" if none (§6.1).
func (c *Checker) FirstError() string { return c.errors.FirstError() }

// Errors returns every recorded diagnostic in production order.
func (c *Checker) Errors() []string { return c.errors.All() }

// Reports returns every structured diagnostic recorded via AddReport.
func (c *Checker) Reports() []*diagnostics.Report { return c.errors.Reports() }

// ClearErrors empties the diagnostic list for REPL-style reuse (§4.9,
// §6.1, §4.13).
func (c *Checker) ClearErrors() { c.errors.Clear() }

// isSchemeCallee reports whether a Call/Pipe's callee expression should
// be instantiated (§4.6 "Call"/"Pipe") before its parameters are checked.
// A bare reference to a built-in or hoisted top-level function, and any
// computed (non-identifier) callee, is instantiated fresh per call site
// (§4.5, §8 S3). Any other identifier — for example one bound by `let`
// (§9 "lambdas bound with let") — is used exactly as looked up, so
// repeated calls share and progressively refine the same variables (§8 S8).
func (c *Checker) isSchemeCallee(callee ast.Expr) bool {
	id, ok := callee.(*ast.Identifier)
	if !ok {
		return true
	}
	return c.schemeNames[id.Name]
}

func seedBuiltins(env *types.Env) {
	for _, name := range types.TopLevelNames() {
		t, _ := types.LookupBuiltin(name)
		env.Define(name, t)
	}
}

// posToLoc adapts an ast.Pos to a diagnostics.Loc.
func posToLoc(p ast.Pos) diagnostics.Loc {
	return diagnostics.Loc{Filename: p.File, Line: p.Line, Column: p.Column}
}

// errorAt appends a formatted diagnostic at loc and returns an Error type
// carrying the same text (§4.9, §7 "error-at"). It is the generic
// fallback; call sites that want a Code-tagged structured Report should
// build one directly and call c.errors.AddReport.
func (c *Checker) errorAt(pos ast.Pos, format string, args ...interface{}) types.Type {
	msg := fmt.Sprintf(format, args...)
	c.errors.AddAt(posToLoc(pos), "%s", msg)
	return types.NewError(msg)
}

// reportAt appends a structured Report and returns an Error type carrying
// its message.
func (c *Checker) reportAt(pos ast.Pos, code diagnostics.Code, format string, args ...interface{}) types.Type {
	msg := fmt.Sprintf(format, args...)
	span := &ast.Span{Start: pos}
	c.errors.AddReport(&diagnostics.Report{Code: code, Message: msg, Span: span})
	return types.NewError(msg)
}

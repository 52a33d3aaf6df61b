package diagnostics

// Code classifies a diagnostic into the taxonomy the checker produces
// (§7): an unresolved name, a wrong argument/field/case count, a shape
// mismatch against a built-in or catalog contract, a unification
// failure, an occurs-check failure, or a construct the checker
// intentionally does not implement.
type Code string

const (
	CodeReference      Code = "REF"
	CodeArity          Code = "ARITY"
	CodeShape          Code = "SHAPE"
	CodeUnification    Code = "UNIFY"
	CodeOccurs         Code = "OCCURS"
	CodeNotImplemented Code = "NOTIMPL"
)

func (c Code) String() string { return string(c) }

package ir

// AnalysisInfo is the result of the external analyzer's pass over an
// Object's code: the core never inspects its contents, only re-establishes
// it (by calling back into the supplied Analyze callback) once optimization
// completes. It is opaque to this package by design — the analyzer is an
// external collaborator (spec §1) — so it is modeled as an empty interface
// alias rather than a concrete struct.
type AnalysisInfo = interface{}

// Object is the unit the suite optimizes: a code Block, the AnalysisInfo
// the external analyzer computed for it, and any nested sub-objects (e.g.
// deployed contract creation code) addressed by name. Only Code is rewritten
// by the core; AnalysisInfo is re-established at the end of Suite.Run and
// SubObjects are left untouched (whole-program optimization across objects
// is a non-goal).
type Object struct {
	Code         *Block
	AnalysisInfo AnalysisInfo
	SubObjects   map[Identifier]*Object
}

// NewObject wraps a code block as a standalone Object with no sub-objects.
func NewObject(code *Block) *Object {
	return &Object{Code: code, SubObjects: map[Identifier]*Object{}}
}

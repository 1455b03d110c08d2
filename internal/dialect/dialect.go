// Package dialect describes the built-in operation set of an IR target and
// implements the semantics oracle (movable, side-effect-free,
// invalidates-storage, invalidates-memory) every optimization pass consults
// before duplicating, reordering, or removing code.
package dialect

import "irsuite/internal/ir"

// Builtin describes one built-in function's contract with the optimizer.
type Builtin struct {
	Name ir.Identifier
	// Arity is the number of arguments this built-in accepts.
	Arity int
	// Movable is true iff calls to this built-in may be freely duplicated
	// or reordered relative to any other statement.
	Movable bool
	// SideEffectFree is true iff evaluating this built-in has no effect
	// beyond producing its result (it may still be non-movable, e.g. a
	// storage read that must not be reordered past a write).
	SideEffectFree bool
	// ReadsStorage / WritesStorage / ReadsMemory / WritesMemory classify
	// the built-in's effect on the two external state spaces.
	ReadsStorage  bool
	WritesStorage bool
	ReadsMemory   bool
	WritesMemory  bool
	// CanTerminate is true iff evaluating this built-in can end the
	// enclosing function/transaction (e.g. a revert/return/stop).
	CanTerminate bool
}

// Dialect describes the built-in operation set and naming constraints of an
// IR target: the set of built-in names with arity/movability/purity/effects,
// the set of fixed (non-renameable) names, a literal materialization cost
// strategy, and whether the dialect is stack-like (the stack compressor
// only ever runs for a stack-like dialect).
type Dialect interface {
	// Builtin looks up a built-in's contract by name.
	Builtin(name ir.Identifier) (Builtin, bool)
	// FixedNames returns the set of names the optimizer must never
	// introduce, rename into, or rename away from.
	FixedNames() ir.IdentifierSet
	// LiteralMaterializationCost estimates the cost of emitting the given
	// literal inline at a use site, for the inliner/rematerialiser's size
	// heuristics.
	LiteralMaterializationCost(value string, kind ir.LiteralKind) int
	// IsStackLike reports whether this dialect models a stack machine
	// (e.g. EVM): the stack compressor and the ConstantOptimiser final
	// pass are only meaningful for such dialects.
	IsStackLike() bool
	// IsLinearMemoryLike reports whether this dialect models flat
	// addressable linear memory with no storage built-ins at all (e.g.
	// Wasm): the suite trims a leading empty top-level block for such
	// dialects (§4.6 step 8).
	IsLinearMemoryLike() bool
}

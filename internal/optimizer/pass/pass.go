// Package pass defines the shared contract every optimization pass in the
// catalog implements: a pure function (Context, Block) -> Block' with a
// declared precondition and postcondition (spec'd per pass in the catalog
// itself). It is a separate leaf package so that internal/optimizer/passes
// and internal/optimizer can both depend on it without a cycle.
package pass

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
)

// GasMeter overrides a dialect's own literal materialization cost estimate
// with an external, possibly target-specific cost model. ConstantOptimiser
// is the only pass that consults it, and only when the suite caller
// supplies one (spec §4.6 step 7); every other pass uses
// dialect.LiteralMaterializationCost directly.
type GasMeter interface {
	Cost(value string, kind ir.LiteralKind) int
}

// Context carries everything a pass needs beyond the block it's rewriting:
// the dialect (for the semantics oracle), a name dispenser shared across
// the whole recipe run (so two passes never mint the same fresh name), the
// reserved set no pass may introduce or collide with, and an optional
// GasMeter consulted only by ConstantOptimiser.
type Context struct {
	Dialect   dialect.Dialect
	Dispenser *ir.NameDispenser
	Reserved  ir.IdentifierSet
	GasMeter  GasMeter
}

// NewContext builds a Context seeded from every name already present in
// block plus the reserved set.
func NewContext(d dialect.Dialect, block *ir.Block, reserved ir.IdentifierSet) *Context {
	existing := ir.DeclaredVariables(block)
	return &Context{
		Dialect:   d,
		Dispenser: ir.NewNameDispenser(existing, reserved.Union(d.FixedNames())),
		Reserved:  reserved,
	}
}

// Pass is one entry in the catalog: a named, pure block-to-block rewrite.
type Pass interface {
	// Name is the pass's stable textual name (e.g. "DeadCodeEliminator").
	Name() string
	// Run applies the pass to block and returns the rewritten result. A
	// pass never partially succeeds: on a broken precondition it panics
	// with a PreconditionViolation rather than returning an inconsistent
	// tree (spec §7 — "any violation of a declared precondition...aborts
	// the pipeline with a fatal assertion").
	Run(ctx *Context, block *ir.Block) *ir.Block
}

// PreconditionViolation is the panic value raised when a pass's declared
// precondition does not hold on its input. It is not recoverable by
// design: a caller seeing this is looking at a driver bug, not a bad
// program (spec §7).
type PreconditionViolation struct {
	Pass      string
	Invariant string
}

func (v PreconditionViolation) Error() string {
	return "irsuite: " + v.Pass + ": precondition violated: " + v.Invariant
}

// RequirePrecondition panics with a PreconditionViolation if ok is false.
func RequirePrecondition(passName string, ok bool, invariant string) {
	if !ok {
		panic(PreconditionViolation{Pass: passName, Invariant: invariant})
	}
}

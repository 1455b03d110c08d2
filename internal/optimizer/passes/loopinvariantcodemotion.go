package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// LoopInvariantCodeMotion hoists a loop body's leading run of movable
// VariableDeclarations above the loop, as long as each one's free
// variables share nothing with whatever the loop's body or post block
// assigns. Restricting to movable values is what makes hoisting safe even
// when the loop runs zero times: a movable expression has no side effect
// and can't terminate, so evaluating it once up front instead of zero or
// more times inside the loop is never observable. Only a contiguous
// prefix is considered — a later invariant statement after one that isn't
// is left in place, since reordering past it isn't attempted here.
type LoopInvariantCodeMotion struct{}

func (LoopInvariantCodeMotion) Name() string { return "LoopInvariantCodeMotion" }

func (p LoopInvariantCodeMotion) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				loop, ok := s.(*ir.ForLoop)
				if !ok {
					out = append(out, s)
					continue
				}
				assigned := ir.AssignedVariables(loop.Body).Union(ir.AssignedVariables(loop.Post))
				body := loop.Body.Statements
				idx := 0
				var hoisted []ir.Statement
				for idx < len(body) {
					decl, ok := body[idx].(*ir.VariableDeclaration)
					if !ok || decl.Value == nil || !dialect.Movable(ctx.Dialect, decl.Value) {
						break
					}
					if setsIntersect(ir.FreeVariables(decl.Value), assigned) {
						break
					}
					hoisted = append(hoisted, decl)
					idx++
				}
				loop.Body.Statements = body[idx:]
				out = append(out, hoisted...)
				out = append(out, loop)
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

func setsIntersect(a, b ir.IdentifierSet) bool {
	for k := range a {
		if b.Has(k) {
			return true
		}
	}
	return false
}

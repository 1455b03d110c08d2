package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ControlFlowSimplifier resolves control-flow nodes whose condition is
// already a literal: an `if true { ... }` body is spliced in place of the
// If, an `if false { ... }` is dropped entirely, and a ForLoop whose
// condition is literally false never runs its body or post block at all —
// it reduces to just its init statements (which, by this point in the
// pipeline, ForLoopInitRewriter has guaranteed contain only declarations
// scoped to the loop, so splicing them in place changes nothing observable
// about the variables that remain live afterward).
type ControlFlowSimplifier struct{}

func (ControlFlowSimplifier) Name() string { return "ControlFlowSimplifier" }

func (p ControlFlowSimplifier) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				switch st := s.(type) {
				case *ir.If:
					if isTruthyLiteral(st.Cond) {
						out = append(out, st.Body.Statements...)
						continue
					}
					if isFalsyLiteral(st.Cond) {
						continue
					}
				case *ir.ForLoop:
					if isFalsyLiteral(st.Cond) {
						out = append(out, st.Init.Statements...)
						continue
					}
				case *ir.Switch:
					if len(st.Cases) == 0 {
						out = append(out, ir.ExprStmt(st.Cond))
						continue
					}
				}
				out = append(out, s)
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// RedundantAssignEliminator drops a self-assignment `v := v` outright: it
// reads and writes the same slot with no other expression in between, so
// removing it changes nothing observable.
type RedundantAssignEliminator struct{}

func (RedundantAssignEliminator) Name() string { return "RedundantAssignEliminator" }

func (p RedundantAssignEliminator) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				if assign, ok := s.(*ir.Assignment); ok && len(assign.Targets) == 1 {
					if id, ok := assign.Value.(*ir.IdentifierExpr); ok && id.Name == assign.Targets[0] {
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

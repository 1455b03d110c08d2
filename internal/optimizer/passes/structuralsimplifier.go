package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// StructuralSimplifier removes control-flow wrapping that carries no
// information once its shape is accounted for: a switch with only a
// default case is just its body; a switch with exactly one non-default
// case and no default is an equality-guarded If; an If whose body is empty
// either disappears (its condition is movable, so evaluating it has no
// observable effect) or reduces to evaluating the condition alone; and a
// bare empty Block contributes nothing to the statement list it sits in.
type StructuralSimplifier struct{}

func (StructuralSimplifier) Name() string { return "StructuralSimplifier" }

func (p StructuralSimplifier) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				switch st := s.(type) {
				case *ir.Switch:
					if len(st.Cases) == 1 && st.Cases[0].Value == nil {
						out = append(out, st.Cases[0].Body.Statements...)
						continue
					}
					if len(st.Cases) == 1 && st.Cases[0].Value != nil {
						out = append(out, &ir.If{
							Cond: ir.Call("eq", st.Cond, st.Cases[0].Value),
							Body: st.Cases[0].Body,
						})
						continue
					}
				case *ir.If:
					if len(st.Body.Statements) == 0 {
						if dialect.Movable(ctx.Dialect, st.Cond) {
							continue
						}
						out = append(out, ir.ExprStmt(st.Cond))
						continue
					}
				case *ir.Block:
					if len(st.Statements) == 0 {
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

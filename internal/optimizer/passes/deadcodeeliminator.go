package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// DeadCodeEliminator truncates every statement list immediately after its
// first unconditionally terminal statement — Break, Continue, Leave, or a
// call the dialect marks CanTerminate (e.g. return/revert/stop) — since
// nothing written after one can ever run.
type DeadCodeEliminator struct{}

func (DeadCodeEliminator) Name() string { return "DeadCodeEliminator" }

func (p DeadCodeEliminator) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				out = append(out, s)
				if isTerminalStatement(ctx, s) {
					break
				}
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

func isTerminalStatement(ctx *pass.Context, s ir.Statement) bool {
	switch st := s.(type) {
	case *ir.Break, *ir.Continue, *ir.Leave:
		return true
	case *ir.ExpressionStatement:
		return callCanTerminate(ctx, st.Expr)
	case *ir.Assignment:
		return callCanTerminate(ctx, st.Value)
	case *ir.VariableDeclaration:
		return callCanTerminate(ctx, st.Value)
	}
	return false
}

func callCanTerminate(ctx *pass.Context, e ir.Expression) bool {
	call, ok := e.(*ir.FunctionCall)
	if !ok {
		return false
	}
	return dialect.CanTerminate(ctx.Dialect, call)
}

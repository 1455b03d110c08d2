package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ExpressionSplitter rewrites every statement so that no function call
// argument is itself a function call: each nested call is lifted into a
// `let tmp := call(...)` declaration immediately preceding the statement
// that used its result, left to right, so evaluation order is preserved.
// After this pass, only the single outermost call of a Value/Cond/Expr may
// still be a FunctionCall — every argument anywhere is a Literal or an
// IdentifierExpr.
type ExpressionSplitter struct{}

func (ExpressionSplitter) Name() string { return "ExpressionSplitter" }

func (p ExpressionSplitter) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				var pre []ir.Statement
				switch st := s.(type) {
				case *ir.ExpressionStatement:
					st.Expr = splitTopLevel(ctx, st.Expr, &pre)
				case *ir.Assignment:
					st.Value = splitTopLevel(ctx, st.Value, &pre)
				case *ir.VariableDeclaration:
					st.Value = splitTopLevel(ctx, st.Value, &pre)
				case *ir.If:
					st.Cond = splitTopLevel(ctx, st.Cond, &pre)
				case *ir.Switch:
					st.Cond = splitTopLevel(ctx, st.Cond, &pre)
				}
				out = append(out, pre...)
				out = append(out, s)
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

// splitTopLevel normalizes e's immediate arguments (if e is a call) to
// atoms, appending any lifted declarations to pre. e itself is returned
// unchanged in shape: a call stays a call, an atom stays an atom.
func splitTopLevel(ctx *pass.Context, e ir.Expression, pre *[]ir.Statement) ir.Expression {
	call, ok := e.(*ir.FunctionCall)
	if !ok {
		return e
	}
	for i, arg := range call.Args {
		call.Args[i] = splitToAtom(ctx, arg, pre)
	}
	return call
}

// splitToAtom reduces e to a Literal or IdentifierExpr, lifting any call
// (after first atomizing its own arguments) into a fresh declaration
// appended to pre.
func splitToAtom(ctx *pass.Context, e ir.Expression, pre *[]ir.Statement) ir.Expression {
	call, ok := e.(*ir.FunctionCall)
	if !ok {
		return e
	}
	for i, arg := range call.Args {
		call.Args[i] = splitToAtom(ctx, arg, pre)
	}
	fresh := ctx.Dispenser.NewName(string(call.Name))
	*pre = append(*pre, ir.Let(call, string(fresh)))
	return ir.Id(string(fresh))
}

package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

type cseEntry struct {
	name ir.Identifier
	expr ir.Expression
}

// CommonSubexpressionEliminator tracks, within a single straight-line
// statement list, every movable call already bound to a variable; a later
// declaration whose value is syntactically ir.Equal to one already seen has
// its value replaced with a read of the earlier variable instead of being
// recomputed. A seen entry is dropped as soon as any of its free variables
// is reassigned, and the whole table is cleared on entering a nested
// scope, matching Rematerialiser's conservatism.
type CommonSubexpressionEliminator struct{}

func (CommonSubexpressionEliminator) Name() string { return "CommonSubexpressionEliminator" }

func (p CommonSubexpressionEliminator) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			var seen []cseEntry
			for _, s := range stmts {
				switch st := s.(type) {
				case *ir.ExpressionStatement:
					st.Expr = cseSubst(ctx, st.Expr, &seen)
				case *ir.Assignment:
					st.Value = cseSubst(ctx, st.Value, &seen)
					for _, t := range st.Targets {
						cseInvalidate(&seen, t)
					}
					cseRecord(ctx, &seen, st.Targets, st.Value)
				case *ir.VariableDeclaration:
					st.Value = cseSubst(ctx, st.Value, &seen)
					for _, t := range st.Targets {
						cseInvalidate(&seen, t)
					}
					cseRecord(ctx, &seen, st.Targets, st.Value)
				case *ir.If:
					st.Cond = cseSubst(ctx, st.Cond, &seen)
					seen = nil
				case *ir.Switch:
					st.Cond = cseSubst(ctx, st.Cond, &seen)
					seen = nil
				default:
					seen = nil
				}
			}
			return stmts
		},
	}
	return r.RewriteBlock(block)
}

func cseRecord(ctx *pass.Context, seen *[]cseEntry, targets []ir.Identifier, value ir.Expression) {
	if len(targets) != 1 || value == nil {
		return
	}
	if _, isCall := value.(*ir.FunctionCall); !isCall {
		return
	}
	if !dialect.Movable(ctx.Dialect, value) {
		return
	}
	if ir.FreeVariables(value).Has(targets[0]) {
		return
	}
	*seen = append(*seen, cseEntry{name: targets[0], expr: value})
}

func cseSubst(ctx *pass.Context, e ir.Expression, seen *[]cseEntry) ir.Expression {
	if e == nil {
		return nil
	}
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			if _, isCall := e.(*ir.FunctionCall); !isCall {
				return e
			}
			if !dialect.Movable(ctx.Dialect, e) {
				return e
			}
			for _, entry := range *seen {
				if ir.Equal(entry.expr, e) {
					return ir.Id(string(entry.name))
				}
			}
			return e
		},
	}
	return r.RewriteExpression(e)
}

func cseInvalidate(seen *[]cseEntry, v ir.Identifier) {
	out := (*seen)[:0]
	for _, entry := range *seen {
		if entry.name == v || ir.FreeVariables(entry.expr).Has(v) {
			continue
		}
		out = append(out, entry)
	}
	*seen = out
}

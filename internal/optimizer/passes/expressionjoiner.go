package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ExpressionJoiner is ExpressionSplitter's inverse: a `let tmp := E`
// declaration whose variable is read exactly once, by the statement
// immediately following it, is removed and E is substituted directly into
// that read. Joining is restricted to movable values — since substitution
// can move E's evaluation point later relative to arguments evaluated
// before the use site inside the merged expression, only a value with no
// side effects and no ordering dependency is safe to relocate that way.
type ExpressionJoiner struct{}

func (ExpressionJoiner) Name() string { return "ExpressionJoiner" }

func (p ExpressionJoiner) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for i := 0; i < len(stmts); i++ {
				decl, ok := stmts[i].(*ir.VariableDeclaration)
				if ok && i+1 < len(stmts) && len(decl.Targets) == 1 && decl.Value != nil &&
					dialect.Movable(ctx.Dialect, decl.Value) {
					get, set := exprFieldOf(stmts[i+1])
					if get != nil && countIdentifierUses(get(), decl.Targets[0]) == 1 &&
						countUsesInList(stmts[i+1:], decl.Targets[0]) == 1 {
						set(substituteIdentifier(get(), decl.Targets[0], decl.Value))
						out = append(out, stmts[i+1])
						i++
						continue
					}
				}
				out = append(out, stmts[i])
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

// exprFieldOf returns accessors for the single value-bearing expression a
// statement carries, or (nil, nil) if it carries none (or more than one,
// like ForLoop, which this pass never joins into).
func exprFieldOf(s ir.Statement) (get func() ir.Expression, set func(ir.Expression)) {
	switch st := s.(type) {
	case *ir.ExpressionStatement:
		return func() ir.Expression { return st.Expr }, func(e ir.Expression) { st.Expr = e }
	case *ir.Assignment:
		return func() ir.Expression { return st.Value }, func(e ir.Expression) { st.Value = e }
	case *ir.VariableDeclaration:
		return func() ir.Expression { return st.Value }, func(e ir.Expression) { st.Value = e }
	case *ir.If:
		return func() ir.Expression { return st.Cond }, func(e ir.Expression) { st.Cond = e }
	case *ir.Switch:
		return func() ir.Expression { return st.Cond }, func(e ir.Expression) { st.Cond = e }
	default:
		return nil, nil
	}
}

func countIdentifierUses(e ir.Expression, name ir.Identifier) int {
	count := 0
	v := &ir.Visitor{
		Expr: func(e ir.Expression) {
			if id, ok := e.(*ir.IdentifierExpr); ok && id.Name == name {
				count++
			}
		},
	}
	v.WalkExpression(e)
	return count
}

func substituteIdentifier(e ir.Expression, name ir.Identifier, value ir.Expression) ir.Expression {
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			if id, ok := e.(*ir.IdentifierExpr); ok && id.Name == name {
				return ir.Copy(value)
			}
			return e
		},
	}
	return r.RewriteExpression(e)
}

package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// rematerialiseCostLimit bounds how large a defining expression may be
// before Rematerialiser will stop tracking it as a substitution candidate:
// past this size, duplicating it at every use costs more code than the
// stack slot it would free up is worth.
const rematerialiseCostLimit = 4

// Rematerialiser tracks, within a single straight-line statement list, the
// most recent movable, cheap-to-recompute definition of each variable and
// substitutes a fresh copy of that definition at every later read — in
// effect, reducing the variable's live range to zero by recomputing it
// wherever it's needed instead of holding it live across the statements in
// between. A tracked definition is dropped as soon as any of its free
// variables (or the variable itself) is reassigned, or control branches
// into a nested scope: the pass never follows a rematerialization across a
// conditional, loop or nested block boundary.
type Rematerialiser struct{}

func (Rematerialiser) Name() string { return "Rematerialiser" }

func (p Rematerialiser) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			defs := make(map[ir.Identifier]ir.Expression)
			for _, s := range stmts {
				switch st := s.(type) {
				case *ir.ExpressionStatement:
					st.Expr = rematSubst(st.Expr, defs)
				case *ir.Assignment:
					st.Value = rematSubst(st.Value, defs)
					for _, t := range st.Targets {
						invalidateRemat(defs, t)
					}
				case *ir.VariableDeclaration:
					st.Value = rematSubst(st.Value, defs)
					for _, t := range st.Targets {
						invalidateRemat(defs, t)
					}
					if len(st.Targets) == 1 && st.Value != nil &&
						dialect.Movable(ctx.Dialect, st.Value) && rematCost(st.Value) <= rematerialiseCostLimit {
						defs[st.Targets[0]] = st.Value
					}
				case *ir.If:
					st.Cond = rematSubst(st.Cond, defs)
					clearRemat(defs)
				case *ir.Switch:
					st.Cond = rematSubst(st.Cond, defs)
					clearRemat(defs)
				default:
					clearRemat(defs)
				}
			}
			return stmts
		},
	}
	return r.RewriteBlock(block)
}

func rematSubst(e ir.Expression, defs map[ir.Identifier]ir.Expression) ir.Expression {
	if e == nil {
		return nil
	}
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			id, ok := e.(*ir.IdentifierExpr)
			if !ok {
				return e
			}
			if def, ok := defs[id.Name]; ok {
				return ir.Copy(def)
			}
			return e
		},
	}
	return r.RewriteExpression(e)
}

func invalidateRemat(defs map[ir.Identifier]ir.Expression, v ir.Identifier) {
	delete(defs, v)
	for name, def := range defs {
		if ir.FreeVariables(def).Has(v) {
			delete(defs, name)
		}
	}
}

func clearRemat(defs map[ir.Identifier]ir.Expression) {
	for k := range defs {
		delete(defs, k)
	}
}

func rematCost(e ir.Expression) int {
	switch ex := e.(type) {
	case *ir.Literal, *ir.IdentifierExpr:
		return 1
	case *ir.FunctionCall:
		cost := 1
		for _, a := range ex.Args {
			cost += rematCost(a)
		}
		return cost
	default:
		return rematerialiseCostLimit + 1
	}
}

package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// LiteralRematerialiser replaces every read of a variable last assigned a
// plain literal with a fresh copy of that literal, threaded through the
// whole function body rather than one statement list at a time: unlike a
// general expression, a literal has no free variables, so it stays valid
// to substitute across a branch or loop boundary right up until the
// variable itself is reassigned somewhere inside one. On reaching an
// If, Switch or ForLoop, every variable assigned anywhere inside it is
// forgotten for the code that follows, conservatively — whether or not
// that arm actually runs at a given execution.
type LiteralRematerialiser struct{}

func (LiteralRematerialiser) Name() string { return "LiteralRematerialiser" }

func (p LiteralRematerialiser) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	defs := make(map[ir.Identifier]*ir.Literal)
	block.Statements = literalRematBlock(block.Statements, defs)
	return block
}

func literalRematBlock(stmts []ir.Statement, defs map[ir.Identifier]*ir.Literal) []ir.Statement {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ir.ExpressionStatement:
			st.Expr = literalSubst(st.Expr, defs)
		case *ir.Assignment:
			st.Value = literalSubst(st.Value, defs)
			for _, t := range st.Targets {
				delete(defs, t)
			}
		case *ir.VariableDeclaration:
			st.Value = literalSubst(st.Value, defs)
			for _, t := range st.Targets {
				delete(defs, t)
			}
			if len(st.Targets) == 1 {
				if lit, ok := st.Value.(*ir.Literal); ok {
					defs[st.Targets[0]] = lit
				}
			}
		case *ir.If:
			st.Cond = literalSubst(st.Cond, defs)
			forgetAll(defs, ir.AssignedVariables(st.Body))
			st.Body.Statements = literalRematBlock(st.Body.Statements, cloneLiteralDefs(defs))
		case *ir.Switch:
			st.Cond = literalSubst(st.Cond, defs)
			for _, c := range st.Cases {
				forgetAll(defs, ir.AssignedVariables(c.Body))
			}
			for i := range st.Cases {
				st.Cases[i].Body.Statements = literalRematBlock(st.Cases[i].Body.Statements, cloneLiteralDefs(defs))
			}
		case *ir.ForLoop:
			forgetAll(defs, ir.AssignedVariables(st.Init))
			forgetAll(defs, ir.AssignedVariables(st.Post))
			forgetAll(defs, ir.AssignedVariables(st.Body))
			loopDefs := cloneLiteralDefs(defs)
			st.Init.Statements = literalRematBlock(st.Init.Statements, loopDefs)
			st.Cond = literalSubst(st.Cond, loopDefs)
			st.Post.Statements = literalRematBlock(st.Post.Statements, cloneLiteralDefs(loopDefs))
			st.Body.Statements = literalRematBlock(st.Body.Statements, cloneLiteralDefs(loopDefs))
		case *ir.FunctionDefinition:
			st.Body.Statements = literalRematBlock(st.Body.Statements, make(map[ir.Identifier]*ir.Literal))
		case *ir.Block:
			st.Statements = literalRematBlock(st.Statements, defs)
		}
	}
	return stmts
}

func literalSubst(e ir.Expression, defs map[ir.Identifier]*ir.Literal) ir.Expression {
	if e == nil {
		return nil
	}
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			id, ok := e.(*ir.IdentifierExpr)
			if !ok {
				return e
			}
			if lit, ok := defs[id.Name]; ok {
				return ir.Copy(lit)
			}
			return e
		},
	}
	return r.RewriteExpression(e)
}

func forgetAll(defs map[ir.Identifier]*ir.Literal, vars ir.IdentifierSet) {
	for v := range vars {
		delete(defs, v)
	}
}

func cloneLiteralDefs(defs map[ir.Identifier]*ir.Literal) map[ir.Identifier]*ir.Literal {
	out := make(map[ir.Identifier]*ir.Literal, len(defs))
	for k, v := range defs {
		out[k] = v
	}
	return out
}

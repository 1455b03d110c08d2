package optimizer

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// renameScope tracks the in-scope rename for every declared name visible at
// a point in the program, plus which of those names denote a function (so
// a function body can inherit sibling/enclosing function names for
// mutual recursion while still starting with no visibility into any
// enclosing block's local variables).
type renameScope struct {
	names  map[ir.Identifier]ir.Identifier
	isFunc map[ir.Identifier]bool
}

func newRenameScope() renameScope {
	return renameScope{names: map[ir.Identifier]ir.Identifier{}, isFunc: map[ir.Identifier]bool{}}
}

func (s renameScope) clone() renameScope {
	names := make(map[ir.Identifier]ir.Identifier, len(s.names))
	for k, v := range s.names {
		names[k] = v
	}
	isFunc := make(map[ir.Identifier]bool, len(s.isFunc))
	for k, v := range s.isFunc {
		isFunc[k] = v
	}
	return renameScope{names: names, isFunc: isFunc}
}

// functionScope derives the scope a nested function body starts with: only
// the function-name bindings currently visible, none of the enclosing
// block's local variables.
func (s renameScope) functionScope() renameScope {
	out := newRenameScope()
	for k, v := range s.names {
		if s.isFunc[k] {
			out.names[k] = v
			out.isFunc[k] = true
		}
	}
	return out
}

// disambiguate renames every declaration in block to a name unique across
// the entire program, per the dispenser's reservation bookkeeping, so that
// every subsequent pass can assume unique names without itself tracking
// scope (spec invariant 1, §4.6 step 2). It is the suite's entry bookend,
// run once before any recipe pass.
func disambiguate(ctx *pass.Context, block *ir.Block) *ir.Block {
	block.Statements = disambiguateStatements(ctx, block.Statements, newRenameScope())
	return block
}

func disambiguateStatements(ctx *pass.Context, stmts []ir.Statement, scope renameScope) []ir.Statement {
	for _, s := range stmts {
		if fn, ok := s.(*ir.FunctionDefinition); ok {
			fresh := ctx.Dispenser.NewNameFrom(fn.Name)
			scope.names[fn.Name] = fresh
			scope.isFunc[fn.Name] = true
		}
	}
	out := make([]ir.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = disambiguateStatement(ctx, s, scope)
	}
	return out
}

func disambiguateStatement(ctx *pass.Context, s ir.Statement, scope renameScope) ir.Statement {
	switch st := s.(type) {
	case *ir.VariableDeclaration:
		if st.Value != nil {
			st.Value = disambiguateExpr(st.Value, scope)
		}
		for i, t := range st.Targets {
			fresh := ctx.Dispenser.NewNameFrom(t)
			scope.names[t] = fresh
			st.Targets[i] = fresh
		}
		return st
	case *ir.Assignment:
		st.Value = disambiguateExpr(st.Value, scope)
		for i, t := range st.Targets {
			if fresh, ok := scope.names[t]; ok {
				st.Targets[i] = fresh
			}
		}
		return st
	case *ir.ExpressionStatement:
		st.Expr = disambiguateExpr(st.Expr, scope)
		return st
	case *ir.If:
		st.Cond = disambiguateExpr(st.Cond, scope)
		st.Body.Statements = disambiguateStatements(ctx, st.Body.Statements, scope.clone())
		return st
	case *ir.Switch:
		st.Cond = disambiguateExpr(st.Cond, scope)
		for i := range st.Cases {
			st.Cases[i].Body.Statements = disambiguateStatements(ctx, st.Cases[i].Body.Statements, scope.clone())
		}
		return st
	case *ir.ForLoop:
		loopScope := scope.clone()
		st.Init.Statements = disambiguateStatements(ctx, st.Init.Statements, loopScope)
		st.Cond = disambiguateExpr(st.Cond, loopScope)
		st.Body.Statements = disambiguateStatements(ctx, st.Body.Statements, loopScope.clone())
		st.Post.Statements = disambiguateStatements(ctx, st.Post.Statements, loopScope.clone())
		return st
	case *ir.Break, *ir.Continue, *ir.Leave:
		return st
	case *ir.FunctionDefinition:
		st.Name = scope.names[st.Name]
		bodyScope := scope.functionScope()
		for i, p := range st.Parameters {
			fresh := ctx.Dispenser.NewNameFrom(p)
			bodyScope.names[p] = fresh
			st.Parameters[i] = fresh
		}
		for i, r := range st.Returns {
			fresh := ctx.Dispenser.NewNameFrom(r)
			bodyScope.names[r] = fresh
			st.Returns[i] = fresh
		}
		st.Body.Statements = disambiguateStatements(ctx, st.Body.Statements, bodyScope)
		return st
	case *ir.Block:
		st.Statements = disambiguateStatements(ctx, st.Statements, scope.clone())
		return st
	default:
		pass.RequirePrecondition("Disambiguator", false, "unhandled statement variant")
		return nil
	}
}

func disambiguateExpr(e ir.Expression, scope renameScope) ir.Expression {
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			if call, ok := e.(*ir.FunctionCall); ok {
				if fresh, ok := scope.names[call.Name]; ok && scope.isFunc[call.Name] {
					call.Name = fresh
				}
				return call
			}
			id, ok := e.(*ir.IdentifierExpr)
			if !ok {
				return e
			}
			if fresh, ok := scope.names[id.Name]; ok {
				return ir.Id(string(fresh))
			}
			return e
		},
	}
	return r.RewriteExpression(e)
}

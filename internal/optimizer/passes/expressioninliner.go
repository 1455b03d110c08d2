package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ExpressionInliner inlines the body of a function shaped like a single
// expression — exactly one statement, `returnVar := E` where E is movable
// and built only out of the function's own parameters — directly into
// every call site, substituting each argument for its parameter. A
// function with a larger body, more than one return variable, or a body
// that isn't movable is left for FullInliner (statement-level inlining) or
// left alone entirely.
type ExpressionInliner struct{}

func (ExpressionInliner) Name() string { return "ExpressionInliner" }

func (p ExpressionInliner) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	candidates := make(map[ir.Identifier]*ir.FunctionDefinition)
	for _, s := range block.Statements {
		if fn, ok := s.(*ir.FunctionDefinition); ok {
			if _, ok := expressionInlineBody(ctx, fn); ok {
				candidates[fn.Name] = fn
			}
		}
	}
	if len(candidates) == 0 {
		return block
	}
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			call, ok := e.(*ir.FunctionCall)
			if !ok {
				return e
			}
			fn, ok := candidates[call.Name]
			if !ok {
				return e
			}
			body, _ := expressionInlineBody(ctx, fn)
			subst := make(map[ir.Identifier]ir.Expression, len(fn.Parameters))
			for i, param := range fn.Parameters {
				subst[param] = call.Args[i]
			}
			return substituteParams(body, subst)
		},
	}
	return r.RewriteBlock(block)
}

// expressionInlineBody reports whether fn is shaped as a single movable
// expression assigned to its one return variable, and returns that
// expression.
func expressionInlineBody(ctx *pass.Context, fn *ir.FunctionDefinition) (ir.Expression, bool) {
	if len(fn.Returns) != 1 || len(fn.Body.Statements) != 1 {
		return nil, false
	}
	assign, ok := fn.Body.Statements[0].(*ir.Assignment)
	if !ok || len(assign.Targets) != 1 || assign.Targets[0] != fn.Returns[0] {
		return nil, false
	}
	if !dialect.Movable(ctx.Dialect, assign.Value) {
		return nil, false
	}
	params := ir.NewIdentifierSet(fn.Parameters...)
	for v := range ir.FreeVariables(assign.Value) {
		if !params.Has(v) {
			return nil, false
		}
	}
	return assign.Value, true
}

func substituteParams(e ir.Expression, subst map[ir.Identifier]ir.Expression) ir.Expression {
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			id, ok := e.(*ir.IdentifierExpr)
			if !ok {
				return e
			}
			if v, ok := subst[id.Name]; ok {
				return ir.Copy(v)
			}
			return e
		},
	}
	return r.RewriteExpression(ir.Copy(e))
}

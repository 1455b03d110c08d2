package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ConstantOptimiser is not part of the recipe catalog — it is invoked
// directly by the suite as a final pass for stack-like dialects only,
// after every recipe-driven pass and the stack compressor have run. It
// rewrites a repeated literal used as more than one call argument into a
// single movable declaration the dialect can materialize once and read
// many times, when the dialect's own materialization cost says that's
// cheaper than re-emitting the literal at every use.
type ConstantOptimiser struct{}

func (ConstantOptimiser) Name() string { return "ConstantOptimiser" }

func (p ConstantOptimiser) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	if !ctx.Dialect.IsStackLike() {
		return block
	}
	counts := make(map[string]int)
	var order []string
	lits := make(map[string]*ir.Literal)
	v := &ir.Visitor{
		Expr: func(e ir.Expression) {
			lit, ok := e.(*ir.Literal)
			if !ok {
				return
			}
			key := string(lit.Kind) + ":" + lit.Value
			if _, seen := lits[key]; !seen {
				order = append(order, key)
				lits[key] = lit
			}
			counts[key]++
		},
	}
	v.WalkStatement(block)

	bindings := make(map[string]ir.Identifier)
	var decls []ir.Statement
	for _, key := range order {
		lit := lits[key]
		if counts[key] < 2 {
			continue
		}
		cost := literalCost(ctx, lit.Value, lit.Kind)
		if cost*counts[key] <= cost+counts[key] {
			continue
		}
		name := ctx.Dispenser.NewName("constant_" + lit.Value)
		bindings[key] = name
		decls = append(decls, ir.Let(lit, string(name)))
	}
	if len(decls) == 0 {
		return block
	}

	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			lit, ok := e.(*ir.Literal)
			if !ok {
				return e
			}
			key := string(lit.Kind) + ":" + lit.Value
			if name, ok := bindings[key]; ok {
				return ir.Id(string(name))
			}
			return e
		},
	}
	rewritten := r.RewriteBlock(block)
	rewritten.Statements = append(append([]ir.Statement{}, decls...), rewritten.Statements...)
	return rewritten
}

// literalCost consults the caller-supplied GasMeter when present, falling
// back to the dialect's own materialization cost estimate otherwise.
func literalCost(ctx *pass.Context, value string, kind ir.LiteralKind) int {
	if ctx.GasMeter != nil {
		return ctx.GasMeter.Cost(value, kind)
	}
	return ctx.Dialect.LiteralMaterializationCost(value, kind)
}

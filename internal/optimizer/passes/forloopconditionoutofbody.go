package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ForLoopConditionOutOfBody is the inverse of ForLoopConditionIntoBody: a
// loop whose body starts with `if iszero(cond) { break }` (and nothing else
// reaches that break from elsewhere, i.e. the guard is the body's very
// first statement and its block is exactly one Break) has that guard
// lifted back into the loop's own Cond slot.
type ForLoopConditionOutOfBody struct{}

func (ForLoopConditionOutOfBody) Name() string { return "ForLoopConditionOutOfBody" }

func (p ForLoopConditionOutOfBody) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		Statement: func(s ir.Statement) ir.Statement {
			loop, ok := s.(*ir.ForLoop)
			if !ok || len(loop.Body.Statements) == 0 {
				return s
			}
			guard, ok := loop.Body.Statements[0].(*ir.If)
			if !ok || len(guard.Body.Statements) != 1 {
				return s
			}
			if _, ok := guard.Body.Statements[0].(*ir.Break); !ok {
				return s
			}
			call, ok := guard.Cond.(*ir.FunctionCall)
			if !ok || call.Name != "iszero" || len(call.Args) != 1 {
				return s
			}
			loop.Cond = call.Args[0]
			loop.Body = ir.NewBlock(loop.Body.Statements[1:]...)
			return loop
		},
	}
	return r.RewriteBlock(block)
}

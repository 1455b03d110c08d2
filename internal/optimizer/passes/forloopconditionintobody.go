package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ForLoopConditionIntoBody rewrites `for {init} cond {post} {body}` into
// `for {init} true {post} { if iszero(cond) { break } body }` for every loop
// whose condition is not already the literal true. This normalizes loop
// shape so later passes (LoopInvariantCodeMotion, the stack-compressor
// rematerialisation loop) only ever have to reason about a trivial
// condition and an explicit break. ForLoopConditionOutOfBody is its
// inverse.
type ForLoopConditionIntoBody struct{}

func (ForLoopConditionIntoBody) Name() string { return "ForLoopConditionIntoBody" }

func (p ForLoopConditionIntoBody) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		Statement: func(s ir.Statement) ir.Statement {
			loop, ok := s.(*ir.ForLoop)
			if !ok || isTrueLiteral(loop.Cond) {
				return s
			}
			guard := &ir.If{
				Cond: ir.Call("iszero", loop.Cond),
				Body: ir.NewBlock(&ir.Break{}),
			}
			newBody := ir.NewBlock(append([]ir.Statement{guard}, loop.Body.Statements...)...)
			loop.Cond = ir.Bool(true)
			loop.Body = newBody
			return loop
		},
	}
	return r.RewriteBlock(block)
}

func isTrueLiteral(e ir.Expression) bool {
	lit, ok := e.(*ir.Literal)
	return ok && lit.Kind == ir.LiteralBoolean && lit.Value == "true"
}

package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestForLoopConditionOutOfBodyLiftsLeadingGuard(t *testing.T) {
	loop := ir.For(
		ir.NewBlock(ir.Let(ir.Num("0"), "i")),
		ir.Bool(true),
		ir.NewBlock(),
		ir.NewBlock(
			&ir.If{Cond: ir.Call("iszero", ir.Call("lt", ir.Id("i"), ir.Num("10"))), Body: ir.NewBlock(&ir.Break{})},
			ir.ExprStmt(ir.Id("i")),
		),
	)
	block := ir.NewBlock(loop)
	ctx := newTestContext(block)
	out := passes.ForLoopConditionOutOfBody{}.Run(ctx, block)

	result := out.Statements[0].(*ir.ForLoop)
	call := result.Cond.(*ir.FunctionCall)
	require.Equal(t, ir.Identifier("lt"), call.Name)
	require.Len(t, result.Body.Statements, 1)
}

func TestForLoopConditionOutOfBodyLeavesNonGuardBodyAlone(t *testing.T) {
	loop := ir.For(ir.NewBlock(), ir.Bool(true), ir.NewBlock(), ir.NewBlock(ir.ExprStmt(ir.Id("i"))))
	block := ir.NewBlock(loop)
	ctx := newTestContext(block)
	out := passes.ForLoopConditionOutOfBody{}.Run(ctx, block)
	result := out.Statements[0].(*ir.ForLoop)
	require.Equal(t, ir.Bool(true), result.Cond)
	require.Len(t, result.Body.Statements, 1)
}

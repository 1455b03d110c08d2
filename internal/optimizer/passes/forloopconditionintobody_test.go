package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestForLoopConditionIntoBodyMovesConditionAsGuard(t *testing.T) {
	loop := ir.For(
		ir.NewBlock(ir.Let(ir.Num("0"), "i")),
		ir.Call("lt", ir.Id("i"), ir.Num("10")),
		ir.NewBlock(),
		ir.NewBlock(ir.ExprStmt(ir.Id("i"))),
	)
	block := ir.NewBlock(loop)
	ctx := newTestContext(block)
	out := passes.ForLoopConditionIntoBody{}.Run(ctx, block)

	result := out.Statements[0].(*ir.ForLoop)
	require.Equal(t, ir.Bool(true), result.Cond)
	guard := result.Body.Statements[0].(*ir.If)
	call := guard.Cond.(*ir.FunctionCall)
	require.Equal(t, ir.Identifier("iszero"), call.Name)
	require.IsType(t, &ir.Break{}, guard.Body.Statements[0])
	require.Len(t, result.Body.Statements, 2)
}

func TestForLoopConditionIntoBodyLeavesTrueConditionAlone(t *testing.T) {
	loop := ir.For(ir.NewBlock(), ir.Bool(true), ir.NewBlock(), ir.NewBlock(ir.ExprStmt(ir.Id("i"))))
	block := ir.NewBlock(loop)
	ctx := newTestContext(block)
	out := passes.ForLoopConditionIntoBody{}.Run(ctx, block)
	result := out.Statements[0].(*ir.ForLoop)
	require.Len(t, result.Body.Statements, 1)
}

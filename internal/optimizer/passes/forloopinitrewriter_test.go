package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestForLoopInitRewriterLeavesDeclOnlyInitInPlace(t *testing.T) {
	loop := ir.For(
		ir.NewBlock(ir.Let(ir.Num("0"), "i")),
		ir.Call("lt", ir.Id("i"), ir.Num("10")),
		ir.NewBlock(ir.Assign(ir.Call("add", ir.Id("i"), ir.Num("1")), "i")),
		ir.NewBlock(),
	)
	block := ir.NewBlock(loop)
	ctx := newTestContext(block)
	out := passes.ForLoopInitRewriter{}.Run(ctx, block)
	require.Len(t, out.Statements, 1)
	require.Equal(t, loop, out.Statements[0])
	require.Len(t, loop.Init.Statements, 1)
}

func TestForLoopInitRewriterHoistsNonDeclStatements(t *testing.T) {
	loop := ir.For(
		ir.NewBlock(ir.ExprStmt(ir.Call("sstore", ir.Num("0"), ir.Num("1")))),
		ir.Bool(true),
		ir.NewBlock(),
		ir.NewBlock(),
	)
	block := ir.NewBlock(loop)
	ctx := newTestContext(block)
	out := passes.ForLoopInitRewriter{}.Run(ctx, block)
	require.Len(t, out.Statements, 2)
	require.IsType(t, &ir.ExpressionStatement{}, out.Statements[0])
	require.Empty(t, loop.Init.Statements)
}

package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestBlockFlattenerSplicesNonShadowingBlock(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Num("1"), "a"),
		ir.NewBlock(ir.Let(ir.Num("2"), "b"), ir.ExprStmt(ir.Id("b"))),
	)
	ctx := newTestContext(block)
	out := passes.BlockFlattener{}.Run(ctx, block)
	require.Len(t, out.Statements, 3)
}

func TestBlockFlattenerLeavesShadowingBlockInPlace(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Num("1"), "a"),
		ir.NewBlock(ir.Let(ir.Num("2"), "a")),
	)
	ctx := newTestContext(block)
	out := passes.BlockFlattener{}.Run(ctx, block)
	require.Len(t, out.Statements, 2)
	require.IsType(t, &ir.Block{}, out.Statements[1])
}

package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestDeadCodeEliminatorTruncatesAfterBreak(t *testing.T) {
	block := ir.NewBlock(ir.ExprStmt(ir.Id("a")), &ir.Break{}, ir.ExprStmt(ir.Id("b")))
	ctx := newTestContext(block)
	out := passes.DeadCodeEliminator{}.Run(ctx, block)
	require.Len(t, out.Statements, 2)
}

func TestDeadCodeEliminatorTruncatesAfterTerminatingCall(t *testing.T) {
	block := ir.NewBlock(
		ir.ExprStmt(ir.Call("revert", ir.Num("0"), ir.Num("0"))),
		ir.ExprStmt(ir.Id("b")),
	)
	ctx := newTestContext(block)
	out := passes.DeadCodeEliminator{}.Run(ctx, block)
	require.Len(t, out.Statements, 1)
}

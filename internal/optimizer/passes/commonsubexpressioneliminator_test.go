package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestCommonSubexpressionEliminatorReusesEarlierMovableResult(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Call("add", ir.Id("a"), ir.Id("b")), "x"),
		ir.Let(ir.Call("add", ir.Id("a"), ir.Id("b")), "y"),
	)
	ctx := newTestContext(block)
	out := passes.CommonSubexpressionEliminator{}.Run(ctx, block)
	second := out.Statements[1].(*ir.VariableDeclaration)
	id := second.Value.(*ir.IdentifierExpr)
	require.Equal(t, ir.Identifier("x"), id.Name)
}

func TestCommonSubexpressionEliminatorInvalidatesOnReassignedOperand(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Call("add", ir.Id("a"), ir.Id("b")), "x"),
		ir.Assign(ir.Num("1"), "a"),
		ir.Let(ir.Call("add", ir.Id("a"), ir.Id("b")), "y"),
	)
	ctx := newTestContext(block)
	out := passes.CommonSubexpressionEliminator{}.Run(ctx, block)
	third := out.Statements[2].(*ir.VariableDeclaration)
	require.IsType(t, &ir.FunctionCall{}, third.Value)
}

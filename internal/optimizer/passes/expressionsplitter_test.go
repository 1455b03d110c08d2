package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestExpressionSplitterLiftsNestedCalls(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Call("add", ir.Call("mul", ir.Num("2"), ir.Num("3")), ir.Num("1")), "x"),
	)
	ctx := newTestContext(block)
	out := passes.ExpressionSplitter{}.Run(ctx, block)
	require.Len(t, out.Statements, 2)
	require.IsType(t, &ir.VariableDeclaration{}, out.Statements[0])
	lifted := out.Statements[0].(*ir.VariableDeclaration)
	require.IsType(t, &ir.FunctionCall{}, lifted.Value)
	require.Equal(t, ir.Identifier("mul"), lifted.Value.(*ir.FunctionCall).Name)

	final := out.Statements[1].(*ir.VariableDeclaration)
	call := final.Value.(*ir.FunctionCall)
	require.IsType(t, &ir.IdentifierExpr{}, call.Args[0])
	require.Equal(t, ir.Num("1"), call.Args[1])
}

func TestExpressionSplitterLeavesFlatCallsAlone(t *testing.T) {
	block := ir.NewBlock(ir.Let(ir.Call("add", ir.Id("a"), ir.Num("1")), "x"))
	ctx := newTestContext(block)
	out := passes.ExpressionSplitter{}.Run(ctx, block)
	require.Len(t, out.Statements, 1)
}

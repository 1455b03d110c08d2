package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestLoopInvariantCodeMotionHoistsMovablePrefix(t *testing.T) {
	loop := ir.For(
		ir.NewBlock(ir.Let(ir.Num("0"), "i")),
		ir.Call("lt", ir.Id("i"), ir.Num("10")),
		ir.NewBlock(ir.Assign(ir.Call("add", ir.Id("i"), ir.Num("1")), "i")),
		ir.NewBlock(
			ir.Let(ir.Call("add", ir.Num("1"), ir.Num("2")), "k"),
			ir.ExprStmt(ir.Call("sstore", ir.Id("k"), ir.Id("i"))),
		),
	)
	block := ir.NewBlock(loop)
	ctx := newTestContext(block)
	out := passes.LoopInvariantCodeMotion{}.Run(ctx, block)
	require.Len(t, out.Statements, 2)
	require.IsType(t, &ir.VariableDeclaration{}, out.Statements[0])
	hoisted := out.Statements[0].(*ir.VariableDeclaration)
	require.Equal(t, ir.Identifier("k"), hoisted.Targets[0])
	resultLoop := out.Statements[1].(*ir.ForLoop)
	require.Len(t, resultLoop.Body.Statements, 1)
}

func TestLoopInvariantCodeMotionLeavesDependentDeclarationInPlace(t *testing.T) {
	loop := ir.For(
		ir.NewBlock(ir.Let(ir.Num("0"), "i")),
		ir.Call("lt", ir.Id("i"), ir.Num("10")),
		ir.NewBlock(ir.Assign(ir.Call("add", ir.Id("i"), ir.Num("1")), "i")),
		ir.NewBlock(
			ir.Let(ir.Call("add", ir.Id("i"), ir.Num("2")), "k"),
			ir.ExprStmt(ir.Call("sstore", ir.Id("k"), ir.Id("i"))),
		),
	)
	block := ir.NewBlock(loop)
	ctx := newTestContext(block)
	out := passes.LoopInvariantCodeMotion{}.Run(ctx, block)
	require.Len(t, out.Statements, 1)
	resultLoop := out.Statements[0].(*ir.ForLoop)
	require.Len(t, resultLoop.Body.Statements, 2)
}

package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
	"irsuite/internal/optimizer/passes"
)

func TestConstantOptimiserHoistsRepeatedExpensiveLiteral(t *testing.T) {
	big := ir.Num("123456789012345678901234")
	block := ir.NewBlock(
		ir.ExprStmt(ir.Call("sstore", ir.Copy(big), ir.Copy(big))),
		ir.ExprStmt(ir.Call("sstore", ir.Copy(big), ir.Copy(big))),
	)
	ctx := newTestContext(block)
	out := passes.ConstantOptimiser{}.Run(ctx, block)

	require.IsType(t, &ir.VariableDeclaration{}, out.Statements[0])
	decl := out.Statements[0].(*ir.VariableDeclaration)
	require.Equal(t, big, decl.Value)
}

func TestConstantOptimiserLeavesSingleUseLiteralAlone(t *testing.T) {
	block := ir.NewBlock(ir.ExprStmt(ir.Call("sstore", ir.Num("1"), ir.Num("123456789012345678901234"))))
	ctx := newTestContext(block)
	out := passes.ConstantOptimiser{}.Run(ctx, block)
	require.Len(t, out.Statements, 1)
	require.IsType(t, &ir.ExpressionStatement{}, out.Statements[0])
}

func TestConstantOptimiserSkipsNonStackLikeDialect(t *testing.T) {
	big := ir.Num("123456789012345678901234")
	block := ir.NewBlock(
		ir.ExprStmt(ir.Call("store8", ir.Copy(big), ir.Copy(big))),
		ir.ExprStmt(ir.Call("store8", ir.Copy(big), ir.Copy(big))),
	)
	ctx := pass.NewContext(dialect.LinearMemory, block, ir.NewIdentifierSet())
	out := passes.ConstantOptimiser{}.Run(ctx, block)
	require.Len(t, out.Statements, 2)
}

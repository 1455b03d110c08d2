package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestRematerialiserSubstitutesCheapMovableDefinition(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Call("add", ir.Num("1"), ir.Num("2")), "x"),
		ir.ExprStmt(ir.Id("x")),
	)
	ctx := newTestContext(block)
	out := passes.Rematerialiser{}.Run(ctx, block)
	use := out.Statements[1].(*ir.ExpressionStatement)
	require.IsType(t, &ir.FunctionCall{}, use.Expr)
}

func TestRematerialiserInvalidatesOnReassignment(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Call("add", ir.Num("1"), ir.Num("2")), "x"),
		ir.Assign(ir.Num("9"), "x"),
		ir.ExprStmt(ir.Id("x")),
	)
	ctx := newTestContext(block)
	out := passes.Rematerialiser{}.Run(ctx, block)
	use := out.Statements[2].(*ir.ExpressionStatement)
	require.IsType(t, &ir.IdentifierExpr{}, use.Expr)
}

func TestRematerialiserDoesNotCrossNestedScopeBoundary(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Call("add", ir.Num("1"), ir.Num("2")), "x"),
		ir.IfStmt(ir.Bool(true), ir.NewBlock()),
		ir.ExprStmt(ir.Id("x")),
	)
	ctx := newTestContext(block)
	out := passes.Rematerialiser{}.Run(ctx, block)
	use := out.Statements[2].(*ir.ExpressionStatement)
	require.IsType(t, &ir.IdentifierExpr{}, use.Expr)
}

package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestExpressionInlinerSubstitutesSingleExpressionFunction(t *testing.T) {
	fn := ir.Func("double", []string{"x"}, []string{"r"},
		ir.NewBlock(ir.Assign(ir.Call("add", ir.Id("x"), ir.Id("x")), "r")),
	)
	block := ir.NewBlock(fn, ir.Let(ir.Call("double", ir.Num("5")), "y"))
	ctx := newTestContext(block)
	out := passes.ExpressionInliner{}.Run(ctx, block)
	decl := out.Statements[1].(*ir.VariableDeclaration)
	call := decl.Value.(*ir.FunctionCall)
	require.Equal(t, ir.Identifier("add"), call.Name)
	require.Equal(t, ir.Num("5"), call.Args[0])
	require.Equal(t, ir.Num("5"), call.Args[1])
}

func TestExpressionInlinerLeavesMultiStatementFunctionAlone(t *testing.T) {
	fn := ir.Func("double", []string{"x"}, []string{"r"},
		ir.NewBlock(
			ir.Let(ir.Call("add", ir.Id("x"), ir.Id("x")), "tmp"),
			ir.Assign(ir.Id("tmp"), "r"),
		),
	)
	block := ir.NewBlock(fn, ir.Let(ir.Call("double", ir.Num("5")), "y"))
	ctx := newTestContext(block)
	out := passes.ExpressionInliner{}.Run(ctx, block)
	decl := out.Statements[1].(*ir.VariableDeclaration)
	call := decl.Value.(*ir.FunctionCall)
	require.Equal(t, ir.Identifier("double"), call.Name)
}

package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestExpressionSimplifierFoldsIdentities(t *testing.T) {
	cases := []struct {
		name string
		in   ir.Expression
		want ir.Expression
	}{
		{"add zero", ir.Call("add", ir.Id("x"), ir.Num("0")), ir.Id("x")},
		{"mul zero", ir.Call("mul", ir.Id("x"), ir.Num("0")), ir.Num("0")},
		{"mul one", ir.Call("mul", ir.Num("1"), ir.Id("x")), ir.Id("x")},
		{"sub self", ir.Call("sub", ir.Id("x"), ir.Id("x")), ir.Num("0")},
		{"eq self", ir.Call("eq", ir.Id("x"), ir.Id("x")), ir.Bool(true)},
		{"div one", ir.Call("div", ir.Id("x"), ir.Num("1")), ir.Id("x")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			block := ir.NewBlock(ir.ExprStmt(c.in))
			ctx := newTestContext(block)
			out := passes.ExpressionSimplifier{}.Run(ctx, block)
			got := out.Statements[0].(*ir.ExpressionStatement).Expr
			require.Equal(t, c.want, got)
		})
	}
}

func TestExpressionSimplifierFoldsLiteralArithmetic(t *testing.T) {
	cases := []struct {
		name string
		in   ir.Expression
		want ir.Expression
	}{
		{"add", ir.Call("add", ir.Num("1"), ir.Num("2")), ir.Num("3")},
		{"mul", ir.Call("mul", ir.Num("3"), ir.Num("3")), ir.Num("9")},
		{"sub", ir.Call("sub", ir.Num("5"), ir.Num("2")), ir.Num("3")},
		{"div by zero", ir.Call("div", ir.Num("5"), ir.Num("0")), ir.Num("0")},
		{"lt", ir.Call("lt", ir.Num("2"), ir.Num("5")), ir.Bool(true)},
		{"iszero of nonzero", ir.Call("iszero", ir.Num("4")), ir.Bool(false)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			block := ir.NewBlock(ir.ExprStmt(c.in))
			ctx := newTestContext(block)
			out := passes.ExpressionSimplifier{}.Run(ctx, block)
			got := out.Statements[0].(*ir.ExpressionStatement).Expr
			require.Equal(t, c.want, got)
		})
	}
}

func TestExpressionSimplifierFoldsTripleIszero(t *testing.T) {
	expr := ir.Call("iszero", ir.Call("iszero", ir.Call("iszero", ir.Id("x"))))
	block := ir.NewBlock(ir.ExprStmt(expr))
	ctx := newTestContext(block)
	out := passes.ExpressionSimplifier{}.Run(ctx, block)
	got := out.Statements[0].(*ir.ExpressionStatement).Expr.(*ir.FunctionCall)
	require.Equal(t, ir.Identifier("iszero"), got.Name)
	require.Equal(t, ir.Id("x"), got.Args[0])
}

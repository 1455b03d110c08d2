package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/passes"
)

func TestCircularReferencesPrunerRemovesUnreachableCycle(t *testing.T) {
	a := ir.Func("a", nil, nil, ir.NewBlock(ir.ExprStmt(ir.Call("b"))))
	b := ir.Func("b", nil, nil, ir.NewBlock(ir.ExprStmt(ir.Call("a"))))
	live := ir.Func("live", nil, nil, ir.NewBlock())
	block := ir.NewBlock(ir.ExprStmt(ir.Call("live")), live, a, b)
	ctx := newTestContext(block)
	out := passes.CircularReferencesPruner{}.Run(ctx, block)

	var remaining []ir.Identifier
	for _, s := range out.Statements {
		if fn, ok := s.(*ir.FunctionDefinition); ok {
			remaining = append(remaining, fn.Name)
		}
	}
	require.Equal(t, []ir.Identifier{"live"}, remaining)
}

func TestCircularReferencesPrunerKeepsCycleReachableFromCode(t *testing.T) {
	a := ir.Func("a", nil, nil, ir.NewBlock(ir.ExprStmt(ir.Call("b"))))
	b := ir.Func("b", nil, nil, ir.NewBlock(ir.ExprStmt(ir.Call("a"))))
	block := ir.NewBlock(ir.ExprStmt(ir.Call("a")), a, b)
	ctx := newTestContext(block)
	out := passes.CircularReferencesPruner{}.Run(ctx, block)

	count := 0
	for _, s := range out.Statements {
		if _, ok := s.(*ir.FunctionDefinition); ok {
			count++
		}
	}
	require.Equal(t, 2, count)
}

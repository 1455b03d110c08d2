package passes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
	"irsuite/internal/optimizer/passes"
)

func TestLoadResolverForwardsStoreToLoad(t *testing.T) {
	block := ir.NewBlock(
		ir.ExprStmt(ir.Call("sstore", ir.Num("0"), ir.Num("42"))),
		ir.Let(ir.Call("sload", ir.Num("0")), "x"),
	)
	ctx := newTestContext(block)
	out := passes.LoadResolver{}.Run(ctx, block)
	decl := out.Statements[1].(*ir.VariableDeclaration)
	require.Equal(t, ir.Num("42"), decl.Value)
}

func TestLoadResolverCachesRepeatedLoad(t *testing.T) {
	block := ir.NewBlock(
		ir.Let(ir.Call("sload", ir.Num("0")), "x"),
		ir.Let(ir.Call("sload", ir.Num("0")), "y"),
	)
	ctx := newTestContext(block)
	out := passes.LoadResolver{}.Run(ctx, block)
	second := out.Statements[1].(*ir.VariableDeclaration)
	id := second.Value.(*ir.IdentifierExpr)
	require.Equal(t, ir.Identifier("x"), id.Name)
}

func TestLoadResolverIsNoOpUnderLinearMemoryDialectForStorage(t *testing.T) {
	_, ok := dialect.LinearMemory.Builtin("sload")
	require.False(t, ok)

	block := ir.NewBlock(
		ir.ExprStmt(ir.Call("sstore", ir.Num("0"), ir.Num("42"))),
		ir.Let(ir.Call("sload", ir.Num("0")), "x"),
	)
	ctx := pass.NewContext(dialect.LinearMemory, block, ir.NewIdentifierSet())
	out := passes.LoadResolver{}.Run(ctx, block)
	decl := out.Statements[1].(*ir.VariableDeclaration)
	require.IsType(t, &ir.FunctionCall{}, decl.Value)
}

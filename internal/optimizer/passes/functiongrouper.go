package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// FunctionGrouper reorders a block's top-level statements into two runs,
// preserving relative order within each: every non-FunctionDefinition
// statement first, then every FunctionDefinition. Suite.Run applies it
// after its default recipe and again after its tail recipe.
type FunctionGrouper struct{}

func (FunctionGrouper) Name() string { return "FunctionGrouper" }

func (p FunctionGrouper) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	code := make([]ir.Statement, 0, len(block.Statements))
	funcs := make([]ir.Statement, 0, len(block.Statements))
	for _, s := range block.Statements {
		if _, ok := s.(*ir.FunctionDefinition); ok {
			funcs = append(funcs, s)
		} else {
			code = append(code, s)
		}
	}
	block.Statements = append(code, funcs...)
	return block
}

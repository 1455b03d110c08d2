package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// VarDeclInitializer ensures every VariableDeclaration has a value,
// inserting a zero-number-literal where one is absent. This gives every
// later pass a simpler invariant to rely on: a declaration's Value field is
// never nil.
type VarDeclInitializer struct{}

func (VarDeclInitializer) Name() string { return "VarDeclInitializer" }

func (p VarDeclInitializer) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		Statement: func(s ir.Statement) ir.Statement {
			decl, ok := s.(*ir.VariableDeclaration)
			if !ok || decl.Value != nil {
				return s
			}
			decl.Value = ir.Num("0")
			return decl
		},
	}
	return r.RewriteBlock(block)
}

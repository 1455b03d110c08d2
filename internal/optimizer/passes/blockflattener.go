package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// BlockFlattener splices a nested Block's statements directly into its
// parent's statement list, as long as the nested block declares no
// variable whose name was already declared earlier in that same statement
// list (declarations in enclosing scopes are not checked), and the nested
// block is not itself a loop/function body boundary
// (those only ever appear wrapped inside If/Switch/ForLoop/FunctionDefinition,
// never as a bare element of a statement list, so this pass only ever sees
// genuine nested Blocks here).
type BlockFlattener struct{}

func (BlockFlattener) Name() string { return "BlockFlattener" }

func (p BlockFlattener) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			declaredSoFar := ir.NewIdentifierSet()
			for _, s := range stmts {
				nested, ok := s.(*ir.Block)
				if !ok || blockShadows(nested, declaredSoFar) {
					out = append(out, s)
					recordDeclarations(s, declaredSoFar)
					continue
				}
				out = append(out, nested.Statements...)
				for _, inner := range nested.Statements {
					recordDeclarations(inner, declaredSoFar)
				}
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

func blockShadows(b *ir.Block, declaredSoFar ir.IdentifierSet) bool {
	for _, s := range b.Statements {
		decl, ok := s.(*ir.VariableDeclaration)
		if !ok {
			continue
		}
		for _, t := range decl.Targets {
			if declaredSoFar.Has(t) {
				return true
			}
		}
	}
	return false
}

func recordDeclarations(s ir.Statement, set ir.IdentifierSet) {
	decl, ok := s.(*ir.VariableDeclaration)
	if !ok {
		return
	}
	for _, t := range decl.Targets {
		set.Add(t)
	}
}

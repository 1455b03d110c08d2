package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ForLoopInitRewriter moves any statements out of a ForLoop's init block and
// in front of the loop when that block contains a statement other than a
// VariableDeclaration (one that can't simply be re-scoped to the whole
// loop). When the init block already holds only declarations, it's left in
// place — those declarations' scope is the entire loop, which is exactly
// where a caller would otherwise have to hoist them anyway.
//
// Postcondition: every ForLoop's init block contains only declarations.
type ForLoopInitRewriter struct{}

func (ForLoopInitRewriter) Name() string { return "ForLoopInitRewriter" }

func (p ForLoopInitRewriter) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: rewriteStatementListForInit,
	}
	return r.RewriteBlock(block)
}

func rewriteStatementListForInit(stmts []ir.Statement) []ir.Statement {
	out := make([]ir.Statement, 0, len(stmts))
	for _, s := range stmts {
		loop, ok := s.(*ir.ForLoop)
		if !ok || onlyDeclarations(loop.Init) {
			out = append(out, s)
			continue
		}
		out = append(out, loop.Init.Statements...)
		loop.Init = ir.NewBlock()
		out = append(out, loop)
	}
	return out
}

func onlyDeclarations(b *ir.Block) bool {
	if b == nil {
		return true
	}
	for _, s := range b.Statements {
		if _, ok := s.(*ir.VariableDeclaration); !ok {
			return false
		}
	}
	return true
}

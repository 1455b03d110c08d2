package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// SSAReverser is SSATransform's inverse: wherever a single-assignment
// declaration `let tmp := E` is immediately followed, in the same
// statement list, by a shim `v := tmp` and tmp is read nowhere else in
// that list, the pair collapses back to the single plain assignment
// `v := E`. Anywhere SSATransform introduced a fresh name purely to carry
// a value to its one rejoin-point shim, this undoes it exactly; anywhere
// the fresh name is used more than once (held live across later reads),
// the pair is left alone.
type SSAReverser struct{}

func (SSAReverser) Name() string { return "SSAReverser" }

func (p SSAReverser) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for i := 0; i < len(stmts); i++ {
				decl, ok := stmts[i].(*ir.VariableDeclaration)
				if ok && i+1 < len(stmts) && len(decl.Targets) == 1 && decl.Value != nil {
					if assign, ok := stmts[i+1].(*ir.Assignment); ok && len(assign.Targets) == 1 {
						if id, ok := assign.Value.(*ir.IdentifierExpr); ok && id.Name == decl.Targets[0] {
							if countUsesInList(stmts[i+2:], decl.Targets[0]) == 0 {
								out = append(out, &ir.Assignment{Targets: assign.Targets, Value: decl.Value})
								i++
								continue
							}
						}
					}
				}
				out = append(out, stmts[i])
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

func countUsesInList(stmts []ir.Statement, name ir.Identifier) int {
	count := 0
	v := &ir.Visitor{
		Expr: func(e ir.Expression) {
			if id, ok := e.(*ir.IdentifierExpr); ok && id.Name == name {
				count++
			}
		},
	}
	for _, s := range stmts {
		v.WalkStatement(s)
	}
	return count
}

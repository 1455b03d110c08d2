package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// UnusedPruner drops a VariableDeclaration none of whose targets are read
// anywhere afterward, as long as its initializer is side-effect-free (so
// dropping it changes nothing observable), and drops a top-level
// FunctionDefinition no remaining call anywhere in the block reaches —
// a direct, non-cyclic complement to CircularReferencesPruner, which only
// catches functions reachable solely from within a cycle of each other.
type UnusedPruner struct{}

func (UnusedPruner) Name() string { return "UnusedPruner" }

func (p UnusedPruner) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	block.Statements = pruneUnusedFunctions(block.Statements)
	r := &ir.Rewriter{
		// A single backward pass accumulating which names the remaining
		// suffix still reads gives the same "is this target ever used
		// afterward" answer a fresh forward scan per candidate would, in
		// one pass over the list instead of one per declaration.
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			keep := make([]bool, len(stmts))
			liveAfter := ir.NewIdentifierSet()
			for i := len(stmts) - 1; i >= 0; i-- {
				s := stmts[i]
				decl, ok := s.(*ir.VariableDeclaration)
				if ok && decl.Value != nil && dialect.SideEffectFree(ctx.Dialect, decl.Value) {
					used := false
					for _, t := range decl.Targets {
						if liveAfter.Has(t) {
							used = true
							break
						}
					}
					if !used {
						continue
					}
				}
				keep[i] = true
				liveAfter = liveAfter.Union(ir.FreeVariablesInStatement(s))
			}
			out := make([]ir.Statement, 0, len(stmts))
			for i, s := range stmts {
				if keep[i] {
					out = append(out, s)
				}
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

func pruneUnusedFunctions(stmts []ir.Statement) []ir.Statement {
	names := ir.NewIdentifierSet()
	for _, s := range stmts {
		if fn, ok := s.(*ir.FunctionDefinition); ok {
			names.Add(fn.Name)
		}
	}
	if len(names) == 0 {
		return stmts
	}
	called := ir.NewIdentifierSet()
	for _, s := range stmts {
		called = called.Union(collectCalledNames(s, names))
	}
	out := make([]ir.Statement, 0, len(stmts))
	for _, s := range stmts {
		if fn, ok := s.(*ir.FunctionDefinition); ok && !called.Has(fn.Name) {
			continue
		}
		out = append(out, s)
	}
	return out
}

package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// EquivalentFunctionCombiner finds functions whose bodies are identical up
// to a consistent renaming of their parameters and return variables,
// drops every duplicate but the first, and redirects every call to a
// dropped function at the surviving one. Two functions generated
// independently from the same pattern (a common source of duplication
// once FullInliner and ExpressionInliner have both run) collapse to one.
type EquivalentFunctionCombiner struct{}

func (EquivalentFunctionCombiner) Name() string { return "EquivalentFunctionCombiner" }

func (p EquivalentFunctionCombiner) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	var canonical []*ir.FunctionDefinition
	alias := make(map[ir.Identifier]ir.Identifier)
	dropped := ir.NewIdentifierSet()

	for _, s := range block.Statements {
		fn, ok := s.(*ir.FunctionDefinition)
		if !ok {
			continue
		}
		matched := false
		for _, rep := range canonical {
			if functionsEquivalent(rep, fn) {
				alias[fn.Name] = rep.Name
				dropped.Add(fn.Name)
				matched = true
				break
			}
		}
		if !matched {
			canonical = append(canonical, fn)
		}
	}
	if len(alias) == 0 {
		return block
	}

	out := make([]ir.Statement, 0, len(block.Statements))
	for _, s := range block.Statements {
		if fn, ok := s.(*ir.FunctionDefinition); ok && dropped.Has(fn.Name) {
			continue
		}
		out = append(out, s)
	}
	block.Statements = out

	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			call, ok := e.(*ir.FunctionCall)
			if !ok {
				return e
			}
			if target, ok := alias[call.Name]; ok {
				call.Name = target
			}
			return call
		},
	}
	return r.RewriteBlock(block)
}

func functionsEquivalent(a, b *ir.FunctionDefinition) bool {
	if len(a.Parameters) != len(b.Parameters) || len(a.Returns) != len(b.Returns) {
		return false
	}
	subst := make(map[ir.Identifier]ir.Identifier, len(b.Parameters)+len(b.Returns))
	for i := range b.Parameters {
		subst[b.Parameters[i]] = a.Parameters[i]
	}
	for i := range b.Returns {
		subst[b.Returns[i]] = a.Returns[i]
	}
	renamed := renameIdentifiers(ir.CopyBlock(b.Body).Statements, subst)
	return ir.EqualStatement(a.Body, &ir.Block{Statements: renamed})
}

package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// CircularReferencesPruner removes FunctionDefinitions that are reachable
// only from each other — a closed cycle of functions with no call from the
// surrounding code — which DeadCodeEliminator and UnusedPruner alone cannot
// see, since each function in the cycle does have at least one caller.
type CircularReferencesPruner struct{}

func (CircularReferencesPruner) Name() string { return "CircularReferencesPruner" }

func (p CircularReferencesPruner) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	defs := make(map[ir.Identifier]*ir.FunctionDefinition)
	names := ir.NewIdentifierSet()
	var code []ir.Statement
	for _, s := range block.Statements {
		if fn, ok := s.(*ir.FunctionDefinition); ok {
			defs[fn.Name] = fn
			names.Add(fn.Name)
		} else {
			code = append(code, s)
		}
	}
	if len(defs) == 0 {
		return block
	}

	calls := make(map[ir.Identifier]ir.IdentifierSet, len(defs))
	for name, fn := range defs {
		calls[name] = collectCalledNames(fn.Body, names)
	}

	reachable := ir.NewIdentifierSet()
	var roots ir.IdentifierSet
	for _, s := range code {
		roots = collectCalledNames(s, names)
		for name := range roots {
			markReachable(name, calls, reachable)
		}
	}

	out := make([]ir.Statement, 0, len(block.Statements))
	out = append(out, code...)
	for _, s := range block.Statements {
		if fn, ok := s.(*ir.FunctionDefinition); ok {
			if reachable.Has(fn.Name) {
				out = append(out, fn)
			}
		}
	}
	block.Statements = out
	return block
}

func markReachable(name ir.Identifier, calls map[ir.Identifier]ir.IdentifierSet, reachable ir.IdentifierSet) {
	if reachable.Has(name) {
		return
	}
	reachable.Add(name)
	for callee := range calls[name] {
		markReachable(callee, calls, reachable)
	}
}

func collectCalledNames(stmt ir.Statement, known ir.IdentifierSet) ir.IdentifierSet {
	out := ir.NewIdentifierSet()
	v := &ir.Visitor{
		Expr: func(e ir.Expression) {
			call, ok := e.(*ir.FunctionCall)
			if ok && known.Has(call.Name) {
				out.Add(call.Name)
			}
		},
	}
	v.WalkStatement(stmt)
	return out
}

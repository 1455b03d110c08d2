package optimizer

import (
	"regexp"
	"strconv"

	"irsuite/internal/ir"
)

var dispenserSuffix = regexp.MustCompile(`_[0-9]+$`)

// cleanVariableNames strips every name's dispenser-minted "_N" suffix back
// down to its human-chosen base, falling back to an incrementing suffix
// only when two distinct declarations would otherwise collide once
// stripped. It is the suite's exit bookend (spec §4.6 step 9) and must run
// last: every other pass relies on the uniqueness Disambiguator
// established, and this one deliberately gives that up for readability.
func cleanVariableNames(block *ir.Block) *ir.Block {
	rename := make(map[ir.Identifier]ir.Identifier)
	used := make(map[ir.Identifier]bool)

	assign := func(id ir.Identifier) {
		if _, done := rename[id]; done {
			return
		}
		base := ir.Identifier(dispenserSuffix.ReplaceAllString(string(id), ""))
		candidate := base
		for n := 1; used[candidate]; n++ {
			candidate = ir.Identifier(string(base) + "_" + strconv.Itoa(n))
		}
		used[candidate] = true
		rename[id] = candidate
	}

	collectDeclarations(block.Statements, assign)

	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			if call, ok := e.(*ir.FunctionCall); ok {
				if fresh, ok := rename[call.Name]; ok {
					call.Name = fresh
				}
				return call
			}
			id, ok := e.(*ir.IdentifierExpr)
			if !ok {
				return e
			}
			if fresh, ok := rename[id.Name]; ok {
				return ir.Id(string(fresh))
			}
			return e
		},
		Statement: func(s ir.Statement) ir.Statement {
			switch st := s.(type) {
			case *ir.VariableDeclaration:
				for i, t := range st.Targets {
					if fresh, ok := rename[t]; ok {
						st.Targets[i] = fresh
					}
				}
			case *ir.Assignment:
				for i, t := range st.Targets {
					if fresh, ok := rename[t]; ok {
						st.Targets[i] = fresh
					}
				}
			case *ir.FunctionDefinition:
				if fresh, ok := rename[st.Name]; ok {
					st.Name = fresh
				}
				for i, p := range st.Parameters {
					if fresh, ok := rename[p]; ok {
						st.Parameters[i] = fresh
					}
				}
				for i, ret := range st.Returns {
					if fresh, ok := rename[ret]; ok {
						st.Returns[i] = fresh
					}
				}
			}
			return s
		},
	}
	return r.RewriteBlock(block)
}

// collectDeclarations walks every declaration in source order (including
// inside nested functions and control-flow bodies) so that rename
// assignment is deterministic regardless of map iteration order elsewhere.
func collectDeclarations(stmts []ir.Statement, assign func(ir.Identifier)) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ir.VariableDeclaration:
			for _, t := range st.Targets {
				assign(t)
			}
		case *ir.If:
			collectDeclarations(st.Body.Statements, assign)
		case *ir.Switch:
			for _, c := range st.Cases {
				collectDeclarations(c.Body.Statements, assign)
			}
		case *ir.ForLoop:
			collectDeclarations(st.Init.Statements, assign)
			collectDeclarations(st.Body.Statements, assign)
			collectDeclarations(st.Post.Statements, assign)
		case *ir.FunctionDefinition:
			assign(st.Name)
			for _, p := range st.Parameters {
				assign(p)
			}
			for _, ret := range st.Returns {
				assign(ret)
			}
			collectDeclarations(st.Body.Statements, assign)
		case *ir.Block:
			collectDeclarations(st.Statements, assign)
		}
	}
}

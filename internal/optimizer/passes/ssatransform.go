package passes

import (
	"sort"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// SSATransform rewrites every Assignment into a fresh-variable declaration
// and threads a "current name" for each original variable through the
// block, so that straight-line code reads and writes single-assignment
// names instead of mutating a variable in place. At every point control
// flow can diverge or rejoin (If, Switch, ForLoop, and an early Break,
// Continue or Leave) the transform flushes every variable whose current
// name has drifted from its own back onto the plain name with an explicit
// assignment, then resumes renaming from a clean slate inside the nested
// scope; the nested scope's own drift is folded back onto the plain name
// with the same kind of assignment at the point control rejoins. The
// result is that code after a branch or loop iteration always reads the
// plain, canonical name, and always reads the correct value, regardless of
// which arm ran — the "shim" assignments SSAReverser later looks for.
//
// This is a conservative approximation of full SSA construction: it
// doesn't compute dominance frontiers or place phi nodes, it flushes at
// every structural boundary instead. A variable untouched inside a branch
// costs nothing extra; one reassigned inside costs one shim assignment at
// the rejoin point.
type SSATransform struct{}

func (SSATransform) Name() string { return "SSATransform" }

func (p SSATransform) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	state := make(map[ir.Identifier]ir.Identifier)
	block.Statements = ssaBlock(ctx, block.Statements, state)
	return block
}

func ssaBlock(ctx *pass.Context, stmts []ir.Statement, state map[ir.Identifier]ir.Identifier) []ir.Statement {
	out := make([]ir.Statement, 0, len(stmts))

	for _, s := range stmts {
		switch st := s.(type) {
		case *ir.VariableDeclaration:
			st.Value = substituteState(st.Value, state)
			for _, t := range st.Targets {
				state[t] = t
			}
			out = append(out, st)

		case *ir.Assignment:
			st.Value = substituteState(st.Value, state)
			fresh := make([]ir.Identifier, len(st.Targets))
			for i, t := range st.Targets {
				f := ctx.Dispenser.NewNameFrom(t)
				fresh[i] = f
				state[t] = f
			}
			out = append(out, &ir.VariableDeclaration{Targets: fresh, Value: st.Value})

		case *ir.ExpressionStatement:
			st.Expr = substituteState(st.Expr, state)
			out = append(out, st)

		case *ir.If:
			st.Cond = substituteState(st.Cond, state)
			out = append(out, flushAll(state)...)
			baseline := cloneState(state)
			bodyState := cloneState(state)
			st.Body.Statements = ssaBlock(ctx, st.Body.Statements, bodyState)
			st.Body.Statements = append(st.Body.Statements, shimDiffs(baseline, bodyState)...)
			out = append(out, st)

		case *ir.Switch:
			st.Cond = substituteState(st.Cond, state)
			out = append(out, flushAll(state)...)
			baseline := cloneState(state)
			for i := range st.Cases {
				caseState := cloneState(state)
				st.Cases[i].Body.Statements = ssaBlock(ctx, st.Cases[i].Body.Statements, caseState)
				st.Cases[i].Body.Statements = append(st.Cases[i].Body.Statements, shimDiffs(baseline, caseState)...)
			}
			out = append(out, st)

		case *ir.ForLoop:
			out = append(out, flushAll(state)...)
			loopState := cloneState(state)
			st.Init.Statements = ssaBlock(ctx, st.Init.Statements, loopState)
			st.Cond = substituteState(st.Cond, loopState)

			bodyBaseline := cloneState(loopState)
			bodyState := cloneState(loopState)
			st.Body.Statements = ssaBlock(ctx, st.Body.Statements, bodyState)
			st.Body.Statements = append(st.Body.Statements, shimDiffs(bodyBaseline, bodyState)...)

			postBaseline := cloneState(loopState)
			postState := cloneState(loopState)
			st.Post.Statements = ssaBlock(ctx, st.Post.Statements, postState)
			st.Post.Statements = append(st.Post.Statements, shimDiffs(postBaseline, postState)...)

			out = append(out, st)

		case *ir.Break, *ir.Continue, *ir.Leave:
			out = append(out, flushAll(state)...)
			out = append(out, s)

		case *ir.FunctionDefinition:
			st.Body.Statements = ssaBlock(ctx, st.Body.Statements, make(map[ir.Identifier]ir.Identifier))
			out = append(out, st)

		case *ir.Block:
			st.Statements = ssaBlock(ctx, st.Statements, state)
			out = append(out, st)

		default:
			out = append(out, s)
		}
	}
	return out
}

func currentName(state map[ir.Identifier]ir.Identifier, v ir.Identifier) ir.Identifier {
	if n, ok := state[v]; ok {
		return n
	}
	return v
}

func cloneState(state map[ir.Identifier]ir.Identifier) map[ir.Identifier]ir.Identifier {
	out := make(map[ir.Identifier]ir.Identifier, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}

func substituteState(e ir.Expression, state map[ir.Identifier]ir.Identifier) ir.Expression {
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			id, ok := e.(*ir.IdentifierExpr)
			if !ok {
				return e
			}
			if n := currentName(state, id.Name); n != id.Name {
				return ir.Id(string(n))
			}
			return e
		},
	}
	return r.RewriteExpression(e)
}

func sortedKeys(state map[ir.Identifier]ir.Identifier) []ir.Identifier {
	keys := make([]ir.Identifier, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// flushAll emits `v := state[v]` for every variable whose current name has
// drifted from its own, then resets state to canonical for all of them.
func flushAll(state map[ir.Identifier]ir.Identifier) []ir.Statement {
	var out []ir.Statement
	for _, v := range sortedKeys(state) {
		if cur := state[v]; cur != v {
			out = append(out, &ir.Assignment{Targets: []ir.Identifier{v}, Value: ir.Id(string(cur))})
			state[v] = v
		}
	}
	return out
}

// shimDiffs emits `v := current[v]` for every variable whose name in
// current differs from its name in baseline, without mutating either map.
func shimDiffs(baseline, current map[ir.Identifier]ir.Identifier) []ir.Statement {
	var out []ir.Statement
	for _, v := range sortedKeys(current) {
		cur := current[v]
		if cur != currentName(baseline, v) {
			out = append(out, &ir.Assignment{Targets: []ir.Identifier{v}, Value: ir.Id(string(cur))})
		}
	}
	return out
}

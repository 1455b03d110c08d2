package passes

import (
	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// fullInlineBodySizeLimit bounds how large a function's own body may be
// before it is never considered for inlining regardless of call count —
// past this, a single inlined copy is already too large to be worth it.
const fullInlineBodySizeLimit = 24

// fullInlineCodeSizeBudget bounds the total code-size cost of inlining a
// function everywhere it's called, estimated as body size times call-site
// count. A small function called at hundreds of sites is excluded even
// though its own body sits under fullInlineBodySizeLimit, since splicing
// it in at every site would blow up total code size — the exact failure
// mode a flat per-function size cutoff alone misses.
const fullInlineCodeSizeBudget = 64

// fullInlineMovableArgsBudgetMultiplier raises the budget when every call
// site passes only movable arguments: a movable argument substitutes
// straight into the inlined body, so the practical duplication cost is
// lower than a non-movable one, which may need its side effect evaluated
// and stored into the fresh parameter binding regardless.
const fullInlineMovableArgsBudgetMultiplier = 2

// FullInliner splices a whole copy of a small, non-recursive function's
// body into each of its call sites, renaming parameters to fresh
// declarations bound from the call's arguments, renaming return variables
// to fresh declarations initialized to zero, and — for a call bound to a
// result — assigning the caller's targets from the renamed return
// variables afterward. A function containing a Leave is never inlined:
// Leave exits the function it's written in, not the inlined fragment, and
// reconciling that difference is out of scope here.
type FullInliner struct{}

func (FullInliner) Name() string { return "FullInliner" }

func (p FullInliner) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	candidates := make(map[ir.Identifier]*ir.FunctionDefinition)
	names := ir.NewIdentifierSet()
	for _, s := range block.Statements {
		if fn, ok := s.(*ir.FunctionDefinition); ok {
			names.Add(fn.Name)
		}
	}
	for _, s := range block.Statements {
		fn, ok := s.(*ir.FunctionDefinition)
		if !ok || hasLeave(fn.Body) || ir.CodeSize(fn.Body) > fullInlineBodySizeLimit {
			continue
		}
		if collectCalledNames(fn.Body, names).Has(fn.Name) {
			continue // recursive, never inlinable
		}
		if !worthInlining(ctx, block, fn) {
			continue
		}
		candidates[fn.Name] = fn
	}
	if len(candidates) == 0 {
		return block
	}

	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				if expanded, ok := tryFullInline(ctx, s, candidates); ok {
					out = append(out, expanded...)
					continue
				}
				out = append(out, s)
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

// worthInlining weighs fn's own body size against how many call sites it
// has anywhere in block: duplicating a small body at one or two call
// sites is cheap, but the same body duplicated at hundreds of sites is
// not, regardless of how small it is on its own.
func worthInlining(ctx *pass.Context, block *ir.Block, fn *ir.FunctionDefinition) bool {
	calls := collectCallSites(block, fn.Name)
	if len(calls) == 0 {
		return false
	}
	budget := fullInlineCodeSizeBudget
	if allArgsMovable(ctx, calls) {
		budget *= fullInlineMovableArgsBudgetMultiplier
	}
	cost := ir.CodeSize(fn.Body) * len(calls)
	return cost <= budget
}

// collectCallSites finds every *ir.FunctionCall anywhere in block (inside
// top-level statements and inside every function body, including fn's
// own) that calls name.
func collectCallSites(block *ir.Block, name ir.Identifier) []*ir.FunctionCall {
	var calls []*ir.FunctionCall
	v := &ir.Visitor{
		Expr: func(e ir.Expression) {
			if call, ok := e.(*ir.FunctionCall); ok && call.Name == name {
				calls = append(calls, call)
			}
		},
	}
	v.WalkStatement(block)
	return calls
}

func allArgsMovable(ctx *pass.Context, calls []*ir.FunctionCall) bool {
	for _, call := range calls {
		for _, arg := range call.Args {
			if !dialect.Movable(ctx.Dialect, arg) {
				return false
			}
		}
	}
	return true
}

func hasLeave(stmt ir.Statement) bool {
	found := false
	v := &ir.Visitor{Statement: func(s ir.Statement) {
		if _, ok := s.(*ir.Leave); ok {
			found = true
		}
	}}
	v.WalkStatement(stmt)
	return found
}

func tryFullInline(ctx *pass.Context, s ir.Statement, candidates map[ir.Identifier]*ir.FunctionDefinition) ([]ir.Statement, bool) {
	var targets []ir.Identifier
	var call *ir.FunctionCall
	declares := false

	switch st := s.(type) {
	case *ir.ExpressionStatement:
		call, _ = st.Expr.(*ir.FunctionCall)
	case *ir.Assignment:
		call, _ = st.Value.(*ir.FunctionCall)
		targets = st.Targets
	case *ir.VariableDeclaration:
		call, _ = st.Value.(*ir.FunctionCall)
		targets = st.Targets
		declares = true
	default:
		return nil, false
	}
	if call == nil {
		return nil, false
	}
	fn, ok := candidates[call.Name]
	if !ok || len(call.Args) != len(fn.Parameters) {
		return nil, false
	}

	subst := make(map[ir.Identifier]ir.Identifier, len(fn.Parameters)+len(fn.Returns))
	var out []ir.Statement
	for i, param := range fn.Parameters {
		fresh := ctx.Dispenser.NewNameFrom(param)
		subst[param] = fresh
		out = append(out, ir.Let(call.Args[i], string(fresh)))
	}
	for _, ret := range fn.Returns {
		fresh := ctx.Dispenser.NewNameFrom(ret)
		subst[ret] = fresh
		out = append(out, ir.Let(ir.Num("0"), string(fresh)))
	}

	body := ir.CopyBlock(fn.Body).Statements
	body = renameIdentifiers(body, subst)
	out = append(out, body...)

	for i, target := range targets {
		fresh := subst[fn.Returns[i]]
		if declares {
			out = append(out, ir.Let(ir.Id(string(fresh)), string(target)))
		} else {
			out = append(out, ir.Assign(ir.Id(string(fresh)), string(target)))
		}
	}
	return out, true
}

func renameIdentifiers(stmts []ir.Statement, subst map[ir.Identifier]ir.Identifier) []ir.Statement {
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			id, ok := e.(*ir.IdentifierExpr)
			if !ok {
				return e
			}
			if n, ok := subst[id.Name]; ok {
				return ir.Id(string(n))
			}
			return e
		},
		Statement: func(s ir.Statement) ir.Statement {
			switch st := s.(type) {
			case *ir.VariableDeclaration:
				for i, t := range st.Targets {
					if n, ok := subst[t]; ok {
						st.Targets[i] = n
					}
				}
			case *ir.Assignment:
				for i, t := range st.Targets {
					if n, ok := subst[t]; ok {
						st.Targets[i] = n
					}
				}
			}
			return s
		},
	}
	out := make([]ir.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = r.RewriteStatement(s)
	}
	return out
}

// Package stackcompressor implements the feedback pass that keeps a
// stack-like dialect's functions within a bounded number of simultaneously
// live local values. Unlike every pass in the recipe catalog it is not
// selectable from a recipe literal: the suite invokes it directly, once,
// between the default recipe and the short tail recipe (spec §4.6 step 5).
package stackcompressor

import (
	"sort"

	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// DefaultDepthLimit is the conservative number of simultaneously live local
// values a stack-like dialect's calling convention can address without
// extra shuffling instructions.
const DefaultDepthLimit = 16

// DefaultMaxIterations bounds how many times Compress will rematerialize a
// variable into a single function before giving up on it.
const DefaultMaxIterations = 16

// interval is one variable's live range across a function body, expressed
// as a closed span [start, end] of statement positions assigned by
// liveIntervals.
type interval struct {
	name  ir.Identifier
	start int
	end   int
}

// Compress runs the stack-depth feedback loop over every top-level
// FunctionDefinition in block: for each one exceeding limit simultaneously
// live values, it repeatedly picks the movable-valued variable with the
// greatest live extent across the over-deep region and rematerializes its
// definition at every use, up to maxIterations attempts per function. It
// reports whether every function now fits within limit; a caller may
// ignore the result, since the suite still proceeds either way (spec
// §4.4).
func Compress(ctx *pass.Context, block *ir.Block, limit, maxIterations int) bool {
	if !ctx.Dialect.IsStackLike() {
		return true
	}
	allFit := true
	for _, s := range block.Statements {
		fn, ok := s.(*ir.FunctionDefinition)
		if !ok {
			continue
		}
		if !compressFunction(ctx, fn, limit, maxIterations) {
			allFit = false
		}
	}
	return allFit
}

func compressFunction(ctx *pass.Context, fn *ir.FunctionDefinition, limit, maxIterations int) bool {
	for iter := 0; iter < maxIterations; iter++ {
		intervals := liveIntervals(fn)
		depth, worstStart, worstEnd := peakDepth(intervals)
		if depth <= limit {
			return true
		}
		target, ok := pickRematerializationTarget(ctx, fn, intervals, worstStart, worstEnd)
		if !ok {
			return false
		}
		rematerializeInFunction(fn, target)
	}
	intervals := liveIntervals(fn)
	depth, _, _ := peakDepth(intervals)
	return depth <= limit
}

// liveIntervals computes a conservative live range per declared variable
// (including parameters, live from position 0) by assigning every
// statement a monotonically increasing position in a single pre-order walk
// of the function body, stopping at nested FunctionDefinitions.
func liveIntervals(fn *ir.FunctionDefinition) []interval {
	declPos := make(map[ir.Identifier]int)
	lastUse := make(map[ir.Identifier]int)
	for _, p := range fn.Parameters {
		declPos[p] = 0
		lastUse[p] = 0
	}
	pos := 1
	var walkExpr func(e ir.Expression)
	walkExpr = func(e ir.Expression) {
		switch ex := e.(type) {
		case *ir.IdentifierExpr:
			if _, declared := declPos[ex.Name]; declared {
				lastUse[ex.Name] = pos
			}
		case *ir.FunctionCall:
			for _, a := range ex.Args {
				walkExpr(a)
			}
		}
	}
	touch := func(name ir.Identifier) {
		if _, ok := declPos[name]; !ok {
			declPos[name] = pos
		}
		lastUse[name] = pos
	}
	var walkStmts func(stmts []ir.Statement)
	walkStmts = func(stmts []ir.Statement) {
		for _, s := range stmts {
			switch st := s.(type) {
			case *ir.VariableDeclaration:
				if st.Value != nil {
					walkExpr(st.Value)
				}
				for _, t := range st.Targets {
					declPos[t] = pos
					lastUse[t] = pos
				}
			case *ir.Assignment:
				walkExpr(st.Value)
				for _, t := range st.Targets {
					touch(t)
				}
			case *ir.ExpressionStatement:
				walkExpr(st.Expr)
			case *ir.If:
				walkExpr(st.Cond)
				walkStmts(st.Body.Statements)
			case *ir.Switch:
				walkExpr(st.Cond)
				for _, c := range st.Cases {
					walkStmts(c.Body.Statements)
				}
			case *ir.ForLoop:
				walkStmts(st.Init.Statements)
				walkExpr(st.Cond)
				walkStmts(st.Body.Statements)
				walkStmts(st.Post.Statements)
			case *ir.Block:
				walkStmts(st.Statements)
			}
			pos++
		}
	}
	walkStmts(fn.Body.Statements)

	intervals := make([]interval, 0, len(declPos))
	for name, start := range declPos {
		intervals = append(intervals, interval{name: name, start: start, end: lastUse[name]})
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].name < intervals[j].name })
	return intervals
}

// peakDepth sweeps the intervals to find the maximum number simultaneously
// live, and the first position at which that peak is reached (returned as
// both start and end).
func peakDepth(intervals []interval) (depth, start, end int) {
	if len(intervals) == 0 {
		return 0, 0, 0
	}
	maxPos := 0
	for _, iv := range intervals {
		if iv.end > maxPos {
			maxPos = iv.end
		}
	}
	best := -1
	bestPos := 0
	for p := 0; p <= maxPos; p++ {
		count := 0
		for _, iv := range intervals {
			if iv.start <= p && p <= iv.end {
				count++
			}
		}
		if count > best {
			best = count
			bestPos = p
		}
	}
	return best, bestPos, bestPos
}

// pickRematerializationTarget returns the movable-valued variable with the
// greatest live extent whose interval covers the over-deep position, or
// false if none of the live variables there has a rematerializable
// definition.
func pickRematerializationTarget(ctx *pass.Context, fn *ir.FunctionDefinition, intervals []interval, start, end int) (ir.Identifier, bool) {
	values := collectDeclaredValues(fn)
	reassigned := reassignedIdentifiers(fn)
	best := ir.Identifier("")
	bestExtent := -1
	for _, iv := range intervals {
		if iv.start > end || iv.end < start {
			continue
		}
		value, ok := values[iv.name]
		if !ok || !dialect.Movable(ctx.Dialect, value) {
			continue
		}
		// rematerializeInFunction splices value back in at every later read
		// across branches and loops; if one of its free variables is itself
		// reassigned anywhere in the function, a read downstream of that
		// reassignment would pick up the new value instead of the one the
		// target actually held, so such a target is never safe to pick.
		if identifierSetsIntersect(reassigned, ir.FreeVariables(value)) {
			continue
		}
		extent := iv.end - iv.start
		if extent > bestExtent {
			bestExtent = extent
			best = iv.name
		}
	}
	if bestExtent < 0 {
		return "", false
	}
	return best, true
}

// reassignedIdentifiers collects every identifier that is the target of an
// Assignment anywhere in fn's body, including nested branches and loops.
// Declaration names are already unique by the time the stack compressor
// runs (Disambiguator has long since run), so Assignment is the only
// statement that can give an existing variable a new value.
func reassignedIdentifiers(fn *ir.FunctionDefinition) ir.IdentifierSet {
	out := ir.NewIdentifierSet()
	var walk func(stmts []ir.Statement)
	walk = func(stmts []ir.Statement) {
		for _, s := range stmts {
			switch st := s.(type) {
			case *ir.Assignment:
				for _, t := range st.Targets {
					out.Add(t)
				}
			case *ir.If:
				walk(st.Body.Statements)
			case *ir.Switch:
				for _, c := range st.Cases {
					walk(c.Body.Statements)
				}
			case *ir.ForLoop:
				walk(st.Init.Statements)
				walk(st.Body.Statements)
				walk(st.Post.Statements)
			case *ir.Block:
				walk(st.Statements)
			}
		}
	}
	walk(fn.Body.Statements)
	return out
}

func identifierSetsIntersect(a, b ir.IdentifierSet) bool {
	for id := range a {
		if b.Has(id) {
			return true
		}
	}
	return false
}

func collectDeclaredValues(fn *ir.FunctionDefinition) map[ir.Identifier]ir.Expression {
	values := make(map[ir.Identifier]ir.Expression)
	var walk func(stmts []ir.Statement)
	walk = func(stmts []ir.Statement) {
		for _, s := range stmts {
			switch st := s.(type) {
			case *ir.VariableDeclaration:
				if len(st.Targets) == 1 && st.Value != nil {
					values[st.Targets[0]] = st.Value
				}
			case *ir.If:
				walk(st.Body.Statements)
			case *ir.Switch:
				for _, c := range st.Cases {
					walk(c.Body.Statements)
				}
			case *ir.ForLoop:
				walk(st.Init.Statements)
				walk(st.Body.Statements)
				walk(st.Post.Statements)
			case *ir.Block:
				walk(st.Statements)
			}
		}
	}
	walk(fn.Body.Statements)
	return values
}

// rematerializeInFunction drops target's declaration and replaces every
// later read of it, anywhere in the function body including across
// branches and loops, with a fresh copy of its defining expression — the
// same substitution Rematerialiser performs within a flat list, applied
// here across the whole function on purpose, since the goal is reducing
// target's live range to zero rather than just shortening it.
func rematerializeInFunction(fn *ir.FunctionDefinition, target ir.Identifier) {
	values := collectDeclaredValues(fn)
	value, ok := values[target]
	if !ok {
		return
	}
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			id, ok := e.(*ir.IdentifierExpr)
			if !ok || id.Name != target {
				return e
			}
			return ir.Copy(value)
		},
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				if decl, ok := s.(*ir.VariableDeclaration); ok &&
					len(decl.Targets) == 1 && decl.Targets[0] == target {
					continue
				}
				out = append(out, s)
			}
			return out
		},
	}
	fn.Body = r.RewriteBlock(fn.Body)
}

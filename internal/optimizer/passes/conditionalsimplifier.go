package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ConditionalSimplifier collapses the shape ConditionalUnsimplifier (and
// hand-written code) produces back down to a single declaration:
//
//	let y := 0
//	if cond { y := 1 }
//
// becomes `let y := cond`, and the two-case switch form
//
//	switch cond case 0 { y := A } default { y := B }
//
// becomes `let y := cond` when A, B is the pair 0, 1 and `let y :=
// iszero(cond)` when it's 1, 0 — the only two cases collapsible without a
// select/ternary primitive in this IR.
type ConditionalSimplifier struct{}

func (ConditionalSimplifier) Name() string { return "ConditionalSimplifier" }

func (p ConditionalSimplifier) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for i := 0; i < len(stmts); i++ {
				if i+1 < len(stmts) {
					if collapsed, ok := collapseIfAssignment(stmts[i], stmts[i+1]); ok {
						out = append(out, collapsed)
						i++
						continue
					}
				}
				if collapsed, ok := collapseSwitchAssignment(stmts[i]); ok {
					out = append(out, collapsed)
					continue
				}
				out = append(out, stmts[i])
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

func collapseIfAssignment(first, second ir.Statement) (ir.Statement, bool) {
	decl, ok := first.(*ir.VariableDeclaration)
	if !ok || len(decl.Targets) != 1 || !isFalsyLiteral(decl.Value) {
		return nil, false
	}
	guard, ok := second.(*ir.If)
	if !ok || len(guard.Body.Statements) != 1 {
		return nil, false
	}
	assign, ok := guard.Body.Statements[0].(*ir.Assignment)
	if !ok || len(assign.Targets) != 1 || assign.Targets[0] != decl.Targets[0] || !isTruthyLiteral(assign.Value) {
		return nil, false
	}
	return ir.Let(guard.Cond, string(decl.Targets[0])), true
}

func collapseSwitchAssignment(s ir.Statement) (ir.Statement, bool) {
	sw, ok := s.(*ir.Switch)
	if !ok || len(sw.Cases) != 2 {
		return nil, false
	}
	var zeroCase, defaultCase *ir.SwitchCase
	for i := range sw.Cases {
		c := &sw.Cases[i]
		if c.Value == nil {
			defaultCase = c
		} else if isNumLit(c.Value, "0") {
			zeroCase = c
		}
	}
	if zeroCase == nil || defaultCase == nil {
		return nil, false
	}
	a, ok1 := singleAssignValue(zeroCase.Body)
	b, ok2 := singleAssignValue(defaultCase.Body)
	if !ok1 || !ok2 {
		return nil, false
	}
	zTarget, zVal := a.target, a.value
	dTarget, dVal := b.target, b.value
	if zTarget != dTarget {
		return nil, false
	}
	switch {
	case isFalsyLiteral(zVal) && isTruthyLiteral(dVal):
		return ir.Let(sw.Cond, string(zTarget)), true
	case isTruthyLiteral(zVal) && isFalsyLiteral(dVal):
		return ir.Let(ir.Call("iszero", sw.Cond), string(zTarget)), true
	}
	return nil, false
}

type singleAssign struct {
	target ir.Identifier
	value  ir.Expression
}

func singleAssignValue(body *ir.Block) (singleAssign, bool) {
	if len(body.Statements) != 1 {
		return singleAssign{}, false
	}
	assign, ok := body.Statements[0].(*ir.Assignment)
	if !ok || len(assign.Targets) != 1 {
		return singleAssign{}, false
	}
	return singleAssign{target: assign.Targets[0], value: assign.Value}, true
}

func isFalsyLiteral(e ir.Expression) bool {
	return isNumLit(e, "0") || (isBoolLit(e) && e.(*ir.Literal).Value == "false")
}

func isTruthyLiteral(e ir.Expression) bool {
	return isNumLit(e, "1") || (isBoolLit(e) && e.(*ir.Literal).Value == "true")
}

func isBoolLit(e ir.Expression) bool {
	lit, ok := e.(*ir.Literal)
	return ok && lit.Kind == ir.LiteralBoolean
}

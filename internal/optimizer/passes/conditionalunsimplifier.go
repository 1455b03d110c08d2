package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// conditionalPredicates lists the built-ins ConditionalUnsimplifier treats
// as boolean-producing and therefore worth re-expanding into branchy form:
// expanding an arbitrary arithmetic expression this way would bloat code
// for no benefit, but a comparison or iszero is exactly the shape
// ConditionalSimplifier collapses, and exactly what the stack compressor
// sometimes wants re-expanded to buy back a spill point.
var conditionalPredicates = map[ir.Identifier]bool{
	"eq": true, "lt": true, "gt": true, "slt": true, "sgt": true, "iszero": true,
}

// ConditionalUnsimplifier is ConditionalSimplifier's inverse: a
// single-target declaration `let y := pred(...)` with a comparison or
// iszero value is re-expanded to
//
//	let y := 0
//	if pred(...) { y := 1 }
//
// trading a compact assignment for a branch, which gives the stack
// compressor's rematerialisation an extra candidate spill point to work
// with when nothing simpler is available.
type ConditionalUnsimplifier struct{}

func (ConditionalUnsimplifier) Name() string { return "ConditionalUnsimplifier" }

func (p ConditionalUnsimplifier) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			out := make([]ir.Statement, 0, len(stmts))
			for _, s := range stmts {
				decl, ok := s.(*ir.VariableDeclaration)
				if !ok || len(decl.Targets) != 1 || decl.Value == nil {
					out = append(out, s)
					continue
				}
				call, ok := decl.Value.(*ir.FunctionCall)
				if !ok || !conditionalPredicates[call.Name] {
					out = append(out, s)
					continue
				}
				target := decl.Targets[0]
				out = append(out, ir.Let(ir.Num("0"), string(target)))
				out = append(out, ir.IfStmt(call, ir.NewBlock(ir.Assign(ir.Num("1"), string(target)))))
			}
			return out
		},
	}
	return r.RewriteBlock(block)
}

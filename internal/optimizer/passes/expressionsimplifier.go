package passes

import (
	"math/big"

	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

// ExpressionSimplifier applies a small table of algebraic identities
// bottom-up to every expression: identity elements for add/sub/mul/div,
// annihilation by zero for mul, self-cancellation for sub/xor,
// self-idempotence for and/or/eq, folding a triple iszero down to one,
// and constant-folding a pure arithmetic/comparison builtin whose
// arguments are all already number literals (e.g. add(1, 2) becomes the
// literal 3). Every rule only fires on syntactic shape (literal operands,
// or two syntactically ir.Equal operands) — it proves nothing about
// runtime values it can't see.
type ExpressionSimplifier struct{}

func (ExpressionSimplifier) Name() string { return "ExpressionSimplifier" }

func (p ExpressionSimplifier) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	r := &ir.Rewriter{
		Expr: simplifyExpr,
	}
	return r.RewriteBlock(block)
}

func simplifyExpr(e ir.Expression) ir.Expression {
	call, ok := e.(*ir.FunctionCall)
	if !ok || len(call.Args) == 0 {
		return e
	}
	if folded, ok := foldConstantArithmetic(call); ok {
		return folded
	}
	switch call.Name {
	case "add":
		if isNumLit(call.Args[0], "0") {
			return call.Args[1]
		}
		if isNumLit(call.Args[1], "0") {
			return call.Args[0]
		}
	case "sub":
		if isNumLit(call.Args[1], "0") {
			return call.Args[0]
		}
		if ir.Equal(call.Args[0], call.Args[1]) {
			return ir.Num("0")
		}
	case "mul":
		if isNumLit(call.Args[0], "0") || isNumLit(call.Args[1], "0") {
			return ir.Num("0")
		}
		if isNumLit(call.Args[0], "1") {
			return call.Args[1]
		}
		if isNumLit(call.Args[1], "1") {
			return call.Args[0]
		}
	case "div", "sdiv":
		if isNumLit(call.Args[1], "1") {
			return call.Args[0]
		}
	case "and", "or":
		if ir.Equal(call.Args[0], call.Args[1]) {
			return call.Args[0]
		}
	case "xor":
		if ir.Equal(call.Args[0], call.Args[1]) {
			return ir.Num("0")
		}
	case "eq":
		if ir.Equal(call.Args[0], call.Args[1]) {
			return ir.Bool(true)
		}
	case "iszero":
		if inner, ok := call.Args[0].(*ir.FunctionCall); ok && inner.Name == "iszero" && len(inner.Args) == 1 {
			if inner2, ok := inner.Args[0].(*ir.FunctionCall); ok && inner2.Name == "iszero" {
				return inner2
			}
		}
	}
	return call
}

func isNumLit(e ir.Expression, value string) bool {
	lit, ok := e.(*ir.Literal)
	return ok && lit.Kind == ir.LiteralNumber && lit.Value == value
}

// foldConstantArithmetic evaluates call directly when every argument is
// already a number literal and call.Name names one of the builtins with a
// closed-form arithmetic or comparison meaning. Arithmetic is carried out
// with arbitrary-precision integers and never wraps: the IR itself carries
// no fixed word width, so reducing a literal result modulo one is a
// dialect-lowering concern out of scope here.
func foldConstantArithmetic(call *ir.FunctionCall) (*ir.Literal, bool) {
	vals := make([]*big.Int, len(call.Args))
	for i, a := range call.Args {
		lit, ok := a.(*ir.Literal)
		if !ok || lit.Kind != ir.LiteralNumber {
			return nil, false
		}
		n, ok := new(big.Int).SetString(lit.Value, 10)
		if !ok {
			return nil, false
		}
		vals[i] = n
	}
	switch {
	case call.Name == "add" && len(vals) == 2:
		return ir.Num(new(big.Int).Add(vals[0], vals[1]).String()), true
	case call.Name == "sub" && len(vals) == 2:
		return ir.Num(new(big.Int).Sub(vals[0], vals[1]).String()), true
	case call.Name == "mul" && len(vals) == 2:
		return ir.Num(new(big.Int).Mul(vals[0], vals[1]).String()), true
	case call.Name == "div" && len(vals) == 2:
		if vals[1].Sign() == 0 {
			return ir.Num("0"), true
		}
		return ir.Num(new(big.Int).Quo(vals[0], vals[1]).String()), true
	case call.Name == "mod" && len(vals) == 2:
		if vals[1].Sign() == 0 {
			return ir.Num("0"), true
		}
		return ir.Num(new(big.Int).Rem(vals[0], vals[1]).String()), true
	case call.Name == "and" && len(vals) == 2:
		return ir.Num(new(big.Int).And(vals[0], vals[1]).String()), true
	case call.Name == "or" && len(vals) == 2:
		return ir.Num(new(big.Int).Or(vals[0], vals[1]).String()), true
	case call.Name == "xor" && len(vals) == 2:
		return ir.Num(new(big.Int).Xor(vals[0], vals[1]).String()), true
	case call.Name == "lt" && len(vals) == 2:
		return ir.Bool(vals[0].Cmp(vals[1]) < 0), true
	case call.Name == "gt" && len(vals) == 2:
		return ir.Bool(vals[0].Cmp(vals[1]) > 0), true
	case call.Name == "eq" && len(vals) == 2:
		return ir.Bool(vals[0].Cmp(vals[1]) == 0), true
	case call.Name == "iszero" && len(vals) == 1:
		return ir.Bool(vals[0].Sign() == 0), true
	default:
		return nil, false
	}
}

package dialect

import "irsuite/internal/ir"

// Movable reports whether expr may be freely duplicated or reordered
// relative to any other statement: it must have no side effects and must
// not depend on state that a prior side effect could have changed (a
// storage/memory read behind a write). Identifiers and literals are always
// movable; a FunctionCall is movable iff its built-in is movable and every
// argument is movable.
func Movable(d Dialect, expr ir.Expression) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case *ir.Literal:
		return true
	case *ir.IdentifierExpr:
		return true
	case *ir.FunctionCall:
		b, ok := d.Builtin(e.Name)
		if !ok || !b.Movable {
			return false
		}
		for _, arg := range e.Args {
			if !Movable(d, arg) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SideEffectFree reports whether evaluating expr has no effect beyond
// producing its result. Unlike Movable, a side-effect-free expression may
// still be non-movable (e.g. a storage read, which is side-effect-free but
// must stay ordered with respect to writes).
func SideEffectFree(d Dialect, expr ir.Expression) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case *ir.Literal:
		return true
	case *ir.IdentifierExpr:
		return true
	case *ir.FunctionCall:
		b, ok := d.Builtin(e.Name)
		if !ok || !b.SideEffectFree {
			return false
		}
		for _, arg := range e.Args {
			if !SideEffectFree(d, arg) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// InvalidatesStorage reports whether evaluating expr may write to storage,
// and therefore invalidates any previously recorded storage read/write
// facts.
func InvalidatesStorage(d Dialect, expr ir.Expression) bool {
	return anyBuiltin(d, expr, func(b Builtin) bool { return b.WritesStorage || b.CanTerminate })
}

// InvalidatesMemory reports whether evaluating expr may write to memory.
func InvalidatesMemory(d Dialect, expr ir.Expression) bool {
	return anyBuiltin(d, expr, func(b Builtin) bool { return b.WritesMemory || b.CanTerminate })
}

// CanTerminate reports whether evaluating expr can end the enclosing
// function or transaction (a revert/return/stop/selfdestruct-shaped
// built-in). LoopInvariantCodeMotion refuses to hoist a statement preceded
// by one, since hoisting could run code that the original program would
// never have reached.
func CanTerminate(d Dialect, expr ir.Expression) bool {
	return anyBuiltin(d, expr, func(b Builtin) bool { return b.CanTerminate })
}

func anyBuiltin(d Dialect, expr ir.Expression, pred func(Builtin) bool) bool {
	switch e := expr.(type) {
	case nil, *ir.Literal, *ir.IdentifierExpr:
		return false
	case *ir.FunctionCall:
		if b, ok := d.Builtin(e.Name); ok && pred(b) {
			return true
		}
		for _, arg := range e.Args {
			if anyBuiltin(d, arg, pred) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

package passes

import (
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
)

type slotEntry struct {
	slot  ir.Expression
	value ir.Expression
}

// LoadResolver forwards a known store's value to a later load of the same
// slot, and caches a load's result so a second load of the same slot reuses
// the first one's value, within a single straight-line statement list. It
// drives entirely off the dialect's Builtin metadata (ReadsStorage /
// WritesStorage / ReadsMemory / WritesMemory, arity) rather than hardcoded
// opcode names, so it applies equally to a stack dialect's sload/sstore and
// a linear-memory dialect's typed load/store — and is a no-op wherever a
// dialect declares neither (LinearMemory has no storage built-ins at all).
// A store of unknown shape (not a plain two-argument slot/value call, e.g.
// an external call that can write anywhere) invalidates everything in that
// table, since it might have touched any slot.
type LoadResolver struct{}

func (LoadResolver) Name() string { return "LoadResolver" }

func (p LoadResolver) Run(ctx *pass.Context, block *ir.Block) *ir.Block {
	var storage, memory []slotEntry
	r := &ir.Rewriter{
		StatementList: func(stmts []ir.Statement) []ir.Statement {
			for _, s := range stmts {
				switch st := s.(type) {
				case *ir.ExpressionStatement:
					st.Expr = resolveLoads(ctx, st.Expr, storage, memory)
					recordStoreLoadEffects(ctx, nil, st.Expr, &storage, &memory)
				case *ir.Assignment:
					st.Value = resolveLoads(ctx, st.Value, storage, memory)
					for _, t := range st.Targets {
						invalidateSlotEntries(&storage, t)
						invalidateSlotEntries(&memory, t)
					}
					recordStoreLoadEffects(ctx, st.Targets, st.Value, &storage, &memory)
				case *ir.VariableDeclaration:
					st.Value = resolveLoads(ctx, st.Value, storage, memory)
					for _, t := range st.Targets {
						invalidateSlotEntries(&storage, t)
						invalidateSlotEntries(&memory, t)
					}
					recordStoreLoadEffects(ctx, st.Targets, st.Value, &storage, &memory)
				case *ir.If:
					st.Cond = resolveLoads(ctx, st.Cond, storage, memory)
					storage, memory = nil, nil
				case *ir.Switch:
					st.Cond = resolveLoads(ctx, st.Cond, storage, memory)
					storage, memory = nil, nil
				default:
					storage, memory = nil, nil
				}
			}
			return stmts
		},
	}
	return r.RewriteBlock(block)
}

func resolveLoads(ctx *pass.Context, e ir.Expression, storage, memory []slotEntry) ir.Expression {
	if e == nil {
		return nil
	}
	r := &ir.Rewriter{
		Expr: func(e ir.Expression) ir.Expression {
			call, ok := e.(*ir.FunctionCall)
			if !ok || len(call.Args) != 1 {
				return e
			}
			b, ok := ctx.Dialect.Builtin(call.Name)
			if !ok {
				return e
			}
			var tbl []slotEntry
			switch {
			case b.ReadsStorage && !b.WritesStorage:
				tbl = storage
			case b.ReadsMemory && !b.WritesMemory:
				tbl = memory
			default:
				return e
			}
			for _, entry := range tbl {
				if ir.Equal(entry.slot, call.Args[0]) {
					return ir.Copy(entry.value)
				}
			}
			return e
		},
	}
	return r.RewriteExpression(e)
}

// invalidateSlotEntries drops any cached entry whose slot or cached value
// refers to v, matching CommonSubexpressionEliminator's and Rematerialiser's
// own reassignment-invalidation discipline: a load cached as `y := x` is no
// longer correct once x is reassigned, even by a plain (non-call) value.
func invalidateSlotEntries(tbl *[]slotEntry, v ir.Identifier) {
	out := (*tbl)[:0]
	for _, entry := range *tbl {
		if ir.FreeVariables(entry.slot).Has(v) || ir.FreeVariables(entry.value).Has(v) {
			continue
		}
		out = append(out, entry)
	}
	*tbl = out
}

func recordStoreLoadEffects(ctx *pass.Context, targets []ir.Identifier, value ir.Expression, storage, memory *[]slotEntry) {
	call, ok := value.(*ir.FunctionCall)
	if !ok {
		return
	}
	b, ok := ctx.Dialect.Builtin(call.Name)
	if !ok {
		return
	}
	switch {
	case b.WritesStorage && len(call.Args) == 2:
		*storage = []slotEntry{{slot: call.Args[0], value: call.Args[1]}}
	case b.WritesStorage:
		*storage = nil
	case b.ReadsStorage && len(targets) == 1 && len(call.Args) == 1:
		*storage = append(*storage, slotEntry{slot: call.Args[0], value: ir.Id(string(targets[0]))})
	}
	switch {
	case b.WritesMemory && len(call.Args) == 2:
		*memory = []slotEntry{{slot: call.Args[0], value: call.Args[1]}}
	case b.WritesMemory:
		*memory = nil
	case b.ReadsMemory && len(targets) == 1 && len(call.Args) == 1:
		*memory = append(*memory, slotEntry{slot: call.Args[0], value: ir.Id(string(targets[0]))})
	}
}

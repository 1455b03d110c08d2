package dialect

import "irsuite/internal/ir"

// linearMemoryDialect is a Wasm-like dialect: pure arithmetic/comparison
// plus explicit typed loads/stores against flat addressable linear memory.
// It has no storage built-ins at all, so any pass that only fires on
// storage effects (LoadResolver's store-to-load forwarding, for instance)
// is a structural no-op under this dialect — there is nothing for it to
// match, which is the intended degenerate behavior, not a bug to special-case.
type linearMemoryDialect struct {
	builtins map[ir.Identifier]Builtin
}

// LinearMemory is the linear-memory dialect instance.
var LinearMemory Dialect = newLinearMemoryDialect()

func newLinearMemoryDialect() *linearMemoryDialect {
	d := &linearMemoryDialect{builtins: map[ir.Identifier]Builtin{}}

	pure := func(name string, arity int) {
		d.builtins[ir.Identifier(name)] = Builtin{Name: ir.Identifier(name), Arity: arity, Movable: true, SideEffectFree: true}
	}
	for _, name := range []string{
		"i32.add", "i32.sub", "i32.mul", "i32.div_s", "i32.div_u", "i32.rem_s", "i32.rem_u",
		"i32.and", "i32.or", "i32.xor", "i32.shl", "i32.shr_s", "i32.shr_u",
		"i32.eq", "i32.ne", "i32.lt_s", "i32.lt_u", "i32.gt_s", "i32.gt_u",
		"i64.add", "i64.sub", "i64.mul",
	} {
		pure(name, 2)
	}
	pure("i32.eqz", 1)
	pure("i32.const", 0)
	pure("i64.const", 0)

	mem := func(name string, arity int, read, write bool) {
		d.builtins[ir.Identifier(name)] = Builtin{
			Name: ir.Identifier(name), Arity: arity,
			Movable: false, SideEffectFree: !write,
			ReadsMemory: read, WritesMemory: write,
		}
	}
	mem("i32.load", 1, true, false)
	mem("i64.load", 1, true, false)
	mem("i32.store", 2, false, true)
	mem("i64.store", 2, false, true)
	mem("memory.size", 0, true, false)
	mem("memory.grow", 1, false, true)

	d.builtins["unreachable"] = Builtin{Name: "unreachable", Arity: 0, CanTerminate: true}
	d.builtins["return"] = Builtin{Name: "return", Arity: 1, CanTerminate: true}

	return d
}

func (d *linearMemoryDialect) Builtin(name ir.Identifier) (Builtin, bool) {
	b, ok := d.builtins[name]
	return b, ok
}

func (d *linearMemoryDialect) FixedNames() ir.IdentifierSet {
	names := make(ir.IdentifierSet, len(d.builtins))
	for name := range d.builtins {
		names.Add(name)
	}
	return names
}

func (d *linearMemoryDialect) LiteralMaterializationCost(value string, kind ir.LiteralKind) int {
	if kind == ir.LiteralBoolean {
		return 1
	}
	return len(value)
}

func (d *linearMemoryDialect) IsStackLike() bool       { return false }
func (d *linearMemoryDialect) IsLinearMemoryLike() bool { return true }

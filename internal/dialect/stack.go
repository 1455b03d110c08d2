package dialect

import (
	"fmt"

	"irsuite/internal/ir"
)

// stackDialect is a stack-machine dialect in the shape of EVM: arithmetic,
// comparisons, keccak256, storage (SLOAD/SSTORE), linear memory
// (MLOAD/MSTORE/MSTORE8), calldata, logs, external calls, and control
// opcodes (RETURN/REVERT/STOP/SELFDESTRUCT).
type stackDialect struct {
	builtins map[ir.Identifier]Builtin
}

// Stack is the stack-machine dialect instance.
var Stack Dialect = newStackDialect()

func newStackDialect() *stackDialect {
	d := &stackDialect{builtins: map[ir.Identifier]Builtin{}}

	pure := func(name string, arity int) {
		d.add(Builtin{Name: ir.Identifier(name), Arity: arity, Movable: true, SideEffectFree: true})
	}
	for _, name := range []string{"add", "sub", "mul", "div", "mod", "exp", "signextend"} {
		pure(name, 2)
	}
	for _, name := range []string{"lt", "gt", "slt", "sgt", "eq", "and", "or", "xor", "shl", "shr", "sar", "byte"} {
		pure(name, 2)
	}
	pure("iszero", 1)
	pure("not", 1)
	pure("addmod", 3)
	pure("mulmod", 3)

	d.add(Builtin{Name: "keccak256", Arity: 2, Movable: false, SideEffectFree: true, ReadsMemory: true})

	d.add(Builtin{Name: "mload", Arity: 1, Movable: false, SideEffectFree: true, ReadsMemory: true})
	d.add(Builtin{Name: "mstore", Arity: 2, Movable: false, SideEffectFree: false, WritesMemory: true})
	d.add(Builtin{Name: "mstore8", Arity: 2, Movable: false, SideEffectFree: false, WritesMemory: true})
	d.add(Builtin{Name: "msize", Arity: 0, Movable: false, SideEffectFree: true, ReadsMemory: true})

	d.add(Builtin{Name: "sload", Arity: 1, Movable: false, SideEffectFree: true, ReadsStorage: true})
	d.add(Builtin{Name: "sstore", Arity: 2, Movable: false, SideEffectFree: false, WritesStorage: true})

	d.add(Builtin{Name: "calldataload", Arity: 1, Movable: true, SideEffectFree: true})
	d.add(Builtin{Name: "calldatasize", Arity: 0, Movable: true, SideEffectFree: true})
	d.add(Builtin{Name: "calldatacopy", Arity: 3, Movable: false, SideEffectFree: false, WritesMemory: true})
	d.add(Builtin{Name: "codesize", Arity: 0, Movable: true, SideEffectFree: true})
	d.add(Builtin{Name: "codecopy", Arity: 3, Movable: false, SideEffectFree: false, WritesMemory: true})
	d.add(Builtin{Name: "returndatasize", Arity: 0, Movable: false, SideEffectFree: true})
	d.add(Builtin{Name: "returndatacopy", Arity: 3, Movable: false, SideEffectFree: false, WritesMemory: true})
	d.add(Builtin{Name: "extcodesize", Arity: 1, Movable: false, SideEffectFree: true, ReadsStorage: true})
	d.add(Builtin{Name: "extcodecopy", Arity: 4, Movable: false, SideEffectFree: false, WritesMemory: true, ReadsStorage: true})

	for i := 0; i <= 4; i++ {
		d.add(Builtin{Name: ir.Identifier(fmt.Sprintf("log%d", i)), Arity: 2 + i, Movable: false, SideEffectFree: false, ReadsMemory: true, WritesStorage: true})
	}

	d.add(Builtin{Name: "call", Arity: 7, Movable: false, SideEffectFree: false, ReadsMemory: true, WritesMemory: true, ReadsStorage: true, WritesStorage: true})
	d.add(Builtin{Name: "staticcall", Arity: 6, Movable: false, SideEffectFree: true, ReadsMemory: true, WritesMemory: true, ReadsStorage: true})
	d.add(Builtin{Name: "delegatecall", Arity: 6, Movable: false, SideEffectFree: false, ReadsMemory: true, WritesMemory: true, ReadsStorage: true, WritesStorage: true})
	d.add(Builtin{Name: "create", Arity: 3, Movable: false, SideEffectFree: false, ReadsMemory: true, WritesStorage: true})
	d.add(Builtin{Name: "create2", Arity: 4, Movable: false, SideEffectFree: false, ReadsMemory: true, WritesStorage: true})

	d.add(Builtin{Name: "return", Arity: 2, Movable: false, SideEffectFree: false, ReadsMemory: true, CanTerminate: true})
	d.add(Builtin{Name: "revert", Arity: 2, Movable: false, SideEffectFree: false, ReadsMemory: true, CanTerminate: true})
	d.add(Builtin{Name: "stop", Arity: 0, Movable: false, SideEffectFree: false, CanTerminate: true})
	d.add(Builtin{Name: "selfdestruct", Arity: 1, Movable: false, SideEffectFree: false, WritesStorage: true, CanTerminate: true})
	d.add(Builtin{Name: "invalid", Arity: 0, Movable: false, SideEffectFree: false, CanTerminate: true})

	for _, name := range []string{"address", "caller", "callvalue", "gas", "timestamp", "number", "difficulty", "chainid", "origin", "gasprice", "coinbase", "gaslimit", "selfbalance", "basefee"} {
		d.add(Builtin{Name: ir.Identifier(name), Arity: 0, Movable: false, SideEffectFree: true})
	}
	d.add(Builtin{Name: "balance", Arity: 1, Movable: false, SideEffectFree: true, ReadsStorage: true})

	return d
}

func (d *stackDialect) add(b Builtin) { d.builtins[b.Name] = b }

func (d *stackDialect) Builtin(name ir.Identifier) (Builtin, bool) {
	b, ok := d.builtins[name]
	return b, ok
}

func (d *stackDialect) FixedNames() ir.IdentifierSet {
	names := make(ir.IdentifierSet, len(d.builtins))
	for name := range d.builtins {
		names.Add(name)
	}
	return names
}

func (d *stackDialect) LiteralMaterializationCost(value string, kind ir.LiteralKind) int {
	switch kind {
	case ir.LiteralBoolean:
		return 1
	case ir.LiteralString:
		return len(value)
	default:
		return len(value)
	}
}

func (d *stackDialect) IsStackLike() bool       { return true }
func (d *stackDialect) IsLinearMemoryLike() bool { return false }

package ir

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

// NameDispenser hands out fresh identifiers that collide with nothing
// currently in the AST and nothing in the caller's reserved set. Given the
// union of all names already in use, it normalizes a requested base name to
// lowerCamelCase and mints `base_N` for a monotonically increasing N until
// it finds one that's free.
type NameDispenser struct {
	used    map[Identifier]struct{}
	nextSeq map[string]int
}

// NewNameDispenser seeds a dispenser from every name already present in the
// AST plus the caller-supplied reserved set.
func NewNameDispenser(existing IdentifierSet, reserved IdentifierSet) *NameDispenser {
	d := &NameDispenser{
		used:    make(map[Identifier]struct{}, len(existing)+len(reserved)),
		nextSeq: make(map[string]int),
	}
	for id := range existing {
		d.used[id] = struct{}{}
	}
	for id := range reserved {
		d.used[id] = struct{}{}
	}
	return d
}

// MarkUsed records id as taken without otherwise affecting sequencing.
func (d *NameDispenser) MarkUsed(id Identifier) {
	d.used[id] = struct{}{}
}

// IsUsed reports whether id is already taken.
func (d *NameDispenser) IsUsed(id Identifier) bool {
	_, ok := d.used[id]
	return ok
}

// NewName mints a fresh identifier derived from base: base is normalized to
// lowerCamelCase, then suffixed with an increasing counter starting at 1
// until the result is free. The minted name is marked used before being
// returned, so repeated calls never collide with each other.
func (d *NameDispenser) NewName(base string) Identifier {
	normalized := strcase.ToLowerCamel(base)
	if normalized == "" {
		normalized = "v"
	}
	for {
		d.nextSeq[normalized]++
		candidate := Identifier(fmt.Sprintf("%s_%d", normalized, d.nextSeq[normalized]))
		if !d.IsUsed(candidate) {
			d.MarkUsed(candidate)
			return candidate
		}
	}
}

// NewNameFrom mints a fresh name derived from an existing identifier,
// preserving its base spelling (e.g. for SSA renaming `x` -> `x_3`).
func (d *NameDispenser) NewNameFrom(id Identifier) Identifier {
	return d.NewName(string(id))
}

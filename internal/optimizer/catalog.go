package optimizer

import (
	"sync"

	"github.com/sasha-s/go-deadlock"

	"irsuite/internal/optimizer/pass"
	"irsuite/internal/optimizer/passes"
)

// abbreviationTable maps every recipe-language abbreviation to the pass it
// selects. VarNameCleaner and ConstantOptimiser deliberately have no entry:
// neither is selectable from a recipe literal, since both are suite-level
// bookends invoked directly by Suite.Run (spec §4.6 steps 7 and 9).
var abbreviationTable = map[string]pass.Pass{
	"f": passes.BlockFlattener{},
	"l": passes.CircularReferencesPruner{},
	"c": passes.CommonSubexpressionEliminator{},
	"C": passes.ConditionalSimplifier{},
	"U": passes.ConditionalUnsimplifier{},
	"n": passes.ControlFlowSimplifier{},
	"D": passes.DeadCodeEliminator{},
	"v": passes.EquivalentFunctionCombiner{},
	"e": passes.ExpressionInliner{},
	"j": passes.ExpressionJoiner{},
	"s": passes.ExpressionSimplifier{},
	"x": passes.ExpressionSplitter{},
	"I": passes.ForLoopConditionIntoBody{},
	"O": passes.ForLoopConditionOutOfBody{},
	"o": passes.ForLoopInitRewriter{},
	"i": passes.FullInliner{},
	"g": passes.FunctionGrouper{},
	"h": passes.FunctionHoister{},
	"T": passes.LiteralRematerialiser{},
	"L": passes.LoadResolver{},
	"M": passes.LoopInvariantCodeMotion{},
	"r": passes.RedundantAssignEliminator{},
	"m": passes.Rematerialiser{},
	"V": passes.SSAReverser{},
	"a": passes.SSATransform{},
	"t": passes.StructuralSimplifier{},
	"u": passes.UnusedPruner{},
	"d": passes.VarDeclInitializer{},
}

// catalogOrder fixes the canonical ordering AllSteps() exposes: the order
// each abbreviation was added to the catalog above, independent of Go's
// unspecified map iteration order.
var catalogOrder = []string{
	"f", "l", "c", "C", "U", "n", "D", "v", "e", "j", "s", "x", "I", "O",
	"o", "i", "g", "h", "T", "L", "M", "r", "m", "V", "a", "t", "u", "d",
}

var catalogMu deadlock.Mutex
var catalogOnce sync.Once
var catalogNames map[string]string

// lookupPass resolves a recipe abbreviation to a catalog Pass. The bool is
// false for any character not in abbreviationTable, including the suite's
// own reserved bookend steps.
func lookupPass(abbrev string) (pass.Pass, bool) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	p, ok := abbreviationTable[abbrev]
	return p, ok
}

// CatalogStep names one entry in the catalog: its recipe abbreviation and
// the pass it selects.
type CatalogStep struct {
	Abbreviation string
	Pass         pass.Pass
}

// AllSteps returns the full catalog in canonical order, for a caller
// wiring a custom pipeline that wants to walk every available pass
// directly rather than go through a recipe literal (spec §6).
func AllSteps() []CatalogStep {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	out := make([]CatalogStep, 0, len(catalogOrder))
	for _, abbrev := range catalogOrder {
		out = append(out, CatalogStep{Abbreviation: abbrev, Pass: abbreviationTable[abbrev]})
	}
	return out
}

// StepAbbreviationToNameMap returns a copy of the abbreviation-to-pass-name
// table, built once, for diagnostics, tracing, and callers wiring a custom
// pipeline that wants to resolve a recipe character to a human-readable
// pass name (spec §6).
func StepAbbreviationToNameMap() map[string]string {
	catalogOnce.Do(func() {
		catalogNames = make(map[string]string, len(abbreviationTable))
		for abbrev, p := range abbreviationTable {
			catalogNames[abbrev] = p.Name()
		}
	})
	catalogMu.Lock()
	defer catalogMu.Unlock()
	out := make(map[string]string, len(catalogNames))
	for k, v := range catalogNames {
		out[k] = v
	}
	return out
}

// StepNameToAbbreviationMap returns the inverse of
// StepAbbreviationToNameMap, for a caller that has a pass name (e.g. from
// its own configuration) and needs the recipe character that selects it
// (spec §6).
func StepNameToAbbreviationMap() map[string]string {
	byAbbrev := StepAbbreviationToNameMap()
	out := make(map[string]string, len(byAbbrev))
	for abbrev, name := range byAbbrev {
		out[name] = abbrev
	}
	return out
}

// AllAbbreviations returns every abbreviation known to the catalog, for
// validating a recipe literal before any pass runs.
func AllAbbreviations() []string {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	out := make([]string, 0, len(abbreviationTable))
	for k := range abbreviationTable {
		out = append(out, k)
	}
	return out
}

package optimizer

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"irsuite/internal/ir"
)

// DebugMode selects how much the driver reports about its own progress
// while running a recipe. Tracing never alters the AST it narrates — it is
// strictly an observer (spec §4.5).
type DebugMode int

const (
	// DebugNone runs silently.
	DebugNone DebugMode = iota
	// DebugPrintStep announces every pass invocation, whether or not it
	// changed anything.
	DebugPrintStep
	// DebugPrintChanges announces only the pass invocations that actually
	// changed the code's size.
	DebugPrintChanges
)

// tracer narrates a recipe run to an io.Writer, colorizing step names and
// size deltas the way the teacher's own CLI diagnostics do.
type tracer struct {
	mode DebugMode
	out  io.Writer
	step int
}

func newTracer(mode DebugMode, out io.Writer) *tracer {
	return &tracer{mode: mode, out: out}
}

func (t *tracer) beforeStep(name string) {
	if t == nil || t.mode == DebugNone {
		return
	}
	t.step++
	if t.mode == DebugPrintStep {
		fmt.Fprintf(t.out, "%s %s\n", color.CyanString("[%d]", t.step), name)
	}
}

func (t *tracer) afterStep(name string, before, after *ir.Block) {
	if t == nil || t.mode == DebugNone {
		return
	}
	beforeSize := ir.CodeSizeIncludingFunctions(before)
	afterSize := ir.CodeSizeIncludingFunctions(after)
	if beforeSize == afterSize {
		if t.mode == DebugPrintChanges {
			return
		}
		fmt.Fprintf(t.out, "  %s\n", color.HiBlackString("no change"))
		return
	}
	delta := afterSize - beforeSize
	sign := color.RedString("+%d", delta)
	if delta < 0 {
		sign = color.GreenString("%d", delta)
	}
	fmt.Fprintf(t.out, "  %s %s -> %d\n", color.YellowString(name), sign, afterSize)
}

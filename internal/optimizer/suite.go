// Package optimizer assembles the pass catalog, the recipe driver, the
// stack compressor, and the suite's entry-point orchestration (spec §4.5,
// §4.6) into a single exported Suite.Run.
package optimizer

import (
	"io"
	"os"

	"irsuite/internal/dialect"
	"irsuite/internal/ir"
	"irsuite/internal/optimizer/pass"
	"irsuite/internal/optimizer/passes"
	"irsuite/internal/optimizer/recipe"
	"irsuite/internal/optimizer/stackcompressor"
)

// defaultRecipe is the suite's compile-time-constant pass sequence, run
// once in full before the stack compressor's feedback loop.
const defaultRecipe = `dhfoDgvulfnTUtnIf(xarrscLM` +
	` cCTUtTOntnfDIul Lcul Vcul jj eul xarulrul xarrcL gvif CTUcarrLsTOtfDncarrIulc)jmuljuljul VcTOcul jmul`

// tailRecipe runs once after the stack compressor, before the optional
// ConstantOptimiser pass and the final cosmetic steps.
const tailRecipe = `fDnTOc g`

// DefaultLoopIterationCap bounds how many times a parenthesized recipe
// group may repeat in search of a code-size fixed point (spec §4.5):
// some pass combinations (e.g. ConditionalSimplifier/ConditionalUnsimplifier
// toggling against each other) never monotonically shrink, and without a
// cap the loop would never terminate.
const DefaultLoopIterationCap = 32

// Analyzer re-establishes AnalysisInfo over optimized code. It models the
// external collaborator referenced by spec §1/§4.6 step 10: the core never
// inspects AnalysisInfo's contents, only calls back into this to rebuild
// it once optimization completes.
type Analyzer interface {
	Analyze(code *ir.Block) (ir.AnalysisInfo, error)
}

// AnalyzerFunc adapts a plain function to the Analyzer interface.
type AnalyzerFunc func(code *ir.Block) (ir.AnalysisInfo, error)

func (f AnalyzerFunc) Analyze(code *ir.Block) (ir.AnalysisInfo, error) { return f(code) }

// Options configures one Suite.Run invocation. Every field but Dialect and
// Analyzer has a documented zero-value default.
type Options struct {
	// Dialect selects the builtin/semantics table every pass consults.
	// Required.
	Dialect dialect.Dialect
	// Analyzer re-establishes AnalysisInfo after optimization. Required.
	Analyzer Analyzer
	// ExternallyUsedNames joins dialect.FixedNames() in the reserved set
	// the Disambiguator must never introduce or rename into (spec §4.6
	// step 1) — e.g. names referenced from outside the object, such as a
	// linker symbol.
	ExternallyUsedNames ir.IdentifierSet
	// GasMeter, if non-nil, overrides the dialect's own literal
	// materialization cost estimate for ConstantOptimiser (spec §4.6 step
	// 7). Only consulted for a stack-like dialect.
	GasMeter pass.GasMeter
	// StackDepthLimit overrides stackcompressor.DefaultDepthLimit when
	// positive.
	StackDepthLimit int
	// StackCompressorMaxIterations overrides
	// stackcompressor.DefaultMaxIterations when positive.
	StackCompressorMaxIterations int
	// LoopIterationCap overrides DefaultLoopIterationCap when positive.
	LoopIterationCap int
	// Debug selects how much the driver narrates about its own progress.
	Debug DebugMode
	// Trace receives the debug narration; defaults to os.Stderr.
	Trace io.Writer
}

// Suite is the stateless entry point that runs the whole optimizer over an
// Object (spec §4.6).
type Suite struct{}

// Run executes the full ten-step suite orchestration over object.Code in
// place and stores the freshly re-analyzed result back into
// object.AnalysisInfo. It returns an *Error wrapping a ConfigurationError,
// PreconditionError, or AnalyzerRejection on failure — precondition
// violations surface as errors here rather than as a raw panic, since this
// is the boundary an external caller is expected to handle.
func (Suite) Run(object *ir.Object, opts Options) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if v, ok := r.(pass.PreconditionViolation); ok {
				err = newPreconditionError(v)
				return
			}
			panic(r)
		}
	}()

	limit := opts.StackDepthLimit
	if limit <= 0 {
		limit = stackcompressor.DefaultDepthLimit
	}
	maxIterations := opts.StackCompressorMaxIterations
	if maxIterations <= 0 {
		maxIterations = stackcompressor.DefaultMaxIterations
	}
	loopCap := opts.LoopIterationCap
	if loopCap <= 0 {
		loopCap = DefaultLoopIterationCap
	}
	out := opts.Trace
	if out == nil {
		out = os.Stderr
	}
	tr := newTracer(opts.Debug, out)

	reserved := opts.ExternallyUsedNames.Union(opts.Dialect.FixedNames())
	ctx := pass.NewContext(opts.Dialect, object.Code, reserved)
	ctx.GasMeter = opts.GasMeter

	// Step 1-2: reserve externally visible names, then disambiguate.
	object.Code = disambiguate(ctx, object.Code)

	// Step 3: the default recipe, to a fixed point within each loop group.
	object.Code, err = runRecipe(ctx, object.Code, defaultRecipe, loopCap, tr)
	if err != nil {
		return err
	}

	// Step 4: group functions once.
	object.Code = runStep(ctx, passes.FunctionGrouper{}, object.Code, tr)

	// Step 5: the stack compressor feedback loop.
	if opts.Dialect.IsStackLike() {
		stackcompressor.Compress(ctx, object.Code, limit, maxIterations)
	}

	// Step 6: the short tail recipe.
	object.Code, err = runRecipe(ctx, object.Code, tailRecipe, loopCap, tr)
	if err != nil {
		return err
	}
	object.Code = runStep(ctx, passes.FunctionGrouper{}, object.Code, tr)

	// Step 7: ConstantOptimiser, stack-like dialects only.
	if opts.Dialect.IsStackLike() {
		object.Code = runStep(ctx, passes.ConstantOptimiser{}, object.Code, tr)
	}

	// Step 8: trim a leading empty block for linear-memory-like dialects.
	if opts.Dialect.IsLinearMemoryLike() {
		trimLeadingEmptyBlock(object.Code)
	}

	// Step 9: the cosmetic rename, last — it deliberately gives up the
	// unique-names invariant every prior pass relied on.
	object.Code = cleanVariableNames(object.Code)

	// Step 10: re-establish AnalysisInfo.
	info, analyzeErr := opts.Analyzer.Analyze(object.Code)
	if analyzeErr != nil {
		return newAnalyzerRejection(analyzeErr)
	}
	object.AnalysisInfo = info
	return nil
}

// runRecipe parses literal, validates every abbreviation against the
// catalog up front (so an unknown abbreviation fails before any pass
// runs), and executes its steps in order.
func runRecipe(ctx *pass.Context, block *ir.Block, literal string, loopCap int, tr *tracer) (*ir.Block, error) {
	r, err := recipe.Parse(literal)
	if err != nil {
		return block, newConfigurationError(err)
	}
	for _, abbrev := range r.Abbreviations() {
		if _, ok := lookupPass(abbrev); !ok {
			return block, newConfigurationError(&unknownAbbreviationError{Abbrev: abbrev})
		}
	}
	for _, step := range r.Steps() {
		switch step.Kind {
		case recipe.RunOnce:
			for _, abbrev := range step.Abbrevs {
				p, _ := lookupPass(abbrev)
				block = runStep(ctx, p, block, tr)
			}
		case recipe.Loop:
			block = runToFixedPoint(ctx, block, step.Abbrevs, loopCap, tr)
		}
	}
	return block, nil
}

// runToFixedPoint repeats the given abbreviation sequence, measuring
// ir.CodeSizeIncludingFunctions before and after each full pass over the
// sequence, until a repetition produces no change or maxRounds repetitions
// have run, whichever comes first (spec §4.5) — the cap exists precisely
// because not every pass combination is guaranteed to shrink monotonically.
func runToFixedPoint(ctx *pass.Context, block *ir.Block, abbrevs []string, maxRounds int, tr *tracer) *ir.Block {
	for round := 0; round < maxRounds; round++ {
		before := ir.CodeSizeIncludingFunctions(block)
		for _, abbrev := range abbrevs {
			p, _ := lookupPass(abbrev)
			block = runStep(ctx, p, block, tr)
		}
		after := ir.CodeSizeIncludingFunctions(block)
		if after == before {
			return block
		}
	}
	return block
}

func runStep(ctx *pass.Context, p pass.Pass, block *ir.Block, tr *tracer) *ir.Block {
	tr.beforeStep(p.Name())
	before := block
	after := p.Run(ctx, block)
	tr.afterStep(p.Name(), before, after)
	return after
}

// RunSequence parses a recipe literal and runs it once against block under
// ctx, using DefaultLoopIterationCap for any parenthesized loop group it
// contains. It is the same driver Suite.Run uses internally for its own
// default and tail recipes, exported so a caller wiring a custom pipeline
// outside Suite.Run entirely can drive an arbitrary recipe directly (spec
// §6).
func RunSequence(ctx *pass.Context, recipeLiteral string, block *ir.Block) (*ir.Block, error) {
	return runRecipe(ctx, block, recipeLiteral, DefaultLoopIterationCap, newTracer(DebugNone, io.Discard))
}

// RunSequenceUntilStable repeats the given catalog abbreviations against
// block under ctx until a repetition leaves ir.CodeSizeIncludingFunctions
// unchanged or maxRounds repetitions have run. It is the exported
// equivalent of the parenthesized-group loop driving Suite.Run's own
// recipes, for a caller that wants that fixed-point behavior over a custom
// step sequence without going through the recipe grammar at all (spec §6).
func RunSequenceUntilStable(ctx *pass.Context, steps []string, block *ir.Block, maxRounds int) *ir.Block {
	if maxRounds <= 0 {
		maxRounds = DefaultLoopIterationCap
	}
	return runToFixedPoint(ctx, block, steps, maxRounds, newTracer(DebugNone, io.Discard))
}

// trimLeadingEmptyBlock drops a single leading empty Block statement, the
// cosmetic shape a linear-memory-like dialect's front end tends to leave
// behind once constructor setup has been fully optimized away.
func trimLeadingEmptyBlock(block *ir.Block) {
	if len(block.Statements) == 0 {
		return
	}
	if b, ok := block.Statements[0].(*ir.Block); ok && len(b.Statements) == 0 {
		block.Statements = block.Statements[1:]
	}
}

type unknownAbbreviationError struct {
	Abbrev string
}

func (e *unknownAbbreviationError) Error() string {
	return "unknown pass abbreviation " + e.Abbrev
}

package recipe

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// ParseError reports a malformed recipe literal: an unbalanced parenthesis
// or a nested parenthesis (the grammar allows exactly one level of
// grouping). Any other non-whitespace character lexes as an abbreviation,
// so an abbreviation missing from the pass catalog is not a parse error
// here; the suite checks that separately. Offset is a byte offset
// into the original literal, for callers that want to point at the
// character.
type ParseError struct {
	Literal string
	Offset  int
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("recipe: invalid recipe %q at offset %d: %s", e.Literal, e.Offset, e.Reason)
}

// StepKind distinguishes a plain run (each abbreviation executes once, in
// order) from a fixed-point loop (the abbreviation sequence repeats until
// a run produces no change, or an iteration cap is reached).
type StepKind int

const (
	// RunOnce executes every abbreviation in Abbrevs once, in order.
	RunOnce StepKind = iota
	// Loop repeats the abbreviation sequence in Abbrevs to a fixed point.
	Loop
)

// Step is one element of a flattened recipe: either a bare run or a
// parenthesized loop, in source order.
type Step struct {
	Kind    StepKind
	Abbrevs []string
}

// Recipe is a parsed recipe literal, ready to flatten into steps for the
// driver.
type Recipe struct {
	ast *recipeAST
}

// Parse parses a recipe literal into a Recipe, or returns a *ParseError
// describing the first offending character. No pass is executed as part
// of parsing — an invalid recipe is rejected before any pass runs.
func Parse(literal string) (*Recipe, error) {
	ast, err := parser.ParseString("", literal)
	if err != nil {
		offset := 0
		if perr, ok := err.(participle.Error); ok {
			offset = perr.Position().Offset
		}
		return nil, &ParseError{Literal: literal, Offset: offset, Reason: err.Error()}
	}
	return &Recipe{ast: ast}, nil
}

// MustParse parses literal and panics on error. Intended for compile-time
// constant recipe literals (the default recipe, the stack-compressor tail
// recipe) whose validity is established once by the test suite, never by
// a caller-supplied string.
func MustParse(literal string) *Recipe {
	r, err := Parse(literal)
	if err != nil {
		panic(errors.Wrap(err, "recipe: MustParse"))
	}
	return r
}

// Steps flattens the parsed recipe into an ordered list of Steps.
func (r *Recipe) Steps() []Step {
	var steps []Step
	if len(r.ast.Lead.Abbrevs) > 0 {
		steps = append(steps, Step{Kind: RunOnce, Abbrevs: r.ast.Lead.Abbrevs})
	}
	for _, g := range r.ast.Groups {
		steps = append(steps, Step{Kind: Loop, Abbrevs: g.Loop.Abbrevs})
		if len(g.Tail.Abbrevs) > 0 {
			steps = append(steps, Step{Kind: RunOnce, Abbrevs: g.Tail.Abbrevs})
		}
	}
	return steps
}

// Abbreviations returns every distinct abbreviation character mentioned
// anywhere in the recipe, for upfront validation against a catalog before
// any step runs.
func (r *Recipe) Abbreviations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, step := range r.Steps() {
		for _, a := range step.Abbrevs {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

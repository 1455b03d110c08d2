// Package recipe parses the single-character recipe language that drives
// the optimizer: a flat sequence of pass abbreviations with one level of
// parenthesized fixed-point loops, no nesting. Grammar:
//
//	recipe  := segment ( '(' segment ')' segment )*
//	segment := abbrev*
//
// Whitespace is insignificant and may be used to make a recipe literal
// readable; a nested '(' is a configuration error, not a grammar
// extension.
package recipe

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var recipeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Abbrev", Pattern: `[^ \t\r\n()]`},
})

// segmentAST is a bare run of abbreviations with no grouping.
type segmentAST struct {
	Abbrevs []string `parser:"@Abbrev*"`
}

// groupAST is one "(" segment ")" segment repetition: a loop followed by
// the non-looped segment that runs once immediately after it.
type groupAST struct {
	Loop *segmentAST `parser:"'(' @@ ')'"`
	Tail *segmentAST `parser:"@@"`
}

// recipeAST is the whole parsed program: a leading bare segment followed
// by zero or more groups.
type recipeAST struct {
	Lead   *segmentAST `parser:"@@"`
	Groups []*groupAST `parser:"@@*"`
}

var parser = participle.MustBuild[recipeAST](
	participle.Lexer(recipeLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

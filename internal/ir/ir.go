// Package ir defines the statement-tree intermediate representation optimized
// by this module: a typed, assembly-like language of variables, functions,
// conditionals, switches, for-loops and calls to dialect-defined built-ins.
//
// The package also carries the AST utilities every optimization pass is
// built on: deep copy, syntactic equality, free/assigned variable queries,
// a fresh-name dispenser, a structural code-size metric, and a rewriting
// walker.
package ir

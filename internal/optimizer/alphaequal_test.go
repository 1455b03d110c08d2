package optimizer

import "irsuite/internal/ir"

// alphaMapping tracks a bijective correspondence between identifiers bound
// on the left of an alphaEqual* comparison and identifiers bound on the
// right, so that two programs differing only in which fresh name a pass
// minted for the same binding are still recognized as equivalent.
type alphaMapping struct {
	aToB map[ir.Identifier]ir.Identifier
	bToA map[ir.Identifier]ir.Identifier
}

func newAlphaMapping() *alphaMapping {
	return &alphaMapping{aToB: map[ir.Identifier]ir.Identifier{}, bToA: map[ir.Identifier]ir.Identifier{}}
}

// bind records that a (on the left) and b (on the right) denote the same
// binding from here on, for a freshly introduced declaration/parameter/
// function name. It reports false if either side is already bound to
// something else, which means the two trees are not alpha-equivalent.
func (m *alphaMapping) bind(a, b ir.Identifier) bool {
	if existing, ok := m.aToB[a]; ok {
		return existing == b
	}
	if existing, ok := m.bToA[b]; ok {
		return existing == a
	}
	m.aToB[a] = b
	m.bToA[b] = a
	return true
}

// uses checks that a read of a on the left lines up with a read of b on
// the right, given the bindings recorded so far. An identifier neither
// side has bound (e.g. a name reserved from outside the program) must
// match literally.
func (m *alphaMapping) uses(a, b ir.Identifier) bool {
	if mapped, ok := m.aToB[a]; ok {
		return mapped == b
	}
	if _, ok := m.bToA[b]; ok {
		return false
	}
	return a == b
}

// alphaEqualExpr is ir.Equal, but identifiers are compared through m
// instead of literally.
func alphaEqualExpr(a, b ir.Expression, m *alphaMapping) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *ir.Literal:
		bv, ok := b.(*ir.Literal)
		return ok && av.Kind == bv.Kind && av.Value == bv.Value
	case *ir.IdentifierExpr:
		bv, ok := b.(*ir.IdentifierExpr)
		return ok && m.uses(av.Name, bv.Name)
	case *ir.FunctionCall:
		bv, ok := b.(*ir.FunctionCall)
		if !ok || len(av.Args) != len(bv.Args) {
			return false
		}
		if !m.uses(av.Name, bv.Name) {
			return false
		}
		for i := range av.Args {
			if !alphaEqualExpr(av.Args[i], bv.Args[i], m) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func alphaBindTargets(a, b []ir.Identifier, m *alphaMapping) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !m.bind(a[i], b[i]) {
			return false
		}
	}
	return true
}

func alphaUsesTargets(a, b []ir.Identifier, m *alphaMapping) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !m.uses(a[i], b[i]) {
			return false
		}
	}
	return true
}

// alphaEqualStatement is ir.EqualStatement, but every declaration
// (VariableDeclaration targets, FunctionDefinition name/parameters/returns)
// binds a fresh correspondence in m instead of requiring a literal name
// match, and every read (Assignment targets, IdentifierExpr, FunctionCall
// name for a call to a user-defined function) is checked against it.
func alphaEqualStatement(a, b ir.Statement, m *alphaMapping) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *ir.ExpressionStatement:
		bv, ok := b.(*ir.ExpressionStatement)
		return ok && alphaEqualExpr(av.Expr, bv.Expr, m)
	case *ir.Assignment:
		bv, ok := b.(*ir.Assignment)
		return ok && alphaUsesTargets(av.Targets, bv.Targets, m) && alphaEqualExpr(av.Value, bv.Value, m)
	case *ir.VariableDeclaration:
		bv, ok := b.(*ir.VariableDeclaration)
		if !ok || !alphaEqualExpr(av.Value, bv.Value, m) {
			return false
		}
		return alphaBindTargets(av.Targets, bv.Targets, m)
	case *ir.If:
		bv, ok := b.(*ir.If)
		return ok && alphaEqualExpr(av.Cond, bv.Cond, m) && alphaEqualStatement(av.Body, bv.Body, m)
	case *ir.Switch:
		bv, ok := b.(*ir.Switch)
		if !ok || !alphaEqualExpr(av.Cond, bv.Cond, m) || len(av.Cases) != len(bv.Cases) {
			return false
		}
		for i := range av.Cases {
			ac, bc := av.Cases[i], bv.Cases[i]
			if (ac.Value == nil) != (bc.Value == nil) {
				return false
			}
			if ac.Value != nil && !alphaEqualExpr(ac.Value, bc.Value, m) {
				return false
			}
			if !alphaEqualStatement(ac.Body, bc.Body, m) {
				return false
			}
		}
		return true
	case *ir.ForLoop:
		bv, ok := b.(*ir.ForLoop)
		return ok &&
			alphaEqualStatement(av.Init, bv.Init, m) &&
			alphaEqualExpr(av.Cond, bv.Cond, m) &&
			alphaEqualStatement(av.Post, bv.Post, m) &&
			alphaEqualStatement(av.Body, bv.Body, m)
	case *ir.Break:
		_, ok := b.(*ir.Break)
		return ok
	case *ir.Continue:
		_, ok := b.(*ir.Continue)
		return ok
	case *ir.Leave:
		_, ok := b.(*ir.Leave)
		return ok
	case *ir.FunctionDefinition:
		bv, ok := b.(*ir.FunctionDefinition)
		if !ok || !m.bind(av.Name, bv.Name) {
			return false
		}
		if !alphaBindTargets(av.Parameters, bv.Parameters, m) {
			return false
		}
		if !alphaBindTargets(av.Returns, bv.Returns, m) {
			return false
		}
		return alphaEqualStatement(av.Body, bv.Body, m)
	case *ir.Block:
		bv, ok := b.(*ir.Block)
		if !ok || len(av.Statements) != len(bv.Statements) {
			return false
		}
		// Bind sibling function names up front, mirroring disambiguate's own
		// two-pass scope construction, so a forward call to a function
		// defined later in the same list still resolves through m.
		for i := range av.Statements {
			afn, aok := av.Statements[i].(*ir.FunctionDefinition)
			bfn, bok := bv.Statements[i].(*ir.FunctionDefinition)
			if aok != bok {
				return false
			}
			if aok && !m.bind(afn.Name, bfn.Name) {
				return false
			}
		}
		for i := range av.Statements {
			if !alphaEqualStatement(av.Statements[i], bv.Statements[i], m) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

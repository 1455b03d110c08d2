package ir

// Equal reports whether two expressions are syntactically equal: structural
// equality modulo SourceLocation. Used by CommonSubexpressionEliminator,
// EquivalentFunctionCombiner, LoadResolver and debug output.
func Equal(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Literal:
		bv, ok := b.(*Literal)
		return ok && av.Kind == bv.Kind && av.Value == bv.Value
	case *IdentifierExpr:
		bv, ok := b.(*IdentifierExpr)
		return ok && av.Name == bv.Name
	case *FunctionCall:
		bv, ok := b.(*FunctionCall)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EqualStatement reports whether two statements are syntactically equal
// modulo SourceLocation, recursing into nested blocks.
func EqualStatement(a, b Statement) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *ExpressionStatement:
		bv, ok := b.(*ExpressionStatement)
		return ok && Equal(av.Expr, bv.Expr)
	case *Assignment:
		bv, ok := b.(*Assignment)
		return ok && equalIdentifiers(av.Targets, bv.Targets) && Equal(av.Value, bv.Value)
	case *VariableDeclaration:
		bv, ok := b.(*VariableDeclaration)
		return ok && equalIdentifiers(av.Targets, bv.Targets) && Equal(av.Value, bv.Value)
	case *If:
		bv, ok := b.(*If)
		return ok && Equal(av.Cond, bv.Cond) && EqualStatement(av.Body, bv.Body)
	case *Switch:
		bv, ok := b.(*Switch)
		if !ok || !Equal(av.Cond, bv.Cond) || len(av.Cases) != len(bv.Cases) {
			return false
		}
		for i := range av.Cases {
			ac, bc := av.Cases[i], bv.Cases[i]
			if (ac.Value == nil) != (bc.Value == nil) {
				return false
			}
			if ac.Value != nil && !Equal(ac.Value, bc.Value) {
				return false
			}
			if !EqualStatement(ac.Body, bc.Body) {
				return false
			}
		}
		return true
	case *ForLoop:
		bv, ok := b.(*ForLoop)
		return ok &&
			EqualStatement(av.Init, bv.Init) &&
			Equal(av.Cond, bv.Cond) &&
			EqualStatement(av.Post, bv.Post) &&
			EqualStatement(av.Body, bv.Body)
	case *Break:
		_, ok := b.(*Break)
		return ok
	case *Continue:
		_, ok := b.(*Continue)
		return ok
	case *Leave:
		_, ok := b.(*Leave)
		return ok
	case *FunctionDefinition:
		bv, ok := b.(*FunctionDefinition)
		return ok &&
			av.Name == bv.Name &&
			equalIdentifiers(av.Parameters, bv.Parameters) &&
			equalIdentifiers(av.Returns, bv.Returns) &&
			EqualStatement(av.Body, bv.Body)
	case *Block:
		bv, ok := b.(*Block)
		if !ok || len(av.Statements) != len(bv.Statements) {
			return false
		}
		for i := range av.Statements {
			if !EqualStatement(av.Statements[i], bv.Statements[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalIdentifiers(a, b []Identifier) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package formula

// Simplify folds constants away and flattens nested conjunctions and disjunctions.
// The result is equivalent to f and contains a constant only if it is itself a constant.
func Simplify(f Formula) Formula {
	switch f := f.(type) {
	case *Not:
		child := Simplify(f.Child)
		switch child := child.(type) {
		case Const:
			return Const{Value: !child.Value}
		case *Not:
			return child.Child
		}
		return Negate(child)

	case *And:
		children := make([]Formula, 0, len(f.Children))
		for _, child := range f.Children {
			child = Simplify(child)
			switch child := child.(type) {
			case Const:
				if !child.Value {
					return False
				}
				continue // True is neutral
			case *And:
				children = append(children, child.Children...)
				continue
			}
			children = append(children, child)
		}
		return collapse(children, True, func(children []Formula) Formula { return Conjunction(children...) })

	case *Or:
		children := make([]Formula, 0, len(f.Children))
		for _, child := range f.Children {
			child = Simplify(child)
			switch child := child.(type) {
			case Const:
				if child.Value {
					return True
				}
				continue // False is neutral
			case *Or:
				children = append(children, child.Children...)
				continue
			}
			children = append(children, child)
		}
		return collapse(children, False, func(children []Formula) Formula { return Disjunction(children...) })

	case *Implies:
		left, right := Simplify(f.Left), Simplify(f.Right)
		if c, ok := left.(Const); ok {
			if !c.Value {
				return True
			}
			return right
		}
		if c, ok := right.(Const); ok {
			if c.Value {
				return True
			}
			return Simplify(Negate(left))
		}
		return Implication(left, right)

	case *Equals:
		left, right := Simplify(f.Left), Simplify(f.Right)
		if result, ok := foldBinary(left, right, false); ok {
			return result
		}
		return Equivalence(left, right)

	case *NotEquals:
		left, right := Simplify(f.Left), Simplify(f.Right)
		if result, ok := foldBinary(left, right, true); ok {
			return result
		}
		return Xor(left, right)
	}

	return f
}

// foldBinary simplifies an (in)equality with a constant operand.
// x == True is x, x == False is ~x; inequality flips both.
func foldBinary(left, right Formula, inequality bool) (Formula, bool) {
	c, ok := left.(Const)
	other := right
	if !ok {
		c, ok = right.(Const)
		other = left
	}
	if !ok {
		return nil, false
	}

	if c.Value != inequality {
		return other, true
	}
	return Simplify(Negate(other)), true
}

func collapse(children []Formula, empty Formula, build func([]Formula) Formula) Formula {
	switch len(children) {
	case 0:
		return empty
	case 1:
		return children[0]
	}
	return build(children)
}

package ast

// Integer returns an Integer literal.
func Integer(value int) *Node {
	return New(KindInteger).SetValue(value)
}

// Binary returns a two-operand arithmetic node of the given kind.
func Binary(kind Kind, left, right *Node) *Node {
	return New(kind).AddChild(left).AddChild(right)
}

// Negate returns the unary minus of operand.
func Negate(operand *Node) *Node {
	return New(KindNegate).AddChild(operand)
}

// Function returns a single-argument call of the named function.
func Function(name string, operand *Node) *Node {
	return New(KindFunction).SetName(name).AddChild(operand)
}

// DiceSides returns a DiceSides leaf.
func DiceSides(sides Sides) *Node {
	return New(KindDiceSides).SetSides(sides)
}

// Dice returns a pool rolling count dice with the given sides.
func Dice(count *Node, sides Sides) *Node {
	return New(KindDice).AddChild(count).AddChild(DiceSides(sides))
}

// Keep wraps a Dice pool with a selection. When count is nil the default of
// one die is kept.
func Keep(mode KeepMode, dice *Node, count *Node) *Node {
	keep := New(KindKeep).SetMode(mode).AddChild(dice)
	if count != nil {
		keep.AddChild(count)
	}
	return keep
}

// Equal reports whether a and b are structurally identical: same kinds,
// fields and children, recursively. Parent links and resolution bookkeeping
// are ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Value != b.Value || a.Sides != b.Sides ||
		a.Name != b.Name || a.Mode != b.Mode || a.Dropped != b.Dropped {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

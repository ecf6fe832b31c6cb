package ast

// Node is one element of a dice expression tree.
//
// Only the fields relevant to Kind are read:
//
//   - Value: Integer literal, or the outcome of a DiceRoll.
//   - Sides: the face set of a DiceSides leaf.
//   - Name: the function of a Function node.
//   - Mode: the selection of a Keep node.
//   - Dropped: set on DiceRoll leaves a Keep discarded.
type Node struct {
	Kind    Kind
	Value   int
	Sides   Sides
	Name    string
	Mode    KeepMode
	Dropped bool

	parent   *Node
	children []*Node

	// operands holds the original children of a resolved Dice node.
	operands []*Node
	resolved bool
}

// New creates an empty node of the given kind.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// SetValue sets the Value field and returns n.
func (n *Node) SetValue(value int) *Node {
	n.Value = value
	return n
}

// SetSides sets the Sides field and returns n.
func (n *Node) SetSides(sides Sides) *Node {
	n.Sides = sides
	return n
}

// SetName sets the Name field and returns n.
func (n *Node) SetName(name string) *Node {
	n.Name = name
	return n
}

// SetMode sets the Mode field and returns n.
func (n *Node) SetMode(mode KeepMode) *Node {
	n.Mode = mode
	return n
}

// AddChild appends child to n and returns n.
//
// It panics when child already belongs to another node or when child is n or
// one of its ancestors; both would break the tree shape.
func (n *Node) AddChild(child *Node) *Node {
	if child == nil {
		panic("ast: nil child")
	}
	if child.parent != nil {
		panic("ast: " + child.Kind.String() + " node already has a parent")
	}
	for ancestor := n; ancestor != nil; ancestor = ancestor.parent {
		if ancestor == child {
			panic("ast: adding " + child.Kind.String() + " node would create a cycle")
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return n
}

// Child returns the i-th child, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Resolved reports whether n is a Dice node whose operands were replaced by
// rolls.
func (n *Node) Resolved() bool {
	return n.resolved
}

// Operands returns the count and sides operands of a Dice node, whether or
// not it has been resolved.
func (n *Node) Operands() []*Node {
	if n.resolved {
		out := make([]*Node, len(n.operands))
		copy(out, n.operands)
		return out
	}
	return n.Children()
}

// Resolve replaces the children of n with one DiceRoll leaf per value, in
// order, and sets the previous children aside. Resolving an already resolved
// node replaces its rolls but keeps the original operands.
func (n *Node) Resolve(values []int) {
	if !n.resolved {
		n.operands = n.children
		n.resolved = true
	} else {
		for _, child := range n.children {
			child.parent = nil
		}
	}
	n.children = make([]*Node, 0, len(values))
	for _, value := range values {
		roll := New(KindDiceRoll).SetValue(value)
		roll.parent = n
		n.children = append(n.children, roll)
	}
}

// Reset restores every resolved Dice node in the subtree rooted at n to its
// original operands and clears Dropped marks, so the next evaluation rolls
// again.
func (n *Node) Reset() {
	if n.resolved {
		for _, child := range n.children {
			child.parent = nil
		}
		n.children = n.operands
		n.operands = nil
		n.resolved = false
	}
	n.Dropped = false
	for _, child := range n.children {
		child.Reset()
	}
}

// Clone returns a deep copy of the subtree rooted at n. The copy has no
// parent, so it can be evaluated independently of the original.
func (n *Node) Clone() *Node {
	out := &Node{
		Kind:     n.Kind,
		Value:    n.Value,
		Sides:    n.Sides,
		Name:     n.Name,
		Mode:     n.Mode,
		Dropped:  n.Dropped,
		resolved: n.resolved,
	}
	out.children = cloneAll(n.children, out)
	if n.resolved {
		// Set-aside operands keep their link to n so Reset can re-adopt them.
		out.operands = cloneAll(n.operands, out)
	}
	return out
}

func cloneAll(nodes []*Node, parent *Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, node := range nodes {
		c := node.Clone()
		c.parent = parent
		out[i] = c
	}
	return out
}

// Walk calls fn for n and every descendant in pre-order. Returning false from
// fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

package ast

import "testing"

func TestSettersChain(t *testing.T) {
	n := New(KindKeep).SetMode(KeepLowest).SetName("x").SetValue(3).SetSides(Fate)
	if n.Kind != KindKeep || n.Mode != KeepLowest || n.Name != "x" || n.Value != 3 || !n.Sides.IsFate() {
		t.Fatalf("unexpected node: %+v", n)
	}
}

func TestChildAccess(t *testing.T) {
	add := Binary(KindAdd, Integer(1), Integer(2))

	if add.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", add.ChildCount())
	}
	if add.Child(0).Value != 1 || add.Child(1).Value != 2 {
		t.Fatalf("unexpected children: %d, %d", add.Child(0).Value, add.Child(1).Value)
	}
	if add.Child(2) != nil || add.Child(-1) != nil {
		t.Fatal("expected nil for out-of-range child")
	}
	if add.Child(0).Parent() != add {
		t.Fatal("expected child parent to be set")
	}

	children := add.Children()
	children[0] = nil
	if add.Child(0) == nil {
		t.Fatal("Children() must return a copy")
	}
}

func TestAddChildRejectsSharedChild(t *testing.T) {
	shared := Integer(1)
	Negate(shared)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when re-parenting a child")
		}
	}()
	Negate(shared)
}

func TestAddChildRejectsCycle(t *testing.T) {
	root := New(KindNegate)
	inner := New(KindNegate)
	root.AddChild(inner)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when adding an ancestor")
		}
	}()
	inner.AddChild(root)
}

func TestResolveKeepsIdentityAndOperands(t *testing.T) {
	count := Integer(2)
	dice := Dice(count, Faces(6))

	dice.Resolve([]int{3, 5})

	if !dice.Resolved() {
		t.Fatal("expected resolved dice")
	}
	if dice.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", dice.ChildCount())
	}
	for i, want := range []int{3, 5} {
		roll := dice.Child(i)
		if roll.Kind != KindDiceRoll || roll.Value != want || roll.Parent() != dice {
			t.Fatalf("roll %d = %+v, want DiceRoll %d", i, roll, want)
		}
	}
	operands := dice.Operands()
	if len(operands) != 2 || operands[0] != count || operands[1].Kind != KindDiceSides {
		t.Fatalf("unexpected operands: %+v", operands)
	}
}

func TestResolveZeroRolls(t *testing.T) {
	dice := Dice(Integer(0), Faces(6))
	dice.Resolve(nil)
	if dice.ChildCount() != 0 || !dice.Resolved() {
		t.Fatalf("expected resolved dice without children, got %d children", dice.ChildCount())
	}
}

func TestResetRestoresOperands(t *testing.T) {
	count := Integer(3)
	dice := Dice(count, Faces(8))
	keep := Keep(KeepHighest, dice, nil)

	dice.Resolve([]int{1, 2, 3})
	dice.Child(0).Dropped = true
	keep.Reset()

	if dice.Resolved() {
		t.Fatal("expected reset dice to be unresolved")
	}
	if dice.ChildCount() != 2 || dice.Child(0) != count || dice.Child(1).Sides != Faces(8) {
		t.Fatalf("unexpected children after reset: %+v", dice.Children())
	}
	if count.Parent() != dice {
		t.Fatal("expected operand to stay owned by dice")
	}
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	root := Binary(KindAdd, Dice(Integer(2), Faces(6)), Integer(4))
	root.Child(0).Resolve([]int{2, 6})

	clone := root.Child(0).Clone()
	if clone.Parent() != nil {
		t.Fatal("expected clone root to be detached")
	}
	if !Equal(clone, root.Child(0)) {
		t.Fatal("expected clone to equal original")
	}

	clone.Child(0).Value = 1
	if root.Child(0).Child(0).Value != 2 {
		t.Fatal("mutating the clone changed the original")
	}

	clone.Reset()
	if clone.ChildCount() != 2 || clone.Child(0).Kind != KindInteger || clone.Child(0).Parent() != clone {
		t.Fatalf("expected clone to keep its own operands, got %+v", clone.Children())
	}
	if !root.Child(0).Resolved() {
		t.Fatal("resetting the clone reset the original")
	}
}

func TestEqual(t *testing.T) {
	a := Keep(KeepLowest, Dice(Integer(3), Faces(6)), Integer(2))
	b := Keep(KeepLowest, Dice(Integer(3), Faces(6)), Integer(2))
	c := Keep(KeepLowest, Dice(Integer(3), Faces(6)), nil)

	if !Equal(a, b) {
		t.Fatal("expected equal trees")
	}
	if Equal(a, c) {
		t.Fatal("expected trees with different children to differ")
	}
	if Equal(a, nil) || !Equal(nil, nil) {
		t.Fatal("unexpected nil comparison")
	}
}

func TestWalkVisitsPreOrder(t *testing.T) {
	root := Binary(KindMultiply, Negate(Integer(1)), Integer(2))
	var kinds []Kind
	root.Walk(func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return n.Kind != KindNegate
	})
	want := []Kind{KindMultiply, KindNegate, KindInteger}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}
}

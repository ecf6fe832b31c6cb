package interpreter

import (
	"math"

	"github.com/louisbranch/dicenotation/internal/core/dice/ast"
)

// roll resolves a Dice node and returns its DiceRoll leaves. Resolved nodes
// return their existing rolls without touching the source.
func (e *evaluation) roll(n *ast.Node) ([]*ast.Node, error) {
	if n.Resolved() {
		rolls := n.Children()
		for _, roll := range rolls {
			if roll.Kind != ast.KindDiceRoll {
				return nil, invalidTree(n, "resolved pool holds %s", roll.Kind)
			}
		}
		return rolls, nil
	}

	if n.ChildCount() != 2 {
		return nil, wrongChildCount(n, "2")
	}
	sides := n.Child(1)
	if sides.Kind != ast.KindDiceSides {
		return nil, invalidTree(n, "second child must be DiceSides, got %s", sides.Kind)
	}
	if !sides.Sides.Valid() {
		return nil, invalidTree(sides, "sides must be a positive number of faces or fate")
	}

	countValue, err := e.eval(n.Child(0))
	if err != nil {
		return nil, err
	}
	count, err := roundCount(countValue)
	if err != nil {
		return nil, err
	}
	if count > e.maxDice {
		return nil, diceLimit(math.Round(countValue), e.maxDice)
	}

	values := make([]int, count)
	for i := range values {
		if sides.Sides.IsFate() {
			values[i] = e.src.RollFateDie()
		} else {
			values[i] = e.src.RollDie(sides.Sides.Faces())
		}
	}
	n.Resolve(values)
	return n.Children(), nil
}

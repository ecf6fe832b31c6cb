package interpreter

import (
	"cmp"
	"slices"

	"github.com/louisbranch/dicenotation/internal/core/dice/ast"
)

func (e *evaluation) keep(n *ast.Node) (float64, error) {
	if n.ChildCount() != 1 && n.ChildCount() != 2 {
		return 0, wrongChildCount(n, "1 or 2")
	}
	if n.Mode.Letter() == "" {
		return 0, invalidTree(n, "missing keep type")
	}
	pool := n.Child(0)
	if pool.Kind != ast.KindDice {
		return 0, invalidTree(n, "first child must be Dice, got %s", pool.Kind)
	}

	rolls, err := e.roll(pool)
	if err != nil {
		return 0, err
	}

	k := 1
	if n.ChildCount() == 2 {
		value, err := e.eval(n.Child(1))
		if err != nil {
			return 0, err
		}
		k, err = roundCount(value)
		if err != nil {
			return 0, err
		}
	}

	values := make([]int, len(rolls))
	for i, roll := range rolls {
		values[i] = roll.Value
	}
	kept := Select(n.Mode, values, k)

	total := 0
	for i, roll := range rolls {
		roll.Dropped = !kept[i]
		if kept[i] {
			total += roll.Value
		}
	}
	return float64(total), nil
}

// Select reports, for each value in roll order, whether a Keep of the given
// mode retains it. k is clamped to [0, len(values)].
//
// Equal values are ranked by roll order: highest prefers earlier rolls among
// ties, lowest prefers earlier rolls, and middle keeps the window of k sorted
// values starting at index (n-k)/2, so an uneven split favors the lower half.
func Select(mode ast.KeepMode, values []int, k int) []bool {
	n := len(values)
	k = max(0, min(k, n))

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	ascending := func(a, b int) int { return cmp.Compare(values[a], values[b]) }
	var window []int
	switch mode {
	case ast.KeepHighest:
		slices.SortStableFunc(order, func(a, b int) int { return ascending(b, a) })
		window = order[:k]
	case ast.KeepLowest:
		slices.SortStableFunc(order, ascending)
		window = order[:k]
	case ast.KeepMiddle:
		slices.SortStableFunc(order, ascending)
		start := (n - k) / 2
		window = order[start : start+k]
	}

	kept := make([]bool, n)
	for _, index := range window {
		kept[index] = true
	}
	return kept
}

// Package interpreter evaluates dice expression trees.
//
// Evaluation is a post-order walk returning a float64. Dice nodes are rolled
// with the provided random.Source and resolved in place: their operands are
// replaced by DiceRoll leaves holding the outcomes in roll order. A resolved
// Dice node is never rolled again; evaluating it returns the sum of its
// existing rolls. Call ast.Node.Reset to roll a tree again.
//
// A tree is not safe for concurrent evaluation. Evaluate clones
// (ast.Node.Clone) from separate goroutines instead.
package interpreter

import (
	"math"

	"github.com/louisbranch/dicenotation/internal/core/dice/ast"
	"github.com/louisbranch/dicenotation/internal/core/dice/random"
)

// DefaultMaxDice bounds how many dice a single pool may roll.
const DefaultMaxDice = 10000

// Interpreter evaluates trees using a function table and pool limits. It
// holds no per-evaluation state and is safe for concurrent use.
type Interpreter struct {
	functions map[string]Func
	maxDice   int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithFunction registers fn under name, replacing any built-in of the same
// name. Names are case-insensitive.
func WithFunction(name string, fn Func) Option {
	return func(in *Interpreter) {
		in.functions[functionKey(name)] = fn
	}
}

// WithMaxDice sets the largest pool a Dice node may roll. Non-positive values
// keep the default.
func WithMaxDice(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxDice = n
		}
	}
}

// New returns an Interpreter with the built-in functions (floor, ceil, round,
// trunc, abs, sqrt).
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		functions: builtinFunctions(),
		maxDice:   DefaultMaxDice,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

var defaultInterpreter = New()

// Evaluate evaluates node with the default Interpreter.
func Evaluate(node *ast.Node, src random.Source) (float64, error) {
	return defaultInterpreter.Evaluate(node, src)
}

// Evaluate returns the value of node, rolling dice with src. A nil src rolls
// with random.Default().
//
// Errors carry one of the DICE_INVALID_TREE, DICE_UNSUPPORTED_NODE,
// DICE_UNKNOWN_FUNCTION, DICE_ARITHMETIC or DICE_LIMIT_EXCEEDED codes. Dice
// resolved before the failure stay resolved.
func (in *Interpreter) Evaluate(node *ast.Node, src random.Source) (float64, error) {
	if node == nil {
		return 0, ErrInvalidTree
	}
	if src == nil {
		src = random.Default()
	}
	e := evaluation{Interpreter: in, src: src}
	return e.eval(node)
}

// evaluation carries the source for one Evaluate call.
type evaluation struct {
	*Interpreter
	src random.Source
}

func (e *evaluation) eval(n *ast.Node) (float64, error) {
	switch n.Kind {
	case ast.KindInteger:
		if n.ChildCount() != 0 {
			return 0, wrongChildCount(n, "0")
		}
		return float64(n.Value), nil
	case ast.KindAdd, ast.KindSubtract, ast.KindMultiply, ast.KindDivide, ast.KindExponent, ast.KindModulo:
		return e.binary(n)
	case ast.KindNegate:
		if n.ChildCount() != 1 {
			return 0, wrongChildCount(n, "1")
		}
		value, err := e.eval(n.Child(0))
		if err != nil {
			return 0, err
		}
		return -value, nil
	case ast.KindFunction:
		return e.function(n)
	case ast.KindDice:
		rolls, err := e.roll(n)
		if err != nil {
			return 0, err
		}
		return float64(sum(rolls)), nil
	case ast.KindKeep:
		return e.keep(n)
	case ast.KindDiceRoll:
		if n.ChildCount() != 0 {
			return 0, wrongChildCount(n, "0")
		}
		return float64(n.Value), nil
	case ast.KindDiceSides:
		return 0, invalidTree(n, "sides are only valid as the second child of Dice")
	default:
		return 0, unsupportedNode(n)
	}
}

func (e *evaluation) binary(n *ast.Node) (float64, error) {
	if n.ChildCount() != 2 {
		return 0, wrongChildCount(n, "2")
	}
	left, err := e.eval(n.Child(0))
	if err != nil {
		return 0, err
	}
	right, err := e.eval(n.Child(1))
	if err != nil {
		return 0, err
	}

	var result float64
	switch n.Kind {
	case ast.KindAdd:
		result = left + right
	case ast.KindSubtract:
		result = left - right
	case ast.KindMultiply:
		result = left * right
	case ast.KindDivide:
		if right == 0 {
			return 0, arithmetic("division by zero")
		}
		result = left / right
	case ast.KindModulo:
		if right == 0 {
			return 0, arithmetic("modulo by zero")
		}
		result = math.Mod(left, right)
	case ast.KindExponent:
		result = math.Pow(left, right)
	}
	if err := checkFinite(n.Kind, result); err != nil {
		return 0, err
	}
	return result, nil
}

func (e *evaluation) function(n *ast.Node) (float64, error) {
	if n.ChildCount() != 1 {
		return 0, wrongChildCount(n, "1")
	}
	if n.Name == "" {
		return 0, invalidTree(n, "missing function name")
	}
	fn, ok := e.functions[functionKey(n.Name)]
	if !ok {
		return 0, unknownFunction(n.Name)
	}
	arg, err := e.eval(n.Child(0))
	if err != nil {
		return 0, err
	}
	result, err := fn(arg)
	if err != nil {
		return 0, err
	}
	if err := checkFinite(n.Kind, result); err != nil {
		return 0, err
	}
	return result, nil
}

func checkFinite(kind ast.Kind, value float64) error {
	switch {
	case math.IsNaN(value):
		return arithmetic(kind.String() + " is undefined")
	case math.IsInf(value, 0):
		return arithmetic(kind.String() + " overflows")
	default:
		return nil
	}
}

// roundCount rounds half away from zero and clamps negatives to zero.
func roundCount(value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, arithmetic("dice count is not a finite number")
	}
	rounded := math.Round(value)
	if rounded < 0 {
		return 0, nil
	}
	if rounded > math.MaxInt32 {
		return math.MaxInt32, nil
	}
	return int(rounded), nil
}

func sum(rolls []*ast.Node) int {
	total := 0
	for _, roll := range rolls {
		total += roll.Value
	}
	return total
}

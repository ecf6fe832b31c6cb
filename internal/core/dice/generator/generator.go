// Package generator renders dice expression trees as canonical notation.
//
// Rendering is pure and works on trees before or after evaluation: a Dice
// node whose children are DiceRoll leaves renders its rolls ("[3, 5]"), with
// rolls dropped by a Keep prefixed by "~". Output is compact (no spaces around
// operators) and adds parentheses only where precedence or associativity
// would otherwise change the tree.
package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/dicenotation/internal/core/dice/ast"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
)

var (
	// ErrInvalidTree indicates a node has the wrong shape for its kind.
	ErrInvalidTree = apperrors.New(apperrors.CodeDiceInvalidTree, "invalid dice tree")
	// ErrUnsupportedNode indicates a node kind the generator does not know.
	ErrUnsupportedNode = apperrors.New(apperrors.CodeDiceUnsupportedNode, "unsupported node kind")
)

// Binding strength, loosest first.
const (
	precSum = iota + 1
	precProduct
	precUnary
	precPower
	precDice
	precAtom
)

var operators = map[ast.Kind]string{
	ast.KindAdd:      "+",
	ast.KindSubtract: "-",
	ast.KindMultiply: "*",
	ast.KindDivide:   "/",
	ast.KindModulo:   "%",
	ast.KindExponent: "^",
}

// Generate renders node as notation text.
func Generate(node *ast.Node) (string, error) {
	if node == nil {
		return "", ErrInvalidTree
	}
	var b strings.Builder
	if err := write(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func write(b *strings.Builder, n *ast.Node) error {
	switch n.Kind {
	case ast.KindInteger:
		if n.ChildCount() != 0 {
			return wrongChildCount(n, "0")
		}
		b.WriteString(strconv.Itoa(n.Value))
		return nil
	case ast.KindAdd, ast.KindSubtract, ast.KindMultiply, ast.KindDivide, ast.KindModulo:
		return writeBinary(b, n, precedence(n), precedence(n)+1)
	case ast.KindExponent:
		// Right-associative: the exponent may itself be a power or a negation.
		return writeBinary(b, n, precDice, precUnary)
	case ast.KindNegate:
		if n.ChildCount() != 1 {
			return wrongChildCount(n, "1")
		}
		b.WriteByte('-')
		return writeOperand(b, n.Child(0), precUnary)
	case ast.KindFunction:
		if n.ChildCount() != 1 {
			return wrongChildCount(n, "1")
		}
		if n.Name == "" {
			return invalidTree(n, "missing function name")
		}
		b.WriteString(n.Name)
		b.WriteByte('(')
		if err := write(b, n.Child(0)); err != nil {
			return err
		}
		b.WriteByte(')')
		return nil
	case ast.KindDice:
		return writeDice(b, n)
	case ast.KindDiceSides:
		if !n.Sides.Valid() {
			return invalidTree(n, "sides must be a positive number of faces or fate")
		}
		b.WriteString(n.Sides.String())
		return nil
	case ast.KindDiceRoll:
		if n.Dropped {
			b.WriteByte('~')
		}
		b.WriteString(strconv.Itoa(n.Value))
		return nil
	case ast.KindKeep:
		return writeKeep(b, n)
	default:
		return unsupportedNode(n)
	}
}

func writeBinary(b *strings.Builder, n *ast.Node, leftMin, rightMin int) error {
	if n.ChildCount() != 2 {
		return wrongChildCount(n, "2")
	}
	if err := writeOperand(b, n.Child(0), leftMin); err != nil {
		return err
	}
	b.WriteString(operators[n.Kind])
	return writeOperand(b, n.Child(1), rightMin)
}

// writeOperand renders child, parenthesized when it binds looser than minPrec.
func writeOperand(b *strings.Builder, child *ast.Node, minPrec int) error {
	if precedence(child) >= minPrec {
		return write(b, child)
	}
	b.WriteByte('(')
	if err := write(b, child); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}

func writeDice(b *strings.Builder, n *ast.Node) error {
	if isNotation(n) {
		if err := writeOperand(b, n.Child(0), precAtom); err != nil {
			return err
		}
		b.WriteByte('d')
		return write(b, n.Child(1))
	}
	if !n.Resolved() {
		return invalidTree(n, "want count and DiceSides children, got %d children", n.ChildCount())
	}

	b.WriteByte('[')
	for i, roll := range n.Children() {
		if roll.Kind != ast.KindDiceRoll {
			return invalidTree(n, "want count and DiceSides children or DiceRoll leaves, got %s", roll.Kind)
		}
		if i > 0 {
			b.WriteString(", ")
		}
		if err := write(b, roll); err != nil {
			return err
		}
	}
	b.WriteByte(']')
	return nil
}

func writeKeep(b *strings.Builder, n *ast.Node) error {
	if n.ChildCount() != 1 && n.ChildCount() != 2 {
		return wrongChildCount(n, "1 or 2")
	}
	letter := n.Mode.Letter()
	if letter == "" {
		return invalidTree(n, "missing keep type")
	}
	pool := n.Child(0)
	if pool.Kind != ast.KindDice {
		return invalidTree(n, "first child must be Dice, got %s", pool.Kind)
	}
	if err := writeDice(b, pool); err != nil {
		return err
	}
	b.WriteByte('k')
	b.WriteString(letter)

	if n.ChildCount() == 1 {
		return nil
	}
	count := n.Child(1)
	if count.Kind == ast.KindInteger && count.ChildCount() == 0 && count.Value >= 0 {
		if count.Value != 1 {
			b.WriteString(strconv.Itoa(count.Value))
		}
		return nil
	}
	b.WriteByte('(')
	if err := write(b, count); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}

// isNotation reports whether a Dice node still holds its count and sides
// rather than rolls.
func isNotation(n *ast.Node) bool {
	return n.ChildCount() == 2 && n.Child(1).Kind == ast.KindDiceSides
}

func precedence(n *ast.Node) int {
	switch n.Kind {
	case ast.KindAdd, ast.KindSubtract:
		return precSum
	case ast.KindMultiply, ast.KindDivide, ast.KindModulo:
		return precProduct
	case ast.KindNegate:
		return precUnary
	case ast.KindExponent:
		return precPower
	case ast.KindDice:
		if isNotation(n) {
			return precDice
		}
		// A roll list is bracketed.
		return precAtom
	case ast.KindKeep:
		return precDice
	case ast.KindInteger, ast.KindDiceRoll:
		if n.Value < 0 {
			return precUnary
		}
		return precAtom
	default:
		return precAtom
	}
}

func invalidTree(n *ast.Node, format string, args ...any) error {
	return apperrors.WithMetadata(
		apperrors.CodeDiceInvalidTree,
		n.Kind.String()+": "+fmt.Sprintf(format, args...),
		map[string]string{"kind": n.Kind.String()},
	)
}

func wrongChildCount(n *ast.Node, want string) error {
	return invalidTree(n, "want %s children, got %d", want, n.ChildCount())
}

func unsupportedNode(n *ast.Node) error {
	return apperrors.WithMetadata(
		apperrors.CodeDiceUnsupportedNode,
		"unsupported node kind "+n.Kind.String(),
		map[string]string{"kind": n.Kind.String()},
	)
}

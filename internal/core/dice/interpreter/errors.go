package interpreter

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/dicenotation/internal/core/dice/ast"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
)

// Sentinel errors for errors.Is; returned errors carry the same code plus
// metadata about the failing node.
var (
	// ErrInvalidTree indicates a node has the wrong shape for its kind.
	ErrInvalidTree = apperrors.New(apperrors.CodeDiceInvalidTree, "invalid dice tree")
	// ErrUnsupportedNode indicates a node kind the interpreter does not know.
	ErrUnsupportedNode = apperrors.New(apperrors.CodeDiceUnsupportedNode, "unsupported node kind")
	// ErrUnknownFunction indicates a Function node names no registered function.
	ErrUnknownFunction = apperrors.New(apperrors.CodeDiceUnknownFunction, "unknown function")
	// ErrArithmetic indicates an undefined real-number operation.
	ErrArithmetic = apperrors.New(apperrors.CodeDiceArithmetic, "undefined arithmetic")
	// ErrDiceLimit indicates a pool asked for more dice than allowed.
	ErrDiceLimit = apperrors.New(apperrors.CodeDiceLimitExceeded, "too many dice")
)

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

func unknownFunction(name string) error {
	return apperrors.WithMetadata(
		apperrors.CodeDiceUnknownFunction,
		strconv.Quote(name)+" is not a function",
		map[string]string{"name": name},
	)
}

func arithmetic(reason string) error {
	return apperrors.WithMetadata(
		apperrors.CodeDiceArithmetic,
		reason,
		map[string]string{"reason": reason},
	)
}

func diceLimit(count float64, limit int) error {
	countText := strconv.FormatFloat(count, 'f', -1, 64)
	return apperrors.WithMetadata(
		apperrors.CodeDiceLimitExceeded,
		"cannot roll "+countText+" dice, limit is "+strconv.Itoa(limit),
		map[string]string{"count": countText, "limit": strconv.Itoa(limit)},
	)
}

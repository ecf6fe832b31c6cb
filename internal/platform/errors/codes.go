// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Tree errors
	CodeDiceInvalidTree     Code = "DICE_INVALID_TREE"
	CodeDiceUnsupportedNode Code = "DICE_UNSUPPORTED_NODE"

	// Evaluation errors
	CodeDiceUnknownFunction Code = "DICE_UNKNOWN_FUNCTION"
	CodeDiceArithmetic      Code = "DICE_ARITHMETIC"
	CodeDiceLimitExceeded   Code = "DICE_LIMIT_EXCEEDED"

	// Notation errors
	CodeDiceSyntax          Code = "DICE_SYNTAX"
	CodeDiceEmptyExpression Code = "DICE_EMPTY_EXPRESSION"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed expressions or trees
	case CodeDiceInvalidTree,
		CodeDiceUnsupportedNode,
		CodeDiceUnknownFunction,
		CodeDiceArithmetic,
		CodeDiceSyntax,
		CodeDiceEmptyExpression:
		return codes.InvalidArgument

	// ResourceExhausted - request asks for more work than allowed
	case CodeDiceLimitExceeded:
		return codes.ResourceExhausted

	// Unavailable - entropy could not be read
	case CodeSeedUnavailable:
		return codes.Unavailable

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}

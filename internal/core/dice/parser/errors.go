package parser

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
)

var (
	// ErrSyntax indicates the text is not valid dice notation.
	ErrSyntax = apperrors.New(apperrors.CodeDiceSyntax, "invalid dice notation")
	// ErrEmptyExpression indicates the text holds nothing but whitespace.
	ErrEmptyExpression = apperrors.New(apperrors.CodeDiceEmptyExpression, "empty dice expression")
)

// syntaxError reports a problem at the 1-based column pos.
func syntaxError(pos int, format string, args ...any) error {
	column := strconv.Itoa(pos + 1)
	return apperrors.WithMetadata(
		apperrors.CodeDiceSyntax,
		fmt.Sprintf(format, args...)+" at position "+column,
		map[string]string{"position": column},
	)
}

package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown             = "UNKNOWN"
	CodeDiceInvalidTree     = "DICE_INVALID_TREE"
	CodeDiceUnsupportedNode = "DICE_UNSUPPORTED_NODE"
	CodeDiceUnknownFunction = "DICE_UNKNOWN_FUNCTION"
	CodeDiceArithmetic      = "DICE_ARITHMETIC"
	CodeDiceLimitExceeded   = "DICE_LIMIT_EXCEEDED"
	CodeDiceSyntax          = "DICE_SYNTAX"
	CodeDiceEmptyExpression = "DICE_EMPTY_EXPRESSION"
	CodeSeedUnavailable     = "SEED_UNAVAILABLE"
	CodeNotFound            = "NOT_FOUND"
)

var enUSMessages = map[Code]string{
	CodeUnknown: "An unexpected error occurred",

	// Tree errors
	CodeDiceInvalidTree:     "The expression is malformed near {{.kind}}",
	CodeDiceUnsupportedNode: "The expression contains an unsupported element",

	// Evaluation errors
	CodeDiceUnknownFunction: "Unknown function {{.name}}",
	CodeDiceArithmetic:      "The expression cannot be computed: {{.reason}}",
	CodeDiceLimitExceeded:   "Cannot roll {{.count}} dice at once (limit {{.limit}})",

	// Notation errors
	CodeDiceSyntax:          "Invalid dice notation at position {{.position}}",
	CodeDiceEmptyExpression: "A dice expression is required",

	CodeSeedUnavailable: "Dice could not be rolled right now, please retry",
	CodeNotFound:        "Roll not found",
}

var ptBRMessages = map[Code]string{
	CodeUnknown: "Ocorreu um erro inesperado",

	CodeDiceInvalidTree:     "A expressão está malformada perto de {{.kind}}",
	CodeDiceUnsupportedNode: "A expressão contém um elemento não suportado",

	CodeDiceUnknownFunction: "Função desconhecida {{.name}}",
	CodeDiceArithmetic:      "A expressão não pode ser calculada: {{.reason}}",
	CodeDiceLimitExceeded:   "Não é possível rolar {{.count}} dados de uma vez (limite {{.limit}})",

	CodeDiceSyntax:          "Notação de dados inválida na posição {{.position}}",
	CodeDiceEmptyExpression: "Uma expressão de dados é obrigatória",

	CodeSeedUnavailable: "Não foi possível rolar os dados agora, tente novamente",
	CodeNotFound:        "Rolagem não encontrada",
}

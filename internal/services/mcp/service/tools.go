package service

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/dicenotation/internal/core/dice/generator"
	"github.com/louisbranch/dicenotation/internal/core/dice/parser"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/services/roll"
)

// RollDiceInput represents the MCP tool input for rolling dice.
type RollDiceInput struct {
	Expression string `json:"expression" jsonschema:"dice notation to roll, e.g. 4d6kh3+2"`
	Seed       *int64 `json:"seed,omitempty" jsonschema:"optional seed to replay a roll"`
}

// RollDiceResult represents the MCP tool output for a roll.
type RollDiceResult struct {
	ID         string  `json:"id" jsonschema:"identifier of the roll"`
	Expression string  `json:"expression" jsonschema:"canonical notation of the expression"`
	Detail     string  `json:"detail" jsonschema:"notation with each die replaced by its outcome; dropped dice are prefixed by ~"`
	Total      float64 `json:"total" jsonschema:"value of the expression"`
	Seed       int64   `json:"seed" jsonschema:"seed that reproduces the roll"`
	SeedSource string  `json:"seed_source" jsonschema:"client when the seed was supplied, server otherwise"`
}

// NotationInput represents the MCP tool input for normalizing notation.
type NotationInput struct {
	Expression string `json:"expression" jsonschema:"dice notation to normalize"`
}

// NotationResult represents the MCP tool output for normalized notation.
type NotationResult struct {
	Expression string `json:"expression" jsonschema:"canonical notation of the expression"`
}

// HistoryInput represents the MCP tool input for listing rolls.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of rolls to return"`
}

// HistoryResult represents the MCP tool output for listing rolls.
type HistoryResult struct {
	Rolls []RollDiceResult `json:"rolls" jsonschema:"recorded rolls, newest first"`
}

// ReplayInput represents the MCP tool input for replaying a roll.
type ReplayInput struct {
	ID string `json:"id" jsonschema:"identifier of a recorded roll"`
}

// RollDiceTool defines the MCP tool schema for rolling dice.
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls a dice notation expression such as 2d6+3, 4d6kh3 or 4dF",
	}
}

// NotationTool defines the MCP tool schema for canonical notation.
func NotationTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_notation",
		Description: "Validates a dice expression and returns its canonical notation without rolling",
	}
}

// HistoryTool defines the MCP tool schema for roll history.
func HistoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_history",
		Description: "Lists recorded rolls, newest first",
	}
}

// ReplayTool defines the MCP tool schema for replaying a roll.
func ReplayTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_replay",
		Description: "Re-evaluates a recorded roll from its seed",
	}
}

// RollDiceHandler executes a roll.
func RollDiceHandler(rolls *roll.Service, locale string) mcp.ToolHandlerFor[RollDiceInput, RollDiceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		result, err := rolls.Roll(ctx, roll.Request{Expression: input.Expression, Seed: input.Seed})
		if err != nil {
			return toolError(err, locale), RollDiceResult{}, nil
		}
		return nil, toRollDiceResult(result), nil
	}
}

// NotationHandler parses and re-renders an expression.
func NotationHandler(locale string) mcp.ToolHandlerFor[NotationInput, NotationResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input NotationInput) (*mcp.CallToolResult, NotationResult, error) {
		tree, err := parser.Parse(input.Expression)
		if err != nil {
			return toolError(err, locale), NotationResult{}, nil
		}
		expression, err := generator.Generate(tree)
		if err != nil {
			return toolError(err, locale), NotationResult{}, nil
		}
		return nil, NotationResult{Expression: expression}, nil
	}
}

// HistoryHandler lists recorded rolls.
func HistoryHandler(rolls *roll.Service, locale string) mcp.ToolHandlerFor[HistoryInput, HistoryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryResult, error) {
		history, err := rolls.History(ctx, input.Limit)
		if err != nil {
			return toolError(err, locale), HistoryResult{Rolls: []RollDiceResult{}}, nil
		}
		out := HistoryResult{Rolls: make([]RollDiceResult, 0, len(history))}
		for _, result := range history {
			out.Rolls = append(out.Rolls, toRollDiceResult(result))
		}
		return nil, out, nil
	}
}

// ReplayHandler replays a recorded roll.
func ReplayHandler(rolls *roll.Service, locale string) mcp.ToolHandlerFor[ReplayInput, RollDiceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ReplayInput) (*mcp.CallToolResult, RollDiceResult, error) {
		result, err := rolls.Replay(ctx, input.ID)
		if err != nil {
			return toolError(err, locale), RollDiceResult{}, nil
		}
		return nil, toRollDiceResult(result), nil
	}
}

func toRollDiceResult(result roll.Result) RollDiceResult {
	return RollDiceResult{
		ID:         result.ID,
		Expression: result.Expression,
		Detail:     result.Detail,
		Total:      result.Total,
		Seed:       result.Seed,
		SeedSource: result.SeedSource,
	}
}

// toolError renders err as an MCP error result. The text comes from the
// localized status details: the user-facing message followed by the code.
func toolError(err error, locale string) *mcp.CallToolResult {
	st := status.Convert(apperrors.LocalizedStatus(err, locale))
	message := st.Message()
	reason := string(apperrors.CodeUnknown)
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.LocalizedMessage:
			message = d.GetMessage()
		case *errdetails.ErrorInfo:
			reason = d.GetReason()
		}
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message + " [" + reason + "]"}},
	}
}

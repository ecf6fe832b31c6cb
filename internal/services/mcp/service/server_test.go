package service

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicenotation/internal/core/dice/random"
	"github.com/louisbranch/dicenotation/internal/services/roll"
	"github.com/louisbranch/dicenotation/internal/services/roll/storage"
	"github.com/louisbranch/dicenotation/internal/services/roll/storage/sqlite"
)

func newRollService(t *testing.T) *roll.Service {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "rolls.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return roll.NewService(
		roll.WithRecorder(store),
		roll.WithSeedGenerator(func() (int64, error) { return 1234, nil }),
	)
}

// connect serves a server over in-memory transports and returns a connected
// client session. The server stops when the test ends.
func connect(t *testing.T, rolls *roll.Service, opts ...Option) *mcp.ClientSession {
	t.Helper()
	server, err := NewServer(rolls, opts...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() { serveErr <- Run(ctx, server, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-serveErr:
			if err != nil {
				t.Errorf("run returned error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("run did not stop after cancel")
		}
		_ = session.Close()
	})
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return res
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	var out T
	if res.IsError {
		t.Fatalf("tool returned error: %s", errorText(res))
	}
	data, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	return out
}

func errorText(res *mcp.CallToolResult) string {
	var parts []string
	for _, content := range res.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestToolsAreListed(t *testing.T) {
	session := connect(t, newRollService(t))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	list, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make(map[string]bool)
	for _, tool := range list.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"roll_dice", "dice_notation", "roll_history", "roll_replay"} {
		if !names[want] {
			t.Fatalf("expected tool %s in %v", want, names)
		}
	}
}

func TestRollDiceWithSeed(t *testing.T) {
	session := connect(t, newRollService(t))

	got := decode[RollDiceResult](t, callTool(t, session, "roll_dice", map[string]any{
		"expression": "2d6 + 1",
		"seed":       42,
	}))

	src := random.New(42)
	first, second := src.RollDie(6), src.RollDie(6)
	if got.Expression != "2d6+1" {
		t.Fatalf("expression = %q, want %q", got.Expression, "2d6+1")
	}
	if want := float64(first + second + 1); got.Total != want {
		t.Fatalf("total = %v, want %v", got.Total, want)
	}
	if got.Seed != 42 || got.SeedSource != roll.SeedSourceClient {
		t.Fatalf("seed = %d (%s), want 42 (%s)", got.Seed, got.SeedSource, roll.SeedSourceClient)
	}
	if got.ID == "" {
		t.Fatal("expected roll id")
	}
}

func TestRollDiceWithoutSeed(t *testing.T) {
	session := connect(t, newRollService(t))
	got := decode[RollDiceResult](t, callTool(t, session, "roll_dice", map[string]any{"expression": "4d6kh3"}))
	if got.Seed != 1234 || got.SeedSource != roll.SeedSourceServer {
		t.Fatalf("seed = %d (%s), want 1234 (%s)", got.Seed, got.SeedSource, roll.SeedSourceServer)
	}
	if strings.Count(got.Detail, "~") != 1 {
		t.Fatalf("detail %q should mark one dropped die", got.Detail)
	}
}

func TestRollDiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		locale     string
		want       string
	}{
		{"syntax", "2d", "", "Invalid dice notation at position 3 [DICE_SYNTAX]"},
		{"empty", "", "", "A dice expression is required [DICE_EMPTY_EXPRESSION]"},
		{"unknown function", "boom(1)", "", "Unknown function boom [DICE_UNKNOWN_FUNCTION]"},
		{"localized", "2d", "pt-BR", "Notação de dados inválida na posição 3 [DICE_SYNTAX]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := connect(t, newRollService(t), WithLocale(tt.locale))
			res := callTool(t, session, "roll_dice", map[string]any{"expression": tt.expression})
			if !res.IsError {
				t.Fatal("expected tool error")
			}
			if got := errorText(res); got != tt.want {
				t.Fatalf("error text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiceNotation(t *testing.T) {
	session := connect(t, newRollService(t))
	tests := []struct {
		expression string
		want       string
	}{
		{"d20", "1d20"},
		{" 4D6KH3 ", "4d6kh3"},
		{"((1+2))d6", "(1+2)d6"},
		{"4d6kh1", "4d6kh"},
	}
	for _, tt := range tests {
		got := decode[NotationResult](t, callTool(t, session, "dice_notation", map[string]any{"expression": tt.expression}))
		if got.Expression != tt.want {
			t.Fatalf("dice_notation(%q) = %q, want %q", tt.expression, got.Expression, tt.want)
		}
	}

	res := callTool(t, session, "dice_notation", map[string]any{"expression": "2d6k"})
	if !res.IsError {
		t.Fatal("expected tool error for invalid notation")
	}
}

func TestHistoryAndReplay(t *testing.T) {
	session := connect(t, newRollService(t))

	first := decode[RollDiceResult](t, callTool(t, session, "roll_dice", map[string]any{"expression": "1d20", "seed": 1}))
	second := decode[RollDiceResult](t, callTool(t, session, "roll_dice", map[string]any{"expression": "3d6km", "seed": 2}))

	history := decode[HistoryResult](t, callTool(t, session, "roll_history", map[string]any{"limit": 10}))
	if len(history.Rolls) != 2 {
		t.Fatalf("expected 2 rolls, got %d", len(history.Rolls))
	}
	if history.Rolls[0].ID != second.ID || history.Rolls[1].ID != first.ID {
		t.Fatalf("history order = %s, %s, want %s, %s", history.Rolls[0].ID, history.Rolls[1].ID, second.ID, first.ID)
	}

	replayed := decode[RollDiceResult](t, callTool(t, session, "roll_replay", map[string]any{"id": second.ID}))
	if replayed != second {
		t.Fatalf("replay = %+v, want %+v", replayed, second)
	}

	res := callTool(t, session, "roll_replay", map[string]any{"id": "missing"})
	if !res.IsError || !strings.Contains(errorText(res), "[NOT_FOUND]") {
		t.Fatalf("expected not found tool error, got %q", errorText(res))
	}
}

func TestNewServerRequiresService(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Fatal("expected error for nil roll service")
	}
}

func TestRunRequiresServerAndTransport(t *testing.T) {
	if err := Run(context.Background(), nil, &mcp.StdioTransport{}); err == nil {
		t.Fatal("expected error for nil server")
	}
	server, err := NewServer(roll.NewService())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := Run(context.Background(), server, nil); err == nil {
		t.Fatal("expected error for nil transport")
	}
}

func TestTransportFor(t *testing.T) {
	for _, name := range []string{"", TransportStdio} {
		transport, err := TransportFor(name)
		if err != nil {
			t.Fatalf("TransportFor(%q): %v", name, err)
		}
		if _, ok := transport.(*mcp.StdioTransport); !ok {
			t.Fatalf("TransportFor(%q) = %T, want *mcp.StdioTransport", name, transport)
		}
	}
	if _, err := TransportFor("websocket"); err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected unsupported transport error, got %v", err)
	}
}

func TestToolErrorUsesStatusDetails(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		locale string
		want   string
	}{
		{"coded", storage.ErrNotFound, "en-US", "Roll not found [NOT_FOUND]"},
		{"coded localized", storage.ErrNotFound, "pt-BR", "Rolagem não encontrada [NOT_FOUND]"},
		{"uncoded", errors.New("disk on fire"), "en-US", "An unexpected error occurred [UNKNOWN]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := toolError(tt.err, tt.locale)
			if !res.IsError {
				t.Fatal("expected error result")
			}
			if got := errorText(res); got != tt.want {
				t.Fatalf("error text = %q, want %q", got, tt.want)
			}
		})
	}
}

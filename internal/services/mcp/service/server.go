package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicenotation/internal/services/roll"
)

const (
	serverName    = "dicenotation"
	serverVersion = "0.1.0"
)

// Transport names accepted by the MCP command.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Server wraps an MCP server with the dice tools registered.
type Server struct {
	mcpServer *mcp.Server
}

// Option configures a Server.
type Option func(*options)

type options struct {
	locale string
}

// WithLocale renders tool error messages in locale.
func WithLocale(locale string) Option {
	return func(o *options) { o.locale = locale }
}

// NewServer registers the dice tools backed by rolls.
func NewServer(rolls *roll.Service, opts ...Option) (*Server, error) {
	if rolls == nil {
		return nil, fmt.Errorf("roll service is required")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, RollDiceTool(), RollDiceHandler(rolls, o.locale))
	mcp.AddTool(mcpServer, NotationTool(), NotationHandler(o.locale))
	mcp.AddTool(mcpServer, HistoryTool(), HistoryHandler(rolls, o.locale))
	mcp.AddTool(mcpServer, ReplayTool(), ReplayHandler(rolls, o.locale))
	return &Server{mcpServer: mcpServer}, nil
}

// Run serves server over transport and blocks until the client disconnects
// or ctx is canceled. Cancellation is not an error.
func Run(ctx context.Context, server *Server, transport mcp.Transport) error {
	if server == nil || server.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if transport == nil {
		return fmt.Errorf("MCP transport is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := server.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// TransportFor returns the stream transport named by name. The HTTP
// transport is served by HTTPServer instead.
func TransportFor(name string) (mcp.Transport, error) {
	switch name {
	case "", TransportStdio:
		return &mcp.StdioTransport{}, nil
	default:
		return nil, fmt.Errorf("transport %q is not supported", name)
	}
}

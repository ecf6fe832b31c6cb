// Package mcp parses MCP command configuration and serves the dice tools.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"

	modelmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicenotation/internal/core/dice/interpreter"
	"github.com/louisbranch/dicenotation/internal/platform/cmd"
	mcpservice "github.com/louisbranch/dicenotation/internal/services/mcp/service"
	"github.com/louisbranch/dicenotation/internal/services/roll"
	"github.com/louisbranch/dicenotation/internal/services/roll/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	HistoryPath string `env:"DICE_HISTORY_PATH"`
	MaxDice     int    `env:"DICE_MAX_DICE"      envDefault:"10000"`
	Transport   string `env:"DICE_MCP_TRANSPORT" envDefault:"stdio"`
	Locale      string `env:"DICE_LOCALE"        envDefault:"en-US"`

	HTTPAddr     string   `env:"DICE_MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	AllowedHosts []string `env:"DICE_MCP_ALLOWED_HOSTS" envSeparator:","`
}

// ParseConfig parses environment and flags into a Config. A nil environ
// reads the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfigFromArgs(&cfg, fs, args, environ, bindFlags); err != nil {
		return Config{}, err
	}
	if cfg.MaxDice <= 0 {
		return Config{}, fmt.Errorf("max dice must be greater than zero")
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite roll history path (empty to disable)")
	fs.IntVar(&cfg.MaxDice, "max-dice", cfg.MaxDice, "maximum dice a single pool may roll")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio, http")
	fs.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "listen address for the http transport")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for tool error messages")
}

// Run serves the MCP tools over the configured transport until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	run, err := runnerFor(cfg)
	if err != nil {
		return err
	}
	return cmd.RunWithTelemetry(ctx, cmd.ServiceMCP, func(ctx context.Context) error {
		return serve(ctx, cfg, run)
	})
}

// runner serves a configured MCP server until ctx is done.
type runner func(context.Context, *mcpservice.Server) error

func runnerFor(cfg Config) (runner, error) {
	if cfg.Transport == mcpservice.TransportHTTP {
		return func(ctx context.Context, server *mcpservice.Server) error {
			httpServer, err := mcpservice.NewHTTPServer(server, cfg.HTTPAddr, cfg.AllowedHosts)
			if err != nil {
				return err
			}
			return httpServer.Serve(ctx)
		}, nil
	}
	transport, err := mcpservice.TransportFor(cfg.Transport)
	if err != nil {
		return nil, err
	}
	return streamRunner(transport), nil
}

func streamRunner(transport modelmcp.Transport) runner {
	return func(ctx context.Context, server *mcpservice.Server) error {
		return mcpservice.Run(ctx, server, transport)
	}
}

func serve(ctx context.Context, cfg Config, run runner) error {
	opts := []roll.Option{
		roll.WithInterpreter(interpreter.New(interpreter.WithMaxDice(cfg.MaxDice))),
	}
	if cfg.HistoryPath != "" {
		store, err := sqlite.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("open roll history: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close roll history: %v", err)
			}
		}()
		opts = append(opts, roll.WithRecorder(store))
	}

	server, err := mcpservice.NewServer(roll.NewService(opts...), mcpservice.WithLocale(cfg.Locale))
	if err != nil {
		return err
	}
	log.Printf("serving dice tools over %s", cfg.Transport)
	return run(ctx, server)
}

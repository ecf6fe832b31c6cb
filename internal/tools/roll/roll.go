// Package roll implements the dice CLI: roll expressions, list the recorded
// history and replay a recorded roll.
package roll

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/louisbranch/dicenotation/internal/core/dice/interpreter"
	"github.com/louisbranch/dicenotation/internal/platform/cmd"
	rollservice "github.com/louisbranch/dicenotation/internal/services/roll"
	"github.com/louisbranch/dicenotation/internal/services/roll/storage/sqlite"
)

// Config holds CLI configuration.
type Config struct {
	HistoryPath string `env:"DICE_HISTORY_PATH"`
	MaxDice     int    `env:"DICE_MAX_DICE" envDefault:"10000"`
	Locale      string `env:"DICE_LOCALE"   envDefault:"en-US"`

	// Seed replays every expression with the same seed when set.
	Seed *int64
	// List prints up to List recorded rolls instead of rolling.
	List int
	// Replay re-evaluates the recorded roll with this ID.
	Replay string
	// JSON prints one JSON object per result.
	JSON bool

	Expressions []string
}

// ParseConfig parses environment and flags into a Config. Positional
// arguments are expressions. A nil environ reads the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfigFromArgs(&cfg, fs, args, environ, bindFlags); err != nil {
		return Config{}, err
	}
	cfg.Expressions = fs.Args()

	if cfg.MaxDice <= 0 {
		return Config{}, errors.New("max dice must be greater than zero")
	}
	if cfg.List < 0 {
		return Config{}, errors.New("list must not be negative")
	}
	modes := 0
	for _, set := range []bool{len(cfg.Expressions) > 0, cfg.List > 0, cfg.Replay != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return Config{}, errors.New("give expressions to roll, -list or -replay")
	}
	if (cfg.List > 0 || cfg.Replay != "") && cfg.HistoryPath == "" {
		return Config{}, errors.New("-list and -replay need a history path")
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite roll history path (empty to disable)")
	fs.IntVar(&cfg.MaxDice, "max-dice", cfg.MaxDice, "maximum dice a single pool may roll")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.Func("seed", "seed to reproduce a roll", func(value string) error {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("seed must be an integer: %w", err)
		}
		cfg.Seed = &seed
		return nil
	})
	fs.IntVar(&cfg.List, "list", 0, "print the N most recent rolls")
	fs.StringVar(&cfg.Replay, "replay", "", "replay the recorded roll with this id")
	fs.BoolVar(&cfg.JSON, "json", false, "print results as JSON")
}

// Run executes cfg, writing results to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	return cmd.RunWithTelemetry(ctx, cmd.ServiceRoll, func(ctx context.Context) error {
		svc, closeStore, err := newService(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		switch {
		case cfg.List > 0:
			history, err := svc.History(ctx, cfg.List)
			if err != nil {
				return err
			}
			for _, result := range history {
				if err := write(out, cfg, result); err != nil {
					return err
				}
			}
			return nil
		case cfg.Replay != "":
			result, err := svc.Replay(ctx, cfg.Replay)
			if err != nil {
				return err
			}
			return write(out, cfg, result)
		default:
			for _, expression := range cfg.Expressions {
				result, err := svc.Roll(ctx, rollservice.Request{Expression: expression, Seed: cfg.Seed})
				if err != nil {
					return fmt.Errorf("%s: %w", expression, err)
				}
				if err := write(out, cfg, result); err != nil {
					return err
				}
			}
			return nil
		}
	})
}

func newService(cfg Config) (*rollservice.Service, func(), error) {
	opts := []rollservice.Option{
		rollservice.WithInterpreter(interpreter.New(interpreter.WithMaxDice(cfg.MaxDice))),
	}
	closeStore := func() {}
	if cfg.HistoryPath != "" {
		store, err := sqlite.Open(cfg.HistoryPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open roll history: %w", err)
		}
		closeStore = func() { _ = store.Close() }
		opts = append(opts, rollservice.WithRecorder(store))
	}
	return rollservice.NewService(opts...), closeStore, nil
}

type jsonResult struct {
	ID         string  `json:"id"`
	Expression string  `json:"expression"`
	Detail     string  `json:"detail"`
	Total      float64 `json:"total"`
	Seed       int64   `json:"seed"`
	SeedSource string  `json:"seed_source"`
	RolledAt   string  `json:"rolled_at"`
}

func write(out io.Writer, cfg Config, result rollservice.Result) error {
	if cfg.JSON {
		return json.NewEncoder(out).Encode(jsonResult{
			ID:         result.ID,
			Expression: result.Expression,
			Detail:     result.Detail,
			Total:      result.Total,
			Seed:       result.Seed,
			SeedSource: result.SeedSource,
			RolledAt:   result.RolledAt.UTC().Format(time.RFC3339Nano),
		})
	}
	_, err := fmt.Fprintf(out, "%s: %s = %s (seed %d, id %s)\n",
		result.Expression,
		result.Detail,
		rollservice.FormatTotal(result.Total),
		result.Seed,
		result.ID,
	)
	return err
}

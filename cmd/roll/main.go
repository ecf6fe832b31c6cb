package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/dicenotation/internal/platform/config"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
	"github.com/louisbranch/dicenotation/internal/tools/roll"
)

// main rolls the dice expressions given as arguments.
func main() {
	cfg, err := roll.ParseConfig(flag.CommandLine, os.Args[1:], nil)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		config.Usagef("roll: %v", err)
	}
	log.SetPrefix("[ROLL] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := roll.Run(ctx, cfg, os.Stdout); err != nil {
		log.Printf("%v", err)
		config.Exitf("roll: %s", apperrors.LocalizedMessage(err, cfg.Locale))
	}
}

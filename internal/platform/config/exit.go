package config

import (
	"fmt"
	"os"
)

// Exit codes used by CLI entry points.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// Exitf writes a formatted error message to stderr and exits with
// ExitFailure.
func Exitf(format string, args ...any) {
	exitf(ExitFailure, format, args...)
}

// Usagef writes a formatted message to stderr and exits with ExitUsage, for
// invalid flags or arguments.
func Usagef(format string, args ...any) {
	exitf(ExitUsage, format, args...)
}

func exitf(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

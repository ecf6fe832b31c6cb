// Package random provides the die-rolling capability used by the dice
// interpreter.
//
// Production code rolls with a *Rand seeded from crypto/rand. Tests and replay
// use Fixed or Sequence, which ignore the number of sides and return scripted
// values so evaluation is reproducible.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

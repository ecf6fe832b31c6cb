package random

import "sync"

// Fixed is a Source that returns the same value for every roll, whatever the
// number of sides.
type Fixed int

// RollDie returns int(f).
func (f Fixed) RollDie(int) int { return int(f) }

// RollFateDie returns int(f).
func (f Fixed) RollFateDie() int { return int(f) }

// Sequence is a Source that returns scripted values in order, wrapping around
// when it runs out. Dice and Fate rolls share the same script.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
	calls  int
}

// NewSequence returns a Sequence over values. An empty script rolls zeros.
func NewSequence(values ...int) *Sequence {
	cloned := make([]int, len(values))
	copy(cloned, values)
	return &Sequence{values: cloned}
}

// RollDie returns the next scripted value.
func (s *Sequence) RollDie(int) int { return s.take() }

// RollFateDie returns the next scripted value.
func (s *Sequence) RollFateDie() int { return s.take() }

// Calls returns how many rolls have been taken.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Sequence) take() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.values) == 0 {
		return 0
	}
	value := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return value
}

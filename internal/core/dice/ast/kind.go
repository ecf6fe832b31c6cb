package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	KindUnspecified Kind = iota
	KindInteger
	KindAdd
	KindSubtract
	KindMultiply
	KindDivide
	KindExponent
	KindModulo
	KindNegate
	KindFunction
	KindDice
	KindDiceSides
	KindDiceRoll
	KindKeep
)

var kindNames = [...]string{
	KindUnspecified: "Unspecified",
	KindInteger:     "Integer",
	KindAdd:         "Add",
	KindSubtract:    "Subtract",
	KindMultiply:    "Multiply",
	KindDivide:      "Divide",
	KindExponent:    "Exponent",
	KindModulo:      "Modulo",
	KindNegate:      "Negate",
	KindFunction:    "Function",
	KindDice:        "Dice",
	KindDiceSides:   "DiceSides",
	KindDiceRoll:    "DiceRoll",
	KindKeep:        "Keep",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsBinary reports whether k is one of the two-operand arithmetic kinds.
func (k Kind) IsBinary() bool {
	switch k {
	case KindAdd, KindSubtract, KindMultiply, KindDivide, KindExponent, KindModulo:
		return true
	default:
		return false
	}
}

// KeepMode selects which rolls a Keep node retains.
type KeepMode int

const (
	KeepUnspecified KeepMode = iota
	KeepHighest
	KeepLowest
	KeepMiddle
)

func (m KeepMode) String() string {
	switch m {
	case KeepHighest:
		return "highest"
	case KeepLowest:
		return "lowest"
	case KeepMiddle:
		return "middle"
	default:
		return "unspecified"
	}
}

// Letter returns the notation letter for m ("h", "l" or "m"), or "" when m is
// unspecified.
func (m KeepMode) Letter() string {
	switch m {
	case KeepHighest:
		return "h"
	case KeepLowest:
		return "l"
	case KeepMiddle:
		return "m"
	default:
		return ""
	}
}

// ParseKeepMode accepts the long names and the notation letters.
func ParseKeepMode(value string) (KeepMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "highest", "h":
		return KeepHighest, nil
	case "lowest", "l":
		return KeepLowest, nil
	case "middle", "m":
		return KeepMiddle, nil
	default:
		return KeepUnspecified, fmt.Errorf("unknown keep type %q", value)
	}
}

// Sides is the face set of a die: a positive number of faces, or a Fate die
// with outcomes -1, 0 and +1. The zero value is invalid.
type Sides struct {
	faces int
	fate  bool
}

// Fate is the Fudge/Fate die.
var Fate = Sides{fate: true}

// Faces returns a conventional die with n faces.
func Faces(n int) Sides {
	return Sides{faces: n}
}

// ParseSides accepts a decimal face count or the "fate"/"F" marker.
func ParseSides(value string) (Sides, error) {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, "fate") || strings.EqualFold(trimmed, "f") {
		return Fate, nil
	}
	if trimmed == "%" {
		return Faces(100), nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return Sides{}, fmt.Errorf("invalid dice sides %q", value)
	}
	return Faces(n), nil
}

// IsFate reports whether s is a Fate die.
func (s Sides) IsFate() bool { return s.fate }

// Faces returns the face count of a conventional die, 0 for Fate dice.
func (s Sides) Faces() int { return s.faces }

// Valid reports whether s describes a die that can be rolled.
func (s Sides) Valid() bool { return s.fate || s.faces > 0 }

// String renders s the way notation writes it: "6" or "F".
func (s Sides) String() string {
	if s.fate {
		return "F"
	}
	return strconv.Itoa(s.faces)
}

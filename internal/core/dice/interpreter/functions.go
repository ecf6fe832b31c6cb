package interpreter

import (
	"math"
	"strings"
)

// Func is a single-argument numeric function callable from notation.
type Func func(float64) (float64, error)

func builtinFunctions() map[string]Func {
	return map[string]Func{
		"floor": pure(math.Floor),
		"ceil":  pure(math.Ceil),
		"round": pure(math.Round),
		"trunc": pure(math.Trunc),
		"abs":   pure(math.Abs),
		"sqrt": func(x float64) (float64, error) {
			if x < 0 {
				return 0, arithmetic("square root of a negative number")
			}
			return math.Sqrt(x), nil
		},
	}
}

func pure(fn func(float64) float64) Func {
	return func(x float64) (float64, error) {
		return fn(x), nil
	}
}

func functionKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package parser

import (
	"errors"
	"testing"

	"github.com/louisbranch/dicenotation/internal/core/dice/ast"
	"github.com/louisbranch/dicenotation/internal/core/dice/generator"
	"github.com/louisbranch/dicenotation/internal/core/dice/interpreter"
	"github.com/louisbranch/dicenotation/internal/core/dice/random"
	apperrors "github.com/louisbranch/dicenotation/internal/platform/errors"
)

func num(v int) *ast.Node { return ast.Integer(v) }

func d(count *ast.Node, faces int) *ast.Node { return ast.Dice(count, ast.Faces(faces)) }

func bin(kind ast.Kind, l, r *ast.Node) *ast.Node { return ast.Binary(kind, l, r) }

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want *ast.Node
	}{
		{"42", num(42)},
		{"2d6", d(num(2), 6)},
		{"d20", d(num(1), 20)},
		{"4dF", ast.Dice(num(4), ast.Fate)},
		{"d%", d(num(1), 100)},
		{"2D6", d(num(2), 6)},
		{" 2 d 6 + 4 ", bin(ast.KindAdd, d(num(2), 6), num(4))},
		{"2d6+4", bin(ast.KindAdd, d(num(2), 6), num(4))},
		{"1+2*3", bin(ast.KindAdd, num(1), bin(ast.KindMultiply, num(2), num(3)))},
		{"(1+2)*3", bin(ast.KindMultiply, bin(ast.KindAdd, num(1), num(2)), num(3))},
		{"10-2-1", bin(ast.KindSubtract, bin(ast.KindSubtract, num(10), num(2)), num(1))},
		{"10%3", bin(ast.KindModulo, num(10), num(3))},
		{"8/2", bin(ast.KindDivide, num(8), num(2))},
		{"2^3^2", bin(ast.KindExponent, num(2), bin(ast.KindExponent, num(3), num(2)))},
		{"-2^2", ast.Negate(bin(ast.KindExponent, num(2), num(2)))},
		{"2^-1", bin(ast.KindExponent, num(2), ast.Negate(num(1)))},
		{"--3", ast.Negate(ast.Negate(num(3)))},
		{"2*-3", bin(ast.KindMultiply, num(2), ast.Negate(num(3)))},
		{"(1+2)d6", d(bin(ast.KindAdd, num(1), num(2)), 6)},
		{"1d4d6", d(d(num(1), 4), 6)},
		{"-d6", ast.Negate(d(num(1), 6))},
		{"floor(5/2)", ast.Function("floor", bin(ast.KindDivide, num(5), num(2)))},
		{"floor (3)d6", d(ast.Function("floor", num(3)), 6)},
		{"double(3)", ast.Function("double", num(3))},
		{"2d6kh", ast.Keep(ast.KeepHighest, d(num(2), 6), num(1))},
		{"2d6kl", ast.Keep(ast.KeepLowest, d(num(2), 6), num(1))},
		{"3d6km", ast.Keep(ast.KeepMiddle, d(num(3), 6), num(1))},
		{"3d6kl2", ast.Keep(ast.KeepLowest, d(num(3), 6), num(2))},
		{"4D6KH3", ast.Keep(ast.KeepHighest, d(num(4), 6), num(3))},
		{"4d6kh(1+2)", ast.Keep(ast.KeepHighest, d(num(4), 6), bin(ast.KindAdd, num(1), num(2)))},
		{"4dFkh(2)", ast.Keep(ast.KeepHighest, ast.Dice(num(4), ast.Fate), num(2))},
		{"4d6kh3-1", bin(ast.KindSubtract, ast.Keep(ast.KeepHighest, d(num(4), 6), num(3)), num(1))},
		{"2d%%3", bin(ast.KindModulo, d(num(2), 100), num(3))},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.text, err)
			}
			if !ast.Equal(got, tt.want) {
				gotText, _ := generator.Generate(got)
				wantText, _ := generator.Generate(tt.want)
				t.Fatalf("Parse(%q) = %s, want %s", tt.text, gotText, wantText)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text     string
		position string
	}{
		{"2d", "3"},
		{"2d0", "3"},
		{"2+", "3"},
		{"(1+2", "5"},
		{"2d6kx", "5"},
		{"2d6kh(1", "8"},
		{"2 3", "3"},
		{"foo", "1"},
		{"floor(2", "8"},
		{"*2", "1"},
		{"99999999999999999999", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.text, err, ErrSyntax)
			}
			var appErr *apperrors.Error
			if !errors.As(err, &appErr) {
				t.Fatalf("Parse(%q) error %T is not *errors.Error", tt.text, err)
			}
			if got := appErr.Metadata["position"]; got != tt.position {
				t.Fatalf("Parse(%q) position = %s, want %s", tt.text, got, tt.position)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := Parse(text); !errors.Is(err, ErrEmptyExpression) {
			t.Fatalf("Parse(%q) error = %v, want %v", text, err, ErrEmptyExpression)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"2d6+4",
		"d20",
		"4d6kh3",
		"4d6kh",
		"4d6kh1",
		"4d6kh(1)",
		"4d6kh(1+1)",
		"3d6km",
		"4dF-1",
		"d%",
		"(1+2)d6",
		"1d4d6",
		"(4d6kh3)d6",
		"2^3^2",
		"(2^3)^2",
		"(-2)^2",
		"-(1+2)",
		"-2^2",
		"10-(2-1)",
		"8/(2*2)",
		"floor(5/2)d6+ceil(3/2)",
		"2 * ( 3 + 4 ) % 5",
	}
	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			first, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", text, err)
			}
			rendered, err := generator.Generate(first)
			if err != nil {
				t.Fatalf("Generate returned error: %v", err)
			}
			second, err := Parse(rendered)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", rendered, err)
			}
			if !ast.Equal(first, second) {
				again, _ := generator.Generate(second)
				t.Fatalf("round trip %q -> %q -> %q changed the tree", text, rendered, again)
			}
		})
	}
}

func TestParseEvaluate(t *testing.T) {
	tests := []struct {
		text string
		src  random.Source
		want float64
	}{
		{"2d6+4", random.Fixed(3), 10},
		{"4d6kh3", random.NewSequence(1, 5, 3, 6), 14},
		{"3d6km", random.NewSequence(2, 6, 4), 4},
		{"4dF", random.NewSequence(-1, 0, 1, 1), 1},
		{"floor(7/2)d4", random.Fixed(2), 6},
		{"2^3^2", nil, 512},
		{"-2^2", nil, -4},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tree, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.text, err)
			}
			got, err := interpreter.Evaluate(tree, tt.src)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Evaluate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

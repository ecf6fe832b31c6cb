// Package parser reads dice notation text into expression trees.
//
// The accepted language is the one the generator writes: integers, the
// operators + - * / % ^, unary minus, parentheses, function calls such as
// floor(x), dice pools NdS (N may be omitted for one die, S may be a number,
// F for Fate dice or % for a hundred faces) and keep modifiers kh, kl and km
// with an optional count. Dice letters are case-insensitive and whitespace is
// ignored.
//
// Omitted counts are made explicit: "d20" parses as 1d20 and "4d6kh" keeps an
// Integer 1, which keeps Parse(Generate(tree)) structurally equal to tree.
package parser

import (
	"strconv"
	"strings"

	"github.com/louisbranch/dicenotation/internal/core/dice/ast"
)

// Parse returns the tree for text.
func Parse(text string) (*ast.Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyExpression
	}
	p := &parser{text: text}
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.atEnd() {
		return nil, syntaxError(p.pos, "unexpected %q", p.text[p.pos])
	}
	return node, nil
}

type parser struct {
	text string
	pos  int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.text) }

func (p *parser) skipSpace() {
	for !p.atEnd() && isSpace(p.text[p.pos]) {
		p.pos++
	}
}

// peek returns the next non-space byte, or 0 at the end of input.
func (p *parser) peek() byte {
	p.skipSpace()
	if p.atEnd() {
		return 0
	}
	return p.text[p.pos]
}

// accept consumes c, ignoring case, when it is the next non-space byte.
func (p *parser) accept(c byte) bool {
	if lower(p.peek()) != c {
		return false
	}
	p.pos++
	return true
}

func (p *parser) expect(c byte) error {
	if p.accept(c) {
		return nil
	}
	return p.unexpected("expected %q", c)
}

func (p *parser) unexpected(format string, args ...any) error {
	if p.peek() == 0 {
		return syntaxError(p.pos, format+", got end of input", args...)
	}
	return syntaxError(p.pos, format+", got %q", append(args, p.text[p.pos])...)
}

// expr := term (("+"|"-") term)*
func (p *parser) expr() (*ast.Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var kind ast.Kind
		switch {
		case p.accept('+'):
			kind = ast.KindAdd
		case p.accept('-'):
			kind = ast.KindSubtract
		default:
			return left, nil
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = ast.Binary(kind, left, right)
	}
}

// term := unary (("*"|"/"|"%") unary)*
func (p *parser) term() (*ast.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var kind ast.Kind
		switch {
		case p.accept('*'):
			kind = ast.KindMultiply
		case p.accept('/'):
			kind = ast.KindDivide
		case p.accept('%'):
			kind = ast.KindModulo
		default:
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = ast.Binary(kind, left, right)
	}
}

// unary := "-" unary | power
func (p *parser) unary() (*ast.Node, error) {
	if p.accept('-') {
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Negate(operand), nil
	}
	return p.power()
}

// power := dice ("^" unary)?
func (p *parser) power() (*ast.Node, error) {
	base, err := p.dice()
	if err != nil {
		return nil, err
	}
	if !p.accept('^') {
		return base, nil
	}
	exponent, err := p.unary()
	if err != nil {
		return nil, err
	}
	return ast.Binary(ast.KindExponent, base, exponent), nil
}

// dice := primary? ("d" sides keep?)*
func (p *parser) dice() (*ast.Node, error) {
	var node *ast.Node
	if !p.startsDice() {
		primary, err := p.primary()
		if err != nil {
			return nil, err
		}
		node = primary
	} else {
		node = ast.Integer(1)
	}

	for lower(p.peek()) == 'd' {
		p.pos++
		sides, err := p.sides()
		if err != nil {
			return nil, err
		}
		node = ast.Dice(node, sides)
		if p.accept('k') {
			if node, err = p.keep(node); err != nil {
				return nil, err
			}
		}
	}
	return node, nil
}

// startsDice reports whether a count-less pool such as "d20" starts at the
// cursor. A "d" followed by anything but sides begins a function name.
func (p *parser) startsDice() bool {
	if lower(p.peek()) != 'd' {
		return false
	}
	next := p.pos + 1
	for next < len(p.text) && isSpace(p.text[next]) {
		next++
	}
	if next == len(p.text) {
		return false
	}
	c := p.text[next]
	return isDigit(c) || lower(c) == 'f' || c == '%'
}

// sides := INT | "F" | "%"
func (p *parser) sides() (ast.Sides, error) {
	switch {
	case p.accept('f'):
		return ast.Fate, nil
	case p.accept('%'):
		return ast.Faces(100), nil
	}
	if !isDigit(p.peek()) {
		return ast.Sides{}, p.unexpected("expected dice sides")
	}
	start := p.pos
	faces, err := p.integer()
	if err != nil {
		return ast.Sides{}, err
	}
	if faces <= 0 {
		return ast.Sides{}, syntaxError(start, "dice sides must be positive")
	}
	return ast.Faces(faces), nil
}

// keep := "k" ("h"|"l"|"m") (INT | "(" expr ")")?
func (p *parser) keep(pool *ast.Node) (*ast.Node, error) {
	var mode ast.KeepMode
	switch {
	case p.accept('h'):
		mode = ast.KeepHighest
	case p.accept('l'):
		mode = ast.KeepLowest
	case p.accept('m'):
		mode = ast.KeepMiddle
	default:
		return nil, p.unexpected("expected h, l or m after k")
	}

	count := ast.Integer(1)
	switch {
	case isDigit(p.peek()):
		value, err := p.integer()
		if err != nil {
			return nil, err
		}
		count = ast.Integer(value)
	case p.accept('('):
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		count = inner
	}
	return ast.Keep(mode, pool, count), nil
}

// primary := INT | NAME "(" expr ")" | "(" expr ")"
func (p *parser) primary() (*ast.Node, error) {
	c := p.peek()
	switch {
	case isDigit(c):
		value, err := p.integer()
		if err != nil {
			return nil, err
		}
		return ast.Integer(value), nil
	case c == '(':
		p.pos++
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return inner, nil
	case isLetter(c):
		start := p.pos
		name, call := p.scanName()
		if !call {
			return nil, syntaxError(start, "unknown name %q", name)
		}
		p.pos += len(name)
		if err := p.expect('('); err != nil {
			return nil, err
		}
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return ast.Function(name, arg), nil
	default:
		return nil, p.unexpected("expected a number, dice, function or \"(\"")
	}
}

// scanName reads the letter run at the cursor without consuming it, and
// reports whether a "(" follows it.
func (p *parser) scanName() (string, bool) {
	end := p.pos
	for end < len(p.text) && isLetter(p.text[end]) {
		end++
	}
	name := p.text[p.pos:end]
	for end < len(p.text) && isSpace(p.text[end]) {
		end++
	}
	return name, name != "" && end < len(p.text) && p.text[end] == '('
}

func (p *parser) integer() (int, error) {
	p.skipSpace()
	start := p.pos
	for !p.atEnd() && isDigit(p.text[p.pos]) {
		p.pos++
	}
	value, err := strconv.Atoi(p.text[start:p.pos])
	if err != nil {
		return 0, syntaxError(start, "number %s is out of range", p.text[start:p.pos])
	}
	return value, nil
}

func isSpace(c byte) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

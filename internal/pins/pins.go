// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package pins implements the grammar shared by pin declarations
// ("a, b, in[16]") and connection descriptions ("a=x, out[0..3]=y[4..7]").
package pins

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dtbx/netsim/internal/lex"
	"github.com/pkg/errors"
)

// Token types.
const (
	EOF lex.Type = lex.EOF
	Raw lex.Type = iota
	Ident
	Int
	LBracket
	RBracket
	Comma
	Range
	Equal
)

// Lexer returns a lexer for pin declarations and connection descriptions.
func Lexer(input string) lex.Interface {
	return lex.New(input, lexAny)
}

func lexAny(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case unicode.IsLetter(r) || r == '_':
		return lexIdent
	case '0' <= r && r <= '9':
		return lexNumber
	case r == '[':
		l.Emit(LBracket, "[")
	case r == ']':
		l.Emit(RBracket, "]")
	case r == ',':
		l.Emit(Comma, ",")
	case r == '=':
		l.Emit(Equal, "=")
	case r == '.':
		if l.Next() == '.' {
			l.Emit(Range, "..")
			break
		}
		l.Backup()
		fallthrough
	default:
		l.Emit(Raw, r)
		return lexEOF
	}
	return nil
}

func lexNumber(l *lex.Lexer) lex.StateFn {
	i := int(l.Current() - '0')
	r := l.Next()
	for '0' <= r && r <= '9' {
		i = i*10 + int(r-'0')
		r = l.Next()
	}
	l.Backup()
	l.Emit(Int, i)
	return nil
}

func lexIdent(l *lex.Lexer) lex.StateFn {
	var b strings.Builder
	b.WriteRune(l.Current())
	r := l.Next()
	for unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		b.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	l.Emit(Ident, b.String())
	return nil
}

// lexEOF keeps emitting EOF once the end of input has been reached.
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(lex.EOF, "end of input")
	return lexEOF
}

// Name is a plain pin name.
type Name struct {
	Ident string
	Pos   lex.Pos
}

// Index is an indexed pin p[i].
type Index struct {
	Name
	I int
}

// Span is a pin range p[lo..hi].
type Span struct {
	Name
	Lo, Hi int
}

// Assign is a part-pin to chip-net assignment, port=net.
type Assign struct {
	LHS interface{}
	RHS interface{}
}

// Parser reads a comma separated list of pin expressions, optionally
// with assignments.
type Parser struct {
	Input string
	l     lex.Interface
	i     lex.Item
	done  bool
}

// Next returns the next expression in the input: a Name, Index or Span,
// or, when assign is true, possibly an Assign of those. It returns
// nil, nil at end of input.
func (p *Parser) Next(assign bool) (interface{}, error) {
	if p.done {
		return nil, nil
	}
	if p.l == nil {
		p.l = Lexer(p.Input)
	}

	p.i = p.l.Lex()
	if p.i.Type == EOF {
		p.done = true
		return nil, nil
	}

	lhs, err := p.pinExpr()
	if err != nil {
		p.done = true
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.done = true
		fallthrough
	case Comma:
		return lhs, nil
	case Equal:
		if assign {
			break
		}
		fallthrough
	default:
		return nil, p.errorf("unexpected %s", p.i)
	}

	p.i = p.l.Lex()
	rhs, err := p.pinExpr()
	if err != nil {
		p.done = true
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.done = true
		fallthrough
	case Comma:
		return Assign{lhs, rhs}, nil
	}
	return nil, p.errorf("unexpected %s", p.i)
}

// pinExpr parses name, name[i] or name[lo..hi] and leaves the following
// item in p.i.
func (p *Parser) pinExpr() (interface{}, error) {
	if p.i.Type != Ident {
		return nil, p.errorf("expected pin name")
	}
	n := Name{p.i.Value.(string), p.i.Pos}
	p.i = p.l.Lex()
	if p.i.Type != LBracket {
		return n, nil
	}
	p.i = p.l.Lex()
	if p.i.Type != Int {
		return nil, p.errorf("integer expected after '['")
	}
	lo := p.i.Value.(int)
	hi := -1
	p.i = p.l.Lex()
	if p.i.Type == Range {
		p.i = p.l.Lex()
		if p.i.Type != Int {
			return nil, p.errorf("integer expected after '..'")
		}
		hi = p.i.Value.(int)
		p.i = p.l.Lex()
	}
	if p.i.Type != RBracket {
		return nil, p.errorf("closing ']' expected after index or range")
	}
	p.i = p.l.Lex()
	if hi >= 0 {
		return Span{n, lo, hi}, nil
	}
	return Index{n, lo}, nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("in %q at pos %d: %s", p.Input, int(p.i.Pos)+1, fmt.Sprintf(format, args...))
}

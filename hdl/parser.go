// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"fmt"
	"io/ioutil"

	"github.com/dtbx/netsim/internal/lex"
	"github.com/pkg/errors"
)

// Parse parses chip declarations from src. A file may hold any number
// of CHIP blocks.
func Parse(src string) ([]*ChipDecl, error) {
	p := &parser{src: src, l: scan(src)}
	var decls []*ChipDecl
	for {
		p.next()
		if p.i.Type == tEOF {
			return decls, nil
		}
		d, err := p.chip()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
}

// ParseFile parses chip declarations from the named file.
func ParseFile(name string) ([]*ChipDecl, error) {
	buf, err := ioutil.ReadFile(name)
	if err != nil {
		return nil, err
	}
	decls, err := Parse(string(buf))
	return decls, errors.Wrap(err, name)
}

type parser struct {
	src string
	l   lex.Interface
	i   lex.Item
}

func (p *parser) next() {
	p.i = p.l.Lex()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("at pos %d: %s", int(p.i.Pos)+1, fmt.Sprintf(format, args...))
}

// expect consumes an item of type t or fails.
func (p *parser) expect(t lex.Type, what string) error {
	if p.i.Type != t {
		return p.errorf("expected %s, got %s", what, p.i)
	}
	p.next()
	return nil
}

func (p *parser) keyword(kw string) error {
	if p.i.Type != tIdent || p.i.Value.(string) != kw {
		return p.errorf("expected %q, got %s", kw, p.i)
	}
	p.next()
	return nil
}

// chip parses one CHIP block. The CHIP keyword is the current item.
func (p *parser) chip() (*ChipDecl, error) {
	d := &ChipDecl{Pos: p.i.Pos}
	if err := p.keyword("CHIP"); err != nil {
		return nil, err
	}
	if p.i.Type != tIdent {
		return nil, p.errorf("expected chip name, got %s", p.i)
	}
	d.Name = p.i.Value.(string)
	p.next()
	if err := p.expect(tLBrace, "'{'"); err != nil {
		return nil, err
	}

	var err error
	if d.Inputs, err = p.pinSection("IN"); err != nil {
		return nil, err
	}
	if d.Outputs, err = p.pinSection("OUT"); err != nil {
		return nil, err
	}

	if p.i.Type == tIdent && p.i.Value.(string) == "BUILTIN" {
		return nil, p.errorf("BUILTIN chips are not supported, register the part on the catalog instead")
	}
	if err = p.keyword("PARTS"); err != nil {
		return nil, err
	}
	if err = p.expect(tColon, "':'"); err != nil {
		return nil, err
	}
	for p.i.Type != tRBrace {
		st, err := p.partStmt()
		if err != nil {
			return nil, err
		}
		d.Parts = append(d.Parts, st)
	}
	// the Parse loop advances past the closing brace
	return d, nil
}

// pinSection parses "IN a, b, in[16];" or the matching OUT section.
// An empty section may be omitted entirely.
func (p *parser) pinSection(kw string) ([]PinDecl, error) {
	if p.i.Type != tIdent || p.i.Value.(string) != kw {
		return nil, nil
	}
	p.next()
	var decls []PinDecl
	for {
		if p.i.Type != tIdent {
			return nil, p.errorf("expected pin name, got %s", p.i)
		}
		pd := PinDecl{Name: p.i.Value.(string)}
		p.next()
		if p.i.Type == tLBracket {
			p.next()
			if p.i.Type != tInt {
				return nil, p.errorf("expected bus width, got %s", p.i)
			}
			pd.Bits = p.i.Value.(int)
			if pd.Bits < 1 {
				return nil, p.errorf("invalid bus width %d for pin %s", pd.Bits, pd.Name)
			}
			p.next()
			if err := p.expect(tRBracket, "']'"); err != nil {
				return nil, err
			}
		}
		decls = append(decls, pd)
		switch p.i.Type {
		case tComma:
			p.next()
			continue
		case tSemi:
			p.next()
			return decls, nil
		}
		return nil, p.errorf("expected ',' or ';', got %s", p.i)
	}
}

// partStmt parses "Name(port=net, ...);".
func (p *parser) partStmt() (PartStmt, error) {
	st := PartStmt{Pos: p.i.Pos}
	if p.i.Type != tIdent {
		return st, p.errorf("expected part name, got %s", p.i)
	}
	st.Name = p.i.Value.(string)
	p.next()
	if err := p.expect(tLParen, "'('"); err != nil {
		return st, err
	}
	for {
		port, err := p.pinExpr()
		if err != nil {
			return st, err
		}
		if err = p.expect(tEqual, "'='"); err != nil {
			return st, err
		}
		net, err := p.pinExpr()
		if err != nil {
			return st, err
		}
		st.Conns = append(st.Conns, ConnExpr{Port: port, Net: net})
		if p.i.Type == tComma {
			p.next()
			continue
		}
		break
	}
	if err := p.expect(tRParen, "')'"); err != nil {
		return st, err
	}
	if err := p.expect(tSemi, "';'"); err != nil {
		return st, err
	}
	return st, nil
}

// pinExpr parses "x", "x[3]" or "x[0..7]".
func (p *parser) pinExpr() (PinExpr, error) {
	e := PinExpr{Pos: p.i.Pos}
	if p.i.Type != tIdent {
		return e, p.errorf("expected pin name, got %s", p.i)
	}
	e.Name = p.i.Value.(string)
	p.next()
	if p.i.Type != tLBracket {
		return e, nil
	}
	p.next()
	if p.i.Type != tInt {
		return e, p.errorf("expected index, got %s", p.i)
	}
	e.Indexed = true
	e.Lo = p.i.Value.(int)
	e.Hi = e.Lo
	p.next()
	if p.i.Type == tRange {
		p.next()
		if p.i.Type != tInt {
			return e, p.errorf("expected index after '..', got %s", p.i)
		}
		e.Hi = p.i.Value.(int)
		p.next()
		if e.Hi < e.Lo {
			return e, p.errorf("invalid range %s", e)
		}
	}
	if err := p.expect(tRBracket, "']'"); err != nil {
		return e, err
	}
	return e, nil
}

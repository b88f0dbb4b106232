// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the chip description text format:
//
//	CHIP Xor {
//		IN a, b;
//		OUT out;
//		PARTS:
//		Not(in=a, out=nota);
//		Not(in=b, out=notb);
//		And(a=a, b=notb, out=w1);
//		And(a=nota, b=b, out=w2);
//		Or(a=w1, b=w2, out=out);
//	}
//
// Parsed chip declarations elaborate against a Catalog of known parts
// into netsim parts, with all wiring checks of netsim.Chip applied.
package hdl

import (
	"strconv"

	"github.com/dtbx/netsim/internal/lex"
)

// A ChipDecl is one parsed CHIP block.
type ChipDecl struct {
	Name    string
	Inputs  []PinDecl
	Outputs []PinDecl
	Parts   []PartStmt
	Pos     lex.Pos
}

// A PinDecl declares a chip pin. Bits is 0 for a scalar pin; a bus pin
// "in[16]" has Bits 16.
type PinDecl struct {
	Name string
	Bits int
}

// width returns the number of nets the pin spans.
func (p PinDecl) width() int {
	if p.Bits == 0 {
		return 1
	}
	return p.Bits
}

// expand appends the pin's individual net names to dst.
func (p PinDecl) expand(dst []string) []string {
	if p.Bits == 0 {
		return append(dst, p.Name)
	}
	for i := 0; i < p.Bits; i++ {
		dst = append(dst, p.Name+"["+strconv.Itoa(i)+"]")
	}
	return dst
}

// A PartStmt is one statement of a PARTS list: a part name and its
// connections.
type PartStmt struct {
	Name  string
	Conns []ConnExpr
	Pos   lex.Pos
}

// A ConnExpr wires one part port to a chip net.
type ConnExpr struct {
	Port PinExpr
	Net  PinExpr
}

// A PinExpr references a pin or net, optionally sliced: "x", "x[3]" or
// "x[0..7]".
type PinExpr struct {
	Name    string
	Lo, Hi  int
	Indexed bool
	Pos     lex.Pos
}

func (e PinExpr) String() string {
	if !e.Indexed {
		return e.Name
	}
	if e.Lo == e.Hi {
		return e.Name + "[" + strconv.Itoa(e.Lo) + "]"
	}
	return e.Name + "[" + strconv.Itoa(e.Lo) + ".." + strconv.Itoa(e.Hi) + "]"
}

// width returns the number of nets the expression spans given the width
// of the unsliced pin.
func (e PinExpr) width(full int) int {
	if !e.Indexed {
		return full
	}
	return e.Hi - e.Lo + 1
}

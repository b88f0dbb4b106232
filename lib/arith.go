// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	"strconv"

	"github.com/dtbx/netsim"
)

var hAdder = &netsim.PartSpec{
	Name:    "HALFADDER",
	Inputs:  netsim.Inputs{pA, pB},
	Outputs: netsim.Outputs{"s", "c"},
	Mount: func(s *netsim.Socket) []netsim.Component {
		a, b := s.Pin(pA), s.Pin(pB)
		sum, cout := s.Pin("s"), s.Pin("c")
		return []netsim.Component{
			func(c *netsim.Circuit) {
				va, vb := c.Get(a), c.Get(b)
				c.Set(sum, va && !vb || !va && vb)
				c.Set(cout, va && vb)
			}}
	}}

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
func HalfAdder(w string) netsim.Part {
	return hAdder.NewPart(w)
}

var fAdder = &netsim.PartSpec{
	Name:    "FULLADDER",
	Inputs:  netsim.Inputs{pA, pB, "cin"},
	Outputs: netsim.Outputs{"s", "cout"},
	Mount: func(s *netsim.Socket) []netsim.Component {
		a, b, cin := s.Pin(pA), s.Pin(pB), s.Pin("cin")
		sum, cout := s.Pin("s"), s.Pin("cout")
		return []netsim.Component{
			func(c *netsim.Circuit) {
				va, vb, vc := c.Get(a), c.Get(b), c.Get(cin)
				s0 := va && !vb || !va && vb
				c.Set(sum, s0 && !vc || !s0 && vc)
				c.Set(cout, s0 && vc || va && vb)
			}}
	}}

// FullAdder returns a full adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
func FullAdder(w string) netsim.Part {
	return fAdder.NewPart(w)
}

// SpecAdderN returns the PartSpec of an n-bit ripple adder.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
func SpecAdderN(bits int) *netsim.PartSpec {
	return &netsim.PartSpec{
		Name:    "ADDER" + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: append(bus(bits, pOut), "c"),
		Mount: func(s *netsim.Socket) []netsim.Component {
			a, b := s.Bus(pA, bits), s.Bus(pB, bits)
			out, cout := s.Bus(pOut, bits), s.Pin("c")
			return []netsim.Component{
				func(c *netsim.Circuit) {
					carry := false
					for i, o := range out {
						va, vb := c.Get(a[i]), c.Get(b[i])
						s0 := va && !vb || !va && vb
						c.Set(o, s0 && !carry || !s0 && carry)
						carry = va && vb || s0 && carry
					}
					c.Set(cout, carry)
				}}
		}}
}

// AdderN returns an n-bit adder constructor.
func AdderN(bits int) netsim.NewPartFn {
	return SpecAdderN(bits).NewPart
}

var add16 = SpecAdderN(16)

// Add16 returns a 16-bit ripple adder.
//
//	Inputs: a[16], b[16]
//	Outputs: out[16], c
func Add16(w string) netsim.Part { return add16.NewPart(w) }

// SpecIncN returns the PartSpec of an n-bit incrementer.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out = in + 1 // modulo 2^bits
func SpecIncN(bits int) *netsim.PartSpec {
	return &netsim.PartSpec{
		Name:    "INC" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *netsim.Socket) []netsim.Component {
			in, out := s.Bus(pIn, bits), s.Bus(pOut, bits)
			return []netsim.Component{
				func(c *netsim.Circuit) {
					carry := true
					for i, o := range out {
						v := c.Get(in[i])
						c.Set(o, v != carry)
						carry = v && carry
					}
				}}
		}}
}

// IncN returns an n-bit incrementer constructor.
func IncN(bits int) netsim.NewPartFn {
	return SpecIncN(bits).NewPart
}

var inc16 = SpecIncN(16)

// Inc16 returns a 16-bit incrementer.
//
//	Inputs: in[16]
//	Outputs: out[16]
func Inc16(w string) netsim.Part { return inc16.NewPart(w) }

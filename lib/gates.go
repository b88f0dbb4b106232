// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lib provides a library of reusable parts for netsim: logic
// gates, multiplexers, flip flops, registers and adders.
package lib

import (
	"strconv"

	"github.com/dtbx/netsim"
)

// common pin names
const (
	pA    = "a"
	pB    = "b"
	pIn   = "in"
	pSel  = "sel"
	pLoad = "load"
	pOut  = "out"
)

// bus expands bus names to individual pin names.
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = n + "[" + strconv.Itoa(j) + "]"
		}
	}
	return b
}

var notGate = netsim.PartSpec{
	Name:    "NOT",
	Inputs:  netsim.Inputs{pIn},
	Outputs: netsim.Outputs{pOut},
	Mount: func(s *netsim.Socket) []netsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []netsim.Component{
			func(c *netsim.Circuit) { c.Set(out, !c.Get(in)) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
func Not(w string) netsim.Part {
	return notGate.NewPart(w)
}

// two input gates
type gate func(a, b bool) bool

func (g gate) mount(s *netsim.Socket) []netsim.Component {
	a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
	return []netsim.Component{
		func(c *netsim.Circuit) { c.Set(out, g(c.Get(a), c.Get(b))) },
	}
}

func newGate(name string, fn func(a, b bool) bool) *netsim.PartSpec {
	return &netsim.PartSpec{
		Name:    name,
		Inputs:  gateIn,
		Outputs: gateOut,
		Mount:   gate(fn).mount,
	}
}

var (
	gateIn  = netsim.Inputs{pA, pB}
	gateOut = netsim.Outputs{pOut}

	and  = newGate("AND", func(a, b bool) bool { return a && b })
	nand = newGate("NAND", func(a, b bool) bool { return !(a && b) })
	or   = newGate("OR", func(a, b bool) bool { return a || b })
	nor  = newGate("NOR", func(a, b bool) bool { return !(a || b) })
	xor  = newGate("XOR", func(a, b bool) bool { return a && !b || !a && b })
	xnor = newGate("XNOR", func(a, b bool) bool { return a && b || !a && !b })
)

// And returns an AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
func And(w string) netsim.Part { return and.NewPart(w) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
func Nand(w string) netsim.Part { return nand.NewPart(w) }

// Or returns an OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
func Or(w string) netsim.Part { return or.NewPart(w) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
func Nor(w string) netsim.Part { return nor.NewPart(w) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = (a && !b) || (!a && b)
func Xor(w string) netsim.Part { return xor.NewPart(w) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
func Xnor(w string) netsim.Part { return xnor.NewPart(w) }

// SpecNotN returns the PartSpec of an n-bit NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
func SpecNotN(bits int) *netsim.PartSpec {
	return &netsim.PartSpec{
		Name:    "NOT" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: bus(bits, pOut),
		Mount: func(s *netsim.Socket) []netsim.Component {
			ins := s.Bus(pIn, bits)
			outs := s.Bus(pOut, bits)
			return []netsim.Component{func(c *netsim.Circuit) {
				for i, n := range ins {
					c.Set(outs[i], !c.Get(n))
				}
			}}
		}}
}

// NotN returns an n-bit NOT gate constructor.
func NotN(bits int) netsim.NewPartFn {
	return SpecNotN(bits).NewPart
}

var not16 = SpecNotN(16)

// Not16 returns a 16-bit NOT gate.
//
//	Inputs: in[16]
//	Outputs: out[16]
func Not16(w string) netsim.Part { return not16.NewPart(w) }

type gateN struct {
	bits int
	fn   func(a, b bool) bool
}

func (g *gateN) mount(s *netsim.Socket) []netsim.Component {
	a, b, out := s.Bus(pA, g.bits), s.Bus(pB, g.bits), s.Bus(pOut, g.bits)
	return []netsim.Component{
		func(c *netsim.Circuit) {
			for i := range a {
				c.Set(out[i], g.fn(c.Get(a[i]), c.Get(b[i])))
			}
		},
	}
}

func newGateN(name string, bits int, fn func(a, b bool) bool) *netsim.PartSpec {
	return &netsim.PartSpec{
		Name:    name + strconv.Itoa(bits),
		Inputs:  bus(bits, pA, pB),
		Outputs: bus(bits, pOut),
		Mount:   (&gateN{bits, fn}).mount,
	}
}

// GateN returns an n-bit two-input gate constructor applying fn bitwise.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
func GateN(name string, bits int, fn func(a, b bool) bool) netsim.NewPartFn {
	return newGateN(name, bits, fn).NewPart
}

var (
	and16 = newGateN("AND", 16, func(a, b bool) bool { return a && b })
	or16  = newGateN("OR", 16, func(a, b bool) bool { return a || b })
)

// And16 returns a 16-bit bitwise AND gate.
//
//	Inputs: a[16], b[16]
//	Outputs: out[16]
func And16(w string) netsim.Part { return and16.NewPart(w) }

// Or16 returns a 16-bit bitwise OR gate.
//
//	Inputs: a[16], b[16]
//	Outputs: out[16]
func Or16(w string) netsim.Part { return or16.NewPart(w) }

// SpecOrNWay returns the PartSpec of an n-way OR gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = in[0] || in[1] || ... || in[ways-1]
func SpecOrNWay(ways int) *netsim.PartSpec {
	return &netsim.PartSpec{
		Name:    "OR" + strconv.Itoa(ways) + "WAY",
		Inputs:  bus(ways, pIn),
		Outputs: netsim.Outputs{pOut},
		Mount: func(s *netsim.Socket) []netsim.Component {
			in := s.Bus(pIn, ways)
			out := s.Pin(pOut)
			return []netsim.Component{
				func(c *netsim.Circuit) {
					for _, n := range in {
						if c.Get(n) {
							c.Set(out, true)
							return
						}
					}
					c.Set(out, false)
				}}
		}}
}

// OrNWay returns an n-way OR gate constructor.
func OrNWay(ways int) netsim.NewPartFn {
	return SpecOrNWay(ways).NewPart
}

// AndNWay returns an n-way AND gate constructor.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = in[0] && in[1] && ... && in[ways-1]
func AndNWay(ways int) netsim.NewPartFn {
	return (&netsim.PartSpec{
		Name:    "AND" + strconv.Itoa(ways) + "WAY",
		Inputs:  bus(ways, pIn),
		Outputs: netsim.Outputs{pOut},
		Mount: func(s *netsim.Socket) []netsim.Component {
			in := s.Bus(pIn, ways)
			out := s.Pin(pOut)
			return []netsim.Component{
				func(c *netsim.Circuit) {
					for _, n := range in {
						if !c.Get(n) {
							c.Set(out, false)
							return
						}
					}
					c.Set(out, true)
				}}
		}}).NewPart
}

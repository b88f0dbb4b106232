// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	"strconv"

	"github.com/dtbx/netsim"
)

var mux = netsim.PartSpec{
	Name:    "MUX",
	Inputs:  netsim.Inputs{pA, pB, pSel},
	Outputs: netsim.Outputs{pOut},
	Mount: func(s *netsim.Socket) []netsim.Component {
		a, b, sel, out := s.Pin(pA), s.Pin(pB), s.Pin(pSel), s.Pin(pOut)
		return []netsim.Component{func(c *netsim.Circuit) {
			if c.Get(sel) {
				c.Set(out, c.Get(b))
			} else {
				c.Set(out, c.Get(a))
			}
		}}
	},
}

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
func Mux(w string) netsim.Part { return mux.NewPart(w) }

var dmux = netsim.PartSpec{
	Name:    "DMUX",
	Inputs:  netsim.Inputs{pIn, pSel},
	Outputs: netsim.Outputs{pA, pB},
	Mount: func(s *netsim.Socket) []netsim.Component {
		in, sel, a, b := s.Pin(pIn), s.Pin(pSel), s.Pin(pA), s.Pin(pB)
		return []netsim.Component{func(c *netsim.Circuit) {
			if c.Get(sel) {
				c.Set(a, false)
				c.Set(b, c.Get(in))
			} else {
				c.Set(a, c.Get(in))
				c.Set(b, false)
			}
		}}
	},
}

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
func DMux(w string) netsim.Part { return dmux.NewPart(w) }

// SpecMuxN returns the PartSpec of an n-bit multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
func SpecMuxN(bits int) *netsim.PartSpec {
	return &netsim.PartSpec{
		Name:    "MUX" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pA, pB), pSel),
		Outputs: bus(bits, pOut),
		Mount: func(s *netsim.Socket) []netsim.Component {
			a, b, sel := s.Bus(pA, bits), s.Bus(pB, bits), s.Pin(pSel)
			o := s.Bus(pOut, bits)
			return []netsim.Component{
				func(c *netsim.Circuit) {
					src := a
					if c.Get(sel) {
						src = b
					}
					for i := range o {
						c.Set(o[i], c.Get(src[i]))
					}
				}}
		}}
}

// MuxN returns an n-bit multiplexer constructor.
func MuxN(bits int) netsim.NewPartFn {
	return SpecMuxN(bits).NewPart
}

var mux16 = SpecMuxN(16)

// Mux16 returns a 16-bit multiplexer.
//
//	Inputs: a[16], b[16], sel
//	Outputs: out[16]
func Mux16(w string) netsim.Part { return mux16.NewPart(w) }

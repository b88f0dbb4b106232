// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package lib

import (
	"strconv"

	"github.com/dtbx/netsim"
)

var dff = netsim.PartSpec{
	Name:    "DFF",
	Inputs:  netsim.Inputs{pIn},
	Outputs: netsim.Outputs{pOut},
	Mount: func(s *netsim.Socket) []netsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		var cur bool
		return []netsim.Component{
			func(c *netsim.Circuit) {
				// rising edge?
				if c.AtTick() {
					cur = c.Get(in)
				}
				c.Set(out, cur)
			}}
	},
}

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // t is the clock cycle
func DFF(w string) netsim.Part {
	return dff.NewPart(w)
}

var bit = netsim.PartSpec{
	Name:    "BIT",
	Inputs:  netsim.Inputs{pIn, pLoad},
	Outputs: netsim.Outputs{pOut},
	Mount: func(s *netsim.Socket) []netsim.Component {
		in, load, out := s.Pin(pIn), s.Pin(pLoad), s.Pin(pOut)
		var cur bool
		return []netsim.Component{
			func(c *netsim.Circuit) {
				if c.AtTick() && c.Get(load) {
					cur = c.Get(in)
				}
				c.Set(out, cur)
			}}
	},
}

// Bit returns a 1-bit register with a load control.
//
//	Inputs: in, load
//	Outputs: out
//	Function: if load(t-1) { out(t) = in(t-1) } else { out(t) = out(t-1) }
func Bit(w string) netsim.Part {
	return bit.NewPart(w)
}

// SpecRegisterN returns the PartSpec of an n-bit register with a load
// control. All bits latch together on the rising clock edge.
//
//	Inputs: in[bits], load
//	Outputs: out[bits]
func SpecRegisterN(bits int) *netsim.PartSpec {
	return &netsim.PartSpec{
		Name:    "REGISTER" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pIn), pLoad),
		Outputs: bus(bits, pOut),
		Mount: func(s *netsim.Socket) []netsim.Component {
			in, load := s.Bus(pIn, bits), s.Pin(pLoad)
			out := s.Bus(pOut, bits)
			cur := make([]bool, bits)
			return []netsim.Component{
				func(c *netsim.Circuit) {
					if c.AtTick() && c.Get(load) {
						for i, n := range in {
							cur[i] = c.Get(n)
						}
					}
					for i, n := range out {
						c.Set(n, cur[i])
					}
				}}
		}}
}

// RegisterN returns an n-bit register constructor.
func RegisterN(bits int) netsim.NewPartFn {
	return SpecRegisterN(bits).NewPart
}

var register16 = SpecRegisterN(16)

// Register returns a 16-bit register with a load control.
//
//	Inputs: in[16], load
//	Outputs: out[16]
func Register(w string) netsim.Part { return register16.NewPart(w) }

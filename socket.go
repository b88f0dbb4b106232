// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

// A Socket maps a part's pin names to net numbers in a circuit. Mount
// functions use it to resolve their pins once, at mount time.
type Socket struct {
	m map[string]int
	c *Circuit
}

func newSocket(c *Circuit) *Socket {
	return &Socket{
		m: map[string]int{Clk: cstClk, False: cstFalse, True: cstTrue},
		c: c,
	}
}

// Pin returns the net number assigned to the given pin name. It panics
// if the pin does not exist: mount functions only ever name pins that
// their PartSpec declares.
func (s *Socket) Pin(name string) int {
	n, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return n
}

// PinOrNew returns the net number assigned to the given pin name,
// allocating a new net if none is.
func (s *Socket) PinOrNew(name string) int {
	n, ok := s.m[name]
	if !ok {
		n = s.c.allocNet()
		s.m[name] = n
	}
	return n
}

// Bus returns the net numbers assigned to a bus, in bit order.
func (s *Socket) Bus(name string, size int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = s.Pin(busPin(name, i))
	}
	return out
}

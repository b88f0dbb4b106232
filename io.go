// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"
)

// Input returns a 1-bit input part feeding the value of f into the
// circuit every step.
//
//	Outputs: out
func Input(f func() bool) NewPartFn {
	p := &PartSpec{
		Name:    "INPUT",
		Outputs: Outputs{"out"},
		Mount: func(s *Socket) []Component {
			out := s.Pin("out")
			return []Component{
				func(c *Circuit) { c.Set(out, f()) },
			}
		}}
	return p.NewPart
}

// Output returns a 1-bit output probe calling f with the state of its
// input net every step.
//
//	Inputs: in
func Output(f func(value bool)) NewPartFn {
	p := &PartSpec{
		Name:   "OUTPUT",
		Inputs: Inputs{"in"},
		Mount: func(s *Socket) []Component {
			in := s.Pin("in")
			return []Component{
				func(c *Circuit) { f(c.Get(in)) },
			}
		}}
	return p.NewPart
}

// InputN returns an input bus of the given size, least significant bit
// first.
//
//	Outputs: out[bits]
func InputN(bits int, f func() int64) NewPartFn {
	return (&PartSpec{
		Name:    "INPUT" + strconv.Itoa(bits),
		Outputs: busNames(bits, "out"),
		Mount: func(s *Socket) []Component {
			outs := s.Bus("out", bits)
			return []Component{
				func(c *Circuit) {
					v := f()
					for i, n := range outs {
						c.Set(n, v&(1<<uint(i)) != 0)
					}
				}}
		}}).NewPart
}

// OutputN returns an output bus probe of the given size, assembling its
// input bits into an int64, least significant bit first.
//
//	Inputs: in[bits]
func OutputN(bits int, f func(int64)) NewPartFn {
	return (&PartSpec{
		Name:   "OUTPUT" + strconv.Itoa(bits),
		Inputs: busNames(bits, "in"),
		Mount: func(s *Socket) []Component {
			ins := s.Bus("in", bits)
			return []Component{
				func(c *Circuit) {
					var v int64
					for i, n := range ins {
						if c.Get(n) {
							v |= 1 << uint(i)
						}
					}
					f(v)
				}}
		}}).NewPart
}

// busNames expands bus names to individual pin names:
// busNames(2, "a", "b") is []string{"a[0]", "a[1]", "b[0]", "b[1]"}.
func busNames(bits int, names ...string) []string {
	b := make([]string, 0, len(names)*bits)
	for _, n := range names {
		for i := 0; i < bits; i++ {
			b = append(b, busPin(n, i))
		}
	}
	return b
}

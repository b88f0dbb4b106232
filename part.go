// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A MountFn mounts a part into socket s. Implementations query the
// socket for the net numbers assigned to the part's pins and return
// closures over those numbers.
//
// A Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name:    "NOT",
//		Inputs:  Inputs{"in"},
//		Outputs: Outputs{"out"},
//		Mount: func(s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func(c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
type MountFn func(s *Socket) []Component

// Inputs is a list of expanded input pin names.
type Inputs []string

// Outputs is a list of expanded output pin names.
type Outputs []string

// A PartSpec is a part blueprint: a named pin interface plus a mount
// function. Bus pins appear expanded in the Inputs and Outputs lists,
// e.g. "in[0]", "in[1]". Use In and Out to expand declarations like
// "a, b, in[2]".
type PartSpec struct {
	Name    string
	Inputs  Inputs
	Outputs Outputs

	// Pinout maps the part's public pin names to names private to its
	// mount function. Left nil, pins map to themselves; composed chips
	// set it to their internal net names.
	Pinout map[string]string

	Mount MountFn
}

// NewPart wraps p with the given connection description into a Part.
//
// The description is a comma separated list of port=net assignments
// where both sides accept bus indices and ranges:
//
//	"a=x, b[0..3]=y[4..7], sel=true, out=res"
//
// An unindexed bus port spans its full width. NewPart panics on a
// malformed description or unknown port, these are programmer errors.
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := p.resolve(connections)
	if err != nil {
		panic(err)
	}
	if p.Pinout == nil {
		p.Pinout = make(map[string]string, len(p.Inputs)+len(p.Outputs))
		for _, i := range p.Inputs {
			p.Pinout[i] = i
		}
		for _, o := range p.Outputs {
			p.Pinout[o] = o
		}
	}
	return Part{p, conns}
}

// A NewPartFn builds a Part from a connection description. Chip returns
// one for every composed chip; PartSpec.NewPart is one for primitives.
type NewPartFn func(connections string) Part

// A Part is a part specification wired into a host chip.
type Part struct {
	*PartSpec
	Conns []Connection
}

// A Connection wires one part pin to one net of the enclosing chip.
type Connection struct {
	PP string // part pin name
	CP string // chip net name
}

// Parts is a list of parts wired into a chip.
type Parts []Part

// busPin returns the name of bit i of bus b.
func busPin(b string, i int) string {
	return b + "[" + strconv.Itoa(i) + "]"
}

// pinSpan returns the expanded pin names of pin base in list, sliced to
// [lo, hi] when indexed. lo < 0 requests the whole pin or bus.
func pinSpan(list []string, base string, lo, hi int) []string {
	if lo < 0 {
		for _, n := range list {
			if n == base {
				return []string{base}
			}
		}
		var span []string
		for i := 0; ; i++ {
			n := busPin(base, i)
			if !contains(list, n) {
				break
			}
			span = append(span, n)
		}
		return span
	}
	var span []string
	for i := lo; i <= hi; i++ {
		n := busPin(base, i)
		if !contains(list, n) {
			return nil
		}
		span = append(span, n)
	}
	return span
}

func contains(list []string, n string) bool {
	for _, s := range list {
		if s == n {
			return true
		}
	}
	return false
}

// resolve parses a connection description and expands it against the
// part's pin interface into single net connections.
func (p *PartSpec) resolve(connections string) ([]Connection, error) {
	asgn, err := parseConnections(connections)
	if err != nil {
		return nil, err
	}
	var conns []Connection
	for _, a := range asgn {
		ports := pinSpan(p.Inputs, a.port, a.portLo, a.portHi)
		if ports == nil {
			ports = pinSpan(p.Outputs, a.port, a.portLo, a.portHi)
		}
		if len(ports) == 0 {
			return nil, errors.Errorf("%s: unknown pin %q in %q", p.Name, a.port, connections)
		}

		var nets []string
		switch {
		case a.netLo >= 0:
			for i := a.netLo; i <= a.netHi; i++ {
				nets = append(nets, busPin(a.net, i))
			}
		case len(ports) == 1 || a.net == True || a.net == False || a.net == Clk:
			nets = []string{a.net}
		default:
			// unindexed net against a bus port: index the net alongside
			for i := range ports {
				nets = append(nets, busPin(a.net, i))
			}
		}

		switch {
		case len(ports) == len(nets):
			for i := range ports {
				conns = append(conns, Connection{ports[i], nets[i]})
			}
		case len(nets) == 1:
			for _, pp := range ports {
				conns = append(conns, Connection{pp, nets[0]})
			}
		case len(ports) == 1:
			for _, cp := range nets {
				conns = append(conns, Connection{ports[0], cp})
			}
		default:
			return nil, errors.Errorf("%s: pin count mismatch in %q: %s against %s",
				p.Name, connections, a.port, a.net)
		}
	}
	return conns, nil
}

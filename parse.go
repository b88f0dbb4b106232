// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/dtbx/netsim/internal/pins"
	"github.com/pkg/errors"
)

// IO expands a pin declaration string to individual pin names:
//
//	IO("in[2], sel")	// []string{"in[0]", "in[1]", "sel"}, nil
func IO(spec string) ([]string, error) {
	var out []string
	p := pins.Parser{Input: spec}
	for {
		e, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return out, nil
		}
		switch e := e.(type) {
		case pins.Name:
			out = append(out, e.Ident)
		case pins.Index:
			// a width declaration, not an index
			for i := 0; i < e.I; i++ {
				out = append(out, busPin(e.Ident, i))
			}
		default:
			return nil, errors.Errorf("in %q: ranges are not allowed in pin declarations", spec)
		}
	}
}

// In expands an input pin declaration. It panics on malformed input and
// is meant for pin lists known at compile time; use IO on user input.
func In(spec string) Inputs {
	p, err := IO(spec)
	if err != nil {
		panic(err)
	}
	return Inputs(p)
}

// Out expands an output pin declaration. See In.
func Out(spec string) Outputs {
	p, err := IO(spec)
	if err != nil {
		panic(err)
	}
	return Outputs(p)
}

// an assignment is one unexpanded port=net element of a connection
// description. Lo < 0 means unindexed.
type assignment struct {
	port           string
	portLo, portHi int
	net            string
	netLo, netHi   int
}

func parseConnections(connections string) ([]assignment, error) {
	var out []assignment
	p := pins.Parser{Input: connections}
	for {
		e, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return out, nil
		}
		a, ok := e.(pins.Assign)
		if !ok {
			return nil, errors.Errorf("in %q: expected port=net assignment", connections)
		}
		var as assignment
		as.port, as.portLo, as.portHi = pinExpr(a.LHS)
		as.net, as.netLo, as.netHi = pinExpr(a.RHS)
		out = append(out, as)
	}
}

func pinExpr(e interface{}) (name string, lo, hi int) {
	switch e := e.(type) {
	case pins.Name:
		return e.Ident, -1, -1
	case pins.Index:
		return e.Ident, e.I, e.I
	case pins.Span:
		return e.Ident, e.Lo, e.Hi
	}
	panic("unreachable")
}

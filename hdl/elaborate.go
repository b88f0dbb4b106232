// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strings"

	"github.com/dtbx/netsim"
	"github.com/pkg/errors"
)

// elaborate turns a chip declaration into a netsim part: every PARTS
// statement is resolved against the catalog, bus widths are checked and
// netsim.Chip applies the wiring rules (single driver per net, no
// dangling nets).
func (c *Catalog) elaborate(d *ChipDecl) (netsim.NewPartFn, error) {
	// chip pin name to declared width, 0 for scalar pins
	var inputs, outputs []string
	chipPins := make(map[string]int, len(d.Inputs)+len(d.Outputs))
	for _, p := range d.Inputs {
		inputs = p.expand(inputs)
		chipPins[p.Name] = p.Bits
	}
	for _, p := range d.Outputs {
		outputs = p.expand(outputs)
		if _, ok := chipPins[p.Name]; ok {
			return nil, errors.Errorf("chip %s: duplicate pin %s", d.Name, p.Name)
		}
		chipPins[p.Name] = p.Bits
	}

	// internal net widths, inferred from first use
	nets := make(map[string]int)

	var parts netsim.Parts
	for _, st := range d.Parts {
		e, ok := c.parts[st.Name]
		if !ok {
			return nil, errors.Errorf("chip %s: unknown part %s", d.Name, st.Name)
		}
		var conn strings.Builder
		for _, ce := range st.Conns {
			w, err := portWidth(e, ce.Port)
			if err != nil {
				return nil, errors.Wrapf(err, "chip %s: part %s", d.Name, st.Name)
			}
			if err := d.checkNet(chipPins, nets, ce.Net, w); err != nil {
				return nil, errors.Wrapf(err, "chip %s: part %s", d.Name, st.Name)
			}
			if conn.Len() > 0 {
				conn.WriteString(", ")
			}
			conn.WriteString(ce.Port.String())
			conn.WriteString("=")
			conn.WriteString(ce.Net.String())
		}
		parts = append(parts, e.fn(conn.String()))
	}

	fn, err := netsim.Chip(d.Name, inputs, outputs, parts)
	if err != nil {
		return nil, errors.Wrapf(err, "chip %s", d.Name)
	}
	return fn, nil
}

// portWidth returns the number of pins a port expression covers on the
// part described by e.
func portWidth(e *entry, port PinExpr) (int, error) {
	full, scalar := pinWidth(e.in, port.Name)
	if full == 0 {
		full, scalar = pinWidth(e.out, port.Name)
	}
	if full == 0 {
		return 0, errors.Errorf("unknown port %s", port.Name)
	}
	if !port.Indexed {
		return full, nil
	}
	if scalar {
		return 0, errors.Errorf("port %s is not a bus and cannot be indexed", port.Name)
	}
	if port.Hi >= full {
		return 0, errors.Errorf("index out of range in %s: port is %d bits wide", port, full)
	}
	return port.Hi - port.Lo + 1, nil
}

// pinWidth returns the width of pin base in an expanded pin name list
// and whether it is a scalar pin. A missing pin has width 0.
func pinWidth(list []string, base string) (w int, scalar bool) {
	for _, n := range list {
		if n == base {
			return 1, true
		}
	}
	prefix := base + "["
	for _, n := range list {
		if strings.HasPrefix(n, prefix) {
			w++
		}
	}
	return w, false
}

// checkNet validates the net side of a connection against the declared
// chip pins and the inferred internal net widths. w is the width of the
// port side.
func (d *ChipDecl) checkNet(chipPins, nets map[string]int, net PinExpr, w int) error {
	if net.Name == netsim.True || net.Name == netsim.False {
		if net.Indexed {
			return errors.Errorf("constant net %s cannot be indexed", net.Name)
		}
		return nil
	}
	if bits, ok := chipPins[net.Name]; ok {
		if net.Indexed {
			if bits == 0 {
				return errors.Errorf("pin %s is not a bus and cannot be indexed", net.Name)
			}
			if net.Hi >= bits {
				return errors.Errorf("index out of range in %s: pin %s is %d bits wide", net, net.Name, bits)
			}
		}
		full := bits
		if full == 0 {
			full = 1
		}
		if nw := net.width(full); nw != w {
			return errors.Errorf("width mismatch: %s spans %d bits, port side is %d", net, nw, w)
		}
		return nil
	}
	// internal net
	if net.Indexed {
		return errors.Errorf("internal net %s cannot be indexed", net.Name)
	}
	if prev, ok := nets[net.Name]; ok {
		if prev != w {
			return errors.Errorf("width mismatch: net %s used as %d bits wide and as %d", net.Name, prev, w)
		}
		return nil
	}
	nets[net.Name] = w
	return nil
}

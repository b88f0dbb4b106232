// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"github.com/pkg/errors"
)

// a chip wraps a list of parts behind a new pin interface.
type chip struct {
	PartSpec
	parts []*PartSpec
	// nets maps every part pin to the chip internal net it is wired to,
	// either a chip pin name or an allocated name (__0, __1, ...).
	nets map[pin]string
}

func (c *chip) mount(s *Socket) []Component {
	var updaters []Component

	for i, p := range c.parts {
		sub := newSocket(s.c)
		// k is the part's public pin name, subK the name private to its
		// mount function.
		for k, subK := range p.Pinout {
			if subK == "" {
				continue
			}
			if n := c.nets[pin{i, k}]; n != "" {
				sub.m[subK] = s.PinOrNew(n)
			} else {
				// unconnected pins are grounded. Chip guarantees that
				// only input pins can end up here.
				sub.m[subK] = cstFalse
			}
		}
		updaters = append(updaters, p.Mount(sub)...)
	}
	return updaters
}

// Chip composes parts into a new part. The inputs and outputs lists
// become the pin interface of the new part:
//
//	xor, err := Chip("XOR", In("a, b"), Out("out"), Parts{
//		Nand("a=a, b=b, out=nandAB"),
//		Nand("a=a, b=nandAB, out=w0"),
//		Nand("a=b, b=nandAB, out=w1"),
//		Nand("a=w0, b=w1, out=out"),
//	})
//
// The returned NewPartFn wires the new part into other chips the same
// way primitives are. Chip validates the wiring: every net keeps a
// single driver, connected pins must exist, internal nets need both a
// driver and at least one reader.
func Chip(name string, inputs Inputs, outputs Outputs, parts Parts) (NewPartFn, error) {
	nm, root := newNetmap(inputs, outputs)
	specs := make([]*PartSpec, len(parts))

	for pnum, p := range parts {
		sp := p.PartSpec
		specs[pnum] = sp

		seen := make(map[string]bool, len(p.Conns))
		for _, cn := range p.Conns {
			switch {
			case contains(sp.Inputs, cn.PP):
				if seen[cn.PP] {
					return nil, errors.Errorf("%s input pin %s connected to more than one net", sp.Name, cn.PP)
				}
				seen[cn.PP] = true
				src, dst := pin{-1, cn.CP}, pin{pnum, cn.PP}
				if err := nm.connect(root, src, kindUnknown, dst, kindInput); err != nil {
					return nil, errors.Wrap(err, qualName(specs, src)+":"+qualName(specs, dst))
				}
			case contains(sp.Outputs, cn.PP):
				src, dst := pin{pnum, cn.PP}, pin{-1, cn.CP}
				if err := nm.connect(root, src, kindOutput, dst, kindUnknown); err != nil {
					return nil, errors.Wrap(err, qualName(specs, src)+":"+qualName(specs, dst))
				}
			default:
				return nil, errors.Errorf("invalid pin name %s for part %s", cn.PP, sp.Name)
			}
		}
		// unconnected part outputs still own a net
		for _, o := range sp.Outputs {
			p := pin{pnum, o}
			if _, ok := nm[p]; !ok {
				nm[p] = &wire{pin: p, kind: kindOutput}
			}
		}
	}

	nets, err := resolveNets(nm, root, specs)
	if err != nil {
		return nil, err
	}

	pinout := make(map[string]string, len(inputs)+len(outputs))
	for _, i := range inputs {
		pinout[i] = nets[pin{-1, i}]
	}
	for _, o := range outputs {
		pinout[o] = nets[pin{-1, o}]
	}

	c := &chip{
		PartSpec{
			Name:    name,
			Inputs:  inputs,
			Outputs: outputs,
			Pinout:  pinout,
		},
		specs,
		nets,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}

// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// a pin is identified by the part it belongs to (-1 for the enclosing
// chip) and its name in that part's interface.
type pin struct {
	part int
	name string
}

const (
	kindUnknown = iota
	kindInput
	kindOutput
)

// a wire is one node of a chip's net graph: a pin together with the pin
// driving it and the pins it feeds.
type wire struct {
	name string // chip internal net name, assigned late
	pin  pin
	dsts []*wire
	src  *wire
	kind int
}

func (w *wire) isOutput() bool {
	return w.kind == kindOutput
}

func (w *wire) setName(name string) {
	w.name = name
	for _, d := range w.dsts {
		d.setName(name)
	}
}

type netmap map[pin]*wire

// newNetmap seeds the net graph with the chip's own pins. root is a
// marker parent for chip inputs and the reserved nets.
func newNetmap(ins Inputs, outs Outputs) (nm netmap, root *wire) {
	nm = make(netmap, len(ins)+len(outs)+cstCount)
	root = &wire{pin: pin{-1, "__root__"}, dsts: make([]*wire, 0, len(ins)), kind: kindInput}

	for _, cst := range []string{Clk, True, False} {
		p := pin{-1, cst}
		nm[p] = &wire{pin: p, src: root, kind: kindUnknown}
	}

	for _, in := range ins {
		p := pin{-1, in}
		w := &wire{pin: p, src: root, kind: kindUnknown}
		nm[p] = w
		root.dsts = append(root.dsts, w)
	}

	for _, out := range outs {
		p := pin{-1, out}
		nm[p] = &wire{pin: p, kind: kindOutput}
	}
	return nm, root
}

// connect adds an edge from src to dst. src must be the driving side.
func (nm netmap) connect(root *wire, src pin, sKind int, dst pin, dKind int) error {
	if dst.part < 0 {
		switch dst.name {
		case False:
			return errors.New("part output driving the constant false net")
		case Clk:
			return errors.New("part output driving the clock net")
		case True:
			return errors.New("part output driving the constant true net")
		}
	}
	ws := nm[src]
	if ws == nil {
		ws = &wire{pin: src, kind: sKind}
		nm[src] = ws
	}
	wd := nm[dst]
	switch {
	case wd == nil:
		wd = &wire{pin: dst, src: ws, kind: dKind}
		nm[dst] = wd
	case wd.src == nil:
		wd.src = ws
	case wd.src == root:
		return errors.New("chip input pin used as output")
	default:
		return errors.New("net already driven by another output")
	}
	ws.dsts = append(ws.dsts, wd)
	return nil
}

func qualName(specs []*PartSpec, p pin) string {
	if p.part < 0 {
		return p.name
	}
	return specs[p.part].Name + "." + p.name
}

// resolveNets flattens the net graph, checks for dangling pins and
// assigns a net name to every connected pin group.
func resolveNets(nm netmap, root *wire, specs []*PartSpec) (map[pin]string, error) {
	nets := make(map[pin]string, len(nm))
	netNum := 0
	for _, w := range nm {
		// non-output pins must have a driver, and so must the chip's own
		// declared outputs (part < 0). Part outputs are drivers themselves;
		// chip inputs and the reserved nets hang off root and pass
		// trivially.
		if w.src == nil && (!w.isOutput() || w.pin.part < 0) {
			return nil, errors.Errorf("pin %s not connected to any output", qualName(specs, w.pin))
		}

		// flatten wire chains w -> next -> next.dsts and drop orphaned
		// internal nets along the way.
		for i := 0; i < len(w.dsts); {
			next := w.dsts[i]
			if len(next.dsts) == 0 {
				if next.pin.part < 0 && !next.isOutput() {
					return nil, errors.Errorf("pin %s not connected to any input", qualName(specs, next.pin))
				}
				i++
				continue
			}
			for _, d := range next.dsts {
				d.src = w
			}
			w.dsts = append(w.dsts, next.dsts...)
			next.dsts = nil
			if next.pin.part < 0 && !next.isOutput() {
				w.dsts[i] = w.dsts[len(w.dsts)-1]
				w.dsts = w.dsts[:len(w.dsts)-1]
				delete(nm, next.pin)
			}
		}

		// name the pin tree from its driving end
		if w.name == "" {
			t := w
			for prev := t.src; prev != nil && prev != root; t, prev = prev, t.src {
			}
			if t.src == nil {
				t.setName("__" + strconv.Itoa(netNum))
			} else {
				// chip input or reserved net, keep its name so that
				// sockets can resolve clk/true/false.
				t.setName(t.pin.name)
			}
			netNum++
		}
		nets[w.pin] = w.name
	}
	return nets, nil
}

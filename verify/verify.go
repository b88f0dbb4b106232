// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package verify folds combinational chips into and-inverter graphs
// and proves chips equivalent with a SAT solver. Chips come from an
// hdl.Catalog; sequential parts (DFF, Bit, Register) have no
// combinational model and cannot be verified this way.
package verify

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/dtbx/netsim"
	"github.com/dtbx/netsim/hdl"
)

// An AIG is the and-inverter graph of one chip. In and Out hold the
// expanded pin names in declaration order, Lits maps every pin name to
// its literal in C.
type AIG struct {
	C    *logic.C
	In   []string
	Out  []string
	Lits map[string]z.Lit
}

// Compile builds the and-inverter graph of the named chip.
func Compile(cat *hdl.Catalog, name string) (*AIG, error) {
	s := newSynth(cat)
	in, out, ok := cat.Pins(name)
	if !ok {
		return nil, errors.Errorf("unknown part %s", name)
	}
	m, err := s.model(name)
	if err != nil {
		return nil, err
	}
	a := &AIG{C: s.c, In: in, Out: out, Lits: make(map[string]z.Lit, len(in)+len(out))}
	ins := make([]z.Lit, len(in))
	for i, n := range in {
		ins[i] = s.c.Lit()
		a.Lits[n] = ins[i]
	}
	outs, err := m(ins)
	if err != nil {
		return nil, err
	}
	for i, n := range out {
		a.Lits[n] = outs[i]
	}
	return a, nil
}

// Eval computes the chip outputs for one assignment of its inputs.
// Missing input pins evaluate to false.
func (a *AIG) Eval(in map[string]bool) map[string]bool {
	vs := make([]bool, a.C.Len())
	vs[a.C.T.Var()] = true
	for _, n := range a.In {
		vs[a.Lits[n].Var()] = in[n]
	}
	a.C.Eval(vs)
	out := make(map[string]bool, len(a.Out))
	for _, n := range a.Out {
		m := a.Lits[n]
		v := vs[m.Var()]
		if !m.IsPos() {
			v = !v
		}
		out[n] = v
	}
	return out
}

// TruthTable evaluates the chip on every combination of its inputs, 64
// assignments per pass through the graph. Row i holds the output values
// for the assignment where bit j of i drives input j, both in
// declaration order.
func (a *AIG) TruthTable() ([][]bool, error) {
	n := len(a.In)
	if n > 16 {
		return nil, errors.Errorf("truth table over %d inputs", n)
	}
	rows := make([][]bool, 1<<uint(n))
	vs := make([]uint64, a.C.Len())
	for base := 0; base < len(rows); base += 64 {
		vs[a.C.T.Var()] = ^uint64(0)
		for j, name := range a.In {
			vs[a.Lits[name].Var()] = pattern(base, j)
		}
		a.C.Eval64(vs)
		count := len(rows) - base
		if count > 64 {
			count = 64
		}
		for k := 0; k < count; k++ {
			row := make([]bool, len(a.Out))
			for i, name := range a.Out {
				m := a.Lits[name]
				v := vs[m.Var()]>>uint(k)&1 != 0
				if !m.IsPos() {
					v = !v
				}
				row[i] = v
			}
			rows[base+k] = row
		}
	}
	return rows, nil
}

// pattern returns the 64 values input j takes over assignments
// base..base+63.
func pattern(base, j int) uint64 {
	var p uint64
	for k := 0; k < 64; k++ {
		if (base+k)>>uint(j)&1 != 0 {
			p |= 1 << uint(k)
		}
	}
	return p
}

// Equiv reports whether two chips compute the same function. The chips
// must have identical input and output pins. When they differ, the
// witness maps every input pin to a value on which some output
// disagrees.
func Equiv(cat *hdl.Catalog, nameA, nameB string) (eq bool, witness map[string]bool, err error) {
	inA, outA, ok := cat.Pins(nameA)
	if !ok {
		return false, nil, errors.Errorf("unknown part %s", nameA)
	}
	inB, outB, ok := cat.Pins(nameB)
	if !ok {
		return false, nil, errors.Errorf("unknown part %s", nameB)
	}
	if !samePins(inA, inB) || !samePins(outA, outB) {
		return false, nil, errors.Errorf("%s and %s have different pin interfaces", nameA, nameB)
	}

	s := newSynth(cat)
	ma, err := s.model(nameA)
	if err != nil {
		return false, nil, err
	}
	mb, err := s.model(nameB)
	if err != nil {
		return false, nil, err
	}

	// one shared input literal per pin
	lits := make(map[string]z.Lit, len(inA))
	insA := make([]z.Lit, len(inA))
	for i, n := range inA {
		insA[i] = s.c.Lit()
		lits[n] = insA[i]
	}
	insB := make([]z.Lit, len(inB))
	for i, n := range inB {
		insB[i] = lits[n]
	}
	outsA, err := ma(insA)
	if err != nil {
		return false, nil, err
	}
	outsB, err := mb(insB)
	if err != nil {
		return false, nil, err
	}

	// miter: some output pair differs
	byName := make(map[string]z.Lit, len(outB))
	for i, n := range outB {
		byName[n] = outsB[i]
	}
	diff := make([]z.Lit, len(outA))
	for i, n := range outA {
		diff[i] = s.c.Xor(outsA[i], byName[n])
	}
	miter := s.c.Ors(diff...)
	if miter == s.c.F {
		return true, nil, nil
	}

	sat := gini.New()
	s.c.ToCnfFrom(sat, miter)
	sat.Assume(miter)
	if sat.Solve() != 1 {
		return true, nil, nil
	}
	w := make(map[string]bool, len(lits))
	for n, m := range lits {
		w[n] = sat.Value(m)
	}
	return false, w, nil
}

func samePins(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// A model builds a chip's output literals from its input literals, both
// in expanded pin order.
type model func(in []z.Lit) ([]z.Lit, error)

type synth struct {
	cat    *hdl.Catalog
	c      *logic.C
	models map[string]model
}

func newSynth(cat *hdl.Catalog) *synth {
	return &synth{cat: cat, c: logic.NewC(), models: make(map[string]model)}
}

func (s *synth) model(name string) (model, error) {
	if m, ok := s.models[name]; ok {
		return m, nil
	}
	if p, ok := prims[name]; ok {
		m := model(func(in []z.Lit) ([]z.Lit, error) { return p(s.c, in), nil })
		s.models[name] = m
		return m, nil
	}
	d := s.cat.Decl(name)
	if d == nil {
		if _, _, ok := s.cat.Pins(name); ok {
			return nil, errors.Errorf("no combinational model for part %s", name)
		}
		return nil, errors.Errorf("unknown part %s", name)
	}
	m, err := s.chipModel(d)
	if err != nil {
		return nil, err
	}
	s.models[name] = m
	return m, nil
}

// a part statement with its model and pin interface resolved
type stmt struct {
	st     hdl.PartStmt
	m      model
	in     []string
	out    []string
	outIdx map[string]int
}

// chipModel builds the model of an HDL-defined chip. Part statements
// run as their input nets become defined, in as many passes as needed;
// a pass without progress means a combinational cycle or a net only
// defined through the clock.
func (s *synth) chipModel(d *hdl.ChipDecl) (model, error) {
	chipIn, chipOut, _ := s.cat.Pins(d.Name)

	stmts := make([]*stmt, len(d.Parts))
	for i, st := range d.Parts {
		m, err := s.model(st.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "chip %s", d.Name)
		}
		in, out, _ := s.cat.Pins(st.Name)
		ps := &stmt{st: st, m: m, in: in, out: out, outIdx: make(map[string]int, len(out))}
		for j, n := range out {
			ps.outIdx[n] = j
		}
		for _, ce := range st.Conns {
			if ce.Net.Name == netsim.Clk {
				return nil, errors.Errorf("chip %s: part %s reads the clock", d.Name, st.Name)
			}
		}
		stmts[i] = ps
	}

	return func(in []z.Lit) ([]z.Lit, error) {
		env := make(map[string]z.Lit, len(chipIn)+len(chipOut))
		for i, n := range chipIn {
			env[n] = in[i]
		}
		pending := stmts
		for len(pending) > 0 {
			var next []*stmt
			for _, ps := range pending {
				if !s.ready(env, ps) {
					next = append(next, ps)
					continue
				}
				if err := s.run(env, ps); err != nil {
					return nil, errors.Wrapf(err, "chip %s", d.Name)
				}
			}
			if len(next) == len(pending) {
				return nil, errors.Errorf("chip %s: combinational cycle through part %s", d.Name, next[0].st.Name)
			}
			pending = next
		}
		out := make([]z.Lit, len(chipOut))
		for i, n := range chipOut {
			m, ok := env[n]
			if !ok {
				return nil, errors.Errorf("chip %s: output pin %s not driven", d.Name, n)
			}
			out[i] = m
		}
		return out, nil
	}, nil
}

// ready reports whether all input nets of the statement are defined.
func (s *synth) ready(env map[string]z.Lit, ps *stmt) bool {
	for _, ce := range ps.st.Conns {
		names, ok := expandPort(ps.in, ce.Port)
		if !ok {
			continue // output port
		}
		if _, ok := s.netLits(env, ce.Net, len(names)); !ok {
			return false
		}
	}
	return true
}

// run evaluates one part statement, binding its output nets in env.
func (s *synth) run(env map[string]z.Lit, ps *stmt) error {
	vals := make(map[string]z.Lit, len(ps.in))
	for _, ce := range ps.st.Conns {
		names, ok := expandPort(ps.in, ce.Port)
		if !ok {
			continue
		}
		lits, _ := s.netLits(env, ce.Net, len(names))
		for i, n := range names {
			vals[n] = lits[i]
		}
	}
	// unconnected inputs read as a constant false
	in := make([]z.Lit, len(ps.in))
	for i, n := range ps.in {
		if m, ok := vals[n]; ok {
			in[i] = m
		} else {
			in[i] = s.c.F
		}
	}
	out, err := ps.m(in)
	if err != nil {
		return err
	}
	for _, ce := range ps.st.Conns {
		names, ok := expandPort(ps.out, ce.Port)
		if !ok {
			continue
		}
		keys := netKeys(ce.Net, len(names))
		for i, n := range names {
			env[keys[i]] = out[ps.outIdx[n]]
		}
	}
	return nil
}

// netLits resolves a net expression of the given width to literals.
func (s *synth) netLits(env map[string]z.Lit, e hdl.PinExpr, w int) ([]z.Lit, bool) {
	switch e.Name {
	case netsim.True, netsim.False:
		m := s.c.F
		if e.Name == netsim.True {
			m = s.c.T
		}
		lits := make([]z.Lit, w)
		for i := range lits {
			lits[i] = m
		}
		return lits, true
	}
	keys := netKeys(e, w)
	lits := make([]z.Lit, len(keys))
	for i, k := range keys {
		m, ok := env[k]
		if !ok {
			return nil, false
		}
		lits[i] = m
	}
	return lits, true
}

// netKeys returns the env keys a net expression of width w covers.
func netKeys(e hdl.PinExpr, w int) []string {
	if e.Indexed {
		keys := make([]string, 0, e.Hi-e.Lo+1)
		for i := e.Lo; i <= e.Hi; i++ {
			keys = append(keys, e.Name+"["+strconv.Itoa(i)+"]")
		}
		return keys
	}
	if w == 1 {
		return []string{e.Name}
	}
	keys := make([]string, w)
	for i := range keys {
		keys[i] = e.Name + "[" + strconv.Itoa(i) + "]"
	}
	return keys
}

// expandPort returns the expanded pin names a port expression covers,
// or false if the pin list has no such port.
func expandPort(list []string, e hdl.PinExpr) ([]string, bool) {
	for _, n := range list {
		if n == e.Name {
			if e.Indexed {
				return nil, false
			}
			return []string{n}, true
		}
	}
	var names []string
	prefix := e.Name + "["
	for _, n := range list {
		if strings.HasPrefix(n, prefix) {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	if !e.Indexed {
		return names, true
	}
	if e.Hi >= len(names) {
		return nil, false
	}
	return names[e.Lo : e.Hi+1], true
}

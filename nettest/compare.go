// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package nettest provides utility functions for testing circuits.
package nettest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/dtbx/netsim"
)

// connString maps every pin in the given lists to a net of the same
// name.
func connString(in, out []string) string {
	var b strings.Builder
	for _, n := range in {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	for _, n := range out {
		if b.Len() > 0 {
			b.WriteRune(',')
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(n)
	}
	return b.String()
}

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

// ComparePart drives two parts with the same inputs and fails the test
// on the first output divergence. Both parts must have the same pin
// interface. Inputs are exercised on all-zeros, all-ones and random
// assignments, one clock cycle each, so sequential parts see identical
// tick sequences too.
func ComparePart(t *testing.T, tpc uint, part1, part2 netsim.NewPartFn) {
	rand.Seed(time.Now().UnixNano())

	ps1, ps2 := part1(""), part2("")

	if len(ps1.Inputs) != len(ps2.Inputs) {
		t.Fatalf("input pin count mismatch: %d != %d", len(ps1.Inputs), len(ps2.Inputs))
	}
	if len(ps1.Outputs) != len(ps2.Outputs) {
		t.Fatalf("output pin count mismatch: %d != %d", len(ps1.Outputs), len(ps2.Outputs))
	}
	for i := range ps1.Inputs {
		if ps1.Inputs[i] != ps2.Inputs[i] {
			t.Fatalf("input pin %q != %q", ps1.Inputs[i], ps2.Inputs[i])
		}
	}
	for i := range ps1.Outputs {
		if ps1.Outputs[i] != ps2.Outputs[i] {
			t.Fatalf("output pin %q != %q", ps1.Outputs[i], ps2.Outputs[i])
		}
	}

	conns := connString(ps1.Inputs, ps1.Outputs)
	ps1, ps2 = part1(conns), part2(conns)

	inputs := make([]bool, len(ps1.Inputs))
	outputs := make([][2]bool, len(ps1.Outputs))

	// wrap each part with its own set of output probes
	parts1 := netsim.Parts{ps1}
	for i, o := range ps1.Outputs {
		n := i
		parts1 = append(parts1, netsim.Output(func(b bool) { outputs[n][0] = b })("in="+o))
	}
	parts2 := netsim.Parts{ps2}
	for i, o := range ps2.Outputs {
		n := i
		parts2 = append(parts2, netsim.Output(func(b bool) { outputs[n][1] = b })("in="+o))
	}
	w1, err := netsim.Chip("wrapper1", ps1.Inputs, nil, parts1)
	if err != nil {
		t.Fatal(err)
	}
	w2, err := netsim.Chip("wrapper2", ps2.Inputs, nil, parts2)
	if err != nil {
		t.Fatal(err)
	}

	var parts netsim.Parts
	for i, n := range ps1.Inputs {
		k := i
		parts = append(parts, netsim.Input(func() bool { return inputs[k] })("out="+n))
	}
	cstr := connString(ps1.Inputs, nil)
	parts = append(parts, w1(cstr), w2(cstr))

	c, err := netsim.NewCircuit(0, tpc, parts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	errString := func(oname string, ex, got bool) string {
		var b strings.Builder
		for i, n := range ps1.Inputs {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", n, inputs[i])
		}
		return fmt.Sprintf("\nExpected %s => %s=%v\nGot %v", b.String(), oname, ex, got)
	}

	compare := func() {
		c.Tock()
		c.Tick()
		for o, out := range outputs {
			if out[0] != out[1] {
				t.Fatal(errString(ps1.Outputs[o], out[0], out[1]))
			}
		}
	}

	iter := len(ps1.Inputs)
	if iter > 12 {
		iter = 12
	}
	iter = 1 << uint(iter)

	start := time.Now()
	c.Tick()

	// all zeros
	compare()

	// all ones
	for in := range inputs {
		inputs[in] = true
	}
	compare()

	for i := 0; i < iter; i++ {
		for in := range inputs {
			inputs[in] = randBool()
		}
		compare()
	}

	elapsed := time.Since(start)
	ticks := c.Steps() / c.SPC()
	t.Logf("%d components. %d steps in %v. %d clock ticks => %.2f Hz", c.Size(), c.Steps(), elapsed, ticks, float64(ticks)/(float64(elapsed)/float64(time.Second)))
}

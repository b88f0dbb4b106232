package chips_test

import (
	"testing"

	"github.com/dtbx/netsim"
	"github.com/dtbx/netsim/chips"
)

func TestOr8Way(t *testing.T) {
	or8, err := chips.Or8Way()
	if err != nil {
		t.Fatal(err)
	}
	var in int64
	var out bool
	c, err := netsim.NewCircuit(0, 8, netsim.Parts{
		netsim.InputN(8, func() int64 { return in })("out[0..7]=in[0..7]"),
		or8("in[0..7]=in[0..7], out=out"),
		netsim.Output(func(v bool) { out = v })("in=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	for i := int64(0); i < 256; i++ {
		in = i
		c.TickTock()
		if out != (i != 0) {
			t.Errorf("Or8Way(%#08b) = %v, expected %v", i, out, i != 0)
		}
	}
}

func TestBranch(t *testing.T) {
	branch, err := chips.Branch()
	if err != nil {
		t.Fatal(err)
	}
	var lt, eq, gt, ng, zr, out bool
	c, err := netsim.NewCircuit(0, 8, netsim.Parts{
		netsim.Input(func() bool { return lt })("out=lt"),
		netsim.Input(func() bool { return eq })("out=eq"),
		netsim.Input(func() bool { return gt })("out=gt"),
		netsim.Input(func() bool { return ng })("out=ng"),
		netsim.Input(func() bool { return zr })("out=zr"),
		branch("lt=lt, eq=eq, gt=gt, ng=ng, zr=zr, out=out"),
		netsim.Output(func(v bool) { out = v })("in=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	for i := 0; i < 32; i++ {
		lt = i&16 != 0
		eq = i&8 != 0
		gt = i&4 != 0
		ng = i&2 != 0
		zr = i&1 != 0
		c.TickTock()
		want := lt && ng || eq && zr || gt && !ng && !zr
		if out != want {
			t.Errorf("lt=%v eq=%v gt=%v ng=%v zr=%v: out = %v, expected %v",
				lt, eq, gt, ng, zr, out, want)
		}
	}
}

func TestPC(t *testing.T) {
	pc, err := chips.PC()
	if err != nil {
		t.Fatal(err)
	}
	var in, out int64
	var load, inc, reset bool
	c, err := netsim.NewCircuit(0, 16, netsim.Parts{
		netsim.InputN(16, func() int64 { return in })("out[0..15]=in[0..15]"),
		netsim.Input(func() bool { return load })("out=load"),
		netsim.Input(func() bool { return inc })("out=inc"),
		netsim.Input(func() bool { return reset })("out=reset"),
		pc("in[0..15]=in[0..15], load=load, inc=inc, reset=reset, out[0..15]=out[0..15]"),
		netsim.OutputN(16, func(v int64) { out = v })("in[0..15]=out[0..15]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	type ctl struct {
		in    int64
		load  bool
		inc   bool
		reset bool
	}
	seq := []ctl{
		{0, false, false, false}, // hold at 0
		{0, false, true, false},  // start counting
		{0, false, true, false},
		{0x1234, true, false, false}, // jump
		{0, false, true, false},      // count from there
		{0, false, true, false},
		{0, false, false, false},    // hold
		{0, true, true, true},       // reset wins over load and inc
		{0x00ff, true, false, true}, // reset wins over load
		{0x00ff, true, true, false}, // load wins over inc
		{0xffff, true, false, false},
		{0, false, true, false}, // wrap around
		{0, false, true, false},
	}
	// the counter shows the result of the controls driven during the
	// previous cycle. Nets power up to zero, so prev starts all zero.
	var cur int64
	var prev ctl
	for i, s := range seq {
		in, load, inc, reset = s.in, s.load, s.inc, s.reset
		c.TickTock()
		switch {
		case prev.reset:
			cur = 0
		case prev.load:
			cur = prev.in
		case prev.inc:
			cur = (cur + 1) & 0xffff
		}
		if out != cur {
			t.Errorf("step %d %+v: out = %#x, expected %#x", i, prev, out, cur)
		}
		prev = s
	}
}

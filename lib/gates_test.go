package lib_test

import (
	"strings"
	"testing"
	"testing/quick"

	"github.com/dtbx/netsim"
	"github.com/dtbx/netsim/lib"
	"github.com/dtbx/netsim/nettest"
)

const testTPC = 8

func testGate(t *testing.T, gate netsim.NewPartFn, result [][]bool) {
	t.Helper()
	part := gate("").PartSpec
	inputs := make([]bool, len(part.Inputs))
	outputs := make([]bool, len(part.Outputs))
	var w strings.Builder
	parts := make(netsim.Parts, 0, len(part.Inputs)+len(part.Outputs)+1)
	for i, n := range part.Inputs {
		w.WriteByte(',')
		w.WriteString(n)
		w.WriteByte('=')
		w.WriteString(n)
		in := &inputs[i]
		parts = append(parts, netsim.Input(func() bool { return *in })("out="+n))
	}
	for i, n := range part.Outputs {
		w.WriteByte(',')
		w.WriteString(n)
		w.WriteByte('=')
		w.WriteString(n)
		out := &outputs[i]
		parts = append(parts, netsim.Output(func(v bool) { *out = v })("in="+n))
	}
	parts = append(parts, gate(w.String()[1:]))
	c, err := netsim.NewCircuit(0, testTPC, parts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	tot := 1 << uint(len(part.Inputs))
	for i := 0; i < tot; i++ {
		for bit := range inputs {
			inputs[len(inputs)-bit-1] = i&(1<<uint(bit)) != 0
		}
		c.TickTock()
		for o, out := range outputs {
			if exp := result[o][i]; exp != out {
				t.Errorf("%s %v = %v, got %v", part.Name, inputs, exp, out)
			}
		}
	}
}

func Test_gates(t *testing.T) {
	tr, err := netsim.Chip("TRUE", netsim.In("a"), netsim.Out("out"), netsim.Parts{
		lib.And("a=true, b=true, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	fa, err := netsim.Chip("FALSE", netsim.In("a"), netsim.Out("out"), netsim.Parts{
		lib.Or("a=false, b=false, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		name   string
		gate   netsim.NewPartFn
		result [][]bool // inputs count up, first pin is the high bit
	}{
		{"NOT", lib.Not, [][]bool{{true, false}}},
		{"AND", lib.And, [][]bool{{false, false, false, true}}},
		{"NAND", lib.Nand, [][]bool{{true, true, true, false}}},
		{"OR", lib.Or, [][]bool{{false, true, true, true}}},
		{"NOR", lib.Nor, [][]bool{{true, false, false, false}}},
		{"XOR", lib.Xor, [][]bool{{false, true, true, false}}},
		{"XNOR", lib.Xnor, [][]bool{{true, false, false, true}}},
		{"TRUE", tr, [][]bool{{true, true}}},
		{"FALSE", fa, [][]bool{{false, false}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			testGate(t, d.gate, d.result)
		})
	}
}

func Test_gateN(t *testing.T) {
	twoIn := "a[0..15]=a[0..15], b[0..15]=b[0..15], out[0..15]=out[0..15]"
	nand16 := lib.GateN("NAND", 16, func(a, b bool) bool { return !(a && b) })
	td := []struct {
		gate netsim.Part
		ctrl func(a, b int16) int16
	}{
		{lib.And16(twoIn), func(a, b int16) int16 { return a & b }},
		{lib.Or16(twoIn), func(a, b int16) int16 { return a | b }},
		{nand16(twoIn), func(a, b int16) int16 { return ^(a & b) }},
		{lib.Not16("in[0..15]=a[0..15], out[0..15]=out[0..15]"), func(a, b int16) int16 { return ^a }},
	}
	for _, d := range td {
		t.Run(d.gate.Name, func(t *testing.T) {
			var a, b, out int16

			chip, err := netsim.Chip(d.gate.Name+"wrapper", netsim.In("a[16], b[16]"), netsim.Out("out[16]"), netsim.Parts{
				d.gate,
			})
			if err != nil {
				t.Fatal(err)
			}
			c, err := netsim.NewCircuit(0, testTPC, netsim.Parts{
				netsim.InputN(16, func() int64 { return int64(a) })("out[0..15]=a[0..15]"),
				netsim.InputN(16, func() int64 { return int64(b) })("out[0..15]=b[0..15]"),
				chip(twoIn),
				netsim.OutputN(16, func(v int64) { out = int16(v) })("in[0..15]=out[0..15]"),
			})
			if err != nil {
				t.Fatal(err)
			}
			defer c.Dispose()

			f := func(x, y int16) bool {
				a, b = x, y
				c.TickTock()
				return out == d.ctrl(x, y)
			}
			if err = quick.Check(f, nil); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestOrNWay(t *testing.T) {
	or4, err := netsim.Chip("myOr4Way", netsim.In("in[4]"), netsim.Out("out"), netsim.Parts{
		lib.Or("a=in[0], b=in[1], out=o1"),
		lib.Or("a=in[2], b=in[3], out=o2"),
		lib.Or("a=o1, b=o2, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	nettest.ComparePart(t, 4, lib.OrNWay(4), or4)
}

func TestAndNWay(t *testing.T) {
	and4, err := netsim.Chip("myAnd4Way", netsim.In("in[4]"), netsim.Out("out"), netsim.Parts{
		lib.And("a=in[0], b=in[1], out=o1"),
		lib.And("a=in[2], b=in[3], out=o2"),
		lib.And("a=o1, b=o2, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	nettest.ComparePart(t, 4, lib.AndNWay(4), and4)
}

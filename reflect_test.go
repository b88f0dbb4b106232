package netsim_test

import (
	"testing"

	ns "github.com/dtbx/netsim"
)

type rmux struct {
	A, B int `hw:"in"`
	S    int `hw:"in,sel"`
	Out  int `hw:"out"`
}

func (m *rmux) Update(c *ns.Circuit) {
	if c.Get(m.S) {
		c.Set(m.Out, c.Get(m.B))
	} else {
		c.Set(m.Out, c.Get(m.A))
	}
}

type not4 struct {
	In  [4]int `hw:"in"`
	Out [4]int `hw:"out"`
}

func (g *not4) Update(c *ns.Circuit) {
	for i := range g.In {
		c.Set(g.Out[i], !c.Get(g.In[i]))
	}
}

func TestMakePart(t *testing.T) {
	spec := ns.MakePart(&rmux{})
	if spec.Name != "rmux" {
		t.Errorf("spec.Name = %q", spec.Name)
	}
	for i, n := range []string{"a", "b", "sel"} {
		if spec.Inputs[i] != n {
			t.Errorf("spec.Inputs[%d] = %q, expected %q", i, spec.Inputs[i], n)
		}
	}
	if len(spec.Outputs) != 1 || spec.Outputs[0] != "out" {
		t.Errorf("spec.Outputs = %v", spec.Outputs)
	}
	testGate(t, spec.NewPart, [][]bool{
		{false, false, false, true, true, false, true, true},
	})
}

func TestMakePart_bus(t *testing.T) {
	spec := ns.MakePart(&not4{})
	var in, out int64
	c, err := ns.NewCircuit(0, testTPC, ns.Parts{
		ns.InputN(4, func() int64 { return in })("out[0..3]=a[0..3]"),
		spec.NewPart("in[0..3]=a[0..3], out[0..3]=b[0..3]"),
		ns.OutputN(4, func(v int64) { out = v })("in[0..3]=b[0..3]"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	for in = 0; in < 16; in++ {
		c.TickTock()
		if out != ^in&15 {
			t.Errorf("in = %04b: out = %04b, expected %04b", in, out, ^in&15)
		}
	}
}

package nettest_test

import (
	"testing"

	"github.com/dtbx/netsim"
	"github.com/dtbx/netsim/lib"
	"github.com/dtbx/netsim/nettest"
)

func TestComparePart(t *testing.T) {
	or, err := netsim.Chip("customOR", netsim.In("a, b"), netsim.Out("out"), netsim.Parts{
		lib.Nand("a=a, b=a, out=notA"),
		lib.Nand("a=b, b=b, out=notB"),
		lib.Nand("a=notA, b=notB, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	nettest.ComparePart(t, 2, or, lib.Or)
}

func TestComparePart_sequential(t *testing.T) {
	// a Bit register built from a DFF and a feedback mux
	bit, err := netsim.Chip("customBIT", netsim.In("in, load"), netsim.Out("out"), netsim.Parts{
		lib.Mux("a=out, b=in, sel=load, out=next"),
		lib.DFF("in=next, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	nettest.ComparePart(t, 4, bit, lib.Bit)
}

package netsim_test

import (
	"strings"
	"testing"

	ns "github.com/dtbx/netsim"
)

func TestIO(t *testing.T) {
	data := []struct {
		spec string
		pins []string
		err  string
	}{
		{"a, b", []string{"a", "b"}, ""},
		{"in[2], sel", []string{"in[0]", "in[1]", "sel"}, ""},
		{"a[1]", []string{"a[0]"}, ""},
		{"", nil, ""},
		{"a[0..3]", nil, "ranges are not allowed in pin declarations"},
		{"a=b", nil, "unexpected"},
		{"a b", nil, "unexpected"},
		{"2", nil, "expected pin name"},
	}
	for _, d := range data {
		pins, err := ns.IO(d.spec)
		if d.err != "" {
			if err == nil || !strings.Contains(err.Error(), d.err) {
				t.Errorf("IO(%q): got error %v, expected %q", d.spec, err, d.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("IO(%q): %v", d.spec, err)
			continue
		}
		if len(pins) != len(d.pins) {
			t.Errorf("IO(%q) = %v, expected %v", d.spec, pins, d.pins)
			continue
		}
		for i := range pins {
			if pins[i] != d.pins[i] {
				t.Errorf("IO(%q) = %v, expected %v", d.spec, pins, d.pins)
				break
			}
		}
	}
}

func TestNewPart_panics(t *testing.T) {
	mustPanic := func(name string, fn ns.NewPartFn, conn string) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: NewPart(%q) did not panic", name, conn)
			}
		}()
		fn(conn)
	}
	bus2 := ns.InputN(2, func() int64 { return 0 })
	mustPanic("unknown_pin", nand.NewPart, "typo=x")
	mustPanic("bad_index", nand.NewPart, "a[1]=x")
	mustPanic("count_mismatch", bus2, "out[0..1]=x[0..2]")
	mustPanic("syntax", nand.NewPart, "a=")

	// sanity: valid descriptions do not panic
	nand.NewPart("a=x, b=true, out=y")
	nand.NewPart("")
}

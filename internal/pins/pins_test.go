package pins_test

import (
	"strings"
	"testing"

	"github.com/dtbx/netsim/internal/pins"
)

func TestParser_declarations(t *testing.T) {
	p := pins.Parser{Input: "a, b[4], c[0..3]"}
	e, err := p.Next(false)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := e.(pins.Name); !ok || n.Ident != "a" {
		t.Errorf("expected Name a, got %#v", e)
	}
	e, err = p.Next(false)
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := e.(pins.Index); !ok || i.Ident != "b" || i.I != 4 {
		t.Errorf("expected Index b[4], got %#v", e)
	}
	e, err = p.Next(false)
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := e.(pins.Span); !ok || s.Ident != "c" || s.Lo != 0 || s.Hi != 3 {
		t.Errorf("expected Span c[0..3], got %#v", e)
	}
	e, err = p.Next(false)
	if e != nil || err != nil {
		t.Errorf("expected end of input, got %#v, %v", e, err)
	}
	// the parser stays done
	e, err = p.Next(false)
	if e != nil || err != nil {
		t.Errorf("expected end of input, got %#v, %v", e, err)
	}
}

func TestParser_assignments(t *testing.T) {
	p := pins.Parser{Input: "a=x[1], b[0..1]=y"}
	e, err := p.Next(true)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := e.(pins.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %#v", e)
	}
	if n, ok := a.LHS.(pins.Name); !ok || n.Ident != "a" {
		t.Errorf("LHS = %#v", a.LHS)
	}
	if i, ok := a.RHS.(pins.Index); !ok || i.Ident != "x" || i.I != 1 {
		t.Errorf("RHS = %#v", a.RHS)
	}
	e, err = p.Next(true)
	if err != nil {
		t.Fatal(err)
	}
	a, ok = e.(pins.Assign)
	if !ok {
		t.Fatalf("expected Assign, got %#v", e)
	}
	if s, ok := a.LHS.(pins.Span); !ok || s.Lo != 0 || s.Hi != 1 {
		t.Errorf("LHS = %#v", a.LHS)
	}
	if e, err = p.Next(true); e != nil || err != nil {
		t.Errorf("expected end of input, got %#v, %v", e, err)
	}
}

func TestParser_errors(t *testing.T) {
	data := []struct {
		input  string
		assign bool
		err    string
	}{
		{"a=x", false, "unexpected"},
		{"a=", true, "expected pin name"},
		{"a[", true, "integer expected after '['"},
		{"a[1", true, "closing ']' expected"},
		{"a[0..]", true, "integer expected after '..'"},
		{"a x", true, "unexpected"},
		{"=x", true, "expected pin name"},
		{"a[1]]", true, "unexpected"},
	}
	for _, d := range data {
		p := pins.Parser{Input: d.input}
		var err error
		var e interface{}
		for {
			e, err = p.Next(d.assign)
			if e == nil || err != nil {
				break
			}
		}
		if err == nil || !strings.Contains(err.Error(), d.err) {
			t.Errorf("%q: got error %v, expected %q", d.input, err, d.err)
		}
	}
}

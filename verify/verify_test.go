package verify_test

import (
	"strings"
	"testing"

	"github.com/dtbx/netsim/hdl"
	"github.com/dtbx/netsim/verify"
)

const myXorSrc = `
CHIP MyXor {
	IN a, b;
	OUT out;

	PARTS:
	Nand(a=a, b=b, out=nab);
	Nand(a=a, b=nab, out=w0);
	Nand(a=b, b=nab, out=w1);
	Nand(a=w0, b=w1, out=out);
}
`

const or8WaySrc = `
CHIP Or8Way {
	IN in[8];
	OUT out;

	PARTS:
	Or(a=in[0], b=in[1], out=o01);
	Or(a=in[2], b=in[3], out=o23);
	Or(a=in[4], b=in[5], out=o45);
	Or(a=in[6], b=in[7], out=o67);
	Or(a=o01, b=o23, out=o03);
	Or(a=o45, b=o67, out=o47);
	Or(a=o03, b=o47, out=out);
}
`

func TestCompile_prim(t *testing.T) {
	cat := hdl.DefaultCatalog()
	a, err := verify.Compile(cat, "Xor")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := a.TruthTable()
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{false, true, true, false}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row[0] != want[i] {
			t.Errorf("row %d = %v, expected %v", i, row[0], want[i])
		}
	}
}

func TestCompile_chip(t *testing.T) {
	cat := hdl.DefaultCatalog()
	if err := cat.Load(myXorSrc); err != nil {
		t.Fatal(err)
	}
	a, err := verify.Compile(cat, "MyXor")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		in := map[string]bool{"a": i&2 != 0, "b": i&1 != 0}
		out := a.Eval(in)
		if want := in["a"] != in["b"]; out["out"] != want {
			t.Errorf("a=%v b=%v: out = %v, expected %v", in["a"], in["b"], out["out"], want)
		}
	}
}

func TestTruthTable_Or8Way(t *testing.T) {
	cat := hdl.DefaultCatalog()
	if err := cat.Load(or8WaySrc); err != nil {
		t.Fatal(err)
	}
	a, err := verify.Compile(cat, "Or8Way")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := a.TruthTable()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 256 {
		t.Fatalf("expected 256 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row[0] != (i != 0) {
			t.Errorf("row %d = %v, expected %v", i, row[0], i != 0)
		}
	}
}

func TestEquiv(t *testing.T) {
	cat := hdl.DefaultCatalog()
	if err := cat.Load(myXorSrc); err != nil {
		t.Fatal(err)
	}
	eq, w, err := verify.Equiv(cat, "MyXor", "Xor")
	if err != nil {
		t.Fatal(err)
	}
	if !eq || w != nil {
		t.Errorf("Equiv(MyXor, Xor) = %v, %v", eq, w)
	}
}

func TestEquiv_add(t *testing.T) {
	cat := hdl.DefaultCatalog()
	err := cat.Load(`
CHIP MyInc {
	IN in[16];
	OUT out[16];

	PARTS:
	Add16(a=in, b[0]=true, b[1..15]=false, out=out);
}
`)
	if err != nil {
		t.Fatal(err)
	}
	eq, w, err := verify.Equiv(cat, "MyInc", "Inc16")
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Errorf("Equiv(MyInc, Inc16) = false, witness %v", w)
	}
}

func TestEquiv_witness(t *testing.T) {
	cat := hdl.DefaultCatalog()
	err := cat.Load(`
CHIP AlmostXor {
	IN a, b;
	OUT out;

	PARTS:
	Or(a=a, b=b, out=out);
}
`)
	if err != nil {
		t.Fatal(err)
	}
	eq, w, err := verify.Equiv(cat, "AlmostXor", "Xor")
	if err != nil {
		t.Fatal(err)
	}
	if eq {
		t.Fatal("Equiv(AlmostXor, Xor) = true")
	}
	if w == nil {
		t.Fatal("no witness")
	}
	// the witness must actually expose the difference
	aor, err := verify.Compile(cat, "AlmostXor")
	if err != nil {
		t.Fatal(err)
	}
	axor, err := verify.Compile(cat, "Xor")
	if err != nil {
		t.Fatal(err)
	}
	if aor.Eval(w)["out"] == axor.Eval(w)["out"] {
		t.Errorf("witness %v does not distinguish the chips", w)
	}
}

func TestVerify_errors(t *testing.T) {
	cat := hdl.DefaultCatalog()
	err := cat.Load(`
CHIP Delay { IN in; OUT out; PARTS: DFF(in=in, out=out); }
CHIP Loop { IN a; OUT out; PARTS: Nand(a=a, b=w, out=w); Or(a=w, b=a, out=out); }
CHIP Gated { IN a; OUT out; PARTS: And(a=a, b=clk, out=out); }
`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err = verify.Compile(cat, "Nope"); err == nil ||
		!strings.Contains(err.Error(), "unknown part Nope") {
		t.Errorf("Compile(Nope): %v", err)
	}
	if _, err = verify.Compile(cat, "Delay"); err == nil ||
		!strings.Contains(err.Error(), "no combinational model for part DFF") {
		t.Errorf("Compile(Delay): %v", err)
	}
	if _, err = verify.Compile(cat, "Loop"); err == nil ||
		!strings.Contains(err.Error(), "combinational cycle") {
		t.Errorf("Compile(Loop): %v", err)
	}
	if _, err = verify.Compile(cat, "Gated"); err == nil ||
		!strings.Contains(err.Error(), "reads the clock") {
		t.Errorf("Compile(Gated): %v", err)
	}
	if _, _, err = verify.Equiv(cat, "Xor", "Not"); err == nil ||
		!strings.Contains(err.Error(), "different pin interfaces") {
		t.Errorf("Equiv(Xor, Not): %v", err)
	}
	if _, _, err = verify.Equiv(cat, "Xor", "Nope"); err == nil ||
		!strings.Contains(err.Error(), "unknown part Nope") {
		t.Errorf("Equiv(Xor, Nope): %v", err)
	}
}

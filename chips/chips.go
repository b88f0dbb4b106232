// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package chips builds the course chips out of lib parts: an 8-way OR
// tree, a conditional-branch evaluator and a 16-bit program counter.
package chips

import (
	"github.com/dtbx/netsim"
	"github.com/dtbx/netsim/lib"
)

// Or8Way composes an 8-way OR tree out of two-input OR gates.
//
//	Inputs: in[8]
//	Outputs: out
//	Function: out = in[0] || in[1] || ... || in[7]
func Or8Way() (netsim.NewPartFn, error) {
	return netsim.Chip("Or8Way", netsim.In("in[8]"), netsim.Out("out"), netsim.Parts{
		lib.Or("a=in[0], b=in[1], out=o01"),
		lib.Or("a=in[2], b=in[3], out=o23"),
		lib.Or("a=in[4], b=in[5], out=o45"),
		lib.Or("a=in[6], b=in[7], out=o67"),
		lib.Or("a=o01, b=o23, out=o03"),
		lib.Or("a=o45, b=o67, out=o47"),
		lib.Or("a=o03, b=o47, out=out"),
	})
}

// Branch composes the conditional-branch evaluator. lt, eq and gt
// select which comparison outcomes to branch on; ng and zr are the
// negative and zero flags of the value under test. The flags rank
// negative first, then zero, then positive: a positive value is one
// that is neither negative nor zero.
//
//	Inputs: lt, eq, gt, ng, zr
//	Outputs: out
//	Function: out = lt && ng || eq && zr || gt && !ng && !zr
func Branch() (netsim.NewPartFn, error) {
	return netsim.Chip("Branch", netsim.In("lt, eq, gt, ng, zr"), netsim.Out("out"), netsim.Parts{
		lib.Nor("a=ng, b=zr, out=pos"),
		lib.And("a=lt, b=ng, out=jlt"),
		lib.And("a=eq, b=zr, out=jeq"),
		lib.And("a=gt, b=pos, out=jgt"),
		lib.Or("a=jlt, b=jeq, out=jle"),
		lib.Or("a=jle, b=jgt, out=out"),
	})
}

// PC composes a 16-bit program counter. Control priority is reset over
// load over inc over hold, applied on the rising clock edge:
//
//	if reset(t-1)     { out(t) = 0 }
//	else if load(t-1) { out(t) = in(t-1) }
//	else if inc(t-1)  { out(t) = out(t-1) + 1 }
//	else              { out(t) = out(t-1) }
//
//	Inputs: in[16], load, inc, reset
//	Outputs: out[16]
func PC() (netsim.NewPartFn, error) {
	return netsim.Chip("PC", netsim.In("in[16], load, inc, reset"), netsim.Out("out[16]"), netsim.Parts{
		lib.Inc16("in[0..15]=out[0..15], out[0..15]=plus1[0..15]"),
		lib.Mux16("a[0..15]=out[0..15], b[0..15]=plus1[0..15], sel=inc, out[0..15]=next0[0..15]"),
		lib.Mux16("a[0..15]=next0[0..15], b[0..15]=in[0..15], sel=load, out[0..15]=next1[0..15]"),
		lib.Mux16("a[0..15]=next1[0..15], b[0..15]=false, sel=reset, out[0..15]=next2[0..15]"),
		lib.Register("in[0..15]=next2[0..15], load=true, out[0..15]=out[0..15]"),
	})
}

// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package verify

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// A prim builds the output literals of a primitive part from its input
// literals, both in expanded pin order.
type prim func(c *logic.C, in []z.Lit) []z.Lit

// prims models the combinational parts of the default catalog. DFF, Bit
// and Register have no entry: sequential parts cannot be folded into an
// and-inverter graph.
var prims = map[string]prim{
	"Nand": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.And(in[0], in[1]).Not()}
	},
	"Not": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{in[0].Not()}
	},
	"And": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.And(in[0], in[1])}
	},
	"Or": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.Or(in[0], in[1])}
	},
	"Nor": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.Or(in[0], in[1]).Not()}
	},
	"Xor": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.Xor(in[0], in[1])}
	},
	"Xnor": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.Xor(in[0], in[1]).Not()}
	},
	// in: a, b, sel
	"Mux": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.Choice(in[2], in[1], in[0])}
	},
	// in: in, sel - out: a, b
	"DMux": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.And(in[0], in[1].Not()), c.And(in[0], in[1])}
	},
	"Not16": func(c *logic.C, in []z.Lit) []z.Lit {
		out := make([]z.Lit, 16)
		for i := range out {
			out[i] = in[i].Not()
		}
		return out
	},
	"And16": func(c *logic.C, in []z.Lit) []z.Lit {
		out := make([]z.Lit, 16)
		for i := range out {
			out[i] = c.And(in[i], in[16+i])
		}
		return out
	},
	"Or16": func(c *logic.C, in []z.Lit) []z.Lit {
		out := make([]z.Lit, 16)
		for i := range out {
			out[i] = c.Or(in[i], in[16+i])
		}
		return out
	},
	// in: a[16], b[16], sel
	"Mux16": func(c *logic.C, in []z.Lit) []z.Lit {
		out := make([]z.Lit, 16)
		for i := range out {
			out[i] = c.Choice(in[32], in[16+i], in[i])
		}
		return out
	},
	// out: s, c
	"HalfAdder": func(c *logic.C, in []z.Lit) []z.Lit {
		return []z.Lit{c.Xor(in[0], in[1]), c.And(in[0], in[1])}
	},
	// in: a, b, cin - out: s, cout
	"FullAdder": func(c *logic.C, in []z.Lit) []z.Lit {
		h := c.Xor(in[0], in[1])
		return []z.Lit{
			c.Xor(h, in[2]),
			c.Or(c.And(in[0], in[1]), c.And(h, in[2])),
		}
	},
	// out: out[16], c
	"Add16": func(c *logic.C, in []z.Lit) []z.Lit {
		out := make([]z.Lit, 17)
		carry := c.F
		for i := 0; i < 16; i++ {
			a, b := in[i], in[16+i]
			h := c.Xor(a, b)
			out[i] = c.Xor(h, carry)
			carry = c.Or(c.And(a, b), c.And(h, carry))
		}
		out[16] = carry
		return out
	},
	"Inc16": func(c *logic.C, in []z.Lit) []z.Lit {
		out := make([]z.Lit, 16)
		carry := c.T
		for i := range out {
			out[i] = c.Xor(in[i], carry)
			carry = c.And(in[i], carry)
		}
		return out
	},
}

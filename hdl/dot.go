// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Dot writes a graphviz rendering of a chip declaration: one box per
// PARTS statement, one plaintext node per net, with edges directed from
// driving outputs to reading inputs. Chip inputs and outputs are placed
// on their own ranks.
func (c *Catalog) Dot(w io.Writer, d *ChipDecl) error {
	nets := make(map[string]int)
	netID := func(name string) int {
		id, ok := nets[name]
		if !ok {
			id = len(nets)
			nets[name] = id
		}
		return id
	}

	fmt.Fprintf(w, "digraph %s\n{\n", d.Name)
	fmt.Fprintf(w, "  overlap=scale;\n")
	fmt.Fprintf(w, "  node\t[fontname=\"Helvetica\"];\n")

	fmt.Fprintf(w, "  {\n    node [shape=plaintext];\n")
	for _, p := range d.Inputs {
		fmt.Fprintf(w, "    n%d\t[label=\"%s\"];\n", netID(p.Name), p.Name)
	}
	for _, p := range d.Outputs {
		fmt.Fprintf(w, "    n%d\t[label=\"%s\"];\n", netID(p.Name), p.Name)
	}
	for _, st := range d.Parts {
		for _, ce := range st.Conns {
			n := ce.Net.Name
			if _, ok := nets[n]; ok {
				continue
			}
			fmt.Fprintf(w, "    n%d\t[label=\"%s\"];\n", netID(n), n)
		}
	}
	fmt.Fprintf(w, "  }\n")

	fmt.Fprintf(w, "  {\n    node [shape=box];\n")
	for idx, st := range d.Parts {
		fmt.Fprintf(w, "    p%d\t[label=\"%s\"];\n", idx, st.Name)
	}
	fmt.Fprintf(w, "  }\n")

	fmt.Fprintf(w, "  {  rank=same")
	for _, p := range d.Inputs {
		fmt.Fprintf(w, "; n%d", nets[p.Name])
	}
	fmt.Fprintf(w, ";}\n")
	fmt.Fprintf(w, "  {  rank=same")
	for _, p := range d.Outputs {
		fmt.Fprintf(w, "; n%d", nets[p.Name])
	}
	fmt.Fprintf(w, ";}\n")

	for idx, st := range d.Parts {
		e, ok := c.parts[st.Name]
		if !ok {
			return errors.Errorf("chip %s: unknown part %s", d.Name, st.Name)
		}
		for _, ce := range st.Conns {
			n := nets[ce.Net.Name]
			if pw, _ := pinWidth(e.in, ce.Port.Name); pw > 0 {
				fmt.Fprintf(w, "  n%d -> p%d\t[label=\"%s\"];\n", n, idx, ce.Port)
			} else if pw, _ = pinWidth(e.out, ce.Port.Name); pw > 0 {
				fmt.Fprintf(w, "  p%d -> n%d\t[label=\"%s\"];\n", idx, n, ce.Port)
			} else {
				return errors.Errorf("chip %s: part %s: unknown port %s", d.Name, st.Name, ce.Port.Name)
			}
		}
	}
	fmt.Fprintf(w, "}\n")
	return nil
}

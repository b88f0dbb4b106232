// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Command netsim loads chip description files and inspects the chips
// they define.
//
//	netsim -list file.hdl...
//	netsim -chip Xor -truth file.hdl...
//	netsim -chip Xor -dot file.hdl...
//	netsim -chip Xor -equiv Other file.hdl...
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dtbx/netsim/hdl"
	"github.com/dtbx/netsim/verify"
)

var (
	chip  = flag.String("chip", "", "chip `name` to inspect")
	truth = flag.Bool("truth", false, "print the chip's truth table")
	dot   = flag.Bool("dot", false, "print the chip as a graphviz graph")
	equiv = flag.String("equiv", "", "check that the chip is equivalent to `name`")
	list  = flag.Bool("list", false, "list all parts in the catalog")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("netsim: ")
	flag.Parse()

	cat := hdl.DefaultCatalog()
	for _, name := range flag.Args() {
		if err := cat.LoadFile(name); err != nil {
			log.Fatal(err)
		}
	}

	switch {
	case *list:
		for _, n := range cat.Names() {
			in, out, _ := cat.Pins(n)
			fmt.Printf("%s\tIN %s\tOUT %s\n", n, strings.Join(in, ", "), strings.Join(out, ", "))
		}
	case *chip == "":
		flag.Usage()
		os.Exit(2)
	case *truth:
		printTruth(cat, *chip)
	case *dot:
		d := cat.Decl(*chip)
		if d == nil {
			log.Fatalf("chip %s: no chip declaration loaded", *chip)
		}
		if err := cat.Dot(os.Stdout, d); err != nil {
			log.Fatal(err)
		}
	case *equiv != "":
		eq, w, err := verify.Equiv(cat, *chip, *equiv)
		if err != nil {
			log.Fatal(err)
		}
		if eq {
			fmt.Printf("%s and %s are equivalent\n", *chip, *equiv)
			return
		}
		var b strings.Builder
		in, _, _ := cat.Pins(*chip)
		for _, n := range in {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", n, w[n])
		}
		log.Fatalf("%s and %s differ on %s", *chip, *equiv, b.String())
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printTruth(cat *hdl.Catalog, name string) {
	a, err := verify.Compile(cat, name)
	if err != nil {
		log.Fatal(err)
	}
	rows, err := a.TruthTable()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s | %s\n", strings.Join(a.In, " "), strings.Join(a.Out, " "))
	for i, row := range rows {
		for j, n := range a.In {
			fmt.Printf("%*d ", len(n), i>>uint(j)&1)
		}
		fmt.Print("|")
		for j, n := range a.Out {
			v := 0
			if row[j] {
				v = 1
			}
			fmt.Printf(" %*d", len(n), v)
		}
		fmt.Println()
	}
}

// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"sort"

	"github.com/dtbx/netsim"
	"github.com/dtbx/netsim/lib"
	"github.com/pkg/errors"
)

// A Catalog maps part names to netsim parts. HDL chip declarations
// elaborate against a catalog and are added to it, so later chips can
// instantiate earlier ones.
type Catalog struct {
	parts map[string]*entry
}

type entry struct {
	fn      netsim.NewPartFn
	in, out []string  // expanded pin names
	decl    *ChipDecl // nil for parts registered from Go
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{parts: make(map[string]*entry)}
}

// DefaultCatalog returns a catalog with the lib primitives registered
// under their usual chip names.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Register("Nand", lib.Nand)
	c.Register("Not", lib.Not)
	c.Register("And", lib.And)
	c.Register("Or", lib.Or)
	c.Register("Nor", lib.Nor)
	c.Register("Xor", lib.Xor)
	c.Register("Xnor", lib.Xnor)
	c.Register("Mux", lib.Mux)
	c.Register("DMux", lib.DMux)
	c.Register("Not16", lib.Not16)
	c.Register("And16", lib.And16)
	c.Register("Or16", lib.Or16)
	c.Register("Mux16", lib.Mux16)
	c.Register("Add16", lib.Add16)
	c.Register("Inc16", lib.Inc16)
	c.Register("HalfAdder", lib.HalfAdder)
	c.Register("FullAdder", lib.FullAdder)
	c.Register("DFF", lib.DFF)
	c.Register("Bit", lib.Bit)
	c.Register("Register", lib.Register)
	return c
}

// Register adds a part constructor under the given name, replacing any
// previous entry. The part's pin interface is taken from its spec.
func (c *Catalog) Register(name string, fn func(string) netsim.Part) {
	probe := fn("")
	c.parts[name] = &entry{
		fn:  fn,
		in:  probe.Inputs,
		out: probe.Outputs,
	}
}

// Lookup returns the constructor registered under name.
func (c *Catalog) Lookup(name string) (netsim.NewPartFn, bool) {
	e, ok := c.parts[name]
	if !ok {
		return nil, false
	}
	return e.fn, true
}

// Decl returns the parsed declaration of an HDL-defined chip, or nil
// for unknown and Go-registered parts.
func (c *Catalog) Decl(name string) *ChipDecl {
	if e, ok := c.parts[name]; ok {
		return e.decl
	}
	return nil
}

// Pins returns the expanded input and output pin names of a part.
func (c *Catalog) Pins(name string) (in, out []string, ok bool) {
	e, ok := c.parts[name]
	if !ok {
		return nil, nil, false
	}
	return e.in, e.out, true
}

// Names returns the registered part names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.parts))
	for n := range c.parts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Define elaborates a chip declaration against the catalog and
// registers the resulting part under the chip's name.
func (c *Catalog) Define(d *ChipDecl) (netsim.NewPartFn, error) {
	if _, ok := c.parts[d.Name]; ok {
		return nil, errors.Errorf("chip %s already defined", d.Name)
	}
	fn, err := c.elaborate(d)
	if err != nil {
		return nil, err
	}
	c.Register(d.Name, fn)
	c.parts[d.Name].decl = d
	return fn, nil
}

// Load parses src and defines every chip found, in order.
func (c *Catalog) Load(src string) error {
	decls, err := Parse(src)
	if err != nil {
		return err
	}
	for _, d := range decls {
		if _, err := c.Define(d); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile parses the named file and defines every chip found.
func (c *Catalog) LoadFile(name string) error {
	decls, err := ParseFile(name)
	if err != nil {
		return err
	}
	for _, d := range decls {
		if _, err := c.Define(d); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}

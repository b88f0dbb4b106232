// Copyright 2019 The netsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// A Component updates some nets of a circuit. Components read the
// current frame with Get and write the next frame with Set.
type Component func(c *Circuit)

// Reserved net names, usable in any connection description.
var (
	Clk   = "clk"
	True  = "true"
	False = "false"
)

// net numbers of the reserved nets
const (
	cstClk = iota
	cstFalse
	cstTrue
	cstCount
)

// Circuit is a runnable simulation.
type Circuit struct {
	s0    []bool // net states, current frame
	s1    []bool // net states, next frame
	cs    []Component
	count int  // net count
	spc   uint // steps per clock cycle
	step  uint

	wc []chan struct{}
	wg sync.WaitGroup
}

// NewCircuit mounts parts into a new circuit.
//
// workers is the number of goroutines updating net state each step; if
// zero or negative, GOMAXPROCS is used. The simulation semantics do not
// depend on the worker count since all components read one frame and
// write the other.
//
// stepsPerCycle sets how many simulation steps make up one clock cycle.
// It is rounded up to a power of two and must exceed the combinational
// depth of the circuit for nets to stabilize within a cycle.
func NewCircuit(workers int, stepsPerCycle uint, parts Parts) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	if stepsPerCycle < 2 {
		stepsPerCycle = 2
	}
	stepsPerCycle--
	stepsPerCycle |= stepsPerCycle >> 1
	stepsPerCycle |= stepsPerCycle >> 2
	stepsPerCycle |= stepsPerCycle >> 4
	stepsPerCycle |= stepsPerCycle >> 8
	stepsPerCycle |= stepsPerCycle >> 16
	stepsPerCycle |= stepsPerCycle >> 32
	stepsPerCycle++

	// room for the reserved nets
	cc := &Circuit{count: cstCount, spc: stepsPerCycle}
	wrap, err := Chip("TOP", nil, nil, parts)
	if err != nil {
		return nil, errors.Wrap(err, "mount top-level parts")
	}
	ups := wrap("").Mount(newSocket(cc))
	ups = append(ups, updateClock)
	cc.cs = ups
	cc.s0 = make([]bool, cc.count)
	cc.s1 = make([]bool, cc.count)
	cc.s0[cstClk] = true
	cc.s0[cstTrue] = true
	cc.s1[cstTrue] = true

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers == 0 {
		workers = 1
	}
	for len(ups) > 0 {
		size := len(ups) / workers
		if size*workers < len(ups) {
			size++
		}
		wc := make(chan struct{}, 1)
		cc.wc = append(cc.wc, wc)
		go worker(cc, ups[:size], wc)
		ups = ups[size:]
	}

	return cc, nil
}

func updateClock(c *Circuit) {
	if c.s0[cstFalse] || !c.s0[cstTrue] {
		panic("constant nets have been overwritten")
	}

	step := c.step + 1
	switch {
	case step&(c.spc-1) == 0:
		c.s1[cstClk] = true
	case step&(c.spc/2-1) == 0:
		c.s1[cstClk] = false
	default:
		c.s1[cstClk] = c.s0[cstClk]
	}
}

// Dispose stops the worker goroutines and releases the circuit.
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for range wc {
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
	c.wg.Done()
}

// allocNet allocates a net and returns its number.
func (c *Circuit) allocNet() int {
	n := c.count
	c.count++
	return n
}

// Steps returns the number of steps run so far.
func (c *Circuit) Steps() uint {
	return c.step
}

// SPC returns the number of steps per clock cycle.
func (c *Circuit) SPC() uint {
	return c.spc
}

// AtTick reports whether the current step is the beginning of a clock
// cycle (rising edge of clk). Sequential parts latch their inputs here.
func (c *Circuit) AtTick() bool {
	return c.step&(c.spc-1) == 0
}

// AtTock reports whether the current step is the beginning of the second
// half of a clock cycle (falling edge of clk).
func (c *Circuit) AtTock() bool {
	return (c.step+c.spc/2)&(c.spc-1) == 0
}

// Get returns the current state of net n.
func (c *Circuit) Get(n int) bool {
	return c.s0[n]
}

// Set sets the state of net n in the next frame.
func (c *Circuit) Set(n int, s bool) {
	c.s1[n] = s
}

// Toggle inverts the state of net n in the next frame.
func (c *Circuit) Toggle(n int) {
	c.s1[n] = !c.s0[n]
}

// Step advances the simulation by one step.
func (c *Circuit) Step() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}
	c.wg.Wait()
	c.step++
	c.s0, c.s1 = c.s1, c.s0
}

// Tick runs the simulation until the start of the next half clock cycle.
func (c *Circuit) Tick() {
	for c.Get(cstClk) {
		c.Step()
	}
}

// Tock runs the simulation until the start of the next clock cycle.
// Once Tock returns, the outputs of clocked parts have stabilized.
func (c *Circuit) Tock() {
	for !c.Get(cstClk) {
		c.Step()
	}
}

// TickTock runs the simulation for a whole clock cycle.
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Size returns the number of components in the circuit.
func (c *Circuit) Size() int { return len(c.cs) }

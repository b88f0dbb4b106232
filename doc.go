/*
Package netsim is a gate-level netlist simulator.

Chips are described by wiring parts together, either directly in Go or
through the HDL text format handled by the hdl sub-package. A part is a
blueprint (PartSpec) with named input and output pins; Chip composes
parts into a new part behind a fresh pin interface, statically checking
the wiring: every net has exactly one driver, every referenced pin
exists, no part drives a constant net.

A list of parts mounts into a Circuit, which holds the boolean state of
every net in two frames and advances one synchronous step at a time.
Sequential parts latch on the rising edge of the built-in clock net, so
feedback loops are legal only through a clocked boundary.
*/
package netsim

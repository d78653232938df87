// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"log"
	"strings"

	"github.com/ezrec/cp1/cpu"
)

// Port is one virtual 8-bit port. Each pin is an input or an output, as
// selected by its Direction bit; the last instruction to touch a pin
// decides its direction.
type Port struct {
	Direction uint8 // Set bits are outputs.
	Output    uint8 // Output latch.
	Input     uint8 // Levels applied to the pins from outside.
}

// Level returns the pin levels: the latch for outputs, and the external
// input for inputs.
func (pt *Port) Level() uint8 {
	return (pt.Output & pt.Direction) | (pt.Input &^ pt.Direction)
}

// Ports are the two virtual ports p1 and p2 of the CP1.
type Ports struct {
	Verbose bool
	Port    [cpu.PORT_COUNT]Port
}

func (ps *Ports) port(port cpu.Port) (pt *Port) {
	if port < 0 || int(port) >= len(ps.Port) {
		return
	}
	pt = &ps.Port[port]
	return
}

func validPin(pin int) bool {
	return pin >= 0 && pin < cpu.PORT_PINS
}

// BitIn configures a pin as an input, and reads it.
func (ps *Ports) BitIn(port cpu.Port, pin int) (value bool) {
	pt := ps.port(port)
	if pt == nil || !validPin(pin) {
		return
	}

	mask := uint8(1) << pin
	pt.Direction &^= mask
	value = pt.Input&mask != 0

	if ps.Verbose {
		log.Printf("%v.%d: in %v", port, pin+1, value)
	}
	return
}

// BitOut configures a pin as an output, and drives it.
func (ps *Ports) BitOut(port cpu.Port, pin int, value bool) {
	pt := ps.port(port)
	if pt == nil || !validPin(pin) {
		return
	}

	mask := uint8(1) << pin
	pt.Direction |= mask
	if value {
		pt.Output |= mask
	} else {
		pt.Output &^= mask
	}

	if ps.Verbose {
		log.Printf("%v.%d: out %v", port, pin+1, value)
	}
}

// ByteIn configures all pins of a port as inputs, and reads them.
func (ps *Ports) ByteIn(port cpu.Port) (value uint8) {
	pt := ps.port(port)
	if pt == nil {
		return
	}

	pt.Direction = 0x00
	value = pt.Input

	if ps.Verbose {
		log.Printf("%v: in 0x%02x", port, value)
	}
	return
}

// ByteOut configures all pins of a port as outputs, and drives them.
func (ps *Ports) ByteOut(port cpu.Port, value uint8) {
	pt := ps.port(port)
	if pt == nil {
		return
	}

	pt.Direction = 0xff
	pt.Output = value

	if ps.Verbose {
		log.Printf("%v: out 0x%02x", port, value)
	}
}

// Reset makes every pin an input, and clears the latches. The external
// inputs are kept.
func (ps *Ports) Reset() {
	for n := range ps.Port {
		ps.Port[n].Direction = 0
		ps.Port[n].Output = 0
	}
}

// String returns the port states, one line per port, pins 8 to 1.
// Outputs show as 0 or 1, inputs as l or h.
func (ps *Ports) String() string {
	var lines []string
	for n, pt := range ps.Port {
		var pins []byte
		for pin := cpu.PORT_PINS - 1; pin >= 0; pin-- {
			mask := uint8(1) << pin
			high := pt.Level()&mask != 0
			var level byte
			switch {
			case pt.Direction&mask != 0 && high:
				level = '1'
			case pt.Direction&mask != 0:
				level = '0'
			case high:
				level = 'h'
			default:
				level = 'l'
			}
			pins = append(pins, level)
		}
		lines = append(lines, fmt.Sprintf("%v: %s", cpu.Port(n), pins))
	}

	return strings.Join(lines, "\n") + "\n"
}

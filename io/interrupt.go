// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/cp1/cpu"
)

// Interrupt codes of the standard handlers.
const (
	INT_STOP       = uint8(0) // stop the program
	INT_TAPE_READ  = uint8(1) // read a tape byte into a
	INT_TAPE_WRITE = uint8(2) // write a to the tape
	INT_PORTS      = uint8(3) // read the levels of p2 into a
)

var _interrupt_defines = map[string]string{
	"INT_STOP":       fmt.Sprintf("%d", INT_STOP),
	"INT_TAPE_READ":  fmt.Sprintf("%d", INT_TAPE_READ),
	"INT_TAPE_WRITE": fmt.Sprintf("%d", INT_TAPE_WRITE),
	"INT_PORTS":      fmt.Sprintf("%d", INT_PORTS),
}

// Handler services a software interrupt. It may change the CPU state, and
// may request the program to stop.
type Handler func(cp *cpu.Cpu) (abort bool, err error)

// Interrupts is the table of software interrupt handlers for the int
// instruction.
type Interrupts struct {
	Verbose bool

	handler map[uint8]Handler
}

// Defines returns the interrupt codes of the standard handlers.
func (ints *Interrupts) Defines() iter.Seq2[string, string] {
	return maps.All(_interrupt_defines)
}

// Set installs a handler for an interrupt code. A nil handler removes it.
func (ints *Interrupts) Set(code uint8, handler Handler) {
	if handler == nil {
		delete(ints.handler, code)
		return
	}

	if ints.handler == nil {
		ints.handler = make(map[uint8]Handler)
	}
	ints.handler[code] = handler
}

// Codes returns the interrupt codes with a handler, in order.
func (ints *Interrupts) Codes() []uint8 {
	return slices.Sorted(maps.Keys(ints.handler))
}

// Interrupt calls the handler of an interrupt code.
func (ints *Interrupts) Interrupt(cp *cpu.Cpu, code uint8) (abort bool, err error) {
	if ints.Verbose {
		log.Printf("int %d", code)
	}

	handler, ok := ints.handler[code]
	if !ok {
		err = ErrInterruptUnknown(code)
		return
	}

	return handler(cp)
}

// Stop is the handler that stops the program.
func Stop(cp *cpu.Cpu) (abort bool, err error) {
	abort = true
	return
}

// PortLevels returns a handler that reads the pin levels of a port into
// the accumulator, without changing the pin directions.
func PortLevels(ps *Ports, port cpu.Port) Handler {
	return func(cp *cpu.Cpu) (abort bool, err error) {
		pt := ps.port(port)
		if pt != nil {
			cp.A = pt.Level()
		}
		return
	}
}

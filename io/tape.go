// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"
	"io"

	"github.com/ezrec/cp1/cpu"
)

// Tape provides sequential byte I/O to programs through software
// interrupts. It wraps an io.Reader for input and io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	Read    int // Bytes read.
	Written int // Bytes written.
}

// Fetch reads the next input byte into the accumulator, and clears carry.
// At the end of the input the accumulator is zero and carry is set.
func (tc *Tape) Fetch(cp *cpu.Cpu) (abort bool, err error) {
	if tc.Input == nil {
		err = ErrTapeMissing
		return
	}

	var one [1]byte
	_, err = io.ReadFull(tc.Input, one[:])
	if errors.Is(err, io.EOF) {
		err = nil
		cp.A = 0
		cp.Status.Set(cpu.FLAG_CARRY, true)
		return
	}
	if err != nil {
		return
	}

	tc.Read++
	cp.A = one[0]
	cp.Status.Clear(cpu.FLAG_CARRY)
	return
}

// Store writes the accumulator to the output.
func (tc *Tape) Store(cp *cpu.Cpu) (abort bool, err error) {
	if tc.Output == nil {
		err = ErrTapeMissing
		return
	}

	_, err = tc.Output.Write([]byte{cp.A})
	if err != nil {
		return
	}

	tc.Written++
	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	stdio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/cp1/cpu"
	"github.com/ezrec/cp1/internal"
	"github.com/ezrec/cp1/io"
)

var _emulator_defines = map[string]string{
	"DELAY_TICK_MS": fmt.Sprintf("%d", io.DELAY_TICK.Milliseconds()),
}

// Emulator state. CPU + devices + program.
type Emulator struct {
	Verbose  bool              // If set, enables verbose logging.
	*cpu.Cpu                   // Reference to the CPU simulation.
	Program  *cpu.Program      // Reference to the currently loaded program listing.
	Equates  map[string]string // Extra assembler predefines.

	Ports      io.Ports      // Virtual ports p1 and p2.
	Display    io.Display    // Decimal display.
	Keypad     io.Keypad     // Keypad, for the stop key.
	Delay      io.Delay      // Delay service.
	Tape       io.Tape       // Tape for the tape interrupts.
	Interrupts io.Interrupts // Software interrupt table.
}

// NewEmulator creates a new emulator, with all devices attached and the
// standard interrupt handlers installed.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Delay.Keys = &emu.Keypad

	emu.Interrupts.Set(io.INT_STOP, io.Stop)
	emu.Interrupts.Set(io.INT_TAPE_READ, emu.Tape.Fetch)
	emu.Interrupts.Set(io.INT_TAPE_WRITE, emu.Tape.Store)
	emu.Interrupts.Set(io.INT_PORTS, io.PortLevels(&emu.Ports, cpu.PORT_2))

	emu.Cpu.Display = &emu.Display
	emu.Cpu.Delay = &emu.Delay
	emu.Cpu.Keys = &emu.Keypad
	emu.Cpu.Ports = &emu.Ports
	emu.Cpu.Interrupts = &emu.Interrupts

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Interrupts.Defines(),
	)
}

// Assemble assembles a program source, with the emulator defines and
// Equates predefined, and makes it the current program.
func (emu *Emulator) Assemble(source stdio.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range internal.IterSeq2Concat(emu.Defines(), maps.All(emu.Equates)) {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(source)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Reset the machine, and load the current program.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Interrupts.Verbose = emu.Verbose
	emu.Ports.Verbose = emu.Verbose

	emu.Cpu.Reset()
	emu.Ports.Reset()
	emu.Display.Reset()
	emu.Keypad.Reset()

	emu.Program.Load(emu.Cpu)

	if emu.Verbose {
		log.Printf("emulator: loaded %d words", len(emu.Program.Statements))
	}
}

// Addr returns the program counter.
func (emu *Emulator) Addr() int {
	return int(emu.Cpu.Pc)
}

// LineNo returns the source line number of the word at the program
// counter, or zero if it was not assembled from the program.
func (emu *Emulator) LineNo() int {
	stmt := emu.Program.Debug(emu.Cpu.Pc)
	if stmt == nil {
		return 0
	}

	return stmt.LineNo
}

// Tick executes a single instruction. Done is set when the program halts
// or is stopped by the operator; the reason is left in Cpu.Fault.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	addr := emu.Addr()
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: addr, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err == nil && emu.Display.Err != nil {
		err = emu.Display.Err
		return
	}

	var fault cpu.Fault
	switch {
	case err == nil:
		emu.Cpu.Fault = cpu.FAULT_NONE
	case errors.Is(err, cpu.ErrHalt):
		emu.Cpu.Fault = cpu.FAULT_NONE
		err = nil
		done = true
	case errors.As(err, &fault):
		emu.Cpu.Fault = fault
		if fault.Aborted() {
			err = nil
			done = true
		}
	}

	return
}

// Run ticks the emulator until the program is done, or fails. A positive
// limit bounds the number of instructions executed.
func (emu *Emulator) Run(limit int) (err error) {
	for n := 0; limit <= 0 || n < limit; n++ {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	err = &ErrRuntime{Addr: emu.Addr(), LineNo: emu.LineNo(), Err: ErrTickLimit}
	return
}

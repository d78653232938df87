// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Key is a key code reported by the keypad. KEY_STOP stops the running
// program.
type Key uint8

//go:generate go tool stringer -linecomment -type=Key
const (
	KEY_STOP = Key(0x82) // stp
	KEY_NONE = Key(0xff) // none
)

// Port selects one of the two virtual 8-bit ports.
type Port int

//go:generate go tool stringer -linecomment -type=Port
const (
	PORT_1 = Port(0) // p1
	PORT_2 = Port(1) // p2
)

const (
	PORT_PINS  = 8 // Pins per port.
	PORT_COUNT = 2 // Number of ports.
)

// Display shows the accumulator for the cdis instruction.
type Display interface {
	ShowDecimal(value uint8)
}

// Delayer waits for the cdel instruction. Delay returns early, with
// aborted set, if the stop key is pressed during the wait.
type Delayer interface {
	Delay(ticks uint8) (aborted bool)
}

// KeyScanner reports the currently pressed key, or KEY_NONE.
type KeyScanner interface {
	PollKey() Key
}

// Ports is the virtual GPIO used by the in and out instructions. Pins are
// numbered from zero.
type Ports interface {
	BitIn(port Port, pin int) bool
	BitOut(port Port, pin int, value bool)
	ByteIn(port Port) uint8
	ByteOut(port Port, value uint8)
}

// Interrupter dispatches the int instruction to a numbered handler. The
// handler may change the CPU state, and may request the program to stop.
type Interrupter interface {
	Interrupt(cpu *Cpu, code uint8) (abort bool, err error)
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the virtual computer and line assembler of the
// CP1 clone.
//
// The CPU has an 8-bit accumulator (a), four 8-bit general purpose
// registers (b-e), a program counter, an eight entry call stack, four
// condition flags (zero, carry, less, greater) and 256 words of memory.
// Each program word packs an opcode in the high byte and an operand in the
// low byte.
//
// The assembler translates one line of mnemonic source at a time into a
// program word, and the disassembler renders a program word back into its
// mnemonic. Both share the same instruction table.
package cpu

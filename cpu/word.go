// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

const (
	MEMORY_SIZE   = 256            // Memory size, in words.
	WORD_INVALID  = Word(0x7fff)   // Result word of an unassemblable line.
	DECIMAL_SCALE = 1000           // Opcode scale of the decimal word form.
	DATA_MAX      = uint16(0x00ff) // Largest word usable as data.
)

// Word is a program word: opcode in the high byte, data in the low byte.
type Word uint16

// MakeWord packs an opcode and its data.
func MakeWord(op Opcode, data uint8) Word {
	return Word(uint16(op)<<8 | uint16(data))
}

// Opcode returns the opcode of the word.
func (w Word) Opcode() Opcode {
	return Opcode(w >> 8)
}

// Data returns the operand of the word.
func (w Word) Data() uint8 {
	return uint8(w & 0xff)
}

// IsData is true if the word fits in 8 bits, and so may be used as data.
func (w Word) IsData() bool {
	return uint16(w) <= DATA_MAX
}

// Decimal returns the word in the decimal form opcode*1000+data, as
// shown by the original machine's display.
func (w Word) Decimal() int {
	return int(w.Opcode())*DECIMAL_SCALE + int(w.Data())
}

// WordFromDecimal converts the decimal word form back into a Word.
func WordFromDecimal(value int) (w Word, err error) {
	if value < 0 {
		err = ErrWordMalformed
		return
	}

	op := value / DECIMAL_SCALE
	data := value % DECIMAL_SCALE
	if op > 0xff || data > 0xff {
		err = ErrWordMalformed
		return
	}

	w = MakeWord(Opcode(op), uint8(data))
	return
}

// String returns the word as opcode:data in hexadecimal.
func (w Word) String() string {
	return fmt.Sprintf("%02x:%02x", uint8(w.Opcode()), w.Data())
}

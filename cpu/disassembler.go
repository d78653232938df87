// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strconv"
	"strings"
)

// Disassemble renders a program word as its mnemonic, with the placeholder
// replaced by the decimal operand.
//
// Data words (opcode zero) render as "db <value>". The port opcodes render
// in their bit form when the operand is non-zero, and in their byte form
// otherwise.
func Disassemble(word Word) (text string, err error) {
	op := word.Opcode()
	data := word.Data()

	if op == OP_DATA {
		op = OP_DB
	}

	ins, ok := LookupOpcode(op)
	if !ok {
		err = ErrOpcode(word)
		return
	}

	text = strings.Replace(ins.Form(data), PLACEHOLDER, strconv.Itoa(int(data)), 1)

	return
}

package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzExecute(f *testing.F) {
	for ins := range Instructions() {
		f.Add(uint16(MakeWord(ins.Code, 0)), uint8(0), uint8(0), uint8(0), uint8(0))
		f.Add(uint16(MakeWord(ins.Code, 9)), uint8(0xff), uint8(3), uint8(FLAG_ALL), uint8(STACK_SIZE))
	}

	f.Fuzz(func(t *testing.T, opcode uint16, a uint8, b uint8, flags uint8, depth uint8) {
		assert := assert.New(t)

		word := Word(opcode)

		cpu := NewCpu()
		cpu.Pc = 0x80
		cpu.A = a
		cpu.B = b
		cpu.Status = Status(flags) & FLAG_ALL
		for n := range int(depth) % (STACK_SIZE + 1) {
			cpu.Stack.Push(uint16(n))
		}
		for n := range MEMORY_SIZE {
			switch n % 4 {
			case 0:
				// data
				cpu.Memory[n] = Word(n)
			case 1:
				// code
				cpu.Memory[n] = MakeWord(OP_HLT, uint8(n))
			case 2:
				// pointer to data
				cpu.Memory[n] = Word((n + 2) & 0xfc)
			case 3:
				// pointer to code
				cpu.Memory[n] = Word(n - 2)
			}
		}

		before := *cpu

		err := cpu.Execute(word)

		code_str := fmt.Sprintf("%v\ncpu:%v", word, before.String())

		assert.Equal(Status(0), cpu.Status&^FLAG_ALL, code_str)
		assert.GreaterOrEqual(cpu.Stack.Sp, -1, code_str)
		assert.LessOrEqual(cpu.Stack.Sp, STACK_TOP, code_str)

		_, derr := Disassemble(word)
		if derr != nil {
			assert.ErrorIs(derr, ErrOpcode(0), code_str)
		}

		var fault Fault
		switch {
		case err == nil:
			assert.False(word.IsData(), code_str)
		case errors.Is(err, ErrHalt):
			assert.Equal(OP_HLT, word.Opcode(), code_str)
			assert.Equal(before.Pc+1, cpu.Pc, code_str)
		case errors.As(err, &fault):
			assert.NotEqual(FAULT_NONE, fault, code_str)
			assert.ErrorIs(err, ErrOpcode(0), code_str)
			// No partial instruction state.
			assert.Equal(before.Pc, cpu.Pc, code_str)
			assert.Equal(before.A, cpu.A, code_str)
			assert.Equal(before.Status, cpu.Status, code_str)
			assert.Equal(before.Stack, cpu.Stack, code_str)
			assert.Equal(before.Memory, cpu.Memory, code_str)
		default:
			assert.NoError(err, code_str)
		}
	})
}

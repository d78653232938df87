package io

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cp1/cpu"
)

func TestInterrupts(t *testing.T) {
	assert := assert.New(t)

	ints := &Interrupts{}
	cp := cpu.NewCpu()

	_, err := ints.Interrupt(cp, 9)
	assert.ErrorIs(err, ErrInterruptUnknown(9))

	oops := errors.New("oops")
	ints.Set(INT_STOP, Stop)
	ints.Set(9, func(cp *cpu.Cpu) (abort bool, err error) {
		cp.E = 99
		err = oops
		return
	})
	assert.Equal([]uint8{0, 9}, ints.Codes())

	abort, err := ints.Interrupt(cp, INT_STOP)
	assert.NoError(err)
	assert.True(abort)

	abort, err = ints.Interrupt(cp, 9)
	assert.ErrorIs(err, oops)
	assert.False(abort)
	assert.Equal(uint8(99), cp.E)

	ints.Set(9, nil)
	assert.Equal([]uint8{0}, ints.Codes())
}

func TestInterrupts_Cpu(t *testing.T) {
	assert := assert.New(t)

	ports := &Ports{}
	ports.Port[cpu.PORT_2].Input = 0x42

	ints := &Interrupts{}
	ints.Set(INT_PORTS, PortLevels(ports, cpu.PORT_2))
	ints.Set(INT_STOP, Stop)

	cp := cpu.NewCpu()
	cp.Interrupts = ints
	cp.Memory[0] = cpu.MakeWord(cpu.OP_INT, INT_PORTS)
	cp.Memory[1] = cpu.MakeWord(cpu.OP_INT, INT_STOP)
	cp.Memory[2] = cpu.MakeWord(cpu.OP_HLT, 0)

	assert.Equal(cpu.FAULT_STOPPED, cp.Run(false))
	assert.Equal(uint8(0x42), cp.A)
	assert.Equal(uint16(2), cp.Pc)

	defines := map[string]string{}
	for key, value := range ints.Defines() {
		defines[key] = value
	}
	assert.Equal("1", defines["INT_TAPE_READ"])
}

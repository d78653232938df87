package io

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cp1/cpu"
)

func TestPorts_Byte(t *testing.T) {
	assert := assert.New(t)

	ps := &Ports{}
	ps.Port[cpu.PORT_1].Input = 0xa5

	ps.ByteOut(cpu.PORT_1, 0x3c)
	assert.Equal(uint8(0xff), ps.Port[cpu.PORT_1].Direction)
	assert.Equal(uint8(0x3c), ps.Port[cpu.PORT_1].Output)
	assert.Equal(uint8(0x3c), ps.Port[cpu.PORT_1].Level())

	assert.Equal(uint8(0xa5), ps.ByteIn(cpu.PORT_1))
	assert.Equal(uint8(0x00), ps.Port[cpu.PORT_1].Direction)
	assert.Equal(uint8(0xa5), ps.Port[cpu.PORT_1].Level())

	// p2 is untouched
	assert.Equal(Port{}, ps.Port[cpu.PORT_2])
}

func TestPorts_Bit(t *testing.T) {
	assert := assert.New(t)

	ps := &Ports{}
	ps.Port[cpu.PORT_2].Input = 0x0f

	ps.BitOut(cpu.PORT_2, 7, true)
	ps.BitOut(cpu.PORT_2, 0, false)
	assert.Equal(uint8(0x81), ps.Port[cpu.PORT_2].Direction)
	assert.Equal(uint8(0x80), ps.Port[cpu.PORT_2].Output)
	assert.Equal(uint8(0x8e), ps.Port[cpu.PORT_2].Level())

	assert.True(ps.BitIn(cpu.PORT_2, 0))
	assert.Equal(uint8(0x80), ps.Port[cpu.PORT_2].Direction)
	assert.False(ps.BitIn(cpu.PORT_2, 6))

	// Out of range pins and ports are ignored.
	ps.BitOut(cpu.PORT_2, 8, true)
	ps.BitOut(cpu.Port(5), 1, true)
	assert.False(ps.BitIn(cpu.PORT_2, -1))
	assert.Equal(uint8(0), ps.ByteIn(cpu.Port(2)))
	assert.Equal(uint8(0x80), ps.Port[cpu.PORT_2].Direction)
}

func TestPorts_String(t *testing.T) {
	assert := assert.New(t)

	ps := &Ports{}
	ps.Port[cpu.PORT_1].Input = 0x01
	ps.BitOut(cpu.PORT_1, 7, true)
	ps.BitOut(cpu.PORT_1, 6, false)
	ps.ByteOut(cpu.PORT_2, 0x0f)

	assert.Equal("p1: 10lllllh\np2: 00001111\n", ps.String())

	ps.Reset()
	assert.Equal("p1: lllllllh\np2: llllllll\n", ps.String())
	assert.Equal(uint8(0x01), ps.Port[cpu.PORT_1].Input)
}

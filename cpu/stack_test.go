package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStack() *Stack {
	s := &Stack{}
	s.Reset()
	return s
}

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	assert.True(s.Empty())
	assert.False(s.Full())
	assert.Equal(STACK_TOP, s.Sp)

	assert.True(s.Push(123))
	assert.False(s.Empty())
	assert.Equal(1, s.Depth())
	assert.Equal(uint16(123), s.Data[STACK_TOP])
	assert.Equal(STACK_TOP-1, s.Sp)
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	s.Push(12)
	s.Push(34)

	val, ok := s.Pop()
	assert.True(ok)
	assert.Equal(uint16(34), val)
	assert.Equal(1, s.Depth())

	val, ok = s.Pop()
	assert.True(ok)
	assert.Equal(uint16(12), val)
	assert.Equal(0, s.Depth())
}

func TestStack_Pop_Empty(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	val, ok := s.Pop()
	assert.False(ok)
	assert.Equal(uint16(0), val)
	assert.Equal(STACK_TOP, s.Sp)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	s.Push(12)
	s.Push(34)

	val, ok := s.Peek()
	assert.True(ok)
	assert.Equal(uint16(34), val)
	assert.Equal(2, s.Depth())
}

func TestStack_Peek_Empty(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	val, ok := s.Peek()
	assert.False(ok)
	assert.Equal(uint16(0), val)
}

func TestStack_Capacity(t *testing.T) {
	assert := assert.New(t)

	s := newStack()

	for i := range STACK_SIZE {
		assert.False(s.Full())
		assert.True(s.Push(uint16(i)))
	}

	assert.True(s.Full())
	assert.Equal(STACK_SIZE, s.Depth())
	assert.Equal(-1, s.Sp)

	assert.False(s.Push(99))
	assert.Equal(STACK_SIZE, s.Depth())
}

func TestStack_Reset(t *testing.T) {
	assert := assert.New(t)

	s := newStack()
	s.Push(12)
	s.Push(34)
	assert.Equal(2, s.Depth())

	s.Reset()
	assert.True(s.Empty())
	assert.Equal(0, s.Depth())
	assert.Equal([STACK_SIZE]uint16{}, s.Data)
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

const (
	STACK_SIZE = 8              // Call stack depth.
	STACK_TOP  = STACK_SIZE - 1 // Stack pointer of an empty stack.
)

// Stack is the call stack of return addresses.
//
// The stack grows down: Sp starts at STACK_TOP and indexes the next free
// slot. A full stack has Sp below zero.
type Stack struct {
	Data [STACK_SIZE]uint16
	Sp   int
}

// Push stores a return address, failing if the stack is full.
func (s *Stack) Push(value uint16) (ok bool) {
	if s.Full() {
		return
	}

	s.Data[s.Sp] = value
	s.Sp--
	ok = true
	return
}

// Pop removes the most recent return address, failing if the stack is
// empty.
func (s *Stack) Pop() (value uint16, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Sp++
	}
	return
}

func (s *Stack) Empty() bool {
	return s.Sp >= STACK_TOP
}

func (s *Stack) Full() bool {
	return s.Sp < 0
}

// Depth returns the number of return addresses on the stack.
func (s *Stack) Depth() int {
	return STACK_TOP - s.Sp
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[s.Sp+1], true
}

func (s *Stack) Reset() {
	clear(s.Data[:])
	s.Sp = STACK_TOP
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Fault is the reason the CPU stopped executing a program.
//
// Faults are the CPU's error type; the numeric values are the codes shown
// on the display of the original machine.
type Fault uint8

const (
	FAULT_NONE            = Fault(0)   // no fault
	FAULT_DATA_EXECUTED   = Fault(2)   // data word executed as code
	FAULT_BOUNDS          = Fault(3)   // address out of bounds
	FAULT_OPCODE          = Fault(4)   // invalid opcode
	FAULT_OPERAND         = Fault(5)   // operand out of range
	FAULT_INDIRECT        = Fault(6)   // indirect operand is not data
	FAULT_STACK_OVERFLOW  = Fault(10)  // call stack overflow
	FAULT_STACK_UNDERFLOW = Fault(11)  // call stack underflow
	FAULT_INTERRUPT       = Fault(12)  // software interrupt failed
	FAULT_STOPPED         = Fault(255) // stopped by operator
)

var faultText = map[Fault]string{
	FAULT_NONE:            "no fault",
	FAULT_DATA_EXECUTED:   "data word executed as code",
	FAULT_BOUNDS:          "address out of bounds",
	FAULT_OPCODE:          "invalid opcode",
	FAULT_OPERAND:         "operand out of range",
	FAULT_INDIRECT:        "indirect operand is not data",
	FAULT_STACK_OVERFLOW:  "call stack overflow",
	FAULT_STACK_UNDERFLOW: "call stack underflow",
	FAULT_INTERRUPT:       "software interrupt failed",
	FAULT_STOPPED:         "stopped by operator",
}

// Error returns the translated description of the fault.
func (ft Fault) Error() string {
	text, ok := faultText[ft]
	if !ok {
		return f("fault %d", uint8(ft))
	}
	return f("fault %d: %v", uint8(ft), f(text))
}

// Aborted is true when the fault was requested by the operator rather
// than caused by the program.
func (ft Fault) Aborted() bool {
	return ft == FAULT_STOPPED
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%d", MEMORY_SIZE),
	"STACK_SIZE":  fmt.Sprintf("%d", STACK_SIZE),
	"PORT_PINS":   fmt.Sprintf("%d", PORT_PINS),
	"KEY_STOP":    fmt.Sprintf("0x%02x", uint8(KEY_STOP)),
	"KEY_NONE":    fmt.Sprintf("0x%02x", uint8(KEY_NONE)),
}

// Cpu is the machine state of the CP1, and its attached devices.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A, B, C, D, E uint8             // Accumulator and general registers.
	Pc            uint16            // Program counter.
	Status        Status            // Condition flags.
	Stack         Stack             // Call stack.
	Memory        [MEMORY_SIZE]Word // Program and data memory.

	Fault  Fault // Fault that stopped the last Run.
	Halted bool  // Set when the last instruction was hlt.
	Ticks  int   // Instructions executed since reset.

	// Devices. A nil device is absent: output is dropped, input reads
	// as zero, and no key is ever pressed. An absent interrupt table
	// faults the int instruction.
	Display    Display
	Delay      Delayer
	Keys       KeyScanner
	Ports      Ports
	Interrupts Interrupter
}

// NewCpu creates a new CPU, in the reset state, with no devices.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, flags and memory.
// - Empties the call stack.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.A, cpu.B, cpu.C, cpu.D, cpu.E = 0, 0, 0, 0, 0
	cpu.Pc = 0
	cpu.Status = 0
	cpu.Stack.Reset()
	clear(cpu.Memory[:])
	cpu.Fault = FAULT_NONE
	cpu.Halted = false
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "psw",
		"a", "b", "c", "d", "e",
		"sp", "stack",
	}
	var lines []string
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%03d", cpu.Pc)
		case "psw":
			strval = cpu.Status.String()
		case "a":
			strval = fmt.Sprintf("%3d (0x%02x)", cpu.A, cpu.A)
		case "b":
			strval = fmt.Sprintf("%3d (0x%02x)", cpu.B, cpu.B)
		case "c":
			strval = fmt.Sprintf("%3d (0x%02x)", cpu.C, cpu.C)
		case "d":
			strval = fmt.Sprintf("%3d (0x%02x)", cpu.D, cpu.D)
		case "e":
			strval = fmt.Sprintf("%3d (0x%02x)", cpu.E, cpu.E)
		case "sp":
			strval = fmt.Sprintf("%d", cpu.Stack.Sp)
		case "stack":
			val, ok := cpu.Stack.Peek()
			if ok {
				strval = fmt.Sprintf("%03d", val)
			} else {
				strval = "---"
			}
		}
		lines = append(lines, fmt.Sprintf("% 5s: %v", reg, strval))
	}

	text = strings.Join(lines, "\n") + "\n"
	return
}

// FetchCode fetches the word at the program counter, and checks that it
// is executable.
func (cpu *Cpu) FetchCode() (word Word, err error) {
	if int(cpu.Pc) >= MEMORY_SIZE {
		err = FAULT_BOUNDS
		return
	}

	word = cpu.Memory[cpu.Pc]
	op := word.Opcode()
	switch {
	case op == OP_DATA:
		err = FAULT_DATA_EXECUTED
	case !op.Executable():
		err = FAULT_OPCODE
	}

	return
}

// Tick executes a single instruction, then polls the keypad for the stop
// key. The error is ErrHalt after a hlt instruction, and wraps a Fault
// otherwise.
func (cpu *Cpu) Tick() (err error) {
	cpu.Halted = false

	word, err := cpu.FetchCode()
	if err != nil {
		err = errors.Join(ErrOpcode(word), err)
		return
	}

	err = cpu.Execute(word)
	cpu.Ticks++
	if err != nil {
		if errors.Is(err, ErrHalt) {
			cpu.Halted = true
		}
		return
	}

	if cpu.Keys != nil && cpu.Keys.PollKey() == KEY_STOP {
		err = FAULT_STOPPED
		return
	}

	return
}

// Run executes instructions until a hlt, a fault, or the stop key. In
// step mode a single instruction is executed. The returned fault is also
// recorded in cpu.Fault; FAULT_NONE means a hlt, or a completed step.
func (cpu *Cpu) Run(step bool) (fault Fault) {
	defer func() {
		cpu.Fault = fault
	}()

	for {
		err := cpu.Tick()
		switch {
		case err == nil:
		case errors.Is(err, ErrHalt):
			return
		case errors.As(err, &fault):
			if cpu.Verbose {
				log.Printf("cpu: %03d: %v", cpu.Pc, err)
			}
			return
		default:
			// Tick reports every failure as a Fault.
			fault = FAULT_OPCODE
			return
		}

		if step {
			return
		}
	}
}

// load reads a memory word as data.
func (cpu *Cpu) load(addr uint8) (value uint8, err error) {
	word := cpu.Memory[addr]
	if !word.IsData() {
		err = FAULT_OPERAND
		return
	}

	value = word.Data()
	return
}

// pointer reads a memory word as an address.
func (cpu *Cpu) pointer(addr uint8) (ptr uint8, err error) {
	word := cpu.Memory[addr]
	if int(word) >= MEMORY_SIZE {
		err = FAULT_BOUNDS
		return
	}

	ptr = uint8(word)
	return
}

// pin converts a 1-based pin operand to a pin index.
func pin(data uint8) (index int, err error) {
	if int(data) > PORT_PINS {
		err = FAULT_OPERAND
		return
	}

	index = int(data) - 1
	return
}

// Execute executes a single instruction word.
func (cpu *Cpu) Execute(word Word) (err error) {
	defer func() {
		if err != nil && !errors.Is(err, ErrHalt) {
			err = errors.Join(ErrOpcode(word), err)
		}
	}()

	if cpu.Verbose {
		text, _ := Disassemble(word)
		log.Printf("%03d: %v", cpu.Pc, text)
	}

	op := word.Opcode()
	data := word.Data()
	next_pc := cpu.Pc + 1
	st := &cpu.Status

	// Set for instructions that complete before reporting an error.
	var done bool

	// Jumps consume the flags, taken or not.
	jump := func(flags Status) {
		if st.Has(flags) {
			next_pc = uint16(data)
		}
		*st = 0
	}

	switch op {
	case OP_DATA:
		err = FAULT_DATA_EXECUTED
	case OP_HLT:
		done = true
		err = ErrHalt
	case OP_CDIS:
		if cpu.Display != nil {
			cpu.Display.ShowDecimal(cpu.A)
		}
	case OP_CDEL:
		if cpu.Delay != nil && cpu.Delay.Delay(data) {
			done = true
			err = FAULT_STOPPED
		}
	case OP_MVI_A:
		cpu.A = data
	case OP_LDA:
		var value uint8
		value, err = cpu.load(data)
		if err != nil {
			break
		}
		cpu.A = value
	case OP_STA:
		cpu.Memory[data] = Word(cpu.A)
	case OP_ADD, OP_SUB:
		var value uint8
		value, err = cpu.load(data)
		if err != nil {
			break
		}
		cpu.A = cpu.arith(op, value)
	case OP_ADI, OP_SBI:
		cpu.A = cpu.arith(op, data)
	case OP_MUL:
		product := uint16(cpu.A) * uint16(cpu.B)
		st.Clear(FLAG_ZERO | FLAG_CARRY)
		st.Set(FLAG_CARRY, product > 0xff)
		cpu.A = uint8(product)
	case OP_JMP:
		*st = 0
		next_pc = uint16(data)
	case OP_JZ:
		jump(FLAG_ZERO)
	case OP_JC:
		jump(FLAG_CARRY)
	case OP_JPL:
		jump(FLAG_LESS)
	case OP_JPG:
		jump(FLAG_GREATER)
	case OP_CPE, OP_CPG, OP_CPL:
		var value uint8
		value, err = cpu.load(data)
		if err != nil {
			break
		}
		var match bool
		switch op {
		case OP_CPE:
			match = cpu.A == value
		case OP_CPG:
			match = cpu.A > value
		case OP_CPL:
			match = cpu.A < value
		}
		st.Set(FLAG_ZERO, match)
	case OP_CMP:
		var value uint8
		value, err = cpu.load(data)
		if err != nil {
			break
		}
		cpu.compare(value)
	case OP_CPI:
		cpu.compare(data)
	case OP_NOTB:
		cpu.A = ^cpu.A & 1
	case OP_ANDB:
		var value uint8
		value, err = cpu.load(data)
		if err != nil {
			break
		}
		cpu.A = cpu.A & value & 1
	case OP_IN_P1:
		var index int
		index, err = pin(data)
		if err != nil {
			break
		}
		switch {
		case cpu.Ports == nil:
			cpu.A = 0
		case index < 0:
			cpu.A = cpu.Ports.ByteIn(PORT_1)
		case cpu.Ports.BitIn(PORT_1, index):
			cpu.A = 1
		default:
			cpu.A = 0
		}
	case OP_OUT_P1, OP_OUT_P2:
		port := PORT_1
		if op == OP_OUT_P2 {
			port = PORT_2
		}
		var index int
		index, err = pin(data)
		if err != nil || cpu.Ports == nil {
			break
		}
		if index < 0 {
			cpu.Ports.ByteOut(port, cpu.A)
		} else {
			cpu.Ports.BitOut(port, index, cpu.A&1 != 0)
		}
	case OP_LDA_IND:
		var ptr uint8
		ptr, err = cpu.pointer(data)
		if err != nil {
			break
		}
		if !cpu.Memory[ptr].IsData() {
			err = FAULT_INDIRECT
			break
		}
		cpu.A = cpu.Memory[ptr].Data()
	case OP_STA_IND:
		var ptr uint8
		ptr, err = cpu.pointer(data)
		if err != nil {
			break
		}
		cpu.Memory[ptr] = Word(cpu.A)
	case OP_JMP_IND:
		var ptr uint8
		ptr, err = cpu.pointer(data)
		if err != nil {
			break
		}
		next_pc = uint16(ptr)
	case OP_DJNZ:
		cpu.A--
		if cpu.A != 0 {
			next_pc = uint16(data)
		}
	case OP_INC:
		st.Set(FLAG_CARRY, cpu.A == 0xff)
		cpu.A++
		st.Set(FLAG_ZERO, cpu.A == 0)
	case OP_DEC:
		st.Set(FLAG_CARRY, cpu.A == 0)
		cpu.A--
		st.Set(FLAG_ZERO, cpu.A == 0)
	case OP_MVI_B:
		cpu.B = data
	case OP_MVI_C:
		cpu.C = data
	case OP_MVI_D:
		cpu.D = data
	case OP_MVI_E:
		cpu.E = data
	case OP_MOV_A_B:
		cpu.A = cpu.B
	case OP_MOV_A_C:
		cpu.A = cpu.C
	case OP_MOV_A_D:
		cpu.A = cpu.D
	case OP_MOV_A_E:
		cpu.A = cpu.E
	case OP_MOV_B_A:
		cpu.B = cpu.A
	case OP_MOV_C_A:
		cpu.C = cpu.A
	case OP_MOV_D_A:
		cpu.D = cpu.A
	case OP_MOV_E_A:
		cpu.E = cpu.A
	case OP_MOV_B_C:
		cpu.B = cpu.C
	case OP_MOV_B_D:
		cpu.B = cpu.D
	case OP_MOV_B_E:
		cpu.B = cpu.E
	case OP_MOV_C_B:
		cpu.C = cpu.B
	case OP_MOV_C_D:
		cpu.C = cpu.D
	case OP_MOV_C_E:
		cpu.C = cpu.E
	case OP_NOT:
		cpu.A = ^cpu.A
	case OP_XOR:
		var value uint8
		value, err = cpu.load(data)
		if err != nil {
			break
		}
		cpu.A ^= value
	case OP_XRI:
		cpu.A ^= data
	case OP_SLC:
		st.Set(FLAG_CARRY, cpu.A&0x80 != 0)
		cpu.A <<= 1
	case OP_SRC:
		st.Set(FLAG_CARRY, cpu.A&0x01 != 0)
		cpu.A >>= 1
	case OP_AND, OP_OR:
		var value uint8
		value, err = cpu.load(data)
		if err != nil {
			break
		}
		cpu.A = cpu.logic(op, value)
	case OP_ANI, OP_ORI:
		cpu.A = cpu.logic(op, data)
	case OP_INT:
		if cpu.Interrupts == nil {
			err = FAULT_INTERRUPT
			break
		}
		abort, ierr := cpu.Interrupts.Interrupt(cpu, data)
		// The handler may move the program counter.
		next_pc = cpu.Pc + 1
		done = true
		switch {
		case ierr != nil:
			err = errors.Join(FAULT_INTERRUPT, ierr)
		case abort:
			err = FAULT_STOPPED
		}
	case OP_CALL:
		if !cpu.Stack.Push(next_pc) {
			err = FAULT_STACK_OVERFLOW
			break
		}
		next_pc = uint16(data)
	case OP_RET:
		var ok bool
		next_pc, ok = cpu.Stack.Pop()
		if !ok {
			err = FAULT_STACK_UNDERFLOW
		}
	default:
		err = FAULT_OPCODE
	}

	if err == nil || done {
		cpu.Pc = next_pc
	}

	return
}

// arith adds or subtracts, setting carry on overflow or borrow.
func (cpu *Cpu) arith(op Opcode, value uint8) (result uint8) {
	st := &cpu.Status
	st.Clear(FLAG_ZERO | FLAG_CARRY)

	switch op {
	case OP_ADD, OP_ADI:
		sum := uint16(cpu.A) + uint16(value)
		st.Set(FLAG_CARRY, sum > 0xff)
		result = uint8(sum)
	case OP_SUB, OP_SBI:
		st.Set(FLAG_CARRY, value > cpu.A)
		result = cpu.A - value
	}

	return
}

// logic ands or ors into the accumulator.
func (cpu *Cpu) logic(op Opcode, value uint8) (result uint8) {
	cpu.Status.Clear(FLAG_ZERO)

	switch op {
	case OP_AND, OP_ANI:
		result = cpu.A & value
	case OP_OR, OP_ORI:
		result = cpu.A | value
	}

	return
}

// compare sets exactly one of zero, less or greater.
func (cpu *Cpu) compare(value uint8) {
	st := &cpu.Status
	st.Clear(FLAG_ALL)
	switch {
	case cpu.A == value:
		st.Set(FLAG_ZERO, true)
	case cpu.A < value:
		st.Set(FLAG_LESS, true)
	default:
		st.Set(FLAG_GREATER, true)
	}
}

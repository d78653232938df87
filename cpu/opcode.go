// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Opcode is the instruction code held in the high byte of a program word.
type Opcode uint8

const (
	OP_DATA      = Opcode(0x00) // raw data, never executed
	OP_HLT       = Opcode(0x01) // hlt
	OP_CDIS      = Opcode(0x02) // cdis
	OP_CDEL      = Opcode(0x03) // cdel ?
	OP_MVI_A     = Opcode(0x04) // mvi a,?
	OP_LDA       = Opcode(0x05) // mov a,?
	OP_STA       = Opcode(0x06) // mov ?,a
	OP_ADD       = Opcode(0x07) // add a,?
	OP_SUB       = Opcode(0x08) // sub a,?
	OP_JMP       = Opcode(0x09) // jmp ?
	OP_CPE       = Opcode(0x0a) // cpe a,?
	OP_JZ        = Opcode(0x0b) // jz ?
	OP_CPG       = Opcode(0x0c) // cpg a,?
	OP_CPL       = Opcode(0x0d) // cpl a,?
	OP_NOTB      = Opcode(0x0e) // notb a
	OP_ANDB      = Opcode(0x0f) // andb a,?
	OP_IN_P1     = Opcode(0x10) // in p1 / inb p1,?
	OP_OUT_P1    = Opcode(0x11) // out p1 / outb p1,?
	OP_OUT_P2    = Opcode(0x12) // out p2 / outb p2,?
	OP_LDA_IND   = Opcode(0x13) // mov a,@?
	OP_STA_IND   = Opcode(0x14) // mov @?,a
	OP_JMP_IND   = Opcode(0x15) // jmp @?
	OP_DJNZ      = Opcode(0x19) // djnz a,?
	OP_INC       = Opcode(0x1a) // inc a
	OP_DEC       = Opcode(0x1b) // dec a
	OP_MVI_B     = Opcode(0x1c) // mvi b,?
	OP_MVI_C     = Opcode(0x1d) // mvi c,?
	OP_MVI_D     = Opcode(0x1e) // mvi d,?
	OP_MVI_E     = Opcode(0x1f) // mvi e,?
	OP_MOV_A_B   = Opcode(0x20) // mov a,b
	OP_MOV_A_C   = Opcode(0x21) // mov a,c
	OP_MOV_A_D   = Opcode(0x22) // mov a,d
	OP_MOV_A_E   = Opcode(0x23) // mov a,e
	OP_MOV_B_A   = Opcode(0x24) // mov b,a
	OP_MOV_C_A   = Opcode(0x25) // mov c,a
	OP_MOV_D_A   = Opcode(0x26) // mov d,a
	OP_MOV_E_A   = Opcode(0x27) // mov e,a
	OP_MOV_B_C   = Opcode(0x28) // mov b,c
	OP_MOV_B_D   = Opcode(0x29) // mov b,d
	OP_MOV_B_E   = Opcode(0x2a) // mov b,e
	OP_MOV_C_B   = Opcode(0x2b) // mov c,b
	OP_MOV_C_D   = Opcode(0x2c) // mov c,d
	OP_MOV_C_E   = Opcode(0x2d) // mov c,e
	OP_NOT       = Opcode(0x2e) // not a
	OP_XOR       = Opcode(0x2f) // xor a,?
	OP_XRI       = Opcode(0x30) // xri a,?
	OP_CPI       = Opcode(0x31) // cpi a,?
	OP_CMP       = Opcode(0x32) // cmp a,?
	OP_JPL       = Opcode(0x33) // jpl ?
	OP_JPG       = Opcode(0x34) // jpg ?
	OP_JC        = Opcode(0x35) // jc ?
	OP_SLC       = Opcode(0x36) // slc a
	OP_SRC       = Opcode(0x37) // src a
	OP_AND       = Opcode(0x38) // and a,?
	OP_ANI       = Opcode(0x39) // ani a,?
	OP_OR        = Opcode(0x3a) // or a,?
	OP_ORI       = Opcode(0x3b) // ori a,?
	OP_ADI       = Opcode(0x3c) // adi a,?
	OP_SBI       = Opcode(0x3d) // sbi a,?
	OP_MUL       = Opcode(0x3e) // mul a,b
	OP_INT       = Opcode(0x3f) // int ?
	OP_CALL      = Opcode(0x40) // call ?
	OP_RET       = Opcode(0x41) // ret
	OP_ORG       = Opcode(0x42) // .org ?
	OP_DB        = Opcode(0xff) // db ?
	OP_MAX       = OP_RET       // highest executable opcode
)

const (
	PLACEHOLDER  = "?" // Operand placeholder in a pattern.
	INDIRECT     = "@" // Indirection marker of an operand.
	INDIRECT_ARG = INDIRECT + PLACEHOLDER
)

// Instruction is one entry of the instruction table.
//
// Pattern is the mnemonic with its operand placeholders. The port opcodes
// have two renderings: Pattern is the byte form used when the operand is
// zero, and Bit is the bit form used when the operand selects a pin.
type Instruction struct {
	Code    Opcode
	Pattern string
	Bit     string
}

var instructionSet = []Instruction{
	{Code: OP_DB, Pattern: "db ?"},
	{Code: OP_HLT, Pattern: "hlt"},
	{Code: OP_CDIS, Pattern: "cdis"},
	{Code: OP_CDEL, Pattern: "cdel ?"},
	{Code: OP_MVI_A, Pattern: "mvi a,?"},
	{Code: OP_LDA, Pattern: "mov a,?"},
	{Code: OP_STA, Pattern: "mov ?,a"},
	{Code: OP_LDA_IND, Pattern: "mov a,@?"},
	{Code: OP_STA_IND, Pattern: "mov @?,a"},
	{Code: OP_ADD, Pattern: "add a,?"},
	{Code: OP_SUB, Pattern: "sub a,?"},
	{Code: OP_CPE, Pattern: "cpe a,?"},
	{Code: OP_CPG, Pattern: "cpg a,?"},
	{Code: OP_CPL, Pattern: "cpl a,?"},
	{Code: OP_JMP, Pattern: "jmp ?"},
	{Code: OP_JZ, Pattern: "jz ?"},
	{Code: OP_JMP_IND, Pattern: "jmp @?"},
	{Code: OP_NOTB, Pattern: "notb a"},
	{Code: OP_ANDB, Pattern: "andb a,?"},
	{Code: OP_IN_P1, Pattern: "in p1", Bit: "inb p1,?"},
	{Code: OP_OUT_P1, Pattern: "out p1", Bit: "outb p1,?"},
	{Code: OP_OUT_P2, Pattern: "out p2", Bit: "outb p2,?"},
	{Code: OP_DJNZ, Pattern: "djnz a,?"},
	{Code: OP_INC, Pattern: "inc a"},
	{Code: OP_DEC, Pattern: "dec a"},

	{Code: OP_MVI_B, Pattern: "mvi b,?"},
	{Code: OP_MVI_C, Pattern: "mvi c,?"},
	{Code: OP_MVI_D, Pattern: "mvi d,?"},
	{Code: OP_MVI_E, Pattern: "mvi e,?"},

	{Code: OP_MOV_A_B, Pattern: "mov a,b"},
	{Code: OP_MOV_A_C, Pattern: "mov a,c"},
	{Code: OP_MOV_A_D, Pattern: "mov a,d"},
	{Code: OP_MOV_A_E, Pattern: "mov a,e"},

	{Code: OP_MOV_B_A, Pattern: "mov b,a"},
	{Code: OP_MOV_C_A, Pattern: "mov c,a"},
	{Code: OP_MOV_D_A, Pattern: "mov d,a"},
	{Code: OP_MOV_E_A, Pattern: "mov e,a"},

	{Code: OP_MOV_B_C, Pattern: "mov b,c"},
	{Code: OP_MOV_B_D, Pattern: "mov b,d"},
	{Code: OP_MOV_B_E, Pattern: "mov b,e"},

	{Code: OP_MOV_C_B, Pattern: "mov c,b"},
	{Code: OP_MOV_C_D, Pattern: "mov c,d"},
	{Code: OP_MOV_C_E, Pattern: "mov c,e"},

	{Code: OP_NOT, Pattern: "not a"},
	{Code: OP_XOR, Pattern: "xor a,?"},
	{Code: OP_XRI, Pattern: "xri a,?"},

	{Code: OP_CPI, Pattern: "cpi a,?"},
	{Code: OP_CMP, Pattern: "cmp a,?"},

	{Code: OP_JPL, Pattern: "jpl ?"},
	{Code: OP_JPG, Pattern: "jpg ?"},
	{Code: OP_JC, Pattern: "jc ?"},

	{Code: OP_SLC, Pattern: "slc a"},
	{Code: OP_SRC, Pattern: "src a"},

	{Code: OP_AND, Pattern: "and a,?"},
	{Code: OP_ANI, Pattern: "ani a,?"},
	{Code: OP_OR, Pattern: "or a,?"},
	{Code: OP_ORI, Pattern: "ori a,?"},
	{Code: OP_ADI, Pattern: "adi a,?"},
	{Code: OP_SBI, Pattern: "sbi a,?"},
	{Code: OP_MUL, Pattern: "mul a,b"},
	{Code: OP_INT, Pattern: "int ?"},

	{Code: OP_CALL, Pattern: "call ?"},
	{Code: OP_RET, Pattern: "ret"},
	{Code: OP_ORG, Pattern: ".org ?"},
}

// Instructions returns an iterator over the instruction table, in table
// order.
func Instructions() iter.Seq[Instruction] {
	return slices.Values(instructionSet)
}

// LookupOpcode finds the table entry of an opcode.
func LookupOpcode(op Opcode) (ins Instruction, ok bool) {
	for _, entry := range instructionSet {
		if entry.Code == op {
			ins = entry
			ok = true
			return
		}
	}

	return
}

// LookupPattern finds the table entry whose pattern, in either form,
// exactly matches a canonical search string such as "mov a,?".
func LookupPattern(search string) (ins Instruction, ok bool) {
	for _, entry := range instructionSet {
		if entry.Pattern == search || (len(entry.Bit) != 0 && entry.Bit == search) {
			ins = entry
			ok = true
			return
		}
	}

	return
}

// Form returns the pattern used to render the operand data.
func (ins Instruction) Form(data uint8) string {
	if data != 0 && len(ins.Bit) != 0 {
		return ins.Bit
	}
	return ins.Pattern
}

// Dual is true for opcodes with a byte form and a bit form.
func (ins Instruction) Dual() bool {
	return len(ins.Bit) != 0
}

// HasOperand is true if the byte form carries an operand placeholder.
func (ins Instruction) HasOperand() bool {
	return strings.Contains(ins.Pattern, PLACEHOLDER)
}

// Mnemonic returns the bare mnemonic of the instruction.
func (ins Instruction) Mnemonic() string {
	mnemonic, _, _ := strings.Cut(ins.Pattern, " ")
	return mnemonic
}

// Executable is true if the opcode may appear in memory as code.
func (op Opcode) Executable() bool {
	return op != OP_DATA && op <= OP_MAX
}

// String returns the mnemonic of the opcode.
func (op Opcode) String() string {
	if op == OP_DATA {
		op = OP_DB
	}
	ins, ok := LookupOpcode(op)
	if !ok {
		return fmt.Sprintf("op(0x%02x)", uint8(op))
	}
	return ins.Mnemonic()
}

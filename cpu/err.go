// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/cp1/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalt = errors.New(f("halted"))

	// Word decode errors
	ErrWordMalformed = errors.New(f("word malformed"))

	// Line assembler errors
	ErrLiteralRange     = errors.New(f("literal out of range"))
	ErrTwoImmediates    = errors.New(f("two immediate values"))
	ErrMnemonicUnknown  = errors.New(f("mnemonic unknown"))
	ErrMnemonicMissing  = errors.New(f("mnemonic missing"))
	ErrOperandSeparator = errors.New(f("operands must be separated by ','"))
	ErrOpcodeExtraArgs  = errors.New(f("excessive arguments"))

	// Program assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrAddressRange    = errors.New(f("address out of range"))
	ErrAddressReused   = errors.New(f("address already assembled"))
	ErrLabelOrigin     = errors.New(f(".org needs a defined address"))
	ErrLabelRegister   = errors.New(f("register name used as a label"))
)

type ErrOpcode Word

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Word(eo).Opcode().String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label '%v' is not defined", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

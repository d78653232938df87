// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"slices"
	"strconv"
	"strings"
)

// Result is the outcome of assembling a single line.
type Result int

const (
	RESULT_OK             = Result(0)   // word assembled
	RESULT_RANGE          = Result(2)   // invalid or out of range literal
	RESULT_TWO_IMMEDIATES = Result(3)   // two immediate values given
	RESULT_UNKNOWN        = Result(5)   // unknown mnemonic
	RESULT_COMMENT        = Result(6)   // comment line
	RESULT_ORIGIN         = Result(255) // origin directive, word is an address
)

var resultText = map[Result]string{
	RESULT_OK:             "ok",
	RESULT_RANGE:          "invalid literal",
	RESULT_TWO_IMMEDIATES: "two immediate values",
	RESULT_UNKNOWN:        "unknown mnemonic",
	RESULT_COMMENT:        "comment",
	RESULT_ORIGIN:         "origin",
}

// String returns the translated description of the result.
func (r Result) String() string {
	text, ok := resultText[r]
	if !ok {
		return f("result %d", int(r))
	}
	return f(text)
}

// Err returns the error of a failed result, or nil for the results that
// are not failures (ok, comment and origin).
func (r Result) Err() (err error) {
	switch r {
	case RESULT_RANGE:
		err = ErrLiteralRange
	case RESULT_TWO_IMMEDIATES:
		err = ErrTwoImmediates
	case RESULT_UNKNOWN:
		err = ErrMnemonicUnknown
	}
	return
}

// AssembleLine assembles one line of source into a program word.
//
// For RESULT_ORIGIN the word is the address of the .org directive. For
// every failed result the word is WORD_INVALID.
func AssembleLine(text string) (word Word, result Result) {
	word, result, _ = assembleLine(text)
	return
}

// assembleLine is AssembleLine, with the detailed reason of a failure.
func assembleLine(text string) (word Word, result Result, err error) {
	word = WORD_INVALID

	search, data, result, err := searchString(text)
	if result != RESULT_OK {
		return
	}

	ins, ok := LookupPattern(search)
	if !ok {
		result = RESULT_UNKNOWN
		err = ErrMnemonicUnknown
		return
	}

	switch ins.Code {
	case OP_ORG:
		word = Word(data)
		result = RESULT_ORIGIN
	case OP_DB:
		word = MakeWord(OP_DATA, data)
	default:
		word = MakeWord(ins.Code, data)
	}

	return
}

// searchString normalizes a line of source into the canonical pattern
// used to search the instruction table, and extracts its immediate data.
//
// "MOV A, 123" becomes "mov a,?" with data 123.
func searchString(text string) (search string, data uint8, result Result, err error) {
	line := strings.ReplaceAll(text, "\t", " ")
	line = strings.TrimLeft(line, " ")

	if strings.HasPrefix(line, ";") {
		result = RESULT_COMMENT
		return
	}

	// The first space separates the mnemonic from its operands.
	line = strings.Replace(line, " ", ",", 1)
	line = strings.ToLower(line)
	line, _, _ = strings.Cut(line, ";")

	// Operands separated only by spaces would be merged below.
	for field := range strings.SplitSeq(line, ",") {
		if len(strings.Fields(field)) > 1 {
			result = RESULT_UNKNOWN
			err = ErrOperandSeparator
			return
		}
	}

	line = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\r', '\n':
			return -1
		}
		return r
	}, line)

	words := slices.DeleteFunc(strings.Split(line, ","), func(a string) bool { return len(a) == 0 })
	switch {
	case len(words) == 0:
		result = RESULT_UNKNOWN
		err = ErrMnemonicMissing
		return
	case len(words) > 3:
		result = RESULT_UNKNOWN
		err = ErrOpcodeExtraArgs
		return
	}

	var values [2]uint8
	for n, operand := range words[1:] {
		value, indirect, perr := parseLiteral(operand)
		var not_number ErrParseNumber
		switch {
		case errors.As(perr, &not_number):
			// Register names stay literal.
			value = 0
		case perr != nil:
			result = RESULT_RANGE
			err = perr
			return
		case indirect:
			words[1+n] = INDIRECT_ARG
		default:
			words[1+n] = PLACEHOLDER
		}
		values[n] = value

		if values[0] > 0 && values[1] > 0 {
			result = RESULT_TWO_IMMEDIATES
			err = ErrTwoImmediates
			return
		}
	}

	search = words[0]
	if len(words) > 1 {
		search += " " + strings.Join(words[1:], ",")
	}

	data = values[0]
	if data == 0 {
		data = values[1]
	}

	return
}

// parseLiteral parses an 8-bit operand literal: decimal, or hexadecimal
// with a 0x prefix, optionally preceded by the '@' indirection marker.
//
// A literal that is not a number returns ErrParseNumber; an empty or too
// large literal returns ErrLiteralRange.
func parseLiteral(operand string) (value uint8, indirect bool, err error) {
	word := operand
	if strings.HasPrefix(word, INDIRECT) {
		indirect = true
		word = word[len(INDIRECT):]
	}
	if len(word) == 0 {
		err = ErrLiteralRange
		return
	}

	base := 10
	if strings.HasPrefix(word, "0x") {
		base = 16
		word = word[2:]
		if len(word) == 0 {
			// A bare prefix is zero.
			return
		}
	}

	u64, perr := strconv.ParseUint(word, base, 8)
	switch {
	case errors.Is(perr, strconv.ErrRange):
		err = ErrLiteralRange
		return
	case perr != nil:
		err = ErrParseNumber(operand)
		return
	}

	value = uint8(u64)
	return
}

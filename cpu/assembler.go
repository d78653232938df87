// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Operand words that are never labels or equates.
var registerNames = []string{"a", "b", "c", "d", "e", "p1", "p2"}

var (
	reLabel      = regexp.MustCompile(`^\s*([A-Za-z_]\w*):`)
	reParen      = regexp.MustCompile(`\$\([^\$]*\)`)
	reIdentifier = regexp.MustCompile(`\b[A-Za-z_]\w*\b`)
)

// Assembler is a single pass program assembler for the CP1.
//
// Each source line holds at most one instruction, and is assembled by
// AssembleLine after labels, equates and $(...) expressions have been
// replaced by their values. References to labels defined later in the
// source are linked once the whole source has been read.
type Assembler struct {
	Verbose    bool        // If set, verbosely logs the assembler actions.
	Statements []Statement // List of assembled statements.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	addr int               // Next address to assemble.
	used [MEMORY_SIZE]bool // Addresses already assembled.
	link map[int]string    // Statement index to forward label.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the integer value of an equate.
func valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be register names.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// isRegister is true for the register and port operand names.
func isRegister(word string) bool {
	return slices.Contains(registerNames, strings.ToLower(word))
}

// substitute replaces the identifiers of an operand list with the values
// of equates and labels. An unknown identifier is taken as a reference to
// a label defined later, and is replaced by zero until linked.
func (asm *Assembler) substitute(operands string) (text string, forward string, err error) {
	text = reIdentifier.ReplaceAllStringFunc(operands, func(word string) string {
		if isRegister(word) {
			return word
		}
		if equate, ok := asm.Equate[word]; ok {
			return equate
		}
		if addr, ok := asm.Label[word]; ok {
			return strconv.Itoa(addr)
		}
		if len(forward) != 0 && forward != word {
			err = ErrTwoImmediates
		}
		forward = word
		return "0"
	})

	return
}

// parseLine assembles a single line of source.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line, _, _ = strings.Cut(line, ";")
	line = strings.ReplaceAll(line, "\t", " ")

	// Labels
	for {
		match := reLabel.FindStringSubmatchIndex(line)
		if match == nil {
			break
		}
		label := line[match[2]:match[3]]
		if isRegister(label) {
			err = ErrLabelRegister
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.addr
		line = line[match[1]:]
	}

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	// The mnemonic ends at the first space or comma.
	mnemonic, operands := line, ""
	if n := strings.IndexAny(line, " ,"); n >= 0 {
		mnemonic, operands = line[:n], line[n+1:]
	}

	// .equ CONST VALUE
	if strings.ToLower(mnemonic) == ".equ" {
		words := strings.Fields(operands)
		if len(words) != 2 {
			err = ErrEquateSyntax
			return
		}
		if isRegister(words[0]) {
			err = ErrLabelRegister
			return
		}
		_, ok := asm.Equate[words[0]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[0]] = words[1]
		return
	}

	operands, forward, err := asm.substitute(operands)
	if err != nil {
		return
	}

	text := mnemonic
	if len(strings.TrimSpace(operands)) != 0 {
		text += " " + strings.TrimSpace(operands)
	}

	word, result, err := assembleLine(text)
	switch result {
	case RESULT_OK:
	case RESULT_ORIGIN:
		if len(forward) != 0 {
			err = ErrLabelOrigin
			return
		}
		if asm.Verbose {
			log.Printf("asm: .org %d", int(word))
		}
		asm.addr = int(word)
		return
	case RESULT_COMMENT:
		return
	default:
		if err == nil {
			err = result.Err()
		}
		return
	}

	if asm.addr >= MEMORY_SIZE {
		err = ErrAddressRange
		return
	}
	if asm.used[asm.addr] {
		err = ErrAddressReused
		return
	}

	if len(forward) != 0 {
		asm.link[len(asm.Statements)] = forward
	}

	asm.used[asm.addr] = true
	asm.Statements = append(asm.Statements, Statement{
		LineNo: lineno,
		Addr:   asm.addr,
		Text:   line,
		Word:   word,
	})
	asm.addr++

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Statements = asm.Statements[:0]
	asm.Label = make(map[string]int, 16)
	asm.link = make(map[int]string)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)
	asm.addr = 0
	clear(asm.used[:])

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of forward labels.
	for _, index := range slices.Sorted(maps.Keys(asm.link)) {
		label := asm.link[index]
		stmt := &asm.Statements[index]
		addr, ok := asm.Label[label]
		if !ok {
			lineno = stmt.LineNo
			line = stmt.Text
			err = ErrLabelMissing(label)
			return
		}
		if addr >= MEMORY_SIZE {
			lineno = stmt.LineNo
			line = stmt.Text
			err = ErrAddressRange
			return
		}
		stmt.Word = MakeWord(stmt.Word.Opcode(), uint8(addr))
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statements),
	}

	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Statement is a single assembled source line.
type Statement struct {
	LineNo int    // Source line number.
	Addr   int    // Memory address.
	Text   string // Source text, without comment.
	Word   Word   // Assembled word.
}

// Program is the result of assembling a source file.
type Program struct {
	Statements []Statement
}

// Debug finds the statement assembled at an address, or nil.
func (prog *Program) Debug(addr uint16) (stmt *Statement) {
	for n := range prog.Statements {
		if prog.Statements[n].Addr == int(addr) {
			stmt = &prog.Statements[n]
			break
		}
	}

	return
}

// Words iterates over the assembled words, by address.
func (prog *Program) Words() iter.Seq2[int, Word] {
	return func(yield func(addr int, word Word) bool) {
		for _, stmt := range prog.Statements {
			if !yield(stmt.Addr, stmt.Word) {
				return
			}
		}
	}
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (mem [MEMORY_SIZE]Word) {
	for addr, word := range prog.Words() {
		mem[addr] = word
	}

	return
}

// Load copies the program into the memory of the CPU.
func (prog *Program) Load(cpu *Cpu) {
	for addr, word := range prog.Words() {
		cpu.Memory[addr] = word
	}
}

// Listing writes an address, decimal word, and source listing.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, stmt := range prog.Statements {
		_, err = fmt.Fprintf(w, "%03d  %05d  %v\n", stmt.Addr, stmt.Word.Decimal(), stmt.Text)
		if err != nil {
			return
		}
	}

	return
}

// WriteDecimal writes the memory image of the program as decimal words,
// one per line, from address zero to the last assembled address.
func (prog *Program) WriteDecimal(w io.Writer) (err error) {
	last := -1
	for addr := range prog.Words() {
		last = max(last, addr)
	}

	mem := prog.Binary()
	for _, word := range mem[:last+1] {
		_, err = fmt.Fprintf(w, "%05d\n", word.Decimal())
		if err != nil {
			return
		}
	}

	return
}

// ReadDecimal reads a memory image of decimal words, one per line, from
// address zero. Blank lines and lines starting with ';' are skipped.
func ReadDecimal(r io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(r)
	addr := 0
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, ";") {
			continue
		}

		var word Word
		word, err = parseDecimal(addr, line)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}

		text, derr := Disassemble(word)
		if derr != nil {
			text = line
		}
		prog.Statements = append(prog.Statements, Statement{
			LineNo: lineno,
			Addr:   addr,
			Text:   text,
			Word:   word,
		})
		addr++
	}

	err = scanner.Err()
	return
}

func parseDecimal(addr int, text string) (word Word, err error) {
	if addr >= MEMORY_SIZE {
		err = ErrAddressRange
		return
	}

	value, err := strconv.Atoi(text)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	return WordFromDecimal(value)
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package monitor is an interactive command monitor for the CP1 emulator.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/ezrec/cp1/cpu"
	"github.com/ezrec/cp1/emulator"
)

// Monitor reads commands, and applies them to an emulator.
type Monitor struct {
	Emu *emulator.Emulator

	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	running     atomic.Bool
	lastCmd     *selection
	settings    *settings

	nextEnter  int // address of the next entered instruction
	nextDisasm int // address of the next disassembly
	nextMemory int // address of the next memory dump
}

// New creates a monitor for an emulator.
func New(emu *emulator.Emulator) *Monitor {
	mon := &Monitor{
		Emu:      emu,
		settings: newSettings(),
	}
	mon.settings.Verbose = emu.Verbose

	return mon
}

// RunCommands accepts monitor commands from a reader and writes the
// results to a writer. When interactive, a prompt is shown, and an empty
// line repeats the previous command. It returns when the input ends or a
// quit command is read.
func (mon *Monitor) RunCommands(r io.Reader, w io.Writer, interactive bool) (err error) {
	mon.input = bufio.NewScanner(r)
	mon.output = bufio.NewWriter(w)
	mon.interactive = interactive
	defer mon.flush()

	display := mon.Emu.Display.Output
	mon.Emu.Display.Output = mon.output
	defer func() {
		mon.Emu.Display.Output = display
	}()

	for {
		mon.prompt()

		var line string
		line, err = mon.getLine()
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		var sel selection
		if strings.TrimSpace(line) != "" {
			sel, err = lookup(line)
			if err != nil {
				mon.printf("%v\n", err)
				err = nil
				continue
			}
		} else if mon.interactive && mon.lastCmd != nil {
			sel = *mon.lastCmd
		}

		if sel.cmd == nil {
			continue
		}
		mon.lastCmd = &sel

		err = sel.cmd.handler(mon, sel)
		mon.flush()
		if errors.Is(err, ErrQuit) {
			err = nil
			return
		}
		if err != nil {
			return
		}
	}
}

// Break stops a running program. It is safe to call from another
// goroutine, such as a signal handler.
func (mon *Monitor) Break() {
	if mon.running.Load() {
		mon.Emu.Keypad.Stop()
	}
}

func (mon *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(mon.output, format, args...)
}

func (mon *Monitor) println(args ...any) {
	fmt.Fprintln(mon.output, args...)
}

func (mon *Monitor) flush() {
	mon.output.Flush()
}

func (mon *Monitor) getLine() (string, error) {
	if mon.input.Scan() {
		return mon.input.Text(), nil
	}
	if mon.input.Err() != nil {
		return "", mon.input.Err()
	}
	return "", io.EOF
}

func (mon *Monitor) prompt() {
	if mon.interactive {
		mon.printf("%03d> ", mon.Emu.Cpu.Pc)
		mon.flush()
	}
}

// parseNumber parses a decimal, hex (0x) or octal (0o) number, up to max.
func parseNumber(text string, max int) (value int, err error) {
	n, perr := strconv.ParseInt(text, 0, 32)
	if perr != nil || n < 0 || int(n) > max {
		err = ErrNumber(text)
		return
	}

	value = int(n)
	return
}

// parseAddr parses a memory address, or "pc".
func (mon *Monitor) parseAddr(text string) (addr int, err error) {
	if strings.EqualFold(text, "pc") {
		addr = int(mon.Emu.Cpu.Pc)
		return
	}

	return parseNumber(text, cpu.MEMORY_SIZE-1)
}

// wordLine formats a memory word, in the form of a program listing.
func wordLine(addr int, word cpu.Word) string {
	text, err := cpu.Disassemble(word)
	if err != nil {
		text = "???"
	}
	return fmt.Sprintf("%03d  %05d  %v", addr, word.Decimal(), text)
}

// displayPc shows the instruction at the program counter.
func (mon *Monitor) displayPc() {
	pc := int(mon.Emu.Cpu.Pc)
	if pc >= cpu.MEMORY_SIZE {
		mon.printf("%03d  ---\n", pc)
		return
	}

	line := wordLine(pc, mon.Emu.Cpu.Memory[pc])
	if lineno := mon.Emu.LineNo(); lineno != 0 {
		line = fmt.Sprintf("%-24s ; line %d", line, lineno)
	}
	mon.println(line)
}

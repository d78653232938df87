// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package monitor

import (
	"os"
	"strings"

	"github.com/beevik/prefixtree/v2"

	"github.com/ezrec/cp1/cpu"
	"github.com/ezrec/cp1/internal"
)

// command is a single monitor command.
type command struct {
	name     string
	shortcut string
	brief    string
	usage    string
	handler  func(mon *Monitor, sel selection) error
}

// selection is a looked up command, and its arguments.
type selection struct {
	cmd  *command
	args []string
}

var (
	commands    []command
	commandTree = prefixtree.New[*command]()
)

func init() {
	commands = []command{
		{name: "help", shortcut: "?", brief: "Show help for a command",
			usage: "help [<command>]", handler: (*Monitor).cmdHelp},
		{name: "assemble", shortcut: "a", brief: "Assemble a source file and reset",
			usage: "assemble <filename>", handler: (*Monitor).cmdAssemble},
		{name: "load", brief: "Load a decimal memory image and reset",
			usage: "load <filename>", handler: (*Monitor).cmdLoad},
		{name: "enter", shortcut: "e", brief: "Assemble one instruction into memory",
			usage: "enter [<address>] <instruction>", handler: (*Monitor).cmdEnter},
		{name: "write", shortcut: "w", brief: "Write decimal words into memory",
			usage: "write <address> <word> [<word>...]", handler: (*Monitor).cmdWrite},
		{name: "disassemble", shortcut: "d", brief: "Disassemble memory",
			usage: "disassemble [<address>] [<lines>]", handler: (*Monitor).cmdDisassemble},
		{name: "memory", shortcut: "m", brief: "Dump memory as decimal words",
			usage: "memory [<address>] [<words>]", handler: (*Monitor).cmdMemory},
		{name: "listing", shortcut: "l", brief: "Show the program listing",
			usage: "listing", handler: (*Monitor).cmdListing},
		{name: "registers", shortcut: "r", brief: "Show the CPU registers",
			usage: "registers", handler: (*Monitor).cmdRegisters},
		{name: "ports", shortcut: "p", brief: "Show the port pins",
			usage: "ports", handler: (*Monitor).cmdPorts},
		{name: "input", shortcut: "i", brief: "Apply levels to the input pins of a port",
			usage: "input <port> <value>", handler: (*Monitor).cmdInput},
		{name: "step", shortcut: "s", brief: "Execute instructions one at a time",
			usage: "step [<count>]", handler: (*Monitor).cmdStep},
		{name: "run", brief: "Run the program until it stops",
			usage: "run", handler: (*Monitor).cmdRun},
		{name: "reset", brief: "Reset the machine, and reload the program",
			usage: "reset", handler: (*Monitor).cmdReset},
		{name: "defines", brief: "Show the assembler predefines",
			usage: "defines", handler: (*Monitor).cmdDefines},
		{name: "set", brief: "Show or change a monitor setting",
			usage: "set [<setting> <value>]", handler: (*Monitor).cmdSet},
		{name: "quit", shortcut: "q", brief: "Leave the monitor",
			usage: "quit", handler: (*Monitor).cmdQuit},
	}

	for n := range commands {
		commandTree.Add(commands[n].name, &commands[n])
		if commands[n].shortcut != "" {
			commandTree.Add(commands[n].shortcut, &commands[n])
		}
	}
}

// lookup finds the command of a line by an unambiguous prefix, or its
// shortcut.
func lookup(line string) (sel selection, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	name := strings.ToLower(fields[0])
	cmd, err := commandTree.FindValue(name)
	if err != nil {
		err = &ErrCommand{Name: name, Err: err}
		return
	}

	sel = selection{cmd: cmd, args: fields[1:]}
	return
}

func (mon *Monitor) displayUsage(cmd *command) {
	mon.printf("%v: %v\n", f("usage"), cmd.usage)
}

func (mon *Monitor) cmdHelp(sel selection) error {
	if len(sel.args) == 0 {
		mon.printf("%v:\n", f("commands"))
		for _, cmd := range commands {
			mon.printf("    %-12s %s\n", cmd.name, f(cmd.brief))
		}
		return nil
	}

	help, err := lookup(strings.Join(sel.args, " "))
	if err != nil {
		mon.printf("%v\n", err)
		return nil
	}

	mon.printf("%s\n", f(help.cmd.brief))
	mon.displayUsage(help.cmd)
	return nil
}

func (mon *Monitor) cmdAssemble(sel selection) error {
	if len(sel.args) != 1 {
		mon.displayUsage(sel.cmd)
		return nil
	}

	filename := sel.args[0]
	inf, err := os.Open(filename)
	if err != nil {
		mon.printf("%v\n", err)
		return nil
	}
	defer inf.Close()

	err = mon.Emu.Assemble(inf)
	if err != nil {
		mon.printf("%v: %v\n", filename, err)
		return nil
	}

	mon.printf("%v\n", f("%v: %d words", filename, len(mon.Emu.Program.Statements)))
	return mon.cmdReset(sel)
}

func (mon *Monitor) cmdLoad(sel selection) error {
	if len(sel.args) != 1 {
		mon.displayUsage(sel.cmd)
		return nil
	}

	filename := sel.args[0]
	inf, err := os.Open(filename)
	if err != nil {
		mon.printf("%v\n", err)
		return nil
	}
	defer inf.Close()

	prog, err := cpu.ReadDecimal(inf)
	if err != nil {
		mon.printf("%v: %v\n", filename, err)
		return nil
	}

	mon.Emu.Program = prog
	mon.printf("%v\n", f("%v: %d words", filename, len(prog.Statements)))
	return mon.cmdReset(sel)
}

func (mon *Monitor) cmdEnter(sel selection) error {
	if len(sel.args) == 0 {
		mon.displayUsage(sel.cmd)
		return nil
	}

	addr := mon.nextEnter
	args := sel.args
	if len(args) > 1 {
		if n, err := mon.parseAddr(args[0]); err == nil {
			addr = n
			args = args[1:]
		}
	}

	if addr >= cpu.MEMORY_SIZE {
		mon.printf("%v\n", cpu.ErrAddressRange)
		return nil
	}

	word, result := cpu.AssembleLine(strings.Join(args, " "))
	switch result {
	case cpu.RESULT_OK:
		mon.Emu.Cpu.Memory[addr] = word
		mon.println(wordLine(addr, word))
		mon.nextEnter = addr + 1
	case cpu.RESULT_ORIGIN:
		mon.nextEnter = int(word)
	case cpu.RESULT_COMMENT:
	default:
		mon.printf("%v\n", result.Err())
	}

	return nil
}

func (mon *Monitor) cmdWrite(sel selection) error {
	if len(sel.args) < 2 {
		mon.displayUsage(sel.cmd)
		return nil
	}

	addr, err := mon.parseAddr(sel.args[0])
	if err != nil {
		mon.printf("%v\n", err)
		return nil
	}

	for _, arg := range sel.args[1:] {
		if addr >= cpu.MEMORY_SIZE {
			mon.printf("%v\n", cpu.ErrAddressRange)
			return nil
		}

		value, err := parseNumber(arg, 255255)
		if err != nil {
			mon.printf("%v\n", err)
			return nil
		}

		word, err := cpu.WordFromDecimal(value)
		if err != nil {
			mon.printf("%v: %v\n", arg, err)
			return nil
		}

		mon.Emu.Cpu.Memory[addr] = word
		addr++
	}

	return nil
}

// span parses an optional start address and count.
func (mon *Monitor) span(sel selection, next int, count int) (addr int, end int, err error) {
	addr = next
	if len(sel.args) > 0 {
		addr, err = mon.parseAddr(sel.args[0])
		if err != nil {
			return
		}
	}
	if len(sel.args) > 1 {
		count, err = parseNumber(sel.args[1], cpu.MEMORY_SIZE)
		if err != nil {
			return
		}
	}
	if len(sel.args) > 2 {
		err = ErrArgumentCount
		return
	}

	end = min(addr+count, cpu.MEMORY_SIZE)
	return
}

func (mon *Monitor) cmdDisassemble(sel selection) error {
	addr, end, err := mon.span(sel, mon.nextDisasm, mon.settings.DisasmLines)
	if err != nil {
		mon.printf("%v\n", err)
		return nil
	}

	for ; addr < end; addr++ {
		mon.println(wordLine(addr, mon.Emu.Cpu.Memory[addr]))
	}

	mon.nextDisasm = end % cpu.MEMORY_SIZE
	return nil
}

func (mon *Monitor) cmdMemory(sel selection) error {
	addr, end, err := mon.span(sel, mon.nextMemory, mon.settings.MemoryWords)
	if err != nil {
		mon.printf("%v\n", err)
		return nil
	}

	const perLine = 8
	for ; addr < end; addr += perLine {
		mon.printf("%03d:", addr)
		for n := addr; n < min(addr+perLine, end); n++ {
			mon.printf(" %05d", mon.Emu.Cpu.Memory[n].Decimal())
		}
		mon.println()
	}

	mon.nextMemory = end % cpu.MEMORY_SIZE
	return nil
}

func (mon *Monitor) cmdListing(sel selection) error {
	err := mon.Emu.Program.Listing(mon.output)
	if err != nil {
		mon.printf("%v\n", err)
	}
	return nil
}

func (mon *Monitor) cmdRegisters(sel selection) error {
	mon.printf("%v", mon.Emu.Cpu.String())
	mon.printf("%5s: %d\n", "ticks", mon.Emu.Cpu.Ticks)
	if mon.Emu.Cpu.Fault != cpu.FAULT_NONE {
		mon.printf("%5s: %v\n", "fault", mon.Emu.Cpu.Fault)
	}
	return nil
}

func (mon *Monitor) cmdPorts(sel selection) error {
	mon.printf("%v", mon.Emu.Ports.String())
	return nil
}

func (mon *Monitor) cmdInput(sel selection) error {
	if len(sel.args) != 2 {
		mon.displayUsage(sel.cmd)
		return nil
	}

	port, err := parseNumber(sel.args[0], cpu.PORT_COUNT)
	if err == nil && port == 0 {
		err = ErrNumber(sel.args[0])
	}
	if err != nil {
		mon.printf("%v\n", err)
		return nil
	}

	value, err := parseNumber(sel.args[1], 0xff)
	if err != nil {
		mon.printf("%v\n", err)
		return nil
	}

	mon.Emu.Ports.Port[port-1].Input = uint8(value)
	return nil
}

func (mon *Monitor) syncSettings() {
	mon.Emu.Verbose = mon.settings.Verbose
	mon.Emu.Ports.Verbose = mon.settings.Verbose
	mon.Emu.Interrupts.Verbose = mon.settings.Verbose
}

// report shows why the program stopped.
func (mon *Monitor) report(err error) {
	pc := mon.Emu.Cpu.Pc
	switch {
	case err != nil:
		mon.printf("%v\n", err)
	case mon.Emu.Cpu.Fault.Aborted():
		mon.printf("%v\n", f("stopped at %03d", pc))
	case mon.Emu.Cpu.Halted:
		mon.printf("%v\n", f("halted at %03d", pc))
	}
}

func (mon *Monitor) cmdStep(sel selection) error {
	count := mon.settings.StepLines
	if len(sel.args) > 0 {
		var err error
		count, err = parseNumber(sel.args[0], 1<<20)
		if err != nil {
			mon.printf("%v\n", err)
			return nil
		}
	}

	mon.syncSettings()
	mon.running.Store(true)
	defer mon.running.Store(false)

	for range count {
		done, err := mon.Emu.Tick()
		if done || err != nil {
			mon.report(err)
			break
		}
		mon.displayPc()
	}

	return nil
}

func (mon *Monitor) cmdRun(sel selection) error {
	mon.syncSettings()
	mon.running.Store(true)
	err := mon.Emu.Run(mon.settings.TickLimit)
	mon.running.Store(false)

	mon.report(err)
	mon.displayPc()
	return nil
}

func (mon *Monitor) cmdReset(sel selection) error {
	mon.syncSettings()
	mon.Emu.Reset()
	mon.nextEnter = 0
	mon.nextDisasm = 0
	mon.nextMemory = 0

	mon.displayPc()
	return nil
}

func (mon *Monitor) cmdDefines(sel selection) error {
	for key, value := range internal.IterSeq2Sorted(mon.Emu.Defines()) {
		mon.printf("    %-16s %v\n", key, value)
	}
	return nil
}

func (mon *Monitor) cmdSet(sel selection) error {
	switch len(sel.args) {
	case 0:
		mon.printf("%v:\n", f("settings"))
		mon.settings.Display(mon.output)
	case 2:
		name, err := mon.settings.Set(sel.args[0], sel.args[1])
		if err != nil {
			mon.printf("%v\n", err)
			return nil
		}
		mon.printf("%v\n", f("%v set", name))
		mon.syncSettings()
	default:
		mon.displayUsage(sel.cmd)
	}

	return nil
}

func (mon *Monitor) cmdQuit(sel selection) error {
	return ErrQuit
}


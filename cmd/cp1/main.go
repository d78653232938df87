// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/beevik/term"

	"github.com/ezrec/cp1/cpu"
	"github.com/ezrec/cp1/emulator"
	"github.com/ezrec/cp1/monitor"
	"github.com/ezrec/cp1/translate"
)

var f = translate.From

var (
	ErrStdinShared = errors.New(f("the monitor and the tape cannot both read stdin"))
)

func main() {
	var compile string
	var decimal string
	var listing bool
	var write string
	var step bool
	var interactive bool
	var input string
	var output string
	var port1 string
	var limit int
	var verbose bool
	equates := map[string]string{}

	flag.StringVar(&compile, "c", "", "source file to assemble")
	flag.StringVar(&decimal, "d", "", "decimal memory image to load")
	flag.BoolVar(&listing, "l", false, "Write the program listing, do not execute")
	flag.StringVar(&write, "w", "", "Write the decimal memory image, do not execute")
	flag.BoolVar(&step, "s", false, "Trace each instruction")
	flag.BoolVar(&interactive, "m", false, "Start the interactive monitor")
	flag.StringVar(&input, "i", "", "Tape input, '-' for stdin")
	flag.StringVar(&output, "o", "", "Tape output, '-' for stdout")
	flag.StringVar(&port1, "p1", "", "Input levels of port p1")
	flag.IntVar(&limit, "t", 0, "Instruction limit, 0 for none")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine NAME=VALUE for the assembler", func(text string) error {
		name, value, ok := strings.Cut(text, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%q: expected NAME=VALUE", text)
		}
		equates[name] = value
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	run := !listing && len(write) == 0
	useMonitor := run && (interactive || (len(compile) == 0 && len(decimal) == 0))
	if err := checkStdin(useMonitor, input); err != nil {
		log.Fatalf("-i %v: %v", input, err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Equates = equates
	emu.Display.Output = os.Stdout

	// Assemble, or load, a program.
	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(decimal) != 0:
		inf, err := os.Open(decimal)
		if err != nil {
			log.Fatalf("%v: %v", decimal, err)
		}
		defer inf.Close()

		emu.Program, err = cpu.ReadDecimal(inf)
		if err != nil {
			log.Fatalf("%v: %v", decimal, err)
		}
	}

	if listing {
		err := emu.Program.Listing(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	if len(write) != 0 {
		ouf, err := os.Create(write)
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
		err = emu.Program.WriteDecimal(ouf)
		if err == nil {
			err = ouf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
	}

	if !run {
		return
	}

	if len(port1) != 0 {
		value, err := strconv.ParseUint(port1, 0, 8)
		if err != nil {
			log.Fatalf("-p1 %v: %v", port1, err)
		}
		emu.Ports.Port[cpu.PORT_1].Input = uint8(value)
	}

	if inf := openTape(input, os.Stdin, os.Open); inf != nil {
		defer inf.Close()
		emu.Tape.Input = inf
	}
	if ouf := openTape(output, os.Stdout, os.Create); ouf != nil {
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	emu.Reset()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	if useMonitor {
		mon := monitor.New(emu)
		go func() {
			for range c {
				mon.Break()
			}
		}()

		err := mon.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	// Stop the program on Ctrl-C.
	go func() {
		for range c {
			emu.Keypad.Stop()
		}
	}()

	for ticks := 0; limit == 0 || ticks < limit; ticks++ {
		if step {
			trace(emu)
		}
		done, err := emu.Tick()
		if err != nil {
			log.Fatal(err)
		}
		if done {
			if emu.Cpu.Fault.Aborted() {
				log.Printf("%v", emu.Cpu.Fault)
			}
			return
		}
	}

	log.Fatalf("%v", emulator.ErrTickLimit)
}

// checkStdin rejects a tape reading stdin while the monitor reads its
// commands from stdin.
func checkStdin(useMonitor bool, input string) (err error) {
	if useMonitor && input == "-" {
		err = ErrStdinShared
	}
	return
}

// openTape opens a tape stream: nil for "", std for "-", or a file.
func openTape(name string, std *os.File, open func(string) (*os.File, error)) (file *os.File) {
	switch name {
	case "":
		return
	case "-":
		return std
	}

	file, err := open(name)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	return
}

// trace logs the instruction about to execute.
func trace(emu *emulator.Emulator) {
	pc := int(emu.Cpu.Pc)
	if pc >= cpu.MEMORY_SIZE {
		return
	}

	text, err := cpu.Disassemble(emu.Cpu.Memory[pc])
	if err != nil {
		text = err.Error()
	}
	log.Printf("%03d: %-16v a=%3d psw=%v", pc, text, emu.Cpu.A, emu.Cpu.Status)
}

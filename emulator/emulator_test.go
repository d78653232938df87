package emulator

import (
	"bytes"
	"errors"
	"maps"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cp1/cpu"
	"github.com/ezrec/cp1/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(&emu.Display, emu.Cpu.Display)
	assert.Equal(&emu.Keypad, emu.Cpu.Keys)
	assert.Equal(&emu.Keypad, emu.Delay.Keys)
	assert.Equal([]uint8{io.INT_STOP, io.INT_TAPE_READ, io.INT_TAPE_WRITE, io.INT_PORTS},
		emu.Interrupts.Codes())

	defines := maps.Collect(emu.Defines())
	assert.Equal("10", defines["DELAY_TICK_MS"])
	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("0x82", defines["KEY_STOP"])
	assert.Equal("1", defines["INT_TAPE_READ"])
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	emu.Reset()
}

func doRunSingle(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	doAssemble(emu, program, t)

	for _, stmt := range emu.Program.Statements {
		if stmt.Word.Opcode() == cpu.OP_DATA {
			continue
		}
		here := program[stmt.LineNo-1]
		assert.Equal(stmt.Addr, emu.Addr(), here)
		assert.Equal(stmt.LineNo, emu.LineNo(), here)
		done, err := emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		if stmt.Word.Opcode() == cpu.OP_HLT {
			assert.True(done, here)
			return
		}
		assert.False(done, here)
	}

	t.Fatalf("program did not halt")
}

func TestEmulator_Single(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Ports.Port[cpu.PORT_1].Input = 42

	doRunSingle(emu, []string{
		"; copy p1 to p2, and read p2 back",
		"        in p1",
		"        out p2",
		"        mvi a,0",
		"        int INT_PORTS",
		"        cdis",
		"        hlt",
	}, t)

	assert.Equal([]uint8{42}, emu.Display.Values)
	assert.Equal(uint8(0xff), emu.Ports.Port[cpu.PORT_2].Direction)
	assert.Equal(6, emu.Cpu.Ticks)
	assert.Equal(cpu.FAULT_NONE, emu.Cpu.Fault)
}

func TestEmulator_Echo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"loop:   int INT_TAPE_READ",
		"        jc done",
		"        int INT_TAPE_WRITE",
		"        jmp loop",
		"done:   hlt",
	}, t)

	output := &bytes.Buffer{}
	emu.Tape.Input = strings.NewReader("cp1")
	emu.Tape.Output = output

	err := emu.Run(0)
	assert.NoError(err)
	assert.Equal("cp1", output.String())
	assert.Equal(3, emu.Tape.Read)
	assert.Equal(3, emu.Tape.Written)
	assert.True(emu.Cpu.Halted)
}

func TestEmulator_Fault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"        mvi a,1",
		"        ret",
	}, t)

	err := emu.Run(0)
	assert.ErrorIs(err, cpu.FAULT_STACK_UNDERFLOW)
	assert.Equal(cpu.FAULT_STACK_UNDERFLOW, emu.Cpu.Fault)

	var rterr *ErrRuntime
	if assert.True(errors.As(err, &rterr)) {
		assert.Equal(1, rterr.Addr)
		assert.Equal(2, rterr.LineNo)
	}

	// Reset reloads the program.
	emu.Reset()
	assert.Equal(uint16(0), emu.Cpu.Pc)
	assert.Equal(cpu.MakeWord(cpu.OP_MVI_A, 1), emu.Cpu.Memory[0])
	assert.Equal(cpu.FAULT_NONE, emu.Cpu.Fault)
}

func TestEmulator_FaultOutsideProgram(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"        jmp 100",
	}, t)

	err := emu.Run(0)
	assert.ErrorIs(err, cpu.FAULT_DATA_EXECUTED)

	var rterr *ErrRuntime
	if assert.True(errors.As(err, &rterr)) {
		assert.Equal(100, rterr.Addr)
		assert.Equal(0, rterr.LineNo)
	}
}

func TestEmulator_Stop(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"loop:   jmp loop",
	}, t)

	emu.Keypad.Stop()
	err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(cpu.FAULT_STOPPED, emu.Cpu.Fault)
	assert.Equal(1, emu.Cpu.Ticks)

	doAssemble(emu, []string{
		"        int INT_STOP",
		"        hlt",
	}, t)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(cpu.FAULT_STOPPED, emu.Cpu.Fault)
	assert.Equal(uint16(1), emu.Cpu.Pc)
}

func TestEmulator_Delay(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Delay.Sleep = func(d time.Duration) {}
	doAssemble(emu, []string{
		"        cdel 5",
		"        hlt",
	}, t)

	err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(5*io.DELAY_TICK, emu.Delay.Elapsed)
}

func TestEmulator_TickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"loop:   jmp loop",
	}, t)

	err := emu.Run(10)
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(10, emu.Cpu.Ticks)
}

func TestEmulator_AssembleError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{"hlt"}, t)

	err := emu.Assemble(strings.NewReader("bogus a,1"))
	var synerr cpu.ErrSyntax
	assert.True(errors.As(err, &synerr))

	// The previous program is kept.
	assert.Equal(1, len(emu.Program.Statements))
}

func TestEmulator_Equates(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Equates = map[string]string{"START": "7"}
	doAssemble(emu, []string{
		"        mvi a,START",
		"        mvi b,$(MEMORY_SIZE-1)",
		"        hlt",
	}, t)

	assert.Equal(cpu.MakeWord(cpu.OP_MVI_A, 7), emu.Cpu.Memory[0])
	assert.Equal(cpu.MakeWord(cpu.OP_MVI_B, 255), emu.Cpu.Memory[1])
}

type brokenWriter struct{}

var errBroken = errors.New("broken writer")

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errBroken
}

func TestEmulator_DisplayError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Display.Output = brokenWriter{}
	doAssemble(emu, []string{
		"        mvi a,1",
		"        cdis",
		"        hlt",
	}, t)

	err := emu.Run(0)
	assert.ErrorIs(err, errBroken)

	var rterr *ErrRuntime
	if assert.True(errors.As(err, &rterr)) {
		assert.Equal(1, rterr.Addr)
		assert.Equal(2, rterr.LineNo)
	}
	assert.Equal([]uint8{1}, emu.Display.Values)
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package monitor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings are the monitor variables changed by the set command.
type settings struct {
	Verbose     bool // verbose emulator logging
	TickLimit   int  // instructions per run, zero for no limit
	DisasmLines int  // default number of lines to disassemble
	MemoryWords int  // default number of memory words to dump
	StepLines   int  // default number of instructions per step
}

func newSettings() *settings {
	return &settings{
		TickLimit:   0,
		DisasmLines: 10,
		MemoryWords: 16,
		StepLines:   1,
	}
}

type settingField struct {
	name string
	doc  string
	get  func(s *settings) any
	set  func(s *settings, value string) error
}

func intField(name, doc string, field func(s *settings) *int) settingField {
	return settingField{
		name: name,
		doc:  doc,
		get:  func(s *settings) any { return *field(s) },
		set: func(s *settings, value string) (err error) {
			n, err := strconv.ParseInt(value, 0, 32)
			if err != nil || n < 0 {
				err = ErrSettingType
				return
			}
			*field(s) = int(n)
			return
		},
	}
}

func boolField(name, doc string, field func(s *settings) *bool) settingField {
	return settingField{
		name: name,
		doc:  doc,
		get:  func(s *settings) any { return *field(s) },
		set: func(s *settings, value string) (err error) {
			b, err := strconv.ParseBool(value)
			if err != nil {
				err = ErrSettingType
				return
			}
			*field(s) = b
			return
		},
	}
}

var (
	settingsTree   = prefixtree.New[*settingField]()
	settingsFields = []settingField{
		boolField("Verbose", "verbose emulator logging",
			func(s *settings) *bool { return &s.Verbose }),
		intField("TickLimit", "instructions per run, 0 for no limit",
			func(s *settings) *int { return &s.TickLimit }),
		intField("DisasmLines", "default number of lines to disassemble",
			func(s *settings) *int { return &s.DisasmLines }),
		intField("MemoryWords", "default number of memory words to dump",
			func(s *settings) *int { return &s.MemoryWords }),
		intField("StepLines", "default number of instructions per step",
			func(s *settings) *int { return &s.StepLines }),
	}
)

func init() {
	for n := range settingsFields {
		settingsTree.Add(strings.ToLower(settingsFields[n].name), &settingsFields[n])
	}
}

// Display writes every setting, with its value and description.
func (s *settings) Display(w io.Writer) {
	for _, field := range settingsFields {
		text := fmt.Sprintf("    %-16s %v", field.name, field.get(s))
		fmt.Fprintf(w, "%-28s (%s)\n", text, f(field.doc))
	}
}

// Set changes a setting, selected by an unambiguous prefix of its name.
func (s *settings) Set(key string, value string) (name string, err error) {
	field, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		err = &ErrSetting{Name: key, Err: err}
		return
	}

	name = field.name
	err = field.set(s, value)
	return
}

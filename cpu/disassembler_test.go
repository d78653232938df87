package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word Word
		text string
	}){
		{MakeWord(OP_MVI_A, 5), "mvi a,5"},
		{MakeWord(OP_LDA, 123), "mov a,123"},
		{MakeWord(OP_STA_IND, 7), "mov @7,a"},
		{MakeWord(OP_HLT, 0), "hlt"},
		{MakeWord(OP_DATA, 42), "db 42"},
		{MakeWord(OP_IN_P1, 0), "in p1"},
		{MakeWord(OP_IN_P1, 4), "inb p1,4"},
		{MakeWord(OP_OUT_P2, 0), "out p2"},
		{MakeWord(OP_OUT_P2, 8), "outb p2,8"},
		{MakeWord(OP_ORG, 20), ".org 20"},
	}

	for _, entry := range table {
		text, err := Disassemble(entry.word)
		assert.NoError(err, entry.text)
		assert.Equal(entry.text, text)
	}

	_, err := Disassemble(MakeWord(0x17, 0))
	assert.ErrorIs(err, ErrOpcode(0))
}

func TestDisassemble_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	for ins := range Instructions() {
		if ins.Code == OP_ORG {
			continue
		}
		op := ins.Code
		if op == OP_DB {
			op = OP_DATA
		}

		limit := 1
		if ins.HasOperand() || ins.Dual() {
			limit = 256
		}

		for data := range limit {
			word := MakeWord(op, uint8(data))
			text, err := Disassemble(word)
			if !assert.NoError(err, "%v", word) {
				continue
			}
			again, result := AssembleLine(text)
			assert.Equal(RESULT_OK, result, text)
			assert.Equal(word, again, text)
		}
	}
}

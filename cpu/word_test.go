package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWord(t *testing.T) {
	assert := assert.New(t)

	w := MakeWord(OP_MVI_A, 5)
	assert.Equal(Word(0x0405), w)
	assert.Equal(OP_MVI_A, w.Opcode())
	assert.Equal(uint8(5), w.Data())
	assert.False(w.IsData())
	assert.Equal(4005, w.Decimal())
	assert.Equal("04:05", w.String())

	assert.True(Word(0xff).IsData())
	assert.False(Word(0x100).IsData())
}

func TestWordFromDecimal(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value int
		word  Word
		err   error
	}){
		{0, 0, nil},
		{255, 0xff, nil},
		{4005, MakeWord(OP_MVI_A, 5), nil},
		{65255, MakeWord(OP_RET, 255), nil},
		{256, 0, ErrWordMalformed},
		{1999, 0, ErrWordMalformed},
		{256000, 0, ErrWordMalformed},
		{-1, 0, ErrWordMalformed},
	}

	for _, entry := range table {
		w, err := WordFromDecimal(entry.value)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.value)
			continue
		}
		assert.NoError(err, entry.value)
		assert.Equal(entry.word, w, entry.value)
		assert.Equal(entry.value, w.Decimal())
	}
}

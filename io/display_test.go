package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert := assert.New(t)

	buff := &bytes.Buffer{}
	dp := &Display{Output: buff}

	_, ok := dp.Last()
	assert.False(ok)

	dp.ShowDecimal(7)
	dp.ShowDecimal(255)

	value, ok := dp.Last()
	assert.True(ok)
	assert.Equal(uint8(255), value)
	assert.Equal([]uint8{7, 255}, dp.Values)
	assert.Equal("display:   7\ndisplay: 255\n", buff.String())

	dp.Reset()
	_, ok = dp.Last()
	assert.False(ok)

	// No output writer
	dp = &Display{}
	dp.ShowDecimal(1)
	assert.Equal([]uint8{1}, dp.Values)
}

type failWriter struct {
	writes int
}

var errWriteFailed = errors.New("write failed")

func (fw *failWriter) Write(p []byte) (n int, err error) {
	fw.writes++
	return 0, errWriteFailed
}

func TestDisplay_WriteError(t *testing.T) {
	assert := assert.New(t)

	fw := &failWriter{}
	dp := &Display{Output: fw}

	dp.ShowDecimal(1)
	dp.ShowDecimal(2)
	assert.ErrorIs(dp.Err, errWriteFailed)
	assert.Equal([]uint8{1, 2}, dp.Values)
	assert.Equal(1, fw.writes)

	dp.Reset()
	assert.NoError(dp.Err)
}

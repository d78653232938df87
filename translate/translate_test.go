package translate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halted", From("halted"))
	assert.Equal("fault 3", From("fault %d", 3))
}

func TestFprintf(t *testing.T) {
	assert := assert.New(t)

	buff := &bytes.Buffer{}
	n, err := Fprintf(buff, "pc %v\n", "007")
	assert.NoError(err)
	assert.Equal(7, n)
	assert.Equal("pc 007\n", buff.String())
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"io"
)

// Display is the decimal display of the CP1. Every value shown is kept,
// and written as a line to Output when set. The first write error is
// kept in Err, and no more lines are written until Reset.
type Display struct {
	Output io.Writer
	Values []uint8
	Err    error
}

// ShowDecimal shows a value on the display.
func (dp *Display) ShowDecimal(value uint8) {
	dp.Values = append(dp.Values, value)

	if dp.Output != nil && dp.Err == nil {
		_, dp.Err = fmt.Fprintf(dp.Output, "display: %3d\n", value)
	}
}

// Last returns the value on the display.
func (dp *Display) Last() (value uint8, ok bool) {
	if len(dp.Values) == 0 {
		return
	}

	value = dp.Values[len(dp.Values)-1]
	ok = true
	return
}

// Reset blanks the display, and clears the write error.
func (dp *Display) Reset() {
	dp.Values = nil
	dp.Err = nil
}

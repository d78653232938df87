// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"

	"github.com/ezrec/cp1/translate"
)

var f = translate.From

var (
	// Tape errors
	ErrTapeMissing = errors.New(f("tape not attached"))
)

// ErrInterruptUnknown is an interrupt code with no handler.
type ErrInterruptUnknown uint8

func (err ErrInterruptUnknown) Error() string {
	return f("interrupt %d has no handler", uint8(err))
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package monitor

import (
	"errors"

	"github.com/ezrec/cp1/translate"
)

var f = translate.From

var (
	ErrQuit          = errors.New(f("quit"))
	ErrArgumentCount = errors.New(f("wrong number of arguments"))
	ErrSettingType   = errors.New(f("invalid setting value"))
)

// ErrCommand is a command line that does not select a single command.
type ErrCommand struct {
	Name string
	Err  error
}

func (err *ErrCommand) Error() string {
	return f("command '%v': %v", err.Name, err.Err)
}

func (err *ErrCommand) Unwrap() error {
	return err.Err
}

// ErrSetting is an unknown or ambiguous setting name.
type ErrSetting struct {
	Name string
	Err  error
}

func (err *ErrSetting) Error() string {
	return f("setting '%v': %v", err.Name, err.Err)
}

func (err *ErrSetting) Unwrap() error {
	return err.Err
}

// ErrNumber is an argument that is not a number in range.
type ErrNumber string

func (err ErrNumber) Error() string {
	return f("'%v' is not a number in range", string(err))
}

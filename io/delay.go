// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"time"

	"github.com/ezrec/cp1/cpu"
)

const (
	DELAY_TICK = 10 * time.Millisecond // Default length of one delay tick.
)

// Delay waits for the cdel instruction, one tick at a time, polling Keys
// for the stop key before each tick.
type Delay struct {
	Tick  time.Duration         // Length of one tick. Zero is DELAY_TICK.
	Keys  cpu.KeyScanner        // Keypad to poll, if any.
	Sleep func(d time.Duration) // Sleep function. Nil is time.Sleep.

	Elapsed time.Duration // Total time delayed.
}

// Delay waits for a number of ticks, and returns early if the stop key is
// pressed.
func (dl *Delay) Delay(ticks uint8) (aborted bool) {
	tick := dl.Tick
	if tick == 0 {
		tick = DELAY_TICK
	}

	sleep := dl.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for range ticks {
		if dl.Keys != nil && dl.Keys.PollKey() == cpu.KEY_STOP {
			aborted = true
			return
		}
		sleep(tick)
		dl.Elapsed += tick
	}

	return
}

package io

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/cp1/cpu"
)

func TestDelay(t *testing.T) {
	assert := assert.New(t)

	var slept []time.Duration
	dl := &Delay{
		Sleep: func(d time.Duration) { slept = append(slept, d) },
	}

	assert.False(dl.Delay(3))
	assert.Equal([]time.Duration{DELAY_TICK, DELAY_TICK, DELAY_TICK}, slept)
	assert.Equal(3*DELAY_TICK, dl.Elapsed)

	slept = nil
	assert.False(dl.Delay(0))
	assert.Nil(slept)
}

func TestDelay_Abort(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	ticks := 0
	dl := &Delay{
		Tick: time.Millisecond,
		Keys: kp,
		Sleep: func(d time.Duration) {
			ticks++
			if ticks == 2 {
				kp.Stop()
			}
		},
	}

	assert.True(dl.Delay(100))
	assert.Equal(2, ticks)
	assert.Equal(2*time.Millisecond, dl.Elapsed)
	assert.Equal(cpu.KEY_NONE, kp.PollKey())
}

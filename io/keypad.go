// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"sync"

	"github.com/ezrec/cp1/cpu"
)

// Keypad is a queue of pressed keys. Keys may be pressed from any
// goroutine, such as a signal handler, while the CPU polls.
type Keypad struct {
	mutex sync.Mutex
	keys  []cpu.Key
}

// Press queues a key.
func (kp *Keypad) Press(key cpu.Key) {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	kp.keys = append(kp.keys, key)
}

// Stop presses the stop key.
func (kp *Keypad) Stop() {
	kp.Press(cpu.KEY_STOP)
}

// PollKey removes and returns the oldest pressed key, or KEY_NONE.
func (kp *Keypad) PollKey() (key cpu.Key) {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	if len(kp.keys) == 0 {
		key = cpu.KEY_NONE
		return
	}

	key = kp.keys[0]
	kp.keys = kp.keys[1:]
	return
}

// Pending returns the number of queued keys.
func (kp *Keypad) Pending() int {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	return len(kp.keys)
}

// Reset drops all queued keys.
func (kp *Keypad) Reset() {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	kp.keys = nil
}

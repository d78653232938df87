// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Status holds the condition flags.
type Status uint8

const (
	FLAG_ZERO    = Status(1 << 0) // Z
	FLAG_CARRY   = Status(1 << 1) // C
	FLAG_LESS    = Status(1 << 2) // L
	FLAG_GREATER = Status(1 << 3) // G
	FLAG_ALL     = FLAG_ZERO | FLAG_CARRY | FLAG_LESS | FLAG_GREATER
)

// Has is true if all of the flags are set.
func (st Status) Has(flags Status) bool {
	return st&flags == flags
}

// Set sets or clears flags.
func (st *Status) Set(flags Status, on bool) {
	if on {
		*st |= flags
	} else {
		*st &^= flags
	}
}

// Clear clears flags.
func (st *Status) Clear(flags Status) {
	*st &^= flags
}

// String returns the flags as "ZCLG", with '-' for a clear flag.
func (st Status) String() string {
	out := []byte("----")
	for n, name := range "ZCLG" {
		if st&(1<<n) != 0 {
			out[n] = byte(name)
		}
	}
	return string(out)
}

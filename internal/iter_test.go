package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	first := map[string]int{"a": 1}
	second := map[string]int{"b": 2, "c": 3}

	all := maps.Collect(IterSeq2Concat(maps.All(first), maps.All(second)))
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, all)

	// Early stop.
	count := 0
	for range IterSeq2Concat(maps.All(first), maps.All(second)) {
		count++
		break
	}
	assert.Equal(1, count)

	assert.Equal(0, len(maps.Collect(IterSeq2Concat[string, int]())))
}

func TestIterSeq2Sorted(t *testing.T) {
	assert := assert.New(t)

	defs := map[string]string{"KEY_STOP": "0x82", "INT_STOP": "0", "MEMORY_SIZE": "256"}

	var keys []string
	for key, value := range IterSeq2Sorted(maps.All(defs)) {
		keys = append(keys, key)
		assert.Equal(defs[key], value)
	}
	assert.Equal([]string{"INT_STOP", "KEY_STOP", "MEMORY_SIZE"}, keys)

	keys = nil
	for key := range IterSeq2Sorted(maps.All(defs)) {
		keys = append(keys, key)
		break
	}
	assert.Equal([]string{"INT_STOP"}, keys)
	assert.True(slices.IsSorted(slices.Sorted(maps.Keys(defs))))
}

// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIndexRoundTrip(t *testing.T) {
	for _, k := range allKinds {
		t.Run(k.String(), func(t *testing.T) {
			seen := make(map[byte]bool)
			for key := byte(0); key < k.KeyCount(); key++ {
				phys := physicalKeyIndex(k, key)
				assert.Less(t, phys, k.KeyCount(), "mapping must stay in range")
				assert.False(t, seen[phys], "mapping must be a permutation")
				seen[phys] = true

				assert.Equal(t, key, logicalKeyIndex(k, phys), "logical must invert physical")
			}
		})
	}
}

func TestKeyIndexPassThrough(t *testing.T) {
	// indices at or beyond the key count carry sentinel meanings and must
	// survive both directions unchanged
	for _, k := range allKinds {
		assert.Equal(t, byte(0xff), physicalKeyIndex(k, 0xff))
		assert.Equal(t, byte(0xff), logicalKeyIndex(k, 0xff))
		assert.Equal(t, k.KeyCount(), physicalKeyIndex(k, k.KeyCount()))
	}
}

func TestFlippedWiring(t *testing.T) {
	// the first Stream Deck wires each row right to left
	assert.Equal(t, byte(4), physicalKeyIndex(KindOriginal, 0))
	assert.Equal(t, byte(0), physicalKeyIndex(KindOriginal, 4))
	assert.Equal(t, byte(2), physicalKeyIndex(KindOriginal, 2))
	assert.Equal(t, byte(14), physicalKeyIndex(KindOriginal, 10))
	assert.Equal(t, byte(7), physicalKeyIndex(KindOriginal, 7))
}

func TestInvertedWiring(t *testing.T) {
	assert.Equal(t, byte(14), physicalKeyIndex(KindMiraBoxHSV293S4K, 0))
	assert.Equal(t, byte(0), physicalKeyIndex(KindMiraBoxHSV293S4K, 14))
	assert.Equal(t, byte(7), physicalKeyIndex(KindMiraBoxHSV293S4K, 7))
}

func TestSnakeWiring(t *testing.T) {
	// display columns are wired as a column-major snake; the function key
	// column maps straight through
	assert.Equal(t, byte(0), physicalKeyIndex(KindAkp153, 0))
	assert.Equal(t, byte(5), physicalKeyIndex(KindAkp153, 1))
	assert.Equal(t, byte(1), physicalKeyIndex(KindAkp153, 5))
	for key := byte(15); key < 18; key++ {
		assert.Equal(t, key, physicalKeyIndex(KindAkp153, key))
		assert.Equal(t, key, logicalKeyIndex(KindAkp153, key))
	}
}

func TestIdentityWiring(t *testing.T) {
	for key := byte(0); key < KindMk2.KeyCount(); key++ {
		assert.Equal(t, key, physicalKeyIndex(KindMk2, key))
	}
}

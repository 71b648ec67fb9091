// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

// Key index mapping between the logical, row-major numbering exposed by the
// package API and the physical numbering each family wires its keys with.
// Indices at or beyond the key count pass through unchanged so that sentinel
// values (0xff meaning "all keys") survive the mapping.

// akp153PhysToLogical maps the AKP153 family's wire order onto row-major
// order. The five display columns are wired as a column-major snake; the
// sixth column (the three keys without displays) is wired straight through.
var akp153PhysToLogical = [18]byte{
	0, 5, 10, 11, 6, 1, 2, 7, 12, 13, 8, 3, 4, 9, 14, 15, 16, 17,
}

// akp153LogicalToPhys is the inverse of akp153PhysToLogical.
var akp153LogicalToPhys = [18]byte{
	0, 5, 6, 11, 12, 1, 4, 7, 10, 13, 2, 3, 8, 9, 14, 15, 16, 17,
}

// flipKeyIndex mirrors a key index within its row. The Original wires each
// row of keys right-to-left. The transform is its own inverse.
func flipKeyIndex(k Kind, key byte) byte {
	col := key % k.ColumnCount()
	return (key - col) + (k.ColumnCount() - 1 - col)
}

// invertKeyIndex reverses the whole key order, for families wired
// bottom-to-top. The transform is its own inverse.
func invertKeyIndex(k Kind, key byte) byte {
	return k.KeyCount() - 1 - key
}

// physicalKeyIndex translates a logical key index into the index the device
// expects on the wire.
func physicalKeyIndex(k Kind, key byte) byte {
	if key >= k.KeyCount() {
		return key
	}
	switch {
	case k.hasQuirk(quirkFlippedWiring):
		return flipKeyIndex(k, key)
	case k.hasQuirk(quirkInvertedWiring):
		return invertKeyIndex(k, key)
	case k.hasQuirk(quirkSnakeWiring):
		return akp153LogicalToPhys[key]
	}
	return key
}

// logicalKeyIndex translates an index reported by the device into the
// logical, row-major index exposed to callers.
func logicalKeyIndex(k Kind, key byte) byte {
	if key >= k.KeyCount() {
		return key
	}
	switch {
	case k.hasQuirk(quirkFlippedWiring):
		return flipKeyIndex(k, key)
	case k.hasQuirk(quirkInvertedWiring):
		return invertKeyIndex(k, key)
	case k.hasQuirk(quirkSnakeWiring):
		return akp153PhysToLogical[key]
	}
	return key
}

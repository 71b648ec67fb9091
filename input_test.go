// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInput_NoData(t *testing.T) {
	in, err := decodeInput(KindXl, nil)
	require.NoError(t, err)
	assert.True(t, in.IsEmpty())

	in, err = decodeInput(KindXl, make([]byte, 36))
	require.NoError(t, err)
	assert.True(t, in.IsEmpty(), "a zero report id byte means no data")
}

func TestDecodeInput_ButtonsV1(t *testing.T) {
	data := make([]byte, 16)
	data[0] = 0x01
	data[1] = 1 // physical key 0

	in, err := decodeInput(KindOriginal, data)
	require.NoError(t, err)
	assert.Equal(t, InputButtonStates, in.Type)
	require.Len(t, in.Buttons, 15)
	// rows are wired right to left, so physical 0 is logical 4
	assert.True(t, in.Buttons[4])
	for i, b := range in.Buttons {
		if i != 4 {
			assert.False(t, b, "key %d", i)
		}
	}
}

func TestDecodeInput_ButtonsV2(t *testing.T) {
	data := make([]byte, 4+15)
	data[0] = 0x01
	data[4+2] = 1

	in, err := decodeInput(KindMk2, data)
	require.NoError(t, err)
	assert.Equal(t, InputButtonStates, in.Type)
	require.Len(t, in.Buttons, 15)
	assert.True(t, in.Buttons[2])
}

func TestDecodeInput_TouchPoints(t *testing.T) {
	data := make([]byte, 4+8+2)
	data[0] = 0x01
	data[4+8] = 1 // first touch point, right after the 8 keys

	in, err := decodeInput(KindNeo, data)
	require.NoError(t, err)
	require.Len(t, in.Buttons, 10)
	assert.True(t, in.Buttons[8])
	assert.False(t, in.Buttons[9])
}

func TestDecodeInput_ButtonsShort(t *testing.T) {
	data := make([]byte, 10)
	data[0] = 0x01
	_, err := decodeInput(KindMk2, data)
	assert.True(t, errors.Is(err, ErrBadData))
}

func TestDecodeInput_DiscreteKeyCode(t *testing.T) {
	data := make([]byte, 12)
	data[0] = 0x01
	data[9] = 2 // physical key 1

	in, err := decodeInput(KindAkp153, data)
	require.NoError(t, err)
	require.Len(t, in.Buttons, 18)
	// physical 1 sits at logical 5 in the snake layout
	assert.True(t, in.Buttons[5])

	data[9] = 0
	in, err = decodeInput(KindAkp153, data)
	require.NoError(t, err)
	for i, b := range in.Buttons {
		assert.False(t, b, "key %d", i)
	}

	data[9] = 19
	_, err = decodeInput(KindAkp153, data)
	assert.True(t, errors.Is(err, ErrBadData))
}

func TestDecodeInput_DiscreteKeyCodeInverted(t *testing.T) {
	data := make([]byte, 12)
	data[0] = 0x01
	data[9] = 1 // physical key 0

	in, err := decodeInput(KindMiraBoxHSV293S4K, data)
	require.NoError(t, err)
	assert.True(t, in.Buttons[14], "bottom-to-top wiring puts physical 0 at logical 14")
}

func TestDecodeInput_SubTypedButtons(t *testing.T) {
	data := make([]byte, 4+6)
	data[0] = 0x01
	data[1] = inputSubButtons
	data[4+3] = 1

	in, err := decodeInput(KindAkp03, data)
	require.NoError(t, err)
	assert.Equal(t, InputButtonStates, in.Type)
	assert.True(t, in.Buttons[3])
}

func TestDecodeInput_EncoderStates(t *testing.T) {
	data := make([]byte, 9)
	data[0] = 0x01
	data[1] = inputSubEncoders
	data[4] = 0x00
	data[5+1] = 1

	in, err := decodeInput(KindPlus, data)
	require.NoError(t, err)
	assert.Equal(t, InputEncoderStates, in.Type)
	require.Len(t, in.Encoders, 4)
	assert.True(t, in.Encoders[1])
}

func TestDecodeInput_EncoderTwists(t *testing.T) {
	data := make([]byte, 9)
	data[0] = 0x01
	data[1] = inputSubEncoders
	data[4] = 0x01
	data[5] = 0xff // -1
	data[5+2] = 3

	in, err := decodeInput(KindPlus, data)
	require.NoError(t, err)
	assert.Equal(t, InputEncoderTwists, in.Type)
	assert.Equal(t, []int8{-1, 0, 3, 0}, in.Twists)
}

func TestDecodeInput_EncoderBadSubType(t *testing.T) {
	data := make([]byte, 9)
	data[0] = 0x01
	data[1] = inputSubEncoders
	data[4] = 0x02
	_, err := decodeInput(KindPlus, data)
	assert.True(t, errors.Is(err, ErrBadData))
}

func TestDecodeInput_TouchScreenPress(t *testing.T) {
	data := make([]byte, 14)
	data[0] = 0x01
	data[1] = inputSubTouchScreen
	data[4] = lcdEventPress
	data[6] = 0x20
	data[7] = 0x03 // x = 800
	data[8] = 0x32 // y = 50

	in, err := decodeInput(KindPlus, data)
	require.NoError(t, err)
	assert.Equal(t, InputTouchScreenPress, in.Type)
	assert.Equal(t, image.Pt(800, 50), in.Pos)
}

func TestDecodeInput_TouchScreenSwipe(t *testing.T) {
	data := make([]byte, 14)
	data[0] = 0x01
	data[1] = inputSubTouchScreen
	data[4] = lcdEventSwipe
	data[6] = 10
	data[8] = 20
	data[10] = 30
	data[12] = 40

	in, err := decodeInput(KindPlus, data)
	require.NoError(t, err)
	assert.Equal(t, InputTouchScreenSwipe, in.Type)
	assert.Equal(t, image.Pt(10, 20), in.Pos)
	assert.Equal(t, image.Pt(30, 40), in.End)
}

func TestDecodeInput_TouchScreenOnNonLCD(t *testing.T) {
	// the AKP03 has encoders but no touch screen
	data := make([]byte, 14)
	data[0] = 0x01
	data[1] = inputSubTouchScreen
	data[4] = lcdEventPress
	_, err := decodeInput(KindAkp03, data)
	assert.True(t, errors.Is(err, ErrBadData))
}

func TestDecodeInput_UnknownSubType(t *testing.T) {
	data := make([]byte, 14)
	data[0] = 0x01
	data[1] = 0x05
	_, err := decodeInput(KindPlus, data)
	assert.True(t, errors.Is(err, ErrBadData))
}

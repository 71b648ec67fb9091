// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"encoding/binary"
	"image"
)

// InputType discriminates the raw input report variants a device produces.
type InputType byte

// Raw input report variants.
const (
	// InputNoData means the read returned without a report, either because
	// the timeout elapsed or the device had nothing to say.
	InputNoData InputType = iota

	// InputButtonStates carries one boolean per key, in logical order, with
	// touch point states appended after the keys.
	InputButtonStates

	// InputEncoderStates carries one pressed boolean per encoder.
	InputEncoderStates

	// InputEncoderTwists carries one signed rotation step count per encoder.
	InputEncoderTwists

	// InputTouchScreenPress and friends carry LCD touch coordinates.
	InputTouchScreenPress
	InputTouchScreenLongPress
	InputTouchScreenSwipe
)

// Input is one decoded input report.
type Input struct {
	Type     InputType
	Buttons  []bool
	Encoders []bool
	Twists   []int8
	Pos      image.Point
	End      image.Point // swipe destination
}

// IsEmpty reports whether the input carries no data.
func (in Input) IsEmpty() bool {
	return in.Type == InputNoData
}

// Input report sub-types, found in the second byte on families with
// encoders or a touch screen.
const (
	inputSubButtons     = 0x00
	inputSubTouchScreen = 0x02
	inputSubEncoders    = 0x03
)

// LCD touch event discriminators.
const (
	lcdEventPress     = 0x01
	lcdEventLongPress = 0x02
	lcdEventSwipe     = 0x03
)

// decodeInput turns one raw input report into an Input. The report id byte is
// still present at data[0]. Reports that do not match the family's layout
// yield ErrBadData.
func decodeInput(k Kind, data []byte) (Input, error) {
	if len(data) == 0 || data[0] == 0 {
		return Input{}, nil
	}

	switch {
	case k.hasSubTypeByte():
		return decodeSubTyped(k, data)
	case k.hasDiscreteKeyCodes():
		return decodeDiscreteKey(k, data)
	}
	return decodeButtonBitmap(k, data)
}

func decodeSubTyped(k Kind, data []byte) (Input, error) {
	if len(data) < 2 {
		return Input{}, wrapErr(ErrBadData)
	}
	switch data[1] {
	case inputSubButtons:
		return decodeButtonBitmap(k, data)
	case inputSubEncoders:
		return decodeEncoders(k, data)
	case inputSubTouchScreen:
		if !k.supportsLCDRegions() {
			return Input{}, wrapErr(ErrBadData)
		}
		return decodeTouchScreen(data)
	}
	return Input{}, wrapErr(ErrBadData)
}

// decodeButtonBitmap reads the per-key state bytes. First generation devices
// start them right after the report id, everything else leaves three spacer
// bytes. Touch point states follow the keys and map straight through.
func decodeButtonBitmap(k Kind, data []byte) (Input, error) {
	offset := 4
	if k.info().proto == protoV1 {
		offset = 1
	}

	keys := int(k.KeyCount())
	total := keys + int(k.TouchPointCount())
	if len(data) < offset+total {
		return Input{}, wrapErr(ErrBadData)
	}

	buttons := make([]bool, total)
	for i := 0; i < keys; i++ {
		buttons[logicalKeyIndex(k, byte(i))] = data[offset+i] != 0
	}
	for i := keys; i < total; i++ {
		buttons[i] = data[offset+i] != 0
	}
	return Input{Type: InputButtonStates, Buttons: buttons}, nil
}

// decodeDiscreteKey reads the single key code layout used by the larger
// vendor envelope devices. A zero code means every key was released.
func decodeDiscreteKey(k Kind, data []byte) (Input, error) {
	if len(data) < 10 {
		return Input{}, wrapErr(ErrBadData)
	}

	buttons := make([]bool, k.KeyCount())
	code := data[9]
	if code != 0 {
		if code > k.KeyCount() {
			return Input{}, wrapErr(ErrBadData)
		}
		buttons[logicalKeyIndex(k, code-1)] = true
	}
	return Input{Type: InputButtonStates, Buttons: buttons}, nil
}

func decodeEncoders(k Kind, data []byte) (Input, error) {
	n := int(k.EncoderCount())
	if len(data) < 5+n {
		return Input{}, wrapErr(ErrBadData)
	}

	switch data[4] {
	case 0x00:
		pressed := make([]bool, n)
		for i := range pressed {
			pressed[i] = data[5+i] != 0
		}
		return Input{Type: InputEncoderStates, Encoders: pressed}, nil
	case 0x01:
		twists := make([]int8, n)
		for i := range twists {
			twists[i] = int8(data[5+i])
		}
		return Input{Type: InputEncoderTwists, Twists: twists}, nil
	}
	return Input{}, wrapErr(ErrBadData)
}

func decodeTouchScreen(data []byte) (Input, error) {
	if len(data) < 10 {
		return Input{}, wrapErr(ErrBadData)
	}

	pos := image.Pt(
		int(binary.LittleEndian.Uint16(data[6:])),
		int(binary.LittleEndian.Uint16(data[8:])),
	)

	switch data[4] {
	case lcdEventPress:
		return Input{Type: InputTouchScreenPress, Pos: pos}, nil
	case lcdEventLongPress:
		return Input{Type: InputTouchScreenLongPress, Pos: pos}, nil
	case lcdEventSwipe:
		if len(data) < 14 {
			return Input{}, wrapErr(ErrBadData)
		}
		end := image.Pt(
			int(binary.LittleEndian.Uint16(data[10:])),
			int(binary.LittleEndian.Uint16(data[12:])),
		)
		return Input{Type: InputTouchScreenSwipe, Pos: pos, End: end}, nil
	}
	return Input{}, wrapErr(ErrBadData)
}

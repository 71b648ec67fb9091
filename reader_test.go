// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buttonInput(total int, pressed ...int) Input {
	buttons := make([]bool, total)
	for _, i := range pressed {
		buttons[i] = true
	}
	return Input{Type: InputButtonStates, Buttons: buttons}
}

func TestStateTransitions(t *testing.T) {
	s := newDeckState(KindMk2)

	events := s.update(KindMk2, buttonInput(15, 2, 5))
	assert.Equal(t, []Event{
		{Type: EventButtonDown, Index: 2},
		{Type: EventButtonDown, Index: 5},
	}, events)

	// an unchanged report produces nothing
	assert.Empty(t, s.update(KindMk2, buttonInput(15, 2, 5)))

	events = s.update(KindMk2, buttonInput(15, 5))
	assert.Equal(t, []Event{{Type: EventButtonUp, Index: 2}}, events)

	events = s.update(KindMk2, buttonInput(15))
	assert.Equal(t, []Event{{Type: EventButtonUp, Index: 5}}, events)
}

func TestStatePulses(t *testing.T) {
	s := newDeckState(KindAkp03)

	want := []Event{
		{Type: EventButtonDown, Index: 2},
		{Type: EventButtonUp, Index: 2},
		{Type: EventButtonDown, Index: 5},
		{Type: EventButtonUp, Index: 5},
	}
	assert.Equal(t, want, s.update(KindAkp03, buttonInput(6, 2, 5)))

	// pulses are never stored, so the same report pulses again
	assert.Equal(t, want, s.update(KindAkp03, buttonInput(6, 2, 5)))

	assert.Empty(t, s.update(KindAkp03, buttonInput(6)))
}

func TestStateTouchPoints(t *testing.T) {
	s := newDeckState(KindNeo)

	// index 8 and 9 are the two touch points
	events := s.update(KindNeo, buttonInput(10, 3, 9))
	assert.Equal(t, []Event{
		{Type: EventButtonDown, Index: 3},
		{Type: EventTouchPointDown, Index: 1},
	}, events)

	events = s.update(KindNeo, buttonInput(10, 3))
	assert.Equal(t, []Event{{Type: EventTouchPointUp, Index: 1}}, events)
}

func TestStateEncoders(t *testing.T) {
	s := newDeckState(KindPlus)

	events := s.update(KindPlus, Input{Type: InputEncoderStates, Encoders: []bool{true, false, false, false}})
	assert.Equal(t, []Event{{Type: EventEncoderDown, Index: 0}}, events)

	assert.Empty(t, s.update(KindPlus, Input{Type: InputEncoderStates, Encoders: []bool{true, false, false, false}}))

	events = s.update(KindPlus, Input{Type: InputEncoderStates, Encoders: []bool{false, false, false, false}})
	assert.Equal(t, []Event{{Type: EventEncoderUp, Index: 0}}, events)
}

func TestStateEncoderPulses(t *testing.T) {
	s := newDeckState(KindAkp03E)

	in := Input{Type: InputEncoderStates, Encoders: []bool{false, true, false}}
	want := []Event{
		{Type: EventEncoderDown, Index: 1},
		{Type: EventEncoderUp, Index: 1},
	}
	assert.Equal(t, want, s.update(KindAkp03E, in))
	assert.Equal(t, want, s.update(KindAkp03E, in))
}

func TestStateTwists(t *testing.T) {
	s := newDeckState(KindPlus)

	events := s.update(KindPlus, Input{Type: InputEncoderTwists, Twists: []int8{0, -2, 0, 1}})
	assert.Equal(t, []Event{
		{Type: EventEncoderTwist, Index: 1, Delta: -2},
		{Type: EventEncoderTwist, Index: 3, Delta: 1},
	}, events)

	assert.Empty(t, s.update(KindPlus, Input{Type: InputEncoderTwists, Twists: []int8{0, 0, 0, 0}}))
}

func TestStateTouchScreen(t *testing.T) {
	s := newDeckState(KindPlus)

	events := s.update(KindPlus, Input{Type: InputTouchScreenPress, Pos: image.Pt(100, 50)})
	assert.Equal(t, []Event{{Type: EventTouchScreenPress, Pos: image.Pt(100, 50)}}, events)

	events = s.update(KindPlus, Input{
		Type: InputTouchScreenSwipe,
		Pos:  image.Pt(10, 20),
		End:  image.Pt(700, 20),
	})
	assert.Equal(t, []Event{{
		Type: EventTouchScreenSwipe,
		Pos:  image.Pt(10, 20),
		End:  image.Pt(700, 20),
	}}, events)
}

func TestStateNoData(t *testing.T) {
	s := newDeckState(KindMk2)
	assert.Empty(t, s.update(KindMk2, Input{}))
}

// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"image"
	"time"
)

// EventType discriminates the state change events a DeviceStateReader
// produces.
type EventType byte

// State change events.
const (
	EventButtonDown EventType = iota
	EventButtonUp
	EventEncoderDown
	EventEncoderUp
	EventEncoderTwist
	EventTouchPointDown
	EventTouchPointUp
	EventTouchScreenPress
	EventTouchScreenLongPress
	EventTouchScreenSwipe
)

// Event is one observed state change. Index is the logical key, encoder or
// touch point index; Delta is set for twists, Pos and End for touch screen
// events.
type Event struct {
	Type  EventType
	Index byte
	Delta int8
	Pos   image.Point
	End   image.Point
}

// deckState tracks the last observed level of every button and encoder so
// consecutive reports can be turned into transitions. Families that report
// momentary pulses instead of levels bypass it: each pulse becomes a
// down/up pair and nothing is stored, since no release report ever comes.
type deckState struct {
	buttons  []bool
	encoders []bool
}

func newDeckState(k Kind) deckState {
	return deckState{
		buttons:  make([]bool, int(k.KeyCount())+int(k.TouchPointCount())),
		encoders: make([]bool, k.EncoderCount()),
	}
}

func (s *deckState) update(k Kind, in Input) []Event {
	switch in.Type {
	case InputButtonStates:
		return s.updateButtons(k, in.Buttons)
	case InputEncoderStates:
		return s.updateEncoders(k, in.Encoders)
	case InputEncoderTwists:
		var events []Event
		for i, delta := range in.Twists {
			if delta != 0 {
				events = append(events, Event{Type: EventEncoderTwist, Index: byte(i), Delta: delta})
			}
		}
		return events
	case InputTouchScreenPress:
		return []Event{{Type: EventTouchScreenPress, Pos: in.Pos}}
	case InputTouchScreenLongPress:
		return []Event{{Type: EventTouchScreenLongPress, Pos: in.Pos}}
	case InputTouchScreenSwipe:
		return []Event{{Type: EventTouchScreenSwipe, Pos: in.Pos, End: in.End}}
	}
	return nil
}

func (s *deckState) updateButtons(k Kind, cur []bool) []Event {
	keys := int(k.KeyCount())
	pulse := k.hasPulseButtons()

	var events []Event
	for i, pressed := range cur {
		if i >= keys {
			// Touch point states ride along after the keys.
			point := byte(i - keys)
			if pressed != s.buttons[i] {
				s.buttons[i] = pressed
				if pressed {
					events = append(events, Event{Type: EventTouchPointDown, Index: point})
				} else {
					events = append(events, Event{Type: EventTouchPointUp, Index: point})
				}
			}
			continue
		}

		if pulse {
			if pressed {
				events = append(events,
					Event{Type: EventButtonDown, Index: byte(i)},
					Event{Type: EventButtonUp, Index: byte(i)})
			}
			continue
		}

		if pressed != s.buttons[i] {
			s.buttons[i] = pressed
			if pressed {
				events = append(events, Event{Type: EventButtonDown, Index: byte(i)})
			} else {
				events = append(events, Event{Type: EventButtonUp, Index: byte(i)})
			}
		}
	}
	return events
}

func (s *deckState) updateEncoders(k Kind, cur []bool) []Event {
	pulse := k.hasPulseEncoders()

	var events []Event
	for i, pressed := range cur {
		if pulse {
			if pressed {
				events = append(events,
					Event{Type: EventEncoderDown, Index: byte(i)},
					Event{Type: EventEncoderUp, Index: byte(i)})
			}
			continue
		}

		if pressed != s.encoders[i] {
			s.encoders[i] = pressed
			if pressed {
				events = append(events, Event{Type: EventEncoderDown, Index: byte(i)})
			} else {
				events = append(events, Event{Type: EventEncoderUp, Index: byte(i)})
			}
		}
	}
	return events
}

// DeviceStateReader turns a device's raw input reports into state change
// events. Like the Device it reads from, it is not safe for concurrent use.
type DeviceStateReader struct {
	dev   *Device
	state deckState
}

// GetReader returns a state reader for the device. All reads of the device
// should go through the same reader, otherwise reports are lost to whichever
// reader got them.
func (d *Device) GetReader() *DeviceStateReader {
	return &DeviceStateReader{dev: d, state: newDeckState(d.kind)}
}

// Read reads one input report and returns the state changes it implies,
// in ascending index order. The slice is empty when the report carried no
// change or the timeout elapsed.
func (r *DeviceStateReader) Read(timeout time.Duration) ([]Event, error) {
	in, err := r.dev.ReadInput(timeout)
	if err != nil {
		return nil, err
	}
	return r.state.update(r.dev.kind, in), nil
}

// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"context"
	"image"
	"image/color"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pollReadTimeout bounds each poll attempt so input polling never holds the
// device lock for long.
const pollReadTimeout = time.Millisecond

// SharedDevice wraps a Device with a mutex so it can be shared between
// goroutines, and replaces blocking reads with context-aware polling.
type SharedDevice struct {
	mu  sync.Mutex
	dev *Device
}

// NewSharedDevice wraps an already-connected device. The caller must stop
// using the device directly.
func NewSharedDevice(d *Device) *SharedDevice {
	return &SharedDevice{dev: d}
}

// ConnectShared opens a session like Connect and wraps it for shared use.
func ConnectShared(kind Kind, serial string) (*SharedDevice, error) {
	d, err := Connect(kind, serial)
	if err != nil {
		return nil, err
	}
	return NewSharedDevice(d), nil
}

// Kind returns the device family of the session.
func (s *SharedDevice) Kind() Kind {
	return s.dev.kind
}

// Close closes the underlying session.
func (s *SharedDevice) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Close()
}

// Manufacturer returns the manufacturer string from the USB descriptor.
func (s *SharedDevice) Manufacturer() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Manufacturer()
}

// Product returns the product string from the USB descriptor.
func (s *SharedDevice) Product() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Product()
}

// SerialNumber returns the device serial number.
func (s *SharedDevice) SerialNumber() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SerialNumber()
}

// FirmwareVersion returns the firmware version string of the device.
func (s *SharedDevice) FirmwareVersion() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.FirmwareVersion()
}

// ReadInput polls the device for an input report at pollRate attempts per
// second until one arrives or ctx is done. The device lock is only held
// during each attempt, so other goroutines keep making progress while the
// poll sleeps.
func (s *SharedDevice) ReadInput(ctx context.Context, pollRate float64) (Input, error) {
	limiter := rate.NewLimiter(rate.Limit(pollRate), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return Input{}, wrapErr(err)
		}

		s.mu.Lock()
		in, err := s.dev.ReadInput(pollReadTimeout)
		s.mu.Unlock()

		if err != nil {
			return Input{}, err
		}
		if !in.IsEmpty() {
			return in, nil
		}
	}
}

// SetBrightness sets the panel brightness. percent is clamped to 100.
func (s *SharedDevice) SetBrightness(percent byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetBrightness(percent)
}

// Reset clears every key display.
func (s *SharedDevice) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Reset()
}

// WriteImage caches already-encoded key image data for the logical key.
func (s *SharedDevice) WriteImage(key byte, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.WriteImage(key, data)
}

// SetButtonImage converts an image to the device's key format and caches it
// for the logical key.
func (s *SharedDevice) SetButtonImage(key byte, img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetButtonImage(key, img)
}

// ClearButtonImage blanks one key display.
func (s *SharedDevice) ClearButtonImage(key byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.ClearButtonImage(key)
}

// ClearAllButtonImages blanks every key display.
func (s *SharedDevice) ClearAllButtonImages() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.ClearAllButtonImages()
}

// Flush transfers every cached key image to the device.
func (s *SharedDevice) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Flush()
}

// WriteLCD writes an encoded image region to the LCD screen.
func (s *SharedDevice) WriteLCD(x, y uint16, rect *ImageRect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.WriteLCD(x, y, rect)
}

// WriteLCDFill writes already-encoded image data covering the whole LCD
// strip.
func (s *SharedDevice) WriteLCDFill(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.WriteLCDFill(data)
}

// SetLCDImage converts an image to the strip's format and writes it as a
// full fill.
func (s *SharedDevice) SetLCDImage(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetLCDImage(img)
}

// SetLogoImage uploads a full-screen standby logo.
func (s *SharedDevice) SetLogoImage(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetLogoImage(img)
}

// SetTouchPointColor sets the LED color of one touch point.
func (s *SharedDevice) SetTouchPointColor(point byte, c color.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetTouchPointColor(point, c)
}

// Sleep puts the device into standby.
func (s *SharedDevice) Sleep() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Sleep()
}

// KeepAlive refreshes the device's activity timer.
func (s *SharedDevice) KeepAlive() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.KeepAlive()
}

// Shutdown asks the device to power down its displays.
func (s *SharedDevice) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Shutdown()
}

// SharedDeviceReader turns a shared device's input reports into state change
// events. Unlike DeviceStateReader it is safe for concurrent use, though
// events are handed out to whichever caller got the report.
type SharedDeviceReader struct {
	mu    sync.Mutex
	sd    *SharedDevice
	state deckState
}

// GetReader returns a state reader for the shared device.
func (s *SharedDevice) GetReader() *SharedDeviceReader {
	return &SharedDeviceReader{sd: s, state: newDeckState(s.dev.kind)}
}

// Read polls for input at pollRate attempts per second until a report
// produces at least one state change or ctx is done.
func (r *SharedDeviceReader) Read(ctx context.Context, pollRate float64) ([]Event, error) {
	limiter := rate.NewLimiter(rate.Limit(pollRate), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, wrapErr(err)
		}

		r.sd.mu.Lock()
		in, err := r.sd.dev.ReadInput(pollReadTimeout)
		r.sd.mu.Unlock()
		if err != nil {
			return nil, err
		}
		if in.IsEmpty() {
			continue
		}

		r.mu.Lock()
		events := r.state.update(r.sd.dev.kind, in)
		r.mu.Unlock()

		if len(events) > 0 {
			return events, nil
		}
	}
}

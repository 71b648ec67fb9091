// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package streamdeck talks to Elgato Stream Deck devices and compatible
// macro keypads (Ajazz AKP and MiraBox HSV families) over USB HID.
//
// A Device is a session with one attached unit. Key indices are always
// logical, row-major from the top left; the package translates to whatever
// order the hardware wires its keys with. Key image writes are cached and
// sent on Flush.
package streamdeck

import (
	"image"
	"image/color"
	"time"

	"github.com/sstallion/go-hid"
)

// hidDev is the slice of the HID transport the session uses. *hid.Device
// satisfies it; tests substitute their own.
type hidDev interface {
	Read(b []byte) (int, error)
	ReadWithTimeout(b []byte, timeout time.Duration) (int, error)
	Write(b []byte) (int, error)
	SendFeatureReport(b []byte) (int, error)
	GetFeatureReport(b []byte) (int, error)
	GetMfrStr() (string, error)
	GetProductStr() (string, error)
	GetSerialNbr() (string, error)
	Close() error
}

// FoundDevice identifies one attached, supported device.
type FoundDevice struct {
	Kind   Kind
	Serial string
}

// ListDevices enumerates the attached devices this package can drive.
// Devices that report an empty or garbage serial number are skipped, and
// duplicate enumeration entries (one per HID interface) are folded.
func ListDevices() ([]FoundDevice, error) {
	if err := hid.Init(); err != nil {
		return nil, wrapErr(err)
	}

	var found []FoundDevice
	seen := make(map[FoundDevice]bool)

	err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		kind, ok := KindFromProductID(info.VendorID, info.ProductID)
		if !ok || !validSerial(info.SerialNbr) {
			return nil
		}
		fd := FoundDevice{Kind: kind, Serial: info.SerialNbr}
		if !seen[fd] {
			seen[fd] = true
			found = append(found, fd)
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return found, nil
}

func validSerial(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}

type pendingImage struct {
	key  byte
	data []byte
}

// Device is a session with one attached device. It is not safe for
// concurrent use; wrap it in a SharedDevice to share it between goroutines.
type Device struct {
	kind        Kind
	dev         hidDev
	initialized bool

	pending []pendingImage
	blank   []byte
}

// Connect opens a session with the attached device of the given kind.
// serial selects between multiple units; an empty serial opens the first
// one found.
func Connect(kind Kind, serial string) (*Device, error) {
	if err := hid.Init(); err != nil {
		return nil, wrapErr(err)
	}

	var (
		dev *hid.Device
		err error
	)
	if serial == "" {
		dev, err = hid.OpenFirst(kind.VendorID(), kind.ProductID())
	} else {
		dev, err = hid.Open(kind.VendorID(), kind.ProductID(), serial)
	}
	if err != nil {
		return nil, wrapErr(err)
	}

	d := newDevice(kind, dev)
	if err := d.initialize(); err != nil {
		dev.Close()
		return nil, err
	}
	return d, nil
}

// ConnectIDs opens a session with a device identified only by its USB ids,
// resolving the kind through the capability table.
func ConnectIDs(vendorID, productID uint16, serial string) (*Device, error) {
	kind, ok := KindFromProductID(vendorID, productID)
	if !ok {
		return nil, wrapErr(ErrUnrecognizedProductID)
	}
	return Connect(kind, serial)
}

func newDevice(kind Kind, dev hidDev) *Device {
	return &Device{kind: kind, dev: dev}
}

// initialize performs the one-time session setup. It is idempotent.
func (d *Device) initialize() error {
	if d.initialized {
		return nil
	}
	d.initialized = true

	if d.kind.usesVendorEnvelope() {
		return d.writeReport(vendorReport(vendorOpHandshake))
	}
	return nil
}

// Kind returns the device family of the session.
func (d *Device) Kind() Kind {
	return d.kind
}

// Close closes the session. The device keeps whatever it is displaying.
func (d *Device) Close() error {
	return wrapErr(d.dev.Close())
}

// Manufacturer returns the manufacturer string from the USB descriptor.
func (d *Device) Manufacturer() (string, error) {
	s, err := d.dev.GetMfrStr()
	return s, wrapErr(err)
}

// Product returns the product string from the USB descriptor.
func (d *Device) Product() (string, error) {
	s, err := d.dev.GetProductStr()
	return s, wrapErr(err)
}

// SerialNumber returns the device serial number. Families that do not expose
// it through a feature report fall back to the USB descriptor.
func (d *Device) SerialNumber() (string, error) {
	q := d.kind.info().serial
	if q.report == 0 {
		s, err := d.dev.GetSerialNbr()
		return s, wrapErr(err)
	}
	return d.featureString(q)
}

// FirmwareVersion returns the firmware version string of the device.
func (d *Device) FirmwareVersion() (string, error) {
	return d.featureString(d.kind.info().firmware)
}

func (d *Device) featureString(q featureQuery) (string, error) {
	buf := make([]byte, q.length)
	buf[0] = q.report
	if _, err := d.dev.GetFeatureReport(buf); err != nil {
		return "", wrapErr(err)
	}
	return extractString(buf[q.offset:])
}

// ReadInput reads and decodes one input report. A timeout of zero blocks
// until the device produces one; otherwise an Input with type InputNoData is
// returned when the timeout elapses first.
func (d *Device) ReadInput(timeout time.Duration) (Input, error) {
	buf := make([]byte, d.kind.inputReportLength())

	var (
		n   int
		err error
	)
	if timeout > 0 {
		n, err = d.dev.ReadWithTimeout(buf, timeout)
	} else {
		n, err = d.dev.Read(buf)
	}
	if err != nil {
		return Input{}, wrapErr(err)
	}
	if n == 0 {
		return Input{}, nil
	}
	return decodeInput(d.kind, buf[:n])
}

// SetBrightness sets the panel brightness. percent is clamped to 100.
func (d *Device) SetBrightness(percent byte) error {
	if percent > 100 {
		percent = 100
	}
	if d.kind.usesVendorEnvelope() {
		return d.writeReport(brightnessVendorReport(percent))
	}
	return d.sendFeature(brightnessReport(d.kind, percent))
}

// Reset clears every key display. Cached images that were not flushed yet
// are dropped.
func (d *Device) Reset() error {
	d.pending = nil
	if d.kind.usesVendorEnvelope() {
		if err := d.writeReport(vendorReport(vendorOpClear, clearAllKeys)); err != nil {
			return err
		}
		return d.writeReport(vendorReport(vendorOpCommit))
	}
	return d.sendFeature(resetReport(d.kind))
}

// WriteImage caches already-encoded key image data for the logical key.
// The data is transferred on the next Flush; writing the same key again
// before then replaces the earlier image. Keys without a display accept the
// write and ignore it.
func (d *Device) WriteImage(key byte, data []byte) error {
	if key >= d.kind.KeyCount() {
		return wrapErr(ErrInvalidKeyIndex)
	}
	if !d.kind.IsVisual() {
		return wrapErr(ErrNoScreen)
	}
	if key >= d.kind.DisplayKeyCount() {
		return nil
	}

	for i := range d.pending {
		if d.pending[i].key == key {
			d.pending[i].data = data
			return nil
		}
	}
	d.pending = append(d.pending, pendingImage{key: key, data: data})
	return nil
}

// SetButtonImage converts an image to the device's key format and caches it
// for the logical key.
func (d *Device) SetButtonImage(key byte, img image.Image) error {
	data, err := ConvertImage(d.kind, img)
	if err != nil {
		return err
	}
	return d.WriteImage(key, data)
}

// ClearButtonImage blanks one key display.
func (d *Device) ClearButtonImage(key byte) error {
	if key >= d.kind.KeyCount() {
		return wrapErr(ErrInvalidKeyIndex)
	}
	if !d.kind.IsVisual() {
		return wrapErr(ErrNoScreen)
	}
	if key >= d.kind.DisplayKeyCount() {
		return nil
	}

	if d.kind.usesVendorEnvelope() {
		if err := d.writeReport(vendorReport(vendorOpClear, physicalKeyIndex(d.kind, key))); err != nil {
			return err
		}
		return d.writeReport(vendorReport(vendorOpCommit))
	}

	blank, err := d.blankImage()
	if err != nil {
		return err
	}
	return d.WriteImage(key, blank)
}

// ClearAllButtonImages blanks every key display.
func (d *Device) ClearAllButtonImages() error {
	if !d.kind.IsVisual() {
		return wrapErr(ErrNoScreen)
	}

	if d.kind.usesVendorEnvelope() {
		d.pending = nil
		if err := d.writeReport(vendorReport(vendorOpClear, clearAllKeys)); err != nil {
			return err
		}
		return d.writeReport(vendorReport(vendorOpCommit))
	}

	blank, err := d.blankImage()
	if err != nil {
		return err
	}
	for key := byte(0); key < d.kind.DisplayKeyCount(); key++ {
		if err := d.WriteImage(key, blank); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) blankImage() ([]byte, error) {
	if d.blank == nil {
		blank, err := generateBlankImage(d.kind)
		if err != nil {
			return nil, err
		}
		d.blank = blank
	}
	return d.blank, nil
}

// Flush transfers every cached key image to the device. The cache is kept on
// failure so the flush can be retried; flushing an empty cache does nothing.
func (d *Device) Flush() error {
	if len(d.pending) == 0 {
		return nil
	}

	for _, p := range d.pending {
		pages := imagePages(d.kind, physicalKeyIndex(d.kind, p.key), p.data)
		for _, page := range pages {
			if err := d.writeReport(page); err != nil {
				return err
			}
		}
	}
	if d.kind.usesVendorEnvelope() {
		if err := d.writeReport(vendorReport(vendorOpCommit)); err != nil {
			return err
		}
	}

	d.pending = nil
	return nil
}

// WriteLCD writes an encoded image region to the LCD screen at the given
// origin. Only families whose screen supports partial writes accept it.
func (d *Device) WriteLCD(x, y uint16, rect *ImageRect) error {
	if !d.kind.supportsLCDRegions() {
		return wrapErr(ErrUnsupportedOperation)
	}
	for _, page := range lcdRegionPages(x, y, rect) {
		if err := d.writeReport(page); err != nil {
			return err
		}
	}
	return nil
}

// WriteLCDFill writes already-encoded image data covering the whole LCD
// strip.
func (d *Device) WriteLCDFill(data []byte) error {
	size, ok := d.kind.LCDStripSize()
	if !ok {
		return wrapErr(ErrUnsupportedOperation)
	}

	if d.kind.supportsLCDRegions() {
		rect := &ImageRect{W: uint16(size.X), H: uint16(size.Y), Data: data}
		return d.WriteLCD(0, 0, rect)
	}

	for _, page := range lcdFillPages(data) {
		if err := d.writeReport(page); err != nil {
			return err
		}
	}
	return nil
}

// SetLCDImage converts an image to the strip's format and writes it as a
// full fill.
func (d *Device) SetLCDImage(img image.Image) error {
	f := d.kind.LCDImageFormat()
	if f.Mode == ImageModeNone {
		return wrapErr(ErrUnsupportedOperation)
	}
	data, err := ConvertImageWithFormat(f, img)
	if err != nil {
		return err
	}
	return d.WriteLCDFill(data)
}

// SetLogoImage uploads a full-screen standby logo on families that keep one.
func (d *Device) SetLogoImage(img image.Image) error {
	f := d.kind.LogoImageFormat()
	if !d.kind.usesVendorEnvelope() || f.Mode == ImageModeNone {
		return wrapErr(ErrUnsupportedOperation)
	}
	data, err := ConvertImageWithFormat(f, img)
	if err != nil {
		return err
	}
	for _, page := range logoPages(data) {
		if err := d.writeReport(page); err != nil {
			return err
		}
	}
	return nil
}

// SetTouchPointColor sets the LED color of one touch point.
func (d *Device) SetTouchPointColor(point byte, c color.Color) error {
	if d.kind.TouchPointCount() == 0 {
		return wrapErr(ErrUnsupportedOperation)
	}
	if point >= d.kind.TouchPointCount() {
		return wrapErr(ErrInvalidTouchPointIndex)
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return d.sendFeature(touchPointColorReport(d.kind, point, rgba.R, rgba.G, rgba.B))
}

// Sleep puts the device into standby, showing the logo image if one is set.
func (d *Device) Sleep() error {
	if !d.kind.usesVendorEnvelope() {
		return wrapErr(ErrUnsupportedOperation)
	}
	return d.writeReport(vendorReport(vendorOpSleep))
}

// KeepAlive refreshes the device's activity timer so it does not fall into
// standby on its own.
func (d *Device) KeepAlive() error {
	if !d.kind.usesVendorEnvelope() {
		return wrapErr(ErrUnsupportedOperation)
	}
	return d.writeReport(vendorReport(vendorOpHandshake))
}

// Shutdown asks the device to power down its displays.
func (d *Device) Shutdown() error {
	if !d.kind.usesVendorEnvelope() {
		return wrapErr(ErrUnsupportedOperation)
	}
	return d.writeReport(vendorReport(vendorOpShutdown))
}

func (d *Device) writeReport(p []byte) error {
	_, err := d.dev.Write(p)
	return wrapErr(err)
}

func (d *Device) sendFeature(p []byte) error {
	_, err := d.dev.SendFeatureReport(p)
	return wrapErr(err)
}

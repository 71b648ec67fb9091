// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import "image"

// Vendor identifiers of the supported device families.
const (
	elgatoVendorID  uint16 = 0x0fd9
	ajazzVendorID   uint16 = 0x0300
	miraboxVendorID uint16 = 0x5548
)

// Kind identifies a supported device family. Everything the rest of the
// package needs to know about a family (geometry, wire format, quirks) is a
// pure function of its Kind.
type Kind int

// Supported device families.
const (
	KindOriginal Kind = iota
	KindOriginalV2
	KindMini
	KindMiniMk2
	KindMk2
	KindXl
	KindXlV2
	KindPedal
	KindPlus
	KindNeo
	KindAkp03
	KindAkp03E
	KindAkp03R
	KindAkp153
	KindAkp153E
	KindAkp153R
	KindMiraBoxHSV293S4K
)

// ImageMode is the encoding applied to key image pixel data before transfer.
type ImageMode byte

// Supported image encodings.
const (
	ImageModeNone ImageMode = iota
	ImageModeBMP
	ImageModeJPEG
)

// ImageRotation is a clockwise rotation applied to images before transfer.
type ImageRotation byte

// Supported image rotations.
const (
	ImageRotation0 ImageRotation = iota
	ImageRotation90
	ImageRotation180
	ImageRotation270
)

// ImageMirroring is a mirroring axis applied to images before transfer.
type ImageMirroring byte

// Supported image mirroring axes.
const (
	ImageMirroringNone ImageMirroring = iota
	ImageMirroringX
	ImageMirroringY
	ImageMirroringBoth
)

// ImageFormat describes the pixel data a device expects for one of its
// displays.
type ImageFormat struct {
	Mode     ImageMode
	Size     image.Point
	Rotation ImageRotation
	Mirror   ImageMirroring
}

// protocol selects the binary report layout shared by a group of families.
type protocol byte

const (
	protoV1     protocol = iota // first generation Elgato reports
	protoV2                     // second generation Elgato reports
	protoVendor                 // extended vendor envelope devices
)

// quirk flags describe family behaviors that do not fit the numeric
// capability fields. They are queried through Kind predicates only, so the
// table below stays the single source of truth.
type quirk uint16

const (
	quirkPulseButtons    quirk = 1 << iota // buttons report momentary pulses, not levels
	quirkPulseEncoders                     // encoder presses report momentary pulses
	quirkDiscreteKeyCode                   // button press arrives as a single code byte
	quirkSnakeWiring                       // key grid wired as a column-major snake
	quirkInvertedWiring                    // keys wired bottom-to-top
	quirkFlippedWiring                     // key rows wired right-to-left
	quirkLCDRegions                        // LCD supports partial region writes and touch input
)

// featureQuery locates a string inside a feature report. A zero report id
// means the value comes from the USB descriptor instead.
type featureQuery struct {
	report byte
	length int
	offset int
}

type deviceInfo struct {
	name        string
	vendorID    uint16
	productID   uint16
	keys        byte
	rows        byte
	cols        byte
	displayKeys byte // keys at or beyond this index have no display
	encoders    byte
	touchPoints byte
	proto       protocol
	quirks      quirk
	keyFormat   ImageFormat
	lcdFormat   ImageFormat // zero Size if the family has no strip/screen
	logoFormat  ImageFormat // zero Size if the family has no logo upload
	serial      featureQuery
	firmware    featureQuery
}

var (
	serialQueryV1     = featureQuery{report: 0x03, length: 17, offset: 5}
	serialQueryV1Long = featureQuery{report: 0x03, length: 32, offset: 5}
	serialQueryV2     = featureQuery{report: 0x06, length: 32, offset: 2}
	firmwareQueryV1   = featureQuery{report: 0x04, length: 17, offset: 5}
	firmwareQueryV2   = featureQuery{report: 0x05, length: 32, offset: 6}
	firmwareQueryVnd  = featureQuery{report: 0x01, length: 20, offset: 1}
)

var kindInfo = [...]deviceInfo{
	KindOriginal: {
		name:      "Stream Deck Original",
		vendorID:  elgatoVendorID,
		productID: 0x0060,
		keys:      15, rows: 3, cols: 5, displayKeys: 15,
		proto:  protoV1,
		quirks: quirkFlippedWiring,
		keyFormat: ImageFormat{
			Mode:   ImageModeBMP,
			Size:   image.Pt(72, 72),
			Mirror: ImageMirroringBoth,
		},
		serial:   serialQueryV1,
		firmware: firmwareQueryV1,
	},
	KindOriginalV2: {
		name:      "Stream Deck Original V2",
		vendorID:  elgatoVendorID,
		productID: 0x006d,
		keys:      15, rows: 3, cols: 5, displayKeys: 15,
		proto: protoV2,
		keyFormat: ImageFormat{
			Mode:   ImageModeJPEG,
			Size:   image.Pt(72, 72),
			Mirror: ImageMirroringBoth,
		},
		serial:   serialQueryV2,
		firmware: firmwareQueryV2,
	},
	KindMini: {
		name:      "Stream Deck Mini",
		vendorID:  elgatoVendorID,
		productID: 0x0063,
		keys:      6, rows: 2, cols: 3, displayKeys: 6,
		proto: protoV1,
		keyFormat: ImageFormat{
			Mode:     ImageModeBMP,
			Size:     image.Pt(80, 80),
			Rotation: ImageRotation90,
			Mirror:   ImageMirroringY,
		},
		serial:   serialQueryV1,
		firmware: firmwareQueryV1,
	},
	KindMiniMk2: {
		name:      "Stream Deck Mini Mk2",
		vendorID:  elgatoVendorID,
		productID: 0x0090,
		keys:      6, rows: 2, cols: 3, displayKeys: 6,
		proto: protoV1,
		keyFormat: ImageFormat{
			Mode:     ImageModeBMP,
			Size:     image.Pt(80, 80),
			Rotation: ImageRotation90,
			Mirror:   ImageMirroringY,
		},
		serial:   serialQueryV1Long,
		firmware: firmwareQueryV1,
	},
	KindMk2: {
		name:      "Stream Deck Mk2",
		vendorID:  elgatoVendorID,
		productID: 0x0080,
		keys:      15, rows: 3, cols: 5, displayKeys: 15,
		proto: protoV2,
		keyFormat: ImageFormat{
			Mode:   ImageModeJPEG,
			Size:   image.Pt(72, 72),
			Mirror: ImageMirroringBoth,
		},
		serial:   serialQueryV2,
		firmware: firmwareQueryV2,
	},
	KindXl: {
		name:      "Stream Deck XL",
		vendorID:  elgatoVendorID,
		productID: 0x006c,
		keys:      32, rows: 4, cols: 8, displayKeys: 32,
		proto: protoV2,
		keyFormat: ImageFormat{
			Mode:   ImageModeJPEG,
			Size:   image.Pt(96, 96),
			Mirror: ImageMirroringBoth,
		},
		serial:   serialQueryV2,
		firmware: firmwareQueryV2,
	},
	KindXlV2: {
		name:      "Stream Deck XL V2",
		vendorID:  elgatoVendorID,
		productID: 0x008f,
		keys:      32, rows: 4, cols: 8, displayKeys: 32,
		proto: protoV2,
		keyFormat: ImageFormat{
			Mode:   ImageModeJPEG,
			Size:   image.Pt(96, 96),
			Mirror: ImageMirroringBoth,
		},
		serial:   serialQueryV2,
		firmware: firmwareQueryV2,
	},
	KindPedal: {
		name:      "Stream Deck Pedal",
		vendorID:  elgatoVendorID,
		productID: 0x0086,
		keys:      3, rows: 1, cols: 3, displayKeys: 0,
		proto:    protoV2,
		serial:   serialQueryV2,
		firmware: firmwareQueryV2,
	},
	KindPlus: {
		name:      "Stream Deck Plus",
		vendorID:  elgatoVendorID,
		productID: 0x0084,
		keys:      8, rows: 2, cols: 4, displayKeys: 8,
		encoders: 4,
		proto:    protoV2,
		quirks:   quirkLCDRegions,
		keyFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(120, 120),
		},
		lcdFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(800, 100),
		},
		serial:   serialQueryV2,
		firmware: firmwareQueryV2,
	},
	KindNeo: {
		name:      "Stream Deck Neo",
		vendorID:  elgatoVendorID,
		productID: 0x009a,
		keys:      8, rows: 2, cols: 4, displayKeys: 8,
		touchPoints: 2,
		proto:       protoV2,
		keyFormat: ImageFormat{
			Mode:   ImageModeJPEG,
			Size:   image.Pt(96, 96),
			Mirror: ImageMirroringBoth,
		},
		lcdFormat: ImageFormat{
			Mode:   ImageModeJPEG,
			Size:   image.Pt(248, 58),
			Mirror: ImageMirroringBoth,
		},
		serial:   serialQueryV2,
		firmware: firmwareQueryV2,
	},
	KindAkp03: {
		name:      "Ajazz AKP03",
		vendorID:  ajazzVendorID,
		productID: 0x1001,
		keys:      6, rows: 2, cols: 3, displayKeys: 6,
		encoders: 3,
		proto:    protoVendor,
		quirks:   quirkPulseButtons,
		keyFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(60, 60),
		},
		logoFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(320, 240),
		},
		firmware: firmwareQueryVnd,
	},
	KindAkp03E: {
		name:      "Ajazz AKP03E",
		vendorID:  ajazzVendorID,
		productID: 0x1002,
		keys:      6, rows: 2, cols: 3, displayKeys: 6,
		encoders: 3,
		proto:    protoVendor,
		quirks:   quirkPulseButtons | quirkPulseEncoders,
		keyFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(60, 60),
		},
		logoFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(320, 240),
		},
		firmware: firmwareQueryVnd,
	},
	KindAkp03R: {
		name:      "Ajazz AKP03R",
		vendorID:  ajazzVendorID,
		productID: 0x1003,
		keys:      6, rows: 2, cols: 3, displayKeys: 6,
		encoders: 3,
		proto:    protoVendor,
		quirks:   quirkPulseButtons | quirkPulseEncoders,
		keyFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(60, 60),
		},
		logoFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(320, 240),
		},
		firmware: firmwareQueryVnd,
	},
	KindAkp153: {
		name:      "Ajazz AKP153",
		vendorID:  ajazzVendorID,
		productID: 0x1010,
		keys:      18, rows: 3, cols: 6, displayKeys: 15,
		proto:  protoVendor,
		quirks: quirkPulseButtons | quirkDiscreteKeyCode | quirkSnakeWiring,
		keyFormat: ImageFormat{
			Mode:     ImageModeJPEG,
			Size:     image.Pt(85, 85),
			Rotation: ImageRotation180,
		},
		logoFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(854, 480),
		},
		firmware: firmwareQueryVnd,
	},
	KindAkp153E: {
		name:      "Ajazz AKP153E",
		vendorID:  ajazzVendorID,
		productID: 0x1011,
		keys:      18, rows: 3, cols: 6, displayKeys: 15,
		proto:  protoVendor,
		quirks: quirkPulseButtons | quirkDiscreteKeyCode | quirkSnakeWiring,
		keyFormat: ImageFormat{
			Mode:     ImageModeJPEG,
			Size:     image.Pt(85, 85),
			Rotation: ImageRotation180,
		},
		logoFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(854, 480),
		},
		firmware: firmwareQueryVnd,
	},
	KindAkp153R: {
		name:      "Ajazz AKP153R",
		vendorID:  ajazzVendorID,
		productID: 0x1012,
		keys:      18, rows: 3, cols: 6, displayKeys: 15,
		proto:  protoVendor,
		quirks: quirkPulseButtons | quirkDiscreteKeyCode | quirkSnakeWiring,
		keyFormat: ImageFormat{
			Mode:     ImageModeJPEG,
			Size:     image.Pt(85, 85),
			Rotation: ImageRotation180,
		},
		logoFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(854, 480),
		},
		firmware: firmwareQueryVnd,
	},
	KindMiraBoxHSV293S4K: {
		name:      "MiraBox HSV293S 4K",
		vendorID:  miraboxVendorID,
		productID: 0x6670,
		keys:      15, rows: 3, cols: 5, displayKeys: 15,
		proto:  protoVendor,
		quirks: quirkPulseButtons | quirkDiscreteKeyCode | quirkInvertedWiring,
		keyFormat: ImageFormat{
			Mode:     ImageModeJPEG,
			Size:     image.Pt(112, 112),
			Rotation: ImageRotation180,
		},
		logoFormat: ImageFormat{
			Mode: ImageModeJPEG,
			Size: image.Pt(800, 480),
		},
		firmware: firmwareQueryVnd,
	},
}

func (k Kind) info() *deviceInfo {
	if k < 0 || int(k) >= len(kindInfo) {
		return &deviceInfo{name: "unknown"}
	}
	return &kindInfo[k]
}

// KindFromProductID resolves a (vendor, product) identifier pair to the Kind
// it belongs to. The second return value reports whether the pair matched a
// supported device.
func KindFromProductID(vendorID, productID uint16) (Kind, bool) {
	for k := range kindInfo {
		if kindInfo[k].vendorID == vendorID && kindInfo[k].productID == productID {
			return Kind(k), true
		}
	}
	return 0, false
}

// String returns the marketing name of the device family.
func (k Kind) String() string {
	return k.info().name
}

// VendorID returns the USB vendor identifier of the device family.
func (k Kind) VendorID() uint16 {
	return k.info().vendorID
}

// ProductID returns the USB product identifier of the device family.
func (k Kind) ProductID() uint16 {
	return k.info().productID
}

// KeyCount returns the number of keys on the device.
func (k Kind) KeyCount() byte {
	return k.info().keys
}

// RowCount returns the number of key rows on the device.
func (k Kind) RowCount() byte {
	return k.info().rows
}

// ColumnCount returns the number of key columns on the device.
func (k Kind) ColumnCount() byte {
	return k.info().cols
}

// KeyLayout returns the key grid dimensions as (rows, columns).
func (k Kind) KeyLayout() (byte, byte) {
	return k.info().rows, k.info().cols
}

// DisplayKeyCount returns the number of keys that carry a display. Keys at or
// beyond this index exist physically but cannot show an image.
func (k Kind) DisplayKeyCount() byte {
	return k.info().displayKeys
}

// EncoderCount returns the number of rotary encoders on the device.
func (k Kind) EncoderCount() byte {
	return k.info().encoders
}

// TouchPointCount returns the number of illuminated touch points on the
// device.
func (k Kind) TouchPointCount() byte {
	return k.info().touchPoints
}

// IsVisual reports whether the device has any key display at all.
func (k Kind) IsVisual() bool {
	return k.info().displayKeys > 0
}

// KeyImageFormat returns the pixel format key images must be converted to
// before transfer. Families without key displays return the zero format.
func (k Kind) KeyImageFormat() ImageFormat {
	return k.info().keyFormat
}

// LCDStripSize returns the pixel dimensions of the LCD strip/screen, if the
// device has one.
func (k Kind) LCDStripSize() (image.Point, bool) {
	f := k.info().lcdFormat
	return f.Size, f.Size != image.Point{}
}

// LCDImageFormat returns the pixel format used for full LCD strip/screen
// fills.
func (k Kind) LCDImageFormat() ImageFormat {
	return k.info().lcdFormat
}

// LogoImageFormat returns the pixel format used for full-screen logo uploads
// on families that support them.
func (k Kind) LogoImageFormat() ImageFormat {
	return k.info().logoFormat
}

func (k Kind) hasQuirk(q quirk) bool {
	return k.info().quirks&q != 0
}

// usesVendorEnvelope reports whether control operations are wrapped in the
// extended vendor command envelope.
func (k Kind) usesVendorEnvelope() bool {
	return k.info().proto == protoVendor
}

// hasPulseButtons reports whether button presses arrive as momentary pulses
// instead of sustained levels.
func (k Kind) hasPulseButtons() bool {
	return k.hasQuirk(quirkPulseButtons)
}

// hasPulseEncoders reports whether encoder presses arrive as momentary
// pulses instead of sustained levels.
func (k Kind) hasPulseEncoders() bool {
	return k.hasQuirk(quirkPulseEncoders)
}

// hasDiscreteKeyCodes reports whether button state arrives as a single key
// code byte rather than a per-key bitmap.
func (k Kind) hasDiscreteKeyCodes() bool {
	return k.hasQuirk(quirkDiscreteKeyCode)
}

// supportsLCDRegions reports whether the LCD accepts partial region writes
// and produces touch input.
func (k Kind) supportsLCDRegions() bool {
	return k.hasQuirk(quirkLCDRegions)
}

// hasSubTypeByte reports whether input reports carry a report sub-type byte
// after the report id. Simple button-only families do not.
func (k Kind) hasSubTypeByte() bool {
	return k.info().encoders > 0 || k.supportsLCDRegions()
}

// inputReportLength returns the read buffer size needed for the largest
// input report the family produces.
func (k Kind) inputReportLength() int {
	in := k.info()
	switch {
	case in.proto == protoVendor:
		return 512
	case k.supportsLCDRegions():
		n := 14
		if m := 5 + int(in.encoders); m > n {
			n = m
		}
		return n
	case in.proto == protoV1:
		return 1 + int(in.keys)
	default:
		return 4 + int(in.keys) + int(in.touchPoints)
	}
}

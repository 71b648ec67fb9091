// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

// Outgoing report construction. Every builder returns complete, zero-padded
// report buffers with the report id in the first byte, ready to hand to the
// transport. Header layouts, report lengths and page sizes are all selected
// through the capability table.

const (
	featureReportLengthV1 = 17
	featureReportLengthV2 = 32

	imageReportLengthV1       = 1024
	imageReportLengthOriginal = 8191
	imageReportLengthV2       = 1024
	imageHeaderLengthV1       = 16
	imageHeaderLengthV2       = 8

	lcdReportLength = 1024
	lcdHeaderLength = 16
)

// Vendor envelope framing for the extended protocol families. Every control
// operation is a zero-padded 512-byte report carrying the magic prefix, a
// three-letter command and its arguments.
const (
	vendorReportLength      = 512
	vendorImageHeaderLength = 14

	vendorOpHandshake  = "CON"
	vendorOpBrightness = "LIG"
	vendorOpClear      = "CLE"
	vendorOpCommit     = "STP"
	vendorOpLogo       = "LOG"
	vendorOpSleep      = "HAN"
	vendorOpShutdown   = "DIS"

	// clearAllKeys is the key argument that addresses every key at once.
	clearAllKeys byte = 0xff
)

var vendorMagic = []byte{'C', 'R', 'T', 0x00, 0x00}

// vendorReport builds one vendor envelope command report.
func vendorReport(op string, args ...byte) []byte {
	buf := make([]byte, vendorReportLength+1)
	copy(buf[1:], vendorMagic)
	copy(buf[1+len(vendorMagic):], op)
	copy(buf[1+len(vendorMagic)+len(op):], args)
	return buf
}

// brightnessReport builds the feature report that sets panel brightness on
// the Elgato families. Vendor envelope families use brightnessVendorReport.
func brightnessReport(k Kind, percent byte) []byte {
	if k.info().proto == protoV1 {
		buf := make([]byte, featureReportLengthV1)
		buf[0] = 0x05
		buf[1] = 0x55
		buf[2] = 0xaa
		buf[3] = 0xd1
		buf[4] = 0x01
		buf[5] = percent
		return buf
	}
	buf := make([]byte, featureReportLengthV2)
	buf[0] = 0x03
	buf[1] = 0x08
	buf[2] = percent
	return buf
}

func brightnessVendorReport(percent byte) []byte {
	return vendorReport(vendorOpBrightness, percent)
}

// resetReport builds the feature report that resets the Elgato families.
func resetReport(k Kind) []byte {
	if k.info().proto == protoV1 {
		buf := make([]byte, featureReportLengthV1)
		buf[0] = 0x0b
		buf[1] = 0x63
		return buf
	}
	buf := make([]byte, featureReportLengthV2)
	buf[0] = 0x03
	buf[1] = 0x02
	return buf
}

// touchPointColorReport builds the feature report that sets a touch point's
// LED color. The device addresses touch points as key indices past the key
// grid.
func touchPointColorReport(k Kind, point, r, g, b byte) []byte {
	buf := make([]byte, featureReportLengthV2)
	buf[0] = 0x03
	buf[1] = 0x06
	buf[2] = k.KeyCount() + point
	buf[3] = r
	buf[4] = g
	buf[5] = b
	return buf
}

// imagePages splits an encoded key image into the paged output reports the
// family expects. key must already be the physical index.
func imagePages(k Kind, key byte, data []byte) [][]byte {
	var (
		reportLen = imageReportLengthV2
		headerLen = imageHeaderLengthV2
		fill      func(hdr []byte, page, length int, last bool)
	)

	switch k.info().proto {
	case protoV1:
		reportLen = imageReportLengthV1
		if k == KindOriginal {
			reportLen = imageReportLengthOriginal
		}
		headerLen = imageHeaderLengthV1
		fill = func(hdr []byte, page, length int, last bool) {
			hdr[0] = 0x02
			hdr[1] = 0x01
			if k == KindOriginal {
				page++ // pages numbered from 1
			}
			hdr[2] = byte(page)
			hdr[4] = boolByte(last)
			hdr[5] = key + 1
		}
	case protoVendor:
		reportLen = vendorReportLength + 1
		headerLen = vendorImageHeaderLength
		fill = func(hdr []byte, page, length int, last bool) {
			copy(hdr[1:], vendorMagic)
			copy(hdr[6:], "BAT")
			hdr[9] = key
			hdr[10] = byte(page)
			hdr[11] = boolByte(last)
			binary.LittleEndian.PutUint16(hdr[12:], uint16(length))
		}
	default:
		fill = func(hdr []byte, page, length int, last bool) {
			hdr[0] = 0x02
			hdr[1] = 0x07
			hdr[2] = key
			hdr[3] = boolByte(last)
			binary.LittleEndian.PutUint16(hdr[4:], uint16(length))
			binary.LittleEndian.PutUint16(hdr[6:], uint16(page))
		}
	}

	payloadLen := reportLen - headerLen
	if k == KindOriginal {
		// The first hardware revision does not carry a page length field and
		// expects the payload split evenly in two.
		if half := len(data) / 2; half > 0 {
			payloadLen = half
		}
	}

	return buildPages(reportLen, headerLen, payloadLen, data, fill)
}

// lcdRegionPages splits an encoded LCD region into paged output reports
// addressed to the (x, y) origin of the region.
func lcdRegionPages(x, y uint16, rect *ImageRect) [][]byte {
	fill := func(hdr []byte, page, length int, last bool) {
		hdr[0] = 0x02
		hdr[1] = 0x0c
		binary.LittleEndian.PutUint16(hdr[2:], x)
		binary.LittleEndian.PutUint16(hdr[4:], y)
		binary.LittleEndian.PutUint16(hdr[6:], rect.W)
		binary.LittleEndian.PutUint16(hdr[8:], rect.H)
		hdr[10] = boolByte(last)
		binary.LittleEndian.PutUint16(hdr[11:], uint16(page))
		binary.LittleEndian.PutUint16(hdr[13:], uint16(length))
	}
	return buildPages(lcdReportLength, lcdHeaderLength, lcdReportLength-lcdHeaderLength, rect.Data, fill)
}

// lcdFillPages splits an encoded full-strip image into paged output reports
// for families whose strip only accepts whole fills.
func lcdFillPages(data []byte) [][]byte {
	fill := func(hdr []byte, page, length int, last bool) {
		hdr[0] = 0x02
		hdr[1] = 0x0b
		hdr[3] = boolByte(last)
		binary.LittleEndian.PutUint16(hdr[4:], uint16(length))
		binary.LittleEndian.PutUint16(hdr[6:], uint16(page))
	}
	return buildPages(imageReportLengthV2, imageHeaderLengthV2, imageReportLengthV2-imageHeaderLengthV2, data, fill)
}

// logoPages builds the vendor envelope logo upload: one announcement report
// carrying the payload length, then the raw payload streamed in full
// reports.
func logoPages(data []byte) [][]byte {
	announce := vendorReport(vendorOpLogo)
	binary.LittleEndian.PutUint32(announce[1+len(vendorMagic)+len(vendorOpLogo):], uint32(len(data)))

	pages := [][]byte{announce}
	for start := 0; start < len(data); start += vendorReportLength {
		end := start + vendorReportLength
		if end > len(data) {
			end = len(data)
		}
		buf := make([]byte, vendorReportLength+1)
		copy(buf[1:], data[start:end])
		pages = append(pages, buf)
	}
	return pages
}

func buildPages(reportLen, headerLen, payloadLen int, data []byte, fill func(hdr []byte, page, length int, last bool)) [][]byte {
	var pages [][]byte

	remaining := len(data)
	page := 0
	for remaining > 0 {
		thisLen := remaining
		if thisLen > payloadLen {
			thisLen = payloadLen
		}
		sent := page * payloadLen

		buf := make([]byte, reportLen)
		fill(buf[:headerLen], page, thisLen, thisLen == remaining)
		copy(buf[headerLen:], data[sent:sent+thisLen])

		pages = append(pages, buf)
		remaining -= thisLen
		page++
	}
	return pages
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// extractString decodes a string field from a feature report, dropping the
// trailing fill bytes.
func extractString(b []byte) (string, error) {
	s, _, _ := bytes.Cut(b, []byte{0})
	if !utf8.Valid(s) {
		return "", wrapErr(ErrInvalidStringData)
	}
	return string(s), nil
}

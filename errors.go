// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"errors"
	"fmt"
)

// Errors returned from the streamdeck package may be tested against these
// errors with errors.Is.
var (
	ErrBadData                = errors.New("device sent unexpected data")
	ErrImageInvalid           = errors.New("image is not valid")
	ErrInvalidKeyIndex        = errors.New("key index is out of range")
	ErrInvalidStringData      = errors.New("device string is not valid utf-8")
	ErrInvalidTouchPointIndex = errors.New("touch point index is out of range")
	ErrNoScreen               = errors.New("device has no screen to write images to")
	ErrUnrecognizedProductID  = errors.New("product id does not match a supported device")
	ErrUnsupportedOperation   = errors.New("operation is not supported by this device")
)

func wrapErr(err error) error {
	if err != nil {
		return fmt.Errorf("streamdeck: %w", err)
	}
	return nil
}

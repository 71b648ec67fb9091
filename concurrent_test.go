// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSharedDevice(t *testing.T, kind Kind) (*SharedDevice, *fakeHID) {
	t.Helper()
	d, fake := testDevice(t, kind)
	return NewSharedDevice(d), fake
}

func TestSharedDeviceOperations(t *testing.T) {
	s, fake := testSharedDevice(t, KindXl)

	assert.Equal(t, KindXl, s.Kind())
	require.NoError(t, s.SetBrightness(30))
	require.NoError(t, s.WriteImage(4, []byte{1, 2, 3}))
	require.NoError(t, s.Flush())

	require.Len(t, fake.features, 1)
	require.Len(t, fake.writes, 1)
	assert.Equal(t, byte(4), fake.writes[0][2])

	require.NoError(t, s.Close())
	assert.True(t, fake.closed)
}

func TestSharedDeviceConcurrentWrites(t *testing.T) {
	s, fake := testSharedDevice(t, KindXl)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(key byte) {
			defer wg.Done()
			assert.NoError(t, s.WriteImage(key, []byte{key}))
		}(byte(i))
	}
	wg.Wait()

	require.NoError(t, s.Flush())
	assert.Len(t, fake.writes, 8)
}

func TestSharedDeviceReadInput(t *testing.T) {
	s, fake := testSharedDevice(t, KindMk2)

	press := make([]byte, 4+15)
	press[0] = 0x01
	press[4] = 1
	fake.reads = [][]byte{press}

	in, err := s.ReadInput(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, InputButtonStates, in.Type)
	assert.True(t, in.Buttons[0])
}

func TestSharedDeviceReadInputCancel(t *testing.T) {
	s, _ := testSharedDevice(t, KindMk2)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.ReadInput(ctx, 1000)
	assert.Error(t, err, "polling must stop once the context expires")
}

func TestSharedDeviceReader(t *testing.T) {
	s, fake := testSharedDevice(t, KindMk2)

	press := make([]byte, 4+15)
	press[0] = 0x01
	press[4+6] = 1
	release := make([]byte, 4+15)
	release[0] = 0x01
	fake.reads = [][]byte{press, release}

	reader := s.GetReader()

	events, err := reader.Read(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, []Event{{Type: EventButtonDown, Index: 6}}, events)

	events, err = reader.Read(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, []Event{{Type: EventButtonUp, Index: 6}}, events)
}

func TestSharedDeviceReaderSkipsEmptyReports(t *testing.T) {
	s, fake := testSharedDevice(t, KindMk2)

	press := make([]byte, 4+15)
	press[0] = 0x01
	press[4+1] = 1
	// two empty reports precede the press
	fake.reads = [][]byte{make([]byte, 19), make([]byte, 19), press}

	events, err := s.GetReader().Read(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, []Event{{Type: EventButtonDown, Index: 1}}, events)
}

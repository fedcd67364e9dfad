// go-epaper
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-epaper.
//
// go-epaper is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-epaper is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-epaper; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package epaper

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportError_Categories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err        error
		cause      error
		name       string
		wantString string
		isIO       bool
		isConfig   bool
	}{
		{
			name:       "io error",
			err:        NewIOError("open", "/dev/ttyUSB0", syscall.ENOENT),
			cause:      syscall.ENOENT,
			isIO:       true,
			wantString: "open /dev/ttyUSB0: serial I/O failure: ",
		},
		{
			name:       "config error",
			err:        NewConfigError("configure", "/dev/ttyUSB0", errors.New("data bits 9")),
			isConfig:   true,
			wantString: "configure /dev/ttyUSB0: unsupported serial configuration: data bits 9",
		},
		{
			name:       "without port",
			err:        NewIOError("write", "", syscall.EIO),
			cause:      syscall.EIO,
			isIO:       true,
			wantString: "write: serial I/O failure: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.isIO, IsIOError(tt.err))
			assert.Equal(t, tt.isConfig, IsConfigError(tt.err))
			assert.Contains(t, tt.err.Error(), tt.wantString)
			if tt.cause != nil {
				require.ErrorIs(t, tt.err, tt.cause)
			}

			wrapped := fmt.Errorf("session: %w", tt.err)
			var te *TransportError
			require.ErrorAs(t, wrapped, &te)
			assert.Equal(t, tt.isIO, IsIOError(wrapped))
		})
	}
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "io", ErrorTypeIO.String())
	assert.Equal(t, "config", ErrorTypeConfig.String())
	assert.Equal(t, "unknown", ErrorType(9).String())
}

func TestStateError(t *testing.T) {
	t.Parallel()

	err := &StateError{Op: "draw-pixel", State: StateClosed}
	require.ErrorIs(t, err, ErrState)
	assert.NotErrorIs(t, err, ErrIO)
	assert.Equal(t, "draw-pixel: display session not open (state closed)", err.Error())
	assert.Equal(t, "state(7)", State(7).String())
}

func TestParseParity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Parity
		wantErr bool
	}{
		{in: "N", want: ParityNone},
		{in: "n", want: ParityNone},
		{in: "O", want: ParityOdd},
		{in: "e", want: ParityEven},
		{in: "s", want: ParitySpace},
		{in: "X", wantErr: true},
		{in: "", wantErr: true},
		{in: "NO", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseParity(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSerialConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*SerialConfig)
		wantErr bool
	}{
		{name: "default", mutate: func(*SerialConfig) {}},
		{name: "7E2", mutate: func(c *SerialConfig) { c.DataBits, c.Parity, c.StopBits = 7, ParityEven, 2 }},
		{name: "lower case parity", mutate: func(c *SerialConfig) { c.Parity = 'o' }},
		{name: "odd baud is not checked", mutate: func(c *SerialConfig) { c.BaudRate = 12345 }},
		{name: "data bits 9", mutate: func(c *SerialConfig) { c.DataBits = 9 }, wantErr: true},
		{name: "data bits 5", mutate: func(c *SerialConfig) { c.DataBits = 5 }, wantErr: true},
		{name: "stop bits 3", mutate: func(c *SerialConfig) { c.StopBits = 3 }, wantErr: true},
		{name: "parity X", mutate: func(c *SerialConfig) { c.Parity = 'X' }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultSerialConfig("/dev/ttyS0")
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConfig)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSerialConfig_String(t *testing.T) {
	t.Parallel()

	cfg := DefaultSerialConfig("/dev/ttyS0")
	cfg.Parity = 'e'
	assert.Equal(t, "/dev/ttyS0 115200 8E1", cfg.String())
}

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
	"strings"
	"time"
)

const (
	// ReadBufferSize is the largest response a single read returns.
	ReadBufferSize = 512
	// DefaultReadTimeout is the inter-byte read timeout of the serial line.
	DefaultReadTimeout = 15 * time.Second
)

// Transport defines the byte-level channel to the display controller.
// It is implemented by transport/uart and by MockTransport in tests.
type Transport interface {
	// Write sends data in a single attempt and returns the number of bytes
	// the device accepted. Short writes are not retried.
	Write(data []byte) (int, error)

	// Read blocks until bytes arrive or the inter-byte timeout elapses and
	// returns at most ReadBufferSize bytes. An empty slice with a nil error
	// means nothing arrived before the timeout.
	Read() ([]byte, error)

	// Close closes the transport connection
	Close() error

	// IsConnected returns true if the transport is connected
	IsConnected() bool

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// TransportFactory opens and configures a transport for config.
type TransportFactory func(config SerialConfig) (Transport, error)

// Parity is the serial parity symbol.
type Parity byte

// Parity settings
const (
	ParityNone  Parity = 'N'
	ParityOdd   Parity = 'O'
	ParityEven  Parity = 'E'
	ParitySpace Parity = 'S' // treated as no parity
)

// ParseParity accepts N, O, E or S in either case.
func ParseParity(s string) (Parity, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: parity %q", ErrConfig, s)
	}
	p, ok := Parity(s[0]).Normalize()
	if !ok {
		return 0, fmt.Errorf("%w: parity %q", ErrConfig, s)
	}
	return p, nil
}

// Normalize maps lower case symbols to their canonical form and reports
// whether p is a known parity.
func (p Parity) Normalize() (Parity, bool) {
	switch p {
	case 'n', 'N':
		return ParityNone, true
	case 'o', 'O':
		return ParityOdd, true
	case 'e', 'E':
		return ParityEven, true
	case 's', 'S':
		return ParitySpace, true
	default:
		return p, false
	}
}

func (p Parity) String() string {
	switch n, _ := p.Normalize(); n {
	case ParityNone:
		return "none"
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	case ParitySpace:
		return "space"
	default:
		return fmt.Sprintf("unknown(%q)", rune(p))
	}
}

// SerialConfig describes the serial line to the controller. It is built
// once before the session opens and never changed afterwards.
type SerialConfig struct {
	Path     string
	BaudRate int
	DataBits int
	StopBits int
	Parity   Parity
}

// DefaultSerialConfig returns 115200 baud, 8 data bits, 1 stop bit and no
// parity on path.
func DefaultSerialConfig(path string) SerialConfig {
	return SerialConfig{
		Path:     path,
		BaudRate: 115200,
		DataBits: 8,
		StopBits: 1,
		Parity:   ParityNone,
	}
}

// Validate checks the framing settings. The baud rate is not checked
// here; rates outside the transport's table are ignored when configuring.
func (c SerialConfig) Validate() error {
	var errs []string
	if c.DataBits != 7 && c.DataBits != 8 {
		errs = append(errs, fmt.Sprintf("data bits %d", c.DataBits))
	}
	if c.StopBits != 1 && c.StopBits != 2 {
		errs = append(errs, fmt.Sprintf("stop bits %d", c.StopBits))
	}
	if _, ok := c.Parity.Normalize(); !ok {
		errs = append(errs, fmt.Sprintf("parity %q", rune(c.Parity)))
	}
	if len(errs) > 0 {
		return NewConfigError("configure", c.Path, errors.New(strings.Join(errs, ", ")))
	}
	return nil
}

func (c SerialConfig) String() string {
	p, _ := c.Parity.Normalize()
	return fmt.Sprintf("%s %d %d%c%d", c.Path, c.BaudRate, c.DataBits, byte(p), c.StopBits)
}

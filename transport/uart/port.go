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

package uart

import (
	"errors"
	"time"

	"go.bug.st/serial"
)

// Mode is a line setting. KeepSpeed leaves the current speed untouched and
// ignores Mode.BaudRate.
type Mode struct {
	serial.Mode
	KeepSpeed bool
}

// Port is an open serial device.
type Port interface {
	SetLine(mode Mode) error
	SetReadTimeout(timeout time.Duration) error
	ResetInputBuffer() error
	MakeRaw() error
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// Opener opens the device at path without changing its line settings.
type Opener func(path string) (Port, error)

// initialSpeed is the rate go.bug.st/serial opens a port at.
const initialSpeed = 9600

type serialPort struct {
	port serial.Port
	baud int
}

// OpenSerial opens path through go.bug.st/serial. The library always sets a
// speed on open, so the port starts at 9600 baud, 8N1, in raw mode.
func OpenSerial(path string) (Port, error) {
	mode := &serial.Mode{
		BaudRate: initialSpeed,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	return &serialPort{port: port, baud: initialSpeed}, nil
}

func (p *serialPort) SetLine(mode Mode) error {
	m := mode.Mode
	if mode.KeepSpeed {
		m.BaudRate = p.baud
	}
	if err := p.port.SetMode(&m); err != nil {
		return err
	}
	p.baud = m.BaudRate
	return nil
}

func (p *serialPort) SetReadTimeout(timeout time.Duration) error {
	return p.port.SetReadTimeout(timeout)
}

func (p *serialPort) ResetInputBuffer() error {
	return p.port.ResetInputBuffer()
}

// MakeRaw is a no-op; go.bug.st/serial opens ports in raw mode.
func (*serialPort) MakeRaw() error {
	return nil
}

func (p *serialPort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

func (p *serialPort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *serialPort) Close() error {
	return p.port.Close()
}

// isSettingError reports whether err rejects a line setting rather than
// failing at the OS boundary.
func isSettingError(err error) bool {
	var portErr *serial.PortError
	if !errors.As(err, &portErr) {
		return false
	}
	switch portErr.Code() {
	case serial.InvalidSpeed, serial.InvalidDataBits, serial.InvalidStopBits, serial.InvalidParity:
		return true
	default:
		return false
	}
}

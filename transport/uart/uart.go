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

// Package uart provides a serial line transport for the e-paper controller.
package uart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"

	"github.com/ZaparooProject/go-epaper"
)

var errNotOpen = errors.New("port not open")

// Transport implements epaper.Transport over a serial device.
//
// Writes are single attempts: a short count is returned to the caller and
// never retried. Reads return whatever arrived before the inter-byte
// timeout, up to epaper.ReadBufferSize bytes.
type Transport struct {
	port     Port
	opener   Opener
	portName string
	timeout  time.Duration
	mu       sync.Mutex
}

// Option configures a Transport
type Option func(*Transport)

// WithReadTimeout overrides the inter-byte read timeout
func WithReadTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		t.timeout = timeout
	}
}

// WithOpener overrides how the device is opened
func WithOpener(opener Opener) Option {
	return func(t *Transport) {
		t.opener = opener
	}
}

// New opens portName without configuring it.
func New(portName string, opts ...Option) (*Transport, error) {
	t := &Transport{
		portName: portName,
		opener:   defaultOpener,
		timeout:  epaper.DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}

	port, err := t.opener(portName)
	if err != nil {
		return nil, epaper.NewIOError("open", portName, err)
	}
	t.port = port

	log.Debug().Str("port", portName).Msg("serial port opened")
	return t, nil
}

// Open opens config.Path, switches it to raw mode and applies the
// configured line settings. The port is closed again if any step fails.
func Open(config epaper.SerialConfig, opts ...Option) (*Transport, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	t, err := New(config.Path, opts...)
	if err != nil {
		return nil, err
	}

	if err := t.DisableLineDiscipline(); err != nil {
		_ = t.Close()
		return nil, err
	}
	if err := t.Configure(config.BaudRate, config.DataBits, config.StopBits, config.Parity); err != nil {
		_ = t.Close()
		return nil, err
	}
	return t, nil
}

// Factory is an epaper.TransportFactory backed by Open.
func Factory(config epaper.SerialConfig) (epaper.Transport, error) {
	return NewFactory()(config)
}

// NewFactory returns an epaper.TransportFactory applying opts to every
// transport it opens.
func NewFactory(opts ...Option) epaper.TransportFactory {
	return func(config epaper.SerialConfig) (epaper.Transport, error) {
		t, err := Open(config, opts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

// Configure sets speed, data bits, stop bits and parity, flushes pending
// input and applies the read timeout.
//
// A baud rate outside the speed table leaves the current speed unchanged
// without error; the other settings are still applied. Data bits other
// than 7 or 8, stop bits other than 1 or 2 and unknown parity symbols are
// rejected with a configuration error before the line is touched. Space
// parity means no parity.
func (t *Transport) Configure(baud, dataBits, stopBits int, parity epaper.Parity) error {
	cfg := epaper.SerialConfig{
		Path:     t.portName,
		BaudRate: baud,
		DataBits: dataBits,
		StopBits: stopBits,
		Parity:   parity,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return epaper.NewIOError("configure", t.portName, errNotOpen)
	}

	mode := lineMode(cfg)
	if mode.KeepSpeed {
		log.Warn().Str("port", t.portName).Int("baud", baud).Msg("unsupported baud rate, keeping current speed")
	}

	if err := t.port.ResetInputBuffer(); err != nil {
		return epaper.NewIOError("flush", t.portName, err)
	}
	if err := t.port.SetLine(mode); err != nil {
		if isSettingError(err) {
			return epaper.NewConfigError("configure", t.portName, err)
		}
		return epaper.NewIOError("configure", t.portName, err)
	}
	if err := t.port.SetReadTimeout(t.timeout); err != nil {
		return epaper.NewIOError("configure", t.portName, err)
	}

	log.Debug().
		Str("port", t.portName).
		Str("line", cfg.String()).
		Dur("timeout", t.timeout).
		Msg("serial line configured")
	return nil
}

func lineMode(cfg epaper.SerialConfig) Mode {
	mode := Mode{
		Mode: serial.Mode{
			BaudRate: cfg.BaudRate,
			DataBits: cfg.DataBits,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		},
		KeepSpeed: !SupportedBaud(cfg.BaudRate),
	}
	if cfg.StopBits == 2 {
		mode.StopBits = serial.TwoStopBits
	}
	switch p, _ := cfg.Parity.Normalize(); p {
	case epaper.ParityOdd:
		mode.Parity = serial.OddParity
	case epaper.ParityEven:
		mode.Parity = serial.EvenParity
	default:
		mode.Parity = serial.NoParity
	}
	return mode
}

// DisableLineDiscipline puts the line in raw mode: no canonical input, no
// echo, no signal characters and no output newline translation.
func (t *Transport) DisableLineDiscipline() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return epaper.NewIOError("raw mode", t.portName, errNotOpen)
	}
	if err := t.port.MakeRaw(); err != nil {
		return epaper.NewIOError("raw mode", t.portName, err)
	}
	return nil
}

// Write sends data once and returns the number of bytes accepted.
func (t *Transport) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return 0, epaper.NewIOError("write", t.portName, errNotOpen)
	}

	n, err := t.port.Write(data)
	if err != nil {
		return n, epaper.NewIOError("write", t.portName, err)
	}
	return n, nil
}

// Read performs a single read of up to epaper.ReadBufferSize bytes. An
// empty result means the timeout elapsed with nothing received.
func (t *Transport) Read() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return nil, epaper.NewIOError("read", t.portName, errNotOpen)
	}

	buf := make([]byte, epaper.ReadBufferSize)
	n, err := t.port.Read(buf)
	if err != nil {
		return nil, epaper.NewIOError("read", t.portName, err)
	}
	return buf[:n], nil
}

// Close closes the port. Closing twice is a no-op.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		return epaper.NewIOError("close", t.portName, err)
	}
	return nil
}

// IsConnected returns true while the port is open
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.port != nil
}

// Type returns the transport type
func (*Transport) Type() epaper.TransportType {
	return epaper.TransportUART
}

// PortName returns the device path
func (t *Transport) PortName() string {
	return t.portName
}

func (t *Transport) String() string {
	return fmt.Sprintf("uart(%s)", t.portName)
}

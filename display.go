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
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Control line timings
const (
	pinPulseSettle = 10 * time.Microsecond
	pinPulseHold   = 500 * time.Microsecond
	resetRecovery  = 3 * time.Second
	baudSwitchWait = 10 * time.Millisecond
)

// State is the lifecycle state of a Display session.
type State int

// Session states
const (
	StateUninitialized State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Display is a session with one e-paper controller.
//
// Every command encodes exactly one frame into a freshly allocated buffer
// and writes it once; there is no batching, queueing or acknowledgement
// wait. Only Handshake and Query read a response, and neither validates
// it.
//
// Thread Safety: Display is NOT thread-safe. It owns its transport
// exclusively; call it from a single goroutine.
type Display struct {
	transport Transport
	factory   TransportFactory
	pins      PinController
	sleep     func(time.Duration)
	logger    zerolog.Logger
	response  []byte
	config    SerialConfig
	state     State
}

// New creates an uninitialized Display for config. The factory is called
// by Init to open the transport.
func New(config SerialConfig, factory TransportFactory, opts ...Option) (*Display, error) {
	display := &Display{
		config:  config,
		factory: factory,
		pins:    NewMemoryPins(),
		sleep:   time.Sleep,
		logger:  log.Logger,
	}

	for _, opt := range opts {
		if err := opt(display); err != nil {
			return nil, err
		}
	}

	return display, nil
}

// Connect creates a Display and initializes it.
//
// Example usage:
//
//	display, err := epaper.Connect(epaper.DefaultSerialConfig("/dev/ttyUSB0"), uart.Factory)
func Connect(config SerialConfig, factory TransportFactory, opts ...Option) (*Display, error) {
	display, err := New(config, factory, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create display: %w", err)
	}
	if err := display.Init(); err != nil {
		return nil, err
	}
	return display, nil
}

// Init opens and configures the transport and drives both control lines
// low.
func (d *Display) Init() error {
	if d.state != StateUninitialized {
		return &StateError{Op: "init", State: d.state}
	}
	if d.factory == nil {
		return errors.New("transport factory not provided")
	}

	transport, err := d.factory(d.config)
	if err != nil {
		return fmt.Errorf("failed to open transport: %w", err)
	}

	for _, pin := range []Pin{PinWakeup, PinReset} {
		if err := d.pins.SetPin(pin, Low); err != nil {
			_ = transport.Close()
			return fmt.Errorf("failed to initialize %s pin: %w", pin, err)
		}
	}

	d.transport = transport
	d.state = StateOpen
	d.logger.Info().Str("port", d.config.Path).Int("baud", d.config.BaudRate).Msg("display session open")
	return nil
}

// State returns the session state.
func (d *Display) State() State {
	return d.state
}

// Config returns the serial configuration the session was created with.
func (d *Display) Config() SerialConfig {
	return d.config
}

// Transport returns the underlying transport, nil before Init.
func (d *Display) Transport() Transport {
	return d.transport
}

// LastResponse returns the raw bytes captured by the last Handshake or
// Query. They are never checked against an expected value.
func (d *Display) LastResponse() []byte {
	return append([]byte(nil), d.response...)
}

// Close closes the transport. Closing an already closed session is a
// no-op.
func (d *Display) Close() error {
	if d.state == StateClosed {
		return nil
	}
	d.state = StateClosed
	if d.transport == nil {
		return nil
	}
	if err := d.transport.Close(); err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	d.logger.Info().Str("port", d.config.Path).Msg("display session closed")
	return nil
}

// Reset pulses the reset line low, high, low and holds for the controller
// to restart.
func (d *Display) Reset() error {
	return d.pulse("reset", PinReset, pinPulseSettle, pinPulseHold, resetRecovery)
}

// Wakeup pulses the wake-up line low, high, low.
func (d *Display) Wakeup() error {
	return d.pulse("wakeup", PinWakeup, pinPulseSettle, pinPulseHold, pinPulseSettle)
}

func (d *Display) pulse(op string, pin Pin, waits ...time.Duration) error {
	if err := d.requireOpen(op); err != nil {
		return err
	}
	levels := []Level{Low, High, Low}
	for i, level := range levels {
		if err := d.pins.SetPin(pin, level); err != nil {
			return fmt.Errorf("%s: failed to drive %s %s: %w", op, pin, level, err)
		}
		d.sleep(waits[i])
	}
	return nil
}

// Handshake sends the handshake frame and performs one read. The raw
// response is returned as-is; an empty response is not an error and the
// controller's readiness is left for the caller to judge.
func (d *Display) Handshake() ([]byte, error) {
	return d.exchange(CmdHandshake)
}

// Query sends a command without payload (for example CmdGetColor or
// CmdReadBaud) and performs one read, returning the raw response.
func (d *Display) Query(cmd Command) ([]byte, error) {
	spec, ok := LookupCommand(cmd)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	if spec.Shape != PayloadNone {
		return nil, fmt.Errorf("%w: %s carries a payload", ErrPayloadShape, cmd)
	}
	return d.exchange(cmd)
}

func (d *Display) exchange(cmd Command) ([]byte, error) {
	if _, err := d.send(cmd); err != nil {
		return nil, err
	}

	resp, err := d.transport.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", cmd, err)
	}
	d.response = resp
	d.logger.Debug().
		Str("command", string(cmd)).
		Int("len", len(resp)).
		Str("response", hex.EncodeToString(resp)).
		Msg("response captured")
	return append([]byte(nil), resp...), nil
}

// Send encodes a fixed-shape command with args (see Encode) and writes it
// once, returning the transport's byte count.
func (d *Display) Send(cmd Command, args ...int) (int, error) {
	return d.send(cmd, args...)
}

func (d *Display) send(cmd Command, args ...int) (int, error) {
	if err := d.requireOpen(string(cmd)); err != nil {
		return 0, err
	}
	raw, err := Encode(cmd, args...)
	if err != nil {
		return 0, err
	}
	return d.write(cmd, raw)
}

func (d *Display) sendText(cmd Command, x, y int, text string) (int, error) {
	if err := d.requireOpen(string(cmd)); err != nil {
		return 0, err
	}
	raw, err := EncodeText(cmd, x, y, text)
	if err != nil {
		return 0, err
	}
	return d.write(cmd, raw)
}

func (d *Display) write(cmd Command, raw []byte) (int, error) {
	n, err := d.transport.Write(raw)
	if err != nil {
		return n, fmt.Errorf("%s: %w", cmd, err)
	}
	if n != len(raw) {
		d.logger.Warn().
			Str("command", string(cmd)).
			Int("frame_len", len(raw)).
			Int("written", n).
			Msg("short write")
	} else {
		d.logger.Debug().
			Str("command", string(cmd)).
			Int("frame_len", len(raw)).
			Msg("frame sent")
	}
	return n, nil
}

func (d *Display) requireOpen(op string) error {
	if d.state != StateOpen {
		return &StateError{Op: op, State: d.state}
	}
	return nil
}

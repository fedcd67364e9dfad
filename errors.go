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

	"github.com/ZaparooProject/go-epaper/internal/frame"
)

// Error taxonomy
var (
	// ErrIO indicates the serial device could not be opened, read or written.
	ErrIO = errors.New("serial I/O failure")
	// ErrConfig indicates an unsupported data bit, stop bit or parity setting.
	ErrConfig = errors.New("unsupported serial configuration")
	// ErrState indicates a command issued while the session is not open.
	ErrState = errors.New("display session not open")
)

var errTransportClosed = errors.New("transport closed")

// Codec errors
var (
	ErrFrameTooLarge  = frame.ErrFrameTooLarge
	ErrUnknownCommand = errors.New("unknown command")
	ErrPayloadShape   = errors.New("payload does not match command shape")
)

// ErrorType categorizes transport errors
type ErrorType int

const (
	// ErrorTypeIO covers failures at the OS boundary
	ErrorTypeIO ErrorType = iota
	// ErrorTypeConfig covers rejected line settings
	ErrorTypeConfig
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeIO:
		return "io"
	case ErrorTypeConfig:
		return "config"
	default:
		return "unknown"
	}
}

// TransportError describes a failed transport operation. It matches both
// its category sentinel (ErrIO or ErrConfig) and the underlying cause with
// errors.Is and errors.As.
type TransportError struct {
	Err  error
	Op   string
	Port string
	Type ErrorType
}

func (e *TransportError) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.sentinel(), e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Port, e.sentinel(), e.Err)
}

// Unwrap exposes the category sentinel and the cause.
func (e *TransportError) Unwrap() []error {
	return []error{e.sentinel(), e.Err}
}

func (e *TransportError) sentinel() error {
	if e.Type == ErrorTypeConfig {
		return ErrConfig
	}
	return ErrIO
}

// NewIOError wraps an OS level failure of op on port.
func NewIOError(op, port string, err error) error {
	return &TransportError{Op: op, Port: port, Err: err, Type: ErrorTypeIO}
}

// NewConfigError reports a rejected line setting.
func NewConfigError(op, port string, err error) error {
	return &TransportError{Op: op, Port: port, Err: err, Type: ErrorTypeConfig}
}

// StateError reports a command issued outside the open session state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %v (state %s)", e.Op, ErrState, e.State)
}

// Is matches ErrState.
func (*StateError) Is(target error) bool {
	return target == ErrState
}

// IsIOError reports whether err belongs to the I/O category.
func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsConfigError reports whether err belongs to the configuration category.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

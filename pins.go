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

import "fmt"

// Pin identifies a control line of the display module.
type Pin int

// Control lines
const (
	PinWakeup Pin = iota
	PinReset
)

func (p Pin) String() string {
	switch p {
	case PinWakeup:
		return "wakeup"
	case PinReset:
		return "reset"
	default:
		return fmt.Sprintf("pin(%d)", int(p))
	}
}

// Level is a digital pin level.
type Level bool

// Pin levels
const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// PinController drives the wake-up and reset lines. The host platform
// supplies a real implementation (see pins/gpio); MemoryPins only records
// levels.
type PinController interface {
	SetPin(pin Pin, level Level) error
}

// PinEvent is one recorded pin write.
type PinEvent struct {
	Pin   Pin
	Level Level
}

// MemoryPins is a PinController without hardware effect. It keeps the last
// level of each pin and the full write history. The zero value is ready to
// use.
type MemoryPins struct {
	levels  map[Pin]Level
	history []PinEvent
}

// NewMemoryPins returns a MemoryPins with every pin low.
func NewMemoryPins() *MemoryPins {
	return &MemoryPins{levels: make(map[Pin]Level)}
}

// SetPin records level for pin.
func (m *MemoryPins) SetPin(pin Pin, level Level) error {
	if m.levels == nil {
		m.levels = make(map[Pin]Level)
	}
	m.levels[pin] = level
	m.history = append(m.history, PinEvent{Pin: pin, Level: level})
	return nil
}

// Level returns the last level written to pin.
func (m *MemoryPins) Level(pin Pin) Level {
	return m.levels[pin]
}

// History returns a copy of every write in order.
func (m *MemoryPins) History() []PinEvent {
	return append([]PinEvent(nil), m.history...)
}

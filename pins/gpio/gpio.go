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

// Package gpio drives the display's wake-up and reset lines through
// periph.io.
package gpio

import (
	"fmt"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/ZaparooProject/go-epaper"
)

// Lines names the host pins wired to the module, for example "GPIO17".
type Lines struct {
	Wakeup string
	Reset  string
}

// Controller implements epaper.PinController on periph.io output pins.
type Controller struct {
	pins map[epaper.Pin]pgpio.PinOut
}

// New initializes the periph host, resolves both lines by name and drives
// them low.
func New(lines Lines) (*Controller, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	wakeup := gpioreg.ByName(lines.Wakeup)
	if wakeup == nil {
		return nil, fmt.Errorf("wakeup pin %q not found", lines.Wakeup)
	}
	reset := gpioreg.ByName(lines.Reset)
	if reset == nil {
		return nil, fmt.Errorf("reset pin %q not found", lines.Reset)
	}

	return NewWithPins(wakeup, reset)
}

// NewWithPins wraps already resolved output pins and drives them low.
func NewWithPins(wakeup, reset pgpio.PinOut) (*Controller, error) {
	c := &Controller{pins: map[epaper.Pin]pgpio.PinOut{
		epaper.PinWakeup: wakeup,
		epaper.PinReset:  reset,
	}}
	for pin := range c.pins {
		if err := c.SetPin(pin, epaper.Low); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetPin drives pin to level.
func (c *Controller) SetPin(pin epaper.Pin, level epaper.Level) error {
	out, ok := c.pins[pin]
	if !ok || out == nil {
		return fmt.Errorf("no output for %s pin", pin)
	}
	if err := out.Out(pgpio.Level(level)); err != nil {
		return fmt.Errorf("failed to drive %s pin %s: %w", pin, out.Name(), err)
	}
	return nil
}

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
	"time"

	"github.com/rs/zerolog"
)

// Option is a functional option for configuring a Display
type Option func(*Display) error

// WithLogger sets the logger used for session events
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Display) error {
		d.logger = logger
		return nil
	}
}

// WithPinController sets the controller driving the wake-up and reset lines
func WithPinController(pins PinController) Option {
	return func(d *Display) error {
		if pins == nil {
			return errors.New("pin controller is nil")
		}
		d.pins = pins
		return nil
	}
}

// withSleep replaces time.Sleep for pin pulses and the baud switch wait
func withSleep(sleep func(time.Duration)) Option {
	return func(d *Display) error {
		d.sleep = sleep
		return nil
	}
}

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


/*
Package epaper provides a pure Go library for driving serial e-paper display
controllers that speak the 0xA5 framed command protocol.

Every command is a self-delimiting frame: a 0xA5 header, a big-endian length
covering the whole frame, an opcode, a fixed-size parameter block, the four
byte tail CC 33 C3 3C and an XOR parity byte. The controller keeps drawing
operations in a pending buffer until an update command refreshes the panel.

Basic Usage:

	import (
	    "github.com/ZaparooProject/go-epaper"
	    "github.com/ZaparooProject/go-epaper/transport/uart"
	)

	cfg := epaper.DefaultSerialConfig("/dev/ttyUSB0")

	display, err := epaper.Connect(cfg, uart.NewFactory())
	if err != nil {
	    log.Fatal(err)
	}
	defer display.Close()

	if _, err := display.Clear(); err != nil {
	    log.Fatal(err)
	}
	if _, err := display.DrawString("Hello", 0, 0); err != nil {
	    log.Fatal(err)
	}
	if _, err := display.Update(); err != nil {
	    log.Fatal(err)
	}

Frames can also be built without a session:

	raw, err := epaper.Encode(epaper.CmdDrawCircle, 100, 100, 50)

Wake-up and Reset Lines:

Panels that expose wake-up and reset lines can be driven through a
PinController. The pins/gpio package implements one on top of periph.io.

	pins, err := gpio.New(gpio.Lines{Wakeup: "GPIO17", Reset: "GPIO27"})
	display, err := epaper.Connect(cfg, uart.NewFactory(), epaper.WithPinController(pins))

Error Handling:

Errors are classified and can be matched with errors.Is:

	if errors.Is(err, epaper.ErrIO) {
	    // the serial line failed
	}
	if errors.Is(err, epaper.ErrState) {
	    // the session is not open
	}

Thread Safety:

A Display owns its transport exclusively and is not safe for concurrent use.
Call it from a single goroutine.
*/
package epaper

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
	"encoding/binary"
	"fmt"

	"github.com/ZaparooProject/go-epaper/internal/frame"
)

// Encode builds the frame for a fixed-shape command.
//
// Arguments are interpreted according to the command's PayloadShape:
// single bytes for PayloadByte and PayloadBytePair, one 32-bit value for
// PayloadUint32 and 16-bit values for coordinates and radii. Values are
// truncated to the field width without range checks. Every call returns a
// new slice.
func Encode(cmd Command, args ...int) ([]byte, error) {
	spec, ok := commandSpecs[cmd]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	if spec.Shape == PayloadText {
		return nil, fmt.Errorf("%w: %s takes text, use EncodeText", ErrPayloadShape, cmd)
	}
	if len(args) != spec.Shape.Args() {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d",
			ErrPayloadShape, cmd, spec.Shape.Args(), len(args))
	}

	payload := make([]byte, spec.Shape.Size())
	switch spec.Shape {
	case PayloadNone:
	case PayloadByte, PayloadBytePair:
		for i, v := range args {
			payload[i] = byte(v)
		}
	case PayloadUint32:
		binary.BigEndian.PutUint32(payload, uint32(args[0]))
	default:
		for i, v := range args {
			binary.BigEndian.PutUint16(payload[i*2:], uint16(v))
		}
	}

	raw, err := frame.Build(spec.Opcode, payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd, err)
	}
	return raw, nil
}

// EncodeText builds the frame for a variable-length text command
// (draw-string or draw-bitmap). The text is sent as raw bytes with no
// length prefix; it ends at its first zero byte.
func EncodeText(cmd Command, x, y int, text string) ([]byte, error) {
	spec, ok := commandSpecs[cmd]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	if spec.Shape != PayloadText {
		return nil, fmt.Errorf("%w: %s does not take text", ErrPayloadShape, cmd)
	}

	raw, err := frame.BuildText(spec.Opcode, uint16(x), uint16(y), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd, err)
	}
	return raw, nil
}

// Checksum returns the XOR of data, the integrity byte closing every frame.
func Checksum(data []byte) byte {
	return frame.Checksum(data)
}

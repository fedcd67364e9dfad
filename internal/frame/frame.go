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

package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Frame errors
var (
	ErrFrameTooLarge    = errors.New("frame exceeds controller buffer")
	ErrFrameTooShort    = errors.New("frame too short")
	ErrInvalidStart     = errors.New("invalid start byte")
	ErrInvalidLength    = errors.New("invalid length field")
	ErrInvalidEnd       = errors.New("invalid end sequence")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Frame is a decoded protocol frame.
type Frame struct {
	Payload []byte
	Length  uint16
	Opcode  byte
}

// Build lays out a frame carrying a fixed-size payload.
//
// Every call returns a freshly allocated slice; nothing is shared between
// calls. The length field equals the total number of bytes in the frame.
func Build(opcode byte, payload []byte) ([]byte, error) {
	size := Overhead + len(payload)
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	buf := make([]byte, size)
	buf[0] = Start
	binary.BigEndian.PutUint16(buf[1:3], uint16(size))
	buf[3] = opcode
	copy(buf[HeaderSize:], payload)
	copy(buf[HeaderSize+len(payload):], EndSequence[:])
	buf[size-1] = Checksum(buf[:size-1])

	return buf, nil
}

// BuildText lays out a variable-length frame: two big-endian coordinates
// followed by raw text bytes.
//
// The text ends at its first zero byte, if any. With L the remaining text
// length the declared length is L+14, the end sequence starts at offset
// L+9 and the checksum sits at L+13. The byte at offset 8+L is zero. The
// controller has only ever been driven with this layout, so it is kept
// byte for byte.
func BuildText(opcode byte, x, y uint16, text []byte) ([]byte, error) {
	if i := bytes.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	if len(text) > MaxTextLength {
		return nil, fmt.Errorf("%w: text of %d bytes", ErrFrameTooLarge, len(text))
	}

	declared := len(text) + TextOverhead
	buf := make([]byte, declared)
	buf[0] = Start
	binary.BigEndian.PutUint16(buf[1:3], uint16(declared))
	buf[3] = opcode
	binary.BigEndian.PutUint16(buf[4:6], x)
	binary.BigEndian.PutUint16(buf[6:8], y)
	copy(buf[8:], text)

	endAt := declared - TrailerSize
	copy(buf[endAt:], EndSequence[:])
	buf[endAt+4] = Checksum(buf[:endAt+4])

	return buf, nil
}

// Decode parses the frame at the start of data and returns it together
// with the number of bytes it occupies.
func Decode(data []byte) (Frame, int, error) {
	if len(data) < Overhead {
		return Frame{}, 0, fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(data))
	}
	if data[0] != Start {
		return Frame{}, 0, fmt.Errorf("%w: 0x%02X", ErrInvalidStart, data[0])
	}

	length := binary.BigEndian.Uint16(data[1:3])
	n := int(length)
	if n < Overhead || n > len(data) {
		return Frame{}, 0, fmt.Errorf("%w: %d with %d bytes available", ErrInvalidLength, n, len(data))
	}
	if !bytes.Equal(data[n-TrailerSize:n-1], EndSequence[:]) {
		return Frame{}, 0, ErrInvalidEnd
	}
	if !ValidateChecksum(data[:n]) {
		return Frame{}, 0, ErrChecksumMismatch
	}

	payload := make([]byte, n-Overhead)
	copy(payload, data[HeaderSize:n-TrailerSize])

	return Frame{Opcode: data[3], Length: length, Payload: payload}, n, nil
}

// Text interprets the payload of a variable-length frame. It reports false
// when the payload is too short or lacks the zero byte after the text.
func (f Frame) Text() (x, y uint16, text []byte, ok bool) {
	if len(f.Payload) < 5 || f.Payload[len(f.Payload)-1] != 0 {
		return 0, 0, nil, false
	}
	x = binary.BigEndian.Uint16(f.Payload[0:2])
	y = binary.BigEndian.Uint16(f.Payload[2:4])
	return x, y, f.Payload[4 : len(f.Payload)-1], true
}

// Uint16At reads the big-endian 16-bit field at index i of the payload.
func (f Frame) Uint16At(i int) (uint16, bool) {
	off := i * 2
	if off+2 > len(f.Payload) {
		return 0, false
	}
	return binary.BigEndian.Uint16(f.Payload[off : off+2]), true
}

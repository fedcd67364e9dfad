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

// Package frame provides frame layout and protocol constants for the
// e-paper controller serial protocol.
package frame

// Frame delimiters
const (
	Start = 0xA5 // Start sentinel

	End0 = 0xCC // End sequence byte 0
	End1 = 0x33 // End sequence byte 1
	End2 = 0xC3 // End sequence byte 2
	End3 = 0x3C // End sequence byte 3
)

// Frame layout sizes
const (
	MaxFrameSize = 512 // Controller receive buffer capacity
	HeaderSize   = 4   // start + length(2) + opcode
	TrailerSize  = 5   // end sequence(4) + checksum
	Overhead     = HeaderSize + TrailerSize

	// TextOverhead is added to the text length to form the declared length
	// of a variable-length frame: header, 4 coordinate bytes, one zero
	// byte after the text, and the trailer.
	TextOverhead = HeaderSize + 4 + 1 + TrailerSize

	// MaxTextLength is the longest text that still fits MaxFrameSize.
	MaxTextLength = MaxFrameSize - TextOverhead
)

// EndSequence is the four byte frame terminator preceding the checksum.
var EndSequence = [4]byte{End0, End1, End2, End3}

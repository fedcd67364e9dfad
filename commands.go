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

import "sort"

// Controller opcodes
const (
	cmdHandshake     = 0x00
	cmdSetBaud       = 0x01
	cmdReadBaud      = 0x02
	cmdSetMemoryMode = 0x07
	cmdStopMode      = 0x08
	cmdUpdate        = 0x0A
	cmdGetRotation   = 0x0C
	cmdSetRotation   = 0x0D
	cmdLoadFont      = 0x0E
	cmdLoadPicture   = 0x0F
	cmdSetColor      = 0x10
	cmdGetColor      = 0x11
	cmdGetEnFont     = 0x1C
	cmdGetChFont     = 0x1D
	cmdSetEnFont     = 0x1E
	cmdSetChFont     = 0x1F
	cmdDrawPixel     = 0x20
	cmdDrawLine      = 0x22
	cmdFillRect      = 0x24
	cmdDrawRect      = 0x25
	cmdDrawCircle    = 0x26
	cmdFillCircle    = 0x27
	cmdDrawTriangle  = 0x28
	cmdFillTriangle  = 0x29
	cmdClear         = 0x2E
	cmdDrawString    = 0x30
	cmdDrawBitmap    = 0x70
)

// Command names a logical controller operation.
type Command string

// Commands understood by the controller
const (
	CmdHandshake     Command = "handshake"
	CmdSetBaud       Command = "set-baud"
	CmdReadBaud      Command = "read-baud"
	CmdSetMemoryMode Command = "set-memory-mode"
	CmdEnterStopMode Command = "enter-stop-mode"
	CmdUpdate        Command = "update"
	CmdGetRotation   Command = "get-rotation"
	CmdSetRotation   Command = "set-rotation"
	CmdLoadFont      Command = "load-font"
	CmdLoadPicture   Command = "load-pic"
	CmdSetColor      Command = "set-color"
	CmdGetColor      Command = "get-color"
	CmdGetEnFont     Command = "get-en-font"
	CmdGetChFont     Command = "get-ch-font"
	CmdSetEnFont     Command = "set-en-font"
	CmdSetChFont     Command = "set-ch-font"
	CmdDrawPixel     Command = "draw-pixel"
	CmdDrawLine      Command = "draw-line"
	CmdFillRect      Command = "fill-rect"
	CmdDrawRect      Command = "draw-rect"
	CmdDrawCircle    Command = "draw-circle"
	CmdFillCircle    Command = "fill-circle"
	CmdDrawTriangle  Command = "draw-triangle"
	CmdFillTriangle  Command = "fill-triangle"
	CmdClear         Command = "clear"
	CmdDrawString    Command = "draw-string"
	CmdDrawBitmap    Command = "draw-bitmap"
)

// PayloadShape describes how a command's arguments are laid out in a frame.
type PayloadShape int

const (
	// PayloadNone carries no payload
	PayloadNone PayloadShape = iota
	// PayloadByte carries one byte
	PayloadByte
	// PayloadBytePair carries two bytes (foreground, background)
	PayloadBytePair
	// PayloadUint32 carries one big-endian 32-bit value
	PayloadUint32
	// PayloadPoint carries x, y as 16-bit values
	PayloadPoint
	// PayloadCircle carries x, y, r as 16-bit values
	PayloadCircle
	// PayloadPointPair carries two coordinate pairs
	PayloadPointPair
	// PayloadPointTriple carries three coordinate pairs
	PayloadPointTriple
	// PayloadText carries x, y and variable-length text
	PayloadText
)

// Size returns the encoded payload size in bytes, or -1 for PayloadText.
func (s PayloadShape) Size() int {
	switch s {
	case PayloadNone:
		return 0
	case PayloadByte:
		return 1
	case PayloadBytePair:
		return 2
	case PayloadUint32, PayloadPoint:
		return 4
	case PayloadCircle:
		return 6
	case PayloadPointPair:
		return 8
	case PayloadPointTriple:
		return 12
	default:
		return -1
	}
}

// Args returns the number of integer arguments the shape takes. Text
// shapes take two coordinates plus the text itself.
func (s PayloadShape) Args() int {
	switch s {
	case PayloadNone:
		return 0
	case PayloadByte, PayloadUint32:
		return 1
	case PayloadBytePair, PayloadPoint, PayloadText:
		return 2
	case PayloadCircle:
		return 3
	case PayloadPointPair:
		return 4
	case PayloadPointTriple:
		return 6
	default:
		return -1
	}
}

func (s PayloadShape) String() string {
	switch s {
	case PayloadNone:
		return "none"
	case PayloadByte:
		return "byte"
	case PayloadBytePair:
		return "byte-pair"
	case PayloadUint32:
		return "uint32"
	case PayloadPoint:
		return "point"
	case PayloadCircle:
		return "circle"
	case PayloadPointPair:
		return "point-pair"
	case PayloadPointTriple:
		return "point-triple"
	case PayloadText:
		return "text"
	default:
		return "unknown"
	}
}

// CommandSpec binds a command to its opcode and payload shape.
type CommandSpec struct {
	Name   Command
	Opcode byte
	Shape  PayloadShape
}

var commandSpecs = map[Command]CommandSpec{
	CmdHandshake:     {CmdHandshake, cmdHandshake, PayloadNone},
	CmdSetBaud:       {CmdSetBaud, cmdSetBaud, PayloadUint32},
	CmdReadBaud:      {CmdReadBaud, cmdReadBaud, PayloadNone},
	CmdSetMemoryMode: {CmdSetMemoryMode, cmdSetMemoryMode, PayloadByte},
	CmdEnterStopMode: {CmdEnterStopMode, cmdStopMode, PayloadNone},
	CmdUpdate:        {CmdUpdate, cmdUpdate, PayloadNone},
	CmdGetRotation:   {CmdGetRotation, cmdGetRotation, PayloadNone},
	CmdSetRotation:   {CmdSetRotation, cmdSetRotation, PayloadByte},
	CmdLoadFont:      {CmdLoadFont, cmdLoadFont, PayloadNone},
	CmdLoadPicture:   {CmdLoadPicture, cmdLoadPicture, PayloadNone},
	CmdSetColor:      {CmdSetColor, cmdSetColor, PayloadBytePair},
	CmdGetColor:      {CmdGetColor, cmdGetColor, PayloadNone},
	CmdGetEnFont:     {CmdGetEnFont, cmdGetEnFont, PayloadNone},
	CmdGetChFont:     {CmdGetChFont, cmdGetChFont, PayloadNone},
	CmdSetEnFont:     {CmdSetEnFont, cmdSetEnFont, PayloadByte},
	CmdSetChFont:     {CmdSetChFont, cmdSetChFont, PayloadByte},
	CmdDrawPixel:     {CmdDrawPixel, cmdDrawPixel, PayloadPoint},
	CmdDrawLine:      {CmdDrawLine, cmdDrawLine, PayloadPointPair},
	CmdFillRect:      {CmdFillRect, cmdFillRect, PayloadPointPair},
	CmdDrawRect:      {CmdDrawRect, cmdDrawRect, PayloadPointPair},
	CmdDrawCircle:    {CmdDrawCircle, cmdDrawCircle, PayloadCircle},
	CmdFillCircle:    {CmdFillCircle, cmdFillCircle, PayloadCircle},
	CmdDrawTriangle:  {CmdDrawTriangle, cmdDrawTriangle, PayloadPointTriple},
	CmdFillTriangle:  {CmdFillTriangle, cmdFillTriangle, PayloadPointTriple},
	CmdClear:         {CmdClear, cmdClear, PayloadNone},
	CmdDrawString:    {CmdDrawString, cmdDrawString, PayloadText},
	CmdDrawBitmap:    {CmdDrawBitmap, cmdDrawBitmap, PayloadText},
}

// LookupCommand returns the spec registered for cmd.
func LookupCommand(cmd Command) (CommandSpec, bool) {
	spec, ok := commandSpecs[cmd]
	return spec, ok
}

// CommandByOpcode returns the first command (by name) using opcode.
func CommandByOpcode(opcode byte) (CommandSpec, bool) {
	for _, spec := range CommandSpecs() {
		if spec.Opcode == opcode {
			return spec, true
		}
	}
	return CommandSpec{}, false
}

// CommandSpecs returns every command spec ordered by opcode, then name.
func CommandSpecs() []CommandSpec {
	specs := make([]CommandSpec, 0, len(commandSpecs))
	for _, spec := range commandSpecs {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		if specs[i].Opcode != specs[j].Opcode {
			return specs[i].Opcode < specs[j].Opcode
		}
		return specs[i].Name < specs[j].Name
	})
	return specs
}

// Color is a display palette entry.
type Color byte

// Palette
const (
	ColorBlack    Color = 0x00
	ColorDarkGray Color = 0x01
	ColorGray     Color = 0x02
	ColorWhite    Color = 0x03
)

// FontSize selects a glyph height for the English or Chinese font.
type FontSize byte

// Font sizes
const (
	Font32 FontSize = 0x01
	Font48 FontSize = 0x02
	Font64 FontSize = 0x03
)

// MemoryMode selects where the controller reads fonts and bitmaps from.
type MemoryMode byte

// Memory modes
const (
	MemoryNAND MemoryMode = 0
	MemoryTF   MemoryMode = 1
)

// Rotation selects the screen orientation.
type Rotation byte

// Screen rotations
const (
	RotationNormal   Rotation = 0
	RotationInverted Rotation = 1
)

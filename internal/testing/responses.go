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

package testing

import (
	"strconv"

	"github.com/ZaparooProject/go-epaper"
)

// HandshakeResponse is what the panel answers to a handshake.
var HandshakeResponse = []byte("OK")

// response returns the ASCII answer to a query, or nil when cmd is not a
// query. The caller holds p.mu.
func (p *VirtualPanel) response(cmd epaper.Command) []byte {
	switch cmd {
	case epaper.CmdHandshake:
		return append([]byte(nil), HandshakeResponse...)
	case epaper.CmdReadBaud:
		return []byte(strconv.Itoa(p.baud))
	case epaper.CmdGetRotation:
		return digits(int(p.rotation))
	case epaper.CmdGetColor:
		return digits(int(p.fg), int(p.bg))
	case epaper.CmdGetEnFont:
		return digits(int(p.enFont))
	case epaper.CmdGetChFont:
		return digits(int(p.chFont))
	default:
		return nil
	}
}

func digits(values ...int) []byte {
	out := make([]byte, 0, len(values))
	for _, v := range values {
		out = strconv.AppendInt(out, int64(v), 10)
	}
	return out
}

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

package uart

import "sort"

// baudRates lists every speed the line can be set to. Rates outside the
// table leave the current speed in place.
var baudRates = map[int]struct{}{
	0: {}, 50: {}, 75: {}, 110: {}, 134: {}, 150: {}, 200: {}, 300: {},
	600: {}, 1200: {}, 1800: {}, 2400: {}, 4800: {}, 9600: {}, 19200: {},
	38400: {}, 57600: {}, 115200: {}, 3000000: {},
}

// SupportedBaud reports whether baud is in the speed table.
func SupportedBaud(baud int) bool {
	_, ok := baudRates[baud]
	return ok
}

// SupportedBauds returns the speed table in ascending order.
func SupportedBauds() []int {
	out := make([]int, 0, len(baudRates))
	for b := range baudRates {
		out = append(out, b)
	}
	sort.Ints(out)
	return out
}

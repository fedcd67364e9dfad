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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPins_ZeroValue(t *testing.T) {
	t.Parallel()

	var pins MemoryPins
	assert.Equal(t, Low, pins.Level(PinReset))

	require.NoError(t, pins.SetPin(PinReset, High))
	assert.Equal(t, High, pins.Level(PinReset))
	assert.Equal(t, Low, pins.Level(PinWakeup))
	assert.Equal(t, []PinEvent{{PinReset, High}}, pins.History())
}

func TestMemoryPins_History(t *testing.T) {
	t.Parallel()

	pins := NewMemoryPins()
	require.NoError(t, pins.SetPin(PinWakeup, High))
	require.NoError(t, pins.SetPin(PinWakeup, Low))

	history := pins.History()
	assert.Equal(t, []PinEvent{{PinWakeup, High}, {PinWakeup, Low}}, history)

	history[0].Level = Low
	assert.Equal(t, High, pins.History()[0].Level, "history is a copy")
}

func TestPinAndLevel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wakeup", PinWakeup.String())
	assert.Equal(t, "reset", PinReset.String())
	assert.Equal(t, "pin(7)", Pin(7).String())
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "low", Low.String())
}

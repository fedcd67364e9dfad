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

func TestCommandSpecs_Ordered(t *testing.T) {
	t.Parallel()

	specs := CommandSpecs()
	require.Len(t, specs, len(commandSpecs))
	for i := 1; i < len(specs); i++ {
		assert.LessOrEqual(t, specs[i-1].Opcode, specs[i].Opcode)
	}
	assert.Equal(t, CmdHandshake, specs[0].Name)
	assert.Equal(t, CmdDrawBitmap, specs[len(specs)-1].Name)
}

func TestCommandByOpcode(t *testing.T) {
	t.Parallel()

	spec, ok := CommandByOpcode(0x30)
	require.True(t, ok)
	assert.Equal(t, CmdDrawString, spec.Name)
	assert.Equal(t, PayloadText, spec.Shape)

	_, ok = CommandByOpcode(0xFF)
	assert.False(t, ok)
}

func TestOpcodesUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[byte]Command)
	for _, spec := range CommandSpecs() {
		if prev, dup := seen[spec.Opcode]; dup {
			t.Errorf("opcode 0x%02X shared by %s and %s", spec.Opcode, prev, spec.Name)
		}
		seen[spec.Opcode] = spec.Name
	}
}

func TestPayloadShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shape PayloadShape
		name  string
		size  int
		args  int
	}{
		{PayloadNone, "none", 0, 0},
		{PayloadByte, "byte", 1, 1},
		{PayloadBytePair, "byte-pair", 2, 2},
		{PayloadUint32, "uint32", 4, 1},
		{PayloadPoint, "point", 4, 2},
		{PayloadCircle, "circle", 6, 3},
		{PayloadPointPair, "point-pair", 8, 4},
		{PayloadPointTriple, "point-triple", 12, 6},
		{PayloadText, "text", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.name, tt.shape.String())
			assert.Equal(t, tt.size, tt.shape.Size())
			assert.Equal(t, tt.args, tt.shape.Args())
		})
	}
}

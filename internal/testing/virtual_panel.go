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

// Package testing provides a virtual e-paper controller for tests and
// the CLI's simulate mode.
package testing

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/ZaparooProject/go-epaper"
	"github.com/ZaparooProject/go-epaper/internal/frame"
)

var errPanelClosed = errors.New("virtual panel closed")

// Operation is one decoded drawing command.
type Operation struct {
	Command epaper.Command
	Text    string
	Args    []int
}

// VirtualPanel emulates the controller behind a serial line. Frames
// written to it are decoded and applied; queries queue an ASCII response
// for the next Read. It also accepts pin writes, so the same value can be
// handed to a Display as its PinController.
type VirtualPanel struct {
	responses [][]byte
	pending   []Operation
	shown     []Operation
	rejected  int
	updates   int
	baud      int
	mu        sync.Mutex
	memory    epaper.MemoryMode
	rotation  epaper.Rotation
	fg        epaper.Color
	bg        epaper.Color
	enFont    epaper.FontSize
	chFont    epaper.FontSize
	closed    bool
	asleep    bool
	wakeHigh  bool
	resetHigh bool
}

// NewVirtualPanel returns a panel in its power-on state.
func NewVirtualPanel() *VirtualPanel {
	p := &VirtualPanel{}
	p.powerOn()
	return p
}

// Factory returns a TransportFactory handing out p.
func (p *VirtualPanel) Factory() epaper.TransportFactory {
	return func(epaper.SerialConfig) (epaper.Transport, error) {
		p.mu.Lock()
		p.closed = false
		p.mu.Unlock()
		return p, nil
	}
}

func (p *VirtualPanel) powerOn() {
	p.baud = 115200
	p.memory = epaper.MemoryNAND
	p.rotation = epaper.RotationNormal
	p.fg = epaper.ColorBlack
	p.bg = epaper.ColorWhite
	p.enFont = epaper.Font32
	p.chFont = epaper.Font32
	p.pending = nil
	p.shown = nil
	p.responses = nil
	p.asleep = false
}

// Write decodes every frame in data.
func (p *VirtualPanel) Write(data []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, epaper.NewIOError("write", "virtual", errPanelClosed)
	}

	rest := data
	for len(rest) > 0 {
		f, n, err := frame.Decode(rest)
		if err != nil {
			p.rejected++
			break
		}
		p.apply(f)
		rest = rest[n:]
	}
	return len(data), nil
}

// Read returns the next queued response or an empty slice.
func (p *VirtualPanel) Read() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, epaper.NewIOError("read", "virtual", errPanelClosed)
	}
	if len(p.responses) == 0 {
		return []byte{}, nil
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

// Close closes the line. The panel state survives.
func (p *VirtualPanel) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// IsConnected returns true while the line is open
func (p *VirtualPanel) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

// Type returns TransportMock
func (*VirtualPanel) Type() epaper.TransportType {
	return epaper.TransportMock
}

// SetPin implements epaper.PinController. A rising edge on the wake-up
// line leaves stop mode; a rising edge on the reset line restores the
// power-on state.
func (p *VirtualPanel) SetPin(pin epaper.Pin, level epaper.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch pin {
	case epaper.PinWakeup:
		if level == epaper.High && !p.wakeHigh {
			p.asleep = false
		}
		p.wakeHigh = bool(level)
	case epaper.PinReset:
		if level == epaper.High && !p.resetHigh {
			p.powerOn()
		}
		p.resetHigh = bool(level)
	default:
		return fmt.Errorf("virtual panel has no %s pin", pin)
	}
	return nil
}

func (p *VirtualPanel) apply(f frame.Frame) {
	spec, ok := epaper.CommandByOpcode(f.Opcode)
	if !ok {
		p.rejected++
		return
	}
	if p.asleep {
		return
	}

	if spec.Shape == epaper.PayloadText {
		x, y, text, ok := f.Text()
		if !ok {
			p.rejected++
			return
		}
		p.pending = append(p.pending, Operation{
			Command: spec.Name,
			Args:    []int{int(x), int(y)},
			Text:    string(text),
		})
		return
	}

	args, ok := decodeArgs(spec.Shape, f.Payload)
	if !ok {
		p.rejected++
		return
	}
	p.handle(spec.Name, args)
}

func (p *VirtualPanel) handle(cmd epaper.Command, args []int) {
	if resp := p.response(cmd); resp != nil {
		p.responses = append(p.responses, resp)
		return
	}

	switch cmd {
	case epaper.CmdSetBaud:
		p.baud = args[0]
	case epaper.CmdSetMemoryMode:
		p.memory = epaper.MemoryMode(args[0])
	case epaper.CmdEnterStopMode:
		p.asleep = true
	case epaper.CmdUpdate:
		p.shown = append([]Operation(nil), p.pending...)
		p.updates++
	case epaper.CmdSetRotation:
		p.rotation = epaper.Rotation(args[0])
	case epaper.CmdSetColor:
		p.fg, p.bg = epaper.Color(args[0]), epaper.Color(args[1])
	case epaper.CmdSetEnFont:
		p.enFont = epaper.FontSize(args[0])
	case epaper.CmdSetChFont:
		p.chFont = epaper.FontSize(args[0])
	case epaper.CmdClear:
		p.pending = nil
	case epaper.CmdLoadFont, epaper.CmdLoadPicture:
	default:
		p.pending = append(p.pending, Operation{Command: cmd, Args: args})
	}
}

func decodeArgs(shape epaper.PayloadShape, payload []byte) ([]int, bool) {
	if len(payload) != shape.Size() {
		return nil, false
	}
	switch shape {
	case epaper.PayloadNone:
		return nil, true
	case epaper.PayloadByte, epaper.PayloadBytePair:
		args := make([]int, len(payload))
		for i, b := range payload {
			args[i] = int(b)
		}
		return args, true
	case epaper.PayloadUint32:
		return []int{int(binary.BigEndian.Uint32(payload))}, true
	default:
		f := frame.Frame{Payload: payload}
		args := make([]int, shape.Args())
		for i := range args {
			v, _ := f.Uint16At(i)
			args[i] = int(v)
		}
		return args, true
	}
}

// Pending returns operations drawn since the last clear.
func (p *VirtualPanel) Pending() []Operation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Operation(nil), p.pending...)
}

// Shown returns the operations visible after the last update.
func (p *VirtualPanel) Shown() []Operation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Operation(nil), p.shown...)
}

// Updates returns how many update frames were applied.
func (p *VirtualPanel) Updates() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updates
}

// Rejected returns how many frames failed to decode or were unknown.
func (p *VirtualPanel) Rejected() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rejected
}

// Asleep reports whether the panel is in stop mode.
func (p *VirtualPanel) Asleep() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.asleep
}

// Colors returns the foreground and background colors.
func (p *VirtualPanel) Colors() (fg, bg epaper.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fg, p.bg
}

// Baud returns the rate the panel was last told to use.
func (p *VirtualPanel) Baud() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.baud
}

// MemoryMode returns the selected storage.
func (p *VirtualPanel) MemoryMode() epaper.MemoryMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.memory
}

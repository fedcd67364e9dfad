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
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	waits []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.waits = append(s.waits, d)
}

type failingPins struct {
	err  error
	fail Pin
}

func (f failingPins) SetPin(pin Pin, _ Level) error {
	if pin == f.fail {
		return f.err
	}
	return nil
}

func newTestDisplay(t *testing.T, opts ...Option) (*Display, *MockTransport, *MemoryPins, *sleepRecorder) {
	t.Helper()

	mock := NewMockTransport()
	pins := NewMemoryPins()
	rec := &sleepRecorder{}
	all := append([]Option{
		WithLogger(zerolog.Nop()),
		WithPinController(pins),
		withSleep(rec.sleep),
	}, opts...)

	display, err := Connect(DefaultSerialConfig("/dev/ttyTEST"), MockFactory(mock), all...)
	require.NoError(t, err)
	return display, mock, pins, rec
}

func TestDisplay_Init(t *testing.T) {
	t.Parallel()

	display, mock, pins, _ := newTestDisplay(t)

	assert.Equal(t, StateOpen, display.State())
	assert.Same(t, mock, display.Transport())
	assert.Equal(t, []PinEvent{{PinWakeup, Low}, {PinReset, Low}}, pins.History())
	assert.Empty(t, mock.Writes(), "init must not send frames")

	err := display.Init()
	require.ErrorIs(t, err, ErrState)
}

func TestDisplay_InitFailures(t *testing.T) {
	t.Parallel()

	t.Run("nil factory", func(t *testing.T) {
		t.Parallel()
		display, err := New(DefaultSerialConfig("/dev/null"), nil, WithLogger(zerolog.Nop()))
		require.NoError(t, err)
		require.Error(t, display.Init())
		assert.Equal(t, StateUninitialized, display.State())
	})

	t.Run("factory error", func(t *testing.T) {
		t.Parallel()
		openErr := NewIOError("open", "/dev/missing", syscall.ENOENT)
		factory := func(SerialConfig) (Transport, error) { return nil, openErr }

		_, err := Connect(DefaultSerialConfig("/dev/missing"), factory, WithLogger(zerolog.Nop()))
		require.ErrorIs(t, err, ErrIO)
		require.ErrorIs(t, err, syscall.ENOENT)
	})

	t.Run("pin failure closes transport", func(t *testing.T) {
		t.Parallel()
		mock := NewMockTransport()
		pinErr := errors.New("gpio busy")

		_, err := Connect(DefaultSerialConfig("/dev/ttyTEST"), MockFactory(mock),
			WithLogger(zerolog.Nop()),
			WithPinController(failingPins{fail: PinReset, err: pinErr}))
		require.ErrorIs(t, err, pinErr)
		assert.False(t, mock.IsConnected())
	})

	t.Run("nil pin controller", func(t *testing.T) {
		t.Parallel()
		_, err := New(DefaultSerialConfig("/dev/ttyTEST"), nil, WithPinController(nil))
		require.Error(t, err)
	})
}

func TestDisplay_CommandsRequireOpenSession(t *testing.T) {
	t.Parallel()

	display, err := New(DefaultSerialConfig("/dev/ttyTEST"), MockFactory(NewMockTransport()),
		WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	_, err = display.Clear()
	require.ErrorIs(t, err, ErrState)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StateUninitialized, stateErr.State)
	assert.Equal(t, string(CmdClear), stateErr.Op)

	_, err = display.Handshake()
	require.ErrorIs(t, err, ErrState)
	require.ErrorIs(t, display.Reset(), ErrState)
	require.ErrorIs(t, display.Wakeup(), ErrState)
}

func TestDisplay_Close(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)

	require.NoError(t, display.Close())
	assert.Equal(t, StateClosed, display.State())
	assert.False(t, mock.IsConnected())

	require.NoError(t, display.Close(), "second close is a no-op")

	_, err := display.DrawString("late", 0, 0)
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StateClosed, stateErr.State)
	assert.Empty(t, mock.Writes())

	require.ErrorIs(t, display.Init(), ErrState)
}

func TestDisplay_CloseError(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)
	mock.SetCloseError(syscall.EBADF)

	require.ErrorIs(t, display.Close(), syscall.EBADF)
	assert.Equal(t, StateClosed, display.State())
}

func TestDisplay_Handshake(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)
	mock.QueueResponse([]byte("OK"))

	resp, err := display.Handshake()
	require.NoError(t, err)
	assert.Equal(t, []byte("OK"), resp)
	assert.Equal(t, []byte("OK"), display.LastResponse())
	assert.Equal(t, mustHex(t, "A5 00 09 00 CC 33 C3 3C AC"), mock.LastWrite())
	assert.Equal(t, 1, mock.ReadCount())
}

func TestDisplay_HandshakeSilentController(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)

	resp, err := display.Handshake()
	require.NoError(t, err)
	assert.Empty(t, resp)
	assert.Equal(t, StateOpen, display.State())
	assert.Len(t, mock.Writes(), 1)
}

func TestDisplay_HandshakeReadError(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)
	mock.SetReadError(NewIOError("read", "/dev/ttyTEST", syscall.EIO))

	_, err := display.Handshake()
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, syscall.EIO)
}

func TestDisplay_Query(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)
	mock.QueueResponse([]byte("115200"))

	resp, err := display.Query(CmdReadBaud)
	require.NoError(t, err)
	assert.Equal(t, []byte("115200"), resp)
	assert.Equal(t, byte(0x02), mock.LastWrite()[3])

	_, err = display.Query(CmdDrawPixel)
	require.ErrorIs(t, err, ErrPayloadShape)

	_, err = display.Query("volume")
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDisplay_Operations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		run  func(d *Display) (int, error)
		name string
		want string
	}{
		{name: "set baud", run: func(d *Display) (int, error) { return d.SetBaud(115200) },
			want: "A5 00 0D 01 00 01 C2 00 CC 33 C3 3C 6A"},
		{name: "draw pixel", run: func(d *Display) (int, error) { return d.DrawPixel(10, 20) },
			want: "A5 00 0D 20 00 0A 00 14 CC 33 C3 3C 96"},
		{name: "set color", run: func(d *Display) (int, error) { return d.SetColor(ColorBlack, ColorWhite) },
			want: "A5 00 0B 10 00 03 CC 33 C3 3C BD"},
		{name: "set memory mode", run: func(d *Display) (int, error) { return d.SetMemoryMode(MemoryTF) },
			want: "A5 00 0A 07 01 CC 33 C3 3C A9"},
		{name: "clear", run: (*Display).Clear, want: "A5 00 09 2E CC 33 C3 3C 82"},
		{name: "update", run: (*Display).Update, want: "A5 00 09 0A CC 33 C3 3C A6"},
		{name: "draw circle", run: func(d *Display) (int, error) { return d.DrawCircle(100, 100, 50) },
			want: "A5 00 0F 26 00 64 00 64 00 32 CC 33 C3 3C BE"},
		{name: "draw line", run: func(d *Display) (int, error) { return d.DrawLine(0, 0, 799, 599) },
			want: "A5 00 11 22 00 00 00 00 03 1F 02 57 CC 33 C3 3C DF"},
		{name: "draw triangle", run: func(d *Display) (int, error) { return d.DrawTriangle(0, 0, 10, 0, 5, 5) },
			want: "A5 00 15 28 00 00 00 00 00 0A 00 00 00 05 00 05 CC 33 C3 3C 92"},
		{name: "draw string", run: func(d *Display) (int, error) { return d.DrawString("Hi", 0, 50) },
			want: "A5 00 10 30 00 00 00 32 48 69 00 CC 33 C3 3C 96"},
		{name: "draw char", run: func(d *Display) (int, error) { return d.DrawChar('A', 1, 2) },
			want: "A5 00 0F 30 00 01 00 02 41 00 CC 33 C3 3C D8"},
		{name: "draw bitmap", run: func(d *Display) (int, error) { return d.DrawBitmap("PIC4.BMP", 0, 0) },
			want: "A5 00 16 70 00 00 00 00 50 49 43 34 2E 42 4D 50 00 CC 33 C3 3C DC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			display, mock, _, _ := newTestDisplay(t)
			want := mustHex(t, tt.want)

			n, err := tt.run(display)
			require.NoError(t, err)
			assert.Equal(t, len(want), n)
			require.Len(t, mock.Writes(), 1, "each command is exactly one write")
			assert.Equal(t, want, mock.LastWrite())
			assert.Zero(t, mock.ReadCount())
		})
	}
}

func TestDisplay_OpcodesPerOperation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		run    func(d *Display) (int, error)
		name   string
		opcode byte
	}{
		{name: "read baud", run: (*Display).ReadBaud, opcode: 0x02},
		{name: "stop mode", run: (*Display).EnterStopMode, opcode: 0x08},
		{name: "rotation", run: func(d *Display) (int, error) { return d.SetRotation(RotationInverted) }, opcode: 0x0D},
		{name: "load font", run: (*Display).LoadFont, opcode: 0x0E},
		{name: "load picture", run: (*Display).LoadPicture, opcode: 0x0F},
		{name: "english font", run: func(d *Display) (int, error) { return d.SetEnglishFont(Font48) }, opcode: 0x1E},
		{name: "chinese font", run: func(d *Display) (int, error) { return d.SetChineseFont(Font64) }, opcode: 0x1F},
		{name: "fill rect", run: func(d *Display) (int, error) { return d.FillRect(1, 2, 3, 4) }, opcode: 0x24},
		{name: "draw rect", run: func(d *Display) (int, error) { return d.DrawRect(1, 2, 3, 4) }, opcode: 0x25},
		{name: "fill circle", run: func(d *Display) (int, error) { return d.FillCircle(5, 5, 2) }, opcode: 0x27},
		{name: "fill triangle", run: func(d *Display) (int, error) { return d.FillTriangle(0, 0, 1, 1, 2, 0) }, opcode: 0x29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			display, mock, _, _ := newTestDisplay(t)
			_, err := tt.run(display)
			require.NoError(t, err)

			raw := mock.LastWrite()
			require.NotNil(t, raw)
			assert.Equal(t, tt.opcode, raw[3])
			assert.Equal(t, len(raw), int(raw[1])<<8|int(raw[2]))
		})
	}
}

func TestDisplay_SetBaudWaits(t *testing.T) {
	t.Parallel()

	display, mock, _, rec := newTestDisplay(t)

	_, err := display.SetBaud(9600)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{baudSwitchWait}, rec.waits)
	assert.Equal(t, 115200, display.Config().BaudRate, "local line keeps its speed")
	assert.Len(t, mock.Writes(), 1)
}

func TestDisplay_ShortWrite(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)
	mock.SetShortWrite(3)

	n, err := display.Clear()
	require.NoError(t, err)
	assert.Equal(t, 6, n, "short count is reported, not retried")
	assert.Len(t, mock.Writes(), 1)
}

func TestDisplay_WriteError(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)
	mock.SetWriteError(NewIOError("write", "/dev/ttyTEST", syscall.EIO))

	_, err := display.Update()
	require.ErrorIs(t, err, ErrIO)
	assert.True(t, IsIOError(err))
	assert.Equal(t, StateOpen, display.State())
}

func TestDisplay_EncodeErrorSendsNothing(t *testing.T) {
	t.Parallel()

	display, mock, _, _ := newTestDisplay(t)

	_, err := display.Send(CmdDrawPixel, 1)
	require.ErrorIs(t, err, ErrPayloadShape)

	_, err = display.DrawString(string(make([]byte, 600)), 0, 0)
	require.NoError(t, err, "text ends at the first zero byte")

	long := make([]byte, 600)
	for i := range long {
		long[i] = 'x'
	}
	_, err = display.DrawString(string(long), 0, 0)
	require.ErrorIs(t, err, ErrFrameTooLarge)
	assert.Len(t, mock.Writes(), 1)
}

func TestDisplay_PinPulses(t *testing.T) {
	t.Parallel()

	t.Run("reset", func(t *testing.T) {
		t.Parallel()
		display, mock, pins, rec := newTestDisplay(t)

		require.NoError(t, display.Reset())
		assert.Equal(t, []PinEvent{
			{PinWakeup, Low}, {PinReset, Low},
			{PinReset, Low}, {PinReset, High}, {PinReset, Low},
		}, pins.History())
		assert.Equal(t, []time.Duration{pinPulseSettle, pinPulseHold, resetRecovery}, rec.waits)
		assert.Empty(t, mock.Writes())
	})

	t.Run("wakeup", func(t *testing.T) {
		t.Parallel()
		display, _, pins, rec := newTestDisplay(t)

		require.NoError(t, display.Wakeup())
		history := pins.History()
		assert.Equal(t, []PinEvent{{PinWakeup, Low}, {PinWakeup, High}, {PinWakeup, Low}}, history[2:])
		assert.Equal(t, Low, pins.Level(PinWakeup))
		assert.Len(t, rec.waits, 3)
	})
}

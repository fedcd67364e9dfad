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

//go:build linux

package uart

import (
	"fmt"
	"time"

	"go.bug.st/serial"
	"golang.org/x/sys/unix"
)

var defaultOpener Opener = OpenTermios

var termiosSpeeds = map[int]uint32{
	0:       unix.B0,
	50:      unix.B50,
	75:      unix.B75,
	110:     unix.B110,
	134:     unix.B134,
	150:     unix.B150,
	200:     unix.B200,
	300:     unix.B300,
	600:     unix.B600,
	1200:    unix.B1200,
	1800:    unix.B1800,
	2400:    unix.B2400,
	4800:    unix.B4800,
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	3000000: unix.B3000000,
}

type termiosPort struct {
	fd int
}

// OpenTermios opens path with termios ioctls. Unlike OpenSerial the line
// settings are left as the device had them until SetLine is called.
func OpenTermios(path string) (Port, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &termiosPort{fd: fd}, nil
}

func (p *termiosPort) update(apply func(t *unix.Termios) error) error {
	t, err := unix.IoctlGetTermios(p.fd, unix.TCGETS)
	if err != nil {
		return err
	}
	if err := apply(t); err != nil {
		return err
	}
	return unix.IoctlSetTermios(p.fd, unix.TCSETS, t)
}

func (p *termiosPort) SetLine(mode Mode) error {
	return p.update(func(t *unix.Termios) error {
		if !mode.KeepSpeed {
			speed, ok := termiosSpeeds[mode.BaudRate]
			if !ok {
				return fmt.Errorf("no termios speed for %d baud", mode.BaudRate)
			}
			t.Cflag &^= unix.CBAUD
			t.Cflag |= speed
			t.Ispeed = speed
			t.Ospeed = speed
		}

		t.Cflag &^= unix.CSIZE
		switch mode.DataBits {
		case 7:
			t.Cflag |= unix.CS7
		case 8:
			t.Cflag |= unix.CS8
		default:
			return fmt.Errorf("data bits %d", mode.DataBits)
		}

		switch mode.Parity {
		case serial.OddParity:
			t.Cflag |= unix.PARENB | unix.PARODD
			t.Iflag |= unix.INPCK
		case serial.EvenParity:
			t.Cflag |= unix.PARENB
			t.Cflag &^= unix.PARODD
			t.Iflag |= unix.INPCK
		default:
			t.Cflag &^= unix.PARENB
			t.Iflag &^= unix.INPCK
		}

		if mode.StopBits == serial.TwoStopBits {
			t.Cflag |= unix.CSTOPB
		} else {
			t.Cflag &^= unix.CSTOPB
		}
		t.Cflag |= unix.CLOCAL | unix.CREAD
		return nil
	})
}

// SetReadTimeout sets VTIME in tenths of a second with VMIN 0, so a read
// returns as soon as any byte arrives or the timeout elapses.
func (p *termiosPort) SetReadTimeout(timeout time.Duration) error {
	return p.update(func(t *unix.Termios) error {
		t.Cc[unix.VTIME] = vtime(timeout)
		t.Cc[unix.VMIN] = 0
		return nil
	})
}

func vtime(timeout time.Duration) uint8 {
	tenths := timeout / (100 * time.Millisecond)
	if tenths > 255 {
		tenths = 255
	}
	if tenths < 0 {
		tenths = 0
	}
	return uint8(tenths)
}

func (p *termiosPort) ResetInputBuffer() error {
	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// MakeRaw turns off canonical input, echo, signals and output newline
// translation.
func (p *termiosPort) MakeRaw() error {
	return p.update(func(t *unix.Termios) error {
		t.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHOK | unix.ECHONL |
			unix.ECHOCTL | unix.ECHOPRT | unix.ECHOKE | unix.ISIG
		t.Oflag &^= unix.ONLCR | unix.OCRNL
		return nil
	})
}

func (p *termiosPort) Read(b []byte) (int, error) {
	for {
		n, err := unix.Read(p.fd, b)
		if err == unix.EINTR {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}

func (p *termiosPort) Write(b []byte) (int, error) {
	n, err := unix.Write(p.fd, b)
	if n < 0 {
		n = 0
	}
	return n, err
}

func (p *termiosPort) Close() error {
	return unix.Close(p.fd)
}

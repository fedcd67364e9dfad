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

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/go-epaper"
	"github.com/ZaparooProject/go-epaper/detection"
)

type runContext struct {
	out     io.Writer
	factory epaper.TransportFactory
	display *epaper.Display
	opts    []epaper.Option
	serial  epaper.SerialConfig
	ports   detection.Options
	pause   time.Duration
	probe   bool
}

type action struct {
	run     func(rc *runContext, args []string) error
	usage   string
	args    int
	session bool
}

var actions = map[string]action{
	"ports":         {run: listPorts, usage: "list serial ports (-probe sends a handshake)"},
	"handshake":     {run: handshake, usage: "send a handshake and print the response", session: true},
	"query":         {run: query, args: 1, usage: "<command> send a getter and print the response", session: true},
	"clear":         {run: sendOnly(epaper.CmdClear), usage: "clear the frame buffer", session: true},
	"update":        {run: sendOnly(epaper.CmdUpdate), usage: "show the frame buffer", session: true},
	"stop":          {run: sendOnly(epaper.CmdEnterStopMode), usage: "enter stop mode", session: true},
	"load-font":     {run: sendOnly(epaper.CmdLoadFont), usage: "copy fonts from TF card to flash", session: true},
	"load-pic":      {run: sendOnly(epaper.CmdLoadPicture), usage: "copy bitmaps from TF card to flash", session: true},
	"text":          {run: text, args: 3, usage: "<x> <y> <text> draw a string", session: true},
	"char":          {run: char, args: 3, usage: "<x> <y> <c> draw one character", session: true},
	"bitmap":        {run: bitmap, args: 3, usage: "<x> <y> <name> draw a stored bitmap", session: true},
	"color":         {run: color, args: 2, usage: "<fg> <bg> set colors (black, dark-gray, gray, white)", session: true},
	"en-font":       {run: font(epaper.CmdSetEnFont), args: 1, usage: "<32|48|64> set ASCII font size", session: true},
	"ch-font":       {run: font(epaper.CmdSetChFont), args: 1, usage: "<32|48|64> set GBK font size", session: true},
	"rotate":        {run: rotate, args: 1, usage: "<normal|inverted> set orientation", session: true},
	"memory":        {run: memory, args: 1, usage: "<nand|tf> select storage", session: true},
	"baud":          {run: baud, args: 1, usage: "<rate> switch the controller's baud rate", session: true},
	"pixel":         {run: shape(epaper.CmdDrawPixel), args: 2, usage: "<x> <y>", session: true},
	"line":          {run: shape(epaper.CmdDrawLine), args: 4, usage: "<x0> <y0> <x1> <y1>", session: true},
	"rect":          {run: shape(epaper.CmdDrawRect), args: 4, usage: "<x0> <y0> <x1> <y1>", session: true},
	"fill-rect":     {run: shape(epaper.CmdFillRect), args: 4, usage: "<x0> <y0> <x1> <y1>", session: true},
	"circle":        {run: shape(epaper.CmdDrawCircle), args: 3, usage: "<x> <y> <r>", session: true},
	"fill-circle":   {run: shape(epaper.CmdFillCircle), args: 3, usage: "<x> <y> <r>", session: true},
	"triangle":      {run: shape(epaper.CmdDrawTriangle), args: 6, usage: "<x0> <y0> <x1> <y1> <x2> <y2>", session: true},
	"fill-triangle": {run: shape(epaper.CmdFillTriangle), args: 6, usage: "<x0> <y0> <x1> <y1> <x2> <y2>", session: true},
	"wake":          {run: wake, usage: "pulse the wake-up line", session: true},
	"reset":         {run: reset, usage: "pulse the reset line", session: true},
	"demo":          {run: demo, usage: "draw the shape, text and bitmap demo screens", session: true},
}

func listPorts(rc *runContext, _ []string) error {
	ports, err := detection.ListPorts(rc.ports)
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		_, _ = fmt.Fprintln(rc.out, "no serial ports found")
		return nil
	}

	if !rc.probe {
		for _, p := range ports {
			_, _ = fmt.Fprintln(rc.out, describePort(p))
		}
		return nil
	}

	opts := append([]epaper.Option{epaper.WithLogger(log.Logger)}, rc.opts...)
	for _, r := range detection.Probe(ports, rc.serial, rc.factory, opts...) {
		status := "no response"
		switch {
		case r.Err != nil:
			status = "error: " + r.Err.Error()
		case r.Responded():
			status = fmt.Sprintf("responded %q", r.Response)
		}
		_, _ = fmt.Fprintf(rc.out, "%s  %s\n", describePort(r.Port), status)
	}
	return nil
}

func describePort(p detection.Port) string {
	parts := []string{p.Path}
	if p.VIDPID != "" {
		parts = append(parts, p.VIDPID)
	}
	if p.Product != "" {
		parts = append(parts, p.Product)
	}
	return strings.Join(parts, "  ")
}

func printResponse(out io.Writer, resp []byte) {
	if len(resp) == 0 {
		_, _ = fmt.Fprintln(out, "no response")
		return
	}
	_, _ = fmt.Fprintf(out, "%q (%s)\n", resp, hex.EncodeToString(resp))
}

func handshake(rc *runContext, _ []string) error {
	resp, err := rc.display.Handshake()
	if err != nil {
		return err
	}
	printResponse(rc.out, resp)
	return nil
}

func query(rc *runContext, args []string) error {
	resp, err := rc.display.Query(epaper.Command(args[0]))
	if err != nil {
		return err
	}
	printResponse(rc.out, resp)
	return nil
}

func sendOnly(cmd epaper.Command) func(*runContext, []string) error {
	return func(rc *runContext, _ []string) error {
		_, err := rc.display.Send(cmd)
		return err
	}
}

func shape(cmd epaper.Command) func(*runContext, []string) error {
	return func(rc *runContext, args []string) error {
		values, err := ints(args)
		if err != nil {
			return err
		}
		_, err = rc.display.Send(cmd, values...)
		return err
	}
}

func ints(args []string) ([]int, error) {
	values := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		values[i] = v
	}
	return values, nil
}

func point(args []string) (x, y int, err error) {
	values, err := ints(args[:2])
	if err != nil {
		return 0, 0, err
	}
	return values[0], values[1], nil
}

func text(rc *runContext, args []string) error {
	x, y, err := point(args)
	if err != nil {
		return err
	}
	_, err = rc.display.DrawString(args[2], x, y)
	return err
}

func char(rc *runContext, args []string) error {
	x, y, err := point(args)
	if err != nil {
		return err
	}
	if len(args[2]) != 1 {
		return fmt.Errorf("expected a single byte, got %q", args[2])
	}
	_, err = rc.display.DrawChar(args[2][0], x, y)
	return err
}

func bitmap(rc *runContext, args []string) error {
	x, y, err := point(args)
	if err != nil {
		return err
	}
	_, err = rc.display.DrawBitmap(args[2], x, y)
	return err
}

var colorNames = map[string]epaper.Color{
	"black":     epaper.ColorBlack,
	"dark-gray": epaper.ColorDarkGray,
	"gray":      epaper.ColorGray,
	"white":     epaper.ColorWhite,
}

func parseColor(s string) (epaper.Color, error) {
	if c, ok := colorNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

func color(rc *runContext, args []string) error {
	fg, err := parseColor(args[0])
	if err != nil {
		return err
	}
	bg, err := parseColor(args[1])
	if err != nil {
		return err
	}
	_, err = rc.display.SetColor(fg, bg)
	return err
}

func font(cmd epaper.Command) func(*runContext, []string) error {
	return func(rc *runContext, args []string) error {
		var size epaper.FontSize
		switch args[0] {
		case "32":
			size = epaper.Font32
		case "48":
			size = epaper.Font48
		case "64":
			size = epaper.Font64
		default:
			return fmt.Errorf("unknown font size %q", args[0])
		}
		_, err := rc.display.Send(cmd, int(size))
		return err
	}
}

func rotate(rc *runContext, args []string) error {
	var r epaper.Rotation
	switch strings.ToLower(args[0]) {
	case "normal":
		r = epaper.RotationNormal
	case "inverted":
		r = epaper.RotationInverted
	default:
		return fmt.Errorf("unknown rotation %q", args[0])
	}
	_, err := rc.display.SetRotation(r)
	return err
}

func memory(rc *runContext, args []string) error {
	var m epaper.MemoryMode
	switch strings.ToLower(args[0]) {
	case "nand":
		m = epaper.MemoryNAND
	case "tf":
		m = epaper.MemoryTF
	default:
		return fmt.Errorf("unknown memory mode %q", args[0])
	}
	_, err := rc.display.SetMemoryMode(m)
	return err
}

func baud(rc *runContext, args []string) error {
	rate, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid baud rate %q", args[0])
	}
	if _, err := rc.display.SetBaud(rate); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(rc.out, "controller switched to %d baud; reconnect with -baud %d\n", rate, rate)
	return nil
}

func wake(rc *runContext, _ []string) error {
	return rc.display.Wakeup()
}

func reset(rc *runContext, _ []string) error {
	return rc.display.Reset()
}

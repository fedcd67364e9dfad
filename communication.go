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

// SetBaud asks the controller to switch to baud and waits for it to do so.
// The local serial line keeps its speed; reopen the session with the new
// rate afterwards.
func (d *Display) SetBaud(baud int) (int, error) {
	n, err := d.send(CmdSetBaud, baud)
	if err != nil {
		return n, err
	}
	d.sleep(baudSwitchWait)
	return n, nil
}

// ReadBaud sends the read-baud request. The controller answers in ASCII;
// use Query(CmdReadBaud) to capture the answer.
func (d *Display) ReadBaud() (int, error) {
	return d.send(CmdReadBaud)
}

// SetMemoryMode selects NAND flash or the TF card as storage.
func (d *Display) SetMemoryMode(mode MemoryMode) (int, error) {
	return d.send(CmdSetMemoryMode, int(mode))
}

// EnterStopMode puts the controller to sleep until the wake-up line pulses.
func (d *Display) EnterStopMode() (int, error) {
	return d.send(CmdEnterStopMode)
}

// Update flushes the controller's frame buffer to the panel.
func (d *Display) Update() (int, error) {
	return d.send(CmdUpdate)
}

// SetRotation sets normal or upside down orientation.
func (d *Display) SetRotation(rotation Rotation) (int, error) {
	return d.send(CmdSetRotation, int(rotation))
}

// LoadFont copies fonts from the TF card to NAND flash.
func (d *Display) LoadFont() (int, error) {
	return d.send(CmdLoadFont)
}

// LoadPicture copies bitmaps from the TF card to NAND flash.
func (d *Display) LoadPicture() (int, error) {
	return d.send(CmdLoadPicture)
}

// SetColor sets the foreground and background colors.
func (d *Display) SetColor(foreground, background Color) (int, error) {
	return d.send(CmdSetColor, int(foreground), int(background))
}

// SetEnglishFont sets the glyph size for ASCII text.
func (d *Display) SetEnglishFont(size FontSize) (int, error) {
	return d.send(CmdSetEnFont, int(size))
}

// SetChineseFont sets the glyph size for GBK text.
func (d *Display) SetChineseFont(size FontSize) (int, error) {
	return d.send(CmdSetChFont, int(size))
}

// DrawPixel sets one pixel in the foreground color.
func (d *Display) DrawPixel(x, y int) (int, error) {
	return d.send(CmdDrawPixel, x, y)
}

// DrawLine draws a line from (x0, y0) to (x1, y1).
func (d *Display) DrawLine(x0, y0, x1, y1 int) (int, error) {
	return d.send(CmdDrawLine, x0, y0, x1, y1)
}

// DrawRect outlines the rectangle with corners (x0, y0) and (x1, y1).
func (d *Display) DrawRect(x0, y0, x1, y1 int) (int, error) {
	return d.send(CmdDrawRect, x0, y0, x1, y1)
}

// FillRect fills the rectangle with corners (x0, y0) and (x1, y1).
func (d *Display) FillRect(x0, y0, x1, y1 int) (int, error) {
	return d.send(CmdFillRect, x0, y0, x1, y1)
}

// DrawCircle outlines a circle of radius r centered on (x, y).
func (d *Display) DrawCircle(x, y, r int) (int, error) {
	return d.send(CmdDrawCircle, x, y, r)
}

// FillCircle fills a circle of radius r centered on (x, y).
func (d *Display) FillCircle(x, y, r int) (int, error) {
	return d.send(CmdFillCircle, x, y, r)
}

// DrawTriangle outlines the triangle through three points.
func (d *Display) DrawTriangle(x0, y0, x1, y1, x2, y2 int) (int, error) {
	return d.send(CmdDrawTriangle, x0, y0, x1, y1, x2, y2)
}

// FillTriangle fills the triangle through three points.
func (d *Display) FillTriangle(x0, y0, x1, y1, x2, y2 int) (int, error) {
	return d.send(CmdFillTriangle, x0, y0, x1, y1, x2, y2)
}

// Clear fills the screen with the background color.
func (d *Display) Clear() (int, error) {
	return d.send(CmdClear)
}

// DrawString renders text at (x, y) using the current fonts. Text is sent
// as raw bytes, so GBK or UTF-8 must match what the controller expects.
func (d *Display) DrawString(text string, x, y int) (int, error) {
	return d.sendText(CmdDrawString, x, y, text)
}

// DrawChar renders a single character at (x, y).
func (d *Display) DrawChar(ch byte, x, y int) (int, error) {
	return d.sendText(CmdDrawString, x, y, string([]byte{ch}))
}

// DrawBitmap shows the stored bitmap named name at (x, y). The controller
// accepts names of up to 11 characters.
func (d *Display) DrawBitmap(name string, x, y int) (int, error) {
	return d.sendText(CmdDrawBitmap, x, y, name)
}

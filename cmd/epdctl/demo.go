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
	"time"

	"github.com/ZaparooProject/go-epaper"
)

// demo draws the controller's sample screens: a pixel grid, line fans,
// shaded rectangles, circles, triangles, three text sizes and a stored
// bitmap.
func demo(rc *runContext, _ []string) error {
	d := rc.display
	screens := []func() error{
		func() error {
			for y := 0; y < 600; y += 50 {
				for x := 0; x < 800; x += 50 {
					for _, p := range [][2]int{{x, y}, {x, y + 1}, {x + 1, y}, {x + 1, y + 1}} {
						if _, err := d.DrawPixel(p[0], p[1]); err != nil {
							return err
						}
					}
				}
			}
			return nil
		},
		func() error {
			for x := 0; x < 800; x += 100 {
				if _, err := d.DrawLine(0, 0, x, 599); err != nil {
					return err
				}
				if _, err := d.DrawLine(799, 0, x, 599); err != nil {
					return err
				}
			}
			return nil
		},
		func() error {
			shades := []epaper.Color{epaper.ColorBlack, epaper.ColorDarkGray, epaper.ColorGray}
			for i, c := range shades {
				if _, err := d.SetColor(c, epaper.ColorWhite); err != nil {
					return err
				}
				if _, err := d.FillRect(10+i*100, 10, 100+i*100, 100); err != nil {
					return err
				}
			}
			_, err := d.SetColor(epaper.ColorBlack, epaper.ColorWhite)
			return err
		},
		func() error {
			for r := 0; r < 300; r += 40 {
				if _, err := d.DrawCircle(399, 299, r); err != nil {
					return err
				}
			}
			return nil
		},
		func() error {
			for row := 0; row < 6; row++ {
				for col := 0; col < 8; col++ {
					if _, err := d.FillCircle(50+col*100, 50+row*100, 50); err != nil {
						return err
					}
				}
			}
			return nil
		},
		func() error {
			for i := 1; i < 5; i++ {
				if _, err := d.DrawTriangle(399, 249-i*50, 349-i*50, 349+i*50, 449+i*50, 349+i*50); err != nil {
					return err
				}
			}
			return nil
		},
		func() error {
			lines := []struct {
				text string
				size epaper.FontSize
				y    int
			}{
				{"ASCII32: Fox!", epaper.Font32, 300},
				{"ASCII48: Carrie!", epaper.Font48, 350},
				{"ASCII64: Aya!", epaper.Font64, 450},
			}
			for _, l := range lines {
				if _, err := d.SetEnglishFont(l.size); err != nil {
					return err
				}
				if _, err := d.DrawString(l.text, 0, l.y); err != nil {
					return err
				}
			}
			return nil
		},
		func() error {
			_, err := d.DrawBitmap("PIC4.BMP", 0, 0)
			return err
		},
	}

	for i, draw := range screens {
		if i > 0 {
			time.Sleep(rc.pause)
		}
		if _, err := d.Clear(); err != nil {
			return err
		}
		if err := draw(); err != nil {
			return err
		}
		if _, err := d.Update(); err != nil {
			return err
		}
	}
	return nil
}

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

// Package detection finds serial ports that may host an e-paper controller
// and probes them with the handshake frame.
package detection

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
)

// Port is a serial device that may host a display controller.
type Port struct {
	Path         string
	VIDPID       string
	SerialNumber string
	Product      string
	IsUSB        bool
}

// Options controls which ports ListPorts returns.
type Options struct {
	// Lister enumerates ports; defaults to enumerator.GetDetailedPortsList.
	Lister func() ([]*enumerator.PortDetails, error)
	// IgnorePaths are device paths never returned.
	IgnorePaths []string
	// Blocklist holds VID:PID pairs never returned, in hexadecimal,
	// case-insensitive.
	Blocklist []string
	// USBOnly drops ports that are not USB adapters.
	USBOnly bool
}

// DefaultOptions returns options using the platform enumerator with no
// filters.
func DefaultOptions() Options {
	return Options{Lister: enumerator.GetDetailedPortsList}
}

// ListPorts enumerates serial ports and applies opts. Ports are sorted by
// path.
func ListPorts(opts Options) ([]Port, error) {
	lister := opts.Lister
	if lister == nil {
		lister = enumerator.GetDetailedPortsList
	}

	details, err := lister()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	ports := make([]Port, 0, len(details))
	for _, d := range details {
		if d == nil || d.Name == "" {
			continue
		}
		port := Port{
			Path:         d.Name,
			IsUSB:        d.IsUSB,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		}
		if d.VID != "" && d.PID != "" {
			port.VIDPID = strings.ToUpper(d.VID + ":" + d.PID)
		}

		switch {
		case opts.USBOnly && !port.IsUSB:
			continue
		case IsPathIgnored(port.Path, opts.IgnorePaths):
			continue
		case port.VIDPID != "" && IsBlocked(port.VIDPID, opts.Blocklist):
			continue
		}
		ports = append(ports, port)
	}

	sort.Slice(ports, func(i, j int) bool { return ports[i].Path < ports[j].Path })
	return ports, nil
}

// IsBlocked reports whether vidpid appears in blocklist.
func IsBlocked(vidpid string, blocklist []string) bool {
	vidpid = strings.TrimSpace(vidpid)
	for _, blocked := range blocklist {
		if strings.EqualFold(vidpid, strings.TrimSpace(blocked)) {
			return true
		}
	}
	return false
}

// IsPathIgnored reports whether devicePath matches an entry of ignorePaths
// after cleaning, ignoring case.
func IsPathIgnored(devicePath string, ignorePaths []string) bool {
	if devicePath == "" {
		return false
	}
	device := filepath.Clean(devicePath)
	for _, ignore := range ignorePaths {
		if ignore == "" {
			continue
		}
		if strings.EqualFold(device, filepath.Clean(ignore)) {
			return true
		}
	}
	return false
}

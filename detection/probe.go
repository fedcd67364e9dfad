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

package detection

import (
	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/go-epaper"
)

// Result is the outcome of probing one port.
type Result struct {
	Err      error
	Port     Port
	Response []byte
}

// Responded reports whether the controller answered the handshake with
// any bytes at all. The content is not checked.
func (r Result) Responded() bool {
	return r.Err == nil && len(r.Response) > 0
}

// Probe opens every port with factory using base's line settings, sends one
// handshake and closes the session again. Ports are probed one at a time.
func Probe(ports []Port, base epaper.SerialConfig, factory epaper.TransportFactory, opts ...epaper.Option) []Result {
	results := make([]Result, 0, len(ports))
	for _, port := range ports {
		results = append(results, probeOne(port, base, factory, opts))
	}
	return results
}

func probeOne(port Port, base epaper.SerialConfig, factory epaper.TransportFactory, opts []epaper.Option) Result {
	cfg := base
	cfg.Path = port.Path
	result := Result{Port: port}

	display, err := epaper.Connect(cfg, factory, opts...)
	if err != nil {
		result.Err = err
		log.Debug().Err(err).Str("port", port.Path).Msg("probe: open failed")
		return result
	}
	defer func() {
		if err := display.Close(); err != nil {
			log.Debug().Err(err).Str("port", port.Path).Msg("probe: close failed")
		}
	}()

	result.Response, result.Err = display.Handshake()
	log.Debug().
		Str("port", port.Path).
		Int("response_len", len(result.Response)).
		Bool("responded", result.Responded()).
		Msg("probe: handshake sent")
	return result
}

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

import "sync"

// MockTransport records written frames and replays scripted responses.
// Reads with nothing queued return an empty slice, like a read timeout on
// a real line.
type MockTransport struct {
	writeErr  error
	readErr   error
	closeErr  error
	responses [][]byte
	writes    [][]byte
	shortBy   int
	reads     int
	mu        sync.Mutex
	closed    bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// MockFactory returns a TransportFactory handing out m.
func MockFactory(m *MockTransport) TransportFactory {
	return func(SerialConfig) (Transport, error) {
		return m, nil
	}
}

// Write records a copy of data and reports len(data) minus the configured
// shortfall.
func (m *MockTransport) Write(data []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, NewIOError("write", "mock", errTransportClosed)
	}
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, append([]byte(nil), data...))

	n := len(data) - m.shortBy
	if n < 0 {
		n = 0
	}
	return n, nil
}

// Read returns the next queued response, or an empty slice.
func (m *MockTransport) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if m.closed {
		return nil, NewIOError("read", "mock", errTransportClosed)
	}
	if m.readErr != nil {
		return nil, m.readErr
	}
	if len(m.responses) == 0 {
		return []byte{}, nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	if len(resp) > ReadBufferSize {
		resp = resp[:ReadBufferSize]
	}
	return resp, nil
}

// Close marks the transport closed
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return m.closeErr
}

// IsConnected returns true until Close is called
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// QueueResponse appends a response for a later Read
func (m *MockTransport) QueueResponse(resp []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, append([]byte(nil), resp...))
}

// SetWriteError makes every Write fail with err
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// SetReadError makes every Read fail with err
func (m *MockTransport) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// SetCloseError makes Close return err
func (m *MockTransport) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeErr = err
}

// SetShortWrite makes Write report n fewer bytes than it was given
func (m *MockTransport) SetShortWrite(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shortBy = n
}

// Writes returns every frame written so far
func (m *MockTransport) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	for i, w := range m.writes {
		out[i] = append([]byte(nil), w...)
	}
	return out
}

// LastWrite returns the most recent frame, or nil
func (m *MockTransport) LastWrite() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return nil
	}
	return append([]byte(nil), m.writes[len(m.writes)-1]...)
}

// ReadCount returns how many times Read was called
func (m *MockTransport) ReadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

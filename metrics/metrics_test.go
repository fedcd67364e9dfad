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

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaparooProject/go-epaper"
)

func TestInstrumentedSession(t *testing.T) {
	t.Parallel()

	m := NewTransportMetrics(prometheus.NewRegistry())
	mock := epaper.NewMockTransport()
	mock.QueueResponse([]byte("OK"))

	display, err := epaper.Connect(epaper.DefaultSerialConfig("/dev/ttyTEST"),
		m.Wrap(epaper.MockFactory(mock)), epaper.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.OpenPorts), 0)

	_, err = display.Handshake()
	require.NoError(t, err)
	_, err = display.Handshake()
	require.NoError(t, err)
	_, err = display.DrawString("Hi", 0, 50)
	require.NoError(t, err)

	assert.InDelta(t, 2, testutil.ToFloat64(m.FramesSent.WithLabelValues("handshake")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FramesSent.WithLabelValues("draw-string")), 0)
	assert.InDelta(t, 9+9+16, testutil.ToFloat64(m.BytesWritten), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.BytesRead), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.EmptyReads), 0)

	require.NoError(t, display.Close())
	assert.InDelta(t, 0, testutil.ToFloat64(m.OpenPorts), 0)
}

func TestInstrumentedErrors(t *testing.T) {
	t.Parallel()

	m := NewTransportMetrics(prometheus.NewRegistry())
	mock := epaper.NewMockTransport()
	tr := m.Instrument(mock)

	mock.SetShortWrite(2)
	_, err := tr.Write([]byte{0xA5, 0x00, 0x09, 0x2E, 0xCC, 0x33, 0xC3, 0x3C, 0x82})
	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ShortWrites), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(m.BytesWritten), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FramesSent.WithLabelValues("clear")), 0)

	mock.SetWriteError(errors.New("unplugged"))
	_, err = tr.Write([]byte{0x01})
	require.Error(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.WriteErrors), 0)

	mock.SetReadError(errors.New("unplugged"))
	_, err = tr.Read()
	require.Error(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ReadErrors), 0)

	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())
	assert.InDelta(t, 0, testutil.ToFloat64(m.OpenPorts), 0)
}

func TestWrap_FactoryError(t *testing.T) {
	t.Parallel()

	m := NewTransportMetrics(prometheus.NewRegistry())
	boom := errors.New("no device")
	factory := m.Wrap(func(epaper.SerialConfig) (epaper.Transport, error) { return nil, boom })

	tr, err := factory(epaper.DefaultSerialConfig("/dev/null"))
	require.ErrorIs(t, err, boom)
	assert.Nil(t, tr)
	assert.InDelta(t, 0, testutil.ToFloat64(m.OpenPorts), 0)
}

func TestCommandLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", commandLabel(nil))
	assert.Equal(t, "unknown", commandLabel([]byte{0xA5, 0, 9, 0xFE}))
	assert.Equal(t, "draw-bitmap", commandLabel([]byte{0xA5, 0, 9, 0x70}))
}

func TestHandler(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	m := NewTransportMetrics(reg)
	m.BytesWritten.Add(9)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "epaper_bytes_written_total 9")
	assert.Contains(t, body, "go_goroutines")
}

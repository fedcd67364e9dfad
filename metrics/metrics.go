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

// Package metrics exposes Prometheus counters for display transports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ZaparooProject/go-epaper"
)

const namespace = "epaper"

// NewRegistry creates a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the metrics in reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// TransportMetrics counts traffic on display transports.
type TransportMetrics struct {
	FramesSent   *prometheus.CounterVec // labels: command
	BytesWritten prometheus.Counter
	ShortWrites  prometheus.Counter
	WriteErrors  prometheus.Counter
	BytesRead    prometheus.Counter
	EmptyReads   prometheus.Counter
	ReadErrors   prometheus.Counter
	OpenPorts    prometheus.Gauge
}

// NewTransportMetrics registers and returns the transport metrics.
func NewTransportMetrics(reg prometheus.Registerer) *TransportMetrics {
	m := &TransportMetrics{
		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_sent_total",
			Help:      "Frames written to the controller by command.",
		}, []string{"command"}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Bytes accepted by the serial device.",
		}),
		ShortWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "short_writes_total",
			Help:      "Writes that accepted fewer bytes than the frame length.",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_errors_total",
			Help:      "Failed writes.",
		}),
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_read_total",
			Help:      "Bytes received from the controller.",
		}),
		EmptyReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_reads_total",
			Help:      "Reads that timed out with nothing received.",
		}),
		ReadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_errors_total",
			Help:      "Failed reads.",
		}),
		OpenPorts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_transports",
			Help:      "Transports currently open.",
		}),
	}
	reg.MustRegister(m.FramesSent, m.BytesWritten, m.ShortWrites, m.WriteErrors,
		m.BytesRead, m.EmptyReads, m.ReadErrors, m.OpenPorts)
	return m
}

// Wrap returns a factory whose transports are instrumented with m.
func (m *TransportMetrics) Wrap(factory epaper.TransportFactory) epaper.TransportFactory {
	return func(config epaper.SerialConfig) (epaper.Transport, error) {
		t, err := factory(config)
		if err != nil {
			return nil, err
		}
		return m.Instrument(t), nil
	}
}

// Instrument wraps t so that its traffic is counted. The transport is
// assumed open.
func (m *TransportMetrics) Instrument(t epaper.Transport) epaper.Transport {
	m.OpenPorts.Inc()
	return &instrumented{Transport: t, m: m}
}

type instrumented struct {
	epaper.Transport
	m      *TransportMetrics
	closed bool
}

func (i *instrumented) Write(data []byte) (int, error) {
	n, err := i.Transport.Write(data)
	if err != nil {
		i.m.WriteErrors.Inc()
		return n, err
	}
	i.m.FramesSent.WithLabelValues(commandLabel(data)).Inc()
	i.m.BytesWritten.Add(float64(n))
	if n < len(data) {
		i.m.ShortWrites.Inc()
	}
	return n, nil
}

func (i *instrumented) Read() ([]byte, error) {
	data, err := i.Transport.Read()
	if err != nil {
		i.m.ReadErrors.Inc()
		return data, err
	}
	if len(data) == 0 {
		i.m.EmptyReads.Inc()
	}
	i.m.BytesRead.Add(float64(len(data)))
	return data, nil
}

func (i *instrumented) Close() error {
	if !i.closed {
		i.closed = true
		i.m.OpenPorts.Dec()
	}
	return i.Transport.Close()
}

func commandLabel(frame []byte) string {
	if len(frame) < 4 {
		return "unknown"
	}
	spec, ok := epaper.CommandByOpcode(frame[3])
	if !ok {
		return "unknown"
	}
	return string(spec.Name)
}

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

// Command epdctl drives an e-paper display controller over a serial line.
//
// Usage:
//
//	epdctl [flags] <action> [args...]
//
// Run epdctl -h for the list of actions.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/go-epaper"
	"github.com/ZaparooProject/go-epaper/detection"
	"github.com/ZaparooProject/go-epaper/internal/config"
	"github.com/ZaparooProject/go-epaper/internal/logging"
	testutil "github.com/ZaparooProject/go-epaper/internal/testing"
	"github.com/ZaparooProject/go-epaper/metrics"
	"github.com/ZaparooProject/go-epaper/pins/gpio"
	"github.com/ZaparooProject/go-epaper/transport/uart"
)

type flags struct {
	configPath  *string
	device      *string
	parity      *string
	metricsAddr *string
	baud        *int
	pause       *time.Duration
	debug       *bool
	simulate    *bool
	probe       *bool
	usbOnly     *bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*flags, error) {
	f := &flags{
		configPath:  fs.String("config", "", "Config file (default: ./epaper.yaml if present)"),
		device:      fs.String("device", "", "Serial device path, overrides serial.path"),
		baud:        fs.Int("baud", 0, "Baud rate, overrides serial.baud"),
		parity:      fs.String("parity", "", "Parity N, O, E or S, overrides serial.parity"),
		metricsAddr: fs.String("metrics-addr", "", "Serve Prometheus metrics on this address"),
		pause:       fs.Duration("pause", 3*time.Second, "Pause between demo screens"),
		debug:       fs.Bool("debug", false, "Enable debug logging"),
		simulate:    fs.Bool("simulate", false, "Drive a virtual controller instead of a serial device"),
		probe:       fs.Bool("probe", false, "With ports: send a handshake to every port"),
		usbOnly:     fs.Bool("usb-only", false, "With ports: list USB adapters only"),
	}
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: epdctl [flags] <action> [args...]\n\nActions:\n")
		for _, name := range actionNames() {
			_, _ = fmt.Fprintf(fs.Output(), "  %-12s %s\n", name, actions[name].usage)
		}
		_, _ = fmt.Fprintf(fs.Output(), "\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func actionNames() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("epdctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f, err := parseFlags(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*f.configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "epdctl: %v\n", err)
		return 1
	}
	applyOverrides(cfg, f)

	logger, closer, err := logging.New(cfg.Logging, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "epdctl: %v\n", err)
		return 1
	}
	defer func() { _ = closer.Close() }()
	log.Logger = logger

	if err := execute(cfg, f, fs.Args(), stdout); err != nil {
		log.Error().Err(err).Str("action", fs.Arg(0)).Msg("action failed")
		_, _ = fmt.Fprintf(stderr, "epdctl: %v\n", err)
		return 1
	}
	return 0
}

func applyOverrides(cfg *config.Config, f *flags) {
	if *f.device != "" {
		cfg.Serial.Path = *f.device
	}
	if *f.baud != 0 {
		cfg.Serial.Baud = *f.baud
	}
	if *f.parity != "" {
		cfg.Serial.Parity = *f.parity
	}
	if *f.metricsAddr != "" {
		cfg.Metrics.Addr = *f.metricsAddr
	}
	if *f.debug {
		cfg.Logging.Level = zerolog.LevelDebugValue
	}
}

func execute(cfg *config.Config, f *flags, args []string, stdout io.Writer) error {
	name := args[0]
	act, ok := actions[name]
	if !ok {
		return fmt.Errorf("unknown action %q", name)
	}
	if len(args)-1 != act.args {
		return fmt.Errorf("%s expects %d arguments: %s", name, act.args, act.usage)
	}

	serialCfg, err := cfg.SerialConfig()
	if err != nil {
		return err
	}

	var panel *testutil.VirtualPanel
	factory := uart.NewFactory(uart.WithReadTimeout(cfg.Serial.ReadTimeout))
	if *f.simulate {
		panel = testutil.NewVirtualPanel()
		factory = panel.Factory()
	}

	if cfg.Metrics.Addr != "" {
		reg := metrics.NewRegistry()
		factory = metrics.NewTransportMetrics(reg).Wrap(factory)
		srv := serveMetrics(cfg.Metrics, reg)
		defer func() { _ = srv.Close() }()
	}

	rc := &runContext{
		out:     stdout,
		pause:   *f.pause,
		factory: factory,
		serial:  serialCfg,
		ports: detection.Options{
			Blocklist:   cfg.Detection.Blocklist,
			IgnorePaths: cfg.Detection.IgnorePaths,
			USBOnly:     *f.usbOnly,
		},
		probe: *f.probe,
	}

	if act.session {
		opts := []epaper.Option{epaper.WithLogger(log.Logger)}
		pins, err := pinController(cfg.Pins, panel)
		if err != nil {
			return err
		}
		if pins != nil {
			opts = append(opts, epaper.WithPinController(pins))
		}
		rc.opts = opts

		display, err := epaper.Connect(serialCfg, factory, opts...)
		if err != nil {
			return err
		}
		defer func() { _ = display.Close() }()
		rc.display = display
	}

	if err := act.run(rc, args[1:]); err != nil {
		return err
	}
	if panel != nil {
		reportPanel(stdout, panel)
	}
	return nil
}

func pinController(cfg config.PinsConfig, panel *testutil.VirtualPanel) (epaper.PinController, error) {
	if panel != nil {
		return panel, nil
	}
	if cfg.Wakeup == "" && cfg.Reset == "" {
		return nil, nil
	}
	pins, err := gpio.New(gpio.Lines{Wakeup: cfg.Wakeup, Reset: cfg.Reset})
	if err != nil {
		return nil, fmt.Errorf("failed to set up control lines: %w", err)
	}
	return pins, nil
}

// serveMetrics exposes reg until the returned server is closed.
func serveMetrics(cfg config.MetricsConfig, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler(reg))
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", cfg.Addr).Msg("metrics server failed")
		}
	}()
	log.Info().Str("addr", cfg.Addr).Str("path", cfg.Path).Msg("serving metrics")
	return srv
}

func reportPanel(out io.Writer, panel *testutil.VirtualPanel) {
	shown := panel.Shown()
	_, _ = fmt.Fprintf(out, "virtual panel: %d update(s), %d operation(s) shown, %d pending, %d rejected\n",
		panel.Updates(), len(shown), len(panel.Pending()), panel.Rejected())
	for _, op := range shown {
		line := fmt.Sprintf("  %s %v", op.Command, op.Args)
		if op.Text != "" {
			line += fmt.Sprintf(" %q", op.Text)
		}
		_, _ = fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

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

// Package config loads CLI settings from a file, EPD_ environment
// variables and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ZaparooProject/go-epaper"
)

// EnvPrefix prefixes environment overrides, e.g. EPD_SERIAL_BAUD.
const EnvPrefix = "EPD"

// SerialConfig holds the serial line settings.
type SerialConfig struct {
	Path        string        `mapstructure:"path"`
	Parity      string        `mapstructure:"parity"`
	Baud        int           `mapstructure:"baud"`
	DataBits    int           `mapstructure:"dataBits"`
	StopBits    int           `mapstructure:"stopBits"`
	ReadTimeout time.Duration `mapstructure:"readTimeout"`
}

// PinsConfig names the GPIO lines. Empty names leave the lines unwired.
type PinsConfig struct {
	Wakeup string `mapstructure:"wakeup"`
	Reset  string `mapstructure:"reset"`
}

// FileConfig configures the rolling log file.
type FileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig sets level, format and optional file output.
type LoggingConfig struct {
	Level  string     `mapstructure:"level"`
	Format string     `mapstructure:"format"`
	File   FileConfig `mapstructure:"file"`
}

// DetectionConfig filters the ports listed and probed by the CLI.
type DetectionConfig struct {
	Blocklist   []string `mapstructure:"blocklist"`
	IgnorePaths []string `mapstructure:"ignorePaths"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
	Path string `mapstructure:"path"`
}

// Config is the top level configuration.
type Config struct {
	Serial    SerialConfig    `mapstructure:"serial"`
	Pins      PinsConfig      `mapstructure:"pins"`
	Detection DetectionConfig `mapstructure:"detection"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// Load reads path (YAML, TOML or JSON) when given, otherwise epaper.yaml
// from the working directory if present, then applies EPD_ environment
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("epaper")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.path", "/dev/ttyUSB0")
	v.SetDefault("serial.baud", 115200)
	v.SetDefault("serial.dataBits", 8)
	v.SetDefault("serial.stopBits", 1)
	v.SetDefault("serial.parity", "N")
	v.SetDefault("serial.readTimeout", epaper.DefaultReadTimeout)

	v.SetDefault("pins.wakeup", "")
	v.SetDefault("pins.reset", "")

	v.SetDefault("detection.blocklist", []string{})
	v.SetDefault("detection.ignorePaths", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 28)
	v.SetDefault("logging.file.compress", false)

	v.SetDefault("metrics.addr", "")
	v.SetDefault("metrics.path", "/metrics")
}

// SerialConfig converts the serial section into an epaper.SerialConfig.
func (c *Config) SerialConfig() (epaper.SerialConfig, error) {
	parity, err := epaper.ParseParity(c.Serial.Parity)
	if err != nil {
		return epaper.SerialConfig{}, err
	}
	sc := epaper.SerialConfig{
		Path:     c.Serial.Path,
		BaudRate: c.Serial.Baud,
		DataBits: c.Serial.DataBits,
		StopBits: c.Serial.StopBits,
		Parity:   parity,
	}
	if err := sc.Validate(); err != nil {
		return epaper.SerialConfig{}, err
	}
	return sc, nil
}

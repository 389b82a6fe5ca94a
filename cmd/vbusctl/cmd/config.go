// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/resol-go/vbus/serial"
)

// fileConfig is the YAML shape accepted by --config. Every field mirrors a
// serial.Config tunable and is optional; a zero value leaves the
// flag-derived value (or serial.DefaultConfig's default) in place.
type fileConfig struct {
	Port             string `yaml:"port"`
	BaudRate         int    `yaml:"baud_rate"`
	ReadTimeoutMS    int    `yaml:"read_timeout_ms"`
	ReconnectBackoff int    `yaml:"reconnect_backoff_ms"`
	SpecPath         string `yaml:"spec"`
	Language         string `yaml:"language"`
}

// loadFileConfig reads and parses a YAML config file, overlaying it onto a
// serial.Config built from portFlag/baudFlag. An empty path returns the
// flag-derived config unchanged.
func loadFileConfig(path, portFlag string, baudFlag int) (serial.Config, fileConfig, error) {
	config := serial.DefaultConfig(portFlag)
	config.BaudRate = baudFlag

	if path == "" {
		return config, fileConfig{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return config, fileConfig{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return config, fileConfig{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.Port != "" {
		config.PortName = fc.Port
	}
	if fc.BaudRate != 0 {
		config.BaudRate = fc.BaudRate
	}
	if fc.ReadTimeoutMS != 0 {
		config.ReadTimeout = msToDuration(fc.ReadTimeoutMS)
	}
	if fc.ReconnectBackoff != 0 {
		config.ReconnectBackoff = msToDuration(fc.ReconnectBackoff)
	}

	return config, fc, nil
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package serial supplies the thin, non-core I/O wrappers that hand
// already-framed VBus bytes to the decoder boundary: live serial port
// acquisition, multi-file playback, and recording-container playback.
package serial

import (
	"errors"
	"time"
)

// defines the valid range for each Config field.
const (
	// BaudRateMin/Max bound the bit rates real VBus adapters expose.
	BaudRateMin = 1200
	BaudRateMax = 115200

	// ReadTimeoutMin/Max bound how long a single Read may block waiting for
	// bytes before returning control to the frame scanner.
	ReadTimeoutMin = 10 * time.Millisecond
	ReadTimeoutMax = 10 * time.Second

	// ReconnectBackoffMin/Max bound the delay between reconnect attempts
	// after a serial port is lost.
	ReconnectBackoffMin = 100 * time.Millisecond
	ReconnectBackoffMax = 5 * time.Minute
)

// Config defines a live serial VBus connection's tunables. The default is
// applied for each unspecified (zero) value by Valid, which also checks each
// field against its Min/Max range.
type Config struct {
	// PortName is the OS device path, e.g. "/dev/ttyUSB0" or "COM3".
	PortName string

	// BaudRate in bits per second. Range [1200, 115200], default 9600 (the
	// rate VBus adapters commonly default to).
	BaudRate int

	// ReadTimeout bounds a single blocking Read call. Range [10ms, 10s],
	// default 500ms.
	ReadTimeout time.Duration

	// ReconnectBackoff is the delay before retrying after the port is
	// lost. Range [100ms, 5m], default 2s.
	ReconnectBackoff time.Duration
}

// Valid applies the default for each unspecified value and range-checks the
// rest, returning an error describing the first violation found.
func (c *Config) Valid() error {
	if c == nil {
		return errors.New("serial: invalid pointer")
	}
	if c.PortName == "" {
		return errors.New("serial: PortName must not be empty")
	}

	if c.BaudRate == 0 {
		c.BaudRate = 9600
	} else if c.BaudRate < BaudRateMin || c.BaudRate > BaudRateMax {
		return errors.New("serial: BaudRate not in [1200, 115200]")
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = 500 * time.Millisecond
	} else if c.ReadTimeout < ReadTimeoutMin || c.ReadTimeout > ReadTimeoutMax {
		return errors.New("serial: ReadTimeout not in [10ms, 10s]")
	}

	if c.ReconnectBackoff == 0 {
		c.ReconnectBackoff = 2 * time.Second
	} else if c.ReconnectBackoff < ReconnectBackoffMin || c.ReconnectBackoff > ReconnectBackoffMax {
		return errors.New("serial: ReconnectBackoff not in [100ms, 5m]")
	}

	return nil
}

// DefaultConfig returns a Config for portName with every tunable at its
// default.
func DefaultConfig(portName string) Config {
	return Config{
		PortName:         portName,
		BaudRate:         9600,
		ReadTimeout:      500 * time.Millisecond,
		ReconnectBackoff: 2 * time.Second,
	}
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package serial

import (
	"context"
	"fmt"
	"time"

	serialport "go.bug.st/serial"

	"github.com/resol-go/vbus"
	"github.com/resol-go/vbus/vbuslog"
)

// LiveReader reads frames from a physical VBus adapter, reconnecting with
// Config.ReconnectBackoff whenever the port is lost. It is the one
// component in this repository that performs blocking I/O; every public
// method that can block accepts a context.Context.
type LiveReader struct {
	config  Config
	decoder Decoder
	log     vbuslog.Log

	port serialport.Port
}

// NewLiveReader validates config and returns a LiveReader that decodes
// frames with decoder.
func NewLiveReader(config Config, decoder Decoder, log vbuslog.Log) (*LiveReader, error) {
	if err := config.Valid(); err != nil {
		return nil, err
	}
	return &LiveReader{config: config, decoder: decoder, log: log}, nil
}

// Run opens the serial port and feeds decoded Data to out until ctx is
// canceled, then returns ctx's error. Open and read failures are logged and
// retried after Config.ReconnectBackoff rather than propagated, matching the
// reconnect-on-loss behavior VBus field deployments expect from a
// long-running collector.
func (lr *LiveReader) Run(ctx context.Context, out chan<- vbus.Data) error {
	defer close(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := lr.open(); err != nil {
			lr.log.Warn(nil, "vbus: open %s failed: %v", lr.config.PortName, err)
			if !sleepCtx(ctx, lr.config.ReconnectBackoff) {
				return ctx.Err()
			}
			continue
		}

		err := lr.readLoop(ctx, out)
		_ = lr.port.Close()
		lr.port = nil

		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}
		lr.log.Warn(nil, "vbus: connection to %s lost: %v", lr.config.PortName, err)
		if !sleepCtx(ctx, lr.config.ReconnectBackoff) {
			return ctx.Err()
		}
	}
}

func (lr *LiveReader) open() error {
	mode := &serialport.Mode{BaudRate: lr.config.BaudRate}
	port, err := serialport.Open(lr.config.PortName, mode)
	if err != nil {
		return fmt.Errorf("serial: open %s: %w", lr.config.PortName, err)
	}
	if err := port.SetReadTimeout(lr.config.ReadTimeout); err != nil {
		_ = port.Close()
		return fmt.Errorf("serial: set read timeout: %w", err)
	}
	lr.port = port
	return nil
}

func (lr *LiveReader) readLoop(ctx context.Context, out chan<- vbus.Data) error {
	scanner := NewScanner(lr.port)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		frame, err := scanner.Next()
		if err != nil {
			return err
		}

		data, err := lr.decoder.Decode(time.Now().UTC(), lr.config.channel(), frame)
		if err != nil {
			lr.log.Debug(nil, "vbus: dropping unparseable frame: %v", err)
			continue
		}

		select {
		case out <- data:
		case <-ctx.Done():
			return nil
		}
	}
}

// channel is the bus channel this reader reports decoded frames on. A
// single serial port always represents one logical VBus channel; multiplexed
// adapters that address several physical buses over one port are out of
// scope.
func (c Config) channel() byte { return 0 }

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package vbuslog provides the pluggable logging facade used throughout
// this repository's serial/decoder/cmd layers.
package vbuslog

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Provider is the pluggable backend a Log delegates to. Fields carries
// structured context (channel, identity, command, ...) alongside the
// formatted message.
type Provider interface {
	Critical(fields logrus.Fields, format string, v ...interface{})
	Error(fields logrus.Fields, format string, v ...interface{})
	Warn(fields logrus.Fields, format string, v ...interface{})
	Debug(fields logrus.Fields, format string, v ...interface{})
}

// Log wraps a Provider behind an atomically-toggled enable flag, so callers
// throughout the decoder/serial layers can log unconditionally and pay only
// an atomic load when logging is disabled.
type Log struct {
	provider Provider
	// has is 1 when log output is enabled, 0 when disabled.
	has uint32
}

// New returns a Log backed by a logrus.Logger writing to entry, enabled by
// default.
func New(entry *logrus.Logger) Log {
	return Log{
		provider: defaultProvider{entry},
		has:      1,
	}
}

// Mode sets whether log output is produced.
func (l *Log) Mode(enable bool) {
	if enable {
		atomic.StoreUint32(&l.has, 1)
	} else {
		atomic.StoreUint32(&l.has, 0)
	}
}

// SetProvider swaps the backing Provider.
func (l *Log) SetProvider(p Provider) {
	if p != nil {
		l.provider = p
	}
}

// Critical logs a CRITICAL level message.
func (l Log) Critical(fields logrus.Fields, format string, v ...interface{}) {
	if atomic.LoadUint32(&l.has) == 1 {
		l.provider.Critical(fields, format, v...)
	}
}

// Error logs an ERROR level message.
func (l Log) Error(fields logrus.Fields, format string, v ...interface{}) {
	if atomic.LoadUint32(&l.has) == 1 {
		l.provider.Error(fields, format, v...)
	}
}

// Warn logs a WARN level message.
func (l Log) Warn(fields logrus.Fields, format string, v ...interface{}) {
	if atomic.LoadUint32(&l.has) == 1 {
		l.provider.Warn(fields, format, v...)
	}
}

// Debug logs a DEBUG level message.
func (l Log) Debug(fields logrus.Fields, format string, v ...interface{}) {
	if atomic.LoadUint32(&l.has) == 1 {
		l.provider.Debug(fields, format, v...)
	}
}

// defaultProvider backs Log with logrus, its fields attached structurally
// rather than interpolated into the message string.
type defaultProvider struct {
	entry *logrus.Logger
}

var _ Provider = defaultProvider{}

func (p defaultProvider) Critical(fields logrus.Fields, format string, v ...interface{}) {
	p.entry.WithFields(fields).Fatalf(format, v...)
}

func (p defaultProvider) Error(fields logrus.Fields, format string, v ...interface{}) {
	p.entry.WithFields(fields).Errorf(format, v...)
}

func (p defaultProvider) Warn(fields logrus.Fields, format string, v ...interface{}) {
	p.entry.WithFields(fields).Warnf(format, v...)
}

func (p defaultProvider) Debug(fields logrus.Fields, format string, v ...interface{}) {
	p.entry.WithFields(fields).Debugf(format, v...)
}

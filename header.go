// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package vbus decodes the VBus family of serial field-bus protocols used by
// solar and heating controllers, and maintains time-stamped, deduplicating
// collections of the decoded frames.
package vbus

import (
	"fmt"
	"time"
)

// ProtocolVersion identifies which of the three coexisting VBus record
// shapes a Header belongs to.
type ProtocolVersion byte

// The three protocol version families that currently coexist on a VBus wire.
const (
	ProtocolVersionPacket   ProtocolVersion = 0x10
	ProtocolVersionDatagram ProtocolVersion = 0x20
	ProtocolVersionTelegram ProtocolVersion = 0x30
)

// String names a protocol version family, or "Unknown" for anything else.
func (pv ProtocolVersion) String() string {
	switch pv {
	case ProtocolVersionPacket:
		return "Packet"
	case ProtocolVersionDatagram:
		return "Datagram"
	case ProtocolVersionTelegram:
		return "Telegram"
	default:
		return "Unknown"
	}
}

// Header carries the timestamp and addressing tuple shared by every VBus
// record. Comparison and identity between Data values always begin with
// (Channel, DestinationAddress, SourceAddress, ProtocolVersion); Timestamp
// never participates.
type Header struct {
	Timestamp          time.Time
	Channel            byte
	DestinationAddress uint16
	SourceAddress      uint16
	ProtocolVersion    ProtocolVersion
}

// IDString renders the fixed-width hex tuple "CC_DDDD_SSSS_PP" that names a
// Header irrespective of payload or timestamp.
func (h Header) IDString() string {
	return fmt.Sprintf("%02X_%04X_%04X_%02X", h.Channel, h.DestinationAddress, h.SourceAddress, byte(h.ProtocolVersion))
}

// addressTuple is the comparison/equality key shared by every variant;
// equal tuples are a precondition for any variant-specific comparison.
func (h Header) addressTuple() (byte, uint16, uint16, ProtocolVersion) {
	return h.Channel, h.DestinationAddress, h.SourceAddress, h.ProtocolVersion
}

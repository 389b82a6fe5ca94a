// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package decoder implements the Decode boundary: turning a timestamp, a
// channel, and a validated frame of bytes into a vbus.Data. The boundary's
// existence is the core's contract; the wire layout a concrete Decode
// function parses is not. This package documents its own layout inline
// since no byte-exact capture fixtures for any real VBus adapter were
// available to ground it on.
package decoder

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/resol-go/vbus"
)

// Minimum byte counts for each record shape, counted after the leading
// 6-byte addressing prefix shared by every protocol version.
const (
	prefixLen          = 6 // version, channel, dest(2), source(2)
	packetHeaderLen    = 3 // command(2), frame_count(1)
	datagramPayloadLen = 8 // command(2), param16(2), param32(4)
	telegramPayloadLen = 1 + vbus.TelegramFrameDataLen
)

// decodeError names which field of a frame failed to decode, so callers
// logging dropped frames (serial.LiveReader, RecordingReader) can report
// something more specific than "truncated frame".
type decodeError struct {
	reason string
}

func (e *decodeError) Error() string { return "decoder: " + e.reason }

// Decode parses validatedBytes into a vbus.Data, stamping it with timestamp
// and channel. The byte layout, shared by all three protocol versions, is:
//
//	[0]    protocol version (0x10 Packet, 0x20 Datagram, 0x30 Telegram)
//	[1]    channel echoed back in the header (overridden by the channel arg)
//	[2:4]  destination address, little-endian
//	[4:6]  source address, little-endian
//	[6:]   variant-specific body, see decodePacketBody/decodeDatagramBody/decodeTelegramBody
//
// channel, not validatedBytes[1], is stamped into the returned Header's
// Channel field: the caller (a serial.LiveReader reading one physical port) is
// the authority on which logical bus a frame arrived on.
func Decode(timestamp time.Time, channel byte, validatedBytes []byte) (vbus.Data, error) {
	if len(validatedBytes) < prefixLen {
		return nil, &decodeError{"frame shorter than the addressing prefix"}
	}

	header := vbus.Header{
		Timestamp:          timestamp,
		Channel:            channel,
		DestinationAddress: binary.LittleEndian.Uint16(validatedBytes[2:4]),
		SourceAddress:      binary.LittleEndian.Uint16(validatedBytes[4:6]),
		ProtocolVersion:    vbus.ProtocolVersion(validatedBytes[0]),
	}
	body := validatedBytes[prefixLen:]

	switch header.ProtocolVersion {
	case vbus.ProtocolVersionPacket:
		return decodePacketBody(header, body)
	case vbus.ProtocolVersionDatagram:
		return decodeDatagramBody(header, body)
	case vbus.ProtocolVersionTelegram:
		return decodeTelegramBody(header, body)
	default:
		return nil, &decodeError{fmt.Sprintf("unknown protocol version 0x%02X", validatedBytes[0])}
	}
}

// decodePacketBody parses a Packet's command, frame_count, and frame_data.
// frame_data is truncated to frame_count*4 bytes if the frame carries more
// (a defensive tail, never decoded past FrameDataLen), and rejected if it
// carries fewer.
func decodePacketBody(header vbus.Header, body []byte) (vbus.Packet, error) {
	if len(body) < packetHeaderLen {
		return vbus.Packet{}, &decodeError{"packet body shorter than its header"}
	}
	command := binary.LittleEndian.Uint16(body[0:2])
	frameCount := body[2]

	want := int(frameCount) * 4
	frameData := body[packetHeaderLen:]
	if len(frameData) < want {
		return vbus.Packet{}, &decodeError{"packet frame_data shorter than frame_count implies"}
	}

	return vbus.Packet{
		Header:     header,
		Command:    command,
		FrameCount: frameCount,
		FrameData:  frameData[:want],
	}, nil
}

// decodeDatagramBody parses a Datagram's command and two parameters.
func decodeDatagramBody(header vbus.Header, body []byte) (vbus.Datagram, error) {
	if len(body) < datagramPayloadLen {
		return vbus.Datagram{}, &decodeError{"datagram body shorter than 8 bytes"}
	}
	return vbus.Datagram{
		Header:  header,
		Command: binary.LittleEndian.Uint16(body[0:2]),
		Param16: int16(binary.LittleEndian.Uint16(body[2:4])),
		Param32: int32(binary.LittleEndian.Uint32(body[4:8])),
	}, nil
}

// decodeTelegramBody parses a Telegram's command byte and its fixed-width
// frame_data buffer.
func decodeTelegramBody(header vbus.Header, body []byte) (vbus.Telegram, error) {
	if len(body) < telegramPayloadLen {
		return vbus.Telegram{}, &decodeError{"telegram body shorter than command + frame_data"}
	}
	var t vbus.Telegram
	t.Header = header
	t.Command = body[0]
	copy(t.FrameData[:], body[1:1+vbus.TelegramFrameDataLen])
	return t, nil
}

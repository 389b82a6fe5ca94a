// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

import (
	"testing"
	"time"

	"github.com/resol-go/vbus"
)

func TestDataSetFieldIteratorSkipsNonPacketsAndYieldsFields(t *testing.T) {
	f := buildFixtureFile()
	s := NewSpecification(f, English)

	packet := vbus.Packet{
		Header: vbus.Header{
			Timestamp:          time.Unix(0, 0).UTC(),
			Channel:            0x01,
			DestinationAddress: 0x0010,
			SourceAddress:      0x7E31,
			ProtocolVersion:    vbus.ProtocolVersionPacket,
		},
		Command:    0x0100,
		FrameCount: 2,
		FrameData:  []byte{0x78, 0x56, 0x34, 0x12, 0, 0, 0, 0},
	}
	telegram := vbus.Telegram{
		Header: vbus.Header{Channel: 0x01, DestinationAddress: 0x7771, SourceAddress: 0x2011, ProtocolVersion: vbus.ProtocolVersionTelegram},
		Command: 0x25,
	}
	datagram := vbus.Datagram{
		Header: vbus.Header{Channel: 0x01, DestinationAddress: 0x0000, SourceAddress: 0x7E31, ProtocolVersion: vbus.ProtocolVersionDatagram},
		Command: 0x0500,
	}

	data := []vbus.Data{telegram, packet, datagram}

	it := NewDataSetFieldIterator(s, data)

	item, ok := it.Next()
	if !ok {
		t.Fatalf("expected one field from the sole Packet")
	}
	if item.DataIndex != 1 {
		t.Fatalf("data_index = %d, want 1 (the Packet's position)", item.DataIndex)
	}
	if item.PacketSpec.PacketID != "01_0010_7E31_10_0100" {
		t.Fatalf("packet_id = %q", item.PacketSpec.PacketID)
	}
	if !item.RawValueOK || item.RawValue != 0x12345678 {
		t.Fatalf("raw_value = %v, ok=%v, want 0x12345678", item.RawValue, item.RawValueOK)
	}

	if _, ok := it.Next(); ok {
		t.Fatalf("expected exactly one field total, iterator should now be exhausted")
	}
}

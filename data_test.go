// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vbus

import (
	"testing"
	"time"
)

func mustTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func samplePacket(ts int64) Packet {
	return Packet{
		Header: Header{
			Timestamp:          mustTime(ts),
			Channel:            0x11,
			DestinationAddress: 0x0010,
			SourceAddress:      0x7E11,
			ProtocolVersion:    ProtocolVersionPacket,
		},
		Command:    0x0100,
		FrameCount: 2,
		FrameData:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}
}

func TestPacketIdentityIgnoresTimestamp(t *testing.T) {
	a := samplePacket(1485688933)
	b := samplePacket(1485688934)
	if !Equal(a, b) {
		t.Fatalf("expected identity to ignore timestamp")
	}
}

func TestPacketIdentityIgnoresPayload(t *testing.T) {
	a := samplePacket(1485688933)
	b := a
	b.FrameCount = 5
	b.FrameData = []byte{9, 9, 9, 9, 9, 9, 9, 9, 9, 9}
	if !Equal(a, b) {
		t.Fatalf("expected identity to ignore frame_count and frame_data")
	}
}

func TestHeaderTupleSensitivity(t *testing.T) {
	a := samplePacket(1485688933)

	b := a
	b.Header.Channel ^= 0x01
	if Equal(a, b) {
		t.Fatalf("channel flip should break equality")
	}

	c := a
	c.Header.DestinationAddress ^= 0x0001
	if Equal(a, c) {
		t.Fatalf("destination_address flip should break equality")
	}

	d := a
	d.Header.SourceAddress ^= 0x0001
	if Equal(a, d) {
		t.Fatalf("source_address flip should break equality")
	}
}

func TestDatagramParam16IdentityQuirk(t *testing.T) {
	header := Header{
		Timestamp:          mustTime(1485688933),
		Channel:            0x11,
		DestinationAddress: 0x0000,
		SourceAddress:      0x7E11,
		ProtocolVersion:    ProtocolVersionDatagram,
	}

	// command != 0x0900: param16/param32 are ignored by identity.
	a := Datagram{Header: header, Command: 0x0500, Param16: 0x0000, Param32: 1}
	b := Datagram{Header: header, Command: 0x0500, Param16: 0x00FF, Param32: 2}
	if !Equal(a, b) {
		t.Fatalf("expected param16/param32 to be ignored for command 0x0500")
	}

	// command == 0x0900: param16 participates in identity, param32 never does.
	c := Datagram{Header: header, Command: DatagramValueByIndexCommand, Param16: 1, Param32: 10}
	d := Datagram{Header: header, Command: DatagramValueByIndexCommand, Param16: 1, Param32: 20}
	e := Datagram{Header: header, Command: DatagramValueByIndexCommand, Param16: 2, Param32: 10}
	if !Equal(c, d) {
		t.Fatalf("expected param32 to remain ignored even for command 0x0900")
	}
	if Equal(c, e) {
		t.Fatalf("expected differing param16 to break identity for command 0x0900")
	}
}

func TestIDStringFormats(t *testing.T) {
	p := samplePacket(1485688933)
	if got, want := p.IDString(), "11_0010_7E11_10_0100"; got != want {
		t.Fatalf("packet id = %q, want %q", got, want)
	}

	dg := Datagram{
		Header: Header{
			Channel:            0x11,
			DestinationAddress: 0x0000,
			SourceAddress:      0x7E11,
			ProtocolVersion:    ProtocolVersionDatagram,
		},
		Command: 0x0500,
		Param16: 0,
	}
	if got, want := dg.IDString(), "11_0000_7E11_20_0500_0000"; got != want {
		t.Fatalf("datagram id = %q, want %q", got, want)
	}

	tg := Telegram{
		Header: Header{
			Channel:            0x11,
			DestinationAddress: 0x7771,
			SourceAddress:      0x2011,
			ProtocolVersion:    ProtocolVersionTelegram,
		},
		Command: 0x25,
	}
	if got, want := tg.IDString(), "11_7771_2011_30_25"; got != want {
		t.Fatalf("telegram id = %q, want %q", got, want)
	}
}

func TestDatagramParam16SignedOrdering(t *testing.T) {
	header := Header{
		Timestamp:          mustTime(1485688933),
		Channel:            0x11,
		DestinationAddress: 0x0000,
		SourceAddress:      0x7E11,
		ProtocolVersion:    ProtocolVersionDatagram,
	}

	negative := Datagram{Header: header, Command: DatagramValueByIndexCommand, Param16: -1}
	positive := Datagram{Header: header, Command: DatagramValueByIndexCommand, Param16: 1}

	if Compare(negative, positive) >= 0 {
		t.Fatalf("expected param16 -1 < 1 under signed ordering, got Compare = %d", Compare(negative, positive))
	}
	if Compare(positive, negative) <= 0 {
		t.Fatalf("expected param16 1 > -1 under signed ordering, got Compare = %d", Compare(positive, negative))
	}
}

func TestOrderingTotality(t *testing.T) {
	a := samplePacket(1485688933)
	b := a
	b.Header.DestinationAddress = 0x0015
	c := a
	c.Header.DestinationAddress = 0x6651

	if Compare(a, b) >= 0 {
		t.Fatalf("expected a < b")
	}
	if Compare(b, c) >= 0 {
		t.Fatalf("expected b < c")
	}
	if Compare(a, c) >= 0 {
		t.Fatalf("expected transitivity a < c")
	}
	if Compare(a, a) != 0 {
		t.Fatalf("expected reflexivity")
	}
	if Compare(c, a) <= 0 {
		t.Fatalf("expected antisymmetry")
	}
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vbus

import "testing"

func packetAt(channel byte, dst, src uint16, command uint16, ts int64) Packet {
	return Packet{
		Header: Header{
			Timestamp:          mustTime(ts),
			Channel:            channel,
			DestinationAddress: dst,
			SourceAddress:      src,
			ProtocolVersion:    ProtocolVersionPacket,
		},
		Command: command,
	}
}

func TestDataSetOverwrite(t *testing.T) {
	ds := NewDataSet()
	first := packetAt(0x11, 0x0010, 0x7E11, 0x0100, 1000)
	ds.Insert(first)

	second := first
	second.Header.Timestamp = mustTime(1001)
	ds.Insert(second)

	if ds.Len() != 1 {
		t.Fatalf("expected exactly one member after overwrite, got %d", ds.Len())
	}
	if got, want := ds.AsSlice()[0].IDString(), "11_0010_7E11_10_0100"; got != want {
		t.Fatalf("identity = %q, want %q", got, want)
	}
	if !ds.Timestamp().Equal(mustTime(1001)) {
		t.Fatalf("expected DataSet timestamp to advance to T+1s")
	}
}

func TestDataSetTimestampMonotonicity(t *testing.T) {
	ds := NewDataSet()
	before := ds.Timestamp()
	ds.Insert(packetAt(0x11, 0x0010, 0x7E11, 0x0100, 500))
	if ds.Timestamp().Before(before) {
		t.Fatalf("timestamp must never move backwards")
	}
}

func TestDataSetSortOrder(t *testing.T) {
	ds := NewDataSet()

	ds.Insert(Datagram{
		Header:  Header{Channel: 0x11, DestinationAddress: 0x0000, SourceAddress: 0x7E11, ProtocolVersion: ProtocolVersionDatagram},
		Command: 0x0500, Param16: 0,
	})
	ds.Insert(packetAt(0x11, 0x0010, 0x7E11, 0x0100, 1))
	ds.Insert(packetAt(0x11, 0x0010, 0x7E22, 0x0100, 1))
	ds.Insert(packetAt(0x11, 0x0015, 0x7E11, 0x0100, 1))
	ds.Insert(packetAt(0x11, 0x6651, 0x7E11, 0x0200, 1))
	ds.Insert(Telegram{
		Header:  Header{Channel: 0x11, DestinationAddress: 0x7771, SourceAddress: 0x2011, ProtocolVersion: ProtocolVersionTelegram},
		Command: 0x25,
	})
	ds.Insert(packetAt(0x12, 0x0010, 0x7E11, 0x0100, 1))

	ds.Sort()

	want := []string{
		"11_0000_7E11_20_0500_0000",
		"11_0010_7E11_10_0100",
		"11_0010_7E22_10_0100",
		"11_0015_7E11_10_0100",
		"11_6651_7E11_10_0200",
		"11_7771_2011_30_25",
		"12_0010_7E11_10_0100",
	}

	got := make([]string, 0, len(want))
	for _, d := range ds.AsSlice() {
		got = append(got, d.IDString())
	}

	if len(got) != len(want) {
		t.Fatalf("member count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted[%d] = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestDataSetRemoveOlderThanRetainsTimestamp(t *testing.T) {
	ds := NewDataSet()
	ds.Insert(packetAt(0x11, 0x0010, 0x7E11, 0x0100, 100))
	ds.Insert(packetAt(0x11, 0x0015, 0x7E11, 0x0100, 200))

	highWater := ds.Timestamp()
	ds.RemoveOlderThan(mustTime(500))

	if ds.Len() != 0 {
		t.Fatalf("expected all members aged out, got %d remaining", ds.Len())
	}
	if !ds.Timestamp().Equal(highWater) {
		t.Fatalf("remove_older_than must not lower DataSet.timestamp")
	}
}

func TestDataSetMergePreservesOrder(t *testing.T) {
	a := NewDataSet()
	a.Insert(packetAt(0x11, 0x0010, 0x7E11, 0x0100, 1))

	b := NewDataSet()
	b.Insert(packetAt(0x11, 0x0015, 0x7E11, 0x0100, 2))
	b.Insert(packetAt(0x11, 0x6651, 0x7E11, 0x0200, 3))

	a.Merge(b)

	want := []string{"11_0010_7E11_10_0100", "11_0015_7E11_10_0100", "11_6651_7E11_10_0200"}
	got := make([]string, 0, len(want))
	for _, d := range a.AsSlice() {
		got = append(got, d.IDString())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merged[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

import "github.com/resol-go/vbus"

// DataSetPacketField is one item yielded by a DataSetFieldIterator: the
// index of the source Data within the slice it was built from, the shared
// PacketSpec it was resolved against, the index of the yielded field within
// that spec, and the field's decoded raw value (absent if ok is false).
type DataSetPacketField struct {
	DataIndex  int
	PacketSpec *PacketSpec
	FieldIndex int
	RawValue   float64
	RawValueOK bool
}

// DataSetFieldIterator produces one DataSetPacketField per (Packet-typed
// Data, field in that Packet's resolved spec) pair across a Data slice,
// skipping Datagram and Telegram members silently. It is lazy, single-pass
// and forward-only: state is an explicit (dataIndex, fieldIndex) cursor,
// never a goroutine or channel (§9: no generator/async concurrency).
type DataSetFieldIterator struct {
	specification *Specification
	data          []vbus.Data

	dataIndex        int // cursor into data, index of the next candidate
	currentDataIndex int // index of the Data that packetSpec/packet were resolved from
	packetSpec       *PacketSpec
	packet           vbus.Packet
	fieldIndex       int
}

// NewDataSetFieldIterator returns an iterator over data's Packet members,
// resolving each one's fields against specification.
func NewDataSetFieldIterator(specification *Specification, data []vbus.Data) *DataSetFieldIterator {
	return &DataSetFieldIterator{specification: specification, data: data}
}

// Next advances the iterator and returns its next item, or ok=false once
// exhausted.
func (it *DataSetFieldIterator) Next() (item DataSetPacketField, ok bool) {
	for {
		if it.packetSpec != nil && it.fieldIndex < len(it.packetSpec.Fields) {
			field := it.packetSpec.Fields[it.fieldIndex]
			raw, rawOK := field.RawValueF64(it.packet.LogicalFrameData())
			item = DataSetPacketField{
				DataIndex:  it.currentDataIndex,
				PacketSpec: it.packetSpec,
				FieldIndex: it.fieldIndex,
				RawValue:   raw,
				RawValueOK: rawOK,
			}
			it.fieldIndex++
			return item, true
		}

		// Current packet exhausted (or none yet); advance to the next
		// Packet-typed Data.
		it.packetSpec = nil
		if it.dataIndex >= len(it.data) {
			return DataSetPacketField{}, false
		}

		d := it.data[it.dataIndex]
		packet, isPacket := d.(vbus.Packet)
		it.currentDataIndex = it.dataIndex
		it.dataIndex++
		if !isPacket {
			continue
		}

		header := packet.GetHeader()
		it.packet = packet
		it.packetSpec = it.specification.GetPacketSpec(header.Channel, header.DestinationAddress, header.SourceAddress, packet.Command)
		it.fieldIndex = 0
	}
}

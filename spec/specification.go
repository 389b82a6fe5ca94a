// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

import (
	"fmt"
	"sync"
)

// DeviceSpec describes one endpoint address observed on the bus: its
// formatted device_id, the channel/address it was resolved against, an
// optional peer address (present only when its template's peer mask was
// non-zero), and a localized, channel-prefixed display name.
type DeviceSpec struct {
	DeviceID    string
	Channel     byte
	SelfAddress uint16
	PeerAddress *uint16
	Name        string
}

// PacketSpec describes one (channel, destination, source, command) tuple: a
// formatted packet_id, the peer DeviceSpecs, a derived display name, and the
// ordered field descriptors used to decode a Packet's payload.
type PacketSpec struct {
	PacketID           string
	Channel            byte
	DestinationAddress uint16
	SourceAddress      uint16
	Command            uint16
	DestinationDevice  *DeviceSpec
	SourceDevice       *DeviceSpec
	Name               string
	Fields             []*PacketFieldSpec
}

// GetFieldSpec returns the field spec with the given FieldID, if present.
func (p *PacketSpec) GetFieldSpec(fieldID string) (*PacketFieldSpec, bool) {
	for _, f := range p.Fields {
		if f.FieldID == fieldID {
			return f, true
		}
	}
	return nil, false
}

// PacketFieldSpec describes one field of a PacketSpec: its stable
// identifiers, localized name, unit, decimal precision, rendering type, and
// the byte parts that make up its raw value (§4.6).
type PacketFieldSpec struct {
	FieldID       string
	PacketFieldID string
	Name          string
	UnitID        int
	UnitFamily    UnitFamily
	UnitCode      string
	UnitText      string
	Precision     int32
	Typ           Type
	Parts         []FieldPart
}

// broadcastAddress is the logical "any device on this channel" address;
// PacketSpec names collapse to the source device's name alone when it is
// the destination.
const broadcastAddress uint16 = 0x0010

// Specification lazily populates device and packet descriptor caches from a
// SpecificationFile and a chosen display Language. The caches grow only and
// are never evicted; they are guarded by a mutex rather than the
// borrow-discipline the source relies on, per the design note in §9 of the
// expanded specification: a Go implementation may take exclusive access for
// lookups instead of interior mutability.
type Specification struct {
	file     SpecificationFile
	language Language

	mu      sync.Mutex
	devices []*DeviceSpec
	packets []*PacketSpec
}

// NewSpecification returns a Specification backed by file, rendering names
// in language.
func NewSpecification(file SpecificationFile, language Language) *Specification {
	return &Specification{file: file, language: language}
}

// GetDeviceSpec resolves (or lazily creates and caches) the DeviceSpec for
// self on channel, as seen from peer. The cache lookup ignores peer when a
// cached entry's PeerAddress is nil (§4.5 device cache).
func (s *Specification) GetDeviceSpec(channel byte, self, peer uint16) *DeviceSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateDeviceSpecLocked(channel, self, peer)
}

func (s *Specification) getOrCreateDeviceSpecLocked(channel byte, self, peer uint16) *DeviceSpec {
	for _, d := range s.devices {
		if d.Channel != channel || d.SelfAddress != self {
			continue
		}
		if d.PeerAddress == nil || *d.PeerAddress == peer {
			return d
		}
	}

	spec := &DeviceSpec{Channel: channel, SelfAddress: self}

	template, found := s.file.FindDeviceTemplate(self, peer)
	if found && template.PeerMask != 0 {
		p := peer
		spec.PeerAddress = &p
		spec.DeviceID = fmt.Sprintf("%02X_%04X_%04X", channel, self, peer)
	} else {
		spec.DeviceID = fmt.Sprintf("%02X_%04X", channel, self)
	}

	var name string
	if found {
		name = s.file.LocalizedTextByIndex(template.NameIndex, s.language)
	} else {
		name = s.unknownDeviceName(self)
	}
	if channel != 0 {
		name = fmt.Sprintf("VBus %d: %s", channel, name)
	}
	spec.Name = name

	s.devices = append(s.devices, spec)
	return spec
}

// unknownDeviceName synthesizes the "unknown device" fallback text. French
// intentionally reuses the English copy; this is a known, deliberate gap
// (§9), not a missing translation.
func (s *Specification) unknownDeviceName(self uint16) string {
	switch s.language {
	case German:
		return fmt.Sprintf("Unbekanntes Gerät 0x%04X", self)
	default: // English, French
		return fmt.Sprintf("Unknown device 0x%04X", self)
	}
}

// GetPacketSpec resolves (or lazily creates and caches) the PacketSpec for
// the exact (channel, destination, source, command) tuple (§4.5 packet
// cache). An unknown packet yields a PacketSpec with an empty Fields list.
func (s *Specification) GetPacketSpec(channel byte, destination, source, command uint16) *PacketSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.packets {
		if p.Channel == channel && p.DestinationAddress == destination && p.SourceAddress == source && p.Command == command {
			return p
		}
	}

	destDevice := s.getOrCreateDeviceSpecLocked(channel, destination, source)
	srcDevice := s.getOrCreateDeviceSpecLocked(channel, source, destination)

	ps := &PacketSpec{
		PacketID:           fmt.Sprintf("%02X_%04X_%04X_10_%04X", channel, destination, source, command),
		Channel:            channel,
		DestinationAddress: destination,
		SourceAddress:      source,
		Command:            command,
		DestinationDevice:  destDevice,
		SourceDevice:       srcDevice,
	}
	if destination == broadcastAddress {
		ps.Name = srcDevice.Name
	} else {
		ps.Name = fmt.Sprintf("%s => %s", srcDevice.Name, destDevice.Name)
	}

	if template, found := s.file.FindPacketTemplate(destination, source, command); found {
		ps.Fields = make([]*PacketFieldSpec, 0, len(template.Fields))
		offsetSeen := map[uint16]int{}
		for _, tf := range template.Fields {
			unit := s.file.UnitByIndex(tf.UnitIndex)
			firstOffset := uint16(0)
			if len(tf.Parts) > 0 {
				firstOffset = tf.Parts[0].Offset
			}
			subIndex := offsetSeen[firstOffset]
			offsetSeen[firstOffset]++
			fieldID := fmt.Sprintf("%03d_%d_%d", firstOffset, tf.Width, subIndex)
			ps.Fields = append(ps.Fields, &PacketFieldSpec{
				FieldID:       fieldID,
				PacketFieldID: fmt.Sprintf("%s_%s", ps.PacketID, fieldID),
				Name:          s.file.LocalizedTextByIndex(tf.NameIndex, s.language),
				UnitID:        unit.ID,
				UnitFamily:    unit.Family,
				UnitCode:      unit.Code,
				UnitText:      unit.Text,
				Precision:     tf.Precision,
				Typ:           tf.Typ,
				Parts:         tf.Parts,
			})
		}
	}

	s.packets = append(s.packets, ps)
	return ps
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hashicorp/go-version"
)

// ErrBadMagic is returned when a byte stream does not start with the
// specification blob's magic marker.
var ErrBadMagic = errors.New("spec: not a specification file (bad magic)")

// ErrUnsupportedVersion is returned when a blob declares a format version
// this build cannot read.
var ErrUnsupportedVersion = errors.New("spec: unsupported specification file format version")

// ErrTruncated is returned when a blob ends before a length-prefixed
// section has been fully read.
var ErrTruncated = errors.New("spec: truncated specification file")

const fileMagic = "VBSF"

// SupportedVersionConstraint is the range of format versions this build's
// decoder accepts. Bumping the blob's major version is a breaking change;
// minor/patch bumps stay readable.
const SupportedVersionConstraint = ">= 1.0.0, < 2.0.0"

// DeviceTemplate describes one entry of the specification blob's device
// table: the address pair it matches, the peer mask that determines whether
// a concrete peer address is part of a DeviceSpec's identity, and an index
// into the blob's localized text table for its name.
type DeviceTemplate struct {
	SelfAddress uint16
	PeerAddress uint16
	PeerMask    uint16
	NameIndex   int
}

// PacketTemplateField describes one field definition within a
// PacketTemplate: which Unit it uses, its decimal precision, its rendering
// Type, and the ordered byte parts that make up its raw value.
type PacketTemplateField struct {
	NameIndex int
	UnitIndex int
	Width     int // declared byte width, used only for FieldID formatting
	Precision int32
	Typ       Type
	Parts     []FieldPart
}

// PacketTemplate describes one entry of the specification blob's packet
// table: the address/command tuple it matches and its ordered field list.
type PacketTemplate struct {
	DestinationAddress uint16
	SourceAddress      uint16
	Command            uint16
	Fields             []PacketTemplateField
}

// SpecificationFile is an opaque, once-loaded catalog of device/packet
// templates, units, and localized text. Its full historical binary format
// is out of scope for this repository; File implements a minimal,
// version-tagged encoding sufficient to exercise Specification end to end,
// and the interface keeps alternate backing formats pluggable.
type SpecificationFile interface {
	FindDeviceTemplate(self, peer uint16) (DeviceTemplate, bool)
	FindPacketTemplate(dst, src, command uint16) (PacketTemplate, bool)
	TextByIndex(idx int) string
	LocalizedTextByIndex(idx int, lang Language) string
	UnitByIndex(idx int) Unit
}

// File is the in-memory SpecificationFile backing this repository's minimal
// binary catalog format.
type File struct {
	texts   [][3]string // [English, German, French]
	units   []Unit
	devices []DeviceTemplate
	packets []PacketTemplate
}

var _ SpecificationFile = (*File)(nil)

// FindDeviceTemplate returns the device template matching the exact
// (self, peer) pair, if any. A template whose PeerMask is zero matches any
// peer that shares its SelfAddress; Specification's cache is responsible for
// the broader "peer is optional" lookup semantics (§4.5), this only does the
// blob-level exact lookup the source's find_device_template performs.
func (f *File) FindDeviceTemplate(self, peer uint16) (DeviceTemplate, bool) {
	for _, d := range f.devices {
		if d.SelfAddress != self {
			continue
		}
		if d.PeerMask == 0 || d.PeerAddress == peer {
			return d, true
		}
	}
	return DeviceTemplate{}, false
}

// FindPacketTemplate returns the packet template matching the exact
// (dst, src, command) tuple, if any.
func (f *File) FindPacketTemplate(dst, src, command uint16) (PacketTemplate, bool) {
	for _, p := range f.packets {
		if p.DestinationAddress == dst && p.SourceAddress == src && p.Command == command {
			return p, true
		}
	}
	return PacketTemplate{}, false
}

// TextByIndex returns the English text at idx, or "" if idx is out of range.
func (f *File) TextByIndex(idx int) string {
	return f.LocalizedTextByIndex(idx, English)
}

// LocalizedTextByIndex returns the text at idx for the requested language,
// or "" if idx is out of range.
func (f *File) LocalizedTextByIndex(idx int, lang Language) string {
	if idx < 0 || idx >= len(f.texts) {
		return ""
	}
	return f.texts[idx][lang]
}

// UnitByIndex returns the unit at idx, or the zero Unit if idx is out of
// range.
func (f *File) UnitByIndex(idx int) Unit {
	if idx < 0 || idx >= len(f.units) {
		return Unit{}
	}
	return f.units[idx]
}

// Marshal encodes f into this repository's minimal specification blob
// format, version-tagged with formatVersion (e.g. "1.0.0").
func (f *File) Marshal(formatVersion string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileMagic)
	writeString8(&buf, formatVersion)

	writeUint16(&buf, uint16(len(f.texts)))
	for _, t := range f.texts {
		for _, s := range t {
			writeString16(&buf, s)
		}
	}

	writeUint16(&buf, uint16(len(f.units)))
	for _, u := range f.units {
		writeUint16(&buf, uint16(u.ID))
		buf.WriteByte(byte(u.Family))
		writeString16(&buf, u.Code)
		writeString16(&buf, u.Text)
	}

	writeUint16(&buf, uint16(len(f.devices)))
	for _, d := range f.devices {
		writeUint16(&buf, d.SelfAddress)
		writeUint16(&buf, d.PeerAddress)
		writeUint16(&buf, d.PeerMask)
		writeUint16(&buf, uint16(d.NameIndex))
	}

	writeUint16(&buf, uint16(len(f.packets)))
	for _, p := range f.packets {
		writeUint16(&buf, p.DestinationAddress)
		writeUint16(&buf, p.SourceAddress)
		writeUint16(&buf, p.Command)
		writeUint16(&buf, uint16(len(p.Fields)))
		for _, field := range p.Fields {
			writeUint16(&buf, uint16(field.NameIndex))
			writeUint16(&buf, uint16(field.UnitIndex))
			writeUint16(&buf, uint16(field.Width))
			_ = binary.Write(&buf, binary.LittleEndian, field.Precision)
			buf.WriteByte(byte(field.Typ))
			writeUint16(&buf, uint16(len(field.Parts)))
			for _, part := range field.Parts {
				writeUint16(&buf, part.Offset)
				buf.WriteByte(part.Mask)
				buf.WriteByte(part.BitPos)
				if part.IsSigned {
					buf.WriteByte(1)
				} else {
					buf.WriteByte(0)
				}
				_ = binary.Write(&buf, binary.LittleEndian, part.Factor)
			}
		}
	}

	return buf.Bytes(), nil
}

// ParseFile decodes a specification blob produced by Marshal, rejecting
// format versions outside SupportedVersionConstraint.
func ParseFile(data []byte) (*File, error) {
	r := bytes.NewReader(data)

	magic := make([]byte, len(fileMagic))
	if _, err := r.Read(magic); err != nil || string(magic) != fileMagic {
		return nil, ErrBadMagic
	}

	verStr, err := readString8(r)
	if err != nil {
		return nil, err
	}
	blobVersion, err := version.NewVersion(verStr)
	if err != nil {
		return nil, fmt.Errorf("spec: malformed format version %q: %w", verStr, err)
	}
	constraint, err := version.NewConstraint(SupportedVersionConstraint)
	if err != nil {
		return nil, err
	}
	if !constraint.Check(blobVersion) {
		return nil, fmt.Errorf("%w: blob is %s, build accepts %s", ErrUnsupportedVersion, blobVersion, SupportedVersionConstraint)
	}

	f := &File{}

	textCount, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	f.texts = make([][3]string, textCount)
	for i := range f.texts {
		for lang := 0; lang < 3; lang++ {
			s, err := readString16(r)
			if err != nil {
				return nil, err
			}
			f.texts[i][lang] = s
		}
	}

	unitCount, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	f.units = make([]Unit, unitCount)
	for i := range f.units {
		id, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		familyByte, err := r.ReadByte()
		if err != nil {
			return nil, ErrTruncated
		}
		code, err := readString16(r)
		if err != nil {
			return nil, err
		}
		text, err := readString16(r)
		if err != nil {
			return nil, err
		}
		f.units[i] = Unit{ID: int(id), Family: UnitFamily(familyByte), Code: code, Text: text}
	}

	deviceCount, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	f.devices = make([]DeviceTemplate, deviceCount)
	for i := range f.devices {
		self, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		peer, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		mask, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		nameIdx, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		f.devices[i] = DeviceTemplate{SelfAddress: self, PeerAddress: peer, PeerMask: mask, NameIndex: int(nameIdx)}
	}

	packetCount, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	f.packets = make([]PacketTemplate, packetCount)
	for i := range f.packets {
		dst, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		src, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		cmd, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		fieldCount, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		fields := make([]PacketTemplateField, fieldCount)
		for j := range fields {
			nameIdx, err := readUint16(r)
			if err != nil {
				return nil, err
			}
			unitIdx, err := readUint16(r)
			if err != nil {
				return nil, err
			}
			width, err := readUint16(r)
			if err != nil {
				return nil, err
			}
			var precision int32
			if err := binary.Read(r, binary.LittleEndian, &precision); err != nil {
				return nil, ErrTruncated
			}
			typByte, err := r.ReadByte()
			if err != nil {
				return nil, ErrTruncated
			}
			partCount, err := readUint16(r)
			if err != nil {
				return nil, err
			}
			parts := make([]FieldPart, partCount)
			for k := range parts {
				offset, err := readUint16(r)
				if err != nil {
					return nil, err
				}
				mask, err := r.ReadByte()
				if err != nil {
					return nil, ErrTruncated
				}
				bitPos, err := r.ReadByte()
				if err != nil {
					return nil, ErrTruncated
				}
				signedByte, err := r.ReadByte()
				if err != nil {
					return nil, ErrTruncated
				}
				var factor int64
				if err := binary.Read(r, binary.LittleEndian, &factor); err != nil {
					return nil, ErrTruncated
				}
				parts[k] = FieldPart{Offset: offset, Mask: mask, BitPos: bitPos, IsSigned: signedByte != 0, Factor: factor}
			}
			fields[j] = PacketTemplateField{NameIndex: int(nameIdx), UnitIndex: int(unitIdx), Width: int(width), Precision: precision, Typ: Type(typByte), Parts: parts}
		}
		f.packets[i] = PacketTemplate{DestinationAddress: dst, SourceAddress: src, Command: cmd, Fields: fields}
	}

	return f, nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}

func writeString8(buf *bytes.Buffer, s string) {
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
}

func writeString16(buf *bytes.Buffer, s string) {
	writeUint16(buf, uint16(len(s)))
	buf.WriteString(s)
}

func readUint16(r *bytes.Reader) (uint16, error) {
	var v uint16
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, ErrTruncated
	}
	return v, nil
}

func readString8(r *bytes.Reader) (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", ErrTruncated
	}
	b := make([]byte, n)
	if _, err := r.Read(b); err != nil {
		return "", ErrTruncated
	}
	return string(b), nil
}

func readString16(r *bytes.Reader) (string, error) {
	n, err := readUint16(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if n > 0 {
		if _, err := r.Read(b); err != nil {
			return "", ErrTruncated
		}
	}
	return string(b), nil
}

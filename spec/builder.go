// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

// Builder assembles a File in memory, for tests and for seeding a blob
// before Marshal. It performs no deduplication; callers own uniqueness.
type Builder struct {
	file File
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddText appends a localized text triple and returns its index.
func (b *Builder) AddText(en, de, fr string) int {
	b.file.texts = append(b.file.texts, [3]string{en, de, fr})
	return len(b.file.texts) - 1
}

// AddUnit appends a unit and returns its index.
func (b *Builder) AddUnit(family UnitFamily, code, text string) int {
	id := len(b.file.units)
	b.file.units = append(b.file.units, Unit{ID: id, Family: family, Code: code, Text: text})
	return id
}

// AddDevice appends a device template.
func (b *Builder) AddDevice(d DeviceTemplate) {
	b.file.devices = append(b.file.devices, d)
}

// AddPacket appends a packet template.
func (b *Builder) AddPacket(p PacketTemplate) {
	b.file.packets = append(b.file.packets, p)
}

// Build returns the assembled File.
func (b *Builder) Build() *File {
	f := b.file
	return &f
}

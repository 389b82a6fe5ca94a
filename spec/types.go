// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package spec loads a catalog of device/packet/field descriptors from a
// specification blob and, on demand, materializes cached descriptor objects
// that decode Packet payload bytes into typed, unit-bearing, locale-aware
// values.
package spec

// Language selects which localized text a Specification renders device and
// packet names in. French intentionally falls back to the English "unknown
// device" text; see unknownDeviceName.
type Language byte

const (
	English Language = iota
	German
	French
)

// Type names how a PacketFieldSpec's raw value should be rendered.
type Type byte

const (
	// Number renders a fixed-precision decimal, optionally unit-suffixed.
	Number Type = iota
	// Time renders a round-to-minute clock-of-day, HH:MM.
	Time
	// WeekTime renders a round-to-minute weekday-and-clock, "Mon,HH:MM".
	WeekTime
	// DateTime renders a round-to-second absolute UTC timestamp.
	DateTime
)

func (t Type) String() string {
	switch t {
	case Number:
		return "Number"
	case Time:
		return "Time"
	case WeekTime:
		return "WeekTime"
	case DateTime:
		return "DateTime"
	default:
		return "Unknown"
	}
}

// UnitFamily classifies a Unit for presentation grouping; it carries no
// decoding semantics of its own.
type UnitFamily byte

const (
	UnitFamilyNone UnitFamily = iota
	UnitFamilyTemperature
	UnitFamilyEnergy
	UnitFamilyVolumeFlow
	UnitFamilyPressure
	UnitFamilyVolume
	UnitFamilyPower
	UnitFamilyTime
)

// Unit is a unit-of-measure descriptor: a stable numeric ID, the family it
// belongs to for grouping, a short machine-readable code, and the text
// appended to formatted values (e.g. " Wh").
type Unit struct {
	ID     int
	Family UnitFamily
	Code   string
	Text   string
}

// FieldPart is one contributing byte to a field's raw integer value. See
// PacketFieldSpec.RawValueI64 for the accumulation algorithm.
type FieldPart struct {
	Offset   uint16
	Mask     byte
	BitPos   byte
	IsSigned bool
	Factor   int64
}

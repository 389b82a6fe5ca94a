// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

import "testing"

// le32Parts builds the part list for a little-endian 4-byte field starting
// at offset, signed or unsigned.
func le32Parts(offset uint16, signed bool) []FieldPart {
	parts := make([]FieldPart, 4)
	factor := int64(1)
	for i := 0; i < 4; i++ {
		parts[i] = FieldPart{
			Offset:   offset + uint16(i),
			Mask:     0xFF,
			BitPos:   0,
			IsSigned: signed && i == 3, // only the most significant byte needs sign extension
			Factor:   factor,
		}
		factor *= 256
	}
	return parts
}

var s6Buffer = []byte{0x78, 0x56, 0x34, 0x12, 0xB8, 0x22, 0x00, 0x00, 0x48, 0xDD, 0xFF, 0xFF}

func TestRawValueI64LittleEndianUnsigned(t *testing.T) {
	f := &PacketFieldSpec{Parts: le32Parts(4, false)}
	v, ok := f.RawValueI64(s6Buffer)
	if !ok || v != 8888 {
		t.Fatalf("raw = %d, ok=%v, want 8888", v, ok)
	}
}

func TestRawValueI64SignExtension(t *testing.T) {
	f := &PacketFieldSpec{Parts: le32Parts(8, true)}
	v, ok := f.RawValueI64(s6Buffer)
	if !ok || v != -8888 {
		t.Fatalf("raw = %d, ok=%v, want -8888", v, ok)
	}
}

func TestRawValueF64Precision(t *testing.T) {
	f := &PacketFieldSpec{Parts: le32Parts(4, true), Precision: 1}
	v, ok := f.RawValueF64(s6Buffer)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got, want := Format(v, ok, Number, 1, "", false), "888.8"; got != want {
		t.Fatalf("formatted = %q, want %q", got, want)
	}
}

func TestRawValueAbsentWhenEveryPartOutOfRange(t *testing.T) {
	f := &PacketFieldSpec{Parts: le32Parts(100, false)}
	_, ok := f.RawValueI64(s6Buffer)
	if ok {
		t.Fatalf("expected absent value for out-of-range parts")
	}
}

func TestDecodeRoundTripLittleEndianUnsigned(t *testing.T) {
	// Property 8: mask=0xFF, bit_pos=0, unsigned, factor=256^k reads the
	// buffer's little-endian unsigned interpretation.
	buf := []byte{0x12, 0x34, 0x56, 0x78}
	f := &PacketFieldSpec{Parts: le32Parts(0, false)}
	v, ok := f.RawValueI64(buf)
	if !ok || v != 0x78563412 {
		t.Fatalf("raw = %#x, ok=%v, want 0x78563412", v, ok)
	}
}

func TestSignExtensionOfSingleByte(t *testing.T) {
	// Property 9: a signed part reading 0xFF contributes -1*factor.
	f := &PacketFieldSpec{Parts: []FieldPart{{Offset: 0, Mask: 0xFF, IsSigned: true, Factor: 7}}}
	v, ok := f.RawValueI64([]byte{0xFF})
	if !ok || v != -7 {
		t.Fatalf("raw = %d, ok=%v, want -7", v, ok)
	}
}

func TestPowerOfTenFastPaths(t *testing.T) {
	if powerOfTenI64(0) != 1 || powerOfTenI64(3) != 1000 {
		t.Fatalf("powerOfTenI64 fast path mismatch")
	}
	if powerOfTenF64(0) != 1 || powerOfTenF64(2) != 100 {
		t.Fatalf("powerOfTenF64 fast path mismatch")
	}
	if got, want := powerOfTenF64(-1), 0.1; got != want {
		t.Fatalf("powerOfTenF64(-1) = %v, want %v", got, want)
	}
}

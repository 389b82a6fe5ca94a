// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

import "math"

// powersOfTenI64 is the fast-path table for |precision| <= 9 that
// powerOfTenF64 (and so RawValueF64) uses to avoid calling math.Pow for the
// overwhelmingly common case.
var powersOfTenI64 = [...]int64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
}

// powerOfTenI64 returns 10^n for n in [0, 18]: a table lookup for n <= 9,
// falling back to repeated multiplication above that.
func powerOfTenI64(n int) int64 {
	if n >= 0 && n < len(powersOfTenI64) {
		return powersOfTenI64[n]
	}
	result := int64(1)
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}

// powerOfTenF64 returns 10^n for any integer n, with a table-driven fast
// path for |n| <= 9 and math.Pow beyond that.
func powerOfTenF64(n int) float64 {
	if n >= 0 && n < len(powersOfTenI64) {
		return float64(powersOfTenI64[n])
	}
	if n < 0 && -n < len(powersOfTenI64) {
		return 1.0 / float64(powersOfTenI64[-n])
	}
	return math.Pow(10, float64(n))
}

// RawValueI64 decodes buf against the field's parts per §4.6: each part
// whose offset falls within buf contributes b*factor to a 64-bit signed
// accumulator, where b is the (optionally masked, shifted, sign-extended)
// byte at that offset. ok is false iff every part's offset fell outside
// buf, in which case the value is absent.
func (f *PacketFieldSpec) RawValueI64(buf []byte) (value int64, ok bool) {
	var acc int64
	for _, part := range f.Parts {
		if int(part.Offset) >= len(buf) {
			continue
		}
		b := buf[part.Offset]

		var v int64
		if part.IsSigned {
			v = int64(int8(b))
		} else {
			v = int64(b)
		}

		if part.Mask != 0xFF {
			v &= int64(part.Mask)
		}
		if part.BitPos > 0 {
			v >>= part.BitPos
		}

		acc += v * part.Factor
		ok = true
	}
	return acc, ok
}

// RawValueF64 is RawValueI64 rescaled by 10^-Precision, the floating
// representation §4.6 defines.
func (f *PacketFieldSpec) RawValueF64(buf []byte) (value float64, ok bool) {
	raw, ok := f.RawValueI64(buf)
	if !ok {
		return 0, false
	}
	return float64(raw) * powerOfTenF64(-int(f.Precision)), true
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vbus

// Data is a tagged union over {Packet, Datagram, Telegram}. The variant
// count is fixed at three; isData is an unexported marker that seals the
// interface against implementations outside this package, and Equal/Compare
// dispatch on the concrete type explicitly rather than through virtual
// double-dispatch methods, matching the source's free PartialEq/PartialOrd
// implementations.
type Data interface {
	GetHeader() Header
	IDString() string
	isData()
}

// Equal reports whether a and b represent the same logical slot in a
// controller's data stream: same header tuple, same variant, and equal
// command selector (with the Datagram param16 quirk). Timestamp, frame
// counts and payload bytes are never consulted.
func Equal(a, b Data) bool {
	ha, hb := a.GetHeader(), b.GetHeader()
	ac, ad, as, ap := ha.addressTuple()
	bc, bd, bs, bp := hb.addressTuple()
	if ac != bc || ad != bd || as != bs || ap != bp {
		return false
	}
	switch va := a.(type) {
	case Packet:
		vb, ok := b.(Packet)
		return ok && va.Command == vb.Command
	case Telegram:
		vb, ok := b.(Telegram)
		return ok && va.Command == vb.Command
	case Datagram:
		vb, ok := b.(Datagram)
		if !ok || va.Command != vb.Command {
			return false
		}
		if va.identitySignificantParam16() {
			return va.Param16 == vb.Param16
		}
		return true
	default:
		return false
	}
}

// Compare imposes the total order described in component design §4.3:
// channel, destination address, source address, protocol version, then a
// variant-specific command tie-break. It returns -1, 0 or 1. Because
// differing variants always carry differing ProtocolVersion, the ordering
// never needs to compare across variant kinds directly.
func Compare(a, b Data) int {
	ha, hb := a.GetHeader(), b.GetHeader()

	if ha.Channel != hb.Channel {
		return cmpUint(uint64(ha.Channel), uint64(hb.Channel))
	}
	if ha.DestinationAddress != hb.DestinationAddress {
		return cmpUint(uint64(ha.DestinationAddress), uint64(hb.DestinationAddress))
	}
	if ha.SourceAddress != hb.SourceAddress {
		return cmpUint(uint64(ha.SourceAddress), uint64(hb.SourceAddress))
	}
	if ha.ProtocolVersion != hb.ProtocolVersion {
		return cmpUint(uint64(ha.ProtocolVersion), uint64(hb.ProtocolVersion))
	}

	switch va := a.(type) {
	case Packet:
		vb := b.(Packet)
		return cmpUint(uint64(va.Command), uint64(vb.Command))
	case Telegram:
		vb := b.(Telegram)
		return cmpUint(uint64(va.Command), uint64(vb.Command))
	case Datagram:
		vb := b.(Datagram)
		if va.Command != vb.Command {
			return cmpUint(uint64(va.Command), uint64(vb.Command))
		}
		if va.identitySignificantParam16() {
			return cmpInt(int64(va.Param16), int64(vb.Param16))
		}
		return 0
	default:
		return 0
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

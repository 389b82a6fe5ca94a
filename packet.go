// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vbus

import "fmt"

// MaxPacketFrameData is the VBus upper bound on a Packet's frame_data buffer
// (127 frames of 4 bytes). It is not enforced here: FrameCount is a full
// byte, and decoder.Decode accepts any frame_count up to 255.
const MaxPacketFrameData = 508

// Packet is a VBus v1.x record: Header plus a command and a run of 4-byte
// frames. Only FrameCount*4 bytes of FrameData are logically meaningful;
// bytes beyond that are undefined and must never be decoded.
type Packet struct {
	Header     Header
	Command    uint16
	FrameCount byte
	FrameData  []byte
}

var _ Data = Packet{}

func (p Packet) isData() {}

// GetHeader returns the Header embedded in this Packet.
func (p Packet) GetHeader() Header { return p.Header }

// IDString renders "CC_DDDD_SSSS_10_CCCC".
func (p Packet) IDString() string {
	return fmt.Sprintf("%s_%04X", p.Header.IDString(), p.Command)
}

// FrameDataLen returns the logical, as opposed to allocated, length of
// FrameData.
func (p Packet) FrameDataLen() int {
	n := int(p.FrameCount) * 4
	if n > len(p.FrameData) {
		n = len(p.FrameData)
	}
	return n
}

// LogicalFrameData slices FrameData down to its logical length.
func (p Packet) LogicalFrameData() []byte {
	return p.FrameData[:p.FrameDataLen()]
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vbus

import "fmt"

// TelegramFrameDataLen is the fixed frame_data size every Telegram carries.
const TelegramFrameDataLen = 21

// Telegram is a VBus v3.x record: Header plus a single command byte and a
// fixed 21-byte frame_data buffer. The number of meaningful 7-byte frames is
// derived from the command byte's top three bits.
type Telegram struct {
	Header    Header
	Command   byte
	FrameData [TelegramFrameDataLen]byte
}

var _ Data = Telegram{}

func (t Telegram) isData() {}

// GetHeader returns the Header embedded in this Telegram.
func (t Telegram) GetHeader() Header { return t.Header }

// IDString renders "CC_DDDD_SSSS_30_CC".
func (t Telegram) IDString() string {
	return fmt.Sprintf("%s_%02X", t.Header.IDString(), t.Command)
}

// FrameCount returns the number of 7-byte frames carried in FrameData,
// derived as Command >> 5 (range 0..7).
func (t Telegram) FrameCount() int {
	return int(t.Command >> 5)
}

// String elides FrameData's contents, matching the source's custom Debug
// impl: a telegram's payload is rarely useful to print and is large.
func (t Telegram) String() string {
	return fmt.Sprintf("Telegram{%s, frames: %d}", t.IDString(), t.FrameCount())
}

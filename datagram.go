// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vbus

import "fmt"

// DatagramValueByIndexCommand is the Datagram command ("Value by index",
// 0x0900) for which Param16 participates in logical identity and ordering.
// Every other Datagram command ignores Param16 entirely; this is a
// protocol-level invariant, not an oversight.
const DatagramValueByIndexCommand uint16 = 0x0900

// Datagram is a VBus v2.x record: Header plus a command and two parameters.
type Datagram struct {
	Header  Header
	Command uint16
	Param16 int16
	Param32 int32
}

var _ Data = Datagram{}

func (d Datagram) isData() {}

// GetHeader returns the Header embedded in this Datagram.
func (d Datagram) GetHeader() Header { return d.Header }

// IDString renders "CC_DDDD_SSSS_20_CCCC_PPPP". Param16 is always present in
// the string even though it only participates in *identity* when Command is
// DatagramValueByIndexCommand (see Equal/Compare).
func (d Datagram) IDString() string {
	return fmt.Sprintf("%s_%04X_%04X", d.Header.IDString(), d.Command, uint16(d.Param16))
}

// identitySignificantParam16 reports whether Param16 participates in this
// Datagram's logical identity, per the command == 0x0900 quirk.
func (d Datagram) identitySignificantParam16() bool {
	return d.Command == DatagramValueByIndexCommand
}

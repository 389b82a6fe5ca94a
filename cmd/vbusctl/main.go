// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package main

import "github.com/resol-go/vbus/cmd/vbusctl/cmd"

func main() {
	cmd.Execute()
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

// Package cmd implements vbusctl's command-line surface: decoding recorded
// captures, watching a live serial adapter, and inspecting a specification
// blob.
package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd is vbusctl's entry point. It's exported so this binary could be
// extended with additional subcommands without touching core functionality.
var RootCmd = &cobra.Command{
	Use:   "vbusctl",
	Short: "decode, watch, and inspect VBus serial field-bus traffic",
}

var (
	specPathFlag string
	languageFlag string
)

// Execute is the main entry point for the CLI interface.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

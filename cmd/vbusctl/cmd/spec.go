// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	vbusspec "github.com/resol-go/vbus/spec"
)

var specCommandFlag uint16

func init() {
	RootCmd.AddCommand(specCmd)
	specCmd.Flags().StringVar(&languageFlag, "language", "en", "display language: en, de, or fr")
	specCmd.Flags().Uint16Var(&specCommandFlag, "command", 0, "look up a single (destination, source, command) packet template")
}

var specCmd = &cobra.Command{
	Use:   "spec <blob> [destination] [source]",
	Short: "print a packet template from a specification blob",
	Args:  cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSpec(args); err != nil {
			log.Fatal(err)
		}
	},
}

func runSpec(args []string) error {
	lang, err := parseLanguage(languageFlag)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading specification file %s: %w", args[0], err)
	}
	file, err := vbusspec.ParseFile(data)
	if err != nil {
		return fmt.Errorf("parsing specification file %s: %w", args[0], err)
	}
	specification := vbusspec.NewSpecification(file, lang)

	if len(args) < 3 {
		fmt.Println("no destination/source given; nothing to resolve")
		return nil
	}

	var destination, source uint16
	if _, err := fmt.Sscanf(args[1], "0x%X", &destination); err != nil {
		if _, err := fmt.Sscanf(args[1], "%d", &destination); err != nil {
			return fmt.Errorf("invalid destination address %q", args[1])
		}
	}
	if _, err := fmt.Sscanf(args[2], "0x%X", &source); err != nil {
		if _, err := fmt.Sscanf(args[2], "%d", &source); err != nil {
			return fmt.Errorf("invalid source address %q", args[2])
		}
	}

	ps := specification.GetPacketSpec(0, destination, source, specCommandFlag)

	fmt.Printf("%s  %s\n", ps.PacketID, ps.Name)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"field_id", "name", "type", "precision", "unit"})
	for _, f := range ps.Fields {
		table.Append([]string{f.FieldID, f.Name, f.Typ.String(), fmt.Sprintf("%d", f.Precision), f.UnitCode})
	}
	table.Render()

	return nil
}

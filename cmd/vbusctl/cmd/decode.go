// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/resol-go/vbus"
	"github.com/resol-go/vbus/decoder"
	"github.com/resol-go/vbus/serial"
	"github.com/resol-go/vbus/spec"
)

var decodeGapFlag time.Duration

func init() {
	RootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVar(&specPathFlag, "spec", "", "specification blob to resolve field names/units against")
	decodeCmd.Flags().StringVar(&languageFlag, "language", "en", "display language: en, de, or fr")
	decodeCmd.Flags().DurationVar(&decodeGapFlag, "gap", 5*time.Second, "max timestamp spread within one printed cycle")
}

var decodeCmd = &cobra.Command{
	Use:   "decode [recording files...]",
	Short: "decode a recording container and print each cycle's fields",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDecode(args); err != nil {
			log.Fatal(err)
		}
	},
}

func runDecode(paths []string) error {
	specification, err := loadSpecification(specPathFlag, languageFlag)
	if err != nil {
		return err
	}

	reader := serial.NewFileListReader(paths)
	defer reader.Close()

	rr := serial.NewRecordingReader(reader, decoderFunc(decoder.Decode), decodeGapFlag)

	for {
		ds, err := rr.ReadDataSet()
		if ds != nil && ds.Len() > 0 {
			printDataSet(ds, specification)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// decoderFunc adapts a bare function to serial.Decoder.
type decoderFunc func(time.Time, byte, []byte) (vbus.Data, error)

func (f decoderFunc) Decode(ts time.Time, channel byte, b []byte) (vbus.Data, error) {
	return f(ts, channel, b)
}

func printDataSet(ds *vbus.DataSet, specification *spec.Specification) {
	ds.Sort()

	fmt.Printf("cycle @ %s (%d entries)\n", ds.Timestamp().Format(time.RFC3339), ds.Len())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"id", "name", "field", "value"})

	for _, data := range ds.AsSlice() {
		pkt, ok := data.(vbus.Packet)
		if !ok {
			table.Append([]string{data.IDString(), fmt.Sprintf("%T", data), "", ""})
			continue
		}
		h := pkt.GetHeader()
		ps := specification.GetPacketSpec(h.Channel, h.DestinationAddress, h.SourceAddress, pkt.Command)

		if len(ps.Fields) == 0 {
			table.Append([]string{pkt.IDString(), ps.Name, "", fmt.Sprintf("%d bytes", pkt.FrameDataLen())})
			continue
		}
		for _, field := range ps.Fields {
			raw, ok := field.RawValueF64(pkt.LogicalFrameData())
			text := spec.Format(raw, ok, field.Typ, field.Precision, field.UnitText, true)
			table.Append([]string{pkt.IDString(), ps.Name, field.Name, text})
		}
	}

	table.Render()
}

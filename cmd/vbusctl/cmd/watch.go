// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/resol-go/vbus"
	"github.com/resol-go/vbus/decoder"
	"github.com/resol-go/vbus/serial"
	"github.com/resol-go/vbus/spec"
	"github.com/resol-go/vbus/vbuslog"
)

var (
	watchBaudRateFlag    int
	watchMetricsAddrFlag string
	watchConfigFlag      string
)

func init() {
	RootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchBaudRateFlag, "baud", 9600, "serial baud rate")
	watchCmd.Flags().StringVar(&specPathFlag, "spec", "", "specification blob to resolve field names/units against")
	watchCmd.Flags().StringVar(&languageFlag, "language", "en", "display language: en, de, or fr")
	watchCmd.Flags().StringVar(&watchMetricsAddrFlag, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9108)")
	watchCmd.Flags().StringVar(&watchConfigFlag, "config", "", "YAML file overlaying serial/spec/language tunables onto the flags above")
}

var watchCmd = &cobra.Command{
	Use:   "watch <port>",
	Short: "watch a live serial VBus adapter and print each decoded frame",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runWatch(args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

func runWatch(port string) error {
	config, fc, err := loadFileConfig(watchConfigFlag, port, watchBaudRateFlag)
	if err != nil {
		return err
	}
	specPath, language := specPathFlag, languageFlag
	if fc.SpecPath != "" {
		specPath = fc.SpecPath
	}
	if fc.Language != "" {
		language = fc.Language
	}

	specification, err := loadSpecification(specPath, language)
	if err != nil {
		return err
	}

	var metrics *vbusMetrics
	if watchMetricsAddrFlag != "" {
		metrics = newVBusMetrics()
		go metrics.serve(watchMetricsAddrFlag)
	}

	lr, err := serial.NewLiveReader(config, decoderFunc(decoder.Decode), vbuslog.New(log.StandardLogger()))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out := make(chan vbus.Data, 64)
	errCh := make(chan error, 1)
	go func() { errCh <- lr.Run(ctx, out) }()

	for {
		select {
		case data, open := <-out:
			if !open {
				return <-errCh
			}
			printData(data, specification, metrics)
		case <-ctx.Done():
			return nil
		}
	}
}

func printData(data vbus.Data, specification *spec.Specification, metrics *vbusMetrics) {
	pkt, ok := data.(vbus.Packet)
	if !ok {
		fmt.Printf("%s %s\n", color.CyanString(data.IDString()), fmt.Sprintf("%T", data))
		return
	}

	h := pkt.GetHeader()
	ps := specification.GetPacketSpec(h.Channel, h.DestinationAddress, h.SourceAddress, pkt.Command)

	fmt.Println(color.GreenString(ps.Name))
	for _, field := range ps.Fields {
		raw, ok := field.RawValueF64(pkt.LogicalFrameData())
		text := spec.Format(raw, ok, field.Typ, field.Precision, field.UnitText, true)
		if text == "" {
			text = color.YellowString("absent")
		}
		fmt.Printf("  %-32s %s\n", field.Name, text)
		if metrics != nil && ok {
			metrics.observe(ps, field, raw)
		}
	}
}

// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package cmd

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/resol-go/vbus/spec"
)

// vbusMetrics exports each decoded Number field as a Prometheus gauge,
// labeled by the stable PacketFieldID together with the field's localized
// display name and unit code.
type vbusMetrics struct {
	registry *prometheus.Registry
	gauges   *prometheus.GaugeVec
}

func newVBusMetrics() *vbusMetrics {
	registry := prometheus.NewRegistry()
	gauges := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vbus_field_value",
		Help: "Most recently decoded raw value of a VBus packet field.",
	}, []string{"packet_field_id", "name", "unit"})
	registry.MustRegister(gauges)
	return &vbusMetrics{registry: registry, gauges: gauges}
}

func (m *vbusMetrics) observe(ps *spec.PacketSpec, field *spec.PacketFieldSpec, raw float64) {
	if field.Typ != spec.Number {
		return
	}
	m.gauges.WithLabelValues(field.PacketFieldID, field.Name, field.UnitCode).Set(raw)
}

// serve blocks forever, exposing the registry on addr. Callers run it in its
// own goroutine.
func (m *vbusMetrics) serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	log.Fatal(http.ListenAndServe(addr, mux))
}

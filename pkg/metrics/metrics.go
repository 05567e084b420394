// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics instruments the parser and writer with prometheus
// collectors registered against a private registry. There is no scrape
// server (out of scope per spec §1); collectors are read back through
// Snapshot. No ifckit command prints a Snapshot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Registry wraps a private prometheus.Registry so ifckit never competes
// with a host process's default registry for collector names.
type Registry struct {
	reg *prometheus.Registry

	ParseDuration   prometheus.Histogram
	EntitiesParsed  *prometheus.CounterVec // label: type_name
	WriterEmitted   *prometheus.CounterVec // label: type_name
	DiagnosticCount *prometheus.CounterVec // label: kind
}

// New creates a Registry with every collector registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ifckit_parse_duration_seconds",
			Help:    "Wall-clock duration of a full model parse, by phase A-E.",
			Buckets: prometheus.DefBuckets,
		}),
		EntitiesParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ifckit_entities_parsed_total",
			Help: "Entities discovered during Phase B, by IFC type name.",
		}, []string{"type_name"}),
		WriterEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ifckit_writer_entities_emitted_total",
			Help: "Entities written by the Creator or Export path, by IFC type name.",
		}, []string{"type_name"}),
		DiagnosticCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ifckit_diagnostics_total",
			Help: "Non-fatal parse diagnostics, by error-taxonomy kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(r.ParseDuration, r.EntitiesParsed, r.WriterEmitted, r.DiagnosticCount)
	return r
}

// Snapshot is the JSON-serializable rendering of every collector's current
// value. The CLI's `--json` output does not include it.
type Snapshot struct {
	ParseDurationSeconds struct {
		SampleCount uint64  `json:"sample_count"`
		SampleSum   float64 `json:"sample_sum"`
	} `json:"parse_duration_seconds"`
	EntitiesParsed  map[string]float64 `json:"entities_parsed"`
	WriterEmitted   map[string]float64 `json:"writer_emitted"`
	Diagnostics     map[string]float64 `json:"diagnostics"`
}

// Snapshot gathers every registered collector into a JSON-friendly struct.
func (r *Registry) Snapshot() (*Snapshot, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		EntitiesParsed: make(map[string]float64),
		WriterEmitted:  make(map[string]float64),
		Diagnostics:    make(map[string]float64),
	}

	for _, fam := range families {
		switch fam.GetName() {
		case "ifckit_parse_duration_seconds":
			for _, m := range fam.GetMetric() {
				h := m.GetHistogram()
				snap.ParseDurationSeconds.SampleCount = h.GetSampleCount()
				snap.ParseDurationSeconds.SampleSum = h.GetSampleSum()
			}
		case "ifckit_entities_parsed_total":
			collectLabeled(fam.GetMetric(), "type_name", snap.EntitiesParsed)
		case "ifckit_writer_entities_emitted_total":
			collectLabeled(fam.GetMetric(), "type_name", snap.WriterEmitted)
		case "ifckit_diagnostics_total":
			collectLabeled(fam.GetMetric(), "kind", snap.Diagnostics)
		}
	}
	return snap, nil
}

func collectLabeled(metrics []*dto.Metric, labelName string, dst map[string]float64) {
	for _, m := range metrics {
		var key string
		for _, lp := range m.GetLabel() {
			if lp.GetName() == labelName {
				key = lp.GetValue()
			}
		}
		dst[key] = m.GetCounter().GetValue()
	}
}

// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package malloc

import "github.com/prometheus/client_golang/prometheus"

var (
	allocateElementsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stl",
			Subsystem: "malloc",
			Name:      "allocate_elements_total",
			Help:      "Total number of element slots allocated.",
		}, []string{"name"})

	allocateBytesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stl",
			Subsystem: "malloc",
			Name:      "allocate_bytes_total",
			Help:      "Total number of bytes allocated.",
		}, []string{"name"})

	allocateObjectsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stl",
			Subsystem: "malloc",
			Name:      "allocate_objects_total",
			Help:      "Total number of buffers allocated.",
		}, []string{"name"})

	inuseBytesGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "stl",
			Subsystem: "malloc",
			Name:      "inuse_bytes",
			Help:      "Bytes currently allocated.",
		}, []string{"name"})

	inuseObjectsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "stl",
			Subsystem: "malloc",
			Name:      "inuse_objects",
			Help:      "Buffers currently allocated.",
		}, []string{"name"})

	peakInuseBytesGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "stl",
			Subsystem: "malloc",
			Name:      "peak_inuse_bytes",
			Help:      "Highest number of bytes allocated at once.",
		}, []string{"name"})
)

// RegisterMetrics registers the allocator metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		allocateElementsCounter,
		allocateBytesCounter,
		allocateObjectsCounter,
		inuseBytesGauge,
		inuseObjectsGauge,
		peakInuseBytesGauge,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

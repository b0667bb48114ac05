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

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsAllocator counts what flows through an upstream allocator and
// publishes it as prometheus metrics labelled with its name. Counters are
// accumulated locally and pushed at most once per updateInterval, or on
// Flush.
type MetricsAllocator[T any] struct {
	upstream Allocator[T]
	name     string
	elemSize int

	allocateElementsCounter prometheus.Counter
	allocateBytesCounter    prometheus.Counter
	allocateObjectsCounter  prometheus.Counter
	inuseBytesGauge         prometheus.Gauge
	inuseObjectsGauge       prometheus.Gauge
	peakInuseBytesGauge     prometheus.Gauge

	allocateElements atomic.Uint64
	allocateBytes    atomic.Uint64
	allocateObjects  atomic.Uint64
	inuseBytes       atomic.Int64
	inuseObjects     atomic.Int64
	inuseBytesTotal  atomic.Int64

	peak     *PeakInuseTracker
	updating atomic.Bool
}

var updateInterval = time.Second

var _ Allocator[int] = new(MetricsAllocator[int])

func NewMetricsAllocator[T any](upstream Allocator[T], name string) *MetricsAllocator[T] {
	return &MetricsAllocator[T]{
		upstream: OrDefault(upstream),
		name:     name,
		elemSize: ElementSize[T](),

		allocateElementsCounter: allocateElementsCounter.WithLabelValues(name),
		allocateBytesCounter:    allocateBytesCounter.WithLabelValues(name),
		allocateObjectsCounter:  allocateObjectsCounter.WithLabelValues(name),
		inuseBytesGauge:         inuseBytesGauge.WithLabelValues(name),
		inuseObjectsGauge:       inuseObjectsGauge.WithLabelValues(name),
		peakInuseBytesGauge:     peakInuseBytesGauge.WithLabelValues(name),

		peak: NewPeakInuseTracker(),
	}
}

func (m *MetricsAllocator[T]) Allocate(n int) ([]T, error) {
	buf, err := m.upstream.Allocate(n)
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	size := n * m.elemSize
	m.allocateElements.Add(uint64(n))
	m.allocateBytes.Add(uint64(size))
	m.allocateObjects.Add(1)
	m.inuseBytes.Add(int64(size))
	m.inuseObjects.Add(1)
	if total := m.inuseBytesTotal.Add(int64(size)); total > 0 {
		m.peak.Update(uint64(total))
	}
	m.triggerUpdate()
	return buf, nil
}

func (m *MetricsAllocator[T]) Deallocate(buf []T) {
	if buf != nil {
		size := len(buf) * m.elemSize
		m.inuseBytes.Add(-int64(size))
		m.inuseObjects.Add(-1)
		m.inuseBytesTotal.Add(-int64(size))
		m.triggerUpdate()
	}
	m.upstream.Deallocate(buf)
}

func (m *MetricsAllocator[T]) Construct(p *T, v T) error {
	return m.upstream.Construct(p, v)
}

func (m *MetricsAllocator[T]) Destroy(p *T) {
	m.upstream.Destroy(p)
}

func (m *MetricsAllocator[T]) Equal(other Allocator[T]) bool {
	if o, ok := other.(*MetricsAllocator[T]); ok {
		return m.upstream.Equal(o.upstream)
	}
	return m.upstream.Equal(other)
}

func (m *MetricsAllocator[T]) Policy() Policy {
	return m.upstream.Policy()
}

// Peak returns the highest number of bytes this allocator had out at once.
func (m *MetricsAllocator[T]) Peak() uint64 {
	v, _ := m.peak.Peak()
	return v
}

func (m *MetricsAllocator[T]) triggerUpdate() {
	if m.updating.CompareAndSwap(false, true) {
		time.AfterFunc(updateInterval, func() {
			m.Flush()
			m.updating.Store(false)
		})
	}
}

// Flush pushes the locally accumulated values to prometheus.
func (m *MetricsAllocator[T]) Flush() {
	m.allocateElementsCounter.Add(float64(m.allocateElements.Swap(0)))
	m.allocateBytesCounter.Add(float64(m.allocateBytes.Swap(0)))
	m.allocateObjectsCounter.Add(float64(m.allocateObjects.Swap(0)))
	m.inuseBytesGauge.Add(float64(m.inuseBytes.Swap(0)))
	m.inuseObjectsGauge.Add(float64(m.inuseObjects.Swap(0)))
	m.peakInuseBytesGauge.Set(float64(m.Peak()))
}

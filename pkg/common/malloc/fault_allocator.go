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
	"math/rand"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
)

// FaultPoint describes when an operation fails. The n-th call (1-based)
// fails when Start <= n <= End, (n-Start)%Skip == 0 and a draw against Prob
// succeeds. The zero FaultPoint never fires.
type FaultPoint struct {
	Start, End, Skip int
	Prob             float64

	cnt int
}

// FailAt returns a point that fires exactly on the n-th call.
func FailAt(n int) *FaultPoint {
	return &FaultPoint{Start: n, End: n, Skip: 1, Prob: 1}
}

// FailFrom returns a point that fires on every call from the n-th on.
func FailFrom(n int) *FaultPoint {
	return &FaultPoint{Start: n, End: int(^uint(0) >> 1), Skip: 1, Prob: 1}
}

func (f *FaultPoint) trigger() bool {
	if f == nil || f.Skip <= 0 {
		return false
	}
	f.cnt++
	if f.cnt < f.Start || f.cnt > f.End || (f.cnt-f.Start)%f.Skip != 0 {
		return false
	}
	return f.Prob >= 1 || rand.Float64() < f.Prob
}

// Count is the number of calls seen so far.
func (f *FaultPoint) Count() int {
	if f == nil {
		return 0
	}
	return f.cnt
}

// FaultAllocator wraps an upstream allocator and fails Allocate or
// Construct on demand. A failing Construct stands in for an element
// constructor that throws. It also counts live elements and buffers so
// tests can check that every path releases what it acquired.
type FaultAllocator[T any] struct {
	upstream Allocator[T]

	AllocateFault  *FaultPoint
	ConstructFault *FaultPoint

	liveObjects int
	liveBuffers int
	allocations int
}

var _ Allocator[int] = new(FaultAllocator[int])

func NewFaultAllocator[T any](upstream Allocator[T]) *FaultAllocator[T] {
	return &FaultAllocator[T]{
		upstream: OrDefault(upstream),
	}
}

func (f *FaultAllocator[T]) Allocate(n int) ([]T, error) {
	if f.AllocateFault.trigger() {
		return nil, moerr.NewOOMNoCtx()
	}
	buf, err := f.upstream.Allocate(n)
	if err != nil {
		return nil, err
	}
	if buf != nil {
		f.liveBuffers++
		f.allocations++
	}
	return buf, nil
}

func (f *FaultAllocator[T]) Deallocate(buf []T) {
	if buf != nil {
		f.liveBuffers--
	}
	f.upstream.Deallocate(buf)
}

func (f *FaultAllocator[T]) Construct(p *T, v T) error {
	if f.ConstructFault.trigger() {
		return moerr.NewInternalErrorNoCtx("injected construct failure")
	}
	if err := f.upstream.Construct(p, v); err != nil {
		return err
	}
	f.liveObjects++
	return nil
}

func (f *FaultAllocator[T]) Destroy(p *T) {
	f.liveObjects--
	f.upstream.Destroy(p)
}

func (f *FaultAllocator[T]) Equal(other Allocator[T]) bool {
	if o, ok := other.(*FaultAllocator[T]); ok {
		return f.upstream.Equal(o.upstream)
	}
	return f.upstream.Equal(other)
}

func (f *FaultAllocator[T]) Policy() Policy {
	return f.upstream.Policy()
}

// LiveObjects is constructs minus destroys.
func (f *FaultAllocator[T]) LiveObjects() int {
	return f.liveObjects
}

// LiveBuffers is non-empty allocations minus deallocations.
func (f *FaultAllocator[T]) LiveBuffers() int {
	return f.liveBuffers
}

// Allocations is the total number of non-empty allocations.
func (f *FaultAllocator[T]) Allocations() int {
	return f.allocations
}

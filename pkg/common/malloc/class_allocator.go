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

	"go.uber.org/zap"

	"github.com/matrixorigin/stltoys/pkg/logutil"
)

// ClassAllocator rounds requests up to size classes and keeps freed buffers
// of each class in a bounded pool for reuse. Instances compare equal only to
// themselves.
type ClassAllocator[T any] struct {
	classSizes []int
	pools      []classAllocatorPool[T]
	policy     Policy
}

type classAllocatorPool[T any] struct {
	numAlloc atomic.Int64
	numFree  atomic.Int64
	ch       chan []T
}

var _ Allocator[int] = new(ClassAllocator[int])

// NewClassAllocator returns a class allocator whose pools together hold at
// most maxBufferSize elements.
func NewClassAllocator[T any](
	maxBufferSize int,
	policy Policy,
) *ClassAllocator[T] {
	const (
		minClassSize    = 16
		maxClassSize    = 1 << 20
		classSizeFactor = 1.8
	)

	classSizes := func() (ret []int) {
		for size := minClassSize; size <= maxClassSize; size = int(float64(size) * classSizeFactor) {
			ret = append(ret, size)
		}
		return
	}()

	classSumSize := func() (ret int) {
		for _, size := range classSizes {
			ret += size
		}
		return
	}()

	bufferedObjectsPerClass := func() int {
		n := maxBufferSize / classSumSize
		logutil.Debug("class allocator",
			zap.Any("max buffer size", maxBufferSize),
			zap.Any("classes", len(classSizes)),
			zap.Any("min class size", minClassSize),
			zap.Any("max class size", maxClassSize),
			zap.Any("buffer objects per class", n),
		)
		return n
	}()

	pools := make([]classAllocatorPool[T], len(classSizes))
	for i := range pools {
		pools[i].ch = make(chan []T, bufferedObjectsPerClass)
	}

	policy.AlwaysEqual = false
	return &ClassAllocator[T]{
		classSizes: classSizes,
		pools:      pools,
		policy:     policy,
	}
}

func (c *ClassAllocator[T]) requestSizeToClass(size int) int {
	for class, classSize := range c.classSizes {
		if classSize >= size {
			return class
		}
	}
	return -1
}

func (c *ClassAllocator[T]) capacityToClass(capacity int) int {
	for class, classSize := range c.classSizes {
		if classSize == capacity {
			return class
		}
		if classSize > capacity {
			break
		}
	}
	return -1
}

func (c *ClassAllocator[T]) classAllocate(class int) []T {
	select {
	case buf := <-c.pools[class].ch:
		c.pools[class].numAlloc.Add(1)
		clear(buf)
		return buf
	default:
		return make([]T, c.classSizes[class])
	}
}

// Allocate returns n zero slots. The slice's capacity is the class size;
// Deallocate relies on it to find the pool.
func (c *ClassAllocator[T]) Allocate(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	class := c.requestSizeToClass(n)
	if class == -1 {
		return make([]T, n), nil
	}
	return c.classAllocate(class)[:n], nil
}

func (c *ClassAllocator[T]) Deallocate(buf []T) {
	class := c.capacityToClass(cap(buf))
	if class < 0 {
		return
	}
	select {
	case c.pools[class].ch <- buf[:cap(buf)]:
		c.pools[class].numFree.Add(1)
	default:
	}
}

func (c *ClassAllocator[T]) Construct(p *T, v T) error {
	*p = v
	return nil
}

func (c *ClassAllocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (c *ClassAllocator[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(*ClassAllocator[T])
	return ok && o == c
}

func (c *ClassAllocator[T]) Policy() Policy {
	return c.policy
}

// Reused returns how many allocations were served from the pools.
func (c *ClassAllocator[T]) Reused() int64 {
	var n int64
	for i := range c.pools {
		n += c.pools[i].numAlloc.Load()
	}
	return n
}

// Pooled returns how many freed buffers were accepted by the pools.
func (c *ClassAllocator[T]) Pooled() int64 {
	var n int64
	for i := range c.pools {
		n += c.pools[i].numFree.Load()
	}
	return n
}

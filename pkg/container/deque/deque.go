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


// Package deque provides a double-ended queue over a ring buffer whose
// storage comes from an allocator.
package deque

import (
	"iter"

	"github.com/matrixorigin/stltoys/pkg/common/malloc"
	"github.com/matrixorigin/stltoys/pkg/common/moerr"
)

const minCapacity = 8

// Deque supports constant time push and pop at both ends. Elements are
// stored in a ring: the live range starts at head and wraps around the
// end of buf.
type Deque[T any] struct {
	buf   []T
	head  int
	n     int
	alloc malloc.Allocator[T]
}

// New returns an empty deque. A nil alloc means the Go heap.
func New[T any](alloc malloc.Allocator[T]) *Deque[T] {
	return &Deque[T]{alloc: malloc.OrDefault(alloc)}
}

func (d *Deque[T]) allocator() malloc.Allocator[T] {
	if d.alloc == nil {
		d.alloc = malloc.GoAllocator[T]{}
	}
	return d.alloc
}

// Len returns the number of elements of Deque.
func (d *Deque[T]) Len() int {
	return d.n
}

func (d *Deque[T]) Empty() bool {
	return d.n == 0
}

func (d *Deque[T]) Capacity() int {
	return len(d.buf)
}

// segments returns the live elements as at most two contiguous runs, in
// order.
func (d *Deque[T]) segments() ([]T, []T) {
	if d.n == 0 {
		return nil, nil
	}
	end := d.head + d.n
	if end <= len(d.buf) {
		return d.buf[d.head:end], nil
	}
	return d.buf[d.head:], d.buf[:end-len(d.buf)]
}

func (d *Deque[T]) slot(i int) int {
	i += d.head
	if i >= len(d.buf) {
		i -= len(d.buf)
	}
	return i
}

// grow moves the elements into a buffer twice as large, unwrapped so that
// head is zero. The deque is unchanged if that fails.
func (d *Deque[T]) grow() error {
	a := d.allocator()
	nb, err := a.Allocate(max(minCapacity, 2*len(d.buf)))
	if err != nil {
		return err
	}
	first, second := d.segments()
	if err = malloc.UninitializedCopy(a, nb[:len(first)], first); err != nil {
		a.Deallocate(nb)
		return err
	}
	if err = malloc.UninitializedCopy(a, nb[len(first):d.n], second); err != nil {
		malloc.DestroyRange(a, nb[:len(first)])
		a.Deallocate(nb)
		return err
	}
	n := d.n
	d.release()
	d.buf, d.n = nb, n
	return nil
}

func (d *Deque[T]) release() {
	if d.buf != nil {
		d.Clear()
		d.allocator().Deallocate(d.buf)
		d.buf = nil
	}
	d.head, d.n = 0, 0
}

// PushBack inserts v at the back of the deque.
func (d *Deque[T]) PushBack(v T) error {
	if d.n == len(d.buf) {
		if err := d.grow(); err != nil {
			return err
		}
	}
	if err := d.allocator().Construct(&d.buf[d.slot(d.n)], v); err != nil {
		return err
	}
	d.n++
	return nil
}

// PushFront inserts v at the front of the deque.
func (d *Deque[T]) PushFront(v T) error {
	if d.n == len(d.buf) {
		if err := d.grow(); err != nil {
			return err
		}
	}
	head := d.head - 1
	if head < 0 {
		head = len(d.buf) - 1
	}
	if err := d.allocator().Construct(&d.buf[head], v); err != nil {
		return err
	}
	d.head = head
	d.n++
	return nil
}

func (d *Deque[T]) mustNotEmpty(op string) {
	if d.n == 0 {
		panic(moerr.NewEmptyRangeNoCtx("deque " + op))
	}
}

// PopFront removes the first element. It panics on an empty deque.
func (d *Deque[T]) PopFront() {
	d.mustNotEmpty("pop front")
	d.allocator().Destroy(&d.buf[d.head])
	d.head = d.slot(1)
	d.n--
	if d.n == 0 {
		d.head = 0
	}
}

// PopBack removes the last element. It panics on an empty deque.
func (d *Deque[T]) PopBack() {
	d.mustNotEmpty("pop back")
	d.allocator().Destroy(&d.buf[d.slot(d.n-1)])
	d.n--
	if d.n == 0 {
		d.head = 0
	}
}

func (d *Deque[T]) Front() T {
	d.mustNotEmpty("front")
	return d.buf[d.head]
}

func (d *Deque[T]) Back() T {
	d.mustNotEmpty("back")
	return d.buf[d.slot(d.n-1)]
}

// Get returns the i-th element counting from the front. It panics when i
// is out of range.
func (d *Deque[T]) Get(i int) T {
	if i < 0 || i >= d.n {
		panic(moerr.NewInvalidIndexNoCtx(i, d.n))
	}
	return d.buf[d.slot(i)]
}

func (d *Deque[T]) At(i int) (T, error) {
	if i < 0 || i >= d.n {
		var zero T
		return zero, moerr.NewOutOfRangeNoCtx("deque", "index %d, size %d", i, d.n)
	}
	return d.buf[d.slot(i)], nil
}

// All yields the elements front to back.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.n; i++ {
			if !yield(i, d.buf[d.slot(i)]) {
				return
			}
		}
	}
}

// Clear destroys every element and keeps the buffer.
func (d *Deque[T]) Clear() {
	a := d.allocator()
	first, second := d.segments()
	malloc.DestroyRange(a, second)
	malloc.DestroyRange(a, first)
	d.head, d.n = 0, 0
}

// Free destroys the elements and returns the buffer to the allocator.
func (d *Deque[T]) Free() {
	d.release()
}

// Swap exchanges the contents of d and o. Allocators follow the buffers
// only when they propagate on swap.
func (d *Deque[T]) Swap(o *Deque[T]) {
	if d == o {
		return
	}
	if d.allocator().Policy().PropagateOnSwap {
		d.alloc, o.alloc = o.allocator(), d.alloc
	}
	d.buf, o.buf = o.buf, d.buf
	d.head, o.head = o.head, d.head
	d.n, o.n = o.n, d.n
}

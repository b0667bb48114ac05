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


package vector

import (
	"iter"
	"slices"

	"github.com/matrixorigin/stltoys/pkg/common/malloc"
	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/iterator"
)

// Vector is a growable contiguous sequence. Storage comes from an
// allocator; buf[:n] holds live elements and buf[n:] is allocated but
// unconstructed.
type Vector[T any] struct {
	buf   []T
	n     int
	alloc malloc.Allocator[T]
}

// New returns an empty vector. No storage is allocated until the first
// element arrives. A nil alloc means the Go heap.
func New[T any](alloc malloc.Allocator[T]) *Vector[T] {
	return &Vector[T]{alloc: malloc.OrDefault(alloc)}
}

// FromSlice returns a vector holding copies of vs.
func FromSlice[T any](vs []T, alloc malloc.Allocator[T]) (*Vector[T], error) {
	v := New(alloc)
	if err := v.AssignSlice(vs); err != nil {
		return nil, err
	}
	return v, nil
}

// Repeat returns a vector of count copies of x.
func Repeat[T any](count int, x T, alloc malloc.Allocator[T]) (*Vector[T], error) {
	v := New(alloc)
	if err := v.AssignN(count, x); err != nil {
		return nil, err
	}
	return v, nil
}

// FromSeq returns a vector of the values yielded by seq.
func FromSeq[T any](seq iter.Seq[T], alloc malloc.Allocator[T]) (*Vector[T], error) {
	v := New(alloc)
	if err := v.AssignSeq(seq); err != nil {
		return nil, err
	}
	return v, nil
}

// Clone returns a copy of v using the same allocator. The copy's capacity
// equals v's size.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	a := v.allocator()
	buf, err := copyInto(a, v.Data(), v.n)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{buf: buf, n: v.n, alloc: a}, nil
}

func (v *Vector[T]) allocator() malloc.Allocator[T] {
	if v.alloc == nil {
		v.alloc = malloc.GoAllocator[T]{}
	}
	return v.alloc
}

func (v *Vector[T]) Allocator() malloc.Allocator[T] {
	return v.allocator()
}

func (v *Vector[T]) Len() int {
	return v.n
}

func (v *Vector[T]) Empty() bool {
	return v.n == 0
}

func (v *Vector[T]) Capacity() int {
	return len(v.buf)
}

// MaxSize is the largest element count the allocator could hand out.
func (v *Vector[T]) MaxSize() int {
	return malloc.MaxElements[T]()
}

// Data returns the live elements. The slice aliases v's storage and is
// invalidated by any reallocation.
func (v *Vector[T]) Data() []T {
	return v.buf[:v.n]
}

// Get returns the i-th element without a size check.
func (v *Vector[T]) Get(i int) T {
	return v.buf[:v.n][i]
}

func (v *Vector[T]) Set(i int, x T) {
	v.buf[:v.n][i] = x
}

func (v *Vector[T]) Ptr(i int) *T {
	return &v.buf[:v.n][i]
}

// At is the checked form of Get.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.n {
		var zero T
		return zero, moerr.NewOutOfRangeNoCtx("vector", "index %d, size %d", i, v.n)
	}
	return v.buf[i], nil
}

func (v *Vector[T]) Front() T {
	return v.Get(0)
}

func (v *Vector[T]) Back() T {
	return v.Get(v.n - 1)
}

func (v *Vector[T]) Begin() iterator.Iterator[T] {
	return iterator.New(v.Data(), 0)
}

func (v *Vector[T]) End() iterator.Iterator[T] {
	return iterator.New(v.Data(), v.n)
}

func (v *Vector[T]) CBegin() iterator.ConstIterator[T] {
	return iterator.NewConst(v.Data(), 0)
}

func (v *Vector[T]) CEnd() iterator.ConstIterator[T] {
	return iterator.NewConst(v.Data(), v.n)
}

func (v *Vector[T]) RBegin() iterator.Reverse[T] {
	return iterator.NewReverse(v.End())
}

func (v *Vector[T]) REnd() iterator.Reverse[T] {
	return iterator.NewReverse(v.Begin())
}

// All yields index/value pairs front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return slices.All(v.Data())
}

// Backward yields index/value pairs back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return slices.Backward(v.Data())
}

func (v *Vector[T]) Values() iter.Seq[T] {
	return slices.Values(v.Data())
}

// Free destroys the elements and returns the storage to the allocator.
// The vector stays usable and is empty afterwards.
func (v *Vector[T]) Free() {
	v.release()
}

func (v *Vector[T]) release() {
	if v.buf == nil {
		v.n = 0
		return
	}
	a := v.allocator()
	malloc.DestroyRange(a, v.buf[:v.n])
	a.Deallocate(v.buf)
	v.buf = nil
	v.n = 0
}

// growCapacity picks the capacity for a buffer that must hold need
// elements: half again the current capacity, or need if that is larger.
func (v *Vector[T]) growCapacity(need int) int {
	c := len(v.buf)
	maxSize := v.MaxSize()
	if c > maxSize-c/2 {
		return maxSize
	}
	return max(need, c+c/2)
}

func (v *Vector[T]) checkLength(n int) error {
	if n < 0 || n > v.MaxSize() {
		return moerr.NewLengthErrorNoCtx("vector", n, v.MaxSize())
	}
	return nil
}

// rebuild moves the elements into a new buffer of newCap slots, opening a
// gap of count slots at index which fill must construct. fill must destroy
// whatever it constructed before reporting an error. On failure v is left
// exactly as it was.
func (v *Vector[T]) rebuild(newCap, index, count int, fill func(gap []T) error) error {
	a := v.allocator()
	nb, err := a.Allocate(newCap)
	if err != nil {
		return err
	}
	if err = malloc.UninitializedCopy(a, nb[:index], v.buf[:index]); err != nil {
		a.Deallocate(nb)
		return err
	}
	if fill != nil {
		if err = fill(nb[index : index+count]); err != nil {
			malloc.DestroyRange(a, nb[:index])
			a.Deallocate(nb)
			return err
		}
	}
	if err = malloc.UninitializedCopy(a, nb[index+count:v.n+count], v.buf[index:v.n]); err != nil {
		malloc.DestroyRange(a, nb[:index+count])
		a.Deallocate(nb)
		return err
	}
	n := v.n + count
	v.release()
	v.buf = nb
	v.n = n
	return nil
}

// Reserve makes room for at least n elements.
func (v *Vector[T]) Reserve(n int) error {
	if err := v.checkLength(n); err != nil {
		return err
	}
	if n <= len(v.buf) {
		return nil
	}
	return v.rebuild(v.growCapacity(n), v.n, 0, nil)
}

// ShrinkToFit reallocates so that the capacity equals the size. An empty
// vector gives its buffer back.
func (v *Vector[T]) ShrinkToFit() error {
	switch {
	case len(v.buf) == v.n:
		return nil
	case v.n == 0:
		v.release()
		return nil
	}
	return v.rebuild(v.n, v.n, 0, nil)
}

// Clear destroys every element and keeps the capacity.
func (v *Vector[T]) Clear() {
	malloc.DestroyRange(v.allocator(), v.buf[:v.n])
	v.n = 0
}

func copyInto[T any](a malloc.Allocator[T], src []T, capacity int) ([]T, error) {
	if capacity == 0 {
		return nil, nil
	}
	nb, err := a.Allocate(capacity)
	if err != nil {
		return nil, err
	}
	if err = malloc.UninitializedCopy(a, nb[:len(src)], src); err != nil {
		a.Deallocate(nb)
		return nil, err
	}
	return nb, nil
}

// constructEach constructs dst[i] from at(i), destroying what it built if
// any construction fails.
func constructEach[T any](a malloc.Allocator[T], dst []T, at func(i int) T) error {
	for i := range dst {
		if err := a.Construct(&dst[i], at(i)); err != nil {
			malloc.DestroyRange(a, dst[:i])
			return err
		}
	}
	return nil
}

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


// Package array provides a fixed-size, contiguous block of elements.
package array

import (
	"iter"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/iterator"
)

// Array holds exactly Len() elements for its whole lifetime. The length is
// chosen when the array is made; nothing grows or shrinks it.
type Array[T any] struct {
	data []T
}

// New returns an array of n zero elements.
func New[T any](n int) (*Array[T], error) {
	if n < 0 {
		return nil, moerr.NewInvalidArgNoCtx("array length", n)
	}
	if n == 0 {
		return &Array[T]{}, nil
	}
	return &Array[T]{data: make([]T, n)}, nil
}

// FromSlice returns an array holding a copy of vs.
func FromSlice[T any](vs []T) *Array[T] {
	if len(vs) == 0 {
		return &Array[T]{}
	}
	return &Array[T]{data: slices.Clone(vs)}
}

func (a *Array[T]) Len() int {
	return len(a.data)
}

func (a *Array[T]) Empty() bool {
	return len(a.data) == 0
}

// MaxSize equals Len: an array never holds more than it was made with.
func (a *Array[T]) MaxSize() int {
	return len(a.data)
}

func (a *Array[T]) At(i int) (T, error) {
	if i < 0 || i >= len(a.data) {
		var zero T
		return zero, moerr.NewOutOfRangeNoCtx("array", "index %d, size %d", i, len(a.data))
	}
	return a.data[i], nil
}

func (a *Array[T]) Get(i int) T {
	return a.data[i]
}

func (a *Array[T]) Set(i int, v T) {
	a.data[i] = v
}

func (a *Array[T]) Ptr(i int) *T {
	return &a.data[i]
}

func (a *Array[T]) Front() T {
	return a.data[0]
}

func (a *Array[T]) Back() T {
	return a.data[len(a.data)-1]
}

// Data returns the elements, or nil for a zero-length array.
func (a *Array[T]) Data() []T {
	return a.data
}

func (a *Array[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Swap exchanges the elements of two arrays of the same length.
func (a *Array[T]) Swap(o *Array[T]) error {
	if len(a.data) != len(o.data) {
		return moerr.NewInvalidArgNoCtx("swap length", len(o.data))
	}
	for i := range a.data {
		a.data[i], o.data[i] = o.data[i], a.data[i]
	}
	return nil
}

func (a *Array[T]) Begin() iterator.Iterator[T] {
	return iterator.New(a.data, 0)
}

func (a *Array[T]) End() iterator.Iterator[T] {
	return iterator.New(a.data, len(a.data))
}

func (a *Array[T]) CBegin() iterator.ConstIterator[T] {
	return iterator.NewConst(a.data, 0)
}

func (a *Array[T]) CEnd() iterator.ConstIterator[T] {
	return iterator.NewConst(a.data, len(a.data))
}

func (a *Array[T]) RBegin() iterator.Reverse[T] {
	return iterator.NewReverse(a.End())
}

func (a *Array[T]) REnd() iterator.Reverse[T] {
	return iterator.NewReverse(a.Begin())
}

func (a *Array[T]) All() iter.Seq2[int, T] {
	return slices.All(a.data)
}

func Equal[T comparable](a, b *Array[T]) bool {
	return slices.Equal(a.data, b.data)
}

// Compare orders a and b lexicographically.
func Compare[T constraints.Ordered](a, b *Array[T]) int {
	return slices.CompareFunc(a.data, b.data, func(x, y T) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})
}

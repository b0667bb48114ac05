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

// Package iterator provides random-access cursors over contiguous storage.
//
// An iterator is a borrow of the container that issued it. Any operation
// that reallocates or relocates the container's elements invalidates it;
// using it afterwards is a programming error that is not detected.
package iterator

import "unsafe"

// Iterator is a mutable random-access cursor. The zero value is an empty
// range's begin and end.
type Iterator[T any] struct {
	data []T
	pos  int
}

// New returns a cursor at pos over data.
func New[T any](data []T, pos int) Iterator[T] {
	return Iterator[T]{data: data, pos: pos}
}

// Get dereferences the cursor.
func (it Iterator[T]) Get() T {
	return it.data[it.pos]
}

func (it Iterator[T]) Set(v T) {
	it.data[it.pos] = v
}

func (it Iterator[T]) Ptr() *T {
	return &it.data[it.pos]
}

// At returns the element n positions away, it[n].
func (it Iterator[T]) At(n int) T {
	return it.data[it.pos+n]
}

func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{data: it.data, pos: it.pos + 1}
}

func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{data: it.data, pos: it.pos - 1}
}

func (it Iterator[T]) Add(n int) Iterator[T] {
	return Iterator[T]{data: it.data, pos: it.pos + n}
}

func (it Iterator[T]) Sub(n int) Iterator[T] {
	return Iterator[T]{data: it.data, pos: it.pos - n}
}

// Distance returns it - o. Both must come from the same range.
func (it Iterator[T]) Distance(o Iterator[T]) int {
	return it.pos - o.pos
}

// Index is the offset of the cursor from the beginning of its range.
func (it Iterator[T]) Index() int {
	return it.pos
}

func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.pos == o.pos && sameBase(it.data, o.data)
}

func (it Iterator[T]) Less(o Iterator[T]) bool {
	return it.pos < o.pos
}

func (it Iterator[T]) Compare(o Iterator[T]) int {
	switch {
	case it.pos < o.pos:
		return -1
	case it.pos > o.pos:
		return 1
	}
	return 0
}

// Const drops write access.
func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{data: it.data, pos: it.pos}
}

// ConstIterator is a read-only random-access cursor. There is no
// conversion back to Iterator.
type ConstIterator[T any] struct {
	data []T
	pos  int
}

func NewConst[T any](data []T, pos int) ConstIterator[T] {
	return ConstIterator[T]{data: data, pos: pos}
}

func (it ConstIterator[T]) Get() T {
	return it.data[it.pos]
}

func (it ConstIterator[T]) At(n int) T {
	return it.data[it.pos+n]
}

func (it ConstIterator[T]) Next() ConstIterator[T] {
	return ConstIterator[T]{data: it.data, pos: it.pos + 1}
}

func (it ConstIterator[T]) Prev() ConstIterator[T] {
	return ConstIterator[T]{data: it.data, pos: it.pos - 1}
}

func (it ConstIterator[T]) Add(n int) ConstIterator[T] {
	return ConstIterator[T]{data: it.data, pos: it.pos + n}
}

func (it ConstIterator[T]) Sub(n int) ConstIterator[T] {
	return ConstIterator[T]{data: it.data, pos: it.pos - n}
}

func (it ConstIterator[T]) Distance(o ConstIterator[T]) int {
	return it.pos - o.pos
}

func (it ConstIterator[T]) Index() int {
	return it.pos
}

func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool {
	return it.pos == o.pos && sameBase(it.data, o.data)
}

func (it ConstIterator[T]) Less(o ConstIterator[T]) bool {
	return it.pos < o.pos
}

func sameBase[T any](a, b []T) bool {
	return unsafe.SliceData(a) == unsafe.SliceData(b)
}

// Reverse walks a range backwards. It wraps the iterator one past the
// element it designates, like a reverse iterator's base.
type Reverse[T any] struct {
	base Iterator[T]
}

func NewReverse[T any](base Iterator[T]) Reverse[T] {
	return Reverse[T]{base: base}
}

func (r Reverse[T]) Get() T {
	return r.base.data[r.base.pos-1]
}

func (r Reverse[T]) Set(v T) {
	r.base.data[r.base.pos-1] = v
}

func (r Reverse[T]) Next() Reverse[T] {
	return Reverse[T]{base: r.base.Prev()}
}

func (r Reverse[T]) Prev() Reverse[T] {
	return Reverse[T]{base: r.base.Next()}
}

func (r Reverse[T]) Add(n int) Reverse[T] {
	return Reverse[T]{base: r.base.Sub(n)}
}

func (r Reverse[T]) Distance(o Reverse[T]) int {
	return o.base.pos - r.base.pos
}

func (r Reverse[T]) Equal(o Reverse[T]) bool {
	return r.base.Equal(o.base)
}

// Base returns the underlying forward iterator.
func (r Reverse[T]) Base() Iterator[T] {
	return r.base
}

// ConstReverse is the read-only counterpart of Reverse.
type ConstReverse[T any] struct {
	base ConstIterator[T]
}

func NewConstReverse[T any](base ConstIterator[T]) ConstReverse[T] {
	return ConstReverse[T]{base: base}
}

func (r ConstReverse[T]) Get() T {
	return r.base.data[r.base.pos-1]
}

func (r ConstReverse[T]) Next() ConstReverse[T] {
	return ConstReverse[T]{base: r.base.Prev()}
}

func (r ConstReverse[T]) Prev() ConstReverse[T] {
	return ConstReverse[T]{base: r.base.Next()}
}

func (r ConstReverse[T]) Add(n int) ConstReverse[T] {
	return ConstReverse[T]{base: r.base.Sub(n)}
}

func (r ConstReverse[T]) Distance(o ConstReverse[T]) int {
	return o.base.pos - r.base.pos
}

func (r ConstReverse[T]) Equal(o ConstReverse[T]) bool {
	return r.base.Equal(o.base)
}

func (r ConstReverse[T]) Base() ConstIterator[T] {
	return r.base
}

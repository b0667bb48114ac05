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

package smallstr

import (
	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/iterator"
	"github.com/matrixorigin/stltoys/pkg/container/strview"
	"github.com/matrixorigin/stltoys/pkg/container/traits"
)

// makeGap opens count characters at index and returns them for the caller
// to fill. When the capacity is short the prefix and the shifted suffix
// are copied straight into a new buffer. On error s is unchanged.
func (s *Basic[C, Tr]) makeGap(index, count int) ([]C, error) {
	if index < 0 || index > s.size {
		return nil, moerr.NewOutOfRangeNoCtx("string", "insert pos %d, size %d", index, s.size)
	}
	if count < 0 || count > s.MaxSize()-s.size {
		return nil, moerr.NewLengthErrorNoCtx("string", s.size+count, s.MaxSize())
	}
	var tr Tr
	newSize := s.size + count
	if newSize <= s.Capacity() {
		b := s.buf()
		tr.Move(b[index+count:newSize], b[index:s.size])
		s.size = newSize
		b[newSize] = 0
		return b[index : index+count], nil
	}

	nb, err := s.allocator().Allocate(s.growCapacity(newSize) + 1)
	if err != nil {
		return nil, err
	}
	old := s.buf()
	tr.Copy(nb[:index], old[:index])
	tr.Copy(nb[index+count:newSize], old[index:s.size])
	nb[newSize] = 0
	s.releaseHeap()
	s.heap = nb
	s.mode = modeHeap
	s.size = newSize
	return nb[index : index+count], nil
}

// PushBack appends c, growing to the next capacity of the form 2^k-1 when
// full.
func (s *Basic[C, Tr]) PushBack(c C) error {
	if s.size == s.Capacity() {
		if s.size == s.MaxSize() {
			return moerr.NewLengthErrorNoCtx("string", s.size+1, s.MaxSize())
		}
		if err := s.reallocate(min(nextCapacity(s.size), s.MaxSize())); err != nil {
			return err
		}
	}
	b := s.buf()
	b[s.size] = c
	s.size++
	b[s.size] = 0
	return nil
}

// PopBack removes the last character. s must not be empty.
func (s *Basic[C, Tr]) PopBack() {
	s.size--
	s.terminate()
}

// Insert inserts the characters of v before index.
func (s *Basic[C, Tr]) Insert(index int, v strview.View[C, Tr]) error {
	return s.InsertChars(index, v.Data())
}

func (s *Basic[C, Tr]) InsertChars(index int, chars []C) error {
	chars = s.detach(chars)
	gap, err := s.makeGap(index, len(chars))
	if err != nil {
		return err
	}
	var tr Tr
	tr.Copy(gap, chars)
	return nil
}

// InsertString inserts the Go string str, converted to C, before index.
func (s *Basic[C, Tr]) InsertString(index int, str string) error {
	return s.InsertChars(index, traits.FromString[C](str))
}

// InsertN inserts count copies of c before index.
func (s *Basic[C, Tr]) InsertN(index, count int, c C) error {
	gap, err := s.makeGap(index, count)
	if err != nil {
		return err
	}
	var tr Tr
	tr.Assign(gap, c)
	return nil
}

// InsertAt inserts c before pos and returns an iterator to it.
func (s *Basic[C, Tr]) InsertAt(pos iterator.ConstIterator[C], c C) (iterator.Iterator[C], error) {
	return s.InsertNAt(pos, 1, c)
}

// InsertNAt inserts count copies of c before pos and returns an iterator to
// the first one.
func (s *Basic[C, Tr]) InsertNAt(pos iterator.ConstIterator[C], count int, c C) (iterator.Iterator[C], error) {
	index := pos.Index()
	if err := s.InsertN(index, count, c); err != nil {
		return iterator.Iterator[C]{}, err
	}
	return iterator.New(s.Data(), index), nil
}

// Erase removes up to count characters starting at index. NPos as count
// removes the rest.
func (s *Basic[C, Tr]) Erase(index, count int) error {
	if index < 0 || index > s.size {
		return moerr.NewOutOfRangeNoCtx("string", "erase pos %d, size %d", index, s.size)
	}
	if count < 0 || count > s.size-index {
		count = s.size - index
	}
	var tr Tr
	b := s.buf()
	tr.Move(b[index:], b[index+count:s.size])
	s.size -= count
	b[s.size] = 0
	return nil
}

// EraseAt removes the character at pos and returns an iterator to the one
// that followed it.
func (s *Basic[C, Tr]) EraseAt(pos iterator.ConstIterator[C]) iterator.Iterator[C] {
	return s.EraseRange(pos, pos.Next())
}

// EraseRange removes [first, last) and returns an iterator to the
// character that followed the range.
func (s *Basic[C, Tr]) EraseRange(first, last iterator.ConstIterator[C]) iterator.Iterator[C] {
	index := first.Index()
	_ = s.Erase(index, last.Distance(first))
	return iterator.New(s.Data(), index)
}

func (s *Basic[C, Tr]) Append(v strview.View[C, Tr]) error {
	return s.InsertChars(s.size, v.Data())
}

func (s *Basic[C, Tr]) AppendChars(chars []C) error {
	return s.InsertChars(s.size, chars)
}

func (s *Basic[C, Tr]) AppendString(str string) error {
	return s.InsertString(s.size, str)
}

func (s *Basic[C, Tr]) AppendN(count int, c C) error {
	return s.InsertN(s.size, count, c)
}

// Replace substitutes the characters of v for the range [pos, pos+count).
// On error s is unchanged.
func (s *Basic[C, Tr]) Replace(pos, count int, v strview.View[C, Tr]) error {
	if pos < 0 || pos > s.size {
		return moerr.NewOutOfRangeNoCtx("string", "replace pos %d, size %d", pos, s.size)
	}
	if count < 0 || count > s.size-pos {
		count = s.size - pos
	}
	chars := s.detach(v.Data())
	if len(chars) > count {
		if err := s.Reserve(s.size - count + len(chars)); err != nil {
			return err
		}
	}
	if err := s.Erase(pos, count); err != nil {
		return err
	}
	return s.InsertChars(pos, chars)
}

// ReplaceString is Replace with a Go string.
func (s *Basic[C, Tr]) ReplaceString(pos, count int, str string) error {
	return s.Replace(pos, count, strview.Of[Tr](traits.FromString[C](str)))
}

// Substr returns a new string holding [pos, pos+count), using s's
// allocator.
func (s *Basic[C, Tr]) Substr(pos, count int) (*Basic[C, Tr], error) {
	v, err := s.View().Substr(pos, count)
	if err != nil {
		return nil, err
	}
	return FromView(v, s.allocator())
}

// Resize truncates to n characters or pads with c up to n.
func (s *Basic[C, Tr]) Resize(n int, c C) error {
	if n < 0 || n > s.MaxSize() {
		return moerr.NewLengthErrorNoCtx("string", n, s.MaxSize())
	}
	if n <= s.size {
		s.size = n
		s.terminate()
		return nil
	}
	if n > s.Capacity() {
		if err := s.reallocate(s.growCapacity(n)); err != nil {
			return err
		}
	}
	var tr Tr
	b := s.buf()
	tr.Assign(b[s.size:n], c)
	s.size = n
	b[n] = 0
	return nil
}

// Reserve makes room for n characters without changing the contents.
func (s *Basic[C, Tr]) Reserve(n int) error {
	capacity := s.Capacity()
	if n <= capacity {
		return nil
	}
	if n > s.MaxSize() {
		return moerr.NewLengthErrorNoCtx("string", n, s.MaxSize())
	}
	return s.reallocate(min(max(n, capacity+capacity/2), s.MaxSize()))
}

// ShrinkToFit drops unused capacity, returning to the inline block when
// the characters fit there.
func (s *Basic[C, Tr]) ShrinkToFit() error {
	target := max(s.size, SSOSize)
	if target >= s.Capacity() {
		return nil
	}
	return s.reallocate(target)
}

// Clear empties s and keeps its capacity.
func (s *Basic[C, Tr]) Clear() {
	s.size = 0
	s.terminate()
}

// AssignChars replaces the contents with a copy of chars. On error s is
// unchanged.
func (s *Basic[C, Tr]) AssignChars(chars []C) error {
	chars = s.detach(chars)
	n := len(chars)
	if n > s.MaxSize() {
		return moerr.NewLengthErrorNoCtx("string", n, s.MaxSize())
	}
	if n > s.Capacity() {
		nb, err := s.allocator().Allocate(s.growCapacity(n) + 1)
		if err != nil {
			return err
		}
		s.releaseHeap()
		s.heap = nb
		s.mode = modeHeap
	}
	var tr Tr
	b := s.buf()
	tr.Copy(b, chars)
	s.size = n
	b[n] = 0
	return nil
}

func (s *Basic[C, Tr]) Assign(v strview.View[C, Tr]) error {
	return s.AssignChars(v.Data())
}

func (s *Basic[C, Tr]) AssignString(str string) error {
	return s.AssignChars(traits.FromString[C](str))
}

// AssignN replaces the contents with count copies of c.
func (s *Basic[C, Tr]) AssignN(count int, c C) error {
	if count < 0 || count > s.MaxSize() {
		return moerr.NewLengthErrorNoCtx("string", count, s.MaxSize())
	}
	if count > s.Capacity() {
		nb, err := s.allocator().Allocate(s.growCapacity(count) + 1)
		if err != nil {
			return err
		}
		s.releaseHeap()
		s.heap = nb
		s.mode = modeHeap
	}
	var tr Tr
	b := s.buf()
	tr.Assign(b[:count], c)
	s.size = count
	b[count] = 0
	return nil
}

// CopyFrom makes s a copy of o. When the allocator propagates on copy and
// the two allocators differ, s releases its storage and adopts o's
// allocator first.
func (s *Basic[C, Tr]) CopyFrom(o *Basic[C, Tr]) error {
	if s == o {
		return nil
	}
	if s.allocator().Policy().PropagateOnCopy && !s.alloc.Equal(o.allocator()) {
		var nb []C
		if o.size > SSOSize {
			var err error
			if nb, err = o.alloc.Allocate(o.growCapacity(o.size) + 1); err != nil {
				return err
			}
		}
		s.releaseHeap()
		s.alloc = o.alloc
		if nb != nil {
			s.heap = nb
			s.mode = modeHeap
		}
	}
	return s.AssignChars(o.Data())
}

// MoveFrom transfers o's contents to s and leaves o empty. Storage changes
// hands when the allocator propagates on move or the two allocators are
// equal; otherwise the characters are copied into s's own storage.
func (s *Basic[C, Tr]) MoveFrom(o *Basic[C, Tr]) error {
	if s == o {
		return nil
	}
	policy := s.allocator().Policy()
	if !policy.PropagateOnMove && !s.alloc.Equal(o.allocator()) {
		if err := s.AssignChars(o.Data()); err != nil {
			return err
		}
		o.Clear()
		return nil
	}

	s.releaseHeap()
	if policy.PropagateOnMove {
		s.alloc = o.alloc
	}
	if o.mode == modeInline {
		s.inline = o.inline
	} else {
		s.heap = o.heap
		s.mode = modeHeap
	}
	s.size = o.size
	o.heap = nil
	o.mode = modeInline
	o.size = 0
	o.inline[0] = 0
	return nil
}

// Swap exchanges the contents of s and o. Allocators are exchanged only
// when they propagate on swap; swapping strings whose allocators neither
// propagate nor compare equal is not supported.
func (s *Basic[C, Tr]) Swap(o *Basic[C, Tr]) {
	if s == o {
		return
	}
	if s.allocator().Policy().PropagateOnSwap {
		s.alloc, o.alloc = o.allocator(), s.alloc
	}

	switch {
	case s.mode == modeInline && o.mode == modeInline:
		s.inline, o.inline = o.inline, s.inline
	case s.mode == modeHeap && o.mode == modeHeap:
		s.heap, o.heap = o.heap, s.heap
	case s.mode == modeInline && o.mode == modeHeap:
		swapMixed(s, o)
	default:
		swapMixed(o, s)
	}
	s.size, o.size = o.size, s.size
}

// swapMixed hands heap's buffer to inline and moves inline's characters
// into heap's inline block. Sizes are swapped by the caller.
func swapMixed[C traits.Char, Tr traits.Traits[C]](inline, heap *Basic[C, Tr]) {
	buf := heap.heap
	heap.inline = inline.inline
	heap.heap = nil
	heap.mode = modeInline
	inline.heap = buf
	inline.mode = modeHeap
}

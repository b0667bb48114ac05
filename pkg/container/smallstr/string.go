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

// Package smallstr implements a growable, always null-terminated character
// string that keeps up to SSOSize characters inline before touching the
// allocator.
package smallstr

import (
	"iter"
	"unsafe"

	"github.com/matrixorigin/stltoys/pkg/common/malloc"
	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/iterator"
	"github.com/matrixorigin/stltoys/pkg/container/strview"
	"github.com/matrixorigin/stltoys/pkg/container/traits"
)

// SSOSize is the number of characters held without a heap buffer.
const SSOSize = 15

// NPos re-exports strview.NPos.
const NPos = strview.NPos

type storageMode uint8

const (
	modeInline storageMode = iota
	modeHeap
)

// noCopy makes go vet's copylocks check flag copies of a Basic.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Basic is a string of C compared through Tr.
//
// Storage is either the inline block or a heap buffer from the allocator,
// selected by mode. The heap buffer holds capacity+1 characters. In both
// modes the character at Len() is zero.
//
// A Basic must not be copied by value; use Clone, CopyFrom or MoveFrom.
// The zero value is an empty string using the Go allocator.
type Basic[C traits.Char, Tr traits.Traits[C]] struct {
	_ noCopy

	mode   storageMode
	size   int
	inline [SSOSize + 1]C
	heap   []C
	alloc  malloc.Allocator[C]
}

type (
	String    = Basic[byte, traits.Default[byte]]
	U16String = Basic[uint16, traits.Default[uint16]]
	U32String = Basic[rune, traits.Default[rune]]
)

// New returns an empty string drawing heap buffers from alloc, or from the
// Go heap when alloc is nil.
func New[Tr traits.Traits[C], C traits.Char](alloc malloc.Allocator[C]) *Basic[C, Tr] {
	return &Basic[C, Tr]{alloc: malloc.OrDefault(alloc)}
}

// FromChars returns a string holding a copy of s.
func FromChars[Tr traits.Traits[C], C traits.Char](s []C, alloc malloc.Allocator[C]) (*Basic[C, Tr], error) {
	ret := New[Tr](alloc)
	if err := ret.AssignChars(s); err != nil {
		return nil, err
	}
	return ret, nil
}

// FromView returns a string holding a copy of v.
func FromView[Tr traits.Traits[C], C traits.Char](v strview.View[C, Tr], alloc malloc.Allocator[C]) (*Basic[C, Tr], error) {
	return FromChars[Tr](v.Data(), alloc)
}

// Repeat returns a string of count copies of c.
func Repeat[Tr traits.Traits[C], C traits.Char](count int, c C, alloc malloc.Allocator[C]) (*Basic[C, Tr], error) {
	ret := New[Tr](alloc)
	if err := ret.AssignN(count, c); err != nil {
		return nil, err
	}
	return ret, nil
}

// FromSeq returns a string of the characters yielded by seq.
func FromSeq[Tr traits.Traits[C], C traits.Char](seq iter.Seq[C], alloc malloc.Allocator[C]) (*Basic[C, Tr], error) {
	ret := New[Tr](alloc)
	for c := range seq {
		if err := ret.PushBack(c); err != nil {
			ret.Free()
			return nil, err
		}
	}
	return ret, nil
}

// Concat returns a new string holding the parts one after another.
func Concat[Tr traits.Traits[C], C traits.Char](alloc malloc.Allocator[C], parts ...strview.View[C, Tr]) (*Basic[C, Tr], error) {
	n := 0
	for _, p := range parts {
		n += p.Len()
	}
	ret := New[Tr](alloc)
	if err := ret.Reserve(n); err != nil {
		return nil, err
	}
	for _, p := range parts {
		if err := ret.Append(p); err != nil {
			ret.Free()
			return nil, err
		}
	}
	return ret, nil
}

// Make returns a narrow string holding s. It panics if the Go heap cannot
// provide the storage.
func Make(s string) *String {
	ret := New[traits.Default[byte], byte](nil)
	if err := ret.AssignString(s); err != nil {
		panic(err)
	}
	return ret
}

// MakeU16 returns s encoded as UTF-16.
func MakeU16(s string) *U16String {
	ret := New[traits.Default[uint16], uint16](nil)
	if err := ret.AssignString(s); err != nil {
		panic(err)
	}
	return ret
}

// MakeU32 returns s as code points.
func MakeU32(s string) *U32String {
	ret := New[traits.Default[rune], rune](nil)
	if err := ret.AssignString(s); err != nil {
		panic(err)
	}
	return ret
}

// Clone returns a deep copy using the same allocator.
func (s *Basic[C, Tr]) Clone() (*Basic[C, Tr], error) {
	return FromChars[Tr](s.Data(), s.allocator())
}

func (s *Basic[C, Tr]) allocator() malloc.Allocator[C] {
	if s.alloc == nil {
		s.alloc = malloc.GoAllocator[C]{}
	}
	return s.alloc
}

// Allocator returns the allocator heap buffers come from.
func (s *Basic[C, Tr]) Allocator() malloc.Allocator[C] {
	return s.allocator()
}

// buf returns the whole active buffer, terminator slot included.
func (s *Basic[C, Tr]) buf() []C {
	if s.mode == modeInline {
		return s.inline[:]
	}
	return s.heap
}

func (s *Basic[C, Tr]) terminate() {
	s.buf()[s.size] = 0
}

// IsInline reports whether the characters live in the inline block.
func (s *Basic[C, Tr]) IsInline() bool {
	return s.mode == modeInline
}

func (s *Basic[C, Tr]) Len() int {
	return s.size
}

func (s *Basic[C, Tr]) Empty() bool {
	return s.size == 0
}

// Capacity is the number of characters the current storage holds without
// reallocating, not counting the terminator.
func (s *Basic[C, Tr]) Capacity() int {
	if s.mode == modeInline {
		return SSOSize
	}
	return len(s.heap) - 1
}

// MaxSize is the longest string representable, leaving room for the
// terminator.
func (s *Basic[C, Tr]) MaxSize() int {
	return malloc.MaxElements[C]() - 1
}

// Data returns the characters, not including the terminator. Writes
// through the result are visible in s until s reallocates.
func (s *Basic[C, Tr]) Data() []C {
	return s.buf()[:s.size]
}

// CStr returns the characters followed by the null terminator.
func (s *Basic[C, Tr]) CStr() []C {
	return s.buf()[:s.size+1]
}

// View returns a read-only view of the characters.
func (s *Basic[C, Tr]) View() strview.View[C, Tr] {
	return strview.Of[Tr](s.Data())
}

// Slice returns a mutable window over the characters.
func (s *Basic[C, Tr]) Slice() strview.Slice[C, Tr] {
	return strview.SliceOf[Tr](s.Data())
}

// Get returns the i-th character. Only Go's own bounds check applies, so
// Get(Len()) reads the terminator.
func (s *Basic[C, Tr]) Get(i int) C {
	return s.buf()[:s.size+1][i]
}

func (s *Basic[C, Tr]) Set(i int, c C) {
	s.Data()[i] = c
}

func (s *Basic[C, Tr]) At(i int) (C, error) {
	if i < 0 || i >= s.size {
		var zero C
		return zero, moerr.NewOutOfRangeNoCtx("string", "pos %d, size %d", i, s.size)
	}
	return s.buf()[i], nil
}

func (s *Basic[C, Tr]) Front() C {
	return s.Data()[0]
}

func (s *Basic[C, Tr]) Back() C {
	return s.Data()[s.size-1]
}

func (s *Basic[C, Tr]) Begin() iterator.Iterator[C] {
	return iterator.New(s.Data(), 0)
}

func (s *Basic[C, Tr]) End() iterator.Iterator[C] {
	return iterator.New(s.Data(), s.size)
}

func (s *Basic[C, Tr]) CBegin() iterator.ConstIterator[C] {
	return iterator.NewConst(s.Data(), 0)
}

func (s *Basic[C, Tr]) CEnd() iterator.ConstIterator[C] {
	return iterator.NewConst(s.Data(), s.size)
}

func (s *Basic[C, Tr]) RBegin() iterator.Reverse[C] {
	return iterator.NewReverse(s.End())
}

func (s *Basic[C, Tr]) REnd() iterator.Reverse[C] {
	return iterator.NewReverse(s.Begin())
}

// All yields index and character pairs.
func (s *Basic[C, Tr]) All() iter.Seq2[int, C] {
	return s.View().All()
}

// fill sets every bit below the highest set bit of n.
func fill(n int) int {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n
}

// nextCapacity returns the smallest 2^k-1 strictly greater than n, so the
// buffer including its terminator is a power of two.
func nextCapacity(n int) int {
	if n >= int(^uint(0)>>2) {
		return int(^uint(0) >> 1)
	}
	return fill(n + 1)
}

// leastCapacity returns the smallest 2^k-1 not less than n.
func leastCapacity(n int) int {
	if n <= 1 {
		return 1
	}
	return nextCapacity(n - 1)
}

func (s *Basic[C, Tr]) growCapacity(n int) int {
	return min(leastCapacity(n), s.MaxSize())
}

// overlaps reports whether the two slices share memory.
func overlaps[C any](a, b []C) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	var zero C
	size := unsafe.Sizeof(zero)
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b))*size && b0 < a0+uintptr(len(a))*size
}

// detach returns src, copied if it points into s's storage.
func (s *Basic[C, Tr]) detach(src []C) []C {
	if overlaps(s.buf(), src) {
		return append([]C(nil), src...)
	}
	return src
}

// releaseHeap returns the heap buffer, if any, and leaves s inline and
// empty.
func (s *Basic[C, Tr]) releaseHeap() {
	if s.mode == modeHeap {
		heap := s.heap
		s.heap = nil
		s.mode = modeInline
		s.allocator().Deallocate(heap)
	}
	s.size = 0
	s.inline[0] = 0
}

// reallocate moves the characters to storage of newCap characters. A
// capacity within SSOSize selects the inline block. On error s is
// unchanged.
func (s *Basic[C, Tr]) reallocate(newCap int) error {
	if newCap <= SSOSize {
		if s.mode == modeInline {
			return nil
		}
		old := s.heap
		copy(s.inline[:], old[:s.size])
		s.inline[s.size] = 0
		s.mode = modeInline
		s.heap = nil
		s.allocator().Deallocate(old)
		return nil
	}
	if newCap > s.MaxSize() {
		return moerr.NewLengthErrorNoCtx("string", newCap, s.MaxSize())
	}
	nb, err := s.allocator().Allocate(newCap + 1)
	if err != nil {
		return err
	}
	var tr Tr
	size := s.size
	tr.Copy(nb, s.Data())
	nb[size] = 0
	s.releaseHeap()
	s.heap = nb
	s.mode = modeHeap
	s.size = size
	return nil
}

// Free returns any heap buffer to the allocator and empties s.
func (s *Basic[C, Tr]) Free() {
	s.releaseHeap()
}

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

// Package strview provides non-owning windows over character storage: the
// read-only View and the mutable Slice. Neither keeps the storage alive
// beyond what Go's garbage collector does, and neither notices when the
// owning string reallocates; a window taken before such an operation must
// not be used after it.
package strview

import (
	"iter"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/iterator"
	"github.com/matrixorigin/stltoys/pkg/container/traits"
)

// NPos is returned by searches that find nothing. As a count it means "to
// the end", as a backward search position it means "from the end".
const NPos = -1

// View is a read-only window over characters compared through Tr.
type View[C traits.Char, Tr traits.Traits[C]] struct {
	data []C
}

type (
	StringView    = View[byte, traits.Default[byte]]
	U16StringView = View[uint16, traits.Default[uint16]]
	U32StringView = View[rune, traits.Default[rune]]
)

// Of wraps s. The caller keeps s alive and unmodified while the view is in
// use.
func Of[Tr traits.Traits[C], C traits.Char](s []C) View[C, Tr] {
	return View[C, Tr]{data: s}
}

// OfCString wraps s up to its first null character.
func OfCString[Tr traits.Traits[C], C traits.Char](s []C) View[C, Tr] {
	var tr Tr
	return View[C, Tr]{data: s[:tr.Length(s)]}
}

// FromString returns a view over a copy of s converted to C.
func FromString[Tr traits.Traits[C], C traits.Char](s string) View[C, Tr] {
	return View[C, Tr]{data: traits.FromString[C](s)}
}

// Str is shorthand for a narrow view with default traits.
func Str(s string) StringView {
	return StringView{data: []byte(s)}
}

func (v View[C, Tr]) Len() int {
	return len(v.data)
}

func (v View[C, Tr]) Empty() bool {
	return len(v.data) == 0
}

// MaxSize is the largest length a view of C can have.
func (v View[C, Tr]) MaxSize() int {
	var zero C
	return int(^uint(0)>>1) / int(unsafe.Sizeof(zero))
}

// Data returns the viewed characters. They must not be modified through
// the result.
func (v View[C, Tr]) Data() []C {
	return v.data
}

// Get returns the i-th character without a bounds check beyond Go's own.
func (v View[C, Tr]) Get(i int) C {
	return v.data[i]
}

func (v View[C, Tr]) At(i int) (C, error) {
	if i < 0 || i >= len(v.data) {
		var zero C
		return zero, moerr.NewOutOfRangeNoCtx("string view", "pos %d, size %d", i, len(v.data))
	}
	return v.data[i], nil
}

func (v View[C, Tr]) Front() C {
	return v.data[0]
}

func (v View[C, Tr]) Back() C {
	return v.data[len(v.data)-1]
}

func (v View[C, Tr]) Begin() iterator.ConstIterator[C] {
	return iterator.NewConst(v.data, 0)
}

func (v View[C, Tr]) End() iterator.ConstIterator[C] {
	return iterator.NewConst(v.data, len(v.data))
}

func (v View[C, Tr]) RBegin() iterator.ConstReverse[C] {
	return iterator.NewConstReverse(v.End())
}

func (v View[C, Tr]) REnd() iterator.ConstReverse[C] {
	return iterator.NewConstReverse(v.Begin())
}

// All yields index and character pairs front to back.
func (v View[C, Tr]) All() iter.Seq2[int, C] {
	return func(yield func(int, C) bool) {
		for i, c := range v.data {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Backward yields index and character pairs back to front.
func (v View[C, Tr]) Backward() iter.Seq2[int, C] {
	return func(yield func(int, C) bool) {
		for i := len(v.data) - 1; i >= 0; i-- {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// RemovePrefix drops the first n characters. n must not exceed Len.
func (v *View[C, Tr]) RemovePrefix(n int) {
	v.data = v.data[n:]
}

// RemoveSuffix drops the last n characters. n must not exceed Len.
func (v *View[C, Tr]) RemoveSuffix(n int) {
	v.data = v.data[:len(v.data)-n]
}

func (v *View[C, Tr]) Swap(o *View[C, Tr]) {
	v.data, o.data = o.data, v.data
}

// Copy copies at most count characters starting at pos into dst and
// returns how many were copied.
func (v View[C, Tr]) Copy(dst []C, count, pos int) (int, error) {
	if pos < 0 || pos > len(v.data) {
		return 0, moerr.NewOutOfRangeNoCtx("string view", "copy pos %d, size %d", pos, len(v.data))
	}
	n := clampCount(count, len(v.data)-pos)
	var tr Tr
	tr.Copy(dst[:n], v.data[pos:pos+n])
	return n, nil
}

// Substr returns the window [pos, pos+count), with count clamped to the
// characters available. NPos as count means the rest of the view.
func (v View[C, Tr]) Substr(pos, count int) (View[C, Tr], error) {
	if pos < 0 || pos > len(v.data) {
		return View[C, Tr]{}, moerr.NewOutOfRangeNoCtx("string view", "substr pos %d, size %d", pos, len(v.data))
	}
	n := clampCount(count, len(v.data)-pos)
	return View[C, Tr]{data: v.data[pos : pos+n]}, nil
}

func clampCount(count, avail int) int {
	if count < 0 || count > avail {
		return avail
	}
	return count
}

// Compare orders v and o by their common prefix, then by length. It
// returns a negative number, zero or a positive number.
func (v View[C, Tr]) Compare(o View[C, Tr]) int {
	return compare[C, Tr](v.data, o.data)
}

// CompareSub compares the window Substr(pos, count) with o.
func (v View[C, Tr]) CompareSub(pos, count int, o View[C, Tr]) (int, error) {
	sub, err := v.Substr(pos, count)
	if err != nil {
		return 0, err
	}
	return sub.Compare(o), nil
}

func (v View[C, Tr]) Equal(o View[C, Tr]) bool {
	return len(v.data) == len(o.data) && compare[C, Tr](v.data, o.data) == 0
}

func (v View[C, Tr]) Less(o View[C, Tr]) bool {
	return v.Compare(o) < 0
}

func (v View[C, Tr]) StartsWith(x View[C, Tr]) bool {
	return startsWith[C, Tr](v.data, x.data)
}

func (v View[C, Tr]) StartsWithChar(c C) bool {
	var tr Tr
	return len(v.data) > 0 && tr.Eq(v.data[0], c)
}

func (v View[C, Tr]) EndsWith(x View[C, Tr]) bool {
	return endsWith[C, Tr](v.data, x.data)
}

func (v View[C, Tr]) EndsWithChar(c C) bool {
	var tr Tr
	return len(v.data) > 0 && tr.Eq(v.data[len(v.data)-1], c)
}

func (v View[C, Tr]) Contains(x View[C, Tr]) bool {
	return v.Find(x, 0) != NPos
}

func (v View[C, Tr]) ContainsChar(c C) bool {
	return v.FindChar(c, 0) != NPos
}

// Find returns the first position at or after pos where x occurs.
func (v View[C, Tr]) Find(x View[C, Tr], pos int) int {
	return search[C, Tr](v.data, x.data, pos, forward)
}

func (v View[C, Tr]) FindChar(c C, pos int) int {
	return search[C, Tr](v.data, []C{c}, pos, forward)
}

// RFind returns the last position where x occurs within the first
// pos+len(x) characters. NPos as pos searches the whole view.
func (v View[C, Tr]) RFind(x View[C, Tr], pos int) int {
	return search[C, Tr](v.data, x.data, pos, backward)
}

func (v View[C, Tr]) RFindChar(c C, pos int) int {
	return search[C, Tr](v.data, []C{c}, pos, backward)
}

// FindFirstOf returns the first position at or after pos holding any
// character of set.
func (v View[C, Tr]) FindFirstOf(set View[C, Tr], pos int) int {
	return findFirstOf[C, Tr](v.data, set.data, pos, true)
}

func (v View[C, Tr]) FindFirstOfChar(c C, pos int) int {
	return findFirstOf[C, Tr](v.data, []C{c}, pos, true)
}

// FindLastOf returns the last position at or before pos holding any
// character of set.
func (v View[C, Tr]) FindLastOf(set View[C, Tr], pos int) int {
	return findLastOf[C, Tr](v.data, set.data, pos, true)
}

func (v View[C, Tr]) FindLastOfChar(c C, pos int) int {
	return findLastOf[C, Tr](v.data, []C{c}, pos, true)
}

func (v View[C, Tr]) FindFirstNotOf(set View[C, Tr], pos int) int {
	return findFirstOf[C, Tr](v.data, set.data, pos, false)
}

func (v View[C, Tr]) FindFirstNotOfChar(c C, pos int) int {
	return findFirstOf[C, Tr](v.data, []C{c}, pos, false)
}

func (v View[C, Tr]) FindLastNotOf(set View[C, Tr], pos int) int {
	return findLastOf[C, Tr](v.data, set.data, pos, false)
}

func (v View[C, Tr]) FindLastNotOfChar(c C, pos int) int {
	return findLastOf[C, Tr](v.data, []C{c}, pos, false)
}

// Hash returns the xxhash of the raw characters. It agrees with Equal only
// for traits that compare code units exactly.
func (v View[C, Tr]) Hash() uint64 {
	return hashChars(v.data)
}

func hashChars[C traits.Char](s []C) uint64 {
	if len(s) == 0 {
		return xxhash.Sum64(nil)
	}
	var zero C
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
	return xxhash.Sum64(b)
}

// String renders the view as UTF-8.
func (v View[C, Tr]) String() string {
	return string(traits.AppendUTF8(nil, v.data))
}

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

package strview

import (
	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/iterator"
	"github.com/matrixorigin/stltoys/pkg/container/traits"
)

// Slice is a mutable window. Every read-only operation of View is
// available through the embedded View, which is also how a Slice converts
// to a View. A View never converts back.
type Slice[C traits.Char, Tr traits.Traits[C]] struct {
	View[C, Tr]
}

type (
	StringSlice    = Slice[byte, traits.Default[byte]]
	U16StringSlice = Slice[uint16, traits.Default[uint16]]
	U32StringSlice = Slice[rune, traits.Default[rune]]
)

// SliceOf wraps s for writing.
func SliceOf[Tr traits.Traits[C], C traits.Char](s []C) Slice[C, Tr] {
	return Slice[C, Tr]{View: View[C, Tr]{data: s}}
}

func (s Slice[C, Tr]) Set(i int, c C) {
	s.data[i] = c
}

func (s Slice[C, Tr]) Ptr(i int) *C {
	return &s.data[i]
}

// Data returns the characters for writing.
func (s Slice[C, Tr]) Data() []C {
	return s.data
}

// Fill assigns c to every character.
func (s Slice[C, Tr]) Fill(c C) {
	var tr Tr
	tr.Assign(s.data, c)
}

// CopyFrom copies min(Len, src.Len) characters of src to the front of s
// and returns the count. The two may overlap.
func (s Slice[C, Tr]) CopyFrom(src View[C, Tr]) int {
	var tr Tr
	n := min(len(s.data), len(src.data))
	tr.Move(s.data[:n], src.data[:n])
	return n
}

func (s Slice[C, Tr]) Begin() iterator.Iterator[C] {
	return iterator.New(s.data, 0)
}

func (s Slice[C, Tr]) End() iterator.Iterator[C] {
	return iterator.New(s.data, len(s.data))
}

func (s Slice[C, Tr]) RBegin() iterator.Reverse[C] {
	return iterator.NewReverse(s.End())
}

func (s Slice[C, Tr]) REnd() iterator.Reverse[C] {
	return iterator.NewReverse(s.Begin())
}

// Subslice is Substr keeping write access.
func (s Slice[C, Tr]) Subslice(pos, count int) (Slice[C, Tr], error) {
	if pos < 0 || pos > len(s.data) {
		return Slice[C, Tr]{}, moerr.NewOutOfRangeNoCtx("string slice", "substr pos %d, size %d", pos, len(s.data))
	}
	n := clampCount(count, len(s.data)-pos)
	return SliceOf[Tr](s.data[pos : pos+n]), nil
}

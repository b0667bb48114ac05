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

// Package traits defines the per-character primitives strings and views
// are built on.
package traits

import (
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"
)

// Char is the set of character types: narrow, UTF-16 and UTF-32 units.
type Char interface {
	~uint8 | ~uint16 | ~int32 | ~uint32
}

// Traits is the character policy a string or view is parameterized with.
// Implementations are stateless; a zero value is ready to use.
type Traits[C Char] interface {
	// Assign fills dst with c.
	Assign(dst []C, c C)
	Eq(a, b C) bool
	Lt(a, b C) bool
	// Move copies src to dst; the two may overlap.
	Move(dst, src []C)
	// Copy copies src to dst; the two must not overlap.
	Copy(dst, src []C)
	// Compare compares the first n characters of a and b.
	Compare(a, b []C, n int) int
	// Length counts the characters before the first null character.
	Length(s []C) int
	// Find returns the index of the first character equal to c, or -1.
	Find(s []C, c C) int
	ToInt(c C) int
	ToChar(i int) C
	EOF() int
	EqInt(a, b int) bool
	NotEOF(i int) int
}

const eof = -1

// Default compares characters by code unit.
type Default[C Char] struct{}

var _ Traits[byte] = Default[byte]{}

func (Default[C]) Assign(dst []C, c C) {
	for i := range dst {
		dst[i] = c
	}
}

func (Default[C]) Eq(a, b C) bool {
	return a == b
}

func (Default[C]) Lt(a, b C) bool {
	return uint32(a) < uint32(b)
}

func (Default[C]) Move(dst, src []C) {
	copy(dst, src)
}

func (Default[C]) Copy(dst, src []C) {
	copy(dst, src)
}

func (Default[C]) Compare(a, b []C, n int) int {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if uint32(a[i]) < uint32(b[i]) {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (Default[C]) Length(s []C) int {
	for i, c := range s {
		if c == 0 {
			return i
		}
	}
	return len(s)
}

func (Default[C]) Find(s []C, c C) int {
	for i := range s {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func (Default[C]) ToInt(c C) int {
	return int(uint32(c))
}

func (Default[C]) ToChar(i int) C {
	return C(i)
}

func (Default[C]) EOF() int {
	return eof
}

func (Default[C]) EqInt(a, b int) bool {
	return a == b
}

func (Default[C]) NotEOF(i int) int {
	if i == eof {
		return 0
	}
	return i
}

// ASCIIFold compares ASCII letters without regard to case. Copying and
// assignment keep the original characters.
type ASCIIFold[C Char] struct {
	Default[C]
}

var _ Traits[byte] = ASCIIFold[byte]{}

func fold[C Char](c C) C {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func (ASCIIFold[C]) Eq(a, b C) bool {
	return fold(a) == fold(b)
}

func (ASCIIFold[C]) Lt(a, b C) bool {
	return uint32(fold(a)) < uint32(fold(b))
}

func (ASCIIFold[C]) Compare(a, b []C, n int) int {
	for i := 0; i < n; i++ {
		x, y := fold(a[i]), fold(b[i])
		if x != y {
			if uint32(x) < uint32(y) {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (ASCIIFold[C]) Find(s []C, c C) int {
	c = fold(c)
	for i := range s {
		if fold(s[i]) == c {
			return i
		}
	}
	return -1
}

// AppendUTF8 appends s to dst as UTF-8. Narrow characters are taken to be
// UTF-8 already, two-byte characters UTF-16 and four-byte ones code points.
func AppendUTF8[C Char](dst []byte, s []C) []byte {
	var zero C
	switch unsafe.Sizeof(zero) {
	case 1:
		for _, c := range s {
			dst = append(dst, byte(c))
		}
	case 2:
		units := make([]uint16, len(s))
		for i, c := range s {
			units[i] = uint16(c)
		}
		for _, r := range utf16.Decode(units) {
			dst = utf8.AppendRune(dst, r)
		}
	default:
		for _, c := range s {
			dst = utf8.AppendRune(dst, rune(c))
		}
	}
	return dst
}

// FromString converts a Go string to characters of type C, the inverse of
// AppendUTF8.
func FromString[C Char](s string) []C {
	var zero C
	switch unsafe.Sizeof(zero) {
	case 1:
		ret := make([]C, len(s))
		for i := 0; i < len(s); i++ {
			ret[i] = C(s[i])
		}
		return ret
	case 2:
		units := utf16.Encode([]rune(s))
		ret := make([]C, len(units))
		for i, u := range units {
			ret[i] = C(u)
		}
		return ret
	default:
		ret := make([]C, 0, len(s))
		for _, r := range s {
			ret = append(ret, C(r))
		}
		return ret
	}
}

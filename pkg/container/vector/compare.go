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
	"golang.org/x/exp/constraints"

	"github.com/matrixorigin/stltoys/pkg/common/malloc"
)

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

func EqualFunc[T any](a, b *Vector[T], eq func(x, y T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	bs := b.Data()
	for i, x := range a.Data() {
		if !eq(x, bs[i]) {
			return false
		}
	}
	return true
}

// Compare orders a and b lexicographically and returns -1, 0 or +1.
func Compare[T constraints.Ordered](a, b *Vector[T]) int {
	return CompareFunc(a, b, compareOrdered[T])
}

// CompareFunc is Compare with a caller supplied three-way element
// comparison. A shorter vector that is a prefix of the longer one orders
// first.
func CompareFunc[T any](a, b *Vector[T], cmp func(x, y T) int) int {
	as, bs := a.Data(), b.Data()
	for i := range min(len(as), len(bs)) {
		if c := cmp(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareOrdered[T constraints.Ordered](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// EraseValue removes every element equal to x and returns how many went.
func EraseValue[T comparable](v *Vector[T], x T) int {
	return EraseIf(v, func(e T) bool { return e == x })
}

// EraseIf removes every element matching pred, keeping the order of the
// rest, and returns the number removed.
func EraseIf[T any](v *Vector[T], pred func(T) bool) int {
	live := v.Data()
	kept := 0
	for i := range live {
		if !pred(live[i]) {
			live[kept] = live[i]
			kept++
		}
	}
	malloc.DestroyRange(v.allocator(), live[kept:])
	v.n = kept
	return len(live) - kept
}

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

package malloc

import (
	"math"
	"unsafe"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
)

// Policy tells a container what to do with its allocator when the container
// is copied, moved or swapped.
type Policy struct {
	// PropagateOnCopy makes copy assignment adopt the source's allocator.
	PropagateOnCopy bool
	// PropagateOnMove makes move assignment adopt the source's allocator,
	// which also allows the buffer to be stolen.
	PropagateOnMove bool
	// PropagateOnSwap makes swap exchange allocators along with buffers.
	PropagateOnSwap bool
	// AlwaysEqual means any two instances can free each other's memory.
	AlwaysEqual bool
}

// Allocator hands out element storage and constructs and destroys elements
// in it. Allocate returns a slice whose length is the number of slots
// requested; the slots are zero and count as unconstructed until Construct
// is called on them. Deallocate must receive the slice Allocate returned.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(buf []T)
	// Construct stores v into the unconstructed slot p. A non-nil error
	// leaves p unconstructed.
	Construct(p *T, v T) error
	// Destroy ends the lifetime of the element in p.
	Destroy(p *T)
	// Equal reports whether memory from one instance can be released
	// through the other.
	Equal(other Allocator[T]) bool
	Policy() Policy
}

// MaxElements is the largest slot count an allocator will hand out for T.
func MaxElements[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return math.MaxInt
	}
	return math.MaxInt / size
}

// ElementSize returns the size of T in bytes, at least 1.
func ElementSize[T any]() int {
	var zero T
	if size := int(unsafe.Sizeof(zero)); size > 0 {
		return size
	}
	return 1
}

func checkRequest[T any](n int) error {
	if n < 0 {
		return moerr.NewInvalidArgNoCtx("allocation size", n)
	}
	if n > MaxElements[T]() {
		return moerr.NewOOMNoCtx()
	}
	return nil
}

// UninitializedCopy constructs dst[i] from src[i] for every i. If a
// construction fails, the elements already constructed in dst are destroyed
// before the error is returned.
func UninitializedCopy[T any](a Allocator[T], dst, src []T) error {
	for i := range src {
		if err := a.Construct(&dst[i], src[i]); err != nil {
			DestroyRange(a, dst[:i])
			return err
		}
	}
	return nil
}

// UninitializedFill constructs every slot of dst from v, with the same
// rollback as UninitializedCopy.
func UninitializedFill[T any](a Allocator[T], dst []T, v T) error {
	for i := range dst {
		if err := a.Construct(&dst[i], v); err != nil {
			DestroyRange(a, dst[:i])
			return err
		}
	}
	return nil
}

// DestroyRange destroys every element of s, back to front.
func DestroyRange[T any](a Allocator[T], s []T) {
	for i := len(s) - 1; i >= 0; i-- {
		a.Destroy(&s[i])
	}
}

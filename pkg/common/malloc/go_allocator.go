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

// GoAllocator is the default allocator. It draws from the Go heap, so every
// instance is interchangeable and moves may always steal buffers.
type GoAllocator[T any] struct{}

var _ Allocator[int] = GoAllocator[int]{}

func NewGoAllocator[T any]() GoAllocator[T] {
	return GoAllocator[T]{}
}

func (GoAllocator[T]) Allocate(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func (GoAllocator[T]) Deallocate([]T) {}

func (GoAllocator[T]) Construct(p *T, v T) error {
	*p = v
	return nil
}

func (GoAllocator[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (GoAllocator[T]) Equal(other Allocator[T]) bool {
	_, ok := other.(GoAllocator[T])
	return ok
}

func (GoAllocator[T]) Policy() Policy {
	return Policy{
		PropagateOnMove: true,
		AlwaysEqual:     true,
	}
}

// OrDefault returns a, or a GoAllocator when a is nil.
func OrDefault[T any](a Allocator[T]) Allocator[T] {
	if a == nil {
		return GoAllocator[T]{}
	}
	return a
}

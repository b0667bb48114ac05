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


package config

import (
	"github.com/matrixorigin/stltoys/pkg/common/malloc"
	"github.com/matrixorigin/stltoys/pkg/common/moerr"
)

// Policy returns the allocator policy the configuration asks for.
func (c MallocConfig) Policy() malloc.Policy {
	return malloc.Policy{
		PropagateOnCopy: c.PropagateOnCopy,
		PropagateOnMove: c.PropagateOnMove,
		PropagateOnSwap: c.PropagateOnSwap,
	}
}

// NewAllocator builds the allocator described by c for elements of type T.
// Only configurations that passed Validate are accepted.
func NewAllocator[T any](c MallocConfig) (malloc.Allocator[T], error) {
	var a malloc.Allocator[T]
	switch c.Allocator {
	case AllocatorGo:
		a = malloc.NewGoAllocator[T]()
	case AllocatorClass:
		a = malloc.NewClassAllocator[T](c.ClassBufferSize, c.Policy())
	case AllocatorLimit:
		a = malloc.NewLimitAllocator[T](nil, c.Limit, c.Policy())
	default:
		return nil, moerr.NewBadConfigNoCtx("unknown allocator %q", c.Allocator)
	}
	if c.Metrics {
		a = malloc.NewMetricsAllocator(a, c.MetricsName)
	}
	return a, nil
}

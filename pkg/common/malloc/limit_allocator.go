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
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/logutil"
)

var nextLimitAllocatorID atomic.Uint64

// LimitAllocator caps the number of elements in use at any time. Each
// instance has its own budget, so two instances never compare equal.
type LimitAllocator[T any] struct {
	id       uint64
	upstream Allocator[T]
	limit    int
	inuse    int
	policy   Policy
}

var _ Allocator[int] = new(LimitAllocator[int])

func NewLimitAllocator[T any](upstream Allocator[T], limit int, policy Policy) *LimitAllocator[T] {
	policy.AlwaysEqual = false
	return &LimitAllocator[T]{
		id:       nextLimitAllocatorID.Add(1),
		upstream: OrDefault(upstream),
		limit:    limit,
		policy:   policy,
	}
}

func (l *LimitAllocator[T]) Allocate(n int) ([]T, error) {
	if err := checkRequest[T](n); err != nil {
		return nil, err
	}
	if l.inuse+n > l.limit {
		logutil.Warn("allocation exceeds budget",
			zap.Uint64("allocator", l.id),
			zap.Int("request", n),
			zap.Int("inuse", l.inuse),
			zap.Int("limit", l.limit),
		)
		return nil, moerr.NewOOMNoCtx()
	}
	buf, err := l.upstream.Allocate(n)
	if err != nil {
		return nil, err
	}
	l.inuse += n
	return buf, nil
}

func (l *LimitAllocator[T]) Deallocate(buf []T) {
	l.inuse -= len(buf)
	l.upstream.Deallocate(buf)
}

func (l *LimitAllocator[T]) Construct(p *T, v T) error {
	return l.upstream.Construct(p, v)
}

func (l *LimitAllocator[T]) Destroy(p *T) {
	l.upstream.Destroy(p)
}

func (l *LimitAllocator[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(*LimitAllocator[T])
	return ok && o.id == l.id
}

func (l *LimitAllocator[T]) Policy() Policy {
	return l.policy
}

// InUse returns the number of elements currently allocated.
func (l *LimitAllocator[T]) InUse() int {
	return l.inuse
}

func (l *LimitAllocator[T]) Limit() int {
	return l.limit
}

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
	"iter"
	"slices"

	"github.com/matrixorigin/stltoys/pkg/common/malloc"
	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/iterator"
)

// PushBack appends x. When the vector is full the elements move to a
// buffer half again as large; if that fails the vector is unchanged.
func (v *Vector[T]) PushBack(x T) error {
	if v.n < len(v.buf) {
		if err := v.allocator().Construct(&v.buf[v.n], x); err != nil {
			return err
		}
		v.n++
		return nil
	}
	_, err := v.insertWith(v.n, 1, func(int) T { return x })
	return err
}

// EmplaceBack appends the value produced by ctor. An error from ctor is
// returned as is and nothing is appended.
func (v *Vector[T]) EmplaceBack(ctor func() (T, error)) error {
	x, err := ctor()
	if err != nil {
		return err
	}
	return v.PushBack(x)
}

func (v *Vector[T]) PopBack() {
	last := v.Ptr(v.n - 1)
	v.allocator().Destroy(last)
	v.n--
}

// Insert puts x before pos and returns an iterator to it.
func (v *Vector[T]) Insert(pos iterator.ConstIterator[T], x T) (iterator.Iterator[T], error) {
	return v.insertWith(pos.Index(), 1, func(int) T { return x })
}

// InsertN puts count copies of x before pos and returns an iterator to the
// first of them, or pos when count is zero.
func (v *Vector[T]) InsertN(pos iterator.ConstIterator[T], count int, x T) (iterator.Iterator[T], error) {
	if count < 0 {
		return iterator.Iterator[T]{}, moerr.NewInvalidArgNoCtx("insert count", count)
	}
	return v.insertWith(pos.Index(), count, func(int) T { return x })
}

// InsertSlice puts copies of vs before pos. vs may alias v.
func (v *Vector[T]) InsertSlice(pos iterator.ConstIterator[T], vs []T) (iterator.Iterator[T], error) {
	return v.insertWith(pos.Index(), len(vs), func(i int) T { return vs[i] })
}

func (v *Vector[T]) InsertSeq(pos iterator.ConstIterator[T], seq iter.Seq[T]) (iterator.Iterator[T], error) {
	return v.InsertSlice(pos, slices.Collect(seq))
}

// Emplace inserts the value produced by ctor before pos.
func (v *Vector[T]) Emplace(pos iterator.ConstIterator[T], ctor func() (T, error)) (iterator.Iterator[T], error) {
	x, err := ctor()
	if err != nil {
		return iterator.Iterator[T]{}, err
	}
	return v.Insert(pos, x)
}

// insertWith opens count slots at index and constructs them from at.
// Within capacity the new values are built past the end and rotated into
// place, so a failed construction never disturbs existing elements.
func (v *Vector[T]) insertWith(index, count int, at func(i int) T) (iterator.Iterator[T], error) {
	if index < 0 || index > v.n {
		return iterator.Iterator[T]{}, moerr.NewOutOfRangeNoCtx("vector", "insert position %d, size %d", index, v.n)
	}
	if count > v.MaxSize()-v.n {
		return iterator.Iterator[T]{}, moerr.NewLengthErrorNoCtx("vector", count, v.MaxSize()-v.n)
	}
	if count == 0 {
		return iterator.New(v.Data(), index), nil
	}

	a := v.allocator()
	if v.n+count > len(v.buf) {
		err := v.rebuild(v.growCapacity(v.n+count), index, count, func(gap []T) error {
			return constructEach(a, gap, at)
		})
		if err != nil {
			return iterator.Iterator[T]{}, err
		}
		return iterator.New(v.Data(), index), nil
	}

	if err := constructEach(a, v.buf[v.n:v.n+count], at); err != nil {
		return iterator.Iterator[T]{}, err
	}
	rotateLeft(v.buf[index:v.n+count], v.n-index)
	v.n += count
	return iterator.New(v.Data(), index), nil
}

// rotateLeft moves s[k:] to the front of s.
func rotateLeft[T any](s []T, k int) {
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

// Erase removes the element at pos and returns an iterator to the element
// that followed it.
func (v *Vector[T]) Erase(pos iterator.ConstIterator[T]) iterator.Iterator[T] {
	return v.EraseRange(pos, pos.Next())
}

// EraseRange removes [first, last). The range must lie within the vector.
func (v *Vector[T]) EraseRange(first, last iterator.ConstIterator[T]) iterator.Iterator[T] {
	f, l := first.Index(), last.Index()
	live := v.Data()
	gone := len(live[f:l])
	if gone > 0 {
		copy(live[f:], live[l:])
		malloc.DestroyRange(v.allocator(), live[v.n-gone:])
		v.n -= gone
	}
	return iterator.New(v.Data(), f)
}

// Resize grows the vector with zero values or truncates it to n elements.
func (v *Vector[T]) Resize(n int) error {
	var zero T
	return v.ResizeWith(n, zero)
}

// ResizeWith grows the vector with copies of x or truncates it.
func (v *Vector[T]) ResizeWith(n int, x T) error {
	if err := v.checkLength(n); err != nil {
		return err
	}
	if n <= v.n {
		malloc.DestroyRange(v.allocator(), v.buf[n:v.n])
		v.n = n
		return nil
	}
	_, err := v.insertWith(v.n, n-v.n, func(int) T { return x })
	return err
}

// AssignN replaces the contents with count copies of x.
func (v *Vector[T]) AssignN(count int, x T) error {
	return v.assignWith(count, func(int) T { return x })
}

// AssignSlice replaces the contents with copies of vs, which may alias v.
func (v *Vector[T]) AssignSlice(vs []T) error {
	return v.assignWith(len(vs), func(i int) T { return vs[i] })
}

func (v *Vector[T]) AssignSeq(seq iter.Seq[T]) error {
	return v.AssignSlice(slices.Collect(seq))
}

// assignWith reuses the current buffer when it is large enough. New slots
// are constructed before any live element is overwritten, so a failed
// construction leaves v unchanged.
func (v *Vector[T]) assignWith(count int, at func(i int) T) error {
	if err := v.checkLength(count); err != nil {
		return err
	}
	a := v.allocator()
	if count > len(v.buf) {
		nb, err := a.Allocate(count)
		if err != nil {
			return err
		}
		if err = constructEach(a, nb, at); err != nil {
			a.Deallocate(nb)
			return err
		}
		v.release()
		v.buf, v.n = nb, count
		return nil
	}

	n := v.n
	if count > n {
		err := constructEach(a, v.buf[n:count], func(i int) T { return at(n + i) })
		if err != nil {
			return err
		}
	}
	for i := range min(count, n) {
		v.buf[i] = at(i)
	}
	if count < n {
		malloc.DestroyRange(a, v.buf[count:n])
	}
	v.n = count
	return nil
}

// Assign makes v a copy of o. If v's allocator propagates on copy and the
// two differ, the copy is built with o's allocator and v adopts it.
func (v *Vector[T]) Assign(o *Vector[T]) error {
	if v == o {
		return nil
	}
	if v.allocator().Policy().PropagateOnCopy && !v.alloc.Equal(o.allocator()) {
		nb, err := copyInto(o.alloc, o.Data(), o.n)
		if err != nil {
			return err
		}
		v.release()
		v.alloc = o.alloc
		v.buf, v.n = nb, o.n
		return nil
	}
	return v.AssignSlice(o.Data())
}

// MoveFrom transfers o's elements to v and leaves o empty. The buffer
// changes hands when the allocator propagates on move or the two
// allocators are equal; otherwise the elements are copied into v's own
// storage and o is cleared.
func (v *Vector[T]) MoveFrom(o *Vector[T]) error {
	if v == o {
		return nil
	}
	policy := v.allocator().Policy()
	if !policy.PropagateOnMove && !v.alloc.Equal(o.allocator()) {
		if err := v.AssignSlice(o.Data()); err != nil {
			return err
		}
		o.Clear()
		return nil
	}

	v.release()
	if policy.PropagateOnMove {
		v.alloc = o.alloc
	}
	v.buf, v.n = o.buf, o.n
	o.buf, o.n = nil, 0
	return nil
}

// Swap exchanges the contents of v and o in constant time. Allocators are
// exchanged only when they propagate on swap.
func (v *Vector[T]) Swap(o *Vector[T]) {
	if v == o {
		return
	}
	if v.allocator().Policy().PropagateOnSwap {
		v.alloc, o.alloc = o.allocator(), v.alloc
	}
	v.buf, o.buf = o.buf, v.buf
	v.n, o.n = o.n, v.n
}

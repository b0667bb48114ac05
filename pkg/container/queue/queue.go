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


// Package queue adapts a sequence container into a first-in first-out
// queue.
package queue

import (
	"github.com/matrixorigin/stltoys/pkg/container/deque"
)

// Sequence is what a queue needs from its underlying container.
type Sequence[T any] interface {
	PushBack(v T) error
	PopFront()
	Front() T
	Back() T
	Len() int
}

var _ Sequence[int] = (*deque.Deque[int])(nil)

type Queue[T any] struct {
	c Sequence[T]
}

// New returns a queue over a fresh deque on the Go heap.
func New[T any]() *Queue[T] {
	return &Queue[T]{c: deque.New[T](nil)}
}

// Over returns a queue that takes ownership of c.
func Over[T any](c Sequence[T]) *Queue[T] {
	return &Queue[T]{c: c}
}

func (q *Queue[T]) Push(v T) error {
	return q.c.PushBack(v)
}

func (q *Queue[T]) Emplace(ctor func() (T, error)) error {
	v, err := ctor()
	if err != nil {
		return err
	}
	return q.c.PushBack(v)
}

// Pop removes the oldest element. The queue must not be empty.
func (q *Queue[T]) Pop() {
	q.c.PopFront()
}

// Front returns the oldest element.
func (q *Queue[T]) Front() T {
	return q.c.Front()
}

// Back returns the newest element.
func (q *Queue[T]) Back() T {
	return q.c.Back()
}

func (q *Queue[T]) Len() int {
	return q.c.Len()
}

func (q *Queue[T]) Empty() bool {
	return q.c.Len() == 0
}

func (q *Queue[T]) Swap(o *Queue[T]) {
	q.c, o.c = o.c, q.c
}

func (q *Queue[T]) Container() Sequence[T] {
	return q.c
}

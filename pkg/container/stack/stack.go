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


// Package stack adapts a sequence container into a last-in first-out
// stack.
package stack

import (
	"github.com/matrixorigin/stltoys/pkg/container/deque"
)

// Sequence is what a stack needs from its underlying container. Both
// *vector.Vector and *deque.Deque satisfy it.
type Sequence[T any] interface {
	PushBack(v T) error
	PopBack()
	Back() T
	Len() int
}

// Stack owns exactly one Sequence.
type Stack[T any] struct {
	c Sequence[T]
}

// New returns a stack over a fresh deque on the Go heap.
func New[T any]() *Stack[T] {
	return &Stack[T]{c: deque.New[T](nil)}
}

// Over returns a stack that takes ownership of c.
func Over[T any](c Sequence[T]) *Stack[T] {
	return &Stack[T]{c: c}
}

func (s *Stack[T]) Push(v T) error {
	return s.c.PushBack(v)
}

// Emplace pushes the value ctor produces. Nothing is pushed if ctor fails.
func (s *Stack[T]) Emplace(ctor func() (T, error)) error {
	v, err := ctor()
	if err != nil {
		return err
	}
	return s.c.PushBack(v)
}

// Pop removes the top element. The stack must not be empty.
func (s *Stack[T]) Pop() {
	s.c.PopBack()
}

// Top returns the most recently pushed element.
func (s *Stack[T]) Top() T {
	return s.c.Back()
}

func (s *Stack[T]) Len() int {
	return s.c.Len()
}

func (s *Stack[T]) Empty() bool {
	return s.c.Len() == 0
}

// Swap exchanges the underlying containers.
func (s *Stack[T]) Swap(o *Stack[T]) {
	s.c, o.c = o.c, s.c
}

// Container exposes the underlying sequence.
func (s *Stack[T]) Container() Sequence[T] {
	return s.c
}

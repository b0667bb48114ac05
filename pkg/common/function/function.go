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


// Package function holds type-erased callables. A Function can be copied
// with Clone; a MoveOnly can only change hands.
package function

import (
	"context"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
)

// Invoker is the payload of a MoveOnly.
type Invoker[A, R any] interface {
	Invoke(arg A) (R, error)
	// Destroy releases whatever the payload owns. It is called exactly once,
	// when the owning wrapper drops the payload.
	Destroy()
}

// Callable is the payload of a Function. Clone returns an independent
// payload that is destroyed separately.
type Callable[A, R any] interface {
	Invoker[A, R]
	Clone() Callable[A, R]
}

type funcCallable[A, R any] func(A) (R, error)

func (f funcCallable[A, R]) Invoke(arg A) (R, error) {
	return f(arg)
}

func (f funcCallable[A, R]) Clone() Callable[A, R] {
	return f
}

func (funcCallable[A, R]) Destroy() {}

// invoke calls c, turning a panic in the payload into an error.
func invoke[A, R any](c Invoker[A, R], arg A) (ret R, err error) {
	if c == nil {
		return ret, moerr.NewBadFuncCallNoCtx("call of empty function")
	}
	defer func() {
		if e := recover(); e != nil {
			err = moerr.ConvertPanicError(context.TODO(), e)
		}
	}()
	return c.Invoke(arg)
}

// Function is a copyable type-erased callable. The zero value is empty.
type Function[A, R any] struct {
	c Callable[A, R]
}

// Of wraps a plain Go function.
func Of[A, R any](f func(A) R) Function[A, R] {
	return Function[A, R]{c: funcCallable[A, R](func(arg A) (R, error) {
		return f(arg), nil
	})}
}

// OfFallible wraps a Go function that reports its own errors.
func OfFallible[A, R any](f func(A) (R, error)) Function[A, R] {
	return Function[A, R]{c: funcCallable[A, R](f)}
}

// Wrap takes ownership of c.
func Wrap[A, R any](c Callable[A, R]) Function[A, R] {
	return Function[A, R]{c: c}
}

// Call invokes the payload. Calling an empty Function returns
// ErrBadFuncCall.
func (f *Function[A, R]) Call(arg A) (R, error) {
	return invoke[A, R](f.c, arg)
}

// Valid reports whether f holds a payload.
func (f *Function[A, R]) Valid() bool {
	return f.c != nil
}

// Reset destroys the payload and leaves f empty.
func (f *Function[A, R]) Reset() {
	if f.c != nil {
		f.c.Destroy()
		f.c = nil
	}
}

// Clone returns a Function holding a copy of f's payload.
func (f *Function[A, R]) Clone() Function[A, R] {
	if f.c == nil {
		return Function[A, R]{}
	}
	return Function[A, R]{c: f.c.Clone()}
}

// Assign replaces f's payload with a copy of o's.
func (f *Function[A, R]) Assign(o *Function[A, R]) {
	if f == o {
		return
	}
	c := o.Clone()
	f.Reset()
	f.c = c.c
}

// MoveFrom takes o's payload and leaves o empty.
func (f *Function[A, R]) MoveFrom(o *Function[A, R]) {
	if f == o {
		return
	}
	f.Reset()
	f.c, o.c = o.c, nil
}

func (f *Function[A, R]) Swap(o *Function[A, R]) {
	f.c, o.c = o.c, f.c
}

// MoveOnly is a type-erased callable that cannot be copied, so its payload
// needs no Clone.
type MoveOnly[A, R any] struct {
	c Invoker[A, R]
}

func MoveOnlyOf[A, R any](f func(A) R) MoveOnly[A, R] {
	return MoveOnly[A, R]{c: funcCallable[A, R](func(arg A) (R, error) {
		return f(arg), nil
	})}
}

// WrapMoveOnly takes ownership of c.
func WrapMoveOnly[A, R any](c Invoker[A, R]) MoveOnly[A, R] {
	return MoveOnly[A, R]{c: c}
}

// FromFunction moves f's payload into a MoveOnly and leaves f empty.
func FromFunction[A, R any](f *Function[A, R]) MoveOnly[A, R] {
	m := MoveOnly[A, R]{}
	if f.c != nil {
		m.c = f.c
		f.c = nil
	}
	return m
}

func (m *MoveOnly[A, R]) Call(arg A) (R, error) {
	return invoke[A, R](m.c, arg)
}

func (m *MoveOnly[A, R]) Valid() bool {
	return m.c != nil
}

func (m *MoveOnly[A, R]) Reset() {
	if m.c != nil {
		m.c.Destroy()
		m.c = nil
	}
}

// MoveFrom takes o's payload and leaves o empty.
func (m *MoveOnly[A, R]) MoveFrom(o *MoveOnly[A, R]) {
	if m == o {
		return
	}
	m.Reset()
	m.c, o.c = o.c, nil
}

func (m *MoveOnly[A, R]) Swap(o *MoveOnly[A, R]) {
	m.c, o.c = o.c, m.c
}

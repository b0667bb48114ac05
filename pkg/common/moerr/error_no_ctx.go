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

package moerr

import "fmt"

// The NoCtx variants are used on container hot paths, where threading a
// context through every accessor would be noise.

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(Context(), ErrInternal, xmsg)
}

func NewOOMNoCtx() *Error {
	return newError(Context(), ErrOOM)
}

func NewInvalidStateNoCtx(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(Context(), ErrInvalidState, xmsg)
}

func NewBadFuncCallNoCtx(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(Context(), ErrBadFuncCall, xmsg)
}

func NewAllocMismatchNoCtx(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(Context(), ErrAllocMismatch, xmsg)
}

func NewOutOfRangeNoCtx(typ string, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(Context(), ErrOutOfRange, typ, xmsg)
}

func NewLengthErrorNoCtx(typ string, requested, maxSize int) *Error {
	return newError(Context(), ErrLengthError, typ, requested, maxSize)
}

func NewInvalidArgNoCtx(arg string, val any) *Error {
	return newError(Context(), ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewEmptyRangeNoCtx(typ string) *Error {
	return newError(Context(), ErrEmptyRange, typ)
}

func NewInvalidIndexNoCtx(idx, size int) *Error {
	return newError(Context(), ErrInvalidIndex, idx, size)
}

func NewBadConfigNoCtx(msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(Context(), ErrBadConfig, xmsg)
}

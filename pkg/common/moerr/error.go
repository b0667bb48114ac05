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

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
)

const (
	// 0 - 99 is OK.  They do not contain info, and are special handled
	// using a static instance, no alloc.
	Ok              uint16 = 0
	OkStopIteration uint16 = 1
	OkMax           uint16 = 99

	// 100 - 200 is Info
	ErrInfo uint16 = 100

	// 200 - 300 is WARNING
	ErrWarn uint16 = 200

	// Group 1: Internal errors
	ErrStart         uint16 = 20100
	ErrInternal      uint16 = 20101
	ErrNYI           uint16 = 20102
	ErrOOM           uint16 = 20103
	ErrNotSupported  uint16 = 20104
	ErrInvalidState  uint16 = 20105
	ErrBadConfig     uint16 = 20106
	ErrInvalidInput  uint16 = 20107
	ErrBadFuncCall   uint16 = 20108
	ErrAllocMismatch uint16 = 20109

	// Group 2: range and length
	ErrOutOfRange   uint16 = 20201
	ErrLengthError  uint16 = 20202
	ErrInvalidArg   uint16 = 20203
	ErrEmptyRange   uint16 = 20204
	ErrInvalidIndex uint16 = 20205

	// ErrEnd, the max value of error code
	ErrEnd uint16 = 65535
)

type moErrorMsgItem struct {
	name             string
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	// OK code not in this table.

	// Info
	ErrInfo: {"info", "info: %s"},

	// Warn
	ErrWarn: {"warning", "warning: %s"},

	// Group 1: Internal errors
	ErrStart:         {"start", "internal error: error code start"},
	ErrInternal:      {"internal", "internal error: %s"},
	ErrNYI:           {"nyi", "%s is not yet implemented"},
	ErrOOM:           {"oom", "error: out of memory"},
	ErrNotSupported:  {"not supported", "not supported: %s"},
	ErrInvalidState:  {"invalid state", "invalid state %s"},
	ErrBadConfig:     {"bad config", "invalid configuration: %s"},
	ErrInvalidInput:  {"invalid input", "invalid input: %s"},
	ErrBadFuncCall:   {"bad function call", "bad function call: %s"},
	ErrAllocMismatch: {"allocator mismatch", "allocator mismatch: %s"},

	// Group 2: range and length
	ErrOutOfRange:   {"out of range", "out of range: %s, %s"},
	ErrLengthError:  {"length error", "length error: %s, requested %d exceeds max size %d"},
	ErrInvalidArg:   {"invalid argument", "invalid argument %s, bad value %s"},
	ErrEmptyRange:   {"empty range", "%s: access on empty container"},
	ErrInvalidIndex: {"invalid index", "invalid index %d, size %d"},

	// Group End: max value of error code
	ErrEnd: {"end", "internal error: end of errcode code"},
}

func newError(ctx context.Context, code uint16, args ...any) *Error {
	var err *Error
	item, has := errorMsgRefer[code]
	if !has {
		panic(NewInternalError(ctx, "not exist MOErrorCode: %d", code))
	}
	if len(args) == 0 {
		err = &Error{
			code:    code,
			name:    item.name,
			message: item.errorMsgOrFormat,
		}
	} else {
		err = &Error{
			code:    code,
			name:    item.name,
			message: fmt.Sprintf(item.errorMsgOrFormat, args...),
		}
	}
	if ctx != nil {
		if detail, ok := ctx.Value(detailKey{}).(string); ok {
			err.detail = detail
		}
	}
	return err
}

type Error struct {
	code    uint16
	name    string
	message string
	detail  string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Detail() string {
	return e.detail
}

func (e *Error) Display() string {
	if len(e.detail) == 0 {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.detail)
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

// Name is the short class name of the error code, e.g. "out of range".
func (e *Error) Name() string {
	return e.name
}

// Is lets errors.Is match two *Error values by code.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == other.code
}

func (e *Error) Succeeded() bool {
	return e.code < OkMax
}

func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}

	me, ok := e.(*Error)
	if !ok {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

func DowncastError(e error) *Error {
	if err, ok := e.(*Error); ok {
		return err
	}
	return newError(Context(), ErrInternal, fmt.Sprintf("downcast error failed: %v", e))
}

// ConvertPanicError converts a runtime panic to internal error.
func ConvertPanicError(ctx context.Context, v interface{}) *Error {
	if e, ok := v.(*Error); ok {
		return e
	}
	return newError(ctx, ErrInternal, fmt.Sprintf("panic %v: %s", v, debug.Stack()))
}

// ConvertGoError converts a go error into mo error.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	// nil is nil
	if err == nil {
		return err
	}

	// already a moerr, return it as is
	if _, ok := err.(*Error); ok {
		return err
	}

	return NewInternalError(ctx, "convert go error to mo error %v", err)
}

var errOkStopIteration = Error{OkStopIteration, "ok", "StopIteration", ""}

// GetOkStopIteration is returned by visitors to end a walk early. It is a
// static instance, compare it with == or IsMoErrCode.
func GetOkStopIteration() *Error {
	return &errOkStopIteration
}

type detailKey struct{}

// WithDetail returns a context whose errors carry detail as their Detail().
func WithDetail(ctx context.Context, detail string) context.Context {
	return context.WithValue(ctx, detailKey{}, detail)
}

func NewInfo(ctx context.Context, msg string) *Error {
	return newError(ctx, ErrInfo, msg)
}

func NewWarn(ctx context.Context, msg string) *Error {
	return newError(ctx, ErrWarn, msg)
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInternal, xmsg)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNYI, xmsg)
}

func NewNotSupported(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNotSupported, xmsg)
}

func NewOOM(ctx context.Context) *Error {
	return newError(ctx, ErrOOM)
}

func NewInvalidState(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidState, xmsg)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadConfig, xmsg)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidInput, xmsg)
}

func NewBadFuncCall(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadFuncCall, xmsg)
}

func NewAllocMismatch(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrAllocMismatch, xmsg)
}

func NewOutOfRange(ctx context.Context, typ string, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrOutOfRange, typ, xmsg)
}

func NewLengthError(ctx context.Context, typ string, requested, maxSize int) *Error {
	return newError(ctx, ErrLengthError, typ, requested, maxSize)
}

func NewInvalidArg(ctx context.Context, arg string, val any) *Error {
	return newError(ctx, ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewEmptyRange(ctx context.Context, typ string) *Error {
	return newError(ctx, ErrEmptyRange, typ)
}

func NewInvalidIndex(ctx context.Context, idx, size int) *Error {
	return newError(ctx, ErrInvalidIndex, idx, size)
}

var contextFunc atomic.Value

func SetContextFunc(f func() context.Context) {
	contextFunc.Store(f)
}

// Context returns the context used by the NoCtx constructors.
func Context() context.Context {
	return contextFunc.Load().(func() context.Context)()
}

func init() {
	SetContextFunc(func() context.Context { return context.Background() })
}

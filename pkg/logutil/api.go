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

package logutil

import (
	"context"

	"go.uber.org/zap"
)

type contextFieldsKey struct{}

// WithContextFields returns a context carrying fields; loggers obtained
// through Ctx attach them to every entry.
func WithContextFields(ctx context.Context, fields ...zap.Field) context.Context {
	if prev, ok := ctx.Value(contextFieldsKey{}).([]zap.Field); ok {
		fields = append(append([]zap.Field{}, prev...), fields...)
	}
	return context.WithValue(ctx, contextFieldsKey{}, fields)
}

// ContextFields returns the zap fields stored in ctx.
func ContextFields(ctx context.Context) []zap.Field {
	fields, _ := ctx.Value(contextFieldsKey{}).([]zap.Field)
	return fields
}

// Ctx returns the global logger decorated with the fields of ctx.
func Ctx(ctx context.Context) *zap.Logger {
	return GetGlobalLogger().With(ContextFields(ctx)...)
}

// GetSkip1Logger returns the global logger with caller skip 1, so the
// helpers below report their callers.
func GetSkip1Logger() *zap.Logger {
	return GetGlobalLogger().WithOptions(zap.AddCallerSkip(1))
}

func Debug(msg string, fields ...zap.Field) {
	GetSkip1Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	GetSkip1Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetSkip1Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetSkip1Logger().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	GetSkip1Logger().Fatal(msg, fields...)
}

// Debugf only use in develop mode
func Debugf(msg string, fields ...interface{}) {
	GetSkip1Logger().Sugar().Debugf(msg, fields...)
}

// Infof only use in develop mode
func Infof(msg string, fields ...interface{}) {
	GetSkip1Logger().Sugar().Infof(msg, fields...)
}

// Warnf only use in develop mode
func Warnf(msg string, fields ...interface{}) {
	GetSkip1Logger().Sugar().Warnf(msg, fields...)
}

// Errorf only use in develop mode
func Errorf(msg string, fields ...interface{}) {
	GetSkip1Logger().WithOptions(zap.AddStacktrace(zap.ErrorLevel)).Sugar().Errorf(msg, fields...)
}

// DebugEnabled reports whether debug entries would be written. Hot paths
// check it before building fields.
func DebugEnabled() bool {
	return GetGlobalLogger().Core().Enabled(zap.DebugLevel)
}

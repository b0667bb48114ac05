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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/logutil"
)

func TestLimitAllocator(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	defer logutil.ReplaceGlobalLogger(zap.New(core))()

	l := NewLimitAllocator[int](nil, 8, Policy{AlwaysEqual: true})
	require.False(t, l.Policy().AlwaysEqual)

	a, err := l.Allocate(5)
	require.NoError(t, err)
	require.Equal(t, 5, l.InUse())

	_, err = l.Allocate(4)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOOM))
	require.Equal(t, 5, l.InUse())
	require.Equal(t, 1, logs.FilterMessage("allocation exceeds budget").Len())

	l.Deallocate(a)
	require.Equal(t, 0, l.InUse())

	b, err := l.Allocate(8)
	require.NoError(t, err)
	require.Len(t, b, 8)
	require.Equal(t, 8, l.Limit())
}

func TestLimitAllocatorEqual(t *testing.T) {
	a := NewLimitAllocator[int](nil, 8, Policy{})
	b := NewLimitAllocator[int](nil, 8, Policy{})
	require.True(t, a.Equal(a))
	require.False(t, a.Equal(b))
	require.False(t, a.Equal(GoAllocator[int]{}))
}

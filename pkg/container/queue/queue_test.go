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


package queue

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/deque"
)

func TestAccessorsReturnValues(t *testing.T) {
	convey.Convey("front and back forward the underlying values", t, func() {
		q := New[int]()
		convey.So(q.Empty(), convey.ShouldBeTrue)
		for i := 1; i <= 3; i++ {
			convey.So(q.Push(i*10), convey.ShouldBeNil)
		}
		convey.So(q.Front(), convey.ShouldEqual, 10)
		convey.So(q.Back(), convey.ShouldEqual, 30)

		q.Pop()
		convey.So(q.Front(), convey.ShouldEqual, 20)
		convey.So(q.Len(), convey.ShouldEqual, 2)

		convey.So(q.Emplace(func() (int, error) { return 40, nil }), convey.ShouldBeNil)
		convey.So(q.Back(), convey.ShouldEqual, 40)
	})
}

func TestFIFOOrderAcrossGrowth(t *testing.T) {
	q := Over[int](deque.New[int](nil))
	var got []int
	for i := 0; i < 100; i++ {
		require.NoError(t, q.Push(i))
		if i%3 == 0 {
			got = append(got, q.Front())
			q.Pop()
		}
	}
	for !q.Empty() {
		got = append(got, q.Front())
		q.Pop()
	}
	require.Len(t, got, 100)
	for i, v := range got {
		require.Equal(t, i, v)
	}
}

func TestEmplaceError(t *testing.T) {
	q := New[string]()
	failed := moerr.NewInvalidArgNoCtx("value", "x")
	require.Equal(t, failed, q.Emplace(func() (string, error) { return "", failed }))
	require.True(t, q.Empty())
}

func TestSwap(t *testing.T) {
	a, b := New[int](), New[int]()
	require.NoError(t, a.Push(1))
	require.NoError(t, b.Push(2))
	require.NoError(t, b.Push(3))
	a.Swap(b)
	require.Equal(t, 2, a.Front())
	require.Equal(t, 3, a.Back())
	require.Equal(t, 1, b.Front())
	require.Equal(t, 1, b.Container().Len())
}

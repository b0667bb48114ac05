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

	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
)

func TestClassAllocator(t *testing.T) {
	convey.Convey("class allocator", t, func() {
		c := NewClassAllocator[int](1<<24, Policy{PropagateOnSwap: true, AlwaysEqual: true})

		convey.Convey("rounds up to a class and reuses freed buffers", func() {
			buf, err := c.Allocate(10)
			convey.So(err, convey.ShouldBeNil)
			convey.So(len(buf), convey.ShouldEqual, 10)
			convey.So(cap(buf), convey.ShouldEqual, 16)

			buf[3] = 99
			c.Deallocate(buf)
			convey.So(c.Pooled(), convey.ShouldEqual, 1)

			again, err := c.Allocate(12)
			convey.So(err, convey.ShouldBeNil)
			convey.So(c.Reused(), convey.ShouldEqual, 1)
			convey.So(len(again), convey.ShouldEqual, 12)
			convey.So(again[3], convey.ShouldEqual, 0)
		})

		convey.Convey("oversized requests bypass the pools", func() {
			buf, err := c.Allocate(1<<21 + 1)
			convey.So(err, convey.ShouldBeNil)
			c.Deallocate(buf)
			convey.So(c.Pooled(), convey.ShouldEqual, 0)
		})

		convey.Convey("instances are distinct", func() {
			other := NewClassAllocator[int](1<<24, Policy{})
			convey.So(c.Equal(c), convey.ShouldBeTrue)
			convey.So(c.Equal(other), convey.ShouldBeFalse)
			convey.So(c.Policy().AlwaysEqual, convey.ShouldBeFalse)
			convey.So(c.Policy().PropagateOnSwap, convey.ShouldBeTrue)
		})
	})
}

func TestClassAllocatorZero(t *testing.T) {
	c := NewClassAllocator[byte](1<<10, Policy{})
	buf, err := c.Allocate(0)
	require.NoError(t, err)
	require.Nil(t, buf)
	c.Deallocate(buf)
}

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

package smallstr

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/stltoys/pkg/common/malloc"
	"github.com/matrixorigin/stltoys/pkg/common/moerr"
	"github.com/matrixorigin/stltoys/pkg/container/strview"
	"github.com/matrixorigin/stltoys/pkg/container/traits"
)

type byteTraits = traits.Default[byte]

func str(s string) strview.StringView {
	return strview.Str(s)
}

func isPow2Minus1(n int) bool {
	return n > 0 && (n+1)&n == 0
}

// checkInvariants asserts size <= capacity and the terminator.
func checkInvariants[C traits.Char, Tr traits.Traits[C]](t *testing.T, s *Basic[C, Tr]) {
	t.Helper()
	require.GreaterOrEqual(t, s.Len(), 0)
	require.LessOrEqual(t, s.Len(), s.Capacity())
	require.Equal(t, C(0), s.CStr()[s.Len()])
	require.Equal(t, s.Capacity() <= SSOSize, s.IsInline())
}

func TestInsertAppend(t *testing.T) {
	s := Make("hello")
	require.NoError(t, s.InsertN(5, 1, ' '))
	require.NoError(t, s.AppendString("world"))
	require.Equal(t, "hello world", s.String())
	checkInvariants(t, s)
}

func TestResizeGrowsToPowerOfTwoMinusOne(t *testing.T) {
	s, err := Repeat[byteTraits](15, byte('+'), nil)
	require.NoError(t, err)
	require.True(t, s.IsInline())
	require.Equal(t, SSOSize, s.Capacity())

	require.NoError(t, s.Resize(20, '-'))
	require.Equal(t, 20, s.Len())
	require.Equal(t, "+++++++++++++++-----", s.String())
	require.GreaterOrEqual(t, s.Capacity(), 20)
	require.True(t, isPow2Minus1(s.Capacity()))
	require.Equal(t, 31, s.Capacity())
	checkInvariants(t, s)

	require.NoError(t, s.Resize(3, 'x'))
	require.Equal(t, "+++", s.String())
	require.Equal(t, 31, s.Capacity())
	checkInvariants(t, s)
}

func TestCapacityPolicy(t *testing.T) {
	tests := []struct {
		n, next, least int
	}{
		{0, 1, 1},
		{1, 3, 1},
		{2, 3, 3},
		{14, 15, 15},
		{15, 31, 15},
		{16, 31, 31},
		{20, 31, 31},
		{31, 63, 31},
		{32, 63, 63},
		{1000, 1023, 1023},
	}
	for _, tt := range tests {
		require.Equal(t, tt.next, nextCapacity(tt.n), "next %d", tt.n)
		require.Equal(t, tt.least, leastCapacity(tt.n), "least %d", tt.n)
		require.Greater(t, nextCapacity(tt.n), tt.n)
		require.GreaterOrEqual(t, leastCapacity(tt.n), tt.n)
	}
	maxInt := int(^uint(0) >> 1)
	require.Equal(t, maxInt, nextCapacity(maxInt-1))
}

func TestSearch(t *testing.T) {
	s := Make("hello world hello c++")
	require.Equal(t, 2, s.Find(str("llo"), 0))
	require.Equal(t, 1, s.RFind(str("el"), 12))
	require.Equal(t, NPos, s.FindFirstOf(str("ABab"), 0))
	require.Equal(t, 4, s.FindFirstNotOf(str("hel"), 0))
	require.Equal(t, 16, s.FindLastOfChar('o', NPos))
	require.Equal(t, 13, s.FindLastNotOf(str(" c+lo"), NPos))
	require.Equal(t, 6, s.FindChar('w', 0))
	require.Equal(t, 19, s.RFindChar('+', 19))
	require.Equal(t, 6, s.FindFirstOfChar('w', 0))
	require.Equal(t, 9, s.FindLastOf(str("l"), 10))
	require.Equal(t, 1, s.FindFirstNotOfChar('h', 0))
	require.Equal(t, 18, s.FindLastNotOfChar('+', NPos))
	require.True(t, s.StartsWith(str("hello")))
	require.True(t, s.StartsWithChar('h'))
	require.True(t, s.EndsWith(str("c++")))
	require.True(t, s.EndsWithChar('+'))
	require.True(t, s.Contains(str("world")))
	require.True(t, s.ContainsChar('c'))
	require.False(t, s.Contains(str("rust")))
}

func TestEditSequence(t *testing.T) {
	convey.Convey("string operations", t, func() {
		s := Make("hello")
		convey.So(s.AppendString("world"), convey.ShouldBeNil)
		convey.So(s.InsertN(5, 1, ' '), convey.ShouldBeNil)
		convey.So(s.String(), convey.ShouldEqual, "hello world")

		convey.Convey("substr", func() {
			sub, err := s.Substr(3, 4)
			convey.So(err, convey.ShouldBeNil)
			convey.So(sub.String(), convey.ShouldEqual, "lo w")

			_, err = s.Substr(12, 1)
			convey.So(moerr.IsMoErrCode(err, moerr.ErrOutOfRange), convey.ShouldBeTrue)
		})

		convey.Convey("assign", func() {
			convey.So(s.AssignN(3, 'z'), convey.ShouldBeNil)
			convey.So(s.String(), convey.ShouldEqual, "zzz")
			convey.So(s.Assign(str("a considerably longer value")), convey.ShouldBeNil)
			convey.So(s.String(), convey.ShouldEqual, "a considerably longer value")
			convey.So(s.IsInline(), convey.ShouldBeFalse)
		})

		convey.Convey("erase", func() {
			convey.So(s.Erase(5, NPos), convey.ShouldBeNil)
			convey.So(s.String(), convey.ShouldEqual, "hello")
			convey.So(s.Erase(0, 1), convey.ShouldBeNil)
			convey.So(s.String(), convey.ShouldEqual, "ello")
			convey.So(s.Erase(2, 100), convey.ShouldBeNil)
			convey.So(s.String(), convey.ShouldEqual, "el")
			err := s.Erase(3, 1)
			convey.So(moerr.IsMoErrCode(err, moerr.ErrOutOfRange), convey.ShouldBeTrue)
		})

		convey.Convey("replace", func() {
			convey.So(s.ReplaceString(6, 5, "there, friend"), convey.ShouldBeNil)
			convey.So(s.String(), convey.ShouldEqual, "hello there, friend")
			convey.So(s.Replace(0, 5, str("bye")), convey.ShouldBeNil)
			convey.So(s.String(), convey.ShouldEqual, "bye there, friend")
			err := s.Replace(100, 1, str("x"))
			convey.So(moerr.IsMoErrCode(err, moerr.ErrOutOfRange), convey.ShouldBeTrue)
		})
	})
}

func TestInsertOutOfRange(t *testing.T) {
	s := Make("abc")
	err := s.InsertString(4, "x")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))
	require.Equal(t, "abc", s.String())

	err = s.InsertN(-1, 1, 'x')
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	require.NoError(t, s.InsertString(3, "d"))
	require.Equal(t, "abcd", s.String())
}

func TestInsertGrowsInOnePass(t *testing.T) {
	s := Make("0123456789abcde")
	require.True(t, s.IsInline())
	require.NoError(t, s.InsertString(5, "-----"))
	require.Equal(t, "01234-----56789abcde", s.String())
	require.False(t, s.IsInline())
	require.Equal(t, 31, s.Capacity())
	checkInvariants(t, s)

	// in place now
	require.NoError(t, s.InsertN(0, 2, '>'))
	require.Equal(t, ">>01234-----56789abcde", s.String())
	require.Equal(t, 31, s.Capacity())
}

func TestInsertAtReturnsIterator(t *testing.T) {
	s := Make("ac")
	it, err := s.InsertAt(s.CBegin().Next(), 'b')
	require.NoError(t, err)
	require.Equal(t, byte('b'), it.Get())
	require.Equal(t, 1, it.Index())
	require.Equal(t, "abc", s.String())

	it, err = s.InsertNAt(s.CEnd(), 2, '!')
	require.NoError(t, err)
	require.Equal(t, 3, it.Index())
	require.Equal(t, "abc!!", s.String())

	it = s.EraseAt(s.CBegin())
	require.Equal(t, byte('b'), it.Get())
	require.Equal(t, "bc!!", s.String())

	it = s.EraseRange(s.CBegin().Add(1), s.CEnd())
	require.True(t, it.Equal(s.End()))
	require.Equal(t, "b", s.String())
}

func TestSelfInsert(t *testing.T) {
	s := Make("abc")
	require.NoError(t, s.Insert(1, s.View()))
	require.Equal(t, "aabcbc", s.String())

	long := Make(strings.Repeat("x", 20))
	require.NoError(t, long.Append(long.View()))
	require.Equal(t, strings.Repeat("x", 40), long.String())

	require.NoError(t, s.AssignChars(s.View().Data()[2:4]))
	require.Equal(t, "bc", s.String())

	require.NoError(t, long.Replace(0, 1, long.View()))
	require.Equal(t, 79, long.Len())
}

func TestPushPop(t *testing.T) {
	s := New[byteTraits, byte](nil)
	for i := 0; i < 40; i++ {
		require.NoError(t, s.PushBack(byte('a'+i%26)))
		checkInvariants(t, s)
		require.True(t, isPow2Minus1(s.Capacity()))
	}
	require.Equal(t, 40, s.Len())
	require.Equal(t, 63, s.Capacity())
	require.Equal(t, byte('a'), s.Front())
	require.Equal(t, byte('n'), s.Back())

	s.PopBack()
	require.Equal(t, byte('m'), s.Back())
	checkInvariants(t, s)
}

func TestGrowthIsLogarithmic(t *testing.T) {
	fa := malloc.NewFaultAllocator[byte](nil)
	s := New[byteTraits](malloc.Allocator[byte](fa))
	const n = 1 << 16
	for i := 0; i < n; i++ {
		require.NoError(t, s.PushBack('x'))
	}
	// 15 -> 31 -> ... -> 2^17-1
	require.LessOrEqual(t, fa.Allocations(), 13)
	require.Equal(t, 1, fa.LiveBuffers())
	s.Free()
	require.Equal(t, 0, fa.LiveBuffers())
	require.True(t, s.IsInline())
	require.Equal(t, 0, s.Len())
}

func TestAllocationFailureLeavesStringUnchanged(t *testing.T) {
	fa := malloc.NewFaultAllocator[byte](nil)
	s, err := FromChars[byteTraits]([]byte("short"), malloc.Allocator[byte](fa))
	require.NoError(t, err)
	fa.AllocateFault = malloc.FailFrom(1)

	ops := map[string]func() error{
		"insert":  func() error { return s.InsertString(2, strings.Repeat("y", 20)) },
		"append":  func() error { return s.AppendN(30, 'z') },
		"resize":  func() error { return s.Resize(40, 'q') },
		"reserve": func() error { return s.Reserve(100) },
		"assign":  func() error { return s.AssignString(strings.Repeat("w", 16)) },
		"replace": func() error { return s.ReplaceString(0, 1, strings.Repeat("v", 16)) },
		"push": func() error {
			for s.Len() < SSOSize {
				if err := s.PushBack('p'); err != nil {
					return err
				}
			}
			return s.PushBack('p')
		},
	}
	for name, op := range ops {
		before := s.String()
		capacity := s.Capacity()
		err := op()
		require.True(t, moerr.IsMoErrCode(err, moerr.ErrOOM), name)
		if name != "push" {
			require.Equal(t, before, s.String(), name)
		}
		require.Equal(t, capacity, s.Capacity(), name)
		checkInvariants(t, s)
	}
	require.Equal(t, 0, fa.LiveBuffers())
}

func TestLengthError(t *testing.T) {
	s := Make("abc")
	err := s.Resize(-1, 'x')
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrLengthError))
	err = s.Resize(s.MaxSize()+1, 'x')
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrLengthError))
	err = s.Reserve(s.MaxSize() + 1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrLengthError))
	err = s.AssignN(-2, 'x')
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrLengthError))
	require.Equal(t, "abc", s.String())
}

func TestReserveShrink(t *testing.T) {
	s := Make("hello")
	require.NoError(t, s.Reserve(10))
	require.True(t, s.IsInline())

	require.NoError(t, s.Reserve(100))
	require.Equal(t, 100, s.Capacity())
	require.Equal(t, "hello", s.String())

	require.NoError(t, s.Reserve(120))
	require.Equal(t, 150, s.Capacity())

	require.NoError(t, s.ShrinkToFit())
	require.True(t, s.IsInline())
	require.Equal(t, SSOSize, s.Capacity())
	require.Equal(t, "hello", s.String())
	checkInvariants(t, s)

	long, err := Repeat[byteTraits](15, byte('+'), nil)
	require.NoError(t, err)
	require.NoError(t, long.Resize(20, '-'))
	require.NoError(t, long.ShrinkToFit())
	require.Equal(t, 20, long.Capacity())
	require.NoError(t, long.ShrinkToFit())
	require.Equal(t, 20, long.Capacity())
	require.Equal(t, "+++++++++++++++-----", long.String())
	checkInvariants(t, long)
}

func TestClone(t *testing.T) {
	for _, in := range []string{"", "short", strings.Repeat("long", 10)} {
		s := Make(in)
		c, err := s.Clone()
		require.NoError(t, err)
		require.True(t, c.Equal(s.View()))
		require.NoError(t, c.AppendString("!"))
		require.Equal(t, in, s.String())

		sub, err := s.Substr(0, s.Len())
		require.NoError(t, err)
		require.Equal(t, 0, sub.Compare(s.View()))
	}
}

func TestSwap(t *testing.T) {
	shortA, shortB := "tiny", "small"
	longA, longB := strings.Repeat("A", 30), strings.Repeat("B", 40)

	tests := []struct {
		name string
		a, b string
	}{
		{"both inline", shortA, shortB},
		{"both heap", longA, longB},
		{"inline with heap", shortA, longB},
		{"heap with inline", longA, shortB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := Make(tt.a), Make(tt.b)
			aInline, bInline := a.IsInline(), b.IsInline()
			a.Swap(b)
			require.Equal(t, tt.b, a.String())
			require.Equal(t, tt.a, b.String())
			require.Equal(t, bInline, a.IsInline())
			require.Equal(t, aInline, b.IsInline())
			checkInvariants(t, a)
			checkInvariants(t, b)

			// the inline side must still own its characters
			if a.IsInline() {
				require.NoError(t, b.AssignString("changed"))
				require.Equal(t, tt.b, a.String())
			}
			a.Swap(a)
			require.Equal(t, tt.b, a.String())
		})
	}
}

func TestSwapPropagation(t *testing.T) {
	policy := malloc.Policy{PropagateOnSwap: true}
	la := malloc.NewLimitAllocator[byte](nil, 1024, policy)
	lb := malloc.NewLimitAllocator[byte](nil, 1024, policy)
	a, err := FromChars[byteTraits]([]byte(strings.Repeat("a", 20)), malloc.Allocator[byte](la))
	require.NoError(t, err)
	b, err := FromChars[byteTraits]([]byte("b"), malloc.Allocator[byte](lb))
	require.NoError(t, err)

	a.Swap(b)
	require.Same(t, lb, a.Allocator())
	require.Same(t, la, b.Allocator())
	b.Free()
	require.Equal(t, 0, la.InUse())
}

func TestMoveFrom(t *testing.T) {
	convey.Convey("move", t, func() {
		convey.Convey("equal allocators steal the buffer", func() {
			src := Make(strings.Repeat("m", 30))
			data := &src.Data()[0]
			dst := Make("old")
			convey.So(dst.MoveFrom(src), convey.ShouldBeNil)
			convey.So(dst.String(), convey.ShouldEqual, strings.Repeat("m", 30))
			convey.So(&dst.Data()[0], convey.ShouldEqual, data)
			convey.So(src.Len(), convey.ShouldEqual, 0)
			convey.So(src.IsInline(), convey.ShouldBeTrue)
			convey.So(src.CStr()[0], convey.ShouldEqual, 0)
		})

		convey.Convey("inline contents are copied", func() {
			src := Make("inline")
			dst := Make(strings.Repeat("h", 40))
			convey.So(dst.MoveFrom(src), convey.ShouldBeNil)
			convey.So(dst.String(), convey.ShouldEqual, "inline")
			convey.So(dst.IsInline(), convey.ShouldBeTrue)
			convey.So(src.Empty(), convey.ShouldBeTrue)
		})

		convey.Convey("unequal allocators copy the characters", func() {
			la := malloc.NewLimitAllocator[byte](nil, 1024, malloc.Policy{})
			lb := malloc.NewLimitAllocator[byte](nil, 1024, malloc.Policy{})
			src, err := FromChars[byteTraits]([]byte(strings.Repeat("s", 20)), malloc.Allocator[byte](la))
			convey.So(err, convey.ShouldBeNil)
			dst := New[byteTraits](malloc.Allocator[byte](lb))
			convey.So(dst.MoveFrom(src), convey.ShouldBeNil)
			convey.So(dst.String(), convey.ShouldEqual, strings.Repeat("s", 20))
			convey.So(dst.Allocator(), convey.ShouldEqual, lb)
			convey.So(lb.InUse(), convey.ShouldBeGreaterThan, 0)
			convey.So(src.Empty(), convey.ShouldBeTrue)
		})

		convey.Convey("propagating allocators travel with the buffer", func() {
			policy := malloc.Policy{PropagateOnMove: true}
			la := malloc.NewLimitAllocator[byte](nil, 1024, policy)
			lb := malloc.NewLimitAllocator[byte](nil, 1024, policy)
			src, err := FromChars[byteTraits]([]byte(strings.Repeat("s", 20)), malloc.Allocator[byte](la))
			convey.So(err, convey.ShouldBeNil)
			dst := New[byteTraits](malloc.Allocator[byte](lb))
			convey.So(dst.MoveFrom(src), convey.ShouldBeNil)
			convey.So(dst.Allocator(), convey.ShouldEqual, la)
			convey.So(lb.InUse(), convey.ShouldEqual, 0)
			dst.Free()
			convey.So(la.InUse(), convey.ShouldEqual, 0)
		})
	})
}

func TestCopyFrom(t *testing.T) {
	la := malloc.NewLimitAllocator[byte](nil, 1024, malloc.Policy{PropagateOnCopy: true})
	lb := malloc.NewLimitAllocator[byte](nil, 1024, malloc.Policy{PropagateOnCopy: true})

	dst, err := FromChars[byteTraits]([]byte(strings.Repeat("d", 40)), malloc.Allocator[byte](la))
	require.NoError(t, err)
	src, err := FromChars[byteTraits]([]byte(strings.Repeat("s", 20)), malloc.Allocator[byte](lb))
	require.NoError(t, err)

	require.NoError(t, dst.CopyFrom(src))
	require.Equal(t, src.String(), dst.String())
	require.Same(t, lb, dst.Allocator())
	require.Equal(t, 0, la.InUse())
	require.NoError(t, dst.CopyFrom(dst))

	plain := Make(strings.Repeat("p", 40))
	capacity := plain.Capacity()
	require.NoError(t, plain.CopyFrom(Make("short")))
	require.Equal(t, "short", plain.String())
	require.Equal(t, capacity, plain.Capacity())
}

func TestConstructors(t *testing.T) {
	s, err := FromSeq[byteTraits](func(yield func(byte) bool) {
		for _, c := range []byte("from a sequence of characters") {
			if !yield(c) {
				return
			}
		}
	}, nil)
	require.NoError(t, err)
	require.Equal(t, "from a sequence of characters", s.String())

	v, err := FromView(str("view"), nil)
	require.NoError(t, err)
	require.Equal(t, "view", v.String())

	c, err := Concat[byteTraits](nil, str("con"), str("cat"), v.View())
	require.NoError(t, err)
	require.Equal(t, "concatview", c.String())

	var zero String
	require.True(t, zero.Empty())
	require.Equal(t, []byte{0}, zero.CStr())
	require.NoError(t, zero.AppendString("zero value works"))
	require.Equal(t, "zero value works", zero.String())
}

func TestAccessors(t *testing.T) {
	s := Make("access")
	require.Equal(t, byte('a'), s.Get(0))
	require.Equal(t, byte(0), s.Get(s.Len()))
	s.Set(0, 'A')
	c, err := s.At(0)
	require.NoError(t, err)
	require.Equal(t, byte('A'), c)
	_, err = s.At(6)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOutOfRange))

	for it := s.Begin(); !it.Equal(s.End()); it = it.Next() {
		if it.Get() == 's' {
			it.Set('S')
		}
	}
	require.Equal(t, "AcceSS", s.String())

	var rev []byte
	for it := s.RBegin(); !it.Equal(s.REnd()); it = it.Next() {
		rev = append(rev, it.Get())
	}
	require.Equal(t, "SSeccA", string(rev))

	n := 0
	for range s.All() {
		n++
	}
	require.Equal(t, 6, n)

	s.Slice().Fill('-')
	require.Equal(t, "------", s.String())

	dst := make([]byte, 3)
	copied, err := s.Copy(dst, 3, 4)
	require.NoError(t, err)
	require.Equal(t, 2, copied)
	require.Equal(t, 0, s.Compare(str("------")))
	require.Equal(t, str("------").Hash(), s.Hash())
	require.Equal(t, malloc.GoAllocator[byte]{}, s.Allocator())
}

func TestStreaming(t *testing.T) {
	var buf bytes.Buffer
	n, err := Make("narrow").WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)

	_, err = MakeU16("wide 𝄞").WriteTo(&buf)
	require.NoError(t, err)
	_, err = MakeU32(" 世界").WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, "narrowwide 𝄞 世界", buf.String())

	u := MakeU16("𝄞")
	require.Equal(t, 2, u.Len())
	require.Equal(t, uint16(0), u.CStr()[2])
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	s := New[byteTraits, byte](nil)
	var model []byte

	for i := 0; i < 2000; i++ {
		switch rnd.Intn(7) {
		case 0:
			c := byte('a' + rnd.Intn(26))
			require.NoError(t, s.PushBack(c))
			model = append(model, c)
		case 1:
			if len(model) > 0 {
				s.PopBack()
				model = model[:len(model)-1]
			}
		case 2:
			idx, n := rnd.Intn(len(model)+1), rnd.Intn(20)
			require.NoError(t, s.InsertN(idx, n, '#'))
			model = append(model[:idx], append(bytes.Repeat([]byte{'#'}, n), model[idx:]...)...)
		case 3:
			idx := rnd.Intn(len(model) + 1)
			n := rnd.Intn(10)
			require.NoError(t, s.Erase(idx, n))
			n = min(n, len(model)-idx)
			model = append(model[:idx], model[idx+n:]...)
		case 4:
			n := rnd.Intn(64)
			require.NoError(t, s.Resize(n, '='))
			for len(model) < n {
				model = append(model, '=')
			}
			model = model[:n]
		case 5:
			require.NoError(t, s.ShrinkToFit())
		case 6:
			require.NoError(t, s.Reserve(rnd.Intn(128)))
		}
		require.Equal(t, string(model), s.String())
		checkInvariants(t, s)
	}
}

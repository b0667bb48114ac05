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
	"io"

	"github.com/matrixorigin/stltoys/pkg/container/strview"
	"github.com/matrixorigin/stltoys/pkg/container/traits"
)

// The search and comparison surface is the view's, applied to the current
// characters.

func (s *Basic[C, Tr]) Find(v strview.View[C, Tr], pos int) int {
	return s.View().Find(v, pos)
}

func (s *Basic[C, Tr]) FindChar(c C, pos int) int {
	return s.View().FindChar(c, pos)
}

func (s *Basic[C, Tr]) RFind(v strview.View[C, Tr], pos int) int {
	return s.View().RFind(v, pos)
}

func (s *Basic[C, Tr]) RFindChar(c C, pos int) int {
	return s.View().RFindChar(c, pos)
}

func (s *Basic[C, Tr]) FindFirstOf(set strview.View[C, Tr], pos int) int {
	return s.View().FindFirstOf(set, pos)
}

func (s *Basic[C, Tr]) FindFirstOfChar(c C, pos int) int {
	return s.View().FindFirstOfChar(c, pos)
}

func (s *Basic[C, Tr]) FindLastOf(set strview.View[C, Tr], pos int) int {
	return s.View().FindLastOf(set, pos)
}

func (s *Basic[C, Tr]) FindLastOfChar(c C, pos int) int {
	return s.View().FindLastOfChar(c, pos)
}

func (s *Basic[C, Tr]) FindFirstNotOf(set strview.View[C, Tr], pos int) int {
	return s.View().FindFirstNotOf(set, pos)
}

func (s *Basic[C, Tr]) FindFirstNotOfChar(c C, pos int) int {
	return s.View().FindFirstNotOfChar(c, pos)
}

func (s *Basic[C, Tr]) FindLastNotOf(set strview.View[C, Tr], pos int) int {
	return s.View().FindLastNotOf(set, pos)
}

func (s *Basic[C, Tr]) FindLastNotOfChar(c C, pos int) int {
	return s.View().FindLastNotOfChar(c, pos)
}

func (s *Basic[C, Tr]) Compare(v strview.View[C, Tr]) int {
	return s.View().Compare(v)
}

func (s *Basic[C, Tr]) Equal(v strview.View[C, Tr]) bool {
	return s.View().Equal(v)
}

func (s *Basic[C, Tr]) StartsWith(v strview.View[C, Tr]) bool {
	return s.View().StartsWith(v)
}

func (s *Basic[C, Tr]) StartsWithChar(c C) bool {
	return s.View().StartsWithChar(c)
}

func (s *Basic[C, Tr]) EndsWith(v strview.View[C, Tr]) bool {
	return s.View().EndsWith(v)
}

func (s *Basic[C, Tr]) EndsWithChar(c C) bool {
	return s.View().EndsWithChar(c)
}

func (s *Basic[C, Tr]) Contains(v strview.View[C, Tr]) bool {
	return s.View().Contains(v)
}

func (s *Basic[C, Tr]) ContainsChar(c C) bool {
	return s.View().ContainsChar(c)
}

// Copy copies up to count characters from pos into dst.
func (s *Basic[C, Tr]) Copy(dst []C, count, pos int) (int, error) {
	return s.View().Copy(dst, count, pos)
}

func (s *Basic[C, Tr]) Hash() uint64 {
	return s.View().Hash()
}

// String renders s as UTF-8.
func (s *Basic[C, Tr]) String() string {
	return s.View().String()
}

// WriteTo writes s to w as UTF-8.
func (s *Basic[C, Tr]) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(traits.AppendUTF8(nil, s.Data()))
	return int64(n), err
}

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

package strview

import "github.com/matrixorigin/stltoys/pkg/container/traits"

type direction bool

const (
	forward  direction = true
	backward direction = false
)

func compare[C traits.Char, Tr traits.Traits[C]](a, b []C) int {
	var tr Tr
	n := min(len(a), len(b))
	if r := tr.Compare(a, b, n); r != 0 {
		return r
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func startsWith[C traits.Char, Tr traits.Traits[C]](s, x []C) bool {
	var tr Tr
	return len(s) >= len(x) && tr.Compare(s, x, len(x)) == 0
}

func endsWith[C traits.Char, Tr traits.Traits[C]](s, x []C) bool {
	var tr Tr
	return len(s) >= len(x) && tr.Compare(s[len(s)-len(x):], x, len(x)) == 0
}

// search is a brute force scan for pat in s.
//
// Forward scans start at pos and give up when pos is not inside s.
// Backward scans look for the last match lying entirely inside
// s[:pos+len(pat)], where an out of range pos means all of s.
func search[C traits.Char, Tr traits.Traits[C]](s, pat []C, pos int, dir direction) int {
	var tr Tr
	if dir == forward {
		if pos < 0 || pos >= len(s) {
			return NPos
		}
		for i := pos; i+len(pat) <= len(s); i++ {
			if tr.Compare(s[i:], pat, len(pat)) == 0 {
				return i
			}
		}
		return NPos
	}

	last := len(s)
	if pos >= 0 && pos < len(s) {
		last = pos + min(len(s)-pos, len(pat))
	}
	for i := last - len(pat); i >= 0; i-- {
		if tr.Compare(s[i:], pat, len(pat)) == 0 {
			return i
		}
	}
	return NPos
}

func contains[C traits.Char, Tr traits.Traits[C]](set []C, c C) bool {
	var tr Tr
	return tr.Find(set, c) >= 0
}

// findFirstOf scans forward from pos for a character whose membership in
// set equals want.
func findFirstOf[C traits.Char, Tr traits.Traits[C]](s, set []C, pos int, want bool) int {
	if pos < 0 {
		return NPos
	}
	for i := pos; i < len(s); i++ {
		if contains[C, Tr](set, s[i]) == want {
			return i
		}
	}
	return NPos
}

// findLastOf scans backward from pos, or from the end when pos is out of
// range.
func findLastOf[C traits.Char, Tr traits.Traits[C]](s, set []C, pos int, want bool) int {
	start := len(s) - 1
	if pos >= 0 && pos < len(s) {
		start = pos
	}
	for i := start; i >= 0; i-- {
		if contains[C, Tr](set, s[i]) == want {
			return i
		}
	}
	return NPos
}

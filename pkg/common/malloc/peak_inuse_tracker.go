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
	"sync/atomic"
	"time"
)

// PeakInuseTracker records the highest in-use value it has been told about
// and when it was reached.
type PeakInuseTracker struct {
	ptr atomic.Pointer[peakInuseInfo]
}

type peakInuseInfo struct {
	Data     peakInuseValue
	Snapshot peakInuseValue
}

type peakInuseValue struct {
	Value uint64
	Time  time.Time
}

func NewPeakInuseTracker() *PeakInuseTracker {
	ret := new(PeakInuseTracker)
	ret.ptr.Store(&peakInuseInfo{})
	return ret
}

// Update raises the peak to n if n is higher. It is safe for concurrent use.
func (p *PeakInuseTracker) Update(n uint64) bool {
	for {
		// read
		ptr := p.ptr.Load()
		if n <= ptr.Data.Value {
			return false
		}
		// copy
		newData := *ptr
		newData.Data.Value = n
		newData.Data.Time = time.Now()
		newData.Snapshot = newData.Data
		// update
		if p.ptr.CompareAndSwap(ptr, &newData) {
			return true
		}
	}
}

// Peak returns the peak value and the time it was recorded.
func (p *PeakInuseTracker) Peak() (uint64, time.Time) {
	info := p.ptr.Load()
	return info.Snapshot.Value, info.Snapshot.Time
}

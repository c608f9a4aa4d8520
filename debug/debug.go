/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package debug

import (
	"sync/atomic"

	"github.com/cloudwego/ez80/internal/backend"
)

// A Stats records what the backend has done since the Recorder was created
// or last reset.
type Stats struct {
	Copy   CopyStats
	Branch BranchStats
}

// A CopyStats records statistics about lowered register copies.
type CopyStats struct {
	Count   int
	Elided  int
	Emitted int
	ByCase  map[string]int
}

// A BranchStats records statistics about terminator edits.
type BranchStats struct {
	Removed  int
	Inserted int
	ByEdit   map[string]int
}

const (
	_MaxCases = 16
	_MaxEdits = 8
)

// Recorder is a backend tracer that only counts events. It is safe for
// concurrent use.
type Recorder struct {
	copies   int64
	elided   int64
	emitted  int64
	removed  int64
	inserted int64
	cases    [_MaxCases]int64
	edits    [_MaxEdits]int64
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return new(Recorder)
}

func (r *Recorder) TraceCopy(ev *backend.CopyEvent) {
	atomic.AddInt64(&r.copies, 1)
	atomic.AddInt64(&r.emitted, int64(len(ev.Emitted)))
	if ev.Elided {
		atomic.AddInt64(&r.elided, 1)
	}
	if int(ev.Case) < _MaxCases {
		atomic.AddInt64(&r.cases[ev.Case], 1)
	}
}

func (r *Recorder) TraceBranch(ev *backend.BranchEvent) {
	atomic.AddInt64(&r.removed, int64(ev.Removed))
	atomic.AddInt64(&r.inserted, int64(len(ev.Inserted)))
	if int(ev.Edit) < _MaxEdits {
		atomic.AddInt64(&r.edits[ev.Edit], 1)
	}
}

// Stats returns a snapshot of the counters. Cases and edits that never
// happened are left out of the maps.
func (r *Recorder) Stats() Stats {
	s := Stats{
		Copy: CopyStats{
			Count:   int(atomic.LoadInt64(&r.copies)),
			Elided:  int(atomic.LoadInt64(&r.elided)),
			Emitted: int(atomic.LoadInt64(&r.emitted)),
			ByCase:  make(map[string]int),
		},
		Branch: BranchStats{
			Removed:  int(atomic.LoadInt64(&r.removed)),
			Inserted: int(atomic.LoadInt64(&r.inserted)),
			ByEdit:   make(map[string]int),
		},
	}
	for i := range r.cases {
		if n := atomic.LoadInt64(&r.cases[i]); n != 0 {
			s.Copy.ByCase[backend.CopyCase(i).String()] = int(n)
		}
	}
	for i := range r.edits {
		if n := atomic.LoadInt64(&r.edits[i]); n != 0 {
			s.Branch.ByEdit[backend.BranchEdit(i).String()] = int(n)
		}
	}
	return s
}

// Reset clears every counter.
func (r *Recorder) Reset() {
	for _, p := range []*int64{&r.copies, &r.elided, &r.emitted, &r.removed, &r.inserted} {
		atomic.StoreInt64(p, 0)
	}
	for i := range r.cases {
		atomic.StoreInt64(&r.cases[i], 0)
	}
	for i := range r.edits {
		atomic.StoreInt64(&r.edits[i], 0)
	}
}

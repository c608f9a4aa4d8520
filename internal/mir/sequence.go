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

package mir

// Sequence collects newly built instructions before they are spliced into
// a block. Prev is the instruction right before the splice point; a builder
// may cancel it (see EraseLast), in which case the caller must delete it
// when splicing.
type Sequence struct {
    Ins     []*Instr
    Prev    *Instr
    OptSize bool
    erased  bool
}

func NewSequence(prev *Instr) *Sequence {
    return &Sequence { Prev: prev }
}

// Add appends a new instruction and returns it for operand building.
func (self *Sequence) Add(op OpCode) *Instr {
    p := NewInstr(op)
    self.Ins = append(self.Ins, p)
    return p
}

func (self *Sequence) Len() int {
    return len(self.Ins)
}

// Last returns the instruction that currently precedes the next one to be
// added, which may be Prev, or nil.
func (self *Sequence) Last() *Instr {
    if n := len(self.Ins); n != 0 {
        return self.Ins[n - 1]
    } else if !self.erased {
        return self.Prev
    } else {
        return nil
    }
}

// EraseLast cancels the instruction returned by Last.
func (self *Sequence) EraseLast() {
    if n := len(self.Ins); n != 0 {
        self.Ins = self.Ins[:n - 1]
    } else if self.Prev != nil && !self.erased {
        self.erased = true
    } else {
        panic("EraseLast: empty sequence")
    }
}

// PrevErased reports whether Prev was cancelled.
func (self *Sequence) PrevErased() bool {
    return self.erased
}

// Since returns the instructions added after the sequence had n of them.
func (self *Sequence) Since(n int) []*Instr {
    if n >= len(self.Ins) {
        return nil
    } else {
        return self.Ins[n:]
    }
}

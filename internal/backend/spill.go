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

package backend

import (
    `github.com/cloudwego/ez80/internal/mir`
    `github.com/cloudwego/ez80/internal/target`
)

const (
    _OP_store = "store"
    _OP_load  = "load"
)

func (self *InstrInfo) slotOp(op string, rc *target.RegClass, op8 mir.OpCode, op16 mir.OpCode, op88 mir.OpCode, op24 mir.OpCode) mir.OpCode {
    switch rc.Size {
        case 1: {
            return op8
        }
        case 2: {
            if self.st.HasEZ80Ops {
                return op16
            } else {
                return op88
            }
        }
        case 3: {
            if !self.st.Is24Bit {
                target.Violatef(op, "3-byte stack slots of %s need a 24-bit subtarget", rc.Name)
            }
            return op24
        }
        default: {
            target.Violatef(op, "unexpected stack slot size %d of %s", rc.Size, rc.Name)
            return mir.OP_invalid
        }
    }
}

// StoreToSlot appends a store of src into stack slot fi.
func (self *InstrInfo) StoreToSlot(seq *mir.Sequence, src target.Reg, kill bool, fi int, rc *target.RegClass) *mir.Instr {
    if !rc.Contains(src) {
        target.Violatef(_OP_store, "register %s is not in class %s", src, rc.Name)
    }
    op := self.slotOp(_OP_store, rc, mir.OP_LD8or, mir.OP_LD16or, mir.OP_LD88or, mir.OP_LD24or)
    return seq.Add(op).FI(fi).Imm(0).Reg(src, mir.KillState(kill))
}

// LoadFromSlot appends a load of stack slot fi into dst.
func (self *InstrInfo) LoadFromSlot(seq *mir.Sequence, dst target.Reg, fi int, rc *target.RegClass) *mir.Instr {
    if !rc.Contains(dst) {
        target.Violatef(_OP_load, "register %s is not in class %s", dst, rc.Name)
    }
    op := self.slotOp(_OP_load, rc, mir.OP_LD8ro, mir.OP_LD16ro, mir.OP_LD88ro, mir.OP_LD24ro)
    return seq.Add(op).Def(dst).FI(fi).Imm(0)
}

// Split describes how a value of some byte size is moved through memory:
// either with one instruction, or as a low and a high piece.
type Split struct {
    Class *target.RegClass
    Split bool
    LoOp  mir.OpCode
    HiOp  mir.OpCode
    LoIdx target.SubRegIdx
    HiIdx target.SubRegIdx
    HiOff int64
}

// SplitReg picks the memory access shape of a size-byte value given the
// 8, 16 and 24-bit flavors of the access.
func SplitReg(size int, op8 mir.OpCode, op16 mir.OpCode, op24 mir.OpCode, has16BitEZ80Ops bool) Split {
    switch size {
        case 1: {
            return Split { Class: target.R8, LoOp: op8, HiOp: op8 }
        }
        case 2: {
            if has16BitEZ80Ops {
                return Split { Class: target.R16, LoOp: op16, HiOp: op16 }
            } else {
                return Split { Class: target.R16, Split: true, LoOp: op8, HiOp: op8, LoIdx: target.SubLow, HiIdx: target.SubHigh, HiOff: 1 }
            }
        }
        case 3: {
            return Split { Class: target.R24, LoOp: op24, HiOp: op24 }
        }
        default: {
            target.Violatef("split", "unexpected size %d", size)
            return Split{}
        }
    }
}

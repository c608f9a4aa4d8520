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

// Compare describes what a compare instruction compares: register Src
// against either register Src2 or the immediate Value.
type Compare struct {
    Src   target.Reg
    Src2  target.Reg
    Mask  int64
    Value int64
}

// AnalyzeCompare describes the compare at position pos of bb. Full copies
// right above the compare are looked through, so the registers reported
// are the ones the compared values were copied from.
func (self *InstrInfo) AnalyzeCompare(bb *mir.Block, pos int) (Compare, bool) {
    var ret Compare
    p := bb.Ins[pos]

    /* every compare is against A */
    ret.Src = target.A
    ret.Mask = ^0

    /* decode the second operand */
    switch p.Op {
        case mir.OP_CP8ai, mir.OP_SUB8ai : ret.Value = p.Operand(0).Imm
        case mir.OP_CP8ar, mir.OP_SUB8ar : ret.Src2 = p.Operand(0).Reg
        case mir.OP_CP8am, mir.OP_SUB8am : break
        case mir.OP_CP8ao, mir.OP_SUB8ao : break
        default                          : return Compare{}, false
    }

    /* look through the copies */
    for i := pos - 1; i >= 0 && bb.Ins[i].IsFullCopy(); i-- {
        dst := bb.Ins[i].Operand(0).Reg
        src := bb.Ins[i].Operand(1).Reg

        /* rename the compared registers */
        if ret.Src == dst { ret.Src = src }
        if ret.Src2 == dst && dst != target.NoReg { ret.Src2 = src }
    }

    /* all done */
    return ret, true
}

// OptimizeCompare rewrites a subtraction used only for its flags into a
// cheaper compare. It reports whether the instruction was changed.
func (self *InstrInfo) OptimizeCompare(p *mir.Instr) bool {
    switch p.Op {
        case mir.OP_SUB8ai: {
            if p.Operand(0).Imm == 0 {
                p.Morph(mir.OP_OR8ar)
                p.Operand(0).ChangeToRegister(target.A, false)
                return true
            }
        }

        /* the other subtractions */
        case mir.OP_SUB8ar, mir.OP_SUB8am, mir.OP_SUB8ao: {
            break
        }

        /* not a subtraction */
        default: {
            return false
        }
    }

    /* a subtraction with an unused result only sets the flags */
    if !p.RegisterDefIsDead(target.A) {
        return false
    }

    /* switch to the compare form, which does not write A */
    switch p.Op {
        case mir.OP_SUB8ai : p.Morph(mir.OP_CP8ai)
        case mir.OP_SUB8ar : p.Morph(mir.OP_CP8ar)
        case mir.OP_SUB8am : p.Morph(mir.OP_CP8am)
        case mir.OP_SUB8ao : p.Morph(mir.OP_CP8ao)
    }

    /* all done */
    return true
}

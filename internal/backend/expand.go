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
    _OP_expand = "expand"
)

// runtime helpers for indirect calls, by the register holding the callee
var _IndCallTab = map[target.Reg]string {
    target.HL  : "_indcallhl",
    target.UHL : "_indcallhl",
    target.IX  : "_indcallix",
    target.UIX : "_indcallix",
    target.IY  : "_indcall",
    target.UIY : "_indcall",
}

// ExpandPostRAPseudo expands the pseudo instruction at position pos of bb
// into real instructions. It reports whether anything was expanded. An
// expansion may insert instructions before pos.
func (self *InstrInfo) ExpandPostRAPseudo(bb *mir.Block, pos int) bool {
    p := bb.Ins[pos]

    /* check for instruction */
    switch p.Op {
        /* reset the carry flag with OR A,A */
        case mir.OP_RCF: {
            p.Morph(mir.OP_OR8ar)
            p.Reg(target.A, mir.R_undef)
        }

        /* 16-bit loads and stores without eZ80 ops go byte by byte */
        case mir.OP_LD88ro: self.expandLoad(bb, pos)
        case mir.OP_LD88or: self.expandStore(bb, pos)

        /* indirect calls go through a runtime helper */
        case mir.OP_CALL16r, mir.OP_CALL24r: {
            sym, ok := _IndCallTab[p.Operand(0).Reg]
            if !ok {
                target.Violatef(_OP_expand, "unexpected indirect call register %s", p.Operand(0).Reg)
            }

            /* call the helper directly */
            p.Morph(pick(p.Op == mir.OP_CALL24r, mir.OP_CALL16i, mir.OP_CALL24i))
            p.Operand(0).ChangeToSymbol(sym)
        }

        /* tail calls are jumps */
        case mir.OP_TCRETURN16i, mir.OP_TCRETURN24i: p.Morph(mir.OP_JQ)
        case mir.OP_TCRETURN16r, mir.OP_TCRETURN24r: p.Morph(mir.OP_JPr)

        /* these have no expansion */
        case mir.OP_LD88rp, mir.OP_LD88pr, mir.OP_Cp16, mir.OP_Cp24, mir.OP_Cp016, mir.OP_Cp024: {
            target.Violatef(_OP_expand, "cannot expand %s", p)
        }

        /* not a pseudo instruction */
        default: {
            return false
        }
    }

    /* all done */
    return true
}

// ExpandBlock expands every pseudo instruction of bb and returns how many
// were expanded.
func (self *InstrInfo) ExpandBlock(bb *mir.Block) int {
    n := 0
    for i := 0; i < len(bb.Ins); i++ {
        if m := len(bb.Ins); self.ExpandPostRAPseudo(bb, i) {
            n++
            i += len(bb.Ins) - m
        }
    }
    return n
}

func halves(reg target.Reg, op8 mir.OpCode, op16 mir.OpCode, op24 mir.OpCode) (Split, target.Reg, target.Reg) {
    sp := SplitReg(2, op8, op16, op24, false)
    lo, hi := target.SubReg(reg, sp.LoIdx), target.SubReg(reg, sp.HiIdx)

    /* must be a register pair */
    if lo == target.NoReg || hi == target.NoReg {
        target.Violatef(_OP_expand, "cannot split %s into bytes", reg)
    }
    return sp, lo, hi
}

func (self *InstrInfo) expandLoad(bb *mir.Block, pos int) {
    p := bb.Ins[pos]
    r := p.Operand(0).Reg
    fi := p.Operand(1).Imm
    off := p.Operand(2).Imm
    sp, lo, hi := halves(r, mir.OP_LD8ro, mir.OP_LD16ro, mir.OP_LD24ro)

    /* the low byte stays in place */
    p.Morph(sp.LoOp)
    p.Operand(0).ChangeToRegister(lo, true)

    /* the high byte is loaded first */
    bb.Insert(pos, mir.NewInstr(sp.HiOp).Def(hi).FI(int(fi)).Imm(off + sp.HiOff))
}

func (self *InstrInfo) expandStore(bb *mir.Block, pos int) {
    p := bb.Ins[pos]
    fi := p.Operand(0).Imm
    off := p.Operand(1).Imm
    r, kill := p.Operand(2).Reg, p.Operand(2).IsKill()
    sp, lo, hi := halves(r, mir.OP_LD8or, mir.OP_LD16or, mir.OP_LD24or)

    /* the low byte stays in place */
    p.Morph(sp.LoOp)
    p.Operand(2).ChangeToRegister(lo, false)
    p.Operand(2).SetKill(kill)

    /* the high byte is stored first */
    bb.Insert(pos, mir.NewInstr(sp.HiOp).FI(int(fi)).Imm(off + sp.HiOff).Reg(hi, mir.KillState(kill)))
}

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
    _OP_copy = "copy"
)

func isIndex(r target.Reg) bool {
    return target.I16.Contains(r) || target.I24.Contains(r)
}

// canExchange reports whether a and b live in DE and HL, in any order.
func canExchange(a target.Reg, b target.Reg) bool {
    de, hl := false, false
    for _, r := range [...]target.Reg { a, b } {
        if target.IsSubRegisterEq(target.UDE, r) {
            de = true
        } else if target.IsSubRegisterEq(target.UHL, r) {
            hl = true
        }
    }
    return de && hl
}

func pick(w24 bool, op16 mir.OpCode, op24 mir.OpCode) mir.OpCode {
    if w24 {
        return op24
    } else {
        return op16
    }
}

// normalize brings both ends of a copy to the same width by narrowing the
// wider one.
func normalize(dst target.Reg, src target.Reg) (target.Reg, target.Reg) {
    dw := dst.Width()
    sw := src.Width()

    /* check for invalid registers */
    if dw == 0 || sw == 0 {
        target.Violatef(_OP_copy, "invalid register in copy %s <- %s", dst, src)
    }

    /* narrow the wider end */
    switch {
        case dw == sw           : return dst, src
        case dw == 1            : src = target.SubReg(src, target.SubLow)
        case sw == 1            : dst = target.SubReg(dst, target.SubLow)
        case dw == 3 && sw == 4 : src = target.SubReg(src, target.SubLong)
        case dw == 4 && sw == 3 : dst = target.SubReg(dst, target.SubLong)
        default                 : target.Violatef(_OP_copy, "width mismatch in copy %s <- %s", dst, src)
    }

    /* the narrowed view must exist */
    if dst == target.NoReg || src == target.NoReg {
        target.Violatef(_OP_copy, "no common view in copy of different widths")
    }
    return dst, src
}

// CopyPhysReg appends the instructions that copy src into dst. When kill is
// set the source is dead afterwards and may be clobbered. The copy may
// cancel seq.Prev when it is an EX DE,HL that the copy would emit again.
func (self *InstrInfo) CopyPhysReg(seq *mir.Sequence, dst target.Reg, src target.Reg, kill bool) {
    var last *mir.Instr
    var elided bool

    /* remember where the new instructions start */
    pos := seq.Len()
    if pos != 0 {
        last = seq.Ins[pos - 1]
    }

    /* lower the copy */
    erased := seq.PrevErased()
    kind := self.copyPhysReg(seq, dst, src, kill)
    elided = !erased && seq.PrevErased()

    /* an elided EX may have consumed the instruction before pos */
    if pos != 0 && (pos > seq.Len() || seq.Ins[pos - 1] != last) {
        pos--
        elided = true
    }

    /* report the copy */
    self.tr.TraceCopy(&CopyEvent {
        Dst     : dst,
        Src     : src,
        Kill    : kill,
        Case    : kind,
        Elided  : elided,
        Emitted : seq.Since(pos),
    })
}

// InsertCopy lowers a copy before position pos of bb, and returns the
// position right after the inserted instructions.
func (self *InstrInfo) InsertCopy(bb *mir.Block, pos int, dst target.Reg, src target.Reg, kill bool) int {
    var prev *mir.Instr
    if pos > 0 {
        prev = bb.Ins[pos - 1]
    }

    /* optimize for size if the function asks for it */
    seq := mir.NewSequence(prev)
    seq.OptSize = bb.Func() != nil && bb.Func().OptSize
    self.CopyPhysReg(seq, dst, src, kill)

    /* replace the cancelled EX if any */
    lo := pos
    if seq.PrevErased() {
        lo--
    }

    /* splice into the block */
    bb.Replace(lo, pos, seq.Ins...)
    return lo + seq.Len()
}

func (self *InstrInfo) copyPhysReg(seq *mir.Sequence, dst target.Reg, src target.Reg, kill bool) CopyCase {
    dst, src = normalize(dst, src)

    /* identity copy */
    if dst == src {
        return CopyIdentity
    }

    /* byte copy */
    if target.R8.Contains(dst, src) {
        return self.copy8(seq, dst, src, kill)
    }

    /* flags and the accumulator pair are never copied */
    if dst.Width() == 1 || dst == target.AF || src == target.AF {
        target.Violatef(_OP_copy, "no legal copy %s <- %s", dst, src)
    }

    /* DE/HL = HL/DE<kill> is a single EX DE,HL */
    is24 := target.R24.Contains(dst, src)
    if kill && is24 == self.st.Is24Bit && canExchange(dst, src) {
        p := seq.Add(pick(is24, mir.OP_EX16DE, mir.OP_EX24DE))
        p.FindRegUse(src).SetKill(true)
        p.FindRegDef(src).SetDead(true)
        p.FindRegUse(dst).SetUndef(true)
        return CopyExchange
    }

    /* copies involving the stack pointer */
    if dst == target.SPS || dst == target.SPL {
        self.copyToSP(seq, dst, src, kill)
        return CopyToSP
    } else if src == target.SPS || src == target.SPL {
        self.copyFromSP(seq, dst, src)
        return CopyFromSP
    }

    /* index sources can be copied with LEA when we have eZ80 ops */
    if self.st.HasEZ80Ops && isIndex(src) {
        seq.Add(pick(is24, mir.OP_LEA16ro, mir.OP_LEA24ro)).Def(dst).Reg(src, mir.KillState(kill)).Imm(0)
        return CopyLea
    }

    /* push and pop when both are 24-bit, or the index halves are too expensive or unavailable */
    nidx := 0
    optsize := seq.OptSize || self.st.OptimizeSize
    if isIndex(src) { nidx++ }
    if isIndex(dst) { nidx++ }

    /* PUSH src; POP dst */
    if is24 || (nidx == 1 && optsize) || (nidx != 0 && !self.st.HasIndexHalfRegs) {
        seq.Add(pick(is24, mir.OP_PUSH16r, mir.OP_PUSH24r)).Reg(src, mir.KillState(kill))
        seq.Add(pick(is24, mir.OP_POP16r, mir.OP_POP24r)).Def(dst)
        return CopyPushPop
    }

    /* everything else is copied piece by piece */
    return self.copyPieces(seq, dst, src, kill)
}

func (self *InstrInfo) copy8(seq *mir.Sequence, dst target.Reg, src target.Reg, kill bool) CopyCase {
    if target.G8.Contains(dst, src) {
        seq.Add(mir.OP_LD8rr).Def(dst).Reg(src, mir.KillState(kill))
        return CopyByte
    }

    /* everything else involves an index half */
    if !self.st.HasIndexHalfRegs {
        target.Violatef(_OP_copy, "copy %s <- %s needs index half registers", dst, src)
    }

    /* both are index halves */
    if target.I8.Contains(dst, src) {
        return self.copyIndex8(seq, dst, src, kill)
    }

    /* H and L cannot be encoded next to an index half, use D and E inside an EX DE,HL */
    ex := false
    for _, r := range [...]*target.Reg { &dst, &src } {
        switch *r {
            case target.H : *r, ex = target.D, true
            case target.L : *r, ex = target.E, true
        }
    }

    /* cancel the previous EX DE,HL instead of emitting another one */
    exop := pick(self.st.Is24Bit, mir.OP_EX16DE, mir.OP_EX24DE)
    if ex {
        if p := seq.Last(); p != nil && p.Op == exop {
            seq.EraseLast()
        } else {
            seq.Add(exop)
        }
    }

    /* pick the prefix of the index half */
    if target.X8.Contains(dst, src) {
        seq.Add(mir.OP_LD8xx).Def(dst).Reg(src, mir.KillState(kill))
    } else {
        seq.Add(mir.OP_LD8yy).Def(dst).Reg(src, mir.KillState(kill))
    }

    /* swap DE and HL back */
    if ex {
        seq.Add(exop)
    }
    return CopyMixedByte
}

func (self *InstrInfo) copyIndex8(seq *mir.Sequence, dst target.Reg, src target.Reg, kill bool) CopyCase {
    if target.X8.Contains(dst, src) {
        seq.Add(mir.OP_LD8xx).Def(dst).Reg(src, mir.KillState(kill))
        return CopyIndexByte
    }

    /* same prefix */
    if target.Y8.Contains(dst, src) {
        seq.Add(mir.OP_LD8yy).Def(dst).Reg(src, mir.KillState(kill))
        return CopyIndexByte
    }

    /* different index registers, go through A */
    seq.Add(pick(self.st.Is24Bit, mir.OP_PUSH16r, mir.OP_PUSH24r)).Use(target.AF)
    seq.Add(prefixed(src)).Def(target.A).Reg(src, mir.KillState(kill))
    seq.Add(prefixed(dst)).Def(dst).Reg(target.A, mir.R_kill)
    seq.Add(pick(self.st.Is24Bit, mir.OP_POP16r, mir.OP_POP24r)).Def(target.AF)
    return CopyIndexViaA
}

func prefixed(r target.Reg) mir.OpCode {
    if target.X8.Contains(r) {
        return mir.OP_LD8xx
    } else {
        return mir.OP_LD8yy
    }
}

func (self *InstrInfo) copyToSP(seq *mir.Sequence, dst target.Reg, src target.Reg, kill bool) {
    w24 := dst == target.SPL
    via := src

    /* only HL, IX, IY and DE (through EX DE,HL) can be loaded into SP */
    switch src {
        case target.HL, target.IX, target.IY, target.UHL, target.UIX, target.UIY : break
        case target.DE                                                           : via = target.HL
        case target.UDE                                                          : via = target.UHL
        default                                                                  : target.Violatef(_OP_copy, "no legal copy %s <- %s", dst, src)
    }

    /* DE is moved into HL for the duration of the load */
    if via == src {
        seq.Add(pick(w24, mir.OP_LD16SP, mir.OP_LD24SP)).Reg(src, mir.KillState(kill))
    } else {
        seq.Add(pick(w24, mir.OP_EX16DE, mir.OP_EX24DE))
        seq.Add(pick(w24, mir.OP_LD16SP, mir.OP_LD24SP)).Use(via)
        seq.Add(pick(w24, mir.OP_EX16DE, mir.OP_EX24DE))
    }
}

func (self *InstrInfo) copyFromSP(seq *mir.Sequence, dst target.Reg, src target.Reg) {
    w24 := src == target.SPL
    via := dst

    /* only HL, IX, IY and DE (through EX DE,HL) can add SP */
    switch dst {
        case target.HL, target.IX, target.IY, target.UHL, target.UIX, target.UIY : break
        case target.DE                                                           : via = target.HL
        case target.UDE                                                          : via = target.UHL
        default                                                                  : target.Violatef(_OP_copy, "no legal copy %s <- %s", dst, src)
    }

    /* LD r,0; ADD r,SP */
    if via != dst { seq.Add(pick(w24, mir.OP_EX16DE, mir.OP_EX24DE)) }
    seq.Add(pick(w24, mir.OP_LD16ri, mir.OP_LD24ri)).Def(via).Imm(0)
    seq.Add(pick(w24, mir.OP_ADD16SP, mir.OP_ADD24SP)).Def(via).Reg(via, mir.R_kill)
    if via != dst { seq.Add(pick(w24, mir.OP_EX16DE, mir.OP_EX24DE)) }
}

func (self *InstrInfo) copyPieces(seq *mir.Sequence, dst target.Reg, src target.Reg, kill bool) CopyCase {
    var lo target.SubRegIdx
    var hi target.SubRegIdx

    /* a 16-bit copy moves the two bytes, a 32-bit copy moves the low 24 bits and the top byte */
    if target.R32.Contains(dst, src) {
        lo, hi = target.SubLong, target.SubTop
    } else if target.R16.Contains(dst, src) {
        lo, hi = target.SubLow, target.SubHigh
    } else {
        target.Violatef(_OP_copy, "no legal copy %s <- %s", dst, src)
    }

    /* split both registers */
    ret := CopyPiecewise
    dlo, dhi := target.SubReg(dst, lo), target.SubReg(dst, hi)
    slo, shi := target.SubReg(src, lo), target.SubReg(src, hi)

    /* check for aliasing between the pieces */
    dloShi := target.Overlaps(dlo, shi)
    sloDhi := target.Overlaps(slo, dhi)

    /* order the pieces so that no source piece is read after being overwritten */
    switch {
        case dloShi && sloDhi: {
            if !kill {
                target.Violatef(_OP_copy, "pieces of %s and %s alias each other but the source is live", dst, src)
            }

            /* swap the low pieces in place, e.g. EUHL = LUDE */
            ret = CopyPiecewiseSwap
            self.swap(seq, dlo, slo)

            /* the source top was carried into the source low by the swap, e.g. EUHL = HUDE */
            didx := target.SubRegIndex(slo, dhi)
            sidx := target.SubRegIndex(dlo, shi)

            /* move it into place */
            if didx != sidx {
                self.copyPhysReg(seq, dhi, target.SubReg(slo, sidx), kill)
            }
        }

        /* copy the source top out before the low piece overwrites it */
        case dloShi: {
            self.copyPhysReg(seq, dhi, shi, kill)
            self.copyPhysReg(seq, dlo, slo, kill)
        }

        /* low first, this also covers the source low being overwritten by the top */
        default: {
            self.copyPhysReg(seq, dlo, slo, kill)
            self.copyPhysReg(seq, dhi, shi, kill)
        }
    }

    /* the last instruction completes the full register */
    if n := seq.Len(); n != 0 {
        seq.Ins[n - 1].AddRegisterDefined(dst)
        if kill { seq.Ins[n - 1].AddRegisterKilled(src, true) }
    }

    /* all done */
    return ret
}

// swap exchanges the contents of two registers of the same width.
func (self *InstrInfo) swap(seq *mir.Sequence, a target.Reg, b target.Reg) {
    var other target.Reg
    w24 := a.Width() == 3

    /* EX DE,HL */
    if canExchange(a, b) {
        seq.Add(pick(w24, mir.OP_EX16DE, mir.OP_EX24DE))
        return
    }

    /* PUSH other; EX (SP),HL; POP other */
    if target.IsSubRegisterEq(target.UHL, b) {
        other = a
    } else if target.IsSubRegisterEq(target.UHL, a) {
        other = b
    }

    /* none is HL, rotate through the stack */
    if other == target.NoReg {
        seq.Add(pick(w24, mir.OP_PUSH16r, mir.OP_PUSH24r)).Reg(b, mir.R_kill)
        seq.Add(pick(w24, mir.OP_PUSH16r, mir.OP_PUSH24r)).Reg(a, mir.R_kill)
        seq.Add(pick(w24, mir.OP_POP16r, mir.OP_POP24r)).Def(b)
        seq.Add(pick(w24, mir.OP_POP16r, mir.OP_POP24r)).Def(a)
    } else {
        seq.Add(pick(w24, mir.OP_PUSH16r, mir.OP_PUSH24r)).Reg(other, mir.R_kill)
        seq.Add(pick(w24, mir.OP_EX16SP, mir.OP_EX24SP))
        seq.Add(pick(w24, mir.OP_POP16r, mir.OP_POP24r)).Def(other)
    }
}

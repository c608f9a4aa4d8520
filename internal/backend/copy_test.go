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
    `testing`

    `github.com/cloudwego/ez80/internal/mir`
    `github.com/cloudwego/ez80/internal/opts`
    `github.com/cloudwego/ez80/internal/target`
    `github.com/stretchr/testify/require`
)

type _Recorder struct {
    copies   []*CopyEvent
    branches []*BranchEvent
}

func (self *_Recorder) TraceCopy(ev *CopyEvent)     { self.copies = append(self.copies, ev) }
func (self *_Recorder) TraceBranch(ev *BranchEvent) { self.branches = append(self.branches, ev) }

func ez80() *InstrInfo { return New(Config { Subtarget: opts.EZ80() }) }
func z80()  *InstrInfo { return New(Config { Subtarget: opts.Z80() }) }

// asm renders instructions with their explicit operands only.
func asm(ins []*mir.Instr) []string {
    ret := make([]string, 0, len(ins))
    for _, p := range ins {
        q := mir.Instr { Op: p.Op }
        for _, v := range p.Ops {
            if !v.IsImplicit() {
                q.Ops = append(q.Ops, v)
            }
        }
        ret = append(ret, q.String())
    }
    return ret
}

func lower(ii *InstrInfo, dst target.Reg, src target.Reg, kill bool) *mir.Sequence {
    seq := mir.NewSequence(nil)
    ii.CopyPhysReg(seq, dst, src, kill)
    return seq
}

func requireViolation(t *testing.T, fn func()) {
    t.Helper()
    defer func() {
        v := recover()
        require.NotNil(t, v, "expected a contract violation")
        _, ok := v.(*target.ContractError)
        require.True(t, ok, "unexpected panic value: %v", v)
    }()
    fn()
}

func TestCopy_Identity(t *testing.T) {
    require.Empty(t, lower(ez80(), target.UHL, target.UHL, true).Ins)
    require.Empty(t, lower(ez80(), target.L, target.UHL, false).Ins)
}

func TestCopy_Byte(t *testing.T) {
    require.Equal(t, []string { "$e = LD8rr killed $c" }, asm(lower(ez80(), target.E, target.C, true).Ins))
    require.Equal(t, []string { "$ixh = LD8xx $ixl" }, asm(lower(z80(), target.IXH, target.IXL, false).Ins))
    require.Equal(t, []string { "$iyl = LD8yy $a" }, asm(lower(z80(), target.IYL, target.A, false).Ins))
    require.Equal(t, []string { "$b = LD8xx $ixh" }, asm(lower(z80(), target.B, target.IXH, false).Ins))
}

func TestCopy_IndexHalvesThroughA(t *testing.T) {
    require.Equal(t, []string {
        "PUSH16r $af",
        "$a = LD8yy $iyh",
        "$ixl = LD8xx killed $a",
        "$af = POP16r",
    }, asm(lower(z80(), target.IXL, target.IYH, false).Ins))
    require.Equal(t, []string {
        "PUSH24r $af",
        "$a = LD8xx killed $ixh",
        "$iyh = LD8yy killed $a",
        "$af = POP24r",
    }, asm(lower(ez80(), target.IYH, target.IXH, true).Ins))
}

func TestCopy_MixedByteUsesDE(t *testing.T) {
    require.Equal(t, []string {
        "EX16DE",
        "$ixl = LD8xx $e",
        "EX16DE",
    }, asm(lower(z80(), target.IXL, target.L, false).Ins))
    require.Equal(t, []string {
        "EX24DE",
        "$d = LD8yy $iyl",
        "EX24DE",
    }, asm(lower(ez80(), target.H, target.IYL, false).Ins))
}

func TestCopy_Exchange(t *testing.T) {
    seq := lower(z80(), target.HL, target.DE, true)
    require.Len(t, seq.Ins, 1)
    require.Equal(t, "EX16DE implicit-def dead $de, implicit-def $hl, implicit killed $de, implicit undef $hl", seq.Ins[0].String())
    require.Equal(t, []string { "EX24DE" }, asm(lower(ez80(), target.UDE, target.UHL, true).Ins))

    /* 16-bit exchange in 24-bit mode would clobber the upper bytes */
    require.Equal(t, []string {
        "$l = LD8rr killed $e",
        "$h = LD8rr killed $d",
    }, asm(lower(ez80(), target.HL, target.DE, true).Ins))

    /* a live source is not exchanged */
    require.Equal(t, []string {
        "PUSH24r $uhl",
        "$ude = POP24r",
    }, asm(lower(ez80(), target.UDE, target.UHL, false).Ins))
}

func TestCopy_StackPointer(t *testing.T) {
    require.Equal(t, []string { "LD16SP $hl" }, asm(lower(z80(), target.SPS, target.HL, false).Ins))
    require.Equal(t, []string { "LD24SP killed $uix" }, asm(lower(ez80(), target.SPL, target.UIX, true).Ins))
    require.Equal(t, []string {
        "EX24DE",
        "LD24SP $uhl",
        "EX24DE",
    }, asm(lower(ez80(), target.SPL, target.UDE, false).Ins))
    require.Equal(t, []string {
        "$uix = LD24ri 0",
        "$uix = ADD24SP killed $uix",
    }, asm(lower(ez80(), target.UIX, target.SPL, false).Ins))
    require.Equal(t, []string {
        "EX16DE",
        "$hl = LD16ri 0",
        "$hl = ADD16SP killed $hl",
        "EX16DE",
    }, asm(lower(z80(), target.DE, target.SPS, false).Ins))
}

func TestCopy_Lea(t *testing.T) {
    require.Equal(t, []string { "$bc = LEA16ro $ix, 0" }, asm(lower(ez80(), target.BC, target.IX, false).Ins))
    require.Equal(t, []string { "$uhl = LEA24ro killed $uiy, 0" }, asm(lower(ez80(), target.UHL, target.UIY, true).Ins))
}

func TestCopy_PushPop(t *testing.T) {
    small := opts.Z80()
    small.OptimizeSize = true
    require.Equal(t, []string {
        "PUSH16r $ix",
        "$bc = POP16r",
    }, asm(lower(New(Config { Subtarget: small }), target.BC, target.IX, false).Ins))
    require.Equal(t, []string {
        "PUSH16r killed $iy",
        "$ix = POP16r",
    }, asm(lower(New(Config { Subtarget: opts.Subtarget{} }), target.IX, target.IY, true).Ins))
    require.Equal(t, []string {
        "PUSH24r $ubc",
        "$uix = POP24r",
    }, asm(lower(ez80(), target.UIX, target.UBC, false).Ins))
}

func TestCopy_PushPopFollowsFunctionOptSize(t *testing.T) {
    fn := mir.NewFunc("small")
    fn.OptSize = true
    bb := fn.NewBlock()
    require.Equal(t, 2, z80().InsertCopy(bb, 0, target.DE, target.IY, false))
    require.Equal(t, []string { "PUSH16r $iy", "$de = POP16r" }, asm(bb.Ins))
}

func TestCopy_PiecewiseIndex(t *testing.T) {
    seq := lower(z80(), target.IX, target.HL, false)
    require.Equal(t, []string {
        "EX16DE",
        "$ixl = LD8xx $e",
        "$ixh = LD8xx $d",
        "EX16DE",
    }, asm(seq.Ins))
    require.NotNil(t, seq.Ins[3].FindRegDef(target.IX))
}

func TestCopy_PiecewiseOverlapOrder(t *testing.T) {
    seq := lower(ez80(), target.EUBC, target.CUHL, false)
    require.Equal(t, []string {
        "$e = LD8rr $c",
        "PUSH24r $uhl",
        "$ubc = POP24r",
    }, asm(seq.Ins))
    require.NotNil(t, seq.Ins[2].FindRegDef(target.EUBC))

    /* no piece reads a register that an earlier piece wrote */
    written := []target.Reg{}
    for _, p := range seq.Ins {
        for _, op := range p.Ops {
            if op.IsUse() && !op.IsImplicit() {
                for _, w := range written {
                    require.False(t, target.Overlaps(w, op.Reg), "%s reads clobbered %s", p, w)
                }
            }
        }
        for _, op := range p.Ops {
            if op.IsDef() && !op.IsImplicit() {
                written = append(written, op.Reg)
            }
        }
    }
}

func TestCopy_PiecewiseSwap(t *testing.T) {
    seq := lower(ez80(), target.EUHL, target.LUDE, true)
    require.Equal(t, []string { "EX24DE" }, asm(seq.Ins))
    require.NotNil(t, seq.Ins[0].FindRegDef(target.EUHL))
    require.True(t, seq.Ins[0].FindRegUse(target.LUDE).IsKill())

    /* the source top ends up in the wrong byte and is moved */
    require.Equal(t, []string {
        "EX24DE",
        "$e = LD8rr killed $d",
    }, asm(lower(ez80(), target.EUHL, target.HUDE, true).Ins))

    /* one side is HL */
    require.Equal(t, []string {
        "PUSH24r killed $ubc",
        "EX24SP",
        "$ubc = POP24r",
    }, asm(lower(ez80(), target.CUHL, target.LUBC, true).Ins))

    /* neither side is HL */
    require.Equal(t, []string {
        "PUSH24r killed $ude",
        "PUSH24r killed $ubc",
        "$ude = POP24r",
        "$ubc = POP24r",
    }, asm(lower(ez80(), target.EUBC, target.CUDE, true).Ins))
}

func TestCopy_MixedWidths(t *testing.T) {
    require.Equal(t, []string { "$a = LD8rr $l" }, asm(lower(ez80(), target.A, target.UHL, false).Ins))
    require.Equal(t, []string { "$l = LD8rr $a" }, asm(lower(ez80(), target.HL, target.A, false).Ins))
    require.Equal(t, []string {
        "PUSH24r $ude",
        "$uhl = POP24r",
    }, asm(lower(ez80(), target.EUHL, target.UDE, false).Ins))
}

func TestCopy_Violations(t *testing.T) {
    for _, c := range []struct { dst, src target.Reg; kill bool } {
        { target.BC   , target.UHL  , false },
        { target.AF   , target.BC   , true  },
        { target.BC   , target.AF   , true  },
        { target.F    , target.A    , false },
        { target.A    , target.F    , false },
        { target.SPS  , target.BC   , false },
        { target.SPL  , target.UBC  , false },
        { target.BC   , target.SPS  , false },
        { target.SPS  , target.SPL  , false },
        { target.A    , target.SPS  , false },
        { target.EUHL , target.LUDE , false },
        { target.NoReg, target.A    , false },
    } {
        requireViolation(t, func() { lower(ez80(), c.dst, c.src, c.kill) })
    }

    /* index halves are not usable on this one */
    bare := New(Config { Subtarget: opts.Subtarget{} })
    requireViolation(t, func() { lower(bare, target.A, target.IXL, false) })
}

func TestCopy_LegalityClosure(t *testing.T) {
    for _, ii := range []*InstrInfo { ez80(), z80() } {
        for _, rc := range []*target.RegClass { target.R8, target.R16, target.R24, target.R32 } {
            for _, dst := range rc.Regs() {
                for _, src := range rc.Regs() {
                    seq := lower(ii, dst, src, true)
                    if dst == src {
                        require.Empty(t, seq.Ins)
                    } else {
                        require.NotEmpty(t, seq.Ins, "%s <- %s", dst, src)
                    }
                }
            }
        }
    }
}

func TestCopy_ExchangeElision(t *testing.T) {
    rec := &_Recorder{}
    ii := New(Config { Subtarget: opts.Z80(), Tracer: rec })
    bb := mir.NewFunc("elide").NewBlock()
    pos := ii.InsertCopy(bb, 0, target.IXL, target.L, false)
    require.Equal(t, 3, pos)
    pos = ii.InsertCopy(bb, pos, target.IXH, target.H, false)
    require.Equal(t, 4, pos)
    require.Equal(t, []string {
        "EX16DE",
        "$ixl = LD8xx $e",
        "$ixh = LD8xx $d",
        "EX16DE",
    }, asm(bb.Ins))
    require.Len(t, rec.copies, 2)
    require.False(t, rec.copies[0].Elided)
    require.True(t, rec.copies[1].Elided)
    require.Equal(t, CopyMixedByte, rec.copies[1].Case)
}

func TestCopy_ExchangeElisionInSequence(t *testing.T) {
    rec := &_Recorder{}
    ii := New(Config { Subtarget: opts.Z80(), Tracer: rec })
    seq := mir.NewSequence(nil)
    ii.CopyPhysReg(seq, target.IXL, target.L, false)
    ii.CopyPhysReg(seq, target.IXH, target.H, false)
    require.Equal(t, []string {
        "EX16DE",
        "$ixl = LD8xx $e",
        "$ixh = LD8xx $d",
        "EX16DE",
    }, asm(seq.Ins))
    require.Len(t, rec.copies, 2)
    require.True(t, rec.copies[1].Elided)
    require.Equal(t, []string { "$ixh = LD8xx $d", "EX16DE" }, asm(rec.copies[1].Emitted))
}

func TestCopy_TracesTopLevelOnly(t *testing.T) {
    rec := &_Recorder{}
    ii := New(Config { Subtarget: opts.EZ80(), Tracer: rec })
    seq := lower(ii, target.EUHL, target.HUDE, true)
    require.Len(t, rec.copies, 1)
    require.Equal(t, CopyPiecewiseSwap, rec.copies[0].Case)
    require.Equal(t, target.EUHL, rec.copies[0].Dst)
    require.Equal(t, seq.Ins, rec.copies[0].Emitted)
}

func TestNew_RejectsInconsistentSubtarget(t *testing.T) {
    require.Panics(t, func() { New(Config { Subtarget: opts.Subtarget { Is24Bit: true } }) })
    require.Equal(t, opts.EZ80(), ez80().Subtarget())
}

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
    `fmt`

    `github.com/cloudwego/ez80/internal/mir`
    `github.com/cloudwego/ez80/internal/target`
)

const (
    _OP_branch = "branch"
)

type ExitKind uint8

const (
    FallThrough ExitKind = iota
    Unconditional
    Conditional
)

func (self ExitKind) String() string {
    switch self {
        case FallThrough   : return "fallthrough"
        case Unconditional : return "unconditional"
        case Conditional   : return "conditional"
        default            : return fmt.Sprintf("exit(%d)", uint8(self))
    }
}

// Terminators classifies how control leaves a block. False is nil when the
// block falls through to its layout successor if the condition does not hold.
type Terminators struct {
    Kind  ExitKind
    True  *mir.Block
    False *mir.Block
    Cond  target.CondCode
}

func (self Terminators) String() string {
    switch self.Kind {
        case FallThrough   : return "fallthrough"
        case Unconditional : return fmt.Sprintf("jmp %s", self.True)
        default            : break
    }

    /* conditional branch, with or without an explicit false target */
    if self.False == nil {
        return fmt.Sprintf("j%s %s", self.Cond, self.True)
    } else {
        return fmt.Sprintf("j%s %s; jmp %s", self.Cond, self.True, self.False)
    }
}

// Opposite returns the negation of a branch condition.
func Opposite(cc target.CondCode) target.CondCode {
    return cc.Opposite()
}

type _Edit struct {
    kind BranchEdit
    lo   int
    hi   int
    ins  []*mir.Instr
}

// AnalyzeBranch classifies the terminators of bb. It returns false when the
// terminators cannot be understood, in which case the caller must assume
// any successor. When allowModify is set, dead instructions after an
// unconditional branch and branches to the layout successor are deleted,
// and a conditional branch over an unconditional one is inverted.
func (self *InstrInfo) AnalyzeBranch(bb *mir.Block, allowModify bool) (Terminators, bool) {
    for {
        ret, ed, ok := scanBranch(bb, allowModify)
        if ed == nil {
            return ret, ok
        }

        /* apply the edit and scan again */
        bb.Replace(ed.lo, ed.hi, ed.ins...)
        self.tr.TraceBranch(&BranchEvent {
            Block    : bb,
            Edit     : ed.kind,
            Removed  : ed.hi - ed.lo,
            Inserted : ed.ins,
        })
    }
}

func scanBranch(bb *mir.Block, allowModify bool) (ret Terminators, ed *_Edit, ok bool) {
    var cc target.CondCode
    var tbb *mir.Block
    var fbb *mir.Block

    /* scan the terminators from the bottom up */
    cond := false
    uncond := -1

    /* stop at the first instruction that is not a terminator */
    for i := len(bb.Ins) - 1; i >= 0; i-- {
        p := bb.Ins[i]
        if p.IsDebug() {
            continue
        } else if !p.IsTerminator() {
            break
        }

        /* non-branch terminators and indirect branches cannot be analyzed */
        if !p.IsBranch() || p.IsIndirectBranch() {
            return
        }

        /* check for branch kind */
        switch p.Op {
            /* unconditional branch */
            case mir.OP_JQ: {
                if p.Target() == nil {
                    return
                }

                /* everything after an unconditional branch is dead */
                if allowModify && i != len(bb.Ins) - 1 {
                    ed = &_Edit { kind: EditDeleteDead, lo: i + 1, hi: len(bb.Ins) }
                    return
                }

                /* a jump to the layout successor is a fall-through */
                if allowModify && bb.IsLayoutSuccessor(p.Target()) {
                    ed = &_Edit { kind: EditDeleteFallthrough, lo: i, hi: i + 1 }
                    return
                }

                /* anything below is unreachable */
                uncond = i
                tbb, fbb, cond = p.Target(), nil, false
            }

            /* conditional branch */
            case mir.OP_JQCC: {
                if cond || p.Target() == nil || !p.Cond().Valid() {
                    return
                }

                /* jCC L1; jmp L2; L1: becomes jnCC L2; L1: */
                if allowModify && uncond >= 0 && bb.IsLayoutSuccessor(p.Target()) {
                    ed = invertBranch(bb, i, uncond)
                    return
                }

                /* the previous unconditional target becomes the false target */
                fbb = tbb
                tbb, cc, cond = p.Target(), p.Cond(), true
            }

            /* other kinds of branches */
            default: {
                return
            }
        }
    }

    /* classify the terminators */
    switch {
        case cond       : ret = Terminators { Kind: Conditional, True: tbb, False: fbb, Cond: cc }
        case tbb != nil : ret = Terminators { Kind: Unconditional, True: tbb }
        default         : ret = Terminators { Kind: FallThrough }
    }

    /* analysis succeeded */
    ok = true
    return
}

func invertBranch(bb *mir.Block, i int, uncond int) *_Edit {
    var ins []*mir.Instr
    jcc, jmp := bb.Ins[i], bb.Ins[uncond]

    /* keep the debug instructions between the two branches */
    for _, p := range bb.Ins[i + 1:uncond] {
        if p.IsDebug() {
            ins = append(ins, p)
        }
    }

    /* jnCC L2; jmp L1, the jmp is removed on the next scan */
    ins = append(ins,
        mir.NewInstr(mir.OP_JQCC).MBB(jmp.Target()).Imm(int64(jcc.Cond().Opposite())),
        mir.NewInstr(mir.OP_JQ).MBB(jcc.Target()),
    )

    /* replace both branches */
    return &_Edit {
        kind : EditInvert,
        lo   : i,
        hi   : uncond + 1,
        ins  : ins,
    }
}

// RemoveBranch deletes the trailing branch instructions of bb and returns
// how many were removed. Positions at or after the first removed branch
// are invalidated.
func (self *InstrInfo) RemoveBranch(bb *mir.Block) int {
    n := 0
    for i := len(bb.Ins) - 1; i >= 0; i-- {
        p := bb.Ins[i]
        if p.IsDebug() {
            continue
        }

        /* only direct, conditional and indirect jumps are removed */
        if p.Op != mir.OP_JQ && p.Op != mir.OP_JQCC && p.Op != mir.OP_JPr {
            break
        }

        /* remove the branch */
        n++
        bb.Erase(i, i + 1)
    }

    /* report the removal */
    if n != 0 {
        self.tr.TraceBranch(&BranchEvent {
            Block   : bb,
            Edit    : EditRemove,
            Removed : n,
        })
    }
    return n
}

// InsertBranch appends branches to the end of bb and returns how many were
// inserted. With no condition it jumps to tbb. With a condition it jumps to
// tbb when the condition holds, and then to fbb, or falls through when fbb
// is nil.
func (self *InstrInfo) InsertBranch(bb *mir.Block, tbb *mir.Block, fbb *mir.Block, cond ...target.CondCode) int {
    var ins []*mir.Instr
    if tbb == nil {
        target.Violatef(_OP_branch, "cannot insert a fall-through into %s", bb)
    }

    /* the condition has at most one component */
    switch len(cond) {
        case 0: {
            if fbb != nil {
                target.Violatef(_OP_branch, "unconditional branch of %s with two successors %s and %s", bb, tbb, fbb)
            }
            ins = append(ins, mir.NewInstr(mir.OP_JQ).MBB(tbb))
        }
        case 1: {
            if !cond[0].Valid() {
                target.Violatef(_OP_branch, "invalid condition %s for %s", cond[0], bb)
            }
            ins = append(ins, mir.NewInstr(mir.OP_JQCC).MBB(tbb).Imm(int64(cond[0])))
            if fbb != nil { ins = append(ins, mir.NewInstr(mir.OP_JQ).MBB(fbb)) }
        }
        default: {
            target.Violatef(_OP_branch, "branch conditions of %s have one component, got %d", bb, len(cond))
        }
    }

    /* append the branches */
    bb.Append(ins...)
    self.tr.TraceBranch(&BranchEvent {
        Block    : bb,
        Edit     : EditInsert,
        Inserted : ins,
    })
    return len(ins)
}

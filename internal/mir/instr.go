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

import (
    `strings`

    `github.com/cloudwego/ez80/internal/target`
)

// Instr is a machine instruction: an opcode and its operand list. Explicit
// operands come first, in the order they were added, followed by the
// implicit register operands.
type Instr struct {
    Op  OpCode
    Ops []Operand
}

// NewInstr creates an instruction carrying the implicit operands of its
// descriptor: implicit definitions first, then implicit uses.
func NewInstr(op OpCode) *Instr {
    ds := op.Desc()
    p := &Instr { Op: op }

    /* add implicit operands */
    for _, r := range ds.Defs { p.Ops = append(p.Ops, Operand { Kind: K_reg, Reg: r, Flags: R_def | R_implicit }) }
    for _, r := range ds.Uses { p.Ops = append(p.Ops, Operand { Kind: K_reg, Reg: r, Flags: R_implicit }) }
    return p
}

func (self *Instr) add(op Operand) *Instr {
    if op.IsImplicit() {
        self.Ops = append(self.Ops, op)
        return self
    }

    /* explicit operands go before the first implicit one */
    i := len(self.Ops)
    for i > 0 && self.Ops[i - 1].IsImplicit() {
        i--
    }

    /* insert the operand */
    self.Ops = append(self.Ops, Operand{})
    copy(self.Ops[i + 1:], self.Ops[i:])
    self.Ops[i] = op
    return self
}

func (self *Instr) Reg(r target.Reg, flags RegFlags) *Instr { return self.add(Operand { Kind: K_reg, Reg: r, Flags: flags }) }
func (self *Instr) Def(r target.Reg)                 *Instr { return self.Reg(r, R_def) }
func (self *Instr) Use(r target.Reg)                 *Instr { return self.Reg(r, 0) }
func (self *Instr) Imm(v int64)                      *Instr { return self.add(Operand { Kind: K_imm, Imm: v }) }
func (self *Instr) MBB(bb *Block)                    *Instr { return self.add(Operand { Kind: K_block, Block: bb }) }
func (self *Instr) FI(fi int)                        *Instr { return self.add(Operand { Kind: K_frame, Imm: int64(fi) }) }
func (self *Instr) Sym(sym string)                   *Instr { return self.add(Operand { Kind: K_symbol, Sym: sym }) }

func (self *Instr) Desc()             *Desc { return self.Op.Desc() }
func (self *Instr) IsTerminator()     bool  { return self.Op.Is(F_term) }
func (self *Instr) IsBranch()         bool  { return self.Op.Is(F_branch) }
func (self *Instr) IsBarrier()        bool  { return self.Op.Is(F_barrier) }
func (self *Instr) IsIndirectBranch() bool  { return self.Op.Is(F_indirect) }
func (self *Instr) IsReturn()         bool  { return self.Op.Is(F_return) }
func (self *Instr) IsDebug()          bool  { return self.Op.Is(F_debug) }
func (self *Instr) IsPredicable()     bool  { return self.Op.Is(F_predicable) }
func (self *Instr) IsFullCopy()       bool  { return self.Op.Is(F_copy) }

// Morph replaces the opcode and swaps the implicit operands for the ones
// of the new descriptor. Explicit operands are kept.
func (self *Instr) Morph(op OpCode) {
    ds := op.Desc()
    ops := self.Ops[:0]

    /* keep the explicit operands */
    for _, v := range self.Ops {
        if !v.IsImplicit() {
            ops = append(ops, v)
        }
    }

    /* add the new implicit operands */
    for _, r := range ds.Defs { ops = append(ops, Operand { Kind: K_reg, Reg: r, Flags: R_def | R_implicit }) }
    for _, r := range ds.Uses { ops = append(ops, Operand { Kind: K_reg, Reg: r, Flags: R_implicit }) }

    /* update the instruction */
    self.Op = op
    self.Ops = ops
}

func (self *Instr) NumOperands() int {
    return len(self.Ops)
}

func (self *Instr) Operand(i int) *Operand {
    return &self.Ops[i]
}

// FindRegUse returns the first use operand of exactly r, or nil.
func (self *Instr) FindRegUse(r target.Reg) *Operand {
    for i := range self.Ops {
        if p := &self.Ops[i]; p.IsUse() && p.Reg == r {
            return p
        }
    }
    return nil
}

// FindRegDef returns the first definition operand of exactly r, or nil.
func (self *Instr) FindRegDef(r target.Reg) *Operand {
    for i := range self.Ops {
        if p := &self.Ops[i]; p.IsDef() && p.Reg == r {
            return p
        }
    }
    return nil
}

// Target returns the first block operand, or nil when the instruction has none.
func (self *Instr) Target() *Block {
    for i := range self.Ops {
        if self.Ops[i].IsBlock() {
            return self.Ops[i].Block
        }
    }
    return nil
}

// Cond returns the condition code of a conditional branch.
func (self *Instr) Cond() target.CondCode {
    if self.Op != OP_JQCC {
        panic("Cond: not a conditional branch: " + self.String())
    } else {
        return target.CondCode(self.Ops[1].Imm)
    }
}

// RegisterDefIsDead reports whether the instruction defines r and the
// definition is marked dead.
func (self *Instr) RegisterDefIsDead(r target.Reg) bool {
    for i := range self.Ops {
        if p := &self.Ops[i]; p.IsDef() && p.Reg == r && p.IsDead() {
            return true
        }
    }
    return false
}

// AddRegisterDefined records that the instruction defines r unless some
// definition already covers it.
func (self *Instr) AddRegisterDefined(r target.Reg) {
    for i := range self.Ops {
        if p := &self.Ops[i]; p.IsDef() && target.IsSubRegisterEq(p.Reg, r) {
            return
        }
    }
    self.add(Operand { Kind: K_reg, Reg: r, Flags: R_def | R_implicit })
}

// AddRegisterKilled marks the last use of r on this instruction. Kill
// flags on sub-registers of r become redundant and are dropped. When no
// use of r is found and addIfNotFound is set, an implicit killed use is
// appended. It reports whether a kill of r is now recorded.
func (self *Instr) AddRegisterKilled(r target.Reg, addIfNotFound bool) bool {
    var found bool
    var ops []Operand

    /* scan all the register uses */
    for _, op := range self.Ops {
        if !op.IsUse() || op.IsUndef() {
            ops = append(ops, op)
            continue
        }

        /* the exact register, or a super-register that is already killed */
        if op.Reg == r {
            if !found {
                op.SetKill(true)
                found = true
            }
        } else if op.IsKill() && target.IsSubRegisterEq(op.Reg, r) {
            found = true
        } else if target.IsSubRegisterEq(r, op.Reg) && op.IsKill() {
            if op.IsImplicit() {
                continue
            }
            op.SetKill(false)
        }

        /* keep the operand */
        ops = append(ops, op)
    }

    /* update the operands */
    self.Ops = ops
    if found || !addIfNotFound {
        return found
    }

    /* add an implicit killed use */
    self.add(Operand { Kind: K_reg, Reg: r, Flags: R_implicit | R_kill })
    return true
}

func (self *Instr) String() string {
    var defs []string
    var args []string

    /* explicit definitions are printed on the left hand side */
    for i := range self.Ops {
        p := &self.Ops[i]
        switch {
            case p.IsDef() && !p.IsImplicit()   : defs = append(defs, p.String())
            case self.Op == OP_JQCC && i == 1   : args = append(args, target.CondCode(p.Imm).String())
            default                             : args = append(args, p.String())
        }
    }

    /* build the instruction text */
    buf := self.Op.String()
    if len(args) != 0 {
        buf += " " + strings.Join(args, ", ")
    }

    /* prepend the definitions */
    if len(defs) == 0 {
        return buf
    } else {
        return strings.Join(defs, ", ") + " = " + buf
    }
}

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
    `fmt`
    `strings`

    `github.com/cloudwego/ez80/internal/target`
)

type OperandKind uint8

const (
    K_reg OperandKind = iota
    K_imm
    K_block
    K_frame
    K_symbol
)

type RegFlags uint8

const (
    R_def RegFlags = 1 << iota
    R_implicit
    R_kill
    R_dead
    R_undef
)

// KillState returns R_kill if kill is set, mirroring a liveness hint onto
// a register use.
func KillState(kill bool) RegFlags {
    if kill {
        return R_kill
    } else {
        return 0
    }
}

type Operand struct {
    Kind  OperandKind
    Reg   target.Reg
    Flags RegFlags
    Imm   int64
    Block *Block
    Sym   string
}

func (self *Operand) IsReg()      bool { return self.Kind == K_reg }
func (self *Operand) IsImm()      bool { return self.Kind == K_imm }
func (self *Operand) IsBlock()    bool { return self.Kind == K_block }
func (self *Operand) IsFrame()    bool { return self.Kind == K_frame }
func (self *Operand) IsSymbol()   bool { return self.Kind == K_symbol }
func (self *Operand) IsDef()      bool { return self.IsReg() && self.Flags & R_def != 0 }
func (self *Operand) IsUse()      bool { return self.IsReg() && self.Flags & R_def == 0 }
func (self *Operand) IsImplicit() bool { return self.IsReg() && self.Flags & R_implicit != 0 }
func (self *Operand) IsKill()     bool { return self.Flags & R_kill != 0 }
func (self *Operand) IsDead()     bool { return self.Flags & R_dead != 0 }
func (self *Operand) IsUndef()    bool { return self.Flags & R_undef != 0 }

func (self *Operand) set(f RegFlags, v bool) {
    if v {
        self.Flags |= f
    } else {
        self.Flags &^= f
    }
}

func (self *Operand) SetKill(v bool)  { self.set(R_kill, v) }
func (self *Operand) SetDead(v bool)  { self.set(R_dead, v) }
func (self *Operand) SetUndef(v bool) { self.set(R_undef, v) }

// ChangeToRegister turns the operand into an explicit register operand.
func (self *Operand) ChangeToRegister(r target.Reg, def bool) {
    *self = Operand { Kind: K_reg, Reg: r }
    self.set(R_def, def)
}

// ChangeToSymbol turns the operand into an external symbol reference.
func (self *Operand) ChangeToSymbol(sym string) {
    *self = Operand { Kind: K_symbol, Sym: sym }
}

func (self *Operand) String() string {
    switch self.Kind {
        case K_imm    : return fmt.Sprintf("%d", self.Imm)
        case K_block  : return self.Block.String()
        case K_frame  : return fmt.Sprintf("%%stack.%d", self.Imm)
        case K_symbol : return "&" + self.Sym
        case K_reg    : break
        default       : panic("unreachable")
    }

    /* register flags */
    var buf []string
    if self.IsImplicit() {
        if self.IsDef() {
            buf = append(buf, "implicit-def")
        } else {
            buf = append(buf, "implicit")
        }
    }

    /* liveness flags */
    if self.IsDead()  { buf = append(buf, "dead") }
    if self.IsKill()  { buf = append(buf, "killed") }
    if self.IsUndef() { buf = append(buf, "undef") }

    /* the register itself */
    buf = append(buf, "$" + self.Reg.String())
    return strings.Join(buf, " ")
}

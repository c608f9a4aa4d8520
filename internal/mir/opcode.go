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

    `github.com/cloudwego/ez80/internal/target`
)

type OpCode uint16

const (
    OP_invalid OpCode = iota
    OP_DBG_VALUE            // debug location marker, never a real instruction
    OP_COPY                 // generic full register copy, before lowering
    OP_NOP
    OP_LD8rr                // r8 <- r8 (no index halves)
    OP_LD8xx                // r8 <- r8 under the IX prefix
    OP_LD8yy                // r8 <- r8 under the IY prefix
    OP_LD8ri                // r8 <- imm
    OP_LD16ri               // r16 <- imm
    OP_LD24ri               // r24 <- imm
    OP_PUSH16r
    OP_PUSH24r
    OP_POP16r
    OP_POP24r
    OP_EX16DE               // DE <-> HL
    OP_EX24DE               // UDE <-> UHL
    OP_EX16SP               // (SPS) <-> HL
    OP_EX24SP               // (SPL) <-> UHL
    OP_LEA16ro              // r16 <- index + off
    OP_LEA24ro              // r24 <- index + off
    OP_LD16SP               // SPS <- r16
    OP_LD24SP               // SPL <- r24
    OP_ADD16SP              // r16 <- r16 + SPS
    OP_ADD24SP              // r24 <- r24 + SPL
    OP_LD8ro                // r8 <- (fi + off)
    OP_LD16ro
    OP_LD88ro               // pseudo, split into two LD8ro
    OP_LD24ro
    OP_LD8or                // (fi + off) <- r8
    OP_LD16or
    OP_LD88or               // pseudo, split into two LD8or
    OP_LD24or
    OP_LD88rp               // pseudo, not expandable
    OP_LD88pr               // pseudo, not expandable
    OP_OR8ar                // A <- A | r8
    OP_CP8ai                // flags <- A - imm
    OP_CP8ar                // flags <- A - r8
    OP_CP8am                // flags <- A - (HL)
    OP_CP8ao                // flags <- A - (index + off)
    OP_SUB8ai               // A <- A - imm
    OP_SUB8ar               // A <- A - r8
    OP_SUB8am               // A <- A - (HL)
    OP_SUB8ao               // A <- A - (index + off)
    OP_RCF                  // pseudo, reset carry flag
    OP_Cp16                 // pseudo, not expandable
    OP_Cp24                 // pseudo, not expandable
    OP_Cp016                // pseudo, not expandable
    OP_Cp024                // pseudo, not expandable
    OP_CALL16i
    OP_CALL24i
    OP_CALL16r              // pseudo, indirect call through a runtime helper
    OP_CALL24r              // pseudo, indirect call through a runtime helper
    OP_TCRETURN16i          // pseudo, tail call
    OP_TCRETURN24i          // pseudo, tail call
    OP_TCRETURN16r          // pseudo, indirect tail call
    OP_TCRETURN24r          // pseudo, indirect tail call
    OP_JQ                   // jump to block
    OP_JQCC                 // jump to block if cc
    OP_JPr                  // jump to (r16)
    OP_RET
    NumOpCodes
)

type DescFlags uint16

const (
    F_term DescFlags = 1 << iota
    F_branch
    F_barrier
    F_indirect
    F_return
    F_call
    F_debug
    F_copy
    F_predicable
    F_pseudo
)

// Desc is the static description of an opcode.
type Desc struct {
    Name  string
    Flags DescFlags
    Defs  []target.Reg     // implicit definitions
    Uses  []target.Reg     // implicit uses
}

func regs(r ...target.Reg) []target.Reg {
    return r
}

var _OpDesc = [NumOpCodes]Desc {
    OP_invalid     : { Name: "<invalid>" },
    OP_DBG_VALUE   : { Name: "DBG_VALUE", Flags: F_debug },
    OP_COPY        : { Name: "COPY", Flags: F_copy },
    OP_NOP         : { Name: "NOP" },
    OP_LD8rr       : { Name: "LD8rr" },
    OP_LD8xx       : { Name: "LD8xx" },
    OP_LD8yy       : { Name: "LD8yy" },
    OP_LD8ri       : { Name: "LD8ri" },
    OP_LD16ri      : { Name: "LD16ri" },
    OP_LD24ri      : { Name: "LD24ri" },
    OP_PUSH16r     : { Name: "PUSH16r", Defs: regs(target.SPS), Uses: regs(target.SPS) },
    OP_PUSH24r     : { Name: "PUSH24r", Defs: regs(target.SPL), Uses: regs(target.SPL) },
    OP_POP16r      : { Name: "POP16r", Defs: regs(target.SPS), Uses: regs(target.SPS) },
    OP_POP24r      : { Name: "POP24r", Defs: regs(target.SPL), Uses: regs(target.SPL) },
    OP_EX16DE      : { Name: "EX16DE", Defs: regs(target.DE, target.HL), Uses: regs(target.DE, target.HL) },
    OP_EX24DE      : { Name: "EX24DE", Defs: regs(target.UDE, target.UHL), Uses: regs(target.UDE, target.UHL) },
    OP_EX16SP      : { Name: "EX16SP", Defs: regs(target.HL), Uses: regs(target.HL, target.SPS) },
    OP_EX24SP      : { Name: "EX24SP", Defs: regs(target.UHL), Uses: regs(target.UHL, target.SPL) },
    OP_LEA16ro     : { Name: "LEA16ro" },
    OP_LEA24ro     : { Name: "LEA24ro" },
    OP_LD16SP      : { Name: "LD16SP", Defs: regs(target.SPS) },
    OP_LD24SP      : { Name: "LD24SP", Defs: regs(target.SPL) },
    OP_ADD16SP     : { Name: "ADD16SP", Defs: regs(target.F), Uses: regs(target.SPS) },
    OP_ADD24SP     : { Name: "ADD24SP", Defs: regs(target.F), Uses: regs(target.SPL) },
    OP_LD8ro       : { Name: "LD8ro" },
    OP_LD16ro      : { Name: "LD16ro" },
    OP_LD88ro      : { Name: "LD88ro", Flags: F_pseudo },
    OP_LD24ro      : { Name: "LD24ro" },
    OP_LD8or       : { Name: "LD8or" },
    OP_LD16or      : { Name: "LD16or" },
    OP_LD88or      : { Name: "LD88or", Flags: F_pseudo },
    OP_LD24or      : { Name: "LD24or" },
    OP_LD88rp      : { Name: "LD88rp", Flags: F_pseudo },
    OP_LD88pr      : { Name: "LD88pr", Flags: F_pseudo },
    OP_OR8ar       : { Name: "OR8ar", Defs: regs(target.A, target.F), Uses: regs(target.A) },
    OP_CP8ai       : { Name: "CP8ai", Defs: regs(target.F), Uses: regs(target.A) },
    OP_CP8ar       : { Name: "CP8ar", Defs: regs(target.F), Uses: regs(target.A) },
    OP_CP8am       : { Name: "CP8am", Defs: regs(target.F), Uses: regs(target.A) },
    OP_CP8ao       : { Name: "CP8ao", Defs: regs(target.F), Uses: regs(target.A) },
    OP_SUB8ai      : { Name: "SUB8ai", Defs: regs(target.A, target.F), Uses: regs(target.A) },
    OP_SUB8ar      : { Name: "SUB8ar", Defs: regs(target.A, target.F), Uses: regs(target.A) },
    OP_SUB8am      : { Name: "SUB8am", Defs: regs(target.A, target.F), Uses: regs(target.A) },
    OP_SUB8ao      : { Name: "SUB8ao", Defs: regs(target.A, target.F), Uses: regs(target.A) },
    OP_RCF         : { Name: "RCF", Flags: F_pseudo, Defs: regs(target.F) },
    OP_Cp16        : { Name: "Cp16", Flags: F_pseudo, Defs: regs(target.F) },
    OP_Cp24        : { Name: "Cp24", Flags: F_pseudo, Defs: regs(target.F) },
    OP_Cp016       : { Name: "Cp016", Flags: F_pseudo, Defs: regs(target.F) },
    OP_Cp024       : { Name: "Cp024", Flags: F_pseudo, Defs: regs(target.F) },
    OP_CALL16i     : { Name: "CALL16i", Flags: F_call, Uses: regs(target.SPS) },
    OP_CALL24i     : { Name: "CALL24i", Flags: F_call, Uses: regs(target.SPL) },
    OP_CALL16r     : { Name: "CALL16r", Flags: F_call | F_pseudo, Uses: regs(target.SPS) },
    OP_CALL24r     : { Name: "CALL24r", Flags: F_call | F_pseudo, Uses: regs(target.SPL) },
    OP_TCRETURN16i : { Name: "TCRETURN16i", Flags: F_term | F_return | F_barrier | F_call | F_pseudo },
    OP_TCRETURN24i : { Name: "TCRETURN24i", Flags: F_term | F_return | F_barrier | F_call | F_pseudo },
    OP_TCRETURN16r : { Name: "TCRETURN16r", Flags: F_term | F_return | F_barrier | F_call | F_pseudo },
    OP_TCRETURN24r : { Name: "TCRETURN24r", Flags: F_term | F_return | F_barrier | F_call | F_pseudo },
    OP_JQ          : { Name: "JQ", Flags: F_term | F_branch | F_barrier },
    OP_JQCC        : { Name: "JQCC", Flags: F_term | F_branch, Uses: regs(target.F) },
    OP_JPr         : { Name: "JPr", Flags: F_term | F_branch | F_barrier | F_indirect },
    OP_RET         : { Name: "RET", Flags: F_term | F_return | F_barrier },
}

func (self OpCode) Desc() *Desc {
    if self < NumOpCodes {
        return &_OpDesc[self]
    } else {
        panic(fmt.Sprintf("invalid opcode: %d", self))
    }
}

func (self OpCode) String() string {
    if self < NumOpCodes {
        return _OpDesc[self].Name
    } else {
        return fmt.Sprintf("op(%d)", uint16(self))
    }
}

func (self OpCode) Is(flags DescFlags) bool {
    return self.Desc().Flags & flags != 0
}

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

package target

import (
    `fmt`
)

// Reg is a physical register, an index into the static register arena.
type Reg uint8

const (
    NoReg Reg = iota

    /* 8-bit registers */
    A
    F
    B
    C
    D
    E
    H
    L
    IXH
    IXL
    IYH
    IYL

    /* 16-bit registers */
    AF
    BC
    DE
    HL
    IX
    IY
    SPS

    /* 24-bit registers */
    UBC
    UDE
    UHL
    UIX
    UIY
    SPL

    /* 32-bit composites, named top byte first */
    EUHL
    LUDE
    HUDE
    AUBC
    CUHL
    LUBC
    EUBC
    CUDE

    NumRegs
)

type Role uint8

const (
    RoleGeneral Role = iota
    RoleIndex
    RoleAccumulator
    RoleFlags
    RoleStackPointer
    RoleComposite
)

func (self Role) String() string {
    switch self {
        case RoleGeneral      : return "general"
        case RoleIndex        : return "index"
        case RoleAccumulator  : return "accumulator"
        case RoleFlags        : return "flags"
        case RoleStackPointer : return "stack-pointer"
        case RoleComposite    : return "composite"
        default               : return fmt.Sprintf("role(%d)", uint8(self))
    }
}

// SubRegIdx names a position inside a wider register.
type SubRegIdx uint8

const (
    NoSubReg SubRegIdx = iota
    SubLow              // bits 0-7
    SubHigh             // bits 8-15
    SubShort            // bits 0-15 of a 24-bit register
    SubLong             // bits 0-23 of a 32-bit composite
    SubTop              // bits 24-31 of a 32-bit composite
    NumSubRegIdx
)

func (self SubRegIdx) String() string {
    switch self {
        case NoSubReg : return "none"
        case SubLow   : return "sub_low"
        case SubHigh  : return "sub_high"
        case SubShort : return "sub_short"
        case SubLong  : return "sub_long"
        case SubTop   : return "sub_top"
        default       : return fmt.Sprintf("sub(%d)", uint8(self))
    }
}

/* storage units: one bit per physical byte (the stack pointers count as one unit each) */
const (
    _U_a uint32 = 1 << iota
    _U_f
    _U_b
    _U_c
    _U_d
    _U_e
    _U_h
    _U_l
    _U_ixh
    _U_ixl
    _U_iyh
    _U_iyl
    _U_bcu
    _U_deu
    _U_hlu
    _U_ixu
    _U_iyu
    _U_sps
    _U_spl
)

type _RegDesc struct {
    name  string
    width uint8
    role  Role
    units uint32
    subs  [NumSubRegIdx]Reg
}

func leaf(name string, role Role, unit uint32) _RegDesc {
    return _RegDesc {
        name  : name,
        width : 1,
        role  : role,
        units : unit,
    }
}

func pair(name string, role Role, lo Reg, hi Reg) _RegDesc {
    return _RegDesc {
        name  : name,
        width : 2,
        role  : role,
        subs  : [NumSubRegIdx]Reg { SubLow: lo, SubHigh: hi },
    }
}

func upper(name string, role Role, short Reg, unit uint32) _RegDesc {
    return _RegDesc {
        name  : name,
        width : 3,
        role  : role,
        units : unit,
        subs  : [NumSubRegIdx]Reg { SubShort: short },
    }
}

func composite(name string, long Reg, top Reg) _RegDesc {
    return _RegDesc {
        name  : name,
        width : 4,
        role  : RoleComposite,
        subs  : [NumSubRegIdx]Reg { SubLong: long, SubTop: top },
    }
}

var _RegTab = [NumRegs]_RegDesc {
    NoReg : { name: "noreg" },

    A   : leaf("a"  , RoleAccumulator , _U_a),
    F   : leaf("f"  , RoleFlags       , _U_f),
    B   : leaf("b"  , RoleGeneral     , _U_b),
    C   : leaf("c"  , RoleGeneral     , _U_c),
    D   : leaf("d"  , RoleGeneral     , _U_d),
    E   : leaf("e"  , RoleGeneral     , _U_e),
    H   : leaf("h"  , RoleGeneral     , _U_h),
    L   : leaf("l"  , RoleGeneral     , _U_l),
    IXH : leaf("ixh", RoleIndex       , _U_ixh),
    IXL : leaf("ixl", RoleIndex       , _U_ixl),
    IYH : leaf("iyh", RoleIndex       , _U_iyh),
    IYL : leaf("iyl", RoleIndex       , _U_iyl),

    AF  : pair("af", RoleAccumulator , F, A),
    BC  : pair("bc", RoleGeneral     , C, B),
    DE  : pair("de", RoleGeneral     , E, D),
    HL  : pair("hl", RoleGeneral     , L, H),
    IX  : pair("ix", RoleIndex       , IXL, IXH),
    IY  : pair("iy", RoleIndex       , IYL, IYH),
    SPS : { name: "sps", width: 2, role: RoleStackPointer, units: _U_sps },

    UBC : upper("ubc", RoleGeneral , BC, _U_bcu),
    UDE : upper("ude", RoleGeneral , DE, _U_deu),
    UHL : upper("uhl", RoleGeneral , HL, _U_hlu),
    UIX : upper("uix", RoleIndex   , IX, _U_ixu),
    UIY : upper("uiy", RoleIndex   , IY, _U_iyu),
    SPL : { name: "spl", width: 3, role: RoleStackPointer, units: _U_spl },

    EUHL : composite("euhl", UHL, E),
    LUDE : composite("lude", UDE, L),
    HUDE : composite("hude", UDE, H),
    AUBC : composite("aubc", UBC, A),
    CUHL : composite("cuhl", UHL, C),
    LUBC : composite("lubc", UBC, L),
    EUBC : composite("eubc", UBC, E),
    CUDE : composite("cude", UDE, C),
}

// Valid reports whether the register is a real register of this target.
func (self Reg) Valid() bool {
    return self != NoReg && self < NumRegs
}

func (self Reg) String() string {
    if self < NumRegs {
        return _RegTab[self].name
    } else {
        return fmt.Sprintf("reg(%d)", uint8(self))
    }
}

// Width returns the width of the register in bytes, 0 for invalid registers.
func (self Reg) Width() int {
    if self.Valid() {
        return int(_RegTab[self].width)
    } else {
        return 0
    }
}

func (self Reg) Role() Role {
    if self.Valid() {
        return _RegTab[self].role
    } else {
        panic(fmt.Sprintf("Role: invalid register %s", self))
    }
}

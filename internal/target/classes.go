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
    `strings`
)

// RegClass is a named, closed set of registers.
type RegClass struct {
    Name string
    Size int
    regs _RegSet
}

func newClass(name string, size int, regs ...Reg) *RegClass {
    rc := &RegClass {
        Name: name,
        Size: size,
    }

    /* build the membership bitmap */
    for _, r := range regs {
        rc.regs |= 1 << r
    }

    /* register for reverse lookups */
    _Classes = append(_Classes, rc)
    return rc
}

var _Classes []*RegClass

var (
    R8   = newClass("R8"   , 1, A, B, C, D, E, H, L, IXH, IXL, IYH, IYL)
    G8   = newClass("G8"   , 1, A, B, C, D, E, H, L)
    I8   = newClass("I8"   , 1, IXH, IXL, IYH, IYL)
    X8   = newClass("X8"   , 1, A, B, C, D, E, IXH, IXL)     // addressable under the IX prefix
    Y8   = newClass("Y8"   , 1, A, B, C, D, E, IYH, IYL)     // addressable under the IY prefix
    F8   = newClass("F8"   , 1, F)
    R16  = newClass("R16"  , 2, BC, DE, HL, IX, IY)
    G16  = newClass("G16"  , 2, BC, DE, HL)
    I16  = newClass("I16"  , 2, IX, IY)
    A16  = newClass("A16"  , 2, HL, IX, IY)
    Z16  = newClass("Z16"  , 2, SPS)
    AF16 = newClass("AF16" , 2, AF)
    R24  = newClass("R24"  , 3, UBC, UDE, UHL, UIX, UIY)
    G24  = newClass("G24"  , 3, UBC, UDE, UHL)
    I24  = newClass("I24"  , 3, UIX, UIY)
    A24  = newClass("A24"  , 3, UHL, UIX, UIY)
    Z24  = newClass("Z24"  , 3, SPL)
    R32  = newClass("R32"  , 4, EUHL, LUDE, HUDE, AUBC, CUHL, LUBC, EUBC, CUDE)
)

// Contains reports whether every given register belongs to the class.
func (self *RegClass) Contains(regs ...Reg) bool {
    for _, r := range regs {
        if !r.Valid() || !self.regs.has(r) {
            return false
        }
    }
    return len(regs) != 0
}

// Regs lists the members in register order.
func (self *RegClass) Regs() (ret []Reg) {
    for r := Reg(1); r < NumRegs; r++ {
        if self.regs.has(r) {
            ret = append(ret, r)
        }
    }
    return
}

func (self *RegClass) String() string {
    regs := self.Regs()
    names := make([]string, 0, len(regs))

    /* dump every member */
    for _, r := range regs {
        names = append(names, r.String())
    }

    /* join them together */
    return self.Name + "{" + strings.Join(names, ", ") + "}"
}

// Classes lists every class the register is a member of.
func Classes(r Reg) (ret []*RegClass) {
    for _, rc := range _Classes {
        if rc.Contains(r) {
            ret = append(ret, rc)
        }
    }
    return
}

// AllClasses lists every register class of the target.
func AllClasses() []*RegClass {
    return append([]*RegClass(nil), _Classes...)
}

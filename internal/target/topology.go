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
    `github.com/oleiade/lane`
)

type _RegSet uint64

func (self _RegSet) has(r Reg) bool {
    return self & (1 << r) != 0
}

var (
    _SubTab  [NumRegs][NumSubRegIdx]Reg
    _Units   [NumRegs]uint32
    _Covers  [NumRegs]_RegSet
    _Overlap [NumRegs]_RegSet
    _Names   = make(map[string]Reg, NumRegs)
)

func init() {
    for r := Reg(1); r < NumRegs; r++ {
        _Names[_RegTab[r].name] = r
        closure(r)

        /* fill every sub-register index, including composed ones */
        for idx := SubLow; idx < NumSubRegIdx; idx++ {
            _SubTab[r][idx] = compose(r, idx)
        }
    }

    /* two registers overlap iff their storage units intersect */
    for a := Reg(1); a < NumRegs; a++ {
        for b := Reg(1); b < NumRegs; b++ {
            if _Units[a] & _Units[b] != 0 {
                _Overlap[a] |= 1 << b
            }
        }
    }
}

func closure(r Reg) {
    q := lane.NewQueue()
    m := _RegSet(0)

    /* traverse the sub-register graph with BFS */
    for q.Enqueue(r); !q.Empty(); {
        v := q.Dequeue()
        p := v.(Reg)

        /* merge the storage units */
        m |= 1 << p
        _Units[r] |= _RegTab[p].units

        /* add all direct sub-registers into queue */
        for _, s := range _RegTab[p].subs {
            if s != NoReg && !m.has(s) {
                q.Enqueue(s)
            }
        }
    }

    /* every register covers itself and all its transitive sub-registers */
    _Covers[r] = m
}

func compose(r Reg, idx SubRegIdx) Reg {
    if s := _RegTab[r].subs[idx]; s != NoReg {
        return s
    }

    /* look through the short and long views */
    for _, via := range [...]SubRegIdx { SubShort, SubLong } {
        if v := _RegTab[r].subs[via]; v != NoReg && via != idx {
            if s := compose(v, idx); s != NoReg {
                return s
            }
        }
    }

    /* no such sub-register */
    return NoReg
}

// SubReg returns the sub-register of r at position idx, or NoReg when the
// position is undefined for r.
func SubReg(r Reg, idx SubRegIdx) Reg {
    if !r.Valid() || idx >= NumSubRegIdx {
        return NoReg
    } else {
        return _SubTab[r][idx]
    }
}

// SubRegIndex returns the position of sub inside super, or NoSubReg.
func SubRegIndex(super Reg, sub Reg) SubRegIdx {
    if !super.Valid() || !sub.Valid() {
        return NoSubReg
    }

    /* the narrower positions are preferred */
    for idx := SubLow; idx < NumSubRegIdx; idx++ {
        if _SubTab[super][idx] == sub {
            return idx
        }
    }

    /* not a sub-register */
    return NoSubReg
}

// Overlaps reports whether the storage of a and b intersects, which
// includes a == b.
func Overlaps(a Reg, b Reg) bool {
    return a.Valid() && b.Valid() && _Overlap[a].has(b)
}

// IsSubRegisterEq reports whether sub is super itself or is contained in it.
func IsSubRegisterEq(super Reg, sub Reg) bool {
    return super.Valid() && sub.Valid() && _Covers[super].has(sub)
}

// SuperRegs lists every register strictly containing r.
func SuperRegs(r Reg) (ret []Reg) {
    for s := Reg(1); s < NumRegs; s++ {
        if s != r && IsSubRegisterEq(s, r) {
            ret = append(ret, s)
        }
    }
    return
}

// Lookup finds a register by its lower-case name.
func Lookup(name string) (Reg, bool) {
    r, ok := _Names[name]
    return r, ok
}

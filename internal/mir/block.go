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

    `github.com/oleiade/lane`
)

// Func is a machine function, the owner of its blocks. The order of Blocks
// is the layout order, which decides the fall-through successor of every
// block.
type Func struct {
    Name    string
    OptSize bool
    Blocks  []*Block
    nextId  int
}

func NewFunc(name string) *Func {
    return &Func { Name: name }
}

// NewBlock creates a block and places it at the end of the layout.
func (self *Func) NewBlock() *Block {
    bb := &Block {
        Id : self.nextId,
        fn : self,
    }

    /* add to the layout */
    self.nextId++
    self.Blocks = append(self.Blocks, bb)
    return bb
}

// SetLayout reorders the blocks. The new order must be a permutation of
// the current blocks.
func (self *Func) SetLayout(order []*Block) {
    seen := make(map[*Block]bool, len(order))

    /* validate the permutation */
    for _, bb := range order {
        if bb.fn != self || seen[bb] {
            panic(fmt.Sprintf("SetLayout: invalid block %s in layout of %s", bb, self.Name))
        }
        seen[bb] = true
    }

    /* must contain every block */
    if len(seen) != len(self.Blocks) {
        panic(fmt.Sprintf("SetLayout: layout of %s must contain all %d blocks", self.Name, len(self.Blocks)))
    }

    /* update the layout */
    self.Blocks = append(self.Blocks[:0], order...)
}

// Reachable returns the blocks reachable from the first block in layout
// order, in depth-first preorder.
func (self *Func) Reachable() []*Block {
    if len(self.Blocks) == 0 {
        return nil
    }

    /* DFS over the successor edges */
    var ret []*Block
    st := lane.NewStack()
    vis := make(map[*Block]bool, len(self.Blocks))

    /* start from the entry block */
    for st.Push(self.Blocks[0]); !st.Empty(); {
        bb := st.Pop().(*Block)
        if vis[bb] {
            continue
        }

        /* mark as visited */
        vis[bb] = true
        ret = append(ret, bb)

        /* push the successors in reverse, so the first one is visited first */
        succ := bb.Successors()
        for i := len(succ) - 1; i >= 0; i-- {
            if !vis[succ[i]] {
                st.Push(succ[i])
            }
        }
    }

    /* all done */
    return ret
}

func (self *Func) String() string {
    buf := []string { fmt.Sprintf("func %s:", self.Name) }
    for _, bb := range self.Blocks { buf = append(buf, bb.Dump()) }
    return strings.Join(buf, "\n")
}

// Block is a basic block: a straight run of instructions whose trailing
// run of terminators decides where control goes next.
type Block struct {
    Id  int
    Ins []*Instr
    fn  *Func
}

func (self *Block) Func() *Func {
    return self.fn
}

func (self *Block) String() string {
    return fmt.Sprintf("%%bb.%d", self.Id)
}

// LayoutSuccessor returns the block placed right after this one, or nil
// for the last block.
func (self *Block) LayoutSuccessor() *Block {
    if self.fn == nil {
        return nil
    }

    /* find ourself in the layout */
    for i, bb := range self.fn.Blocks {
        if bb == self {
            if i + 1 < len(self.fn.Blocks) {
                return self.fn.Blocks[i + 1]
            } else {
                return nil
            }
        }
    }

    /* not in the layout */
    return nil
}

func (self *Block) IsLayoutSuccessor(bb *Block) bool {
    return bb != nil && self.LayoutSuccessor() == bb
}

// Successors lists the branch targets of the terminators followed by the
// layout successor when control may fall off the end of the block. Duplicates
// are removed.
func (self *Block) Successors() (ret []*Block) {
    seen := make(map[*Block]bool)
    last := self.lastReal()

    /* an unconditional transfer at the end stops the fall-through path */
    falls := last < 0 || !self.Ins[last].IsBarrier()

    /* collect the explicit targets in program order */
    for _, p := range self.Ins {
        if p.IsTerminator() {
            if bb := p.Target(); bb != nil && !seen[bb] {
                seen[bb] = true
                ret = append(ret, bb)
            }
        }
    }

    /* add the fall-through edge */
    if next := self.LayoutSuccessor(); falls && next != nil && !seen[next] {
        ret = append(ret, next)
    }
    return
}

func (self *Block) lastReal() int {
    for i := len(self.Ins) - 1; i >= 0; i-- {
        if !self.Ins[i].IsDebug() {
            return i
        }
    }
    return -1
}

func (self *Block) Append(ins ...*Instr) {
    self.Ins = append(self.Ins, ins...)
}

// Insert places ins before position pos.
func (self *Block) Insert(pos int, ins ...*Instr) {
    self.Replace(pos, pos, ins...)
}

// Erase removes the instructions in [lo, hi).
func (self *Block) Erase(lo int, hi int) {
    self.Replace(lo, hi, nil...)
}

// Replace substitutes the instructions in [lo, hi) with ins in one step.
// Positions at or after lo are invalidated.
func (self *Block) Replace(lo int, hi int, ins ...*Instr) {
    if lo < 0 || hi < lo || hi > len(self.Ins) {
        panic(fmt.Sprintf("Replace: invalid range [%d, %d) of %s with %d instructions", lo, hi, self, len(self.Ins)))
    }

    /* build the new instruction list */
    buf := make([]*Instr, 0, len(self.Ins) - (hi - lo) + len(ins))
    buf = append(buf, self.Ins[:lo]...)
    buf = append(buf, ins...)
    buf = append(buf, self.Ins[hi:]...)
    self.Ins = buf
}

// Dump formats the block with one instruction per line.
func (self *Block) Dump() string {
    buf := []string { self.String() + ":" }
    for _, p := range self.Ins { buf = append(buf, "    " + p.String()) }
    return strings.Join(buf, "\n")
}

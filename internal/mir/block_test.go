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
    `testing`

    `github.com/cloudwego/ez80/internal/target`
    `github.com/stretchr/testify/require`
)

func TestBlock_Layout(t *testing.T) {
    fn := NewFunc("layout")
    b0 := fn.NewBlock()
    b1 := fn.NewBlock()
    b2 := fn.NewBlock()
    require.Equal(t, b1, b0.LayoutSuccessor())
    require.True(t, b1.IsLayoutSuccessor(b2))
    require.Nil(t, b2.LayoutSuccessor())
    require.False(t, b2.IsLayoutSuccessor(nil))
    fn.SetLayout([]*Block { b0, b2, b1 })
    require.Equal(t, b2, b0.LayoutSuccessor())
    require.Nil(t, b1.LayoutSuccessor())
    require.Equal(t, fn, b1.Func())
}

func TestBlock_SetLayoutRejectsBadOrder(t *testing.T) {
    fn := NewFunc("layout")
    b0 := fn.NewBlock()
    b1 := fn.NewBlock()
    require.Panics(t, func() { fn.SetLayout([]*Block { b0, b0 }) })
    require.Panics(t, func() { fn.SetLayout([]*Block { b1 }) })
    require.Panics(t, func() { fn.SetLayout([]*Block { b0, NewFunc("other").NewBlock() }) })
}

func TestBlock_Edit(t *testing.T) {
    bb := NewFunc("edit").NewBlock()
    a := NewInstr(OP_NOP)
    b := NewInstr(OP_RCF)
    c := NewInstr(OP_RET)
    bb.Append(a, c)
    bb.Insert(1, b)
    require.Equal(t, []*Instr { a, b, c }, bb.Ins)
    d := NewInstr(OP_NOP)
    bb.Replace(0, 2, d)
    require.Equal(t, []*Instr { d, c }, bb.Ins)
    bb.Erase(1, 2)
    require.Equal(t, []*Instr { d }, bb.Ins)
    require.Panics(t, func() { bb.Erase(1, 3) })
    require.Panics(t, func() { bb.Replace(1, 0) })
}

func TestBlock_Successors(t *testing.T) {
    fn := NewFunc("succ")
    b0 := fn.NewBlock()
    b1 := fn.NewBlock()
    b2 := fn.NewBlock()
    b3 := fn.NewBlock()
    b0.Append(NewInstr(OP_JQCC).MBB(b2).Imm(int64(target.COND_Z)))
    b1.Append(NewInstr(OP_JQ).MBB(b3), NewInstr(OP_DBG_VALUE))
    b2.Append(NewInstr(OP_NOP))
    b3.Append(NewInstr(OP_RET))
    require.Equal(t, []*Block { b2, b1 }, b0.Successors())
    require.Equal(t, []*Block { b3 }, b1.Successors())
    require.Equal(t, []*Block { b3 }, b2.Successors())
    require.Empty(t, b3.Successors())
    require.Equal(t, []*Block { b0, b2, b3, b1 }, fn.Reachable())
}

func TestBlock_ReachableSkipsDeadBlocks(t *testing.T) {
    fn := NewFunc("dead")
    b0 := fn.NewBlock()
    b1 := fn.NewBlock()
    b2 := fn.NewBlock()
    b0.Append(NewInstr(OP_JQ).MBB(b2))
    b1.Append(NewInstr(OP_RET))
    b2.Append(NewInstr(OP_RET))
    require.Equal(t, []*Block { b0, b2 }, fn.Reachable())
    require.Nil(t, NewFunc("empty").Reachable())
}

func TestBlock_Dump(t *testing.T) {
    fn := NewFunc("dump")
    bb := fn.NewBlock()
    bb.Append(NewInstr(OP_LD8rr).Def(target.A).Use(target.B), NewInstr(OP_RET))
    require.Equal(t, "%bb.0:\n    $a = LD8rr $b\n    RET", bb.Dump())
    require.Equal(t, "func dump:\n%bb.0:\n    $a = LD8rr $b\n    RET", fn.String())
}

func TestSequence(t *testing.T) {
    prev := NewInstr(OP_EX16DE)
    seq := NewSequence(prev)
    require.Equal(t, prev, seq.Last())
    seq.EraseLast()
    require.True(t, seq.PrevErased())
    require.Nil(t, seq.Last())
    p := seq.Add(OP_NOP)
    q := seq.Add(OP_RET)
    require.Equal(t, 2, seq.Len())
    require.Equal(t, q, seq.Last())
    require.Equal(t, []*Instr { q }, seq.Since(1))
    require.Nil(t, seq.Since(2))
    seq.EraseLast()
    require.Equal(t, p, seq.Last())
    seq.EraseLast()
    require.Panics(t, seq.EraseLast)
}

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
    `github.com/cloudwego/ez80/internal/target`
    `github.com/stretchr/testify/require`
)

func TestCompare_Analyze(t *testing.T) {
    bb := mir.NewFunc("cmp").NewBlock()
    bb.Append(
        mir.NewInstr(mir.OP_NOP),
        mir.NewInstr(mir.OP_COPY).Def(target.D).Use(target.E),
        mir.NewInstr(mir.OP_COPY).Def(target.A).Use(target.L),
        mir.NewInstr(mir.OP_CP8ar).Use(target.D),
        mir.NewInstr(mir.OP_SUB8ai).Imm(42),
        mir.NewInstr(mir.OP_CP8ao).Use(target.IX).Imm(3),
    )
    ret, ok := ez80().AnalyzeCompare(bb, 3)
    require.True(t, ok)
    require.Equal(t, Compare { Src: target.L, Src2: target.E, Mask: -1 }, ret)

    /* the copies are not directly above this one */
    ret, ok = ez80().AnalyzeCompare(bb, 4)
    require.True(t, ok)
    require.Equal(t, Compare { Src: target.A, Mask: -1, Value: 42 }, ret)
    ret, ok = ez80().AnalyzeCompare(bb, 5)
    require.True(t, ok)
    require.Equal(t, target.NoReg, ret.Src2)

    /* not a compare */
    _, ok = ez80().AnalyzeCompare(bb, 1)
    require.False(t, ok)
}

func TestCompare_SubZeroBecomesOr(t *testing.T) {
    p := mir.NewInstr(mir.OP_SUB8ai).Imm(0)
    require.True(t, ez80().OptimizeCompare(p))
    require.Equal(t, "OR8ar $a, implicit-def $a, implicit-def $f, implicit $a", p.String())
}

func TestCompare_DeadSubBecomesCompare(t *testing.T) {
    for op, cp := range map[mir.OpCode]mir.OpCode {
        mir.OP_SUB8ai: mir.OP_CP8ai,
        mir.OP_SUB8ar: mir.OP_CP8ar,
        mir.OP_SUB8am: mir.OP_CP8am,
        mir.OP_SUB8ao: mir.OP_CP8ao,
    } {
        p := mir.NewInstr(op)
        switch op {
            case mir.OP_SUB8ai : p.Imm(7)
            case mir.OP_SUB8ar : p.Use(target.B)
            case mir.OP_SUB8ao : p.Use(target.IY).Imm(-2)
        }

        /* the result is live */
        require.False(t, ez80().OptimizeCompare(p))
        require.Equal(t, op, p.Op)

        /* the result is dead */
        p.FindRegDef(target.A).SetDead(true)
        require.True(t, ez80().OptimizeCompare(p))
        require.Equal(t, cp, p.Op)
        require.Nil(t, p.FindRegDef(target.A))
        require.NotNil(t, p.FindRegDef(target.F))
    }
}

func TestCompare_OtherInstructions(t *testing.T) {
    p := mir.NewInstr(mir.OP_CP8ai).Imm(0)
    require.False(t, ez80().OptimizeCompare(p))
    require.Equal(t, mir.OP_CP8ai, p.Op)
    require.False(t, ez80().OptimizeCompare(mir.NewInstr(mir.OP_NOP)))
}

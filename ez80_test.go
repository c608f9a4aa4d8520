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

package ez80

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/ez80/debug"
	"github.com/stretchr/testify/require"
)

func mustReg(t *testing.T, name string) Reg {
	r, err := ParseReg(name)
	require.NoError(t, err)
	return r
}

func TestNew_Options(t *testing.T) {
	ii := New(WithSubtarget(Z80()), WithOptSize(true))
	require.Equal(t, Subtarget{HasIndexHalfRegs: true, OptimizeSize: true}, ii.Subtarget())
	require.Equal(t, EZ80(), New(WithSubtarget(EZ80())).Subtarget())
	require.Panics(t, func() { New(With24Bit(true), WithEZ80Ops(false)) })
	require.Panics(t, func() { New(WithSubtarget(Z80()), With16BitEZ80Ops(true)) })
	require.False(t, New(WithSubtarget(EZ80()), WithIndexHalfRegs(false)).Subtarget().HasIndexHalfRegs)
}

func TestParseReg(t *testing.T) {
	r := mustReg(t, "uhl")
	require.Equal(t, "uhl", r.String())
	_, err := ParseReg("rax")
	require.EqualError(t, err, `ez80: unknown register "rax"`)
}

func TestInsertCopy_Traced(t *testing.T) {
	rec := debug.NewRecorder()
	ii := New(WithSubtarget(Z80()), WithTracer(rec))
	bb := NewFunc("f").NewBlock()
	require.Equal(t, 1, ii.InsertCopy(bb, 0, mustReg(t, "hl"), mustReg(t, "de"), true))
	require.Equal(t, "EX16DE implicit-def dead $de, implicit-def $hl, implicit killed $de, implicit undef $hl", bb.Ins[0].String())
	require.Equal(t, map[string]int{"exchange": 1}, rec.Stats().Copy.ByCase)
}

func TestRecover(t *testing.T) {
	ii := New(WithSubtarget(EZ80()))
	err := Recover(func() { ii.CopyPhysReg(NewSequence(nil), mustReg(t, "f"), mustReg(t, "a"), false) })
	require.Error(t, err)
	require.IsType(t, &ContractError{}, err)
	require.NoError(t, Recover(func() { ii.CopyPhysReg(NewSequence(nil), mustReg(t, "b"), mustReg(t, "c"), false) }))
	require.PanicsWithValue(t, "boom", func() { _ = Recover(func() { panic("boom") }) })
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "z80.yaml")
	require.NoError(t, os.WriteFile(good, []byte("base: z80\noptimize_size: true\n"), 0644))
	opt, err := LoadOptions(good)
	require.NoError(t, err)
	require.Equal(t, Subtarget{HasIndexHalfRegs: true, OptimizeSize: true}, New(opt).Subtarget())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("base: ez80\nez80_ops: false\n"), 0644))
	_, err = LoadOptions(bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "24-bit mode requires eZ80 ops")

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

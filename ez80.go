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

// Package ez80 lowers register copies, spills and branches for the Zilog
// Z80 and eZ80 families after register allocation.
package ez80

import (
	"fmt"

	"github.com/cloudwego/ez80/internal/backend"
	"github.com/cloudwego/ez80/internal/mir"
	"github.com/cloudwego/ez80/internal/opts"
	"github.com/cloudwego/ez80/internal/target"
)

type (
	Reg         = target.Reg
	CondCode    = target.CondCode
	Subtarget   = opts.Subtarget
	Func        = mir.Func
	Block       = mir.Block
	Instr       = mir.Instr
	Sequence    = mir.Sequence
	Terminators = backend.Terminators
	InstrInfo   = backend.InstrInfo
	Tracer      = backend.Tracer
	CopyEvent   = backend.CopyEvent
	BranchEvent = backend.BranchEvent
)

// Z80 returns the plain Z80 feature set.
func Z80() Subtarget {
	return opts.Z80()
}

// EZ80 returns the eZ80 feature set in ADL mode.
func EZ80() Subtarget {
	return opts.EZ80()
}

// ParseReg looks up a register by its lower-case assembly name, e.g. "uhl".
func ParseReg(name string) (Reg, error) {
	if r, ok := target.Lookup(name); ok {
		return r, nil
	}
	return target.NoReg, fmt.Errorf("ez80: unknown register %q", name)
}

// NewFunc creates an empty function to hold blocks of machine instructions.
func NewFunc(name string) *Func {
	return mir.NewFunc(name)
}

// NewSequence creates an instruction buffer that continues after prev,
// which may be nil.
func NewSequence(prev *Instr) *Sequence {
	return mir.NewSequence(prev)
}

// New creates an InstrInfo for the subtarget selected by the environment,
// adjusted by options. It panics when the resulting feature set is
// inconsistent.
func New(options ...Option) *InstrInfo {
	cfg := backend.Config{Subtarget: opts.GetDefaultSubtarget()}
	for _, fn := range options {
		fn(&cfg)
	}
	return backend.New(cfg)
}

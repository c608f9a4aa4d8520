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
    `context`
    `fmt`
    `io`
    `log/slog`
    `strings`

    `github.com/cloudwego/ez80/internal/mir`
    `github.com/cloudwego/ez80/internal/target`
    `github.com/davecgh/go-spew/spew`
)

// CopyCase names the strategy chosen for a register copy.
type CopyCase uint8

const (
    CopyIdentity CopyCase = iota
    CopyByte                    // LD r,r
    CopyIndexByte               // LD under one index prefix
    CopyIndexViaA               // index halves of different prefixes, through A
    CopyMixedByte               // one index half and one general byte
    CopyExchange                // EX DE,HL of a dead source
    CopyToSP
    CopyFromSP
    CopyLea
    CopyPushPop
    CopyPiecewise
    CopyPiecewiseSwap           // both pieces alias, swapped in place
)

func (self CopyCase) String() string {
    switch self {
        case CopyIdentity      : return "identity"
        case CopyByte          : return "byte"
        case CopyIndexByte     : return "index-byte"
        case CopyIndexViaA     : return "index-via-a"
        case CopyMixedByte     : return "mixed-byte"
        case CopyExchange      : return "exchange"
        case CopyToSP          : return "to-sp"
        case CopyFromSP        : return "from-sp"
        case CopyLea           : return "lea"
        case CopyPushPop       : return "push-pop"
        case CopyPiecewise     : return "piecewise"
        case CopyPiecewiseSwap : return "piecewise-swap"
        default                : return fmt.Sprintf("case(%d)", uint8(self))
    }
}

// CopyEvent describes one top-level copy request and its lowering.
type CopyEvent struct {
    Dst     target.Reg
    Src     target.Reg
    Kill    bool
    Case    CopyCase
    Elided  bool            // the preceding EX DE,HL was cancelled
    Emitted []*mir.Instr
}

// BranchEdit names a rewrite made by the branch canonicalizer.
type BranchEdit uint8

const (
    EditDeleteDead BranchEdit = iota    // instructions after an unconditional branch
    EditDeleteFallthrough               // unconditional branch to the layout successor
    EditInvert                          // jCC L1; jmp L2 with L1 next in layout
    EditRemove
    EditInsert
)

func (self BranchEdit) String() string {
    switch self {
        case EditDeleteDead        : return "delete-dead"
        case EditDeleteFallthrough : return "delete-fallthrough"
        case EditInvert            : return "invert"
        case EditRemove            : return "remove"
        case EditInsert            : return "insert"
        default                    : return fmt.Sprintf("edit(%d)", uint8(self))
    }
}

// BranchEvent describes one edit applied to the terminators of a block.
type BranchEvent struct {
    Block    *mir.Block
    Edit     BranchEdit
    Removed  int
    Inserted []*mir.Instr
}

// Tracer observes the decisions of the backend. Implementations must not
// modify the instructions they are handed.
type Tracer interface {
    TraceCopy(ev *CopyEvent)
    TraceBranch(ev *BranchEvent)
}

type NopTracer struct{}

func (NopTracer) TraceCopy(*CopyEvent)     {}
func (NopTracer) TraceBranch(*BranchEvent) {}

// SlogTracer writes every event as a structured log record.
type SlogTracer struct {
    Logger *slog.Logger
    Level  slog.Level
}

func NewSlogTracer(logger *slog.Logger) *SlogTracer {
    return &SlogTracer {
        Logger : logger,
        Level  : slog.LevelDebug,
    }
}

func instrs(ins []*mir.Instr) string {
    buf := make([]string, 0, len(ins))
    for _, p := range ins { buf = append(buf, p.String()) }
    return strings.Join(buf, "; ")
}

func (self *SlogTracer) TraceCopy(ev *CopyEvent) {
    self.Logger.Log(context.Background(), self.Level, "copy",
        "dst"    , ev.Dst.String(),
        "src"    , ev.Src.String(),
        "kill"   , ev.Kill,
        "case"   , ev.Case.String(),
        "elided" , ev.Elided,
        "ins"    , instrs(ev.Emitted),
    )
}

func (self *SlogTracer) TraceBranch(ev *BranchEvent) {
    self.Logger.Log(context.Background(), self.Level, "branch",
        "block"   , ev.Block.String(),
        "edit"    , ev.Edit.String(),
        "removed" , ev.Removed,
        "ins"     , instrs(ev.Inserted),
    )
}

// DumpTracer dumps every event in full with spew.
type DumpTracer struct {
    w   io.Writer
    cfg *spew.ConfigState
}

func NewDumpTracer(w io.Writer) *DumpTracer {
    return &DumpTracer {
        w   : w,
        cfg : &spew.ConfigState {
            Indent                  : "    ",
            SortKeys                : true,
            DisablePointerAddresses : true,
            DisableCapacities       : true,
            MaxDepth                : 4,
        },
    }
}

func (self *DumpTracer) TraceCopy(ev *CopyEvent) {
    fmt.Fprintf(self.w, "copy %s <- %s (%s):\n", ev.Dst, ev.Src, ev.Case)
    self.cfg.Fdump(self.w, ev)
}

func (self *DumpTracer) TraceBranch(ev *BranchEvent) {
    fmt.Fprintf(self.w, "branch %s (%s):\n", ev.Block, ev.Edit)
    self.cfg.Fdump(self.w, ev.Removed, ev.Inserted)
}

// MultiTracer forwards every event to each tracer in order.
type MultiTracer []Tracer

func (self MultiTracer) TraceCopy(ev *CopyEvent) {
    for _, t := range self {
        t.TraceCopy(ev)
    }
}

func (self MultiTracer) TraceBranch(ev *BranchEvent) {
    for _, t := range self {
        t.TraceBranch(ev)
    }
}

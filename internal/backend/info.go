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
    `github.com/cloudwego/ez80/internal/opts`
)

// Config selects the subtarget and the observer of an InstrInfo.
type Config struct {
    Subtarget opts.Subtarget
    Tracer    Tracer
}

// InstrInfo lowers copies, spills and branches for one subtarget. It holds
// no mutable state and may be shared between goroutines as long as the
// tracer is safe for concurrent use.
type InstrInfo struct {
    st opts.Subtarget
    tr Tracer
}

func New(cfg Config) *InstrInfo {
    if err := cfg.Subtarget.Validate(); err != nil {
        panic(err)
    }

    /* use the no-op tracer by default */
    if cfg.Tracer == nil {
        cfg.Tracer = NopTracer{}
    }

    /* build the instruction info */
    return &InstrInfo {
        st: cfg.Subtarget,
        tr: cfg.Tracer,
    }
}

func (self *InstrInfo) Subtarget() opts.Subtarget {
    return self.st
}

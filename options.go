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
	"github.com/cloudwego/ez80/internal/backend"
	"github.com/cloudwego/ez80/internal/opts"
)

// Option is the property setter function for backend.Config.
type Option func(*backend.Config)

// With24Bit selects ADL mode, where pointers and the stack are 24 bits wide.
//
// This value can also be configured with the `EZ80_24BIT` environment variable.
func With24Bit(v bool) Option {
	return func(o *backend.Config) { o.Subtarget.Is24Bit = v }
}

// WithEZ80Ops enables the eZ80 instructions, such as LEA and LD rr,(ix+d).
//
// This value can also be configured with the `EZ80_EZ80_OPS` environment variable.
func WithEZ80Ops(v bool) Option {
	return func(o *backend.Config) { o.Subtarget.HasEZ80Ops = v }
}

// With16BitEZ80Ops enables the eZ80 16-bit memory forms outside of ADL mode.
//
// This value can also be configured with the `EZ80_16BIT_EZ80_OPS` environment variable.
func With16BitEZ80Ops(v bool) Option {
	return func(o *backend.Config) { o.Subtarget.Has16BitEZ80Ops = v }
}

// WithIndexHalfRegs allows IXH, IXL, IYH and IYL as byte registers.
//
// This value can also be configured with the `EZ80_INDEX_HALF_REGS` environment variable.
func WithIndexHalfRegs(v bool) Option {
	return func(o *backend.Config) { o.Subtarget.HasIndexHalfRegs = v }
}

// WithOptSize prefers shorter sequences over faster ones for every function.
// A function can also ask for this on its own through Func.OptSize.
//
// This value can also be configured with the `EZ80_OPT_SIZE` environment variable.
func WithOptSize(v bool) Option {
	return func(o *backend.Config) { o.Subtarget.OptimizeSize = v }
}

// WithSubtarget replaces the whole feature set, discarding earlier options.
func WithSubtarget(st Subtarget) Option {
	return func(o *backend.Config) { o.Subtarget = st }
}

// WithTracer installs an observer for copy and branch decisions. The tracer
// must be safe for concurrent use when the InstrInfo is shared.
func WithTracer(tr Tracer) Option {
	return func(o *backend.Config) { o.Tracer = tr }
}

// LoadOptions reads a YAML subtarget description and returns it as an option.
// Keys absent from the file keep their environment defaults.
func LoadOptions(path string) (Option, error) {
	st, err := opts.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return WithSubtarget(st), nil
}
